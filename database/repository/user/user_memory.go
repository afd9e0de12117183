package userRepo

import (
	"fmt"
	"sync"
	"time"

	"roomly/models"

	"go.mongodb.org/mongo-driver/bson"
)

// MemoryUserRepo is an in-memory UserRepository used in tests and local
// development without a MongoDB instance.
type MemoryUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User

	// FailNext forces the next mutating call to fail, for exercising
	// repository-failure paths.
	FailNext bool
}

// NewMemoryUserRepo creates an empty in-memory repository.
func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{users: make(map[string]*models.User)}
}

func (r *MemoryUserRepo) failIfRequested() error {
	if r.FailNext {
		r.FailNext = false
		return fmt.Errorf("storage unavailable")
	}
	return nil
}

func (r *MemoryUserRepo) GetByID(id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user with id %s not found", id)
	}
	cp := *u
	return &cp, nil
}

func (r *MemoryUserRepo) GetByIDWithProjection(id string, _ bson.M) (*models.User, error) {
	return r.GetByID(id)
}

func (r *MemoryUserRepo) GetByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemoryUserRepo) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failIfRequested(); err != nil {
		return err
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *MemoryUserRepo) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failIfRequested(); err != nil {
		return err
	}
	if _, ok := r.users[user.ID]; !ok {
		return fmt.Errorf("user with id %s not found", user.ID)
	}
	user.UpdatedAt = time.Now()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *MemoryUserRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return fmt.Errorf("user with id %s not found", id)
	}
	delete(r.users, id)
	return nil
}

func (r *MemoryUserRepo) mutate(id string, fn func(*models.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failIfRequested(); err != nil {
		return err
	}
	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user with id %s not found", id)
	}
	fn(u)
	u.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryUserRepo) SetEmailVerified(id string) error {
	return r.mutate(id, func(u *models.User) {
		now := time.Now()
		u.EmailVerified = &now
	})
}

func (r *MemoryUserRepo) SetPasscode(id, passcodeHash string, biometricsEnabled bool) error {
	return r.mutate(id, func(u *models.User) {
		u.PasscodeHash = passcodeHash
		u.BiometricsEnabled = biometricsEnabled
	})
}

func (r *MemoryUserRepo) SetSessionTokenHash(id, tokenHash string) error {
	return r.mutate(id, func(u *models.User) {
		u.SessionTokenHash = tokenHash
	})
}

func (r *MemoryUserRepo) AddBiometricCredential(id string, cred models.BiometricCredential) error {
	return r.mutate(id, func(u *models.User) {
		u.Credentials = append(u.Credentials, cred)
	})
}

func (r *MemoryUserRepo) SaveBasicDetails(id string, details models.BasicDetails) error {
	return r.mutate(id, func(u *models.User) {
		details.UpdatedAt = time.Now()
		u.ProfileData.BasicDetails = &details
	})
}

func (r *MemoryUserRepo) SaveLifestyleQuiz(id string, quiz models.LifestyleQuiz) error {
	return r.mutate(id, func(u *models.User) {
		quiz.UpdatedAt = time.Now()
		u.ProfileData.LifestyleQuiz = &quiz
	})
}
