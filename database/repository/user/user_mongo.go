package userRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"roomly/database"
	"roomly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo creates a new instance of UserRepository using MongoDB.
func NewMongoUserRepo() UserRepository {
	coll := database.MongoClient.Database("roomly").Collection("users")
	repo := &MongoUserRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoUserRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a full user document by its unique ID.
func (r *MongoUserRepo) GetByID(id string) (*models.User, error) {
	return r.GetByIDWithProjection(id, nil)
}

// GetByIDWithProjection retrieves a user by its unique ID using a projection.
// Pass nil for projection to retrieve the full document.
func (r *MongoUserRepo) GetByIDWithProjection(id string, projection bson.M) (*models.User, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.FindOne()
	if projection != nil {
		opts.SetProjection(projection)
	}

	var user models.User
	if err := r.coll.FindOne(ctx, bson.M{"id": id}, opts).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to fetch user with id %s: %w", id, err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by its email address. A missing document is not
// an error: the sign-in flow creates the user in that case.
func (r *MongoUserRepo) GetByEmail(email string) (*models.User, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch user with email %s: %w", email, err)
	}
	return &user, nil
}

// Create inserts a new user document.
func (r *MongoUserRepo) Create(user *models.User) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Update modifies an existing user document.
func (r *MongoUserRepo) Update(user *models.User) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	user.UpdatedAt = time.Now()
	filter := bson.M{"id": user.ID}
	update := bson.M{"$set": user}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update user with id %s: %w", user.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user with id %s not found", user.ID)
	}
	return nil
}

// Delete removes a user document by its ID.
func (r *MongoUserRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	result, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete user with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("user with id %s not found", id)
	}
	return nil
}

// updateSet applies a $set document to a user, failing if the user is missing.
func (r *MongoUserRepo) updateSet(id string, set bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	set["updated_at"] = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update user with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user with id %s not found", id)
	}
	return nil
}

// SetEmailVerified stamps the user's email_verified field.
func (r *MongoUserRepo) SetEmailVerified(id string) error {
	return r.updateSet(id, bson.M{"email_verified": time.Now()})
}

// SetPasscode stores the passcode hash and biometrics flag.
func (r *MongoUserRepo) SetPasscode(id, passcodeHash string, biometricsEnabled bool) error {
	return r.updateSet(id, bson.M{
		"passcode_hash":      passcodeHash,
		"biometrics_enabled": biometricsEnabled,
	})
}

// SetSessionTokenHash stores the hash of the active session token.
func (r *MongoUserRepo) SetSessionTokenHash(id, tokenHash string) error {
	return r.updateSet(id, bson.M{"session_token_hash": tokenHash})
}

// AddBiometricCredential appends a registered platform credential.
func (r *MongoUserRepo) AddBiometricCredential(id string, cred models.BiometricCredential) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{
		"$push": bson.M{"credentials": cred},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to add credential for user %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user with id %s not found", id)
	}
	return nil
}

// SaveBasicDetails merges the basic-details step into the user's profile
// document. Only the basicDetails sub-document is overwritten.
func (r *MongoUserRepo) SaveBasicDetails(id string, details models.BasicDetails) error {
	details.UpdatedAt = time.Now()
	return r.updateSet(id, bson.M{"profile_data.basicDetails": details})
}

// SaveLifestyleQuiz merges the lifestyle-quiz step into the user's profile
// document. Only the lifestyleQuiz sub-document is overwritten.
func (r *MongoUserRepo) SaveLifestyleQuiz(id string, quiz models.LifestyleQuiz) error {
	quiz.UpdatedAt = time.Now()
	return r.updateSet(id, bson.M{"profile_data.lifestyleQuiz": quiz})
}
