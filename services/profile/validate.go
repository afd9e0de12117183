package profile

import (
	"fmt"
	"strings"

	"roomly/models"
)

// ValidationError is a field-level validation failure. It blocks advancement
// but is always recoverable in place.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// PronounOther is the sentinel pronoun choice that requires free text.
const PronounOther = "Other"

// Pronouns is the enumerated pronoun set.
var Pronouns = []string{"she/her", "he/him", "they/them", PronounOther}

// Years is the enumerated year-in-school set.
var Years = []string{"first", "sophomore", "junior", "senior", "graduate"}

func inSet(value string, set []string) bool {
	for _, s := range set {
		if s == value {
			return true
		}
	}
	return false
}

// ValidateBasicDetails checks the basic-details payload and normalizes it in
// place (trimming, clearing free-text pronouns when unused, nil-ing an empty
// minor). Major suggestions are advisory, so any non-empty major passes.
func ValidateBasicDetails(details *models.BasicDetails, photoRequired bool) error {
	details.PreferredName = strings.TrimSpace(details.PreferredName)
	if details.PreferredName == "" {
		return &ValidationError{Field: "preferredName", Message: "preferred name is required"}
	}

	if !inSet(details.Pronouns, Pronouns) {
		return &ValidationError{Field: "pronouns", Message: "please select your pronouns"}
	}
	if details.Pronouns == PronounOther {
		details.OtherPronouns = strings.TrimSpace(details.OtherPronouns)
		if details.OtherPronouns == "" {
			return &ValidationError{Field: "otherPronouns", Message: "please specify your pronouns"}
		}
	} else {
		details.OtherPronouns = ""
	}

	if !inSet(details.YearInSchool, Years) {
		return &ValidationError{Field: "yearInSchool", Message: "year in school is required"}
	}

	details.Major = strings.TrimSpace(details.Major)
	if details.Major == "" {
		return &ValidationError{Field: "major", Message: "major is required"}
	}

	if details.Minor != nil {
		trimmed := strings.TrimSpace(*details.Minor)
		if trimmed == "" {
			details.Minor = nil
		} else {
			details.Minor = &trimmed
		}
	}

	if photoRequired && details.PhotoURL == "" {
		return &ValidationError{Field: "photoUrl", Message: "profile photo is required"}
	}

	return nil
}

// RatingMin and RatingMax bound every lifestyle quiz answer.
const (
	RatingMin = 0
	RatingMax = 10
)

// quizFieldOrder fixes the order in which quiz fields are validated so the
// first error is deterministic.
var quizFieldOrder = []string{
	"bedtime", "wakeTime", "cleanliness", "noiseTolerance", "guestFrequency",
	"petFriendliness", "smokingPreference", "travelFrequency", "studyLocation",
}

// ValidateLifestyleQuiz checks that all nine questions were answered and that
// every answer is inside [0,10]. A missing answer fails on its own field so
// the client can highlight the skipped question.
func ValidateLifestyleQuiz(quiz models.LifestyleQuiz) error {
	ratings := quiz.Ratings()
	for _, field := range quizFieldOrder {
		v := ratings[field]
		if v == nil {
			return &ValidationError{Field: field, Message: "please answer every question"}
		}
		if *v < RatingMin || *v > RatingMax {
			return &ValidationError{
				Field:   field,
				Message: fmt.Sprintf("value must be between %d and %d", RatingMin, RatingMax),
			}
		}
	}
	return nil
}
