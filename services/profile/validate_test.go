package profile

import (
	"testing"

	"roomly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDetails() models.BasicDetails {
	return models.BasicDetails{
		PreferredName: "Alice",
		Pronouns:      "they/them",
		YearInSchool:  "junior",
		Major:         "Biology",
	}
}

func TestValidateBasicDetailsAccepts(t *testing.T) {
	details := validDetails()
	assert.NoError(t, ValidateBasicDetails(&details, false))
}

func TestValidateBasicDetailsFieldErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.BasicDetails)
		field  string
	}{
		{"empty name", func(d *models.BasicDetails) { d.PreferredName = "" }, "preferredName"},
		{"whitespace name", func(d *models.BasicDetails) { d.PreferredName = "   " }, "preferredName"},
		{"missing pronouns", func(d *models.BasicDetails) { d.Pronouns = "" }, "pronouns"},
		{"unknown pronouns", func(d *models.BasicDetails) { d.Pronouns = "ze/zir" }, "pronouns"},
		{"other without text", func(d *models.BasicDetails) { d.Pronouns = PronounOther }, "otherPronouns"},
		{"missing year", func(d *models.BasicDetails) { d.YearInSchool = "" }, "yearInSchool"},
		{"unknown year", func(d *models.BasicDetails) { d.YearInSchool = "freshman" }, "yearInSchool"},
		{"missing major", func(d *models.BasicDetails) { d.Major = "  " }, "major"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := validDetails()
			tt.mutate(&details)
			err := ValidateBasicDetails(&details, false)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestValidateBasicDetailsOtherPronouns(t *testing.T) {
	details := validDetails()
	details.Pronouns = PronounOther
	details.OtherPronouns = "  xe/xem  "
	require.NoError(t, ValidateBasicDetails(&details, false))
	assert.Equal(t, "xe/xem", details.OtherPronouns)
}

func TestValidateBasicDetailsClearsUnusedFreeText(t *testing.T) {
	details := validDetails()
	details.OtherPronouns = "leftover"
	require.NoError(t, ValidateBasicDetails(&details, false))
	assert.Empty(t, details.OtherPronouns)
}

func TestValidateBasicDetailsMinor(t *testing.T) {
	details := validDetails()
	blank := "   "
	details.Minor = &blank
	require.NoError(t, ValidateBasicDetails(&details, false))
	assert.Nil(t, details.Minor)

	minor := "  Chemistry "
	details.Minor = &minor
	require.NoError(t, ValidateBasicDetails(&details, false))
	require.NotNil(t, details.Minor)
	assert.Equal(t, "Chemistry", *details.Minor)
}

func TestValidateBasicDetailsPhotoPolicy(t *testing.T) {
	details := validDetails()

	err := ValidateBasicDetails(&details, true)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "photoUrl", verr.Field)

	details.PhotoURL = "https://cdn.example.com/photo.jpg"
	assert.NoError(t, ValidateBasicDetails(&details, true))
}

func rating(v int) *int { return &v }

// fullQuiz answers every question with the same value.
func fullQuiz(v int) models.LifestyleQuiz {
	return models.LifestyleQuiz{
		Bedtime: rating(v), WakeTime: rating(v), Cleanliness: rating(v),
		NoiseTolerance: rating(v), GuestFrequency: rating(v),
		PetFriendliness: rating(v), SmokingPreference: rating(v),
		TravelFrequency: rating(v), StudyLocation: rating(v),
	}
}

func TestValidateLifestyleQuizBounds(t *testing.T) {
	// Both boundaries are valid answers.
	assert.NoError(t, ValidateLifestyleQuiz(fullQuiz(0)))
	assert.NoError(t, ValidateLifestyleQuiz(fullQuiz(10)))
}

func TestValidateLifestyleQuizOutOfRange(t *testing.T) {
	quiz := fullQuiz(5)
	quiz.Cleanliness = rating(11)
	err := ValidateLifestyleQuiz(quiz)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "cleanliness", verr.Field)

	quiz = fullQuiz(5)
	quiz.NoiseTolerance = rating(-1)
	err = ValidateLifestyleQuiz(quiz)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "noiseTolerance", verr.Field)
}

func TestValidateLifestyleQuizRequiresEveryAnswer(t *testing.T) {
	var verr *ValidationError

	// An untouched quiz fails on the first question.
	err := ValidateLifestyleQuiz(models.LifestyleQuiz{})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "bedtime", verr.Field)

	// A single answered question does not stand in for the other eight.
	err = ValidateLifestyleQuiz(models.LifestyleQuiz{Bedtime: rating(5)})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "wakeTime", verr.Field)

	// Any one skipped question fails on its own field.
	quiz := fullQuiz(5)
	quiz.StudyLocation = nil
	err = ValidateLifestyleQuiz(quiz)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "studyLocation", verr.Field)
}
