// models/profile.go
package models

import "time"

// ProfileData is the per-user profile document, accumulated step by step.
// Each wizard step owns one sub-document; saving a step overwrites only
// that step's sub-document.
type ProfileData struct {
	BasicDetails  *BasicDetails  `bson:"basicDetails,omitempty" json:"basicDetails,omitempty"`
	LifestyleQuiz *LifestyleQuiz `bson:"lifestyleQuiz,omitempty" json:"lifestyleQuiz,omitempty"`
}

// BasicDetails is the first profile-builder step.
type BasicDetails struct {
	PreferredName string    `bson:"preferredName" json:"preferredName"`
	Pronouns      string    `bson:"pronouns" json:"pronouns"`
	OtherPronouns string    `bson:"otherPronouns,omitempty" json:"otherPronouns,omitempty"`
	YearInSchool  string    `bson:"yearInSchool" json:"yearInSchool"`
	Major         string    `bson:"major" json:"major"`
	Minor         *string   `bson:"minor,omitempty" json:"minor,omitempty"`
	PhotoURL      string    `bson:"photoUrl,omitempty" json:"photoUrl,omitempty"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

// LifestyleQuiz holds the nine roommate-compatibility ratings, each on a 0-10
// scale. The fields are pointers so an unanswered question is distinguishable
// from an answer of 0; validation rejects any nil field.
type LifestyleQuiz struct {
	Bedtime           *int      `bson:"bedtime" json:"bedtime"`
	WakeTime          *int      `bson:"wakeTime" json:"wakeTime"`
	Cleanliness       *int      `bson:"cleanliness" json:"cleanliness"`
	NoiseTolerance    *int      `bson:"noiseTolerance" json:"noiseTolerance"`
	GuestFrequency    *int      `bson:"guestFrequency" json:"guestFrequency"`
	PetFriendliness   *int      `bson:"petFriendliness" json:"petFriendliness"`
	SmokingPreference *int      `bson:"smokingPreference" json:"smokingPreference"`
	TravelFrequency   *int      `bson:"travelFrequency" json:"travelFrequency"`
	StudyLocation     *int      `bson:"studyLocation" json:"studyLocation"`
	UpdatedAt         time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Ratings returns the nine quiz answers keyed by field name; nil marks a
// question that was not answered.
func (q LifestyleQuiz) Ratings() map[string]*int {
	return map[string]*int{
		"bedtime":           q.Bedtime,
		"wakeTime":          q.WakeTime,
		"cleanliness":       q.Cleanliness,
		"noiseTolerance":    q.NoiseTolerance,
		"guestFrequency":    q.GuestFrequency,
		"petFriendliness":   q.PetFriendliness,
		"smokingPreference": q.SmokingPreference,
		"travelFrequency":   q.TravelFrequency,
		"studyLocation":     q.StudyLocation,
	}
}
