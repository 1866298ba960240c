package models

import (
	"fmt"
	"time"
)

// ParticipationType distinguishes team and individual event entries
type ParticipationType string

const (
	ParticipationTeam       ParticipationType = "TEAM"
	ParticipationIndividual ParticipationType = "INDIVIDUAL"
)

// TeammatePreference captures how a registrant wants to participate
type TeammatePreference string

const (
	PreferenceSolo    TeammatePreference = "solo"
	PreferenceLooking TeammatePreference = "looking"
	PreferenceTeam    TeammatePreference = "team"
)

// RegistrationDocID builds the document id enforcing one registration (and
// one application) per event and user.
func RegistrationDocID(eventSlug, userID string) string {
	return fmt.Sprintf("%s_%s", eventSlug, userID)
}

// EventRegistration records one user's entry into an event. A denormalized
// snapshot of the user's display fields is embedded so participant lists
// render without per-row directory lookups; when absent, readers resolve it
// from the user directory.
type EventRegistration struct {
	ID                string             `bson:"_id" json:"id"`
	EventSlug         string             `bson:"eventSlug" json:"eventSlug"`
	UserID            string             `bson:"userId" json:"userId"`
	ParticipationType ParticipationType  `bson:"participationType" json:"participationType"`
	TeamName          *string            `bson:"teamName" json:"teamName"`
	ProjectName       string             `bson:"projectName" json:"projectName"`
	Skills            []string           `bson:"skills" json:"skills"`
	Bio               string             `bson:"bio" json:"bio"`
	TeammatePref      TeammatePreference `bson:"teammatePreference,omitempty" json:"teammatePreference,omitempty"`
	ReferralSource    string             `bson:"referralSource,omitempty" json:"referralSource,omitempty"`
	EligibilityAgreed bool               `bson:"eligibilityAgreed" json:"eligibilityAgreed"`
	RulesAgreed       bool               `bson:"rulesAgreed" json:"rulesAgreed"`

	// Denormalized user display snapshot.
	UserName      *string `bson:"userName,omitempty" json:"userName,omitempty"`
	UserUsername  *string `bson:"userUsername,omitempty" json:"userUsername,omitempty"`
	UserAvatarURL *string `bson:"userAvatarUrl,omitempty" json:"userAvatarUrl,omitempty"`
	UserBio       *string `bson:"userBio,omitempty" json:"userBio,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// UserSnapshot is the denormalized display view fanned out onto a user's
// registrations when their profile changes.
type UserSnapshot struct {
	UserName      string  `json:"userName"`
	UserUsername  string  `json:"userUsername"`
	UserAvatarURL *string `json:"userAvatarUrl"`
	UserBio       *string `json:"userBio"`
}

// TeammatePost is a "looking for teammates" note on an event page.
type TeammatePost struct {
	ID                string            `bson:"_id" json:"id"`
	EventSlug         string            `bson:"eventSlug" json:"eventSlug"`
	UserID            string            `bson:"userId" json:"userId"`
	ParticipationType ParticipationType `bson:"participationType" json:"participationType"`
	LookingFor        []string          `bson:"lookingFor" json:"lookingFor"`
	Message           string            `bson:"message" json:"message"`
	CreatedAt         time.Time         `bson:"createdAt" json:"createdAt"`
}

// ApplicationStatus is the event-application lifecycle state
type ApplicationStatus string

const (
	ApplicationDraft     ApplicationStatus = "draft"
	ApplicationSubmitted ApplicationStatus = "submitted"
)

// TeamMemberStatus is derived from the user directory, never authoritative:
// invited when no account exists for the email, complete when the resolved
// profile passes the completeness check, profile_incomplete otherwise.
type TeamMemberStatus string

const (
	MemberInvited           TeamMemberStatus = "invited"
	MemberProfileIncomplete TeamMemberStatus = "profile_incomplete"
	MemberComplete          TeamMemberStatus = "complete"
)

// TeamMember is an email-identified participant on an application. UserID is
// nil until an account exists for the email.
type TeamMember struct {
	Email  string           `bson:"email" json:"email"`
	UserID *string          `bson:"userId" json:"userId"`
	Status TeamMemberStatus `bson:"status" json:"status"`
}

// ApplicationSections is the flat bag of free-text answers on an event
// application. Content only, validated field by field at the boundary.
type ApplicationSections struct {
	// Founders
	FoundersKnownHowLong string `bson:"foundersKnownHowLong,omitempty" json:"foundersKnownHowLong,omitempty"`
	WhoWritesCode        string `bson:"whoWritesCode,omitempty" json:"whoWritesCode,omitempty"`
	LookingForCofounder  string `bson:"lookingForCofounder,omitempty" json:"lookingForCofounder,omitempty"`
	FounderVideoURL      string `bson:"founderVideoUrl,omitempty" json:"founderVideoUrl,omitempty"`

	// Company
	CompanyName            string `bson:"companyName,omitempty" json:"companyName,omitempty"`
	Tagline50              string `bson:"tagline50,omitempty" json:"tagline50,omitempty"`
	CompanyURL             string `bson:"companyUrl,omitempty" json:"companyUrl,omitempty"`
	DemoVideoURL           string `bson:"demoVideoUrl,omitempty" json:"demoVideoUrl,omitempty"`
	DemoFileURL            string `bson:"demoFileUrl,omitempty" json:"demoFileUrl,omitempty"`
	ProductLink            string `bson:"productLink,omitempty" json:"productLink,omitempty"`
	ProductLinkCredentials string `bson:"productLinkCredentials,omitempty" json:"productLinkCredentials,omitempty"`
	WhatWillYouMake        string `bson:"whatWillYouMake,omitempty" json:"whatWillYouMake,omitempty"`
	Location               string `bson:"location,omitempty" json:"location,omitempty"`
	LocationReason         string `bson:"locationReason,omitempty" json:"locationReason,omitempty"`

	// Progress
	HowFarAlong         string `bson:"howFarAlong,omitempty" json:"howFarAlong,omitempty"`
	HowLongWorking      string `bson:"howLongWorking,omitempty" json:"howLongWorking,omitempty"`
	TechStack           string `bson:"techStack,omitempty" json:"techStack,omitempty"`
	CodingSessionURL    string `bson:"codingSessionUrl,omitempty" json:"codingSessionUrl,omitempty"`
	PeopleUsingProduct  string `bson:"peopleUsingProduct,omitempty" json:"peopleUsingProduct,omitempty"`
	HaveRevenue         string `bson:"haveRevenue,omitempty" json:"haveRevenue,omitempty"`
	PreviousBatchChange string `bson:"previousBatchChange,omitempty" json:"previousBatchChange,omitempty"`
	OtherIncubator      string `bson:"otherIncubator,omitempty" json:"otherIncubator,omitempty"`

	// Idea
	WhyThisIdea  string `bson:"whyThisIdea,omitempty" json:"whyThisIdea,omitempty"`
	Competitors  string `bson:"competitors,omitempty" json:"competitors,omitempty"`
	HowMakeMoney string `bson:"howMakeMoney,omitempty" json:"howMakeMoney,omitempty"`
	Category     string `bson:"category,omitempty" json:"category,omitempty"`
	OtherIdeas   string `bson:"otherIdeas,omitempty" json:"otherIdeas,omitempty"`

	// Equity
	LegalEntity         string `bson:"legalEntity,omitempty" json:"legalEntity,omitempty"`
	EquityBreakdown     string `bson:"equityBreakdown,omitempty" json:"equityBreakdown,omitempty"`
	TakenInvestment     string `bson:"takenInvestment,omitempty" json:"takenInvestment,omitempty"`
	CurrentlyFundraising string `bson:"currentlyFundraising,omitempty" json:"currentlyFundraising,omitempty"`

	// Mission
	CatholicMission           string `bson:"catholicMission,omitempty" json:"catholicMission,omitempty"`
	ChurchProblem             string `bson:"churchProblem,omitempty" json:"churchProblem,omitempty"`
	CatholicTeachingAlignment string `bson:"catholicTeachingAlignment,omitempty" json:"catholicTeachingAlignment,omitempty"`
	ChurchAudience            string `bson:"churchAudience,omitempty" json:"churchAudience,omitempty"`
	FaithGrowth               string `bson:"faithGrowth,omitempty" json:"faithGrowth,omitempty"`

	// Curious
	WhyApply string `bson:"whyApply,omitempty" json:"whyApply,omitempty"`
	HowHear  string `bson:"howHear,omitempty" json:"howHear,omitempty"`

	// Track
	TrackPreference string `bson:"trackPreference,omitempty" json:"trackPreference,omitempty"`
}

// EventApplication is the multi-section application for one event and user.
// Submitted is terminal: the completeness gate is checked once at submission
// and a later profile regression does not revert the status.
type EventApplication struct {
	ID          string              `bson:"_id" json:"id"`
	EventSlug   string              `bson:"eventSlug" json:"eventSlug"`
	UserID      string              `bson:"userId" json:"userId"`
	Status      ApplicationStatus   `bson:"status" json:"status"`
	SubmittedAt *time.Time          `bson:"submittedAt" json:"submittedAt"`
	TeamMembers []TeamMember        `bson:"teamMembers" json:"teamMembers"`
	Sections    ApplicationSections `bson:"sections" json:"sections"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt" json:"updatedAt"`
}
