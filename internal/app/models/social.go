package models

import "time"

// Follow is keyed "<followerId>_<followeeId>" so a user can follow a
// maker once.
type Follow struct {
	ID         string    `bson:"_id" json:"id"`
	FollowerID string    `bson:"followerId" json:"followerId"`
	FolloweeID string    `bson:"followeeId" json:"followeeId"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

// Notification is an in-app message for one user.
type Notification struct {
	ID        string     `bson:"_id" json:"id"`
	UserID    string     `bson:"userId" json:"userId"`
	Title     string     `bson:"title" json:"title"`
	Body      string     `bson:"body" json:"body"`
	Href      *string    `bson:"href" json:"href"`
	ReadAt    *time.Time `bson:"readAt" json:"readAt"`
	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
}

// ReportReason classifies a launch report.
type ReportReason string

const (
	ReportSpam  ReportReason = "SPAM"
	ReportAbuse ReportReason = "ABUSE"
	ReportScam  ReportReason = "SCAM"
	ReportOther ReportReason = "OTHER"
)

// Report is a user-filed complaint about a launch, held for moderation.
type Report struct {
	ID         string       `bson:"_id" json:"id"`
	LaunchID   string       `bson:"launchId" json:"launchId"`
	ReporterID string       `bson:"reporterId" json:"reporterId"`
	Reason     ReportReason `bson:"reason" json:"reason"`
	Details    *string      `bson:"details" json:"details"`
	Resolved   bool         `bson:"resolved" json:"resolved"`
	CreatedAt  time.Time    `bson:"createdAt" json:"createdAt"`
}
