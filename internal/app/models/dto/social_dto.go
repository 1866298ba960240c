package dto

import "github.com/cphunt/backend/internal/app/models"

// FollowRequest names the user to follow
type FollowRequest struct {
	FolloweeID string `json:"followeeId" binding:"required"`
}

// FollowResponse carries the followee's follower count after the follow
type FollowResponse struct {
	Followers int `json:"followers"`
}

// ReportRequest represents a launch report submission
type ReportRequest struct {
	LaunchID string              `json:"launchId" binding:"required"`
	Reason   models.ReportReason `json:"reason" binding:"required,oneof=SPAM ABUSE SCAM OTHER"`
	Details  *string             `json:"details"`
}

// ReportResponse carries the id of a filed report
type ReportResponse struct {
	ID string `json:"id"`
}
