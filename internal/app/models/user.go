package models

import (
	"strings"
	"time"
)

// UserRole defines the role of a user
type UserRole string

const (
	RoleUser      UserRole = "USER"
	RoleModerator UserRole = "MODERATOR"
	RoleAdmin     UserRole = "ADMIN"
)

// User represents an account in the user directory. Email and username are
// stored lowercase.
type User struct {
	ID           string   `bson:"_id" json:"id"`
	Email        string   `bson:"email" json:"email"`
	Username     string   `bson:"username" json:"username"`
	PasswordHash string   `bson:"passwordHash" json:"-"`
	Name         string   `bson:"name" json:"name"`
	Bio          *string  `bson:"bio" json:"bio"`
	AvatarURL    *string  `bson:"avatarUrl" json:"avatarUrl"`
	Role         UserRole `bson:"role" json:"role"`

	// Hackathon profile fields. Experience plus at least one link make a
	// profile "complete" for event-application gating.
	Experience  *string `bson:"experience,omitempty" json:"experience"`
	LinkedInURL *string `bson:"linkedInUrl,omitempty" json:"linkedInUrl"`
	XURL        *string `bson:"xUrl,omitempty" json:"xUrl"`
	GitHubURL   *string `bson:"githubUrl,omitempty" json:"githubUrl"`
	WebsiteURL  *string `bson:"websiteUrl,omitempty" json:"websiteUrl"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// HasSocialLink reports whether at least one social link is set.
func (u *User) HasSocialLink() bool {
	for _, link := range []*string{u.LinkedInURL, u.XURL, u.GitHubURL, u.WebsiteURL} {
		if link != nil && *link != "" {
			return true
		}
	}
	return false
}

// IsProfileComplete reports whether the hackathon profile passes the
// event-application gate: experience text of at least 10 characters plus at
// least one social link.
func (u *User) IsProfileComplete() bool {
	if u.Experience == nil || len(strings.TrimSpace(*u.Experience)) < 10 {
		return false
	}
	return u.HasSocialLink()
}

// PublicUser is the embeddable public view of a user.
type PublicUser struct {
	ID        string  `bson:"id" json:"id"`
	Name      string  `bson:"name" json:"name"`
	Username  string  `bson:"username" json:"username"`
	AvatarURL *string `bson:"avatarUrl" json:"avatarUrl"`
	Bio       *string `bson:"bio" json:"bio"`
}

// Public returns the public view of the user.
func (u *User) Public() *PublicUser {
	if u == nil {
		return nil
	}
	return &PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Username:  u.Username,
		AvatarURL: u.AvatarURL,
		Bio:       u.Bio,
	}
}
