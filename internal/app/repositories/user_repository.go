package repositories

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/cphunt/backend/internal/app/models"
	"github.com/cphunt/backend/internal/db"
)

// UserRepository handles database operations for user accounts.
type UserRepository struct {
	users db.Pair
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(users db.Pair) *UserRepository {
	return &UserRepository{users: users}
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	return db.FindOneFallback(ctx, r.users.Fallback,
		findOne[models.User](r.users.Versioned, filter),
		findOne[models.User](r.users.Legacy, filter),
	)
}

// GetByID returns the user with the given id, or nil when no such user exists.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := r.findOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, storeErr("reading user by id", err)
	}
	return user, nil
}

// GetByEmail returns the user owning the given email, or nil. The email is
// normalized before lookup so invitations and logins match sign-up casing.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := r.findOne(ctx, bson.M{"email": NormalizeEmail(email)})
	if err != nil {
		return nil, storeErr("reading user by email", err)
	}
	return user, nil
}

// GetByUsername returns the user owning the given username, or nil.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := r.findOne(ctx, bson.M{"username": strings.ToLower(strings.TrimSpace(username))})
	if err != nil {
		return nil, storeErr("reading user by username", err)
	}
	return user, nil
}

// Create inserts a new user into the versioned collection.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if _, err := r.users.Versioned.InsertOne(ctx, user); err != nil {
		return storeErr("creating user", err)
	}
	return nil
}

// UpdateProfile applies the given field updates to a user and returns the
// updated document. The update targets the versioned collection; a user still
// living only in the legacy collection is first copied forward.
func (r *UserRepository) UpdateProfile(ctx context.Context, userID string, updates bson.M) (*models.User, error) {
	user, err := r.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	updates["updatedAt"] = time.Now().UTC()
	applyUserUpdates(user, updates)

	opts := replaceUpsert()
	if _, err := r.users.Versioned.ReplaceOne(ctx, bson.M{"_id": userID}, user, opts); err != nil {
		return nil, storeErr("updating user profile", err)
	}
	return user, nil
}

func applyUserUpdates(user *models.User, updates bson.M) {
	for field, value := range updates {
		switch field {
		case "name":
			if v, ok := value.(string); ok {
				user.Name = v
			}
		case "bio":
			user.Bio = optionalString(value)
		case "avatarUrl":
			user.AvatarURL = optionalString(value)
		case "experience":
			user.Experience = optionalString(value)
		case "linkedInUrl":
			user.LinkedInURL = optionalString(value)
		case "xUrl":
			user.XURL = optionalString(value)
		case "githubUrl":
			user.GitHubURL = optionalString(value)
		case "websiteUrl":
			user.WebsiteURL = optionalString(value)
		case "updatedAt":
			if v, ok := value.(time.Time); ok {
				user.UpdatedAt = v
			}
		}
	}
}

func optionalString(value interface{}) *string {
	switch v := value.(type) {
	case string:
		return &v
	case *string:
		return v
	default:
		return nil
	}
}

// NormalizeEmail lowers and trims an email so it can serve as a stable
// directory key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
