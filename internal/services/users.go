package services

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tdx/internal/docstore"
	"github.com/desertthunder/tdx/internal/models"
	"github.com/desertthunder/tdx/internal/shared"
)

// UserService maintains the application-side profile mirror of identity
// principals. The identity service owns authentication; these documents exist
// only so the application can render names and emails.
type UserService struct {
	store  docstore.Store
	logger *log.Logger
}

// NewUserService creates a UserService over the given store.
func NewUserService(store docstore.Store, logger *log.Logger) *UserService {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &UserService{store: store, logger: logger.With("service", "users")}
}

// UpdateUserParams carries partial-update fields for a profile record.
type UpdateUserParams struct {
	Name  *string
	Email *string
}

// Create writes the profile document for a principal. The id must match the
// authentication subject.
func (s *UserService) Create(ctx context.Context, id, name, email string) error {
	err := s.store.Put(ctx, docstore.CollectionUsers, id, docstore.Fields{
		"uid":       id,
		"name":      name,
		"email":     email,
		"createdAt": docstore.ServerTimestamp,
		"updatedAt": docstore.ServerTimestamp,
	})
	if err != nil {
		return fmt.Errorf("failed to create user profile: %w", err)
	}

	s.logger.Debug("created user profile", "id", id)
	return nil
}

// Get retrieves a profile by principal id, or (nil, nil) when it does not
// exist.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	fields, err := s.store.Get(ctx, docstore.CollectionUsers, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}
	if fields == nil {
		return nil, nil
	}
	return userFromFields(fields), nil
}

// Update applies the provided fields and refreshes the update timestamp.
func (s *UserService) Update(ctx context.Context, id string, params UpdateUserParams) error {
	fields := docstore.Fields{"updatedAt": docstore.ServerTimestamp}

	if params.Name != nil {
		fields["name"] = *params.Name
	}
	if params.Email != nil {
		fields["email"] = *params.Email
	}

	if err := s.store.Update(ctx, docstore.CollectionUsers, id, fields); err != nil {
		return fmt.Errorf("failed to update user profile: %w", err)
	}
	return nil
}
