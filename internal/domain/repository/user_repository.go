// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"wellness/internal/domain/entity"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their identity provider subject.
	FindByID(ctx context.Context, id string) (*entity.User, error)

	// Upsert inserts the user or refreshes its profile fields keyed on ID.
	// Local state (admin flag, language) survives the refresh.
	Upsert(ctx context.Context, user *entity.User) error

	// SetAdmin grants or revokes staff access.
	SetAdmin(ctx context.Context, id string, isAdmin bool) error

	// UpdateLanguage stores the user's preferred language.
	UpdateLanguage(ctx context.Context, id, language string) error
}
