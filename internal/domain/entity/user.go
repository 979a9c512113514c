// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"wellness/internal/domain/constants"
)

// User mirrors an identity owned by the external identity provider.
// ID is the provider's stable subject identifier.
type User struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	ProfileImageURL string    `json:"profileImageUrl"`
	Language        string    `json:"language"`
	IsAdmin         bool      `json:"isAdmin"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// FullName joins first and last name, skipping blanks.
func (u *User) FullName() string {
	return strings.TrimSpace(strings.Join([]string{u.FirstName, u.LastName}, " "))
}

// Roles derives the token roles from local state.
func (u *User) Roles() Roles {
	if u.IsAdmin {
		return Roles{RoleMember, RoleAdmin}
	}

	return Roles{RoleMember}
}

// IsSupportedLanguage reports whether lang is a language the clinic UI ships.
func IsSupportedLanguage(lang string) bool {
	switch lang {
	case constants.LanguageEnglish, constants.LanguageSpanish:
		return true
	default:
		return false
	}
}
