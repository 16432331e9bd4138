// Package models defines the user record persisted by the stored-user
// coordinator and its codec. The coordinator itself treats the record as
// opaque bytes.
package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// recordVersion is bumped whenever the encoded layout changes.
const recordVersion = 1

var (
	ErrEmptyRecord       = errors.New("empty user record")
	ErrUnsupportedRecord = errors.New("unsupported user record version")
	ErrNoIDToken         = errors.New("user has no id token")
)

// User is the session state of an authenticated user.
type User struct {
	UID               string `json:"uid"`
	Email             string `json:"email,omitempty"`
	DisplayName       string `json:"display_name,omitempty"`
	ProviderID        string `json:"provider_id,omitempty"`
	IsAnonymous       bool   `json:"is_anonymous,omitempty"`
	IDToken           string `json:"id_token,omitempty"`
	RefreshToken      string `json:"refresh_token,omitempty"`
	ProjectIdentifier string `json:"project_identifier,omitempty"`
}

type record struct {
	Version int   `json:"v"`
	User    *User `json:"user"`
}

// NewAnonymousUser returns an anonymous user with a fresh random UID.
func NewAnonymousUser(projectIdentifier string) *User {
	return &User{
		UID:               uuid.NewString(),
		ProviderID:        "anonymous",
		IsAnonymous:       true,
		ProjectIdentifier: projectIdentifier,
	}
}

// Encode serializes u into a versioned record.
func (u *User) Encode() ([]byte, error) {
	return json.Marshal(record{Version: recordVersion, User: u})
}

// DecodeUser parses a record produced by Encode.
func DecodeUser(data []byte) (*User, error) {
	if len(data) == 0 {
		return nil, ErrEmptyRecord
	}
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("malformed user record: %w", err)
	}
	if rec.Version != recordVersion || rec.User == nil {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedRecord, rec.Version)
	}
	return rec.User, nil
}

// TokenExpiry reports when the ID token expires. The token signature is not
// checked; verification belongs to the backend that issued it.
func (u *User) TokenExpiry() (time.Time, error) {
	if u.IDToken == "" {
		return time.Time{}, ErrNoIDToken
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(u.IDToken, claims); err != nil {
		return time.Time{}, fmt.Errorf("failed to parse id token: %w", err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, nil
	}
	return claims.ExpiresAt.Time, nil
}
