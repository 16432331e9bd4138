package storeduser

import (
	"context"

	"github.com/dmitrijs2005/userkeeper/internal/models"
)

// LoadUser reads and decodes the user stored under scope. A record that
// cannot be decoded fails with ErrDecode.
func (m *Manager) LoadUser(ctx context.Context, scope Scope) (*models.User, error) {
	data, err := m.GetStoredUser(ctx, scope)
	if err != nil {
		return nil, err
	}
	u, err := models.DecodeUser(data)
	if err != nil {
		return nil, m.fail(ctx, ErrDecode, "LoadUser", scope.Key(), err)
	}
	return u, nil
}

// SaveUser encodes u and stores it under scope.
func (m *Manager) SaveUser(ctx context.Context, u *models.User, scope Scope) error {
	data, err := u.Encode()
	if err != nil {
		return m.fail(ctx, ErrWrite, "SaveUser", scope.Key(), err)
	}
	return m.SetStoredUser(ctx, data, scope)
}
