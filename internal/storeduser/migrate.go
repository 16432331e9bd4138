package storeduser

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/dmitrijs2005/userkeeper/internal/common"
)

const (
	// legacyAccessGroupKey is the unversioned preference key used before
	// AccessGroupKey.
	legacyAccessGroupKey = "userkeeper_stored_user_access_group"

	// legacySecretAccessGroupKey is where the first releases kept the access
	// group: in the secret store, outside any access group.
	legacySecretAccessGroupKey = "userkeeper_stored_user_access_group"
)

// mover is implemented by preference stores able to rename a key atomically.
type mover interface {
	Move(ctx context.Context, from, to string) error
}

// MigrateLegacyAccessGroup moves an access group recorded by an older
// release into AccessGroupKey and deletes the legacy copy. It reports
// whether anything was moved. A value already present under AccessGroupKey
// wins and legacy copies are left alone.
func (m *Manager) MigrateLegacyAccessGroup(ctx context.Context) (bool, error) {
	const op = "MigrateLegacyAccessGroup"

	_, err := m.prefs.Get(ctx, AccessGroupKey)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return false, m.fail(ctx, ErrRead, op, AccessGroupKey, err)
	}

	moved, err := m.migrateLegacyPreference(ctx)
	if err != nil || moved {
		return moved, err
	}
	return m.migrateLegacySecret(ctx)
}

func (m *Manager) migrateLegacyPreference(ctx context.Context) (bool, error) {
	const op = "MigrateLegacyAccessGroup"

	if mv, ok := m.prefs.(mover); ok {
		err := mv.Move(ctx, legacyAccessGroupKey, AccessGroupKey)
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		if err != nil {
			return false, m.fail(ctx, ErrWrite, op, AccessGroupKey, err)
		}
		m.log.Info(ctx, "access group migrated", "from", legacyAccessGroupKey)
		return true, nil
	}

	data, err := m.prefs.Get(ctx, legacyAccessGroupKey)
	if errors.Is(err, common.ErrorNotFound) {
		return false, nil
	}
	if err != nil {
		return false, m.fail(ctx, ErrRead, op, legacyAccessGroupKey, err)
	}
	if err := m.prefs.Set(ctx, AccessGroupKey, data); err != nil {
		return false, m.fail(ctx, ErrWrite, op, AccessGroupKey, err)
	}
	if err := m.prefs.Delete(ctx, legacyAccessGroupKey); err != nil {
		return true, m.fail(ctx, ErrRemove, op, legacyAccessGroupKey, err)
	}
	m.log.Info(ctx, "access group migrated", "from", legacyAccessGroupKey)
	return true, nil
}

func (m *Manager) migrateLegacySecret(ctx context.Context) (bool, error) {
	const op = "MigrateLegacyAccessGroup"

	data, err := m.secrets.Read(ctx, legacySecretAccessGroupKey, nil)
	if errors.Is(err, common.ErrorNotFound) {
		return false, nil
	}
	if err != nil {
		return false, m.fail(ctx, ErrRead, op, legacySecretAccessGroupKey, err)
	}
	if !utf8.Valid(data) {
		return false, m.fail(ctx, ErrDecode, op, legacySecretAccessGroupKey, errInvalidUTF8)
	}
	if err := m.prefs.Set(ctx, AccessGroupKey, data); err != nil {
		return false, m.fail(ctx, ErrWrite, op, AccessGroupKey, err)
	}
	if err := m.secrets.Remove(ctx, legacySecretAccessGroupKey, nil); err != nil && !errors.Is(err, common.ErrorNotFound) {
		return true, m.fail(ctx, ErrRemove, op, legacySecretAccessGroupKey, err)
	}
	m.log.Info(ctx, "access group migrated from secret store")
	return true, nil
}
