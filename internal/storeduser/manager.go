package storeduser

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/dmitrijs2005/userkeeper/internal/logging"
)

// SecretStore is authenticated keyed byte storage partitioned by access
// group. Read returns common.ErrorNotFound for absent keys; Remove of an
// absent key succeeds. Entries written under one access group must not be
// readable under another.
type SecretStore interface {
	Write(ctx context.Context, key string, data []byte, accessGroup *string, syncAcrossDevices bool) error
	Read(ctx context.Context, key string, accessGroup *string) ([]byte, error)
	Remove(ctx context.Context, key string, accessGroup *string) error
}

// PreferenceStore is unscoped local keyed byte storage. Get returns
// common.ErrorNotFound for absent keys. Set must be atomic for readers.
type PreferenceStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Manager is the stored-credential coordinator.
type Manager struct {
	secrets SecretStore
	prefs   PreferenceStore
	log     logging.Logger
}

// NewManager returns a Manager over the given stores. log may be nil.
func NewManager(secrets SecretStore, prefs PreferenceStore, log logging.Logger) *Manager {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Manager{
		secrets: secrets,
		prefs:   prefs,
		log:     log.With("component", "storeduser"),
	}
}

func (m *Manager) fail(ctx context.Context, kind error, op, key string, err error) error {
	if kind != ErrNotFound {
		m.log.Warn(ctx, "stored credential operation failed", "op", op, "key", key, "kind", kind, "err", err)
	}
	return &Error{Kind: kind, Op: op, Key: key, Err: err}
}

// GetStoredAccessGroup returns the access group recorded by the last
// SetStoredAccessGroup, or nil when none was ever recorded. An empty group
// is returned as a pointer to "".
func (m *Manager) GetStoredAccessGroup(ctx context.Context) (*string, error) {
	const op = "GetStoredAccessGroup"

	data, err := m.prefs.Get(ctx, AccessGroupKey)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, m.fail(ctx, ErrRead, op, AccessGroupKey, err)
	}
	if !utf8.Valid(data) {
		return nil, m.fail(ctx, ErrDecode, op, AccessGroupKey, errInvalidUTF8)
	}

	group := string(data)
	return &group, nil
}

// SetStoredAccessGroup records group as the active access group, or clears
// the setting when group is nil. Users already stored are not moved.
func (m *Manager) SetStoredAccessGroup(ctx context.Context, group *string) error {
	const op = "SetStoredAccessGroup"

	if group == nil {
		if err := m.prefs.Delete(ctx, AccessGroupKey); err != nil {
			return m.fail(ctx, ErrWrite, op, AccessGroupKey, err)
		}
		m.log.Debug(ctx, "access group cleared")
		return nil
	}

	if err := m.prefs.Set(ctx, AccessGroupKey, []byte(*group)); err != nil {
		return m.fail(ctx, ErrWrite, op, AccessGroupKey, err)
	}
	m.log.Debug(ctx, "access group recorded", "group", *group)
	return nil
}

// GetStoredUser returns the record stored under scope. It fails with
// ErrNotFound when there is none.
func (m *Manager) GetStoredUser(ctx context.Context, scope Scope) ([]byte, error) {
	const op = "GetStoredUser"
	key := scope.Key()

	data, err := m.secrets.Read(ctx, key, scope.AccessGroup)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, m.fail(ctx, ErrNotFound, op, key, nil)
	}
	if err != nil {
		return nil, m.fail(ctx, ErrRead, op, key, err)
	}
	return data, nil
}

// SetStoredUser writes record under scope, replacing any previous value.
func (m *Manager) SetStoredUser(ctx context.Context, record []byte, scope Scope) error {
	const op = "SetStoredUser"
	key := scope.Key()

	if err := m.secrets.Write(ctx, key, record, scope.AccessGroup, scope.ShareAcrossDevices); err != nil {
		return m.fail(ctx, ErrWrite, op, key, err)
	}
	m.log.Debug(ctx, "stored user written", "key", key, "shared", scope.ShareAcrossDevices)
	return nil
}

// RemoveStoredUser deletes the record stored under scope. Removing an
// absent record succeeds.
func (m *Manager) RemoveStoredUser(ctx context.Context, scope Scope) error {
	const op = "RemoveStoredUser"
	key := scope.Key()

	err := m.secrets.Remove(ctx, key, scope.AccessGroup)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return m.fail(ctx, ErrRemove, op, key, err)
	}
	m.log.Debug(ctx, "stored user removed", "key", key)
	return nil
}

// CurrentScope builds the scope to restore a session from at launch: the
// recorded access group together with the caller's project and sync flag.
func (m *Manager) CurrentScope(ctx context.Context, projectIdentifier string, shareAcrossDevices bool) (Scope, error) {
	group, err := m.GetStoredAccessGroup(ctx)
	if err != nil {
		return Scope{}, err
	}
	return Scope{
		AccessGroup:        group,
		ShareAcrossDevices: shareAcrossDevices,
		ProjectIdentifier:  projectIdentifier,
	}, nil
}
