package storeduser

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/dmitrijs2005/userkeeper/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*Manager, *memSecrets, *memPrefs) {
	t.Helper()
	s, p := newMemSecrets(), newMemPrefs()
	return NewManager(s, p, nil), s, p
}

// ---- access-group setting ----

func TestAccessGroup_NeverSetIsNil(t *testing.T) {
	m, _, _ := newTestManager(t)

	g, err := m.GetStoredAccessGroup(context.Background())
	require.NoError(t, err)
	assert.Nil(t, g)
}

func TestAccessGroup_SetGetClear(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, m.SetStoredAccessGroup(ctx, Group("g1")))
	g, err := m.GetStoredAccessGroup(ctx)
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, "g1", *g)

	require.NoError(t, m.SetStoredAccessGroup(ctx, nil))
	g, err = m.GetStoredAccessGroup(ctx)
	require.NoError(t, err)
	assert.Nil(t, g)

	// clearing twice is fine
	require.NoError(t, m.SetStoredAccessGroup(ctx, nil))
}

func TestAccessGroup_EmptyIsNotAbsent(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, m.SetStoredAccessGroup(ctx, Group("")))
	g, err := m.GetStoredAccessGroup(ctx)
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, "", *g)
}

func TestAccessGroup_InvalidUTF8IsDecodeError(t *testing.T) {
	m, _, p := newTestManager(t)
	p.items[AccessGroupKey] = []byte{0xff, 0xfe}

	_, err := m.GetStoredAccessGroup(context.Background())
	require.ErrorIs(t, err, ErrDecode)
	assert.Equal(t, ErrDecode, KindOf(err))
}

func TestAccessGroup_StoreErrors(t *testing.T) {
	m, _, p := newTestManager(t)
	ctx := context.Background()
	boom := errors.New("io")

	p.getErr = boom
	_, err := m.GetStoredAccessGroup(ctx)
	require.ErrorIs(t, err, ErrRead)
	require.ErrorIs(t, err, boom)

	p.setErr = boom
	err = m.SetStoredAccessGroup(ctx, Group("g"))
	require.ErrorIs(t, err, ErrWrite)
	require.ErrorIs(t, err, boom)

	p.deleteErr = boom
	err = m.SetStoredAccessGroup(ctx, nil)
	require.ErrorIs(t, err, ErrWrite)
}

func TestAccessGroup_IsNotScopedByStoredUserOps(t *testing.T) {
	m, _, p := newTestManager(t)
	ctx := context.Background()

	scope := Scope{AccessGroup: Group("groupA"), ProjectIdentifier: "P1"}
	require.NoError(t, m.SetStoredUser(ctx, []byte("u"), scope))
	require.NoError(t, m.RemoveStoredUser(ctx, scope))
	_, _ = m.GetStoredUser(ctx, scope)

	assert.Empty(t, p.items, "stored-user operations must not touch preferences")
}

func TestSetStoredAccessGroup_DoesNotMigrateUsers(t *testing.T) {
	m, s, _ := newTestManager(t)
	ctx := context.Background()

	old := Scope{AccessGroup: Group("old"), ProjectIdentifier: "P1"}
	require.NoError(t, m.SetStoredUser(ctx, []byte("u"), old))
	require.NoError(t, m.SetStoredAccessGroup(ctx, Group("new")))

	_, err := m.GetStoredUser(ctx, Scope{AccessGroup: Group("new"), ProjectIdentifier: "P1"})
	require.ErrorIs(t, err, ErrNotFound)

	got, err := m.GetStoredUser(ctx, old)
	require.NoError(t, err)
	assert.Equal(t, []byte("u"), got)
	assert.Equal(t, 1, s.len())
}

// ---- stored user ----

func TestStoredUser_RoundTrip(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()

	scopes := []Scope{
		{ProjectIdentifier: "P1"},
		{AccessGroup: Group("g"), ProjectIdentifier: "P1"},
		{AccessGroup: Group(""), ShareAcrossDevices: true, ProjectIdentifier: "P2"},
	}
	for i, sc := range scopes {
		rec := []byte(fmt.Sprintf("record-%d", i))
		require.NoError(t, m.SetStoredUser(ctx, rec, sc))

		got, err := m.GetStoredUser(ctx, sc)
		require.NoError(t, err)
		assert.Equal(t, rec, got)
	}
}

func TestStoredUser_LastWriteWins(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()
	sc := Scope{ProjectIdentifier: "P1"}

	require.NoError(t, m.SetStoredUser(ctx, []byte("first"), sc))
	require.NoError(t, m.SetStoredUser(ctx, []byte("second"), sc))

	got, err := m.GetStoredUser(ctx, sc)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got)
}

func TestStoredUser_ScopeIsolation(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, m.SetStoredUser(ctx, []byte("u"), Scope{AccessGroup: Group("groupA"), ProjectIdentifier: "P1"}))

	for _, sc := range []Scope{
		{AccessGroup: Group("groupB"), ProjectIdentifier: "P1"},
		{AccessGroup: Group("groupA"), ProjectIdentifier: "P2"},
		{AccessGroup: Group(""), ProjectIdentifier: "P1"},
		{ProjectIdentifier: "P1"},
	} {
		_, err := m.GetStoredUser(ctx, sc)
		require.ErrorIs(t, err, ErrNotFound, "scope %+v", sc)
		require.NotErrorIs(t, err, ErrRead)
	}
}

func TestStoredUser_SyncFlagIsPartOfTheKey(t *testing.T) {
	m, s, _ := newTestManager(t)
	ctx := context.Background()

	shared := Scope{AccessGroup: Group("g"), ShareAcrossDevices: true, ProjectIdentifier: "P1"}
	require.NoError(t, m.SetStoredUser(ctx, []byte("u"), shared))
	assert.True(t, s.sync[slot(shared.Key(), shared.AccessGroup)])

	local := shared
	local.ShareAcrossDevices = false
	_, err := m.GetStoredUser(ctx, local)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStoredUser_RemoveIsIdempotent(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()
	sc := Scope{AccessGroup: Group("g"), ProjectIdentifier: "P1"}

	require.NoError(t, m.RemoveStoredUser(ctx, sc))

	require.NoError(t, m.SetStoredUser(ctx, []byte("u"), sc))
	require.NoError(t, m.RemoveStoredUser(ctx, sc))
	require.NoError(t, m.RemoveStoredUser(ctx, sc))

	_, err := m.GetStoredUser(ctx, sc)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStoredUser_RemoveAbsorbsNotFoundFromStore(t *testing.T) {
	m, s, _ := newTestManager(t)
	s.removeErr = fmt.Errorf("wrapped: %w", common.ErrorNotFound)

	require.NoError(t, m.RemoveStoredUser(context.Background(), Scope{ProjectIdentifier: "P1"}))
}

func TestStoredUser_StoreErrorsAreTagged(t *testing.T) {
	m, s, _ := newTestManager(t)
	ctx := context.Background()
	sc := Scope{ProjectIdentifier: "P1"}
	boom := errors.New("keychain locked")

	s.readErr = boom
	_, err := m.GetStoredUser(ctx, sc)
	require.ErrorIs(t, err, ErrRead)
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, ErrNotFound)

	s.writeErr = boom
	err = m.SetStoredUser(ctx, []byte("u"), sc)
	require.ErrorIs(t, err, ErrWrite)

	s.removeErr = boom
	err = m.RemoveStoredUser(ctx, sc)
	require.ErrorIs(t, err, ErrRemove)

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "RemoveStoredUser", e.Op)
	assert.Equal(t, sc.Key(), e.Key)
}

func TestCurrentScope(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()

	sc, err := m.CurrentScope(ctx, "P1", true)
	require.NoError(t, err)
	assert.Equal(t, Scope{ProjectIdentifier: "P1", ShareAcrossDevices: true}, sc)

	require.NoError(t, m.SetStoredAccessGroup(ctx, Group("g1")))
	sc, err = m.CurrentScope(ctx, "P1", false)
	require.NoError(t, err)
	require.NotNil(t, sc.AccessGroup)
	assert.Equal(t, "g1", *sc.AccessGroup)
}

func TestCurrentScope_PropagatesErrors(t *testing.T) {
	m, _, p := newTestManager(t)
	p.getErr = errors.New("io")

	_, err := m.CurrentScope(context.Background(), "P1", false)
	require.ErrorIs(t, err, ErrRead)
}

func TestManager_ConcurrentUse(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sc := Scope{AccessGroup: Group(fmt.Sprintf("g%d", i%4)), ProjectIdentifier: fmt.Sprintf("P%d", i)}
			rec := []byte(fmt.Sprintf("u%d", i))
			if err := m.SetStoredUser(ctx, rec, sc); err != nil {
				t.Error(err)
				return
			}
			got, err := m.GetStoredUser(ctx, sc)
			if err != nil || !bytes.Equal(got, rec) {
				t.Errorf("scope %d: got %q, %v", i, got, err)
			}
			_ = m.SetStoredAccessGroup(ctx, sc.AccessGroup)
		}(i)
	}
	wg.Wait()
}

func TestManager_LogsFailuresWithoutRecord(t *testing.T) {
	var buf bytes.Buffer
	s, p := newMemSecrets(), newMemPrefs()
	m := NewManager(s, p, logging.NewTextLogger(&buf, "debug"))
	ctx := context.Background()

	require.NoError(t, m.SetStoredUser(ctx, []byte("top-secret-token"), Scope{ProjectIdentifier: "P1"}))
	assert.Contains(t, buf.String(), "component=storeduser")
	assert.Contains(t, buf.String(), "stored user written")
	assert.NotContains(t, buf.String(), "top-secret-token")

	s.readErr = errors.New("locked")
	_, _ = m.GetStoredUser(ctx, Scope{ProjectIdentifier: "P1"})
	assert.Contains(t, buf.String(), "level=WARN")
}

func TestError_Message(t *testing.T) {
	e := &Error{Kind: ErrRead, Op: "GetStoredUser", Key: "k", Err: errors.New("io")}
	assert.Equal(t, "GetStoredUser [k]: read error: io", e.Error())

	e = &Error{Kind: ErrNotFound, Op: "GetStoredUser", Key: "k"}
	assert.Equal(t, "GetStoredUser [k]: stored user not found", e.Error())

	assert.Nil(t, KindOf(errors.New("plain")))
}
