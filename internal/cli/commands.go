package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/dmitrijs2005/userkeeper/internal/models"
	"github.com/dmitrijs2005/userkeeper/internal/storeduser"
)

// getSimpleText and getSecret are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getSecret = GetSecret

// ShowGroup prints the recorded access group.
func (a *App) ShowGroup(ctx context.Context) error {
	group, err := a.manager.GetStoredAccessGroup(ctx)
	if err != nil {
		return err
	}
	if group == nil {
		printlnFn("No access group recorded")
		return nil
	}
	printlnFn(fmt.Sprintf("Access group: %q", *group))
	return nil
}

// SetGroup records name as the access group and switches the scope to it.
// The stored user of the previous group stays where it is.
func (a *App) SetGroup(ctx context.Context, name string) error {
	return a.setGroup(ctx, &name)
}

// SetEmptyGroup records the empty access group, which is distinct from
// having none.
func (a *App) SetEmptyGroup(ctx context.Context) error {
	return a.setGroup(ctx, storeduser.Group(""))
}

// ClearGroup forgets the recorded access group.
func (a *App) ClearGroup(ctx context.Context) error {
	return a.setGroup(ctx, nil)
}

func (a *App) setGroup(ctx context.Context, group *string) error {
	if err := a.manager.SetStoredAccessGroup(ctx, group); err != nil {
		return err
	}
	if err := a.refreshScope(ctx); err != nil {
		return err
	}
	printlnFn("Scope:", a.getStatus())
	return nil
}

// Save prompts for the user's fields and stores the user under the current
// scope, replacing any previous one.
func (a *App) Save(ctx context.Context) error {
	uid, err := getSimpleText(a.reader, "Enter user id", os.Stdout)
	if err != nil {
		return err
	}
	if uid == "" {
		return errors.New("user id is required")
	}
	email, err := getSimpleText(a.reader, "Enter email (optional)", os.Stdout)
	if err != nil {
		return err
	}

	idToken, err := getSecret("Enter ID token (optional)", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(idToken)

	refreshToken, err := getSecret("Enter refresh token", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(refreshToken)

	u := &models.User{
		UID:               uid,
		Email:             email,
		ProviderID:        "password",
		IDToken:           string(idToken),
		RefreshToken:      string(refreshToken),
		ProjectIdentifier: a.scope.ProjectIdentifier,
	}
	if err := a.manager.SaveUser(ctx, u, a.scope); err != nil {
		return err
	}
	printlnFn("Saved user", uid)
	return nil
}

// SaveAnonymous stores a fresh anonymous user under the current scope.
func (a *App) SaveAnonymous(ctx context.Context) error {
	u := models.NewAnonymousUser(a.scope.ProjectIdentifier)
	if err := a.manager.SaveUser(ctx, u, a.scope); err != nil {
		return err
	}
	printlnFn("Saved anonymous user", u.UID)
	return nil
}

// Show prints the user stored under the current scope. Tokens are not
// printed; the ID token expiry is shown when it can be read.
func (a *App) Show(ctx context.Context) error {
	u, err := a.manager.LoadUser(ctx, a.scope)
	if errors.Is(err, storeduser.ErrNotFound) {
		printlnFn("No user stored for", a.getStatus())
		return nil
	}
	if err != nil {
		return err
	}

	printlnFn("UID:        ", u.UID)
	if u.Email != "" {
		printlnFn("Email:      ", u.Email)
	}
	printlnFn("Provider:   ", u.ProviderID)
	printlnFn("Anonymous:  ", u.IsAnonymous)
	printlnFn("Refresh:    ", u.RefreshToken != "")

	exp, err := u.TokenExpiry()
	switch {
	case errors.Is(err, models.ErrNoIDToken):
	case err != nil:
		printlnFn("ID token:    unreadable")
	case exp.IsZero():
		printlnFn("ID token:    no expiry")
	default:
		printlnFn("ID token:    expires", exp.UTC().Format(time.RFC3339))
	}
	return nil
}

// Remove deletes the user stored under the current scope.
func (a *App) Remove(ctx context.Context) error {
	if err := a.manager.RemoveStoredUser(ctx, a.scope); err != nil {
		return err
	}
	printlnFn("Removed stored user for", a.getStatus())
	return nil
}

// Migrate moves an access group recorded by an older release.
func (a *App) Migrate(ctx context.Context) error {
	moved, err := a.manager.MigrateLegacyAccessGroup(ctx)
	if err != nil {
		return err
	}
	if !moved {
		printlnFn("Nothing to migrate")
		return nil
	}
	if err := a.refreshScope(ctx); err != nil {
		return err
	}
	printlnFn("Migrated; scope:", a.getStatus())
	return nil
}

// Keys lists the secret-store keys of the current access group.
func (a *App) Keys(ctx context.Context) error {
	keys, err := a.secrets.Keys(ctx, a.scope.AccessGroup)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		printlnFn("No keys")
		return nil
	}
	for _, k := range keys {
		marker := " "
		if k == a.scope.Key() {
			marker = "*"
		}
		printlnFn(marker, k)
	}
	return nil
}
