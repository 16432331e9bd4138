package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/dmitrijs2005/userkeeper/internal/config"
	"github.com/dmitrijs2005/userkeeper/internal/filex"
	"github.com/dmitrijs2005/userkeeper/internal/keychain"
	"github.com/dmitrijs2005/userkeeper/internal/logging"
	"github.com/dmitrijs2005/userkeeper/internal/prefs"
	"github.com/dmitrijs2005/userkeeper/internal/storeduser"
)

// keyLister lists the secret-store keys of one access group.
type keyLister interface {
	Keys(ctx context.Context, accessGroup *string) ([]string, error)
}

type App struct {
	config  *config.Config
	manager *storeduser.Manager
	secrets keyLister
	log     logging.Logger
	reader  *bufio.Reader
	scope   storeduser.Scope
	db      *sql.DB
}

// NewApp opens the preference database and the keyring described by c and
// builds the coordinator on top of them.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.NewTextLogger(os.Stderr, c.LogLevel)

	dbPath, err := filex.EnsureParentDir(c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error preparing preference database location", "err", err)
		return nil, err
	}

	fileDir := c.KeyringFileDir
	if fileDir != "" {
		if fileDir, err = filex.EnsureDir(fileDir); err != nil {
			log.Error(ctx, "error preparing keyring directory", "err", err)
			return nil, err
		}
	}

	db, err := prefs.OpenSQLite(ctx, dbPath)
	if err != nil {
		log.Error(ctx, "error initializing preference database", "err", err)
		return nil, err
	}

	secrets := keychain.NewStore(c.ServiceName, keychain.NewOpener(keychain.Options{
		Backends:   c.KeyringBackends,
		FileDir:    fileDir,
		Passphrase: passphrasePrompt(os.Stderr),
	}))

	manager := storeduser.NewManager(secrets, prefs.NewSQLiteRepository(db), log)

	a := newApp(c, manager, secrets, log, bufio.NewReader(os.Stdin))
	a.db = db
	return a, nil
}

func newApp(c *config.Config, m *storeduser.Manager, secrets keyLister, log logging.Logger, r *bufio.Reader) *App {
	return &App{
		config:  c,
		manager: m,
		secrets: secrets,
		log:     log,
		reader:  r,
		scope: storeduser.Scope{
			ShareAcrossDevices: c.ShareAcrossDevices,
			ProjectIdentifier:  c.ProjectIdentifier,
		},
	}
}

// Bootstrap migrates a legacy access-group setting and restores the scope
// the stored user was last saved under.
func (a *App) Bootstrap(ctx context.Context) error {
	moved, err := a.manager.MigrateLegacyAccessGroup(ctx)
	if err != nil {
		a.log.Warn(ctx, "legacy access group migration failed", "err", err)
	} else if moved {
		a.log.Info(ctx, "legacy access group migrated")
	}
	return a.refreshScope(ctx)
}

func (a *App) refreshScope(ctx context.Context) error {
	scope, err := a.manager.CurrentScope(ctx, a.config.ProjectIdentifier, a.config.ShareAcrossDevices)
	if err != nil {
		return err
	}
	a.scope = scope
	return nil
}

// Run bootstraps the scope and runs the REPL on stdin.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	if err := a.Bootstrap(ctx); err != nil {
		a.log.Error(ctx, "cannot restore stored scope", "err", err)
	}

	printlnFn("userkeeper (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

// Close releases the preference database.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) getStatus() string {
	group := "<none>"
	if a.scope.AccessGroup != nil {
		group = fmt.Sprintf("%q", *a.scope.AccessGroup)
	}
	shared := ""
	if a.scope.ShareAcrossDevices {
		shared = " shared"
	}
	return fmt.Sprintf("(%s group=%s%s)", a.scope.ProjectIdentifier, group, shared)
}
