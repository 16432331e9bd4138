package keychain

import (
	"path/filepath"

	"github.com/99designs/keyring"
)

// Options configures the real keyring backends.
type Options struct {
	// Backends restricts and orders the backends tried, e.g. "keychain",
	// "secret-service", "wincred", "file". Empty means the platform default.
	Backends []string
	// FileDir is where the encrypted file backend keeps its entries.
	FileDir string
	// Passphrase is asked for the file backend passphrase.
	Passphrase keyring.PromptFunc
}

// NewOpener returns an Opener backed by keyring.Open.
func NewOpener(opts Options) Opener {
	return func(service string) (keyring.Keyring, error) {
		return keyring.Open(config(service, opts))
	}
}

func config(service string, opts Options) keyring.Config {
	var backends []keyring.BackendType
	for _, b := range opts.Backends {
		backends = append(backends, keyring.BackendType(b))
	}

	// The file backend names files after keys only, so each service gets
	// its own directory to keep access groups apart.
	fileDir := opts.FileDir
	if fileDir != "" {
		fileDir = filepath.Join(fileDir, service)
	}

	return keyring.Config{
		ServiceName:                    service,
		AllowedBackends:                backends,
		KeychainSynchronizable:         true,
		KeychainTrustApplication:       true,
		KeychainAccessibleWhenUnlocked: true,
		LibSecretCollectionName:        "login",
		KWalletAppID:                   service,
		KWalletFolder:                  service,
		WinCredPrefix:                  service,
		FileDir:                        fileDir,
		FilePasswordFunc:               opts.Passphrase,
	}
}
