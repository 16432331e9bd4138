package config

import (
	"flag"
	"os"
	"strings"

	"github.com/dmitrijs2005/userkeeper/internal/flagx"
)

// parseFlags populates cfg from command-line flags. Only the flags listed in
// the package documentation are looked at; it panics on parse errors.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-b", "-f", "-p", "-l"}, "-s")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServiceName, "a", cfg.ServiceName, "keyring service name")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "preference database path")
	backends := fs.String("b", strings.Join(cfg.KeyringBackends, ","), "comma-separated keyring backends")
	fs.StringVar(&cfg.KeyringFileDir, "f", cfg.KeyringFileDir, "directory of the encrypted file keyring")
	fs.StringVar(&cfg.ProjectIdentifier, "p", cfg.ProjectIdentifier, "project identifier")
	fs.BoolVar(&cfg.ShareAcrossDevices, "s", cfg.ShareAcrossDevices, "share the stored user across devices")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.KeyringBackends = splitList(*backends)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
