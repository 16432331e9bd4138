// Package keychain implements the secret store on top of the operating
// system keyring (macOS Keychain, Secret Service, KWallet, Windows
// Credential Manager, or an encrypted file as a last resort) through
// github.com/99designs/keyring.
//
// Access groups are mapped to keyring services: entries written under one
// group live in a keyring of their own and cannot be read under another.
// Cross-device synchronization is a per-item flag honored by backends that
// support it (the macOS Keychain with iCloud); other backends ignore it.
package keychain
