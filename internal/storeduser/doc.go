// Package storeduser persists the "current authenticated user" of a device
// so sign-in state survives process restarts.
//
// A Manager coordinates two collaborators: a SecretStore (keychain-like,
// partitioned by access group, optionally synchronized across the user's
// devices) holding the user record, and a PreferenceStore (plain local
// key/value) holding the access group the record was last saved under.
//
// The record is addressed by a composite key built from a fixed namespace,
// the project identifier, the sync flag and the access group (see BuildKey).
// The access-group setting always lives under the fixed AccessGroupKey so it
// can bootstrap the scope at the next launch.
//
// Stored-user operations never touch the access-group setting; callers that
// switch groups update it themselves with SetStoredAccessGroup.
//
// A Manager holds no mutable state and is safe for concurrent use.
package storeduser
