package storeduser

import (
	"net/url"
	"strings"
)

const (
	// AccessGroupKey is the preference key holding the active access group.
	AccessGroupKey = "userkeeper_stored_user_access_group_v2"

	// keyNamespace prefixes every stored-user key.
	keyNamespace = "userkeeper_stored_user_v2"

	keySeparator = "|"

	// noAccessGroup stands for "no access group". url.QueryEscape always
	// escapes '*', so no explicit group can encode to it.
	noAccessGroup = "*"
)

// BuildKey derives the secret-store key of the stored user for a scope.
//
// Layout: namespace|project|sync|group, where project and group are
// query-escaped (the separator never survives escaping), sync is "1" or "0",
// and a nil group is written as noAccessGroup. Distinct inputs always yield
// distinct keys; in particular a nil group and an empty group differ.
func BuildKey(projectIdentifier string, shareAcrossDevices bool, accessGroup *string) string {
	sync := "0"
	if shareAcrossDevices {
		sync = "1"
	}

	group := noAccessGroup
	if accessGroup != nil {
		group = url.QueryEscape(*accessGroup)
	}

	return strings.Join([]string{
		keyNamespace,
		url.QueryEscape(projectIdentifier),
		sync,
		group,
	}, keySeparator)
}

// Scope selects one stored-user record.
type Scope struct {
	// AccessGroup is the sharing namespace; nil means none.
	AccessGroup *string
	// ShareAcrossDevices marks the entry for synchronization to the
	// user's other devices.
	ShareAcrossDevices bool
	// ProjectIdentifier tells apart backend projects configured in one app.
	ProjectIdentifier string
}

// Key returns BuildKey for s.
func (s Scope) Key() string {
	return BuildKey(s.ProjectIdentifier, s.ShareAcrossDevices, s.AccessGroup)
}

// Group returns a pointer to name, for building scopes inline.
func Group(name string) *string {
	return &name
}
