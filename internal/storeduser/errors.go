package storeduser

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is.
var (
	// ErrNotFound means no user is stored under the requested scope. It is
	// an expected outcome: there is simply no session to restore.
	ErrNotFound = errors.New("stored user not found")
	ErrRead     = errors.New("read error")
	ErrWrite    = errors.New("write error")
	ErrRemove   = errors.New("remove error")
	ErrDecode   = errors.New("decode error")
)

var errInvalidUTF8 = errors.New("stored bytes are not valid UTF-8")

// Error describes a failed coordinator operation. errors.Is matches both
// the Kind and the underlying collaborator error.
type Error struct {
	Kind error
	Op   string
	Key  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s [%s]: %v", e.Op, e.Key, e.Kind)
	}
	return fmt.Sprintf("%s [%s]: %v: %v", e.Op, e.Key, e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// KindOf returns the kind of err, or nil when err is not a coordinator error.
func KindOf(err error) error {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return nil
}
