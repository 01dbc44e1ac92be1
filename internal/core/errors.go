package core

import (
	"errors"
	"fmt"
)

// ErrNotFound is the sentinel wrapped by every NotFoundError.
var ErrNotFound = errors.New("not found")

// NotFoundKind classifies why nothing could be resolved.
type NotFoundKind int

const (
	// NoCandidates means filtering or walking left nothing to choose from.
	NoCandidates NotFoundKind = iota
	// UnknownQualifier means a submodule or sub-package name is not known.
	UnknownQualifier
	// UnknownParent means the repository or package itself does not exist.
	UnknownParent
)

func (k NotFoundKind) String() string {
	switch k {
	case NoCandidates:
		return "no candidates"
	case UnknownQualifier:
		return "unknown qualifier"
	case UnknownParent:
		return "unknown parent"
	}
	return fmt.Sprintf("NotFoundKind(%d)", int(k))
}

// NotFoundError reports a resolution that produced nothing.
// Subject is the plural noun for NoCandidates ("tags", "versions") and the
// singular noun otherwise ("submodule", "repo", "package").
type NotFoundError struct {
	Kind      NotFoundKind
	Subject   string
	Filtered  bool
	Ecosystem string
	Name      string
}

// Error returns the user-facing message, e.g. "no matching tags found".
func (e *NotFoundError) Error() string {
	if e.Kind == NoCandidates {
		if e.Filtered {
			return fmt.Sprintf("no matching %s found", e.Subject)
		}
		return fmt.Sprintf("no %s found", e.Subject)
	}
	return fmt.Sprintf("%s not found", e.Subject)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NoCandidatesError builds the empty-result condition.
func NoCandidatesError(subject string, filtered bool) *NotFoundError {
	return &NotFoundError{Kind: NoCandidates, Subject: subject, Filtered: filtered}
}

// IsNotFound reports whether err is, or wraps, a NotFoundError of the given kind.
func IsNotFound(err error, kind NotFoundKind) bool {
	var nf *NotFoundError
	return errors.As(err, &nf) && nf.Kind == kind
}
