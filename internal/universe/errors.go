package universe

import (
	"errors"
	"fmt"
)

// ErrEmptyUniverse is returned when a source is readable but yields no
// usable symbols after normalization.
var ErrEmptyUniverse = errors.New("universe: no symbols")

// AcquisitionError wraps a transport failure while loading a source.
type AcquisitionError struct {
	Source string
	Err    error
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("universe: acquisition failed for %s: %v", e.Source, e.Err)
}

func (e *AcquisitionError) Unwrap() error { return e.Err }

// MalformedSourceError means the source was reachable but carried no
// recognizable symbol table or column.
type MalformedSourceError struct {
	Source string
	Reason string
}

func (e *MalformedSourceError) Error() string {
	return fmt.Sprintf("universe: malformed source %s: %s", e.Source, e.Reason)
}
