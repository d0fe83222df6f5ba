package mesh

import (
	"errors"
	"fmt"

	"github.com/agnivade/levenshtein"
)

var (
	ErrDimensionMismatch      = errors.New("dimension mismatch")
	ErrNotFound               = errors.New("not found")
	ErrUnsupportedCardinality = errors.New("unsupported cardinality")
	ErrInvalidTopology        = errors.New("invalid topology")
	ErrInvalidMesh            = errors.New("invalid mesh")
)

// NotFoundError reports a named region, boundary or well missing from a mesh
type NotFoundError struct {
	Kind    string // "region", "boundary" or "well"
	Name    string
	Closest string // Nearest existing name, empty if there is none
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("there is no %s %q in mesh", e.Kind, e.Name)
	if e.Closest != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Closest)
	}
	return msg
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewNotFoundError builds a NotFoundError, suggesting the candidate with the
// smallest edit distance to name
func NewNotFoundError(kind, name string, candidates []string) *NotFoundError {
	var (
		closest string
		best    = -1
	)
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(name, c)
		// Only suggest names that share at least half their characters
		if d > (len(c)+1)/2 {
			continue
		}
		if best < 0 || d < best {
			best, closest = d, c
		}
	}
	return &NotFoundError{Kind: kind, Name: name, Closest: closest}
}
