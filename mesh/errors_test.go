package mesh

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError(t *testing.T) {
	testCases := []struct {
		name       string
		candidates []string
		closest    string
		msg        string
	}{
		{"Wset", []string{"East", "West", "Top"}, "West",
			`there is no boundary "Wset" in mesh (did you mean "West"?)`},
		{"Inflow", []string{"East", "West"}, "",
			`there is no boundary "Inflow" in mesh`},
		{"x", nil, "", `there is no boundary "x" in mesh`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := NewNotFoundError("boundary", tc.name, tc.candidates)
			assert.Equal(t, tc.closest, err.Closest)
			assert.EqualError(t, err, tc.msg)

			wrapped := fmt.Errorf("extract: %w", err)
			assert.ErrorIs(t, wrapped, ErrNotFound)
			var nf *NotFoundError
			assert.True(t, errors.As(wrapped, &nf))
			assert.Equal(t, "boundary", nf.Kind)
		})
	}
}
