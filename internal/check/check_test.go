package check

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverity_Valid(t *testing.T) {
	assert.True(t, SeverityError.Valid())
	assert.True(t, SeverityWarning.Valid())
	assert.True(t, SeverityInfo.Valid())
	assert.False(t, Severity("").Valid())
	assert.False(t, Severity("fatal").Valid())
}

func TestDefinition_Validate(t *testing.T) {
	fn := func(ctx context.Context, ec *Context) ([]Finding, error) { return nil, nil }

	t.Run("well formed", func(t *testing.T) {
		d := Definition{ID: "x", Severity: SeverityWarning, Fn: fn}
		require.NoError(t, d.Validate())
	})

	t.Run("empty identifier", func(t *testing.T) {
		d := Definition{Severity: SeverityWarning, Fn: fn}
		require.Error(t, d.Validate())
	})

	t.Run("missing predicate", func(t *testing.T) {
		d := Definition{ID: "x", Severity: SeverityWarning}
		err := d.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "declares no predicate")
	})

	t.Run("invalid severity", func(t *testing.T) {
		d := Definition{ID: "x", Severity: "fatal", Fn: fn}
		err := d.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), `invalid severity "fatal"`)
	})
}

func TestDecodeParams(t *testing.T) {
	type params struct {
		TriMaxCount int     `mapstructure:"triMaxCount"`
		Deviation   float64 `mapstructure:"deviation"`
	}

	t.Run("typed values", func(t *testing.T) {
		var p params
		err := DecodeParams(map[string]any{"triMaxCount": 90000, "deviation": 0.001}, &p)
		require.NoError(t, err)
		assert.Equal(t, 90000, p.TriMaxCount)
		assert.InDelta(t, 0.001, p.Deviation, 1e-9)
	})

	t.Run("weakly typed values coerce", func(t *testing.T) {
		// Profile formats may deliver numbers as strings or floats.
		var p params
		err := DecodeParams(map[string]any{"triMaxCount": "1500", "deviation": 1}, &p)
		require.NoError(t, err)
		assert.Equal(t, 1500, p.TriMaxCount)
		assert.InDelta(t, 1.0, p.Deviation, 1e-9)
	})

	t.Run("unconvertible value fails", func(t *testing.T) {
		var p params
		err := DecodeParams(map[string]any{"triMaxCount": "plenty"}, &p)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid check parameters")
	})
}
