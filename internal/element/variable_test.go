package element

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariableValueNotSet(t *testing.T) {
	v := NewUnknown("F_P1x")
	_, err := v.Value()
	assert.ErrorIs(t, err, ErrValueNotSet)
	assert.Equal(t, "1*F_P1x", v.String())

	v.Set(12.5)
	got, err := v.Value()
	require.NoError(t, err)
	assert.Equal(t, 12.5, got)
	assert.Equal(t, "12.5", v.String())

	v.Clear()
	assert.False(t, v.Known())
	_, err = v.Value()
	assert.ErrorIs(t, err, ErrValueNotSet)
}

func TestKnownVariable(t *testing.T) {
	v := NewKnown("F1_y", -100)
	assert.True(t, v.Known())
	got, err := v.Value()
	require.NoError(t, err)
	assert.Equal(t, -100.0, got)
}
