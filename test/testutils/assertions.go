// Package testutils provides custom assertions and testing utilities
package testutils

import (
	"testing"

	"github.com/alchemorsel/composer/internal/domain/ingredient"
	"github.com/stretchr/testify/assert"
)

// ProfileAssertions provides Smaakprofiel assertion methods
type ProfileAssertions struct {
	t     *testing.T
	delta float64
}

// NewProfileAssertions creates a profile assertions helper comparing within 1e-9
func NewProfileAssertions(t *testing.T) *ProfileAssertions {
	return &ProfileAssertions{t: t, delta: 1e-9}
}

// Equal asserts two profiles match on every axis
func (pa *ProfileAssertions) Equal(expected, actual ingredient.Smaakprofiel, msgAndArgs ...interface{}) {
	pa.t.Helper()
	assert.InDelta(pa.t, expected.Mondgevoel.Strak, actual.Mondgevoel.Strak, pa.delta, msgAndArgs...)
	assert.InDelta(pa.t, expected.Mondgevoel.Filmend, actual.Mondgevoel.Filmend, pa.delta, msgAndArgs...)
	assert.InDelta(pa.t, expected.Mondgevoel.Droog, actual.Mondgevoel.Droog, pa.delta, msgAndArgs...)
	assert.InDelta(pa.t, expected.Smaakrijkdom.Gehalte, actual.Smaakrijkdom.Gehalte, pa.delta, msgAndArgs...)
	assert.InDelta(pa.t, expected.Smaakrijkdom.Type, actual.Smaakrijkdom.Type, pa.delta, msgAndArgs...)
}

// Normalized asserts the mouthfeel vector sums to at most 1 and richness is in range
func (pa *ProfileAssertions) Normalized(p ingredient.Smaakprofiel, msgAndArgs ...interface{}) {
	pa.t.Helper()
	assert.LessOrEqual(pa.t, p.Mondgevoel.Sum(), 1.0+pa.delta, msgAndArgs...)
	assert.GreaterOrEqual(pa.t, p.Smaakrijkdom.Gehalte, 0.0, msgAndArgs...)
	assert.LessOrEqual(pa.t, p.Smaakrijkdom.Gehalte, 1.0, msgAndArgs...)
	assert.GreaterOrEqual(pa.t, p.Smaakrijkdom.Type, 0.0, msgAndArgs...)
	assert.LessOrEqual(pa.t, p.Smaakrijkdom.Type, 1.0, msgAndArgs...)
}
