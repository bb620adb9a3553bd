package unit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		token      string
		wantSymbol string
	}{
		{"km", "km"},
		{"kilometers", "km"},
		{"C", "C"},
		{"celsius", "C"},
		{"mps", "m/s"},
		{"mph", "mph"},
	}
	for _, tt := range tests {
		u, ok := Resolve(tt.token)
		require.True(t, ok, "Resolve(%q) failed", tt.token)
		assert.Equal(t, tt.wantSymbol, u.Symbol)
	}
}

func TestResolve_ComposedSymbol(t *testing.T) {
	u, ok := Resolve("km/h")
	require.True(t, ok)
	assert.Equal(t, "km/h", u.Symbol)
	assert.Equal(t, speedDims, u.Dims)

	mps, ok := Resolve("mps")
	require.True(t, ok)
	got, err := Convert(1, u, mps)
	require.NoError(t, err)
	assert.InDelta(t, 1000.0/3600.0, got, 1e-9)
}

func TestResolve_Unknown(t *testing.T) {
	_, ok := Resolve("not-a-unit")
	assert.False(t, ok)
}

func TestConvert_Linear(t *testing.T) {
	km, _ := Resolve("km")
	m, _ := Resolve("m")
	got, err := Convert(1, km, m)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, got)
}

func TestConvert_Affine(t *testing.T) {
	c, _ := Resolve("C")
	f, _ := Resolve("F")
	got, err := Convert(0, c, f)
	require.NoError(t, err)
	assert.InDelta(t, 32.0, got, 1e-9)
}

func TestConvert_IncompatibleDimensions(t *testing.T) {
	m, _ := Resolve("m")
	s, _ := Resolve("s")
	_, err := Convert(1, m, s)
	assert.ErrorIs(t, err, ErrIncompatibleDimensions)
}

func TestMul_ComposesSymbolAndDimension(t *testing.T) {
	m, _ := Resolve("m")
	got, err := m.Mul(m)
	require.NoError(t, err)
	assert.Equal(t, "m²", got.Symbol)
	assert.Equal(t, f(Length, 2), got.Dims)
}

func TestDiv_Cancels(t *testing.T) {
	m, _ := Resolve("m")
	got, err := m.Div(m)
	require.NoError(t, err)
	assert.True(t, got.Dims.IsDimensionless())
	assert.Equal(t, "", got.Symbol)
}

func TestMul_RejectsAffine(t *testing.T) {
	c, _ := Resolve("C")
	m, _ := Resolve("m")
	_, err := c.Mul(m)
	assert.ErrorIs(t, err, ErrAffineCompound)
}

func TestPow(t *testing.T) {
	km, _ := Resolve("km")
	got, err := km.Pow(3)
	require.NoError(t, err)
	assert.Equal(t, "km³", got.Symbol)
	assert.Equal(t, f(Length, 3), got.Dims)
}

// Volume/energy/power are decomposed compounds, not axes of their own
// (see the Dimension doc comment), so a registered "L"/"J"/"W" must
// carry the same Fingerprint as the equivalent length/mass/time Mul/Div
// chain rather than some dedicated dimension index.
func TestResolve_DecomposedCompoundUnits(t *testing.T) {
	m, _ := Resolve("m")
	kg, _ := Resolve("kg")
	s, _ := Resolve("s")

	liter, ok := Resolve("L")
	require.True(t, ok)
	cubicMeter, err := m.Pow(3)
	require.NoError(t, err)
	assert.Equal(t, cubicMeter.Dims, liter.Dims)
	assert.InDelta(t, 0.001, liter.Scale, 1e-12)

	joule, ok := Resolve("J")
	require.True(t, ok)
	massLenSq, err := kg.Mul(m)
	require.NoError(t, err)
	massLenSq, err = massLenSq.Mul(m)
	require.NoError(t, err)
	wantEnergy, err := massLenSq.Div(s)
	require.NoError(t, err)
	wantEnergy, err = wantEnergy.Div(s)
	require.NoError(t, err)
	assert.Equal(t, wantEnergy.Dims, joule.Dims)

	watt, ok := Resolve("W")
	require.True(t, ok)
	wantPower, err := wantEnergy.Div(s)
	require.NoError(t, err)
	assert.Equal(t, wantPower.Dims, watt.Dims)

	got, err := Convert(1, liter, cubicMeter)
	require.NoError(t, err)
	assert.InDelta(t, 0.001, got, 1e-12)
}
