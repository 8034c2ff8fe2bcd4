package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_CategoryCount(t *testing.T) {
	assert.Len(t, Default().Categories(), 33)
}

func TestDefault_IsValid(t *testing.T) {
	tax := Default()

	for _, sym := range []string{"mm", "in", "deg", "kg", "inH2O", "fl_oz", "circular_mil", "Hz", "LPH"} {
		assert.True(t, tax.IsValid(sym), "expected %q to be valid", sym)
	}
	for _, sym := range []string{"", "zz", "MM", "inches", "degree"} {
		assert.False(t, tax.IsValid(sym), "expected %q to be invalid", sym)
	}
}

func TestCategoryOf(t *testing.T) {
	tax := Default()

	tests := []struct {
		symbol string
		want   string
	}{
		{"mm", "LENGTH"},
		{"nauticalMile", "LENGTH"},
		{"rad", "ANGLE"},
		{"K", "TEMPERATURE"},
		{"psi", "PRESSURE"},
		{"S", "CONDUCTANCE"},
		{"s", "TIME"},
		{"", NoUnits},
		{"furlong", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			assert.Equal(t, tt.want, tax.CategoryOf(tt.symbol))
		})
	}
}

func TestCompatible(t *testing.T) {
	tax := Default()

	assert.True(t, tax.Compatible("mm", "in"))
	assert.True(t, tax.Compatible("", ""))
	assert.False(t, tax.Compatible("mm", ""))
	assert.False(t, tax.Compatible("", "mm"))
	assert.False(t, tax.Compatible("mm", "kg"))
	assert.False(t, tax.Compatible("zz", "zz"))
}

func TestUnits_SortedCopy(t *testing.T) {
	tax := Default()

	got := tax.Units("ANGLE")
	require.Equal(t, []string{"deg", "grad", "rad"}, got)

	got[0] = "mutated"
	assert.Equal(t, []string{"deg", "grad", "rad"}, tax.Units("ANGLE"))

	assert.Nil(t, tax.Units("NOT_A_CATEGORY"))
}

func TestNew_CopiesInput(t *testing.T) {
	table := map[string][]string{"LENGTH": {"mm"}}
	tax := New(table)

	table["LENGTH"][0] = "cm"
	table["MASS"] = []string{"kg"}

	assert.True(t, tax.IsValid("mm"))
	assert.False(t, tax.IsValid("cm"))
	assert.False(t, tax.IsValid("kg"))
}

func TestNew_DuplicateSymbolOwnedBySortedFirstCategory(t *testing.T) {
	tax := New(map[string][]string{
		"ZETA":  {"x"},
		"ALPHA": {"x"},
	})
	assert.Equal(t, "ALPHA", tax.CategoryOf("x"))
}

func TestSymbols_Flattened(t *testing.T) {
	tax := New(map[string][]string{
		"A": {"b", "a"},
		"B": {"c", ""},
	})
	assert.Equal(t, []string{"a", "b", "c"}, tax.Symbols())
}
