package units

import (
	"sort"
)

// Category names returned for units that are not part of any table entry.
const (
	NoUnits = "NO_UNITS"
	Unknown = "UNKNOWN"
)

// Taxonomy is an immutable category → unit-symbol table.
type Taxonomy struct {
	categories map[string]map[string]struct{}
	bySymbol   map[string]string
}

// defaultTable lists the unit categories understood by the design document.
var defaultTable = map[string][]string{
	"LENGTH":              {"mm", "cm", "m", "hm", "micron", "in", "ft", "yd", "mi", "nauticalMile", "mil"},
	"ANGLE":               {"rad", "deg", "grad"},
	"CURRENCY":            {"dol"},
	"CURRENT":             {"A"},
	"LUMINOSITY":          {"cd", "EV"},
	"MASS":                {"g", "kg", "slug", "lbmass", "ouncemass", "tonmass"},
	"PIECES":              {"pcs"},
	"SUBSTANCE":           {"mole"},
	"TEMPERATURE":         {"K", "C", "F", "R"},
	"TIME":                {"s", "min", "hr"},
	"SOLID_ANGLE":         {"sr"},
	"SPEED":               {"mps", "fps", "mph", "knots"},
	"AREA":                {"acre", "circular_mil"},
	"VOLUME":              {"l", "gal", "qt", "pt", "cup", "fl_oz"},
	"PRESSURE":            {"mPa", "Pa", "MPa", "psi", "psf", "ksi", "bar", "atm", "inH2O", "ftH2O", "mH2O", "mmHg", "inHg"},
	"FORCE":               {"N", "dyne", "lbforce", "ounceforce", "tonforce"},
	"POWER":               {"W", "hp"},
	"ENERGY":              {"J", "erg", "calorie", "Btu"},
	"ANGULAR_VELOCITY":    {"rpm"},
	"LUMINOUS_FLUX":       {"lm"},
	"ILLUMINANCE":         {"lx"},
	"ELECTROMOTIVE_FORCE": {"V"},
	"RESISTANCE":          {"ohm"},
	"CHARGE":              {"columb"},
	"CAPACITANCE":         {"farad"},
	"CONDUCTANCE":         {"S", "mho"},
	"MAGNETIC_FLUX":       {"Wb", "maxwell"},
	"MAGNETIC_FIELD":      {"T", "gamma", "gauss"},
	"INDUCTANCE":          {"H"},
	"MAGNETIZING_FIELD":   {"oersted"},
	"FREQUENCY":           {"Hz"},
	"VISCOSITY":           {"poise"},
	"FLOW_RATE":           {"CCS", "CIS", "CFM", "CMH", "GPH", "LPH"},
}

var defaultTaxonomy = New(defaultTable)

// Default returns the built-in taxonomy.
func Default() *Taxonomy {
	return defaultTaxonomy
}

// New builds a taxonomy from a category table. The input is copied.
// When a symbol is listed under several categories the first category in
// sorted order owns it for CategoryOf lookups.
func New(table map[string][]string) *Taxonomy {
	t := &Taxonomy{
		categories: make(map[string]map[string]struct{}, len(table)),
		bySymbol:   make(map[string]string),
	}

	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		set := make(map[string]struct{}, len(table[name]))
		for _, sym := range table[name] {
			if sym == "" {
				continue
			}
			set[sym] = struct{}{}
			if _, ok := t.bySymbol[sym]; !ok {
				t.bySymbol[sym] = name
			}
		}
		t.categories[name] = set
	}
	return t
}

// IsValid reports whether symbol is in the flattened unit set.
func (t *Taxonomy) IsValid(symbol string) bool {
	_, ok := t.bySymbol[symbol]
	return ok
}

// CategoryOf returns the category of symbol, NoUnits for the empty unit and
// Unknown for a symbol outside the table.
func (t *Taxonomy) CategoryOf(symbol string) string {
	if symbol == "" {
		return NoUnits
	}
	if cat, ok := t.bySymbol[symbol]; ok {
		return cat
	}
	return Unknown
}

// Compatible reports whether two unit symbols can be used interchangeably:
// both empty, or both known and in the same category.
func (t *Taxonomy) Compatible(a, b string) bool {
	if a == "" || b == "" {
		return a == b
	}
	ca, okA := t.bySymbol[a]
	cb, okB := t.bySymbol[b]
	return okA && okB && ca == cb
}

// Categories returns the category names in sorted order.
func (t *Taxonomy) Categories() []string {
	names := make([]string, 0, len(t.categories))
	for name := range t.categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Units returns the sorted symbols of a category, or nil if the category
// does not exist.
func (t *Taxonomy) Units(category string) []string {
	set, ok := t.categories[category]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(set))
	for sym := range set {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}

// Symbols returns the flattened symbol set in sorted order.
func (t *Taxonomy) Symbols() []string {
	out := make([]string, 0, len(t.bySymbol))
	for sym := range t.bySymbol {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}
