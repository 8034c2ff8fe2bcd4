package param

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/paramedit/internal/units"
)

// Parser turns command strings into Records, validating units against a
// taxonomy.
type Parser struct {
	Units *units.Taxonomy
}

// NewParser creates a parser bound to tax. A nil taxonomy selects
// units.Default().
func NewParser(tax *units.Taxonomy) *Parser {
	if tax == nil {
		tax = units.Default()
	}
	return &Parser{Units: tax}
}

var defaultParser = NewParser(nil)

// Parse parses a `name = value[unit]` command with the default taxonomy.
func Parse(input string) (Record, error) {
	return defaultParser.Parse(input)
}

// ParseExpression parses a host expression (`10 mm`, `6`) with the default
// taxonomy.
func ParseExpression(expr string) (float64, string, error) {
	return defaultParser.ParseExpression(expr)
}

// Parse splits input on the first '=' into a name and a value, and the
// value into a numeric literal and a unit suffix.
//
// Whitespace around the name and inside the value is ignored. Names are
// NFC-normalized so visually identical names share one key.
func (p *Parser) Parse(input string) (Record, error) {
	trimmed := strings.TrimSpace(input)

	name, value, ok := strings.Cut(trimmed, "=")
	if !ok {
		return Record{}, &FormatError{Input: input, Reason: "invalid parameter format, expected 'name=value'"}
	}

	name = norm.NFC.String(strings.TrimSpace(name))
	value = strings.TrimSpace(value)
	if name == "" || value == "" {
		return Record{}, &FormatError{Input: input, Reason: "parameter name and value cannot be empty"}
	}
	if !ValidName(name) {
		return Record{}, &FormatError{Input: input, Reason: "invalid parameter name " + strconv.Quote(name)}
	}

	num, unit, err := p.splitValue(input, value)
	if err != nil {
		return Record{}, err
	}

	return Record{Name: name, Value: num, Unit: unit}, nil
}

// ParseExpression parses an expression of the form `<number>[ <unit>]`.
func (p *Parser) ParseExpression(expr string) (float64, string, error) {
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" {
		return 0, "", &FormatError{Input: expr, Reason: "expression cannot be empty"}
	}
	return p.splitValue(expr, trimmed)
}

// splitValue separates the leading numeric run (digits, '.', '-') from the
// unit suffix. Spaces are removed first, so "10 mm" and "10mm" are equal.
// Characters that cannot appear in a unit symbol are dropped from the
// suffix.
func (p *Parser) splitValue(input, value string) (float64, string, error) {
	compact := strings.Join(strings.Fields(value), "")

	end := strings.IndexFunc(compact, func(r rune) bool {
		return !isNumericRune(r)
	})
	if end < 0 {
		end = len(compact)
	}
	numeric, unit := compact[:end], compact[end:]

	if numeric == "" {
		return 0, "", &FormatError{Input: input, Reason: "parameter must have a numeric value"}
	}
	num, err := strconv.ParseFloat(numeric, 64)
	if err != nil {
		return 0, "", &FormatError{Input: input, Reason: "invalid numeric value: " + numeric}
	}

	unit = strings.Map(func(r rune) rune {
		if isUnitRune(r) {
			return r
		}
		return -1
	}, unit)
	if unit == "" {
		return num, "", nil
	}
	if !p.Units.IsValid(unit) {
		return 0, "", &UnknownUnitError{Input: input, Unit: unit}
	}
	return num, unit, nil
}

// FormatExpression renders a value and unit as host expression text:
// "10 mm" or "6". The value uses the shortest representation that
// round-trips.
func FormatExpression(value float64, unit string) string {
	s := strconv.FormatFloat(value, 'f', -1, 64)
	if unit == "" {
		return s
	}
	return s + " " + unit
}

// ValidName reports whether name can be used as a parameter name: a letter
// or underscore followed by letters, digits or underscores.
func ValidName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}

func isNumericRune(r rune) bool {
	return unicode.IsDigit(r) || r == '.' || r == '-'
}

// Unit symbols such as inH2O and fl_oz need digits and underscores after
// the first letter.
func isUnitRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
