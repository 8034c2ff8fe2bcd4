package param

import "fmt"

// Record is a parsed `name = value[unit]` command.
// An empty Unit means the parameter is unitless.
type Record struct {
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Unit    string  `json:"unit"`
	Comment string  `json:"comment,omitempty"`
}

// Expression returns the host expression text for the record.
func (r Record) Expression() string {
	return FormatExpression(r.Value, r.Unit)
}

// Unitless reports whether the record carries no unit.
func (r Record) Unitless() bool {
	return r.Unit == ""
}

// Parameter is a user parameter as held by the design document.
type Parameter struct {
	Name       string  `json:"name"`
	Expression string  `json:"expression"`
	Unit       string  `json:"unit"`
	Value      float64 `json:"value"`
	Comment    string  `json:"comment,omitempty"`
	CreatedSeq int64   `json:"created_seq"`
	UpdatedSeq int64   `json:"updated_seq"`
}

// Unitless reports whether the parameter carries no unit.
func (p Parameter) Unitless() bool {
	return p.Unit == ""
}

// Op is the kind of mutation recorded in the change history.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Change is one entry of the append-only change history.
// Seq is a logical clock; ordering never depends on wall time.
type Change struct {
	ID            string `json:"id"`
	Seq           int64  `json:"seq"`
	Op            Op     `json:"op"`
	Name          string `json:"name"`
	OldExpression string `json:"old_expression,omitempty"`
	NewExpression string `json:"new_expression,omitempty"`
	OldUnit       string `json:"old_unit,omitempty"`
	NewUnit       string `json:"new_unit,omitempty"`
}

// String renders the change as a single log line.
func (c Change) String() string {
	switch c.Op {
	case OpCreate:
		return fmt.Sprintf("#%d create %s = %s", c.Seq, c.Name, c.NewExpression)
	case OpDelete:
		return fmt.Sprintf("#%d delete %s (was %s)", c.Seq, c.Name, c.OldExpression)
	default:
		return fmt.Sprintf("#%d update %s: %s -> %s", c.Seq, c.Name, c.OldExpression, c.NewExpression)
	}
}
