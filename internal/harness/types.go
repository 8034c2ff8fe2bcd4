package harness

import (
	"github.com/roach88/paramedit/internal/param"
)

// StepResult is what one setup command or step did.
type StepResult struct {
	// Index is the 1-based step number; 0 for setup commands.
	Index   int
	Command string
	Fields  map[string]string
	Outcome string
	// Code is the error code, empty on success.
	Code    string
	Message string
	// Applied and FieldCodes are set for fields steps.
	Applied    int
	FieldCodes map[string]string
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every expectation and assertion held.
	Pass bool

	Steps []StepResult

	// Errors contains expectation and assertion failures.
	Errors []string

	// State and History are the final document contents.
	State   []param.Parameter
	History []param.Change
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
