package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/roach88/paramedit/internal/design"
	"github.com/roach88/paramedit/internal/mutator"
	"github.com/roach88/paramedit/internal/param"
	"github.com/roach88/paramedit/internal/store"
	"github.com/roach88/paramedit/internal/testutil"
)

// Error codes for failures that are not parameter errors.
const (
	CodeReload = "RELOAD"
	CodeError  = "ERROR"
)

// Harness executes scenarios against one design document.
type Harness struct {
	doc     *design.Document
	mutator *mutator.Mutator
	logger  *slog.Logger
}

// Run executes a scenario against a fresh in-memory document.
//
// Returns an error only if the harness itself cannot run (store setup or a
// failing setup command). Expectation and assertion failures are reported in
// Result.Errors with Pass set to false.
func Run(scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:",
		store.WithIDGenerator(testutil.NewSequentialIDGenerator("chg")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	doc := design.New(st, nil)
	h := &Harness{
		doc: doc,
		mutator: mutator.New(doc, doc,
			mutator.WithParser(doc.Parser()),
			mutator.WithLogger(logger),
		),
		logger: logger,
	}

	ctx := context.Background()
	result := NewResult()

	if err := h.executeSetup(ctx, scenario.Setup, result); err != nil {
		return nil, fmt.Errorf("failed to execute setup: %w", err)
	}
	h.executeSteps(ctx, scenario.Steps, result)

	if result.State, err = doc.List(ctx); err != nil {
		return nil, fmt.Errorf("failed to read final state: %w", err)
	}
	if result.History, err = doc.History(ctx, ""); err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}

func (h *Harness) executeSetup(ctx context.Context, setup []string, result *Result) error {
	for i, cmd := range setup {
		sr := h.runCommand(ctx, cmd)
		if sr.Code != "" {
			return fmt.Errorf("setup[%d] %q: %s", i, cmd, sr.Message)
		}
		result.Steps = append(result.Steps, sr)
	}
	return nil
}

func (h *Harness) executeSteps(ctx context.Context, steps []Step, result *Result) {
	for i, step := range steps {
		var sr StepResult
		if step.Command != "" {
			sr = h.runCommand(ctx, step.Command)
		} else {
			sr = h.runFields(ctx, step.Fields)
		}
		sr.Index = i + 1
		result.Steps = append(result.Steps, sr)

		for _, msg := range checkExpect(sr, step.Expect) {
			result.AddError(fmt.Sprintf("steps[%d]: %s", i, msg))
		}
		h.logger.Debug("step completed", "step", sr.Index, "outcome", sr.Outcome, "code", sr.Code)
	}
}

func (h *Harness) runCommand(ctx context.Context, cmd string) StepResult {
	outcome, err := h.mutator.Exec(ctx, cmd)
	sr := StepResult{Command: cmd, Outcome: outcome.String()}
	if err != nil {
		sr.Code = errorCode(err)
		sr.Message = err.Error()
	}
	return sr
}

func (h *Harness) runFields(ctx context.Context, fields map[string]string) StepResult {
	applied, err := h.mutator.UpdateFields(ctx, fields)
	sr := StepResult{Fields: fields, Applied: applied}
	if err == nil {
		return sr
	}

	sr.Message = err.Error()
	var fe mutator.FieldErrors
	if !errors.As(err, &fe) {
		sr.Code = errorCode(err)
		return sr
	}
	sr.FieldCodes = make(map[string]string, len(fe))
	for _, f := range fe {
		sr.FieldCodes[f.Name] = errorCode(f.Err)
	}
	return sr
}

func errorCode(err error) string {
	if errors.Is(err, mutator.ErrReload) {
		return CodeReload
	}
	if code := param.Code(err); code != "" {
		return string(code)
	}
	return CodeError
}

func checkExpect(sr StepResult, exp *Expect) []string {
	var msgs []string

	if exp == nil || exp.Error == "" {
		if sr.Code != "" {
			msgs = append(msgs, fmt.Sprintf("unexpected error %s: %s", sr.Code, sr.Message))
		}
	} else if sr.Code != exp.Error {
		msgs = append(msgs, fmt.Sprintf("expected error %s, got %q", exp.Error, sr.Code))
	}
	if (exp == nil || len(exp.Errors) == 0) && len(sr.FieldCodes) > 0 {
		msgs = append(msgs, "unexpected field errors: "+formatCodes(sr.FieldCodes))
	}
	if exp == nil {
		return msgs
	}

	if exp.Outcome != "" && sr.Outcome != exp.Outcome {
		msgs = append(msgs, fmt.Sprintf("expected outcome %s, got %s", exp.Outcome, sr.Outcome))
	}
	if exp.Applied != nil && sr.Applied != *exp.Applied {
		msgs = append(msgs, fmt.Sprintf("expected %d fields applied, got %d", *exp.Applied, sr.Applied))
	}

	if len(exp.Errors) > 0 && formatCodes(exp.Errors) != formatCodes(sr.FieldCodes) {
		msgs = append(msgs, fmt.Sprintf("expected field errors %s, got %s",
			formatCodes(exp.Errors), formatCodes(sr.FieldCodes)))
	}
	return msgs
}

// formatCodes renders name:code pairs sorted by name.
func formatCodes(codes map[string]string) string {
	names := make([]string, 0, len(codes))
	for name := range codes {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(name + ": " + codes[name])
	}
	return b.String()
}
