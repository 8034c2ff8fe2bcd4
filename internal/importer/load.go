package importer

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"

	"github.com/roach88/paramedit/internal/param"
)

// Error codes for load failures.
const (
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeNoFiles     = "E003" // No CUE files found
	ErrCodeLoadFailed  = "E004" // CUE load failed
	ErrCodeBuildFailed = "E006" // CUE build failed
	ErrCodeNoParams    = "E201" // No parameters struct
	ErrCodeValueType   = "E202" // Parameter is not a string or number
	ErrCodeComment     = "E203" // Comment is not a string
)

// LoadError is a load failure, positioned when CUE knows where it happened.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Entry is one imported parameter.
type Entry struct {
	Name    string
	Value   string
	Comment string
	Pos     token.Pos
}

// Command returns the set command for the entry.
func (e Entry) Command() string {
	return e.Name + " = " + e.Value
}

// Result is the outcome of loading a file or directory.
type Result struct {
	Entries   []Entry
	FileCount int
}

// Load reads the parameters declared in a .cue file or in every .cue file of
// a directory.
func Load(path string) (*Result, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("path not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing %s: %v", path, err)}
	}

	dir, args := path, []string{"."}
	files := 1
	if info.IsDir() {
		matches, err := filepath.Glob(filepath.Join(path, "*.cue"))
		if err != nil {
			return nil, &LoadError{Code: ErrCodeLoadFailed, Message: err.Error()}
		}
		if len(matches) == 0 {
			return nil, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", path)}
		}
		files = len(matches)
	} else {
		dir, args = filepath.Dir(path), []string{"./" + filepath.Base(path)}
	}

	instances := load.Instances(args, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, cueError(ErrCodeLoadFailed, inst.Err)
	}

	value := cuecontext.New().BuildInstance(inst)
	if err := value.Validate(); err != nil {
		return nil, cueError(ErrCodeBuildFailed, err)
	}

	entries, err := Extract(value)
	if err != nil {
		return nil, err
	}
	return &Result{Entries: entries, FileCount: files}, nil
}

// Extract reads the parameters struct of an evaluated CUE value, in
// declaration order.
func Extract(v cue.Value) ([]Entry, error) {
	params := v.LookupPath(cue.ParsePath("parameters"))
	if !params.Exists() {
		return nil, &LoadError{Code: ErrCodeNoParams, Message: "no parameters struct found", Pos: v.Pos()}
	}

	comments, err := extractComments(v.LookupPath(cue.ParsePath("comments")))
	if err != nil {
		return nil, err
	}

	iter, err := params.Fields()
	if err != nil {
		return nil, cueError(ErrCodeNoParams, err)
	}

	var entries []Entry
	for iter.Next() {
		name := iter.Selector().Unquoted()
		text, err := valueText(iter.Value())
		if err != nil {
			return nil, &LoadError{
				Code:    ErrCodeValueType,
				Message: fmt.Sprintf("parameters.%s: %v", name, err),
				Pos:     iter.Value().Pos(),
			}
		}
		entries = append(entries, Entry{
			Name:    name,
			Value:   text,
			Comment: comments[name],
			Pos:     iter.Value().Pos(),
		})
	}
	return entries, nil
}

func valueText(v cue.Value) (string, error) {
	if err := v.Err(); err != nil {
		return "", err
	}
	switch v.IncompleteKind() {
	case cue.StringKind:
		return v.String()
	case cue.IntKind, cue.FloatKind, cue.NumberKind:
		f, err := v.Float64()
		if err != nil {
			return "", err
		}
		return param.FormatExpression(f, ""), nil
	default:
		return "", fmt.Errorf("expected string or number, got %s", v.IncompleteKind())
	}
}

func extractComments(v cue.Value) (map[string]string, error) {
	out := make(map[string]string)
	if !v.Exists() {
		return out, nil
	}

	iter, err := v.Fields()
	if err != nil {
		return nil, cueError(ErrCodeComment, err)
	}
	for iter.Next() {
		name := iter.Selector().Unquoted()
		s, err := iter.Value().String()
		if err != nil {
			return nil, &LoadError{
				Code:    ErrCodeComment,
				Message: fmt.Sprintf("comments.%s: must be a string", name),
				Pos:     iter.Value().Pos(),
			}
		}
		out[name] = s
	}
	return out, nil
}

// cueError keeps the first positioned CUE error.
func cueError(code string, err error) *LoadError {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &LoadError{Code: code, Message: err.Error()}
	}

	first := errs[0]
	le := &LoadError{Code: code, Message: first.Error()}
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		le.Pos = positions[0]
	}
	return le
}
