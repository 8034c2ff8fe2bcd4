package harness

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is a scripted editing session with expectations.
type Scenario struct {
	// Name identifies the scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Setup commands establish the initial document. They must succeed.
	Setup []string `yaml:"setup,omitempty"`

	// Steps are executed in order after setup.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final document.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step is either a command line or a set of direct field edits.
type Step struct {
	Command string            `yaml:"command,omitempty"`
	Fields  map[string]string `yaml:"fields,omitempty"`
	Expect  *Expect           `yaml:"expect,omitempty"`
}

// Expect describes the expected result of a step. Omitted fields are not
// checked, except that a step without Error must not fail.
type Expect struct {
	// Outcome is created, updated, recreated, deleted or none.
	Outcome string `yaml:"outcome,omitempty"`

	// Error is the expected error code, e.g. INVALID_CONVERSION.
	Error string `yaml:"error,omitempty"`

	// Applied is the number of fields a fields step changed.
	Applied *int `yaml:"applied,omitempty"`

	// Errors maps field names to expected error codes for a fields step.
	Errors map[string]string `yaml:"errors,omitempty"`
}

// Assertion validates the final document.
type Assertion struct {
	Type       string   `yaml:"type"`
	Name       string   `yaml:"name,omitempty"`
	Expression *string  `yaml:"expression,omitempty"`
	Unit       *string  `yaml:"unit,omitempty"`
	Comment    *string  `yaml:"comment,omitempty"`
	Count      *int     `yaml:"count,omitempty"`
	Ops        []string `yaml:"ops,omitempty"`
}

// Assertion type constants.
const (
	AssertParameter = "parameter"
	AssertAbsent    = "absent"
	AssertCount     = "count"
	AssertHistory   = "history"
)

// LoadScenario reads and parses a scenario YAML file.
// Unknown fields are rejected so typos do not silently disable checks.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return errors.New("name is required")
	}
	if s.Description == "" {
		return errors.New("description is required")
	}
	if len(s.Steps) == 0 {
		return errors.New("steps list is required and must be non-empty")
	}

	for i, cmd := range s.Setup {
		if cmd == "" {
			return fmt.Errorf("setup[%d]: command is empty", i)
		}
	}

	for i, step := range s.Steps {
		hasCommand := step.Command != ""
		hasFields := len(step.Fields) > 0
		if hasCommand == hasFields {
			return fmt.Errorf("steps[%d]: exactly one of command or fields is required", i)
		}
		if step.Expect == nil {
			continue
		}
		if hasCommand && (step.Expect.Applied != nil || len(step.Expect.Errors) > 0) {
			return fmt.Errorf("steps[%d]: applied and errors only apply to fields steps", i)
		}
		if hasFields && step.Expect.Outcome != "" {
			return fmt.Errorf("steps[%d]: outcome only applies to command steps", i)
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(a); err != nil {
			return fmt.Errorf("assertions[%d]: %w", i, err)
		}
	}
	return nil
}

func validateAssertion(a Assertion) error {
	switch a.Type {
	case AssertParameter, AssertAbsent:
		if a.Name == "" {
			return fmt.Errorf("%s requires name", a.Type)
		}
	case AssertCount:
		if a.Count == nil {
			return errors.New("count requires count")
		}
	case AssertHistory:
		if a.Count == nil && len(a.Ops) == 0 {
			return errors.New("history requires count or ops")
		}
	case "":
		return errors.New("type is required")
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}
