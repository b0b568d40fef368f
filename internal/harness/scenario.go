package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/jmlgen/internal/compiler"
	"github.com/roach88/jmlgen/internal/engine"
)

// Scenario is one translation test case: an input document and the
// assertions its translation must satisfy.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	Description string `yaml:"description"`

	// Source is a path to a Contract-LIB file, relative to the scenario
	// file. Exactly one of Source and Input is set.
	Source string `yaml:"source,omitempty"`

	// Input is an inline Contract-LIB document.
	Input string `yaml:"input,omitempty"`

	// View selects the output view. Defaults to "outer".
	View string `yaml:"view,omitempty"`

	// RunID fixes the run ID for deterministic output.
	// Defaults to testutil.DefaultRunID.
	RunID string `yaml:"run_id,omitempty"`

	Assertions []Assertion `yaml:"assertions"`
}

// Assertion checks one property of a translation. Which fields apply
// depends on Type.
type Assertion struct {
	Type string `yaml:"type"`

	// Entity is the class name (entity_exists, ghost_fields,
	// method_params, contract_count).
	Entity string `yaml:"entity,omitempty"`

	// Kind is "class" or "interface" for entity_exists, or an error kind
	// for error_kind.
	Kind string `yaml:"kind,omitempty"`

	// Method names the method (method_params, contract_count).
	Method string `yaml:"method,omitempty"`

	// Names lists ghost-field or parameter names in declaration order.
	Names []string `yaml:"names,omitempty"`

	// Count is the expected contract-block count (contract_count).
	Count int `yaml:"count,omitempty"`

	// Text must appear in the rendered output (output_contains).
	Text string `yaml:"text,omitempty"`

	// Code is an error code (error_kind, optional) or a diagnostic code.
	Code string `yaml:"code,omitempty"`

	// Symbol is the unknown function symbol a diagnostic names.
	Symbol string `yaml:"symbol,omitempty"`
}

// Assertion type constants.
const (
	AssertEntityExists   = "entity_exists"
	AssertGhostFields    = "ghost_fields"
	AssertMethodParams   = "method_params"
	AssertContractCount  = "contract_count"
	AssertOutputContains = "output_contains"
	AssertErrorKind      = "error_kind"
	AssertDiagnostic     = "diagnostic"
)

// LoadScenario reads and parses a scenario YAML file.
// Source paths are resolved relative to the scenario file's directory.
// Unknown fields are rejected so typos fail loudly.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Source != "" && !filepath.IsAbs(scenario.Source) {
		scenario.Source = filepath.Join(filepath.Dir(path), scenario.Source)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return &scenario, nil
}

// LoadScenarios loads every *.yaml file in dir, sorted by file name.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// Text returns the document to translate.
func (s *Scenario) Text() (string, error) {
	if s.Input != "" {
		return s.Input, nil
	}
	data, err := os.ReadFile(s.Source)
	if err != nil {
		return "", fmt.Errorf("failed to read source: %w", err)
	}
	return string(data), nil
}

// ExpectsError reports whether the scenario asserts a failed translation.
func (s *Scenario) ExpectsError() bool {
	for _, a := range s.Assertions {
		if a.Type == AssertErrorKind {
			return true
		}
	}
	return false
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	switch {
	case s.Source == "" && s.Input == "":
		return fmt.Errorf("one of source or input is required")
	case s.Source != "" && s.Input != "":
		return fmt.Errorf("source and input are mutually exclusive")
	}
	if s.Source != "" {
		if _, err := os.Stat(s.Source); os.IsNotExist(err) {
			return fmt.Errorf("source file not found: %s", s.Source)
		}
	}

	if s.View != "" {
		if _, err := engine.ParseView(s.View); err != nil {
			return err
		}
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}
	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}
	if s.ExpectsError() && len(s.Assertions) > 1 {
		return fmt.Errorf("error_kind cannot be combined with other assertions")
	}
	return nil
}

func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertEntityExists:
		if a.Entity == "" {
			return fmt.Errorf("assertions[%d]: entity is required for entity_exists", index)
		}
		if a.Kind != "" && a.Kind != "class" && a.Kind != "interface" {
			return fmt.Errorf("assertions[%d]: kind must be class or interface, got %q", index, a.Kind)
		}
	case AssertGhostFields:
		if a.Entity == "" {
			return fmt.Errorf("assertions[%d]: entity is required for ghost_fields", index)
		}
	case AssertMethodParams, AssertContractCount:
		if a.Entity == "" || a.Method == "" {
			return fmt.Errorf("assertions[%d]: entity and method are required for %s", index, a.Type)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative", index)
		}
	case AssertOutputContains:
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for output_contains", index)
		}
	case AssertErrorKind:
		switch compiler.ErrorKind(a.Kind) {
		case compiler.KindMalformedInput, compiler.KindStructural, compiler.KindUnsupported:
		default:
			return fmt.Errorf("assertions[%d]: unknown error kind %q", index, a.Kind)
		}
	case AssertDiagnostic:
		if a.Code == "" {
			return fmt.Errorf("assertions[%d]: code is required for diagnostic", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
