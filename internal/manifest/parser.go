package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrInvalid is wrapped by errors for manifests that fail schema validation.
var ErrInvalid = errors.New("invalid manifest")

// ReadAgent reads and validates an agent manifest.
func ReadAgent(path string) (*AgentManifest, error) {
	var m AgentManifest
	if err := readValidated(path, KindAgent, &m); err != nil {
		return nil, err
	}
	if m.Toolboxes == nil {
		m.Toolboxes = []string{}
	}
	return &m, nil
}

// ReadPackage reads and validates a bundle package manifest.
func ReadPackage(path string) (*PackageManifest, error) {
	var m PackageManifest
	if err := readValidated(path, KindPackage, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// MarshalAgent renders an agent manifest with two-space indentation.
func MarshalAgent(m *AgentManifest) ([]byte, error) {
	out := *m
	if out.Toolboxes == nil {
		out.Toolboxes = []string{}
	}
	if out.Personality == nil {
		out.Personality = []string{}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling agent manifest: %w", err)
	}
	return data, nil
}

func readValidated(path string, kind Kind, v any) error {
	data, err := readFile(path)
	if err != nil {
		return err
	}

	result, err := Validate(kind, data)
	if err != nil {
		return fmt.Errorf("validating %s: %w", path, err)
	}
	if !result.Valid {
		return fmt.Errorf("%w %s: %s", ErrInvalid, path, result.Summary())
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return nil
}

// Summary joins all issues into one line.
func (r *ValidationResult) Summary() string {
	parts := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		if issue.Path != "" {
			parts = append(parts, issue.Path+": "+issue.Message)
		} else {
			parts = append(parts, issue.Message)
		}
	}
	return strings.Join(parts, "; ")
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
