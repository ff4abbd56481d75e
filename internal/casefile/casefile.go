// Package casefile reads YAML files that pair patterns with the inputs they
// must and must not match.
package casefile

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Case is one pattern and its expectations. An invalid case asserts that
// the pattern is rejected and lists no inputs.
type Case struct {
	Name    string   `yaml:"name"`
	Pattern string   `yaml:"pattern"`
	Match   []string `yaml:"match"`
	NoMatch []string `yaml:"nomatch"`
	Invalid bool     `yaml:"invalid"`
}

// Inputs returns every input of the case, matching ones first.
func (c Case) Inputs() []string {
	inputs := make([]string, 0, len(c.Match)+len(c.NoMatch))
	inputs = append(inputs, c.Match...)
	return append(inputs, c.NoMatch...)
}

type document struct {
	Cases []Case `yaml:"cases"`
}

// Load reads and validates a case file.
func Load(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read case file: %w", err)
	}
	cases, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cases, nil
}

// Parse decodes and validates case file contents. Unnamed cases are named
// after their position.
func Parse(data []byte) ([]Case, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse case file: %w", err)
	}
	if len(doc.Cases) == 0 {
		return nil, errors.New("no cases found")
	}

	seen := make(map[string]bool, len(doc.Cases))
	for i := range doc.Cases {
		c := &doc.Cases[i]
		if c.Name == "" {
			c.Name = fmt.Sprintf("case%02d", i+1)
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("duplicate case name %q", c.Name)
		}
		seen[c.Name] = true

		if c.Invalid && len(c.Inputs()) > 0 {
			return nil, fmt.Errorf("case %q: an invalid pattern cannot list inputs", c.Name)
		}
	}
	return doc.Cases, nil
}
