// Package suite defines a query under test: its template, the production
// table names behind each reference, literal fixtures for test mode, and
// the expected result.
package suite

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/sqlfixture/internal/fixture"
	"github.com/leapstack-labs/sqlfixture/internal/result"
	"github.com/leapstack-labs/sqlfixture/internal/template"
	"gopkg.in/yaml.v3"
)

// DefaultFixturePrefix is prepended to production names in test mode.
const DefaultFixturePrefix = "test_"

//go:embed builtin/daily_volume.yaml
var builtinSuite []byte

// Suite is a parsed, ready-to-render query definition.
type Suite struct {
	Name          string
	Source        string // raw template text
	Template      *template.Template
	Tables        map[string]string
	Fixtures      map[string]fixture.Fixture
	Expected      *result.Table
	FixturePrefix string
}

// file is the on-disk YAML shape of a suite.
type file struct {
	Name          string                     `yaml:"name"`
	FixturePrefix *string                    `yaml:"fixture_prefix"`
	Tables        map[string]string          `yaml:"tables"`
	Template      string                     `yaml:"template"`
	Fixtures      map[string]fixture.Fixture `yaml:"fixtures"`
	Expected      orderedColumns             `yaml:"expected"`
}

// orderedColumns decodes a YAML mapping of column -> values while keeping
// the column order written in the document.
type orderedColumns []result.Column

func (o *orderedColumns) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected must be a mapping of column to values", value.Line)
	}
	cols := make(orderedColumns, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		var values []any
		if err := val.Decode(&values); err != nil {
			return fmt.Errorf("line %d: column %q: %w", val.Line, key.Value, err)
		}
		cols = append(cols, result.Column{Name: key.Value, Values: values})
	}
	*o = cols
	return nil
}

// Parse decodes a suite from YAML. name is used in error positions.
func Parse(data []byte, name string) (*Suite, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode suite %s: %w", name, err)
	}
	if f.Template == "" {
		return nil, fmt.Errorf("suite %s: template is required", name)
	}

	tmpl, err := template.Parse(f.Template, name)
	if err != nil {
		return nil, fmt.Errorf("suite %s: %w", name, err)
	}

	var expected *result.Table
	if len(f.Expected) > 0 {
		if expected, err = result.FromColumns(f.Expected...); err != nil {
			return nil, fmt.Errorf("suite %s: expected: %w", name, err)
		}
	}

	prefix := DefaultFixturePrefix
	if f.FixturePrefix != nil {
		prefix = *f.FixturePrefix
	}

	s := &Suite{
		Name:          f.Name,
		Source:        f.Template,
		Template:      tmpl,
		Tables:        f.Tables,
		Fixtures:      f.Fixtures,
		Expected:      expected,
		FixturePrefix: prefix,
	}
	if s.Name == "" {
		s.Name = name
	}
	return s, nil
}

// Load reads and parses a suite file.
func Load(path string) (*Suite, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided on purpose
	if err != nil {
		return nil, fmt.Errorf("failed to read suite: %w", err)
	}
	return Parse(data, filepath.Base(path))
}

// Builtin returns the suite compiled into the binary: daily transaction
// volume by country over transactions joined to users.
func Builtin() *Suite {
	s, err := Parse(builtinSuite, "daily_volume.yaml")
	if err != nil {
		panic(err)
	}
	return s
}
