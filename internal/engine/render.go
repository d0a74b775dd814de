package engine

import (
	"fmt"

	"github.com/leapstack-labs/sqlfixture/internal/fixture"
	"github.com/leapstack-labs/sqlfixture/internal/template"
)

// Mode controls whether references resolve to production tables or to
// injected fixtures.
type Mode string

// Rendering modes.
const (
	ModeProduction Mode = "production"
	ModeTest       Mode = "test"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeProduction, ModeTest:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown mode %q (expected %q or %q)", s, ModeProduction, ModeTest)
}

// MissingFixtureError is returned in test mode when a reference used by the
// template has no fixture.
type MissingFixtureError struct {
	Reference string
}

func (e *MissingFixtureError) Error() string {
	return fmt.Sprintf("no fixture defined for table reference %q", e.Reference)
}

// Rendered is the final SQL for one mode.
type Rendered struct {
	Mode       Mode
	SQL        string
	References []string          // in order of first appearance
	Bindings   template.Bindings // reference -> concrete table or CTE name
}

// Render resolves every reference in the suite template and, in test mode,
// injects one fixture CTE per reference.
func (e *Engine) Render(mode Mode) (*Rendered, error) {
	s := e.suite
	refs := s.Template.References()

	prefix := ""
	if mode == ModeTest {
		prefix = s.FixturePrefix
	}

	// References missing from the table map stay unbound so that
	// Template.Render reports them with their position.
	bindings := make(template.Bindings, len(refs))
	for _, ref := range refs {
		if name, ok := s.Tables[ref]; ok {
			bindings[ref] = prefix + name
		}
	}

	sql, err := s.Template.Render(bindings)
	if err != nil {
		return nil, err
	}

	if mode == ModeTest {
		ctes := make([]string, 0, len(refs))
		for _, ref := range refs {
			fx, ok := s.Fixtures[ref]
			if !ok {
				return nil, &MissingFixtureError{Reference: ref}
			}
			cte, err := fixture.Build(bindings[ref], fx)
			if err != nil {
				return nil, err
			}
			ctes = append(ctes, cte)
		}
		if sql, err = fixture.InjectAll(sql, ctes...); err != nil {
			return nil, err
		}
	}

	e.logger.Debug("rendered query", "mode", string(mode), "references", len(refs), "bytes", len(sql))

	return &Rendered{
		Mode:       mode,
		SQL:        sql,
		References: refs,
		Bindings:   bindings,
	}, nil
}
