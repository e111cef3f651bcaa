// Package layout describes which statistics the report page shows and binds
// flattened entries to those display targets.
package layout

import (
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"os"
	"strings"

	"github.com/dalemusser/visitorstats/internal/app/system/htmlsanitize"
	"github.com/dalemusser/visitorstats/internal/domain/models"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Missing is shown for a target whose statistic is absent from the snapshot.
const Missing = "–"

// Stat is one display target.
type Stat struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
}

// Panel is a titled group of targets.
type Panel struct {
	Heading string `yaml:"heading"`
	// Auto panels show every entry, labelled by identifier.
	Auto  bool   `yaml:"auto"`
	Stats []Stat `yaml:"stats"`
}

// Layout is the whole report page.
type Layout struct {
	Title  string  `yaml:"title"`
	Footer string  `yaml:"footer"` // inline markup allowed, sanitized before display
	Panels []Panel `yaml:"panels"`
}

// Default returns the embedded layout.
func Default() (*Layout, error) {
	return Parse(defaultYAML)
}

// Load reads a layout file; an empty path returns Default.
func Load(path string) (*Layout, error) {
	if path == "" {
		return Default()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	return Parse(b)
}

// Parse decodes and validates a YAML layout.
func Parse(b []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(b, &l); err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// Validate checks that the layout has panels and that target ids are unique.
func (l *Layout) Validate() error {
	if len(l.Panels) == 0 {
		return errors.New("layout: no panels defined")
	}
	seen := make(map[string]bool)
	for i, p := range l.Panels {
		if !p.Auto && len(p.Stats) == 0 {
			return fmt.Errorf("layout: panel %d (%q) has no stats and is not auto", i, p.Heading)
		}
		for _, s := range p.Stats {
			if strings.TrimSpace(s.ID) == "" {
				return fmt.Errorf("layout: panel %q has a stat without id", p.Heading)
			}
			if seen[s.ID] {
				return fmt.Errorf("layout: duplicate stat id %q", s.ID)
			}
			seen[s.ID] = true
		}
	}
	return nil
}

// BoundStat is a target with its value filled in.
type BoundStat struct {
	ID    string
	Label template.HTML
	Value string
	Found bool
}

// BoundPanel is a panel ready for rendering.
type BoundPanel struct {
	Heading template.HTML
	Stats   []BoundStat
}

// Bind looks up each target by id among entries. Entries that no target
// names are skipped; targets with no entry show Missing. Auto panels list
// every entry in order.
func (l *Layout) Bind(entries []models.DisplayEntry) []BoundPanel {
	byName := make(map[string]string, len(entries))
	for _, e := range entries {
		byName[e.Name] = e.Value
	}

	out := make([]BoundPanel, 0, len(l.Panels))
	for _, p := range l.Panels {
		bp := BoundPanel{Heading: htmlsanitize.Label(p.Heading)}
		if p.Auto {
			for _, e := range entries {
				bp.Stats = append(bp.Stats, BoundStat{
					ID:    e.Name,
					Label: htmlsanitize.Label(e.Name),
					Value: e.Value,
					Found: true,
				})
			}
		}
		for _, s := range p.Stats {
			label := s.Label
			if label == "" {
				label = s.ID
			}
			v, ok := byName[s.ID]
			if !ok {
				v = Missing
			}
			bp.Stats = append(bp.Stats, BoundStat{
				ID:    s.ID,
				Label: htmlsanitize.Label(label),
				Value: v,
				Found: ok,
			})
		}
		out = append(out, bp)
	}
	return out
}
