package syllabus

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed syllabus.yaml
var embedded []byte

func init() {
	plans, err := Parse(embedded)
	if err != nil {
		panic(fmt.Sprintf("syllabus: embedded catalog is invalid: %v", err))
	}
	c = buildCatalog(plans)
}

type document struct {
	Grades []struct {
		Grade  Grade       `yaml:"grade"`
		Months []MonthPlan `yaml:"months"`
	} `yaml:"grades"`
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (map[Grade][]MonthPlan, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse syllabus: %w", err)
	}
	plans := make(map[Grade][]MonthPlan, len(doc.Grades))
	for _, g := range doc.Grades {
		if _, dup := plans[g.Grade]; dup {
			return nil, fmt.Errorf("duplicate grade %q", string(g.Grade))
		}
		plans[g.Grade] = g.Months
	}
	if err := validate(plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// validate returns a combined error describing all problems found.
func validate(plans map[Grade][]MonthPlan) error {
	var errs []string

	for _, g := range Grades() {
		if len(plans[g]) == 0 {
			errs = append(errs, fmt.Sprintf("grade %s has no months", g))
		}
	}

	for g, months := range plans {
		if !g.Valid() {
			errs = append(errs, fmt.Sprintf("unsupported grade %q", string(g)))
			continue
		}
		prev := 0
		for _, m := range months {
			if m.Month < 1 || m.Month > 12 {
				errs = append(errs, fmt.Sprintf("grade %s: month %d out of range", g, m.Month))
			}
			if m.Month <= prev {
				errs = append(errs, fmt.Sprintf("grade %s: month %d is not after month %d", g, m.Month, prev))
			}
			prev = m.Month
			// Topic names are unique per subject name, even when a subject is
			// listed more than once in a month.
			seen := make(map[string]map[string]bool)
			for _, s := range m.Subjects {
				if strings.TrimSpace(s.Name) == "" {
					errs = append(errs, fmt.Sprintf("grade %s month %d: empty subject name", g, m.Month))
				}
				if seen[s.Name] == nil {
					seen[s.Name] = make(map[string]bool, len(s.Topics))
				}
				for _, t := range s.Topics {
					if strings.TrimSpace(t) == "" {
						errs = append(errs, fmt.Sprintf("grade %s month %d %s: empty topic name", g, m.Month, s.Name))
						continue
					}
					if seen[s.Name][t] {
						errs = append(errs, fmt.Sprintf("grade %s month %d %s: duplicate topic %q", g, m.Month, s.Name, t))
					}
					seen[s.Name][t] = true
				}
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("syllabus validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
