package syllabus

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Grade is an academic grade (class) the catalog covers.
type Grade string

const (
	Grade9  Grade = "9"
	Grade10 Grade = "10"
	Grade11 Grade = "11"
	Grade12 Grade = "12"
)

// ErrUnknownGrade is returned for grades outside 9..12.
var ErrUnknownGrade = errors.New("unknown grade")

// Label returns the display label, e.g. "Class 11".
func (g Grade) Label() string {
	return "Class " + string(g)
}

// Valid reports whether g is one of the supported grades.
func (g Grade) Valid() bool {
	return slices.Contains(Grades(), g)
}

// Grades returns the supported grades in display order.
func Grades() []Grade {
	return []Grade{Grade9, Grade10, Grade11, Grade12}
}

// ParseGrade accepts "9".."12", optionally prefixed with "class".
func ParseGrade(s string) (Grade, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.TrimSpace(strings.TrimPrefix(s, "class"))
	g := Grade(s)
	if !g.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownGrade, s)
	}
	return g, nil
}

// Key identifies one topic in the plan. It is a structured composite key;
// String is for display only and is never parsed back.
type Key struct {
	Grade   Grade  `json:"grade"`
	Subject string `json:"subject"`
	Month   int    `json:"month"`
	Topic   string `json:"topic"`
}

func (k Key) String() string {
	return fmt.Sprintf("%s / %s / month %d / %s", k.Grade.Label(), k.Subject, k.Month, k.Topic)
}

// Less orders keys by grade, subject, month, then topic.
func (k Key) Less(o Key) bool {
	if k.Grade != o.Grade {
		return gradeIndex(k.Grade) < gradeIndex(o.Grade)
	}
	if k.Subject != o.Subject {
		return k.Subject < o.Subject
	}
	if k.Month != o.Month {
		return k.Month < o.Month
	}
	return k.Topic < o.Topic
}

func gradeIndex(g Grade) int {
	if i := slices.Index(Grades(), g); i >= 0 {
		return i
	}
	return len(Grades())
}

// Subject is one subject's topic list within a month.
type Subject struct {
	Name   string   `yaml:"name"`
	Topics []string `yaml:"topics"`
}

// MonthPlan is one month of a grade's plan.
type MonthPlan struct {
	Month    int       `yaml:"month"`
	Subjects []Subject `yaml:"subjects"`
}

// TopicRef is a topic resolved against the catalog. Order is its position in
// the grade's flattened, syllabus-ordered topic list.
type TopicRef struct {
	Key
	Order int
}

// catalog holds the parsed plan with lookup indices.
type catalog struct {
	months   map[Grade][]MonthPlan
	topics   map[Grade][]TopicRef
	byKey    map[Key]TopicRef
	subjects map[Grade][]string
}

// c is the package-level catalog, set by init() in load.go.
var c *catalog

func buildCatalog(plans map[Grade][]MonthPlan) *catalog {
	cat := &catalog{
		months:   plans,
		topics:   make(map[Grade][]TopicRef, len(plans)),
		byKey:    make(map[Key]TopicRef),
		subjects: make(map[Grade][]string, len(plans)),
	}
	for g, months := range plans {
		seen := make(map[string]bool)
		for _, m := range months {
			for _, s := range m.Subjects {
				if !seen[s.Name] {
					seen[s.Name] = true
					cat.subjects[g] = append(cat.subjects[g], s.Name)
				}
				for _, t := range s.Topics {
					ref := TopicRef{
						Key:   Key{Grade: g, Subject: s.Name, Month: m.Month, Topic: t},
						Order: len(cat.topics[g]),
					}
					cat.topics[g] = append(cat.topics[g], ref)
					cat.byKey[ref.Key] = ref
				}
			}
		}
	}
	return cat
}

// ForGrade returns the ordered month plans for a grade.
func ForGrade(g Grade) ([]MonthPlan, error) {
	months, ok := c.months[g]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGrade, string(g))
	}
	out := make([]MonthPlan, len(months))
	for i, m := range months {
		out[i] = MonthPlan{Month: m.Month, Subjects: make([]Subject, len(m.Subjects))}
		for j, s := range m.Subjects {
			out[i].Subjects[j] = Subject{Name: s.Name, Topics: slices.Clone(s.Topics)}
		}
	}
	return out, nil
}

// Month returns a single month of a grade's plan.
func Month(g Grade, month int) (MonthPlan, bool) {
	months, err := ForGrade(g)
	if err != nil {
		return MonthPlan{}, false
	}
	for _, m := range months {
		if m.Month == month {
			return m, true
		}
	}
	return MonthPlan{}, false
}

// Topics returns every topic of a grade in syllabus order.
func Topics(g Grade) []TopicRef {
	return slices.Clone(c.topics[g])
}

// Lookup resolves a key against the catalog.
func Lookup(k Key) (TopicRef, bool) {
	ref, ok := c.byKey[k]
	return ref, ok
}

// Subjects returns a grade's distinct subjects in first-seen order.
func Subjects(g Grade) []string {
	return slices.Clone(c.subjects[g])
}

// Find returns the first topic of a grade whose name matches topic
// case-insensitively, optionally restricted to subject.
func Find(g Grade, subject, topic string) (TopicRef, bool) {
	for _, ref := range c.topics[g] {
		if subject != "" && !strings.EqualFold(ref.Subject, subject) {
			continue
		}
		if strings.EqualFold(ref.Topic, topic) {
			return ref, true
		}
	}
	return TopicRef{}, false
}
