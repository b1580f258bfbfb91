// Package syllabus holds the static SSLC board syllabus: a three-level
// read-only lookup of subject, topic, and sub-topic. Questions and
// mastery scores are always tied to a sub-topic label.
package syllabus

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed syllabus.yaml
var syllabusYAML []byte

// Subject is one subject with its ordered topics.
type Subject struct {
	Name   string  `yaml:"name"`
	Topics []Topic `yaml:"topics"`
}

// Topic is one chapter with its ordered sub-topics.
type Topic struct {
	Name      string   `yaml:"name"`
	Subtopics []string `yaml:"subtopics"`
}

// catalog is the parsed syllabus with lookup indices.
type catalog struct {
	subjects []Subject
	byName   map[string]*Subject
}

// c is the package-level catalog singleton, built once at init.
var c *catalog

func init() {
	var err error
	c, err = parseCatalog(syllabusYAML)
	if err != nil {
		panic(fmt.Sprintf("syllabus: invalid embedded catalog: %v", err))
	}
}

func parseCatalog(data []byte) (*catalog, error) {
	var doc struct {
		Subjects []Subject `yaml:"subjects"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse syllabus: %w", err)
	}
	if len(doc.Subjects) == 0 {
		return nil, fmt.Errorf("syllabus has no subjects")
	}

	cat := &catalog{
		subjects: doc.Subjects,
		byName:   make(map[string]*Subject, len(doc.Subjects)),
	}
	for i := range cat.subjects {
		s := &cat.subjects[i]
		if s.Name == "" {
			return nil, fmt.Errorf("subject %d has no name", i)
		}
		if _, dup := cat.byName[s.Name]; dup {
			return nil, fmt.Errorf("duplicate subject %q", s.Name)
		}
		for _, t := range s.Topics {
			if len(t.Subtopics) == 0 {
				return nil, fmt.Errorf("topic %q has no sub-topics", t.Name)
			}
		}
		cat.byName[s.Name] = s
	}
	return cat, nil
}

// Subjects returns all subject names in catalog order.
func Subjects() []string {
	out := make([]string, len(c.subjects))
	for i, s := range c.subjects {
		out[i] = s.Name
	}
	return out
}

// Topics returns the topic names for a subject in catalog order.
// Returns nil for an unknown subject.
func Topics(subject string) []string {
	s, ok := c.byName[subject]
	if !ok {
		return nil
	}
	out := make([]string, len(s.Topics))
	for i, t := range s.Topics {
		out[i] = t.Name
	}
	return out
}

// Subtopics returns the sub-topic labels for a (subject, topic) pair in
// catalog order. Returns nil for an unknown pair.
func Subtopics(subject, topic string) []string {
	s, ok := c.byName[subject]
	if !ok {
		return nil
	}
	for _, t := range s.Topics {
		if t.Name == topic {
			out := make([]string, len(t.Subtopics))
			copy(out, t.Subtopics)
			return out
		}
	}
	return nil
}

// Contains reports whether the full (subject, topic, subtopic) path
// exists in the catalog.
func Contains(subject, topic, subtopic string) bool {
	for _, st := range Subtopics(subject, topic) {
		if st == subtopic {
			return true
		}
	}
	return false
}
