// Package search matches a free-text query against saved learning paths and
// the built-in subject catalog.
package search

import (
	"strings"

	"github.com/abhisek/edupath/internal/curriculum"
)

// Kind tags a search result.
type Kind string

const (
	KindPath    Kind = "path"
	KindSubject Kind = "subject"
)

// Subject is a catalog entry a learner can start a path from.
type Subject struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// Result is one match. Exactly one of Path or Subject is set.
type Result struct {
	Kind    Kind                     `json:"kind"`
	Path    *curriculum.LearningPath `json:"path,omitempty"`
	Subject *Subject                 `json:"subject,omitempty"`
}

// Title is the display name of the match.
func (r Result) Title() string {
	switch {
	case r.Path != nil:
		return r.Path.Title
	case r.Subject != nil:
		return r.Subject.Name
	}
	return ""
}

// Blank reports whether the query has no searchable text.
func Blank(query string) bool {
	return strings.TrimSpace(query) == ""
}

// Search returns every path matching on title, topic or description
// followed by every subject matching on name or description. Matching is
// a case-insensitive substring test of the trimmed query. Input order is
// kept within each group.
func Search(query string, paths []curriculum.LearningPath, subjects []Subject) []Result {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []Result{}
	}

	results := []Result{}
	for i := range paths {
		p := &paths[i]
		if contains(q, p.Title, p.Topic, p.Description) {
			results = append(results, Result{Kind: KindPath, Path: p})
		}
	}
	for i := range subjects {
		s := &subjects[i]
		if contains(q, s.Name, s.Description) {
			results = append(results, Result{Kind: KindSubject, Subject: s})
		}
	}
	return results
}

func contains(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
