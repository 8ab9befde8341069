package pipeline

import (
	"path/filepath"
	"strings"

	"github.com/kushkukrejapq/Ubuntu-hooks/internal/model"
)

// Filter drops events for paths matching any ignore pattern. Patterns are
// matched against each path segment, so "*.swp" catches editor droppings
// anywhere in the tree.
type Filter struct {
	patterns []string
}

func NewFilter(patterns []string) *Filter {
	return &Filter{patterns: patterns}
}

func (f *Filter) Ignore(event model.LogEvent) bool {
	return f.shouldIgnore(event.Path())
}

func (f *Filter) shouldIgnore(path string) bool {
	parts := strings.Split(filepath.ToSlash(path), "/")

	for _, part := range parts {
		for _, pattern := range f.patterns {
			matched, err := filepath.Match(pattern, part)
			if err == nil && matched {
				return true
			}
		}
	}

	return false
}
