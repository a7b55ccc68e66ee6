package core

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	CollectionType string `json:"collection_type"`
	LastExamined   int    `json:"last_examined"`
	LastTagged     int    `json:"last_tagged"`
	LastSkipped    int    `json:"last_skipped"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	colType := "unknown"
	if s.col != nil {
		colType = "collection"
		if comp, ok := s.col.(introspection.Component); ok {
			colType = comp.ComponentType()
		}
	}

	state := ServiceState{CollectionType: colType}
	if s.last != nil {
		state.LastExamined = s.last.Examined
		state.LastTagged = s.last.Tagged
		state.LastSkipped = s.last.Skipped
	}
	return state
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
