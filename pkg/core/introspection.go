package core

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	StorageKey  string   `json:"storage_key"`
	StorageType string   `json:"storage_type"`
	Search      string   `json:"search"`
	Sort        SortMode `json:"sort"`
	Confirmer   bool     `json:"confirmer"`
	Renderer    bool     `json:"renderer"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	s.mu.Lock()
	defer s.mu.Unlock()

	storageType := "storage"
	if comp, ok := s.store.Storage().(introspection.Component); ok {
		storageType = comp.ComponentType()
	}

	return ServiceState{
		StorageKey:  s.store.Key(),
		StorageType: storageType,
		Search:      s.query.Search,
		Sort:        s.query.Sort,
		Confirmer:   s.confirmer != nil,
		Renderer:    s.renderer != nil,
	}
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
