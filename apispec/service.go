// Package apispec serves the API documentation of a host, filtered by
// request parameters.
package apispec

import (
	"errors"
	"reflect"

	"github.com/vitalvas/introspec/apidoc"
	"github.com/vitalvas/introspec/documenter"
)

// ErrNilProvider is returned by NewService when no documentation provider
// is given.
var ErrNilProvider = errors.New("apispec: documentation provider is nil")

// SpecResponse wraps the filtered documentation.
type SpecResponse struct {
	ApiDocumentation *apidoc.ApiDocumentation `json:"apiDocumentation" yaml:"apiDocumentation"`
}

// Service answers spec requests from a documentation provider.
type Service struct {
	provider documenter.DocumentationProvider
}

// NewService creates a service backed by provider. A nil provider, or a
// nil pointer held in the interface, is rejected.
func NewService(provider documenter.DocumentationProvider) (*Service, error) {
	if isNil(provider) {
		return nil, ErrNilProvider
	}
	return &Service{provider: provider}, nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// Get returns the provider's documentation narrowed to the resources
// matching req. An empty request returns the full document.
func (s *Service) Get(req apidoc.SpecRequest) SpecResponse {
	return SpecResponse{
		ApiDocumentation: s.provider.GetApiDocumentation().Filter(req),
	}
}
