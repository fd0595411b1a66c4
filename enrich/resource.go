package enrich

import (
	"reflect"

	"github.com/vitalvas/introspec/apidoc"
	"github.com/vitalvas/introspec/host"
)

// ResourceFunc enriches a type fragment of an operation. dst may be nil
// when the operation has no response type.
type ResourceFunc func(dst *apidoc.ApiResourceType, op *host.Operation)

// ResourceManager fills DTO-level documentation.
type ResourceManager struct {
	enricher   ResourceEnricher
	properties *PropertyManager
	opts       options
}

// NewResourceManager creates a resource manager. Both the enricher and the
// property manager may be nil.
func NewResourceManager(enricher ResourceEnricher, properties *PropertyManager, opts ...Option) *ResourceManager {
	return &ResourceManager{
		enricher:   enricher,
		properties: properties,
		opts:       newOptions(opts),
	}
}

// EnrichResource fills dst from the response type of op. It satisfies
// ResourceFunc.
func (m *ResourceManager) EnrichResource(dst *apidoc.ApiResourceType, op *host.Operation) {
	var t reflect.Type
	if op != nil {
		t = op.ResponseType
	}
	m.EnrichType(dst, t, op)
}

// EnrichType fills the empty fields of dst. Title, description, notes and
// properties come from t. AllowMultiple and IsRequired always come from
// the request type of op.
func (m *ResourceManager) EnrichType(dst *apidoc.ApiResourceType, t reflect.Type, op *host.Operation) {
	if m == nil || dst == nil {
		return
	}

	if e := m.enricher; e != nil {
		if t != nil {
			dst.Title = FillString(dst.Title, func() string { return e.GetTitle(t) })
			dst.Description = FillString(dst.Description, func() string { return e.GetDescription(t) })
			dst.Notes = FillString(dst.Notes, func() string { return e.GetNotes(t) })
		}
		if op != nil && op.RequestType != nil {
			reqType := op.RequestType
			dst.AllowMultiple = FillPtr(dst.AllowMultiple, func() *bool { return e.GetAllowMultiple(reqType) })
			dst.IsRequired = FillPtr(dst.IsRequired, func() *bool { return e.GetIsRequired(reqType) })
		}
	}

	if t != nil {
		dst.Properties = m.properties.EnrichProperties(dst.Properties, t)
	}

	m.opts.logger.Debug().
		Str("type", dst.TypeName).
		Int("properties", len(dst.Properties)).
		Msg("resource enriched")
}
