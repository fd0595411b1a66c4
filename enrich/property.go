package enrich

import (
	"reflect"

	"github.com/vitalvas/introspec/apidoc"
	"github.com/vitalvas/introspec/host"
)

// PropertyManager fills the member documentation of a DTO.
type PropertyManager struct {
	enricher PropertyEnricher
	opts     options
}

// NewPropertyManager creates a property manager. A nil enricher is
// allowed; the manager then leaves properties untouched.
func NewPropertyManager(enricher PropertyEnricher, opts ...Option) *PropertyManager {
	return &PropertyManager{
		enricher: enricher,
		opts:     newOptions(opts),
	}
}

// EnrichProperties documents every member of t. Existing properties are
// matched by ID and filled where empty; missing ones are appended in
// member order. Properties that match no member are kept as declared.
func (m *PropertyManager) EnrichProperties(props []*apidoc.ApiPropertyDocumentation, t reflect.Type) []*apidoc.ApiPropertyDocumentation {
	if m == nil || m.enricher == nil || t == nil {
		return props
	}

	byID := make(map[string]*apidoc.ApiPropertyDocumentation, len(props))
	for _, p := range props {
		if p != nil {
			byID[p.ID] = p
		}
	}

	e := m.enricher
	for _, member := range host.Members(t) {
		p, ok := byID[member.ID]
		if !ok {
			p = &apidoc.ApiPropertyDocumentation{ID: member.ID}
			byID[member.ID] = p
			props = append(props, p)
		}

		p.Title = FillString(p.Title, func() string { return e.GetPropertyTitle(member) })
		p.Description = FillString(p.Description, func() string { return e.GetPropertyDescription(member) })
		p.ParamType = FillString(p.ParamType, func() string { return e.GetPropertyParamType(member) })
		p.AllowMultiple = FillPtr(p.AllowMultiple, func() *bool { return e.GetPropertyAllowMultiple(member) })
		p.IsRequired = FillPtr(p.IsRequired, func() *bool { return e.GetPropertyIsRequired(member) })
		p.Notes = FillString(p.Notes, func() string { return e.GetPropertyNotes(member) })
		p.ExternalLinks = ApplyStrategy(m.opts.policy, p.ExternalLinks, func() []string { return e.GetPropertyExternalLinks(member) })
		p.Constraints = FillPtr(p.Constraints, func() *apidoc.PropertyConstraint { return e.GetPropertyConstraints(member) })
	}
	return props
}
