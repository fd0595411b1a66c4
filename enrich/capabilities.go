package enrich

import (
	"reflect"

	"github.com/vitalvas/introspec/apidoc"
	"github.com/vitalvas/introspec/host"
)

// ResourceEnricher supplies DTO-level documentation for a type.
type ResourceEnricher interface {
	GetTitle(t reflect.Type) string
	GetDescription(t reflect.Type) string
	GetNotes(t reflect.Type) string
	GetAllowMultiple(t reflect.Type) *bool
	GetIsRequired(t reflect.Type) *bool
}

// RequestEnricher supplies operation-level documentation.
type RequestEnricher interface {
	GetVerbs(op *host.Operation) []string
	GetContentTypes(op *host.Operation) []string
	GetStatusCodes(op *host.Operation) []apidoc.StatusCode
	GetRelativePath(op *host.Operation) string
	GetCategory(op *host.Operation) string
	GetTags(op *host.Operation) []string
	GetHasValidator(t reflect.Type) *bool
}

// PropertyEnricher supplies documentation for a DTO member.
type PropertyEnricher interface {
	GetPropertyTitle(m host.Member) string
	GetPropertyDescription(m host.Member) string
	GetPropertyParamType(m host.Member) string
	GetPropertyAllowMultiple(m host.Member) *bool
	GetPropertyIsRequired(m host.Member) *bool
	GetPropertyNotes(m host.Member) string
	GetPropertyExternalLinks(m host.Member) []string
	GetPropertyConstraints(m host.Member) *apidoc.PropertyConstraint
}

// SecurityEnricher supplies the security descriptor of an operation. It
// returns nil when the operation requires no authentication.
type SecurityEnricher interface {
	GetSecurity(op *host.Operation) *apidoc.ApiSecurity
}

// ActionEnricher supplies per-verb documentation of an operation.
type ActionEnricher interface {
	GetActionNotes(op *host.Operation, verb string) string
	GetActionRelativePaths(op *host.Operation, verb string) []string
}

// Capabilities holds the capability views of one source. A nil field
// means the source does not implement that capability.
type Capabilities struct {
	Resource ResourceEnricher
	Request  RequestEnricher
	Property PropertyEnricher
	Security SecurityEnricher
	Action   ActionEnricher
}

// CapabilitiesOf discovers which capability interfaces source implements.
func CapabilitiesOf(source any) Capabilities {
	var c Capabilities
	if source == nil {
		return c
	}
	c.Resource, _ = source.(ResourceEnricher)
	c.Request, _ = source.(RequestEnricher)
	c.Property, _ = source.(PropertyEnricher)
	c.Security, _ = source.(SecurityEnricher)
	c.Action, _ = source.(ActionEnricher)
	return c
}

// IsEmpty reports whether the source implements no capability at all.
func (c Capabilities) IsEmpty() bool {
	return c.Resource == nil && c.Request == nil && c.Property == nil &&
		c.Security == nil && c.Action == nil
}
