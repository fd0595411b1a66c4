package enrich

import (
	"reflect"

	"github.com/vitalvas/introspec/apidoc"
	"github.com/vitalvas/introspec/host"
)

// RequestManager fills operation-level documentation.
type RequestManager struct {
	request  RequestEnricher
	security SecurityEnricher
	actions  *ActionManager
	resource ResourceFunc
	opts     options
}

// NewRequestManager creates a request manager. Every collaborator may be
// nil; the corresponding step is then skipped.
func NewRequestManager(request RequestEnricher, security SecurityEnricher, actions *ActionManager, resource ResourceFunc, opts ...Option) *RequestManager {
	return &RequestManager{
		request:  request,
		security: security,
		actions:  actions,
		resource: resource,
		opts:     newOptions(opts),
	}
}

// EnrichRequest fills dst for op.
//
// The return type is resolved first: when op has a response type and dst
// has no ReturnType, one is created named after the response type. The
// resource func then receives dst.ReturnType, which is nil for operations
// without a response type. Tags merge according to the policy; every other
// field is filled only while empty.
func (m *RequestManager) EnrichRequest(dst *apidoc.ApiResourceDocumentation, op *host.Operation) {
	if m == nil || dst == nil {
		return
	}
	if op == nil {
		op = &host.Operation{}
	}

	if op.ResponseType != nil && dst.ReturnType == nil {
		dst.ReturnType = &apidoc.ApiResourceType{TypeName: TypeName(op.ResponseType)}
	}
	if m.resource != nil {
		m.resource(dst.ReturnType, op)
	}

	if e := m.request; e != nil {
		dst.Tags = ApplyStrategy(m.opts.policy, dst.Tags, func() []string { return e.GetTags(op) })
		dst.Category = FillString(dst.Category, func() string { return e.GetCategory(op) })
		dst.Verbs = FillIfEmpty(dst.Verbs, func() []string { return e.GetVerbs(op) })
		dst.ContentTypes = FillIfEmpty(dst.ContentTypes, func() []string { return e.GetContentTypes(op) })
		dst.StatusCodes = FillIfEmpty(dst.StatusCodes, func() []apidoc.StatusCode { return e.GetStatusCodes(op) })
		dst.RelativePath = FillString(dst.RelativePath, func() string { return e.GetRelativePath(op) })
		dst.HasValidator = FillPtr(dst.HasValidator, func() *bool { return e.GetHasValidator(op.RequestType) })
	}

	if e := m.security; e != nil {
		dst.Security = FillPtr(dst.Security, func() *apidoc.ApiSecurity { return e.GetSecurity(op) })
	}

	if m.actions != nil {
		dst.Actions = m.actions.EnrichActions(dst.Actions, dst.Verbs, op)
	}

	m.opts.logger.Debug().
		Str("operation", op.Name).
		Str("path", dst.RelativePath).
		Strs("verbs", dst.Verbs).
		Msg("request enriched")
}

// TypeName returns the simple name of t with pointers resolved. Unnamed
// types such as slices return their type expression.
func TypeName(t reflect.Type) string {
	t = host.Indirect(t)
	if t == nil {
		return ""
	}
	if name := t.Name(); name != "" {
		return name
	}
	return t.String()
}
