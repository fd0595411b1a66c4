// Package reflection provides an enricher that documents operations from
// host metadata: annotations, struct tags and the Go types themselves.
package reflection

import (
	"net/http"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/net/http/httpguts"

	"github.com/vitalvas/introspec/apidoc"
	"github.com/vitalvas/introspec/enrich"
	"github.com/vitalvas/introspec/host"
)

// DefaultReplacementVerbs replace the ANY wildcard of an operation.
var DefaultReplacementVerbs = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}

var (
	_ enrich.ResourceEnricher = (*Enricher)(nil)
	_ enrich.RequestEnricher  = (*Enricher)(nil)
	_ enrich.PropertyEnricher = (*Enricher)(nil)
	_ enrich.SecurityEnricher = (*Enricher)(nil)
	_ enrich.ActionEnricher   = (*Enricher)(nil)
)

// Option configures an Enricher.
type Option func(*Enricher)

// WithReplacementVerbs sets the verbs substituted for the ANY wildcard.
func WithReplacementVerbs(verbs ...string) Option {
	return func(e *Enricher) {
		if len(verbs) > 0 {
			e.replacementVerbs = slices.Clone(verbs)
		}
	}
}

// WithLogger sets the parent logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Enricher) {
		e.logger = logger
	}
}

// memberInfo is the cached annotation data of one member. Nil fields
// record that the annotation is absent.
type memberInfo struct {
	member    *host.ApiMember
	allowable *host.ApiAllowableValues
}

// Enricher implements every enrich capability on top of a
// host.MetadataSource. Member lookups are cached for the lifetime of the
// enricher; it is safe for concurrent use.
type Enricher struct {
	src              host.MetadataSource
	formats          []string
	replacementVerbs []string
	logger           zerolog.Logger

	mu      sync.Mutex
	members map[host.MemberKey]memberInfo
}

// New creates an enricher reading annotations from src and documenting
// the given wire formats.
func New(src host.MetadataSource, formats []string, opts ...Option) *Enricher {
	e := &Enricher{
		src:              src,
		formats:          slices.Clone(formats),
		replacementVerbs: slices.Clone(DefaultReplacementVerbs),
		logger:           zerolog.Nop(),
		members:          make(map[host.MemberKey]memberInfo),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With().Str("component", "reflection-enricher").Logger()
	return e
}

// NewFromHost creates an enricher for the metadata and formats of h.
func NewFromHost(h *host.Host, opts ...Option) *Enricher {
	return New(h.Metadata(), h.Formats(), opts...)
}

func (e *Enricher) typeAttributes(t reflect.Type) []any {
	if e.src == nil || t == nil {
		return nil
	}
	return e.src.TypeAttributes(t)
}

// GetTitle returns the simple name of t.
func (e *Enricher) GetTitle(t reflect.Type) string {
	return enrich.TypeName(t)
}

// GetDescription returns the Api description of t, falling back to the
// Description annotation.
func (e *Enricher) GetDescription(t reflect.Type) string {
	attrs := e.typeAttributes(t)
	if api, ok := host.FirstAttribute[host.Api](attrs); ok && api.Description != "" {
		return api.Description
	}
	if d, ok := host.FirstAttribute[host.Description](attrs); ok {
		return d.Text
	}
	return ""
}

// GetNotes returns the notes of the first Route of t.
func (e *Enricher) GetNotes(t reflect.Type) string {
	if route, ok := host.FirstAttribute[host.Route](e.typeAttributes(t)); ok {
		return route.Notes
	}
	return ""
}

// GetAllowMultiple reports true for slice and array types and nil
// otherwise.
func (e *Enricher) GetAllowMultiple(t reflect.Type) *bool {
	t = host.Indirect(t)
	if t == nil {
		return nil
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return ptr(true)
	}
	return nil
}

// GetIsRequired always returns nil; types carry no required flag.
func (e *Enricher) GetIsRequired(reflect.Type) *bool {
	return nil
}

// GetVerbs returns the declared actions of op, with the replacement verbs
// in place of an ANY wildcard.
func (e *Enricher) GetVerbs(op *host.Operation) []string {
	if slices.ContainsFunc(op.Actions, isAnyVerb) {
		return slices.Clone(e.replacementVerbs)
	}
	return slices.Clone(op.Actions)
}

// GetContentTypes returns the MIME types of every format op accepts. A
// format is skipped when the restriction of op or an Exclude annotation on
// the request type blocks it. The content type of an AddHeader annotation
// is appended when it is a valid header value.
func (e *Enricher) GetContentTypes(op *host.Operation) []string {
	var out []string
	for _, format := range e.formats {
		name := host.TrimFormat(format)
		if !op.RestrictTo.CanAccess(host.ParseRequestAttributes(name)) {
			continue
		}
		if !host.HasAccessToFeature(e.src, op.RequestType, host.ParseFeature(name)) {
			continue
		}
		if mt := host.MimeType(name); mt != "" {
			out = append(out, mt)
		}
	}

	if h, ok := host.FirstAttribute[host.AddHeader](e.typeAttributes(op.RequestType)); ok {
		ct := h.ContentType
		if ct == "" {
			ct = h.DefaultContentType
		}
		if ct != "" && httpguts.ValidHeaderFieldValue(ct) {
			out = append(out, ct)
		}
	}
	return apidoc.Distinct(out)
}

// GetStatusCodes returns 204 for one-way operations followed by one entry
// per ApiResponse annotation of the request type, in declaration order.
func (e *Enricher) GetStatusCodes(op *host.Operation) []apidoc.StatusCode {
	responses := host.Attributes[host.ApiResponse](e.typeAttributes(op.RequestType))

	codes := make([]apidoc.StatusCode, 0, len(responses)+1)
	if isOneWay(op) {
		codes = append(codes, apidoc.NewStatusCode(http.StatusNoContent))
	}
	for _, r := range responses {
		codes = append(codes, apidoc.StatusCode{Code: r.StatusCode, Description: r.Description})
	}
	return codes
}

// GetRelativePath returns the path of the first Route of the request type.
// Without one the path is synthesized from the request type name.
func (e *Enricher) GetRelativePath(op *host.Operation) string {
	if route, ok := host.FirstAttribute[host.Route](e.typeAttributes(op.RequestType)); ok && strings.TrimSpace(route.Path) != "" {
		return route.Path
	}

	reqType := host.Indirect(op.RequestType)
	if reqType == nil {
		return ""
	}
	dto := reflect.New(reqType).Interface()
	if op.IsOneWay {
		return host.OneWayURL(dto)
	}
	return host.ReplyURL(dto)
}

// GetCategory returns the Category annotation of the request type.
func (e *Enricher) GetCategory(op *host.Operation) string {
	if c, ok := host.FirstAttribute[host.Category](e.typeAttributes(op.RequestType)); ok {
		return c.Name
	}
	return ""
}

// GetTags returns the names of every Tags annotation of the request type.
func (e *Enricher) GetTags(op *host.Operation) []string {
	var out []string
	for _, tags := range host.Attributes[host.Tags](e.typeAttributes(op.RequestType)) {
		out = append(out, tags.Names...)
	}
	return out
}

var validatorType = reflect.TypeFor[interface{ Validate() error }]()

// GetHasValidator reports whether *t implements Validate() error.
func (e *Enricher) GetHasValidator(t reflect.Type) *bool {
	t = host.Indirect(t)
	if t == nil {
		return nil
	}
	return ptr(reflect.PointerTo(t).Implements(validatorType))
}

// GetSecurity returns nil unless op requires authentication.
func (e *Enricher) GetSecurity(op *host.Operation) *apidoc.ApiSecurity {
	if !op.RequiresAuthentication {
		return nil
	}
	return &apidoc.ApiSecurity{
		IsProtected: true,
		Roles:       apidoc.NewPermissions(op.RequiredRoles, op.RequiresAnyRole),
		Permissions: apidoc.NewPermissions(op.RequiredPermissions, op.RequiresAnyPermission),
	}
}

// GetActionNotes returns the summary of the first Route serving verb.
func (e *Enricher) GetActionNotes(op *host.Operation, verb string) string {
	for _, route := range host.Attributes[host.Route](e.typeAttributes(op.RequestType)) {
		if routeServes(route, verb) {
			return route.Summary
		}
	}
	return ""
}

// GetActionRelativePaths returns the paths of every Route serving verb.
// Without any Route the synthesized path is returned.
func (e *Enricher) GetActionRelativePaths(op *host.Operation, verb string) []string {
	routes := host.Attributes[host.Route](e.typeAttributes(op.RequestType))
	if len(routes) == 0 {
		if p := e.GetRelativePath(op); p != "" {
			return []string{p}
		}
		return nil
	}

	var out []string
	for _, route := range routes {
		if route.Path != "" && routeServes(route, verb) {
			out = append(out, route.Path)
		}
	}
	return out
}

func routeServes(route host.Route, verb string) bool {
	if len(route.Verbs) == 0 || slices.ContainsFunc(route.Verbs, isAnyVerb) {
		return true
	}
	return slices.ContainsFunc(route.Verbs, func(v string) bool {
		return strings.EqualFold(strings.TrimSpace(v), verb)
	})
}

func isAnyVerb(v string) bool {
	return strings.EqualFold(strings.TrimSpace(v), host.AnyVerb)
}

func ptr[T any](v T) *T {
	return &v
}
