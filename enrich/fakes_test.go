package enrich

import (
	"reflect"
	"sync"

	"github.com/vitalvas/introspec/apidoc"
	"github.com/vitalvas/introspec/host"
)

// fakeSource implements every capability and records each call by method
// name. Returned values are configured per field.
type fakeSource struct {
	mu    sync.Mutex
	calls map[string]int
	types map[string][]reflect.Type

	title, description, notes string
	allowMultiple, isRequired *bool

	verbs, contentTypes, tags []string
	statusCodes               []apidoc.StatusCode
	relativePath, category    string
	hasValidator              *bool

	security *apidoc.ApiSecurity

	propTitle string
	links     []string

	actionNotes string
	actionPaths []string
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		calls: make(map[string]int),
		types: make(map[string][]reflect.Type),
	}
}

func (f *fakeSource) record(name string, t reflect.Type) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
	f.types[name] = append(f.types[name], t)
}

func (f *fakeSource) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeSource) GetTitle(t reflect.Type) string {
	f.record("GetTitle", t)
	return f.title
}

func (f *fakeSource) GetDescription(t reflect.Type) string {
	f.record("GetDescription", t)
	return f.description
}

func (f *fakeSource) GetNotes(t reflect.Type) string {
	f.record("GetNotes", t)
	return f.notes
}

func (f *fakeSource) GetAllowMultiple(t reflect.Type) *bool {
	f.record("GetAllowMultiple", t)
	return f.allowMultiple
}

func (f *fakeSource) GetIsRequired(t reflect.Type) *bool {
	f.record("GetIsRequired", t)
	return f.isRequired
}

func (f *fakeSource) GetVerbs(*host.Operation) []string {
	f.record("GetVerbs", nil)
	return f.verbs
}

func (f *fakeSource) GetContentTypes(*host.Operation) []string {
	f.record("GetContentTypes", nil)
	return f.contentTypes
}

func (f *fakeSource) GetStatusCodes(*host.Operation) []apidoc.StatusCode {
	f.record("GetStatusCodes", nil)
	return f.statusCodes
}

func (f *fakeSource) GetRelativePath(*host.Operation) string {
	f.record("GetRelativePath", nil)
	return f.relativePath
}

func (f *fakeSource) GetCategory(*host.Operation) string {
	f.record("GetCategory", nil)
	return f.category
}

func (f *fakeSource) GetTags(*host.Operation) []string {
	f.record("GetTags", nil)
	return f.tags
}

func (f *fakeSource) GetHasValidator(t reflect.Type) *bool {
	f.record("GetHasValidator", t)
	return f.hasValidator
}

func (f *fakeSource) GetSecurity(*host.Operation) *apidoc.ApiSecurity {
	f.record("GetSecurity", nil)
	return f.security
}

func (f *fakeSource) GetPropertyTitle(m host.Member) string {
	f.record("GetPropertyTitle", m.Owner)
	if f.propTitle != "" {
		return f.propTitle
	}
	return m.Name()
}

func (f *fakeSource) GetPropertyDescription(m host.Member) string {
	f.record("GetPropertyDescription", m.Owner)
	return ""
}

func (f *fakeSource) GetPropertyParamType(m host.Member) string {
	f.record("GetPropertyParamType", m.Owner)
	return "body"
}

func (f *fakeSource) GetPropertyAllowMultiple(m host.Member) *bool {
	f.record("GetPropertyAllowMultiple", m.Owner)
	return nil
}

func (f *fakeSource) GetPropertyIsRequired(m host.Member) *bool {
	f.record("GetPropertyIsRequired", m.Owner)
	return nil
}

func (f *fakeSource) GetPropertyNotes(m host.Member) string {
	f.record("GetPropertyNotes", m.Owner)
	return ""
}

func (f *fakeSource) GetPropertyExternalLinks(m host.Member) []string {
	f.record("GetPropertyExternalLinks", m.Owner)
	return f.links
}

func (f *fakeSource) GetPropertyConstraints(m host.Member) *apidoc.PropertyConstraint {
	f.record("GetPropertyConstraints", m.Owner)
	return nil
}

func (f *fakeSource) GetActionNotes(*host.Operation, string) string {
	f.record("GetActionNotes", nil)
	return f.actionNotes
}

func (f *fakeSource) GetActionRelativePaths(*host.Operation, string) []string {
	f.record("GetActionRelativePaths", nil)
	return f.actionPaths
}

// resourceOnly implements ResourceEnricher and nothing else.
type resourceOnly struct{}

func (resourceOnly) GetTitle(reflect.Type) string { return "only" }
func (resourceOnly) GetDescription(reflect.Type) string { return "" }
func (resourceOnly) GetNotes(reflect.Type) string { return "" }
func (resourceOnly) GetAllowMultiple(reflect.Type) *bool { return nil }
func (resourceOnly) GetIsRequired(reflect.Type) *bool { return nil }

func ptr[T any](v T) *T {
	return &v
}
