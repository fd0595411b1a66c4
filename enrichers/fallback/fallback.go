// Package fallback provides an enricher that supplies configured defaults.
// It is meant to run last so it only fills what no other source supplied.
package fallback

import (
	"reflect"
	"slices"

	"github.com/vitalvas/introspec/apidoc"
	"github.com/vitalvas/introspec/enrich"
	"github.com/vitalvas/introspec/host"
)

var (
	_ enrich.ResourceEnricher = (*Enricher)(nil)
	_ enrich.RequestEnricher  = (*Enricher)(nil)
	_ enrich.PropertyEnricher = (*Enricher)(nil)
)

// Settings are the defaults applied by the enricher.
type Settings struct {
	Category    string              `koanf:"category"`
	Notes       string              `koanf:"notes"`
	Tags        []string            `koanf:"tags"`
	StatusCodes []apidoc.StatusCode `koanf:"status-codes"`
}

// Enricher answers every query with a configured default, or with nothing
// when no default is configured.
type Enricher struct {
	settings Settings
}

// New creates a fallback enricher.
func New(settings Settings) *Enricher {
	settings.Tags = slices.Clone(settings.Tags)
	settings.StatusCodes = slices.Clone(settings.StatusCodes)
	return &Enricher{settings: settings}
}

// GetTitle returns nothing; titles come from the type itself.
func (e *Enricher) GetTitle(reflect.Type) string { return "" }

// GetDescription returns nothing.
func (e *Enricher) GetDescription(reflect.Type) string { return "" }

// Policy pins SetIfEmpty so defaults never add to collections another
// source already filled.
func (e *Enricher) Policy() enrich.Policy { return enrich.SetIfEmpty }

// GetNotes returns the default notes.
func (e *Enricher) GetNotes(reflect.Type) string { return e.settings.Notes }

// GetAllowMultiple returns nil.
func (e *Enricher) GetAllowMultiple(reflect.Type) *bool { return nil }

// GetIsRequired returns nil.
func (e *Enricher) GetIsRequired(reflect.Type) *bool { return nil }

// GetVerbs returns nothing.
func (e *Enricher) GetVerbs(*host.Operation) []string { return nil }

// GetContentTypes returns nothing.
func (e *Enricher) GetContentTypes(*host.Operation) []string { return nil }

// GetRelativePath returns nothing.
func (e *Enricher) GetRelativePath(*host.Operation) string { return "" }

// GetHasValidator returns nil.
func (e *Enricher) GetHasValidator(reflect.Type) *bool { return nil }

// GetStatusCodes returns the default status codes.
func (e *Enricher) GetStatusCodes(*host.Operation) []apidoc.StatusCode {
	return slices.Clone(e.settings.StatusCodes)
}

// GetCategory returns the default category.
func (e *Enricher) GetCategory(*host.Operation) string {
	return e.settings.Category
}

// GetTags returns the default tags.
func (e *Enricher) GetTags(*host.Operation) []string {
	return slices.Clone(e.settings.Tags)
}

// GetPropertyTitle returns the Go field name of m.
func (e *Enricher) GetPropertyTitle(m host.Member) string {
	return m.Name()
}

// GetPropertyAllowMultiple reports true for slice and array members.
func (e *Enricher) GetPropertyAllowMultiple(m host.Member) *bool {
	t := host.Indirect(m.Field.Type)
	if t == nil {
		return nil
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		v := true
		return &v
	}
	return nil
}

// GetPropertyDescription returns nothing.
func (e *Enricher) GetPropertyDescription(host.Member) string { return "" }

// GetPropertyParamType returns nothing.
func (e *Enricher) GetPropertyParamType(host.Member) string { return "" }

// GetPropertyIsRequired returns nil.
func (e *Enricher) GetPropertyIsRequired(host.Member) *bool { return nil }

// GetPropertyNotes returns nothing.
func (e *Enricher) GetPropertyNotes(host.Member) string { return "" }

// GetPropertyExternalLinks returns nothing.
func (e *Enricher) GetPropertyExternalLinks(host.Member) []string { return nil }

// GetPropertyConstraints returns nil.
func (e *Enricher) GetPropertyConstraints(host.Member) *apidoc.PropertyConstraint { return nil }
