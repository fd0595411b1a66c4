package reflection

import (
	"github.com/vitalvas/introspec/apidoc"
	"github.com/vitalvas/introspec/host"
)

// lookup returns the annotation data of m, scanning the metadata source
// at most once per member key.
func (e *Enricher) lookup(m host.Member) memberInfo {
	key := m.Key()

	e.mu.Lock()
	defer e.mu.Unlock()

	if info, ok := e.members[key]; ok {
		return info
	}

	var info memberInfo
	if e.src != nil {
		attrs := e.src.MemberAttributes(m)
		if a, ok := host.FirstAttribute[host.ApiMember](attrs); ok {
			info.member = &a
		}
		if a, ok := host.FirstAttribute[host.ApiAllowableValues](attrs); ok {
			info.allowable = &a
		}
	}
	e.members[key] = info
	return info
}

// GetPropertyTitle returns the ApiMember name of m.
func (e *Enricher) GetPropertyTitle(m host.Member) string {
	if a := e.lookup(m).member; a != nil {
		return a.Name
	}
	return ""
}

// GetPropertyDescription returns the ApiMember description of m.
func (e *Enricher) GetPropertyDescription(m host.Member) string {
	if a := e.lookup(m).member; a != nil {
		return a.Description
	}
	return ""
}

// GetPropertyParamType returns the ApiMember parameter type of m.
func (e *Enricher) GetPropertyParamType(m host.Member) string {
	if a := e.lookup(m).member; a != nil {
		return a.ParameterType
	}
	return ""
}

// GetPropertyAllowMultiple returns the ApiMember flag of m, or nil when m
// has no ApiMember annotation.
func (e *Enricher) GetPropertyAllowMultiple(m host.Member) *bool {
	if a := e.lookup(m).member; a != nil {
		return ptr(a.AllowMultiple)
	}
	return nil
}

// GetPropertyIsRequired returns the ApiMember flag of m, or nil when m has
// no ApiMember annotation.
func (e *Enricher) GetPropertyIsRequired(m host.Member) *bool {
	if a := e.lookup(m).member; a != nil {
		return ptr(a.IsRequired)
	}
	return nil
}

// GetPropertyNotes returns nothing; member annotations carry no notes.
func (e *Enricher) GetPropertyNotes(host.Member) string {
	return ""
}

// GetPropertyExternalLinks returns nothing; member annotations carry no
// links.
func (e *Enricher) GetPropertyExternalLinks(host.Member) []string {
	return nil
}

// GetPropertyConstraints converts the ApiAllowableValues annotation of m:
// LIST becomes a list constraint, anything else a range constraint.
func (e *Enricher) GetPropertyConstraints(m host.Member) *apidoc.PropertyConstraint {
	a := e.lookup(m).allowable
	if a == nil {
		return nil
	}

	var c *apidoc.PropertyConstraint
	if a.Type == host.AllowableList {
		c = apidoc.ListConstraint(a.Name, a.Values)
	} else {
		c = apidoc.RangeConstraint(a.Name, a.Min, a.Max)
	}

	e.logger.Debug().
		Str("type", a.Type).
		Str("member", m.String()).
		Msg("created property constraint")
	return c
}
