package apidoc

import "slices"

// Clone returns a deep copy of the resource documentation. A nil receiver
// returns nil.
func (d *ApiResourceDocumentation) Clone() *ApiResourceDocumentation {
	if d == nil {
		return nil
	}
	out := *d
	out.ApiResourceType = *d.ApiResourceType.Clone()
	out.Verbs = slices.Clone(d.Verbs)
	out.ContentTypes = slices.Clone(d.ContentTypes)
	out.StatusCodes = slices.Clone(d.StatusCodes)
	out.Tags = slices.Clone(d.Tags)
	out.Security = d.Security.Clone()
	out.ReturnType = d.ReturnType.Clone()
	out.HasValidator = cloneBool(d.HasValidator)
	if d.Actions != nil {
		out.Actions = make([]*ApiAction, len(d.Actions))
		for i, a := range d.Actions {
			out.Actions[i] = a.Clone()
		}
	}
	return &out
}

// Clone returns a deep copy of the resource type. A nil receiver returns nil.
func (t *ApiResourceType) Clone() *ApiResourceType {
	if t == nil {
		return nil
	}
	out := *t
	out.AllowMultiple = cloneBool(t.AllowMultiple)
	out.IsRequired = cloneBool(t.IsRequired)
	if t.Properties != nil {
		out.Properties = make([]*ApiPropertyDocumentation, len(t.Properties))
		for i, p := range t.Properties {
			out.Properties[i] = p.Clone()
		}
	}
	return &out
}

// Clone returns a deep copy of the property. A nil receiver returns nil.
func (p *ApiPropertyDocumentation) Clone() *ApiPropertyDocumentation {
	if p == nil {
		return nil
	}
	out := *p
	out.AllowMultiple = cloneBool(p.AllowMultiple)
	out.IsRequired = cloneBool(p.IsRequired)
	out.ExternalLinks = slices.Clone(p.ExternalLinks)
	if p.Constraints != nil {
		c := *p.Constraints
		c.Values = slices.Clone(p.Constraints.Values)
		out.Constraints = &c
	}
	return &out
}

// Clone returns a deep copy of the action. A nil receiver returns nil.
func (a *ApiAction) Clone() *ApiAction {
	if a == nil {
		return nil
	}
	out := *a
	out.StatusCodes = slices.Clone(a.StatusCodes)
	out.ContentTypes = slices.Clone(a.ContentTypes)
	out.RelativePaths = slices.Clone(a.RelativePaths)
	return &out
}

// Clone returns a deep copy of the security descriptor. A nil receiver
// returns nil.
func (s *ApiSecurity) Clone() *ApiSecurity {
	if s == nil {
		return nil
	}
	out := *s
	out.Roles = s.Roles.clone()
	out.Permissions = s.Permissions.clone()
	return &out
}

func (p *Permissions) clone() *Permissions {
	if p == nil {
		return nil
	}
	return &Permissions{AllOf: slices.Clone(p.AllOf), AnyOf: slices.Clone(p.AnyOf)}
}

// Normalize deduplicates every collection field of the fragment, including
// the return type, properties, and actions. Overrides loaded from
// configuration are normalized before enrichment.
func (d *ApiResourceDocumentation) Normalize() {
	if d == nil {
		return
	}
	d.ApiResourceType.normalize()
	d.ReturnType.normalize()
	d.Verbs = Distinct(d.Verbs)
	d.ContentTypes = Distinct(d.ContentTypes)
	d.StatusCodes = Distinct(d.StatusCodes)
	d.Tags = Distinct(d.Tags)
	for _, a := range d.Actions {
		if a == nil {
			continue
		}
		a.StatusCodes = Distinct(a.StatusCodes)
		a.ContentTypes = Distinct(a.ContentTypes)
		a.RelativePaths = Distinct(a.RelativePaths)
	}
}

func (t *ApiResourceType) normalize() {
	if t == nil {
		return
	}
	for _, p := range t.Properties {
		if p == nil {
			continue
		}
		p.ExternalLinks = Distinct(p.ExternalLinks)
		if p.Constraints != nil {
			p.Constraints.Values = Distinct(p.Constraints.Values)
		}
	}
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}
