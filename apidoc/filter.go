package apidoc

import "strings"

// SpecRequest selects a subset of the documented resources. Empty criteria
// are ignored; non-empty criteria must all match.
type SpecRequest struct {
	// DtoNames matches the request type name of a resource.
	DtoNames []string `json:"dtoNames,omitempty" yaml:"dtoNames,omitempty"`

	// Categories matches the resource category.
	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty"`

	// Tags matches when the resource carries at least one of the tags.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// IsEmpty reports whether the request carries no criteria.
func (r SpecRequest) IsEmpty() bool {
	return len(r.DtoNames) == 0 && len(r.Categories) == 0 && len(r.Tags) == 0
}

// Filter returns a copy of the document holding only the resources that
// match req. Comparisons are case-insensitive. When req is empty the
// receiver itself is returned. The resources are shared with the receiver,
// not copied.
func (d *ApiDocumentation) Filter(req SpecRequest) *ApiDocumentation {
	if d == nil || req.IsEmpty() {
		return d
	}

	out := *d
	out.Resources = nil
	for _, res := range d.Resources {
		if res != nil && req.matches(res) {
			out.Resources = append(out.Resources, res)
		}
	}
	return &out
}

func (r SpecRequest) matches(res *ApiResourceDocumentation) bool {
	if len(r.DtoNames) > 0 && !containsFold(r.DtoNames, res.TypeName) {
		return false
	}
	if len(r.Categories) > 0 && !containsFold(r.Categories, res.Category) {
		return false
	}
	if len(r.Tags) > 0 {
		for _, tag := range res.Tags {
			if containsFold(r.Tags, tag) {
				return true
			}
		}
		return false
	}
	return true
}

func containsFold(values []string, s string) bool {
	for _, v := range values {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
