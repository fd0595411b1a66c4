package apidoc

import "slices"

// ApiDocumentation is the aggregate document describing every documented
// operation of a host.
type ApiDocumentation struct {
	Title       string                      `json:"title" yaml:"title"`
	ApiVersion  string                      `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`
	ApiBaseURL  string                      `json:"apiBaseUrl,omitempty" yaml:"apiBaseUrl,omitempty"`
	Description string                      `json:"description,omitempty" yaml:"description,omitempty"`
	Contact     *ApiContact                 `json:"contact,omitempty" yaml:"contact,omitempty"`
	LicenseURL  string                      `json:"licenseUrl,omitempty" yaml:"licenseUrl,omitempty"`
	Resources   []*ApiResourceDocumentation `json:"resources,omitempty" yaml:"resources,omitempty"`
}

// ApiContact holds contact details for the documented API.
type ApiContact struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty" koanf:"name"`
	Email string `json:"email,omitempty" yaml:"email,omitempty" koanf:"email"`
	URL   string `json:"url,omitempty" yaml:"url,omitempty" koanf:"url"`
}

// ApiResourceType describes a DTO referenced by an operation, either the
// request DTO itself or the type returned by it.
type ApiResourceType struct {
	TypeName      string                      `json:"typeName,omitempty" yaml:"typeName,omitempty" koanf:"typeName"`
	Title         string                      `json:"title,omitempty" yaml:"title,omitempty" koanf:"title"`
	Description   string                      `json:"description,omitempty" yaml:"description,omitempty" koanf:"description"`
	Notes         string                      `json:"notes,omitempty" yaml:"notes,omitempty" koanf:"notes"`
	AllowMultiple *bool                       `json:"allowMultiple,omitempty" yaml:"allowMultiple,omitempty" koanf:"allowMultiple"`
	IsRequired    *bool                       `json:"isRequired,omitempty" yaml:"isRequired,omitempty" koanf:"isRequired"`
	Properties    []*ApiPropertyDocumentation `json:"properties,omitempty" yaml:"properties,omitempty" koanf:"properties"`
}

// ApiResourceDocumentation is the per-operation documentation fragment.
// The embedded ApiResourceType describes the request DTO.
type ApiResourceDocumentation struct {
	ApiResourceType `yaml:",inline" koanf:",squash"`

	RelativePath string           `json:"relativePath,omitempty" yaml:"relativePath,omitempty" koanf:"relativePath"`
	Verbs        []string         `json:"verbs,omitempty" yaml:"verbs,omitempty" koanf:"verbs"`
	ContentTypes []string         `json:"contentTypes,omitempty" yaml:"contentTypes,omitempty" koanf:"contentTypes"`
	StatusCodes  []StatusCode     `json:"statusCodes,omitempty" yaml:"statusCodes,omitempty" koanf:"statusCodes"`
	Category     string           `json:"category,omitempty" yaml:"category,omitempty" koanf:"category"`
	Tags         []string         `json:"tags,omitempty" yaml:"tags,omitempty" koanf:"tags"`
	Security     *ApiSecurity     `json:"security,omitempty" yaml:"security,omitempty" koanf:"security"`
	ReturnType   *ApiResourceType `json:"returnType,omitempty" yaml:"returnType,omitempty" koanf:"returnType"`
	HasValidator *bool            `json:"hasValidator,omitempty" yaml:"hasValidator,omitempty" koanf:"hasValidator"`
	Actions      []*ApiAction     `json:"actions,omitempty" yaml:"actions,omitempty" koanf:"actions"`
}

// ApiPropertyDocumentation describes a single member of a DTO.
type ApiPropertyDocumentation struct {
	ID            string              `json:"id" yaml:"id" koanf:"id"`
	ParamType     string              `json:"paramType,omitempty" yaml:"paramType,omitempty" koanf:"paramType"`
	Title         string              `json:"title,omitempty" yaml:"title,omitempty" koanf:"title"`
	Description   string              `json:"description,omitempty" yaml:"description,omitempty" koanf:"description"`
	AllowMultiple *bool               `json:"allowMultiple,omitempty" yaml:"allowMultiple,omitempty" koanf:"allowMultiple"`
	IsRequired    *bool               `json:"isRequired,omitempty" yaml:"isRequired,omitempty" koanf:"isRequired"`
	Notes         string              `json:"notes,omitempty" yaml:"notes,omitempty" koanf:"notes"`
	ExternalLinks []string            `json:"externalLinks,omitempty" yaml:"externalLinks,omitempty" koanf:"externalLinks"`
	Constraints   *PropertyConstraint `json:"constraints,omitempty" yaml:"constraints,omitempty" koanf:"constraints"`
}

// ApiAction is the per-verb view of an operation.
type ApiAction struct {
	Verb          string       `json:"verb" yaml:"verb" koanf:"verb"`
	Notes         string       `json:"notes,omitempty" yaml:"notes,omitempty" koanf:"notes"`
	StatusCodes   []StatusCode `json:"statusCodes,omitempty" yaml:"statusCodes,omitempty" koanf:"statusCodes"`
	ContentTypes  []string     `json:"contentTypes,omitempty" yaml:"contentTypes,omitempty" koanf:"contentTypes"`
	RelativePaths []string     `json:"relativePaths,omitempty" yaml:"relativePaths,omitempty" koanf:"relativePaths"`
}

// StatusCode is an HTTP status code with a human-readable description.
type StatusCode struct {
	Code        int    `json:"code" yaml:"code" koanf:"code"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" koanf:"description"`
}

// NewStatusCode returns a status code without a description.
func NewStatusCode(code int) StatusCode {
	return StatusCode{Code: code}
}

// ConstraintType discriminates the PropertyConstraint variants.
type ConstraintType string

const (
	ConstraintList  ConstraintType = "list"
	ConstraintRange ConstraintType = "range"
)

// PropertyConstraint restricts the values a property accepts. It is either a
// list of allowed values or a min/max range; use ListConstraint and
// RangeConstraint to construct one.
type PropertyConstraint struct {
	Name   string         `json:"name,omitempty" yaml:"name,omitempty" koanf:"name"`
	Type   ConstraintType `json:"type" yaml:"type" koanf:"type"`
	Values []string       `json:"values,omitempty" yaml:"values,omitempty" koanf:"values"`
	Min    *float64       `json:"min,omitempty" yaml:"min,omitempty" koanf:"min"`
	Max    *float64       `json:"max,omitempty" yaml:"max,omitempty" koanf:"max"`
}

// ListConstraint returns a constraint allowing only the given values.
func ListConstraint(name string, values []string) *PropertyConstraint {
	return &PropertyConstraint{
		Name:   name,
		Type:   ConstraintList,
		Values: Distinct(slices.Clone(values)),
	}
}

// RangeConstraint returns a constraint bounded by min and max. Either bound
// may be nil for an open range.
func RangeConstraint(name string, minValue, maxValue *float64) *PropertyConstraint {
	return &PropertyConstraint{
		Name: name,
		Type: ConstraintRange,
		Min:  minValue,
		Max:  maxValue,
	}
}

// IsList reports whether the constraint is a list-of-values constraint.
func (c *PropertyConstraint) IsList() bool {
	return c != nil && c.Type == ConstraintList
}

// IsRange reports whether the constraint is a min/max range constraint.
func (c *PropertyConstraint) IsRange() bool {
	return c != nil && c.Type == ConstraintRange
}

// ApiSecurity describes the authorization requirements of an operation.
type ApiSecurity struct {
	IsProtected bool         `json:"isProtected" yaml:"isProtected" koanf:"isProtected"`
	Roles       *Permissions `json:"roles,omitempty" yaml:"roles,omitempty" koanf:"roles"`
	Permissions *Permissions `json:"permissions,omitempty" yaml:"permissions,omitempty" koanf:"permissions"`
}

// Permissions is a requirement set: either every value in AllOf is required
// or at least one value in AnyOf.
type Permissions struct {
	AllOf []string `json:"allOf,omitempty" yaml:"allOf,omitempty" koanf:"allOf"`
	AnyOf []string `json:"anyOf,omitempty" yaml:"anyOf,omitempty" koanf:"anyOf"`
}

// NewPermissions builds a requirement set from values. It returns nil when
// values is empty. When anyOf is true the values populate AnyOf, otherwise AllOf.
func NewPermissions(values []string, anyOf bool) *Permissions {
	values = Distinct(slices.Clone(values))
	if len(values) == 0 {
		return nil
	}
	if anyOf {
		return &Permissions{AnyOf: values}
	}
	return &Permissions{AllOf: values}
}

// Distinct removes duplicate elements in place, keeping the first occurrence
// of each. A nil or empty slice is returned unchanged.
func Distinct[T comparable](values []T) []T {
	if len(values) < 2 {
		return values
	}
	seen := make(map[T]struct{}, len(values))
	out := values[:0]
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
