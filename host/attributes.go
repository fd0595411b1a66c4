package host

import "reflect"

// Route declares the path and verbs a request DTO is served on. Only the
// first Route of a type is considered when resolving a relative path.
type Route struct {
	Path    string
	Verbs   []string
	Summary string
	Notes   string
}

// Api describes a request DTO.
type Api struct {
	Description string
}

// Description is a plain description annotation, consulted after Api.
type Description struct {
	Text string
}

// ApiResponse declares a status code the operation may respond with.
type ApiResponse struct {
	StatusCode  int
	Description string
}

// Exclude hides a request DTO from the given features.
type Exclude struct {
	Features Feature
}

// AddHeader declares a response header added by the operation. Only the
// content type is relevant to documentation.
type AddHeader struct {
	ContentType        string
	DefaultContentType string
}

// ApiMember describes a DTO member.
type ApiMember struct {
	Name          string
	Description   string
	ParameterType string
	AllowMultiple bool
	IsRequired    bool
}

// Allowable value kinds for ApiAllowableValues.Type.
const (
	AllowableList  = "LIST"
	AllowableRange = "RANGE"
)

// ApiAllowableValues restricts the values of a DTO member either to a list
// (Type LIST) or to a numeric range (Type RANGE).
type ApiAllowableValues struct {
	Name   string
	Type   string
	Values []string
	Min    *float64
	Max    *float64
}

// Tags assigns documentation tags to a request DTO.
type Tags struct {
	Names []string
}

// Category assigns a documentation category to a request DTO.
type Category struct {
	Name string
}

// Annotated is implemented by types that declare their own annotations.
// The method is called on a zero value, so it must not depend on state.
type Annotated interface {
	APIAttributes() []any
}

// MetadataSource exposes annotation lookup for types and their members.
type MetadataSource interface {
	// TypeAttributes returns every annotation attached to t, in declaration
	// order. Pointer types are resolved to their element type.
	TypeAttributes(t reflect.Type) []any

	// MemberAttributes returns every annotation attached to the member.
	MemberAttributes(m Member) []any
}

// FirstAttribute returns the first annotation of kind A. Annotations stored
// as *A are matched too.
func FirstAttribute[A any](attrs []any) (A, bool) {
	for _, a := range attrs {
		if v, ok := asAttribute[A](a); ok {
			return v, true
		}
	}
	var zero A
	return zero, false
}

// Attributes returns every annotation of kind A, in declaration order.
func Attributes[A any](attrs []any) []A {
	var out []A
	for _, a := range attrs {
		if v, ok := asAttribute[A](a); ok {
			out = append(out, v)
		}
	}
	return out
}

func asAttribute[A any](a any) (A, bool) {
	switch v := a.(type) {
	case A:
		return v, true
	case *A:
		if v != nil {
			return *v, true
		}
	}
	var zero A
	return zero, false
}
