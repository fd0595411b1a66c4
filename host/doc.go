// Package host models the metadata a Go web-service host exposes about its
// API operations: the registered operations themselves, type-level and
// member-level annotations, available wire formats and the small parsing
// utilities that back them.
//
// Go has no attributes, so annotations are plain Go values attached in one
// of three ways:
//
//	// 1. Registered against a type you may not own.
//	md := host.NewMetadata()
//	md.Annotate(FindPets{}, host.Route{Path: "/pets", Notes: "Paged"})
//
//	// 2. Declared by the type itself.
//	func (CreatePet) APIAttributes() []any {
//	    return []any{host.ApiResponse{StatusCode: 409, Description: "Duplicate"}}
//	}
//
//	// 3. Struct tags on members.
//	type Pet struct {
//	    Name string `json:"name" apimember:"description=Pet name,required"`
//	    Kind string `json:"kind" allowable:"list=cat|dog"`
//	    Age  int    `json:"age" allowable:"min=0,max=40"`
//	}
//
// A Host ties operations, formats and metadata together:
//
//	h := host.New(host.WithMetadata(md))
//	_ = h.Register(host.Operation{
//	    RequestType:  reflect.TypeFor[FindPets](),
//	    ResponseType: reflect.TypeFor[[]Pet](),
//	    Actions:      []string{http.MethodGet},
//	})
//
// Lookups never fail: a missing annotation is reported as "not found".
// Malformed tag entries and unknown format names are ignored.
package host
