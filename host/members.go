package host

import (
	"reflect"
	"strings"
)

// Member describes a documentable field of a DTO.
type Member struct {
	// Owner is the struct type declaring the field. For fields promoted
	// from an embedded struct this is the embedded type.
	Owner reflect.Type

	// Field is the reflected struct field.
	Field reflect.StructField

	// ID is the wire name of the member as encoding/json would emit it.
	ID string
}

// Name returns the Go field name.
func (m Member) Name() string {
	return m.Field.Name
}

// MemberKey identifies a field by its declaring type and its position in
// that type. Distinct types never share a key, even when their names match.
type MemberKey struct {
	Owner reflect.Type
	Index int
}

// Key identifies the member independently of the type it was reached from.
func (m Member) Key() MemberKey {
	key := MemberKey{Owner: Indirect(m.Owner), Index: -1}
	if n := len(m.Field.Index); n > 0 {
		key.Index = m.Field.Index[n-1]
	}
	return key
}

// String returns the qualified member name, "<pkgpath>.<Type>.<Field>".
func (m Member) String() string {
	return FullName(m.Owner) + "." + m.Field.Name
}

// FullName returns the package-qualified name of t, with pointers resolved
// to their element type. Builtin and unnamed types return their plain name.
func FullName(t reflect.Type) string {
	t = Indirect(t)
	if t == nil {
		return ""
	}
	if t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}

// Indirect resolves pointer types to their element type. A nil type is
// returned unchanged.
func Indirect(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// Members returns the documentable fields of t in declaration order. Only
// exported fields are returned; fields tagged `json:"-"` are skipped, and
// anonymous struct fields without a json name are inlined the way
// encoding/json inlines them. Non-struct types have no members.
func Members(t reflect.Type) []Member {
	t = Indirect(t)
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	var out []Member
	collectMembers(t, &out, make(map[reflect.Type]bool))
	return out
}

func collectMembers(t reflect.Type, out *[]Member, visiting map[reflect.Type]bool) {
	if visiting[t] {
		return
	}
	visiting[t] = true
	defer delete(visiting, t)

	for i := range t.NumField() {
		field := t.Field(i)

		jsonTag := field.Tag.Get("json")
		name := jsonName(jsonTag)

		if field.Anonymous && name == "" {
			ft := Indirect(field.Type)
			if ft.Kind() == reflect.Struct {
				collectMembers(ft, out, visiting)
				continue
			}
		}

		if !field.IsExported() || jsonTag == "-" {
			continue
		}

		if name == "" {
			name = field.Name
		}

		*out = append(*out, Member{Owner: t, Field: field, ID: name})
	}
}

func jsonName(tag string) string {
	name, _, _ := strings.Cut(tag, ",")
	return name
}
