package host

import (
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// Struct tag keys read by Metadata.
const (
	TagAPIMember = "apimember"
	TagAllowable = "allowable"
)

// Metadata is a MetadataSource backed by registered annotations, the
// Annotated interface and member struct tags. It is safe for concurrent use.
type Metadata struct {
	mu      sync.RWMutex
	types   map[reflect.Type][]any
	members map[MemberKey][]any
}

var _ MetadataSource = (*Metadata)(nil)

// NewMetadata returns an empty metadata store.
func NewMetadata() *Metadata {
	return &Metadata{
		types:   make(map[reflect.Type][]any),
		members: make(map[MemberKey][]any),
	}
}

// Annotate attaches annotations to the type of v. v may be a value, a
// pointer, or a reflect.Type.
func (m *Metadata) Annotate(v any, attrs ...any) *Metadata {
	t := typeOf(v)
	if t == nil || len(attrs) == 0 {
		return m
	}
	m.mu.Lock()
	m.types[t] = append(m.types[t], attrs...)
	m.mu.Unlock()
	return m
}

// AnnotateMember attaches annotations to the named field of the type of v.
// Unknown fields are ignored.
func (m *Metadata) AnnotateMember(v any, field string, attrs ...any) *Metadata {
	t := typeOf(v)
	if t == nil || t.Kind() != reflect.Struct || len(attrs) == 0 {
		return m
	}
	sf, ok := t.FieldByName(field)
	if !ok {
		return m
	}
	owner := t
	if len(sf.Index) > 1 {
		// Promoted field: key it by the embedded type that declares it.
		owner = Indirect(t.FieldByIndex(sf.Index[:len(sf.Index)-1]).Type)
	}
	key := Member{Owner: owner, Field: sf}.Key()

	m.mu.Lock()
	m.members[key] = append(m.members[key], attrs...)
	m.mu.Unlock()
	return m
}

// TypeAttributes returns the registered annotations of t followed by the
// ones declared through Annotated.
func (m *Metadata) TypeAttributes(t reflect.Type) []any {
	t = Indirect(t)
	if t == nil {
		return nil
	}

	var out []any
	if m != nil {
		m.mu.RLock()
		out = append(out, m.types[t]...)
		m.mu.RUnlock()
	}

	if a, ok := reflect.New(t).Interface().(Annotated); ok {
		out = append(out, a.APIAttributes()...)
	}
	return out
}

// MemberAttributes returns the registered annotations of the member
// followed by the ones parsed from its struct tags.
func (m *Metadata) MemberAttributes(mem Member) []any {
	if mem.Owner == nil {
		return nil
	}

	var out []any
	if m != nil {
		m.mu.RLock()
		out = append(out, m.members[mem.Key()]...)
		m.mu.RUnlock()
	}

	if attr, ok := ParseAPIMemberTag(mem.Field.Tag.Get(TagAPIMember)); ok {
		out = append(out, attr)
	}
	if attr, ok := ParseAllowableTag(mem.Field.Tag.Get(TagAllowable)); ok {
		out = append(out, attr)
	}
	return out
}

// ParseAPIMemberTag parses an `apimember` struct tag. Recognized keys are
// name, description, paramType, required and allowMultiple; boolean keys may
// be given bare or with a value. Unknown keys are ignored.
//
//	`apimember:"name=Pet name,paramType=query,required"`
func ParseAPIMemberTag(tag string) (ApiMember, bool) {
	if strings.TrimSpace(tag) == "" {
		return ApiMember{}, false
	}

	var attr ApiMember
	for key, value := range tagPairs(tag) {
		switch key {
		case "name":
			attr.Name = value
		case "description":
			attr.Description = value
		case "paramType":
			attr.ParameterType = value
		case "required":
			attr.IsRequired = tagBool(value)
		case "allowMultiple":
			attr.AllowMultiple = tagBool(value)
		}
	}
	return attr, true
}

// ParseAllowableTag parses an `allowable` struct tag into a LIST constraint
// when a list key is present, otherwise into a RANGE constraint when min or
// max parse as numbers. List values are separated by "|".
//
//	`allowable:"list=cat|dog"`
//	`allowable:"name=age,min=0,max=40"`
func ParseAllowableTag(tag string) (ApiAllowableValues, bool) {
	if strings.TrimSpace(tag) == "" {
		return ApiAllowableValues{}, false
	}

	var attr ApiAllowableValues
	for key, value := range tagPairs(tag) {
		switch key {
		case "name":
			attr.Name = value
		case "list":
			attr.Type = AllowableList
			attr.Values = strings.Split(value, "|")
		case "min":
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				attr.Min = &v
			}
		case "max":
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				attr.Max = &v
			}
		}
	}

	switch {
	case attr.Type == AllowableList:
	case attr.Min != nil || attr.Max != nil:
		attr.Type = AllowableRange
	default:
		return ApiAllowableValues{}, false
	}
	return attr, true
}

// tagPairs iterates the comma-separated key[=value] entries of a tag.
func tagPairs(tag string) func(yield func(string, string) bool) {
	return func(yield func(string, string) bool) {
		for part := range strings.SplitSeq(tag, ",") {
			key, value, _ := strings.Cut(part, "=")
			key = strings.TrimSpace(key)
			if key == "" {
				continue
			}
			if !yield(key, strings.TrimSpace(value)) {
				return
			}
		}
	}
}

func tagBool(value string) bool {
	if value == "" {
		return true
	}
	b, err := strconv.ParseBool(value)
	return err == nil && b
}

func typeOf(v any) reflect.Type {
	if v == nil {
		return nil
	}
	if t, ok := v.(reflect.Type); ok {
		return Indirect(t)
	}
	return Indirect(reflect.TypeOf(v))
}
