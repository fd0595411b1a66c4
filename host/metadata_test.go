package host

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type annotatedDTO struct {
	ID string `json:"id"`
}

func (annotatedDTO) APIAttributes() []any {
	return []any{
		ApiResponse{StatusCode: 409, Description: "conflict"},
		&Route{Path: "/annotated"},
	}
}

type tagBase struct {
	Created string `json:"created" apimember:"description=Creation time"`
}

type taggedDTO struct {
	tagBase
	Name    string  `json:"name" apimember:"name=Pet name,description=The name,paramType=query,required"`
	Kind    string  `json:"kind,omitempty" allowable:"name=kind,list=cat|dog"`
	Age     int     `json:"age" allowable:"min=0,max=40"`
	Weight  float64 `json:"weight" allowable:"min=abc"`
	Hidden  string  `json:"-"`
	private string
	Plain   string
}

func TestFirstAttribute(t *testing.T) {
	attrs := []any{Api{Description: "first"}, &Route{Path: "/p"}, Api{Description: "second"}, (*Route)(nil)}

	api, ok := FirstAttribute[Api](attrs)
	require.True(t, ok)
	assert.Equal(t, "first", api.Description)

	route, ok := FirstAttribute[Route](attrs)
	require.True(t, ok)
	assert.Equal(t, "/p", route.Path)

	_, ok = FirstAttribute[Exclude](attrs)
	assert.False(t, ok)

	assert.Len(t, Attributes[Api](attrs), 2)
	assert.Len(t, Attributes[Route](attrs), 1)
	assert.Empty(t, Attributes[Tags](nil))
}

func TestMetadataTypeAttributes(t *testing.T) {
	t.Run("registered then annotated", func(t *testing.T) {
		md := NewMetadata().Annotate(annotatedDTO{}, Api{Description: "dto"})

		attrs := md.TypeAttributes(reflect.TypeFor[*annotatedDTO]())
		require.Len(t, attrs, 3)
		assert.Equal(t, Api{Description: "dto"}, attrs[0])

		resp, ok := FirstAttribute[ApiResponse](attrs)
		require.True(t, ok)
		assert.Equal(t, 409, resp.StatusCode)
	})

	t.Run("annotate by reflect.Type", func(t *testing.T) {
		md := NewMetadata().Annotate(reflect.TypeFor[taggedDTO](), Category{Name: "pets"})
		cat, ok := FirstAttribute[Category](md.TypeAttributes(reflect.TypeFor[taggedDTO]()))
		require.True(t, ok)
		assert.Equal(t, "pets", cat.Name)
	})

	t.Run("nil inputs", func(t *testing.T) {
		md := NewMetadata().Annotate(nil, Api{}).Annotate(taggedDTO{})
		assert.Nil(t, md.TypeAttributes(nil))
		assert.Empty(t, md.TypeAttributes(reflect.TypeFor[taggedDTO]()))
	})

	t.Run("nil metadata still reads Annotated", func(t *testing.T) {
		var md *Metadata
		assert.Len(t, md.TypeAttributes(reflect.TypeFor[annotatedDTO]()), 2)
	})
}

func TestMetadataMemberAttributes(t *testing.T) {
	members := Members(reflect.TypeFor[taggedDTO]())
	byID := make(map[string]Member, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}

	md := NewMetadata()

	t.Run("apimember tag", func(t *testing.T) {
		attr, ok := FirstAttribute[ApiMember](md.MemberAttributes(byID["name"]))
		require.True(t, ok)
		assert.Equal(t, ApiMember{Name: "Pet name", Description: "The name", ParameterType: "query", IsRequired: true}, attr)
	})

	t.Run("list allowable tag", func(t *testing.T) {
		attr, ok := FirstAttribute[ApiAllowableValues](md.MemberAttributes(byID["kind"]))
		require.True(t, ok)
		assert.Equal(t, AllowableList, attr.Type)
		assert.Equal(t, "kind", attr.Name)
		assert.Equal(t, []string{"cat", "dog"}, attr.Values)
	})

	t.Run("range allowable tag", func(t *testing.T) {
		attr, ok := FirstAttribute[ApiAllowableValues](md.MemberAttributes(byID["age"]))
		require.True(t, ok)
		assert.Equal(t, AllowableRange, attr.Type)
		assert.Equal(t, 0.0, *attr.Min)
		assert.Equal(t, 40.0, *attr.Max)
	})

	t.Run("malformed allowable tag ignored", func(t *testing.T) {
		_, ok := FirstAttribute[ApiAllowableValues](md.MemberAttributes(byID["weight"]))
		assert.False(t, ok)
	})

	t.Run("promoted field annotation", func(t *testing.T) {
		md := NewMetadata().AnnotateMember(taggedDTO{}, "Created", ApiMember{Name: "registered"})
		attrs := md.MemberAttributes(byID["created"])

		all := Attributes[ApiMember](attrs)
		require.Len(t, all, 2)
		assert.Equal(t, "registered", all[0].Name)
		assert.Equal(t, "Creation time", all[1].Description)
	})

	t.Run("unknown field ignored", func(t *testing.T) {
		md := NewMetadata().AnnotateMember(taggedDTO{}, "Missing", ApiMember{})
		assert.Empty(t, md.members)
	})

	t.Run("zero member", func(t *testing.T) {
		assert.Nil(t, md.MemberAttributes(Member{}))
	})

	t.Run("same-named local types kept apart", func(t *testing.T) {
		first, second := localBodyA(), localBodyB()
		require.NotEqual(t, first, second)

		md := NewMetadata().AnnotateMember(first, "Name", ApiMember{Name: "first"})

		a := Members(first)[0]
		b := Members(second)[0]
		assert.Equal(t, a.String(), b.String())
		assert.NotEqual(t, a.Key(), b.Key())

		_, ok := FirstAttribute[ApiMember](md.MemberAttributes(a))
		assert.True(t, ok)
		_, ok = FirstAttribute[ApiMember](md.MemberAttributes(b))
		assert.False(t, ok)
	})
}

func localBodyA() reflect.Type {
	type body struct {
		Name string `json:"name"`
	}
	return reflect.TypeFor[body]()
}

func localBodyB() reflect.Type {
	type body struct {
		Name string `json:"name"`
	}
	return reflect.TypeFor[body]()
}

func TestParseAPIMemberTag(t *testing.T) {
	tests := []struct {
		tag    string
		want   ApiMember
		wantOK bool
	}{
		{tag: "", wantOK: false},
		{tag: "  ", wantOK: false},
		{tag: "required", want: ApiMember{IsRequired: true}, wantOK: true},
		{tag: "required=false,allowMultiple=true", want: ApiMember{AllowMultiple: true}, wantOK: true},
		{tag: "required=maybe", want: ApiMember{}, wantOK: true},
		{tag: "unknown=1, description = spaced ", want: ApiMember{Description: "spaced"}, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got, ok := ParseAPIMemberTag(tt.tag)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMembers(t *testing.T) {
	members := Members(reflect.TypeFor[*taggedDTO]())

	var ids []string
	for _, m := range members {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{"created", "name", "kind", "age", "weight", "Plain"}, ids)

	assert.Equal(t, reflect.TypeFor[tagBase](), members[0].Owner)
	assert.Equal(t, "Created", members[0].Name())
	assert.Equal(t, "github.com/vitalvas/introspec/host.tagBase.Created", members[0].String())
	assert.Equal(t, "github.com/vitalvas/introspec/host.taggedDTO.Name", members[1].String())
	assert.Equal(t, MemberKey{Owner: reflect.TypeFor[tagBase](), Index: 0}, members[0].Key())
	assert.Equal(t, MemberKey{Owner: reflect.TypeFor[taggedDTO](), Index: 1}, members[1].Key())

	assert.Nil(t, Members(reflect.TypeFor[string]()))
	assert.Nil(t, Members(nil))
}

func TestFullName(t *testing.T) {
	assert.Equal(t, "github.com/vitalvas/introspec/host.taggedDTO", FullName(reflect.TypeFor[*taggedDTO]()))
	assert.Equal(t, "string", FullName(reflect.TypeFor[string]()))
	assert.Equal(t, "[]string", FullName(reflect.TypeFor[[]string]()))
	assert.Equal(t, "", FullName(nil))
}
