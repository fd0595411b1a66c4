package enrich

import (
	"net/http"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/introspec/apidoc"
	"github.com/vitalvas/introspec/host"
)

func TestResourceManagerNilCollaborators(t *testing.T) {
	assert.NotPanics(t, func() {
		NewResourceManager(nil, nil).EnrichResource(&apidoc.ApiResourceType{}, &host.Operation{})
	})
	assert.NotPanics(t, func() {
		NewResourceManager(newFakeSource(), nil).EnrichResource(nil, testOperation())
	})
	assert.NotPanics(t, func() {
		var m *ResourceManager
		m.EnrichResource(&apidoc.ApiResourceType{}, testOperation())
	})
	assert.NotPanics(t, func() {
		NewResourceManager(newFakeSource(), NewPropertyManager(nil)).EnrichResource(&apidoc.ApiResourceType{}, nil)
	})
}

func TestResourceManagerScalars(t *testing.T) {
	responseType := reflect.TypeFor[int]()
	op := &host.Operation{ResponseType: responseType}

	tests := []struct {
		method string
		dst    *apidoc.ApiResourceType
		called bool
	}{
		{method: "GetTitle", dst: &apidoc.ApiResourceType{TypeName: "string"}, called: true},
		{method: "GetTitle", dst: &apidoc.ApiResourceType{Title: "mo"}, called: false},
		{method: "GetDescription", dst: &apidoc.ApiResourceType{}, called: true},
		{method: "GetDescription", dst: &apidoc.ApiResourceType{Description: "desk"}, called: false},
		{method: "GetNotes", dst: &apidoc.ApiResourceType{}, called: true},
		{method: "GetNotes", dst: &apidoc.ApiResourceType{Notes: "mo"}, called: false},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			src := newFakeSource()
			NewResourceManager(src, nil).EnrichResource(tt.dst, op)

			if !tt.called {
				assert.Zero(t, src.count(tt.method))
				return
			}
			require.Equal(t, 1, src.count(tt.method))
			assert.Equal(t, responseType, src.types[tt.method][0])
		})
	}
}

func TestResourceManagerAssignsValues(t *testing.T) {
	src := newFakeSource()
	src.title = "Pet"
	src.description = "A pet"
	src.notes = "Cached"

	dst := &apidoc.ApiResourceType{Description: "declared"}
	NewResourceManager(src, nil).EnrichResource(dst, testOperation())

	assert.Equal(t, "Pet", dst.Title)
	assert.Equal(t, "declared", dst.Description)
	assert.Equal(t, "Cached", dst.Notes)
}

func TestResourceManagerRequestTypeFlags(t *testing.T) {
	t.Run("allow multiple kept when set", func(t *testing.T) {
		for _, v := range []bool{true, false} {
			src := newFakeSource()
			NewResourceManager(src, nil).EnrichResource(&apidoc.ApiResourceType{AllowMultiple: ptr(v)}, &host.Operation{})
			assert.Zero(t, src.count("GetAllowMultiple"))
		}
	})

	t.Run("queried with request type", func(t *testing.T) {
		src := newFakeSource()
		src.allowMultiple = ptr(true)
		src.isRequired = ptr(false)
		reqType := reflect.TypeFor[apidoc.ApiResourceDocumentation]()

		dst := &apidoc.ApiResourceType{}
		NewResourceManager(src, nil).EnrichResource(dst, &host.Operation{RequestType: reqType})

		require.Equal(t, 1, src.count("GetAllowMultiple"))
		assert.Equal(t, reqType, src.types["GetAllowMultiple"][0])
		assert.Equal(t, reqType, src.types["GetIsRequired"][0])
		assert.True(t, *dst.AllowMultiple)
		assert.False(t, *dst.IsRequired)

		assert.Zero(t, src.count("GetTitle"))
	})
}

func TestResourceManagerEnrichType(t *testing.T) {
	src := newFakeSource()
	props := NewPropertyManager(src)
	m := NewResourceManager(src, props)

	dst := &apidoc.ApiResourceType{}
	m.EnrichType(dst, reflect.TypeFor[getPet](), &host.Operation{RequestType: reflect.TypeFor[getPet]()})

	assert.Equal(t, reflect.TypeFor[getPet](), src.types["GetTitle"][0])
	require.Len(t, dst.Properties, 1)
	assert.Equal(t, "id", dst.Properties[0].ID)
	assert.Equal(t, "ID", dst.Properties[0].Title)
}

func TestPropertyManager(t *testing.T) {
	t.Run("nil enricher leaves properties", func(t *testing.T) {
		props := []*apidoc.ApiPropertyDocumentation{{ID: "x"}}
		got := NewPropertyManager(nil).EnrichProperties(props, reflect.TypeFor[pet]())
		assert.Equal(t, props, got)

		var m *PropertyManager
		assert.Equal(t, props, m.EnrichProperties(props, reflect.TypeFor[pet]()))
	})

	t.Run("creates properties in member order", func(t *testing.T) {
		src := newFakeSource()
		got := NewPropertyManager(src).EnrichProperties(nil, reflect.TypeFor[pet]())

		require.Len(t, got, 2)
		assert.Equal(t, "name", got[0].ID)
		assert.Equal(t, "Name", got[0].Title)
		assert.Equal(t, "body", got[0].ParamType)
		assert.Equal(t, "kind", got[1].ID)
	})

	t.Run("declared properties filled and kept", func(t *testing.T) {
		src := newFakeSource()
		declared := []*apidoc.ApiPropertyDocumentation{
			{ID: "extra", Title: "Only declared"},
			{ID: "kind", Title: "Species", ParamType: "query"},
		}
		got := NewPropertyManager(src).EnrichProperties(declared, reflect.TypeFor[pet]())

		require.Len(t, got, 3)
		assert.Equal(t, "Only declared", got[0].Title)
		assert.Equal(t, "Species", got[1].Title)
		assert.Equal(t, "query", got[1].ParamType)
		assert.Equal(t, "name", got[2].ID)
		assert.Equal(t, 1, src.count("GetPropertyTitle"))
	})

	t.Run("external links follow policy", func(t *testing.T) {
		src := newFakeSource()
		src.links = []string{"https://example.com/b"}
		declared := []*apidoc.ApiPropertyDocumentation{{ID: "name", ExternalLinks: []string{"https://example.com/a"}}}

		got := NewPropertyManager(src, WithPolicy(Union)).EnrichProperties(declared, reflect.TypeFor[pet]())
		assert.Equal(t, []string{"https://example.com/a", "https://example.com/b"}, got[0].ExternalLinks)

		declared = []*apidoc.ApiPropertyDocumentation{{ID: "name", ExternalLinks: []string{"https://example.com/a"}}}
		got = NewPropertyManager(src, WithPolicy(SetIfEmpty)).EnrichProperties(declared, reflect.TypeFor[pet]())
		assert.Equal(t, []string{"https://example.com/a"}, got[0].ExternalLinks)
	})

	t.Run("non struct has no members", func(t *testing.T) {
		src := newFakeSource()
		assert.Empty(t, NewPropertyManager(src).EnrichProperties(nil, reflect.TypeFor[string]()))
	})
}

func TestActionManager(t *testing.T) {
	t.Run("one action per verb", func(t *testing.T) {
		src := newFakeSource()
		src.contentTypes = []string{"application/json"}
		src.statusCodes = []apidoc.StatusCode{{Code: 200}}
		src.relativePath = "/pets/{id}"

		got := NewActionManager(src, nil).EnrichActions(nil, []string{"get", http.MethodDelete, " "}, testOperation())

		require.Len(t, got, 2)
		assert.Equal(t, http.MethodGet, got[0].Verb)
		assert.Equal(t, []string{"/pets/{id}"}, got[0].RelativePaths)
		assert.Equal(t, []apidoc.StatusCode{{Code: 200}}, got[1].StatusCodes)
		assert.Equal(t, 1, src.count("GetContentTypes"))
		assert.Equal(t, 1, src.count("GetRelativePath"))
	})

	t.Run("existing actions matched ignoring case", func(t *testing.T) {
		src := newFakeSource()
		src.contentTypes = []string{"application/xml"}
		existing := []*apidoc.ApiAction{
			{Verb: "Patch", Notes: "declared"},
			{Verb: "get", ContentTypes: []string{"application/json"}},
		}

		got := NewActionManager(src, nil, WithPolicy(Union)).EnrichActions(existing, []string{http.MethodGet}, testOperation())

		require.Len(t, got, 2)
		assert.Equal(t, "declared", got[0].Notes)
		assert.Equal(t, []string{"application/json", "application/xml"}, got[1].ContentTypes)
	})

	t.Run("action enricher supplies notes and paths", func(t *testing.T) {
		src := newFakeSource()
		src.actionNotes = "Returns a pet"
		src.actionPaths = []string{"/pets/{id}", "/animals/{id}"}

		got := NewActionManager(src, src).EnrichActions(nil, []string{http.MethodGet}, nil)

		require.Len(t, got, 1)
		assert.Equal(t, "Returns a pet", got[0].Notes)
		assert.Equal(t, []string{"/pets/{id}", "/animals/{id}"}, got[0].RelativePaths)
		assert.Zero(t, src.count("GetRelativePath"))
	})

	t.Run("nil manager", func(t *testing.T) {
		var m *ActionManager
		assert.Nil(t, m.EnrichActions(nil, []string{http.MethodGet}, testOperation()))
	})
}

func TestCapabilitiesOf(t *testing.T) {
	t.Run("full source", func(t *testing.T) {
		c := CapabilitiesOf(newFakeSource())
		assert.NotNil(t, c.Resource)
		assert.NotNil(t, c.Request)
		assert.NotNil(t, c.Property)
		assert.NotNil(t, c.Security)
		assert.NotNil(t, c.Action)
		assert.False(t, c.IsEmpty())
	})

	t.Run("partial source", func(t *testing.T) {
		c := CapabilitiesOf(resourceOnly{})
		assert.NotNil(t, c.Resource)
		assert.Nil(t, c.Request)
		assert.Nil(t, c.Property)
		assert.Nil(t, c.Security)
		assert.Nil(t, c.Action)
	})

	t.Run("no capability", func(t *testing.T) {
		assert.True(t, CapabilitiesOf(struct{}{}).IsEmpty())
		assert.True(t, CapabilitiesOf(nil).IsEmpty())
	})

	t.Run("partial source drives managers", func(t *testing.T) {
		c := CapabilitiesOf(resourceOnly{})
		resources := NewResourceManager(c.Resource, NewPropertyManager(c.Property))
		requests := NewRequestManager(c.Request, c.Security, NewActionManager(c.Request, c.Action), resources.EnrichResource)

		doc := &apidoc.ApiResourceDocumentation{}
		requests.EnrichRequest(doc, testOperation())

		require.NotNil(t, doc.ReturnType)
		assert.Equal(t, "only", doc.ReturnType.Title)
		assert.Empty(t, doc.Verbs)
		assert.Nil(t, doc.Security)
	})
}
