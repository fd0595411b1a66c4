package apispec

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"gopkg.in/yaml.v3"

	"github.com/vitalvas/introspec/apidoc"
)

// Query parameters accepted by the spec endpoints. Each may be repeated or
// hold a comma-separated list.
const (
	QueryDtoName  = "dtoName"
	QueryCategory = "category"
	QueryTag      = "tag"
)

// HandleConfig names the spec endpoints. A name starting with "/" is a
// route of its own; any other name is mounted under the base path given to
// Handle. "-" turns the endpoint off.
type HandleConfig struct {
	JSONFilename string // "spec.json" when empty
	YAMLFilename string // "spec.yaml" when empty
}

func (cfg HandleConfig) jsonFilename() string {
	if cfg.JSONFilename == "" {
		return "spec.json"
	}
	return cfg.JSONFilename
}

func (cfg HandleConfig) yamlFilename() string {
	if cfg.YAMLFilename == "" {
		return "spec.yaml"
	}
	return cfg.YAMLFilename
}

func resolvePath(basePath, name string) string {
	if strings.HasPrefix(name, "/") {
		return name
	}
	return basePath + "/" + name
}

// Handle mounts the JSON and YAML spec endpoints on r. Both honour the
// dtoName, category and tag query parameters:
//
//	svc.Handle(r, "/docs", nil)
//	// GET /docs/spec.json?tag=pets
//	// GET /docs/spec.yaml?category=store,orders
func (s *Service) Handle(r chi.Router, basePath string, cfg *HandleConfig) {
	if cfg == nil {
		cfg = &HandleConfig{}
	}
	basePath = strings.TrimRight(basePath, "/")

	if name := cfg.jsonFilename(); name != "-" {
		r.Get(resolvePath(basePath, name), s.serve("application/json", "JSON", marshalJSON))
	}
	if name := cfg.yamlFilename(); name != "-" {
		r.Get(resolvePath(basePath, name), s.serve("application/x-yaml", "YAML", yaml.Marshal))
	}
}

func marshalJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

func (s *Service) serve(contentType, format string, marshal func(any) ([]byte, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := s.Get(SpecRequestFromQuery(r.URL.Query()))

		data, err := encode(marshal, resp)
		if err != nil {
			http.Error(w, fmt.Sprintf("failed to serialize API documentation as %s: %v", format, err), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

func encode(marshal func(any) ([]byte, error), v any) (data []byte, err error) {
	defer func() {
		if rv := recover(); rv != nil {
			err = fmt.Errorf("%v", rv)
		}
	}()
	return marshal(v)
}

// SpecRequestFromQuery builds a filter request from URL query values.
func SpecRequestFromQuery(q url.Values) apidoc.SpecRequest {
	return apidoc.SpecRequest{
		DtoNames:   queryList(q, QueryDtoName),
		Categories: queryList(q, QueryCategory),
		Tags:       queryList(q, QueryTag),
	}
}

func queryList(q url.Values, key string) []string {
	var out []string
	for _, v := range q[key] {
		for part := range strings.SplitSeq(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
