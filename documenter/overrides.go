package documenter

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/vitalvas/introspec/apidoc"
)

// Overrides holds developer-declared documentation fragments keyed by
// operation name. A fragment is the starting point of enrichment: every
// field it sets wins over computed values, except collections merged under
// the Union strategy.
type Overrides map[string]*apidoc.ApiResourceDocumentation

// overridesKey is the top-level key of an overrides file.
const overridesKey = "resources"

// LoadOverrides reads overrides from a YAML file:
//
//	resources:
//	  FindPets:
//	    title: Find pets
//	    category: pets
//	    tags: [pets, search]
//	    statusCodes:
//	      - code: 404
//	        description: No pets
func LoadOverrides(path string) (Overrides, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("reading overrides file: %w", err)
	}
	return unmarshalOverrides(k)
}

// OverridesFromMap builds overrides from a nested map shaped like the YAML
// file, including the top-level "resources" key.
func OverridesFromMap(m map[string]any) (Overrides, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(m, ""), nil); err != nil {
		return nil, fmt.Errorf("loading overrides: %w", err)
	}
	return unmarshalOverrides(k)
}

func unmarshalOverrides(k *koanf.Koanf) (Overrides, error) {
	var out Overrides
	if err := k.Unmarshal(overridesKey, &out); err != nil {
		return nil, fmt.Errorf("unmarshaling overrides: %w", err)
	}
	for name, res := range out {
		if res == nil {
			delete(out, name)
			continue
		}
		res.Normalize()
	}
	return out, nil
}

// For returns a copy of the fragment declared for name, matching exactly
// first and then ignoring case. It returns nil when none is declared.
func (o Overrides) For(name string) *apidoc.ApiResourceDocumentation {
	if res, ok := o[name]; ok && res != nil {
		return res.Clone()
	}
	for key, res := range o {
		if res != nil && strings.EqualFold(key, name) {
			return res.Clone()
		}
	}
	return nil
}
