package naming

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// rulesFile is the on-disk shape of a category table override.
//
//	categories:
//	  - name: Documents
//	    extensions: [".pdf", "docx"]
//	  - name: Screenshots
//	    patterns: ["screenshot"]
//	fallback: Others
type rulesFile struct {
	Categories []struct {
		Name       string   `yaml:"name"`
		Extensions []string `yaml:"extensions"`
		Patterns   []string `yaml:"patterns"`
	} `yaml:"categories"`
	Fallback string `yaml:"fallback"`
}

// LoadRules reads a YAML category table from path. An empty path returns
// [DefaultRules].
func LoadRules(path string) (Rules, error) {
	if path == "" {
		return DefaultRules(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("reading rules file: %w", err)
	}
	r, err := ParseRules(data)
	if err != nil {
		return Rules{}, fmt.Errorf("rules file %s: %w", path, err)
	}
	return r, nil
}

// ParseRules decodes a YAML category table. Unknown keys are rejected so
// typos such as "extension:" do not silently produce an empty category.
func ParseRules(data []byte) (Rules, error) {
	var f rulesFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return Rules{}, fmt.Errorf("decoding YAML: %w", err)
	}
	if len(f.Categories) == 0 {
		return Rules{}, fmt.Errorf("no categories defined")
	}

	fallback := f.Fallback
	if fallback == "" {
		fallback = CategoryOthers
	}

	cats := make([]CategoryRule, 0, len(f.Categories))
	for _, c := range f.Categories {
		cats = append(cats, CategoryRule{
			Name:       c.Name,
			Extensions: c.Extensions,
			Patterns:   c.Patterns,
		})
	}
	return NewRules(cats, fallback)
}
