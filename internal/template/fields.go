package template

import (
	_ "embed"
	"fmt"
	"lexdraft/internal/domain"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed fields.yaml
var fieldsYAML []byte

// catalogue is the category -> field definitions table, loaded once
var catalogue = mustLoadCatalogue(fieldsYAML)

func mustLoadCatalogue(raw []byte) map[domain.Category][]domain.FieldDefinition {
	out, err := loadCatalogue(raw)
	if err != nil {
		panic(fmt.Sprintf("template: bad field catalogue: %v", err))
	}
	return out
}

func loadCatalogue(raw []byte) (map[domain.Category][]domain.FieldDefinition, error) {
	var out map[domain.Category][]domain.FieldDefinition
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	for category, fields := range out {
		seen := make(map[string]bool, len(fields))
		for _, f := range fields {
			if f.ID == "" {
				return nil, fmt.Errorf("category %q has a field without id", category)
			}
			if seen[f.ID] {
				return nil, fmt.Errorf("category %q repeats field %q", category, f.ID)
			}
			seen[f.ID] = true
			switch f.Kind {
			case domain.FieldText, domain.FieldTextarea, domain.FieldDate, domain.FieldEmail:
			default:
				return nil, fmt.Errorf("field %q has unknown type %q", f.ID, f.Kind)
			}
		}
	}
	return out, nil
}

// FieldsFor returns the form fields for category. Unknown categories yield an
// empty, non-nil slice. Callers get a copy.
func FieldsFor(category domain.Category) []domain.FieldDefinition {
	fields := catalogue[category]
	out := make([]domain.FieldDefinition, len(fields))
	copy(out, fields)
	return out
}

// MissingRequired returns the id of the first required field, in catalogue
// order, whose value is absent or blank.
func MissingRequired(fields []domain.FieldDefinition, values domain.FormValues) (string, bool) {
	for _, f := range fields {
		if !f.Required {
			continue
		}
		if strings.TrimSpace(values[f.ID]) == "" {
			return f.ID, true
		}
	}
	return "", false
}

// KnownValues drops keys that are not fields of the template
func KnownValues(fields []domain.FieldDefinition, values domain.FormValues) domain.FormValues {
	out := make(domain.FormValues, len(fields))
	for _, f := range fields {
		if v, ok := values[f.ID]; ok {
			out[f.ID] = v
		}
	}
	return out
}
