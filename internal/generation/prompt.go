package generation

import (
	"encoding/json"
	"fmt"
	"lexdraft/internal/domain"
)

// BuildPrompt embeds the template title, its full body and the form values
// as indented JSON (keys sorted) into a single instruction.
func BuildPrompt(tmpl *domain.Template, values domain.FormValues) (string, error) {
	if values == nil {
		values = domain.FormValues{}
	}
	inputs, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`Generate a legal document based on this template: %s
Template content: %s
User inputs: %s

Please generate a professional and complete legal document incorporating all the provided information.`,
		tmpl.Title, tmpl.Content, inputs), nil
}
