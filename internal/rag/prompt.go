package rag

import (
	"fmt"
	"strings"
)

// MissingPromptInputError reports a template placeholder with no supplied
// input value.
type MissingPromptInputError struct {
	Name string
}

func (e *MissingPromptInputError) Error() string {
	return fmt.Sprintf("prompt template references {%s} but no input named %q was supplied", e.Name, e.Name)
}

// InvalidPromptTemplateError reports a malformed template, such as an
// unterminated placeholder.
type InvalidPromptTemplateError struct {
	Reason string
}

func (e *InvalidPromptTemplateError) Error() string {
	return "invalid prompt template: " + e.Reason
}

// ExtractInputVariables scans a template for {name} placeholders and
// returns the distinct names in order of first appearance. Doubled braces
// ({{ and }}) are escaped literals and never produce a variable.
func ExtractInputVariables(template string) ([]string, error) {
	var names []string
	seen := make(map[string]bool)

	err := scanTemplate(template,
		func(literal string) {},
		func(name string) error {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
			return nil
		})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// Render substitutes every placeholder in the template with its value from
// inputs and unescapes doubled braces. It fails with
// MissingPromptInputError naming the first placeholder absent from inputs.
// Rendering is pure: it never mutates inputs.
func Render(template string, inputs PromptInputs) (string, error) {
	var sb strings.Builder

	err := scanTemplate(template,
		func(literal string) { sb.WriteString(literal) },
		func(name string) error {
			value, ok := inputs[name]
			if !ok {
				return &MissingPromptInputError{Name: name}
			}
			sb.WriteString(value)
			return nil
		})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}

// scanTemplate walks the template once, emitting literal runs (with escaped
// braces already unescaped) and placeholder names. A lone closing brace is
// passed through as a literal; an unterminated opening brace is an error.
func scanTemplate(template string, literal func(string), placeholder func(string) error) error {
	for i := 0; i < len(template); {
		switch template[i] {
		case '{':
			if i+1 < len(template) && template[i+1] == '{' {
				literal("{")
				i += 2
				continue
			}
			end := strings.IndexByte(template[i+1:], '}')
			if end < 0 {
				return &InvalidPromptTemplateError{Reason: fmt.Sprintf("unclosed placeholder at offset %d", i)}
			}
			name := template[i+1 : i+1+end]
			if name == "" || strings.ContainsAny(name, "{ \t\n") {
				return &InvalidPromptTemplateError{Reason: fmt.Sprintf("invalid placeholder name %q at offset %d", name, i)}
			}
			if err := placeholder(name); err != nil {
				return err
			}
			i += end + 2
		case '}':
			if i+1 < len(template) && template[i+1] == '}' {
				literal("}")
				i += 2
				continue
			}
			literal("}")
			i++
		default:
			next := strings.IndexAny(template[i:], "{}")
			if next < 0 {
				literal(template[i:])
				return nil
			}
			literal(template[i : i+next])
			i += next
		}
	}
	return nil
}
