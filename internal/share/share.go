// Package share validates and serializes public server templates.
// A template is the sanitized form of a server record: it names the server
// and the credential fields an importer must supply, and carries no secret
// material of its own.
package share

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/pluggedin/pluggedin/internal/errors"
	"github.com/pluggedin/pluggedin/internal/secret"
)

// templateSchema is the JSON schema imported templates are validated against
// before anything touches the parsed value.
const templateSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["name", "type", "requires_credentials"],
	"additionalProperties": false,
	"properties": {
		"name": {
			"type": "string",
			"minLength": 1
		},
		"description": {
			"type": "string"
		},
		"type": {
			"type": "string",
			"enum": ["stdio", "sse", "streamable_http"]
		},
		"requires_credentials": {
			"type": "boolean"
		},
		"required_fields": {
			"type": "array",
			"items": {
				"type": "string",
				"enum": ["command", "args", "env", "url"]
			},
			"uniqueItems": true
		}
	}
}`

// ParseTemplate validates a raw template against the schema and decodes it.
// Templates may be JSON or YAML (the exported form); either way the document
// is normalized to JSON before schema validation. Schema violations fail with
// ErrShareInvalid, each violation named.
func ParseTemplate(raw []byte) (secret.SharedTemplate, error) {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return secret.SharedTemplate{}, fmt.Errorf("%w: %w", errors.ErrShareInvalid, err)
	}
	normalized, err := json.Marshal(doc)
	if err != nil {
		return secret.SharedTemplate{}, fmt.Errorf("%w: %w", errors.ErrShareInvalid, err)
	}

	schemaLoader := gojsonschema.NewStringLoader(templateSchema)
	documentLoader := gojsonschema.NewBytesLoader(normalized)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return secret.SharedTemplate{}, fmt.Errorf("%w: %w", errors.ErrShareInvalid, err)
	}

	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			details = append(details, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
		}
		return secret.SharedTemplate{}, fmt.Errorf("%w: %s", errors.ErrShareInvalid, strings.Join(details, "; "))
	}

	var tmpl secret.SharedTemplate
	if err := json.Unmarshal(normalized, &tmpl); err != nil {
		return secret.SharedTemplate{}, fmt.Errorf("%w: %w", errors.ErrShareInvalid, err)
	}

	return tmpl, nil
}

// ExportYAML renders a template as YAML for human-editable share files.
func ExportYAML(tmpl secret.SharedTemplate) ([]byte, error) {
	out, err := yaml.Marshal(tmpl)
	if err != nil {
		return nil, fmt.Errorf("failed to encode template: %w", err)
	}
	return out, nil
}
