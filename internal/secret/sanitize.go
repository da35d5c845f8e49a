package secret

import (
	"github.com/pluggedin/pluggedin/internal/domain"
)

// SharedTemplate is the redacted form of a server record for public display.
// It carries no secret material: plaintext and encrypted fields are dropped,
// and importers are told which fields they must supply themselves.
type SharedTemplate struct {
	Name                string            `json:"name"                 yaml:"name"`
	Description         string            `json:"description,omitempty" yaml:"description,omitempty"`
	Type                domain.ServerType `json:"type"                 yaml:"type"`
	RequiresCredentials bool              `json:"requires_credentials" yaml:"requires_credentials"`
	RequiredFields      []string          `json:"required_fields,omitempty" yaml:"required_fields,omitempty"`
}

// SanitizeForSharing produces the redacted copy of a server record.
// This is a pure transform, distinct from encryption: it drops data rather
// than protecting it. A field counts as required if it is present in either
// plaintext or encrypted form.
func SanitizeForSharing(rec domain.ServerRecord) SharedTemplate {
	var fields []string
	if rec.Config.Command != "" || rec.Encrypted.Command != "" {
		fields = append(fields, "command")
	}
	if len(rec.Config.Args) > 0 || rec.Encrypted.Args != "" {
		fields = append(fields, "args")
	}
	if len(rec.Config.Env) > 0 || rec.Encrypted.Env != "" {
		fields = append(fields, "env")
	}
	if rec.Config.URL != "" || rec.Encrypted.URL != "" {
		fields = append(fields, "url")
	}

	return SharedTemplate{
		Name:                rec.Name,
		Description:         rec.Description,
		Type:                rec.Type,
		RequiresCredentials: true,
		RequiredFields:      fields,
	}
}
