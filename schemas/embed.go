// Package schemas embeds the JSON Schema documents used to validate
// configuration files.
package schemas

import _ "embed"

// ConfigSchemaJSON is the JSON Schema for pulse.yaml configuration files.
//
//go:embed config.schema.json
var ConfigSchemaJSON string
