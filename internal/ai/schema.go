package ai

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// schemaFor renders the JSON schema of T inline, without $ref
// indirection, so the whole shape can be embedded in a prompt.
func schemaFor[T any]() (string, error) {
	reflector := jsonschema.Reflector{
		DoNotReference: true,
	}
	schema := reflector.Reflect(new(T))

	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(out), nil
}
