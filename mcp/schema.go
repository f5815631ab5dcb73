package mcp

import (
	"encoding/json"
	"fmt"

	invopopSchema "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Arguments is the input of the wikipedia-onthisday tool.
type Arguments struct {
	Country string `json:"country,omitempty" jsonschema:"description=Language code for which the on-this-day events should be checked. For example en (default) de it fr"`
	Random  bool   `json:"random,omitempty" jsonschema:"description=Return one randomly chosen event instead of the full list"`
	Date    string `json:"date,omitempty" jsonschema:"description=Day as MM-DD. Defaults to today. Only honoured by the JSON feed,pattern=^((0?[1-9]|1[0-2])-(0?[1-9]|[12][0-9]|3[01]))?$"`
}

// argumentsSchema generates the JSON Schema of Arguments.
func argumentsSchema() (json.RawMessage, error) {
	reflector := invopopSchema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
		Anonymous:                 true,
	}
	data, err := json.Marshal(reflector.Reflect(&Arguments{}))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal arguments schema: %w", err)
	}
	return data, nil
}

// argumentsValidator checks raw tool arguments against the generated schema.
type argumentsValidator struct {
	schema *jsonschema.Schema
}

func newArgumentsValidator(schemaJSON json.RawMessage) (*argumentsValidator, error) {
	schema, err := jsonschema.CompileString("arguments.json", string(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("invalid arguments schema: %w", err)
	}
	return &argumentsValidator{schema: schema}, nil
}

// Decode validates raw (the decoded "arguments" member of a tools/call request)
// and converts it into Arguments. A nil raw is an empty argument object.
func (v *argumentsValidator) Decode(raw any) (Arguments, error) {
	var args Arguments
	if raw == nil {
		return args, nil
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return args, fmt.Errorf("invalid arguments: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return args, fmt.Errorf("invalid arguments: %w", err)
	}
	if err := v.schema.Validate(doc); err != nil {
		return args, fmt.Errorf("invalid arguments: %w", err)
	}

	if err := json.Unmarshal(data, &args); err != nil {
		return args, fmt.Errorf("invalid arguments: %w", err)
	}
	return args, nil
}
