package mcp

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestArgumentsSchema(t *testing.T) {
	raw, err := argumentsSchema()
	if err != nil {
		t.Fatalf("argumentsSchema: %v", err)
	}

	var doc struct {
		Type       string                     `json:"type"`
		Required   []string                   `json:"required"`
		Properties map[string]json.RawMessage `json:"properties"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("schema is not JSON: %v", err)
	}
	if doc.Type != "object" {
		t.Errorf("type = %q", doc.Type)
	}
	if len(doc.Required) != 0 {
		t.Errorf("all arguments are optional, required = %v", doc.Required)
	}
	for _, name := range []string{"country", "random", "date"} {
		if _, ok := doc.Properties[name]; !ok {
			t.Errorf("property %q missing in %s", name, raw)
		}
	}
	if !strings.Contains(string(doc.Properties["random"]), `"boolean"`) {
		t.Errorf("random should be boolean: %s", doc.Properties["random"])
	}
}

func TestArgumentsValidatorDecode(t *testing.T) {
	raw, err := argumentsSchema()
	if err != nil {
		t.Fatal(err)
	}
	v, err := newArgumentsValidator(raw)
	if err != nil {
		t.Fatalf("newArgumentsValidator: %v", err)
	}

	args, err := v.Decode(map[string]any{"country": "de", "random": true, "date": "3-7", "extra": 1})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if args != (Arguments{Country: "de", Random: true, Date: "3-7"}) {
		t.Errorf("args = %+v", args)
	}

	if args, err := v.Decode(nil); err != nil || args != (Arguments{}) {
		t.Errorf("Decode(nil) = %+v, %v", args, err)
	}

	for _, bad := range []any{
		map[string]any{"country": 1},
		map[string]any{"random": "true"},
		map[string]any{"date": "14-10"},
		[]any{"en"},
		"en",
	} {
		if _, err := v.Decode(bad); err == nil {
			t.Errorf("Decode(%v) should fail", bad)
		}
	}
}
