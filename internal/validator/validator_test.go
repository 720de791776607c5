package validator

import (
	"strings"
	"testing"
)

// TestConfigContract checks that typos and bad values in a config file are
// rejected instead of silently replaced by defaults.
func TestConfigContract(t *testing.T) {
	v, err := New()
	if err != nil {
		t.Fatalf("Failed to create validator: %v", err)
	}

	tests := []struct {
		name    string
		json    string
		wantErr bool
	}{
		{name: "empty", json: `{}`, wantErr: false},
		{name: "full", json: `{"dialect": "v17", "width": 80, "header": "// generated", "designs": ["rtl/*.hcl"]}`, wantErr: false},
		{name: "unknown_dialect", json: `{"dialect": "v2001"}`, wantErr: true},
		{name: "negative_width", json: `{"width": -1}`, wantErr: true},
		{name: "misspelled_key", json: `{"widht": 80}`, wantErr: true},
		{name: "empty_glob", json: `{"designs": [""]}`, wantErr: true},
		{name: "not_json", json: `{"dialect":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateConfigJSON([]byte(tt.json))
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateConfigJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFactsContract(t *testing.T) {
	v, err := New()
	if err != nil {
		t.Fatalf("Failed to create validator: %v", err)
	}

	valid := map[string]interface{}{
		"modules": []interface{}{
			map[string]interface{}{"name": "top", "file": "top.hcl"},
		},
		"ports": []interface{}{
			map[string]interface{}{"module": "top", "name": "clk", "direction": "input", "width": 1},
		},
		"params":    []interface{}{},
		"signals":   []interface{}{},
		"instances": []interface{}{},
		"bindings":  []interface{}{},
	}
	if err := v.ValidateFacts(valid); err != nil {
		t.Fatalf("expected valid facts, got error: %v", err)
	}

	invalid := map[string]interface{}{
		"modules": []interface{}{},
		"ports": []interface{}{
			map[string]interface{}{"module": "top", "name": "clk", "direction": "inout", "width": 0},
		},
		"params":    []interface{}{},
		"signals":   []interface{}{},
		"instances": []interface{}{},
		"bindings":  []interface{}{},
	}
	if err := v.ValidateFacts(invalid); err == nil {
		t.Fatalf("expected validation error, got nil")
	}

	errs := v.ValidationErrors(invalid, FactsDef)
	if len(errs) == 0 {
		t.Fatalf("expected validation messages, got none")
	}

	if errs := v.ValidationErrors(valid, FactsDef); errs != nil {
		t.Fatalf("expected no messages for valid facts, got %v", errs)
	}
}

func TestErrorsNameTheDefinition(t *testing.T) {
	v, err := New()
	if err != nil {
		t.Fatalf("Failed to create validator: %v", err)
	}

	err = v.ValidateConfigJSON([]byte(`{"width": -1}`))
	if err == nil {
		t.Fatalf("expected an error for a negative width")
	}
	if !strings.Contains(err.Error(), "#Config schema validation failed") {
		t.Fatalf("expected the definition in the message, got %q", err)
	}

	err = v.ValidateConfigJSON([]byte(`{`))
	if err == nil || !strings.Contains(err.Error(), "compiling JSON as CUE") {
		t.Fatalf("expected a compile error, got %v", err)
	}
}
