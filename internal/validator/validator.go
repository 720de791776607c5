package validator

// =============================================================================
// VALIDATOR: CONTRACT GUARD FOR EVERYTHING JSON
// =============================================================================
//
// hdl-emit reads one JSON document (the config file) and writes one (the
// fact tables). Both are checked against schema.cue:
//
//   #Config  before a config file is unmarshalled, so a misspelled key
//            ("dialects", "widht") fails loudly instead of silently
//            falling back to a default.
//   #Facts   before fact tables are printed, so downstream tooling never
//            sees a row shape it was not promised.
//
// When validation fails, fix the producer or the schema. Do not loosen the
// schema to make an error go away.
// =============================================================================

import (
	"embed"
	"encoding/json"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"tlog.app/go/errors"
)

//go:embed schema.cue
var schemaFS embed.FS

// Definitions in schema.cue.
const (
	ConfigDef = "#Config"
	FactsDef  = "#Facts"
)

// Validator validates JSON documents against the embedded CUE schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// New creates a new Validator with the embedded CUE schema
func New() (*Validator, error) {
	ctx := cuecontext.New()

	schemaBytes, err := schemaFS.ReadFile("schema.cue")
	if err != nil {
		return nil, errors.Wrap(err, "loading embedded schema")
	}

	schema := ctx.CompileBytes(schemaBytes)
	if schema.Err() != nil {
		return nil, errors.Wrap(schema.Err(), "compiling schema")
	}

	return &Validator{
		ctx:    ctx,
		schema: schema,
	}, nil
}

// ValidateConfigJSON checks a raw config file.
func (v *Validator) ValidateConfigJSON(jsonBytes []byte) error {
	return v.validateJSON(jsonBytes, ConfigDef)
}

// ValidateFacts checks fact tables, marshalled the way they will be printed.
func (v *Validator) ValidateFacts(data interface{}) error {
	return v.Validate(data, FactsDef)
}

// Validate marshals data to JSON and checks it against the definition at path.
func (v *Validator) Validate(data interface{}, path string) error {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return errors.Wrap(err, "marshaling data to JSON")
	}

	return v.validateJSON(jsonBytes, path)
}

func (v *Validator) validateJSON(jsonBytes []byte, path string) error {
	unified, err := v.unify(jsonBytes, path)
	if err != nil {
		return err
	}

	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return errors.Wrap(err, "%v schema validation failed", path)
	}

	return nil
}

func (v *Validator) unify(jsonBytes []byte, path string) (cue.Value, error) {
	dataValue := v.ctx.CompileBytes(jsonBytes)
	if dataValue.Err() != nil {
		return cue.Value{}, errors.Wrap(dataValue.Err(), "compiling JSON as CUE")
	}

	def := v.schema.LookupPath(cue.ParsePath(path))
	if def.Err() != nil {
		return cue.Value{}, errors.Wrap(def.Err(), "looking up %v definition", path)
	}

	return def.Unify(dataValue), nil
}

// ValidationErrors returns every violation of the definition at path,
// one message each. It is nil when data is valid.
func (v *Validator) ValidationErrors(data interface{}, path string) []string {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return []string{fmt.Sprintf("marshal error: %v", err)}
	}

	unified, err := v.unify(jsonBytes, path)
	if err != nil {
		return []string{err.Error()}
	}

	err = unified.Validate(cue.Concrete(true))
	if err == nil {
		return nil
	}

	var errs []string
	for _, e := range cueerrors.Errors(err) {
		errs = append(errs, e.Error())
	}
	return errs
}
