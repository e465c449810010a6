// Package schemas validates candidate, client and history records against
// the declarative shape definitions embedded in the top-level schemas
// package. Validation is pure: it never mutates the record and has no I/O.
package schemas

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/career-coach/schemas"
)

// ValidationError reports every field of a record that violated its
// constraint (required-but-missing, wrong primitive type, failed pattern).
type ValidationError struct {
	Record string
	Errors []FieldError
}

// FieldError is a single violation at a specific field.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s validation failed:\n", ve.Record)
	for i, err := range ve.Errors {
		fmt.Fprintf(&sb, "  %d. %s: %s\n", i+1, err.Field, err.Message)
	}
	return sb.String()
}

// Fields returns the names of all violating fields, for log diagnostics.
func (ve *ValidationError) Fields() []string {
	fields := make([]string, 0, len(ve.Errors))
	for _, e := range ve.Errors {
		fields = append(fields, e.Field)
	}
	return fields
}

var (
	compileOnce     sync.Once
	candidateSchema *gojsonschema.Schema
	clientSchema    *gojsonschema.Schema
	historySchema   *gojsonschema.Schema
	compileErr      error
)

func compiled() error {
	compileOnce.Do(func() {
		compile := func(raw []byte) (*gojsonschema.Schema, error) {
			return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
		}
		if candidateSchema, compileErr = compile(schemas.Candidate); compileErr != nil {
			return
		}
		if clientSchema, compileErr = compile(schemas.Client); compileErr != nil {
			return
		}
		historySchema, compileErr = compile(schemas.HistoryItem)
	})
	return compileErr
}

// ValidateCandidate validates a candidate-shaped record. The record may be a
// typed struct or a generic map; it is serialized through its JSON form.
func ValidateCandidate(record any) error {
	return validate("candidate", record, func() *gojsonschema.Schema { return candidateSchema })
}

// ValidateClient validates a client-shaped record.
func ValidateClient(record any) error {
	return validate("client", record, func() *gojsonschema.Schema { return clientSchema })
}

// ValidateHistoryItem validates a history entry.
func ValidateHistoryItem(record any) error {
	return validate("history item", record, func() *gojsonschema.Schema { return historySchema })
}

func validate(name string, record any, schema func() *gojsonschema.Schema) error {
	if err := compiled(); err != nil {
		return fmt.Errorf("schema compile: %w", err)
	}

	result, err := schema().Validate(gojsonschema.NewGoLoader(record))
	if err != nil {
		return fmt.Errorf("%s validation: %w", name, err)
	}
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Record: name,
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" || field == "(root)" {
			if prop, ok := desc.Details()["property"].(string); ok {
				field = prop
			}
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
