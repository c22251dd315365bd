// Copyright (c) 2023 The KBase Project and its Contributors
// Copyright (c) 2023 Cohere Consulting, LLC
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
// of the Software, and to permit persons to whom the Software is furnished to do
// so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package validation checks data package descriptors against the descriptor
// JSON schema and, optionally, the Frictionless data-package profile.
package validation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/frictionlessdata/datapackage-go/datapackage"
	"github.com/frictionlessdata/datapackage-go/validator"
	"github.com/santhosh-tekuri/jsonschema"
)

// a single problem found in a descriptor
type Error struct {
	// a description of the problem
	Message string `json:"message"`
	// JSON pointer to the offending part of the descriptor, if known
	InstancePtr string `json:"instance_ptr,omitempty"`
	// JSON pointer to the violated part of the schema, if known
	SchemaPtr string `json:"schema_ptr,omitempty"`
}

// the outcome of validating a descriptor
type Report struct {
	// true if the descriptor is valid
	Valid bool `json:"valid"`
	// problems found in the descriptor, in the order reported by the validator
	Errors []Error `json:"errors"`
	// recommended fields absent from the descriptor (advisory only)
	Missing []string `json:"missing_recommended,omitempty"`
}

// fields every descriptor should have, though none is required
var recommendedFields = []string{
	"title",
	"licenses",
	"datapackage_version",
	"description",
	"sources",
	"keywords",
}

const descriptorSchemaURL = "https://kbase.us/schemas/dpkg/datapackage.schema.json"

const descriptorSchemaJSON = `{
  "title": "Data Package",
  "type": "object",
  "required": ["name", "resources"],
  "properties": {
    "name": {"type": "string"},
    "title": {"type": "string"},
    "sources": {"type": "array"},
    "licenses": {"type": "array"},
    "resources": {"type": "array"}
  }
}`

// the compiled descriptor schema, shared by all validations
var descriptorSchema = compileDescriptorSchema()

func compileDescriptorSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	err := compiler.AddResource(descriptorSchemaURL, strings.NewReader(descriptorSchemaJSON))
	if err != nil {
		panic(fmt.Sprintf("Couldn't add descriptor schema: %s", err.Error()))
	}
	schema, err := compiler.Compile(descriptorSchemaURL)
	if err != nil {
		panic(fmt.Sprintf("Couldn't compile descriptor schema: %s", err.Error()))
	}
	return schema
}

// Validates the given descriptor text. Text that isn't valid JSON produces a
// single "Invalid JSON" error; otherwise the descriptor is checked against the
// descriptor schema, which requires a string name and an array of resources.
func Validate(raw []byte) Report {
	if !json.Valid(raw) {
		return Report{
			Valid:  false,
			Errors: []Error{{Message: "Invalid JSON"}},
		}
	}
	report := Report{
		Valid:   true,
		Errors:  []Error{},
		Missing: missingRecommendedFields(raw),
	}
	if err := descriptorSchema.Validate(bytes.NewReader(raw)); err != nil {
		report.Valid = false
		report.Errors = schemaErrors(err)
	}
	return report
}

// Validates the descriptor at the given URL. A descriptor that can't be
// retrieved produces a single error describing why.
func ValidateURL(ctx context.Context, client *http.Client, url string) Report {
	failure := func(message string) Report {
		return Report{Valid: false, Errors: []Error{{Message: message}}}
	}

	slog.Debug(fmt.Sprintf("GET: %s", url))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return failure(err.Error())
	}
	resp, err := client.Do(req)
	if err != nil {
		return failure(err.Error())
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return failure(fmt.Sprintf("Error loading the datapackage.json file. HTTP Error code: %d",
			resp.StatusCode))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return failure(err.Error())
	}
	return Validate(body)
}

// Validates the given descriptor text as Validate does, and then checks it
// against the Frictionless data-package profile.
func ValidateProfile(raw []byte) Report {
	report := Validate(raw)
	if !report.Valid {
		return report
	}
	_, err := datapackage.FromString(string(raw), ".", validator.InMemoryLoader())
	if err != nil {
		report.Valid = false
		report.Errors = append(report.Errors, Error{Message: err.Error()})
	}
	return report
}

// flattens a schema validation error into its leaf causes
func schemaErrors(err error) []Error {
	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return []Error{{Message: err.Error()}}
	}
	return flattenValidationError(validationErr)
}

func flattenValidationError(e *jsonschema.ValidationError) []Error {
	if len(e.Causes) == 0 {
		return []Error{{
			Message:     e.Message,
			InstancePtr: e.InstancePtr,
			SchemaPtr:   e.SchemaPtr,
		}}
	}
	errs := make([]Error, 0, len(e.Causes))
	for _, cause := range e.Causes {
		errs = append(errs, flattenValidationError(cause)...)
	}
	return errs
}

// returns the recommended fields absent from a descriptor (none if the
// descriptor isn't a JSON object)
func missingRecommendedFields(raw []byte) []string {
	var descriptor map[string]json.RawMessage
	if err := json.Unmarshal(raw, &descriptor); err != nil {
		return nil
	}
	var missing []string
	for _, field := range recommendedFields {
		if _, found := descriptor[field]; !found {
			missing = append(missing, field)
		}
	}
	return missing
}
