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

package frictionless

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
)

// Descriptors are written by hand and often stray from the Frictionless
// profiles, so they are decoded member by member. A member that doesn't fit
// its field (e.g. a numeric "version") is kept verbatim alongside members the
// model doesn't know about, and both are written back out on encoding.

// decodes the members of the JSON object in data into the json-tagged fields
// of the struct v points to, returning the members that are unknown or don't
// fit their fields. A required member that doesn't fit is an error.
func decodeMembers(data []byte, v any, required ...string) (map[string]json.RawMessage, error) {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, err
	}
	fields := taggedFields(reflect.ValueOf(v).Elem())
	var extra map[string]json.RawMessage
	for name, raw := range members {
		if field, found := fields[name]; found {
			err := json.Unmarshal(raw, field.Addr().Interface())
			if err == nil {
				continue
			}
			if slices.Contains(required, name) {
				return nil, fmt.Errorf("invalid %s: %w", name, err)
			}
			field.SetZero()
		}
		if extra == nil {
			extra = make(map[string]json.RawMessage)
		}
		extra[name] = raw
	}
	return extra, nil
}

// maps JSON member names to the fields of the given struct value
func taggedFields(v reflect.Value) map[string]reflect.Value {
	fields := make(map[string]reflect.Value)
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name != "" && name != "-" {
			fields[name] = v.Field(i)
		}
	}
	return fields
}

// encodes v as a JSON object followed by the given extra members, in name
// order. Members of v take precedence over extra members with the same name.
func encodeMembers(v any, extra map[string]json.RawMessage) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil || len(extra) == 0 {
		return data, err
	}
	var present map[string]json.RawMessage
	if err := json.Unmarshal(data, &present); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Write(data[:len(data)-1]) // drop the closing brace
	empty := len(present) == 0
	for _, name := range slices.Sorted(maps.Keys(extra)) {
		if _, found := present[name]; found {
			continue
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		if !empty {
			buf.WriteByte(',')
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(extra[name])
		empty = false
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (pkg *DataPackage) UnmarshalJSON(data []byte) error {
	type members DataPackage
	var m members
	extra, err := decodeMembers(data, &m, "name", "resources")
	if err != nil {
		return err
	}
	*pkg = DataPackage(m)
	pkg.Extra = extra
	return nil
}

func (pkg DataPackage) MarshalJSON() ([]byte, error) {
	type members DataPackage
	return encodeMembers(members(pkg), pkg.Extra)
}

func (resource *DataResource) UnmarshalJSON(data []byte) error {
	type members DataResource
	var m members
	extra, err := decodeMembers(data, &m)
	if err != nil {
		return err
	}
	*resource = DataResource(m)
	resource.Extra = extra
	return nil
}

func (resource DataResource) MarshalJSON() ([]byte, error) {
	type members DataResource
	return encodeMembers(members(resource), resource.Extra)
}

func (schema *TableSchema) UnmarshalJSON(data []byte) error {
	type members TableSchema
	var m members
	extra, err := decodeMembers(data, &m)
	if err != nil {
		return err
	}
	*schema = TableSchema(m)
	schema.Extra = extra
	return nil
}

func (schema TableSchema) MarshalJSON() ([]byte, error) {
	type members TableSchema
	return encodeMembers(members(schema), schema.Extra)
}

func (field *TableField) UnmarshalJSON(data []byte) error {
	type members TableField
	var m members
	extra, err := decodeMembers(data, &m)
	if err != nil {
		return err
	}
	*field = TableField(m)
	field.Extra = extra
	return nil
}

func (field TableField) MarshalJSON() ([]byte, error) {
	type members TableField
	return encodeMembers(members(field), field.Extra)
}
