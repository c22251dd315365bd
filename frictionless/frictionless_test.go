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
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDataPackageTracksFieldPresence(t *testing.T) {
	assert := assert.New(t)

	var pkg DataPackage
	err := json.Unmarshal([]byte(`{"name": "p", "homepage": "", "resources": []}`), &pkg)
	assert.Nil(err)
	assert.Nil(pkg.Description)
	assert.Equal("", pkg.DescriptionText())
	assert.NotNil(pkg.Homepage)
	assert.Equal("", pkg.HomepageURL())
	assert.Nil(pkg.Bugs)
}

func TestDataPackageJSON(t *testing.T) {
	assert := assert.New(t)

	description := ""
	pkg := DataPackage{
		Name:        "p",
		Description: &description,
		Resources: []DataResource{
			{
				Name:      "data",
				URL:       "http://x.com/data.csv",
				MediaType: "text/csv",
				Schema: &TableSchema{
					Fields: []TableField{{Id: "date", Type: "string"}},
				},
			},
		},
	}
	b, err := json.Marshal(pkg)
	assert.Nil(err)
	assert.JSONEq(`{
	  "name": "p",
	  "description": "",
	  "resources": [{
	    "name": "data",
	    "url": "http://x.com/data.csv",
	    "mediatype": "text/csv",
	    "schema": {"fields": [{"id": "date", "description": "", "type": "string"}]}
	  }]
	}`, string(b))

	// resources are always present
	b, err = json.Marshal(DataPackage{Name: "q", Resources: []DataResource{}})
	assert.Nil(err)
	assert.JSONEq(`{"name": "q", "resources": []}`, string(b))
}

func TestDataPackageKeepsUnknownMembers(t *testing.T) {
	assert := assert.New(t)

	descriptor := `{
	  "name": "p",
	  "profile": "tabular-data-package",
	  "author": {"name": "someone"},
	  "resources": [{
	    "path": "d.csv",
	    "dialect": {"delimiter": ";"},
	    "schema": {
	      "fields": [{"name": "a", "description": "count", "type": "integer", "constraints": {"minimum": 0}}],
	      "primaryKey": ["a"]
	    }
	  }]
	}`
	var pkg DataPackage
	assert.Nil(json.Unmarshal([]byte(descriptor), &pkg))
	assert.Equal("tabular-data-package", pkg.Profile)
	assert.Contains(pkg.Extra, "author")
	assert.Contains(pkg.Resources[0].Extra, "dialect")
	assert.Contains(pkg.Resources[0].Schema.Extra, "primaryKey")
	assert.Contains(pkg.Resources[0].Schema.Fields[0].Extra, "constraints")

	b, err := json.Marshal(pkg)
	assert.Nil(err)
	assert.JSONEq(descriptor, string(b))
}

func TestDataPackageToleratesMistypedMembers(t *testing.T) {
	assert := assert.New(t)

	var pkg DataPackage
	err := json.Unmarshal([]byte(`{
	  "name": "p",
	  "version": 1.5,
	  "keywords": "gold",
	  "bugs": "https://x.com/issues",
	  "resources": [{"path": "d.csv", "bytes": "large"}]
	}`), &pkg)
	assert.Nil(err)
	assert.Equal("p", pkg.Name)
	assert.Equal("", pkg.Version)
	assert.Nil(pkg.Keywords)
	assert.Nil(pkg.Bugs)
	assert.JSONEq(`1.5`, string(pkg.Extra["version"]))
	assert.Equal("d.csv", pkg.Resources[0].Path)
	assert.Equal(0, pkg.Resources[0].Bytes)
	assert.JSONEq(`"large"`, string(pkg.Resources[0].Extra["bytes"]))

	// a modeled value takes precedence over a mistyped one on the way out
	bugs := Bugs{URL: "https://x.com/issues"}
	pkg.Bugs = &bugs
	b, err := json.Marshal(pkg)
	assert.Nil(err)
	assert.JSONEq(`{
	  "name": "p",
	  "version": 1.5,
	  "keywords": "gold",
	  "bugs": {"url": "https://x.com/issues"},
	  "resources": [{"path": "d.csv", "bytes": "large"}]
	}`, string(b))
}

func TestDataPackageRequiresNameAndResources(t *testing.T) {
	assert := assert.New(t)

	for _, descriptor := range []string{
		`{"name": 7, "resources": []}`,
		`{"name": "p", "resources": {}}`,
		`{"name": "p", "resources": ["d.csv"]}`,
		`["not", "an", "object"]`,
	} {
		var pkg DataPackage
		assert.NotNil(json.Unmarshal([]byte(descriptor), &pkg), descriptor)
	}

	// both may be absent, though
	var pkg DataPackage
	assert.Nil(json.Unmarshal([]byte(`{"title": "untitled"}`), &pkg))
	assert.Equal("untitled", pkg.Title)
}
