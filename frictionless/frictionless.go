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
)

// a Frictionless data package describing a dataset published as a set of
// related resources (https://specs.frictionlessdata.io/data-package/)
//
// Optional fields whose presence matters during normalization are pointers:
// a nil pointer means the field was absent from the descriptor. Members the
// model doesn't cover, or whose values don't fit their fields, are kept in
// Extra and written back out unchanged.
type DataPackage struct {
	// the name of the data package (required)
	Name string `json:"name"`
	// a title or one sentence description for the data package
	Title string `json:"title,omitempty"`
	// a description of the data package (always present after normalization)
	Description *string `json:"description,omitempty"`
	// raw Markdown text of the package's README, if any
	Readme *string `json:"readme,omitempty"`
	// the README rendered to HTML (derived)
	ReadmeHtml string `json:"readme_html,omitempty"`
	// a URL for a web address related to the data package
	Homepage *string `json:"homepage,omitempty"`
	// where to report problems with the data package
	Bugs *Bugs `json:"bugs,omitempty"`
	// a version string identifying the version of the data package
	Version string `json:"version,omitempty"`
	// the version of the data package specification the descriptor follows
	DataPackageVersion string `json:"datapackage_version,omitempty"`
	// an array of string keywords to assist users searching for the data package
	// in catalogs
	Keywords []string `json:"keywords,omitempty"`
	// a list identifying the license or licenses under which this package is
	// managed (optional)
	Licenses []DataLicense `json:"licenses,omitempty"`
	// a list identifying the sources for this package (optional)
	Sources []DataSource `json:"sources,omitempty"`
	// list of contributors to the data package
	Contributors []Contributor `json:"contributors,omitempty"`
	// a timestamp indicated when the package was created
	Created string `json:"created,omitempty"`
	// an image to use for this data package (URL or POSIX path)
	Image string `json:"image,omitempty"`
	// a machine-readable set of instructions for processing
	Instructions json.RawMessage `json:"instructions,omitempty"`
	// the profile of this descriptor per the DataPackage profiles specification
	// (https://specs.frictionlessdata.io/profiles/#language)
	Profile string `json:"profile,omitempty"`
	// a list of resources that belong to the package (required, may be empty)
	Resources []DataResource `json:"resources"`
	// descriptor members not covered above, verbatim
	Extra map[string]json.RawMessage `json:"-"`
}

// returns the package's description, or an empty string if it has none
func (pkg DataPackage) DescriptionText() string {
	if pkg.Description == nil {
		return ""
	}
	return *pkg.Description
}

// returns the package's homepage, or an empty string if it has none
func (pkg DataPackage) HomepageURL() string {
	if pkg.Homepage == nil {
		return ""
	}
	return *pkg.Homepage
}

// a Frictionless data resource describing one data file in a package
// (https://specs.frictionlessdata.io/data-resource/)
type DataResource struct {
	// the name of the resource's file, with any suffix stripped off
	Name string `json:"name,omitempty"`
	// a fully qualified URL at which the resource's file may be retrieved
	URL string `json:"url,omitempty"`
	// a relative path to the resource's file within a data package directory
	Path string `json:"path,omitempty"`
	// a title or label for the resource (optional)
	Title string `json:"title,omitempty"`
	// a description of the resource (optional)
	Description string `json:"description,omitempty"`
	// indicates the format of the resource's file, often used as an extension
	Format string `json:"format,omitempty"`
	// the mediatype/mimetype of the resource (optional, e.g. "text/csv")
	MediaType string `json:"mediatype,omitempty"`
	// the character encoding for the resource's file (optional, default: UTF-8)
	Encoding string `json:"encoding,omitempty"`
	// the size of the resource's file in bytes (optional)
	Bytes int `json:"bytes,omitempty"`
	// the hash for the resource's file (optional)
	Hash string `json:"hash,omitempty"`
	// a table schema describing the columns of a tabular resource (optional)
	Schema *TableSchema `json:"schema,omitempty"`
	// the profile of this resource (optional, e.g. "tabular-data-resource")
	Profile string `json:"profile,omitempty"`
	// a list identifying the license or licenses under which this resource is
	// managed (optional)
	Licenses []DataLicense `json:"licenses,omitempty"`
	// a list identifying the sources for this resource (optional)
	Sources []DataSource `json:"sources,omitempty"`
	// resource members not covered above (e.g. "dialect"), verbatim
	Extra map[string]json.RawMessage `json:"-"`
}

// a (JSON) Table Schema describing the columns of a tabular resource
// (https://specs.frictionlessdata.io/table-schema/)
type TableSchema struct {
	Fields []TableField `json:"fields"`
	// schema members other than fields (e.g. "primaryKey"), verbatim
	Extra map[string]json.RawMessage `json:"-"`
}

// a single column in a TableSchema. Older descriptors identify fields by "id"
// rather than "name"; normalization copies the id into the name.
type TableField struct {
	Name        string `json:"name,omitempty"`
	Id          string `json:"id,omitempty"`
	Description string `json:"description"`
	Type        string `json:"type,omitempty"`
	Title       string `json:"title,omitempty"`
	Format      string `json:"format,omitempty"`
	// field members other than the above (e.g. "constraints"), verbatim
	Extra map[string]json.RawMessage `json:"-"`
}

// information about where to report problems with a DataPackage
type Bugs struct {
	URL string `json:"url"`
}

// information about the source of a DataPackage or DataResource
type DataSource struct {
	// a descriptive title for the source
	Title string `json:"title,omitempty"`
	// a URI or relative path pointing to the source (optional)
	Path string `json:"path,omitempty"`
	// a web address for the source (optional, older descriptors)
	Web string `json:"web,omitempty"`
	// an email address identifying a contact associated with the source (optional)
	Email string `json:"email,omitempty"`
}

// information about a license associated with a DataPackage
type DataLicense struct {
	// a short identifier for the license (e.g. "odc-pddl")
	Id string `json:"id,omitempty"`
	// the abbreviated name of the license
	Name string `json:"name,omitempty"`
	// the version of the license (optional)
	Version string `json:"version,omitempty"`
	// a URL at which the license text may be retrieved
	URL string `json:"url,omitempty"`
	// a URI or relative path at which the license text may be retrieved
	Path string `json:"path,omitempty"`
	// the descriptive title of the license (optional)
	Title string `json:"title,omitempty"`
}

// information about a contributor to a DataPackage
type Contributor struct {
	// name/title of the contributor (name for person, name/title of organization)
	Title string `json:"title"`
	// the contributor's email address
	Email string `json:"email,omitempty"`
	// a fully qualified http URL pointing to a relevant location online for the
	// contributor
	Path string `json:"path,omitempty"`
	// the role of the contributor ("author", "publisher", "maintainer",
	// "wrangler", "contributor")
	Role string `json:"role,omitempty"`
}

// the license assigned to newly created data packages that specify none
var DefaultLicense = DataLicense{
	Id:      "odc-pddl",
	Name:    "Public Domain Dedication and License",
	Version: "1.0",
	URL:     "http://opendatacommons.org/licenses/pddl/1.0/",
}
