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

package descriptors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kbase/dpkg/frictionless"
	"github.com/kbase/dpkg/locations"
	"github.com/kbase/dpkg/sniffer"
)

// information used to create a new data package
type CreateInfo struct {
	// name of the new package
	Name string `json:"name,omitempty"`
	// title of the new package
	Title string `json:"title,omitempty"`
	// description of the new package
	Description string `json:"description,omitempty"`
	// licenses for the new package (default: ODC-PDDL)
	Licenses []frictionless.DataLicense `json:"licenses,omitempty"`
	// URL of a CSV file described by the new package's only resource
	URL string `json:"url,omitempty"`
	// alternative to URL
	ResourceURL string `json:"resource.url,omitempty"`
}

// Creates a new data package from the given information. If a data file URL
// is given, the file is fetched and its header row is used to infer the
// table schema of the package's single resource; only the header row is
// transferred.
func (l *Loader) Create(ctx context.Context, info CreateInfo) (frictionless.DataPackage, error) {
	pkg := frictionless.DataPackage{
		Name:        info.Name,
		Title:       info.Title,
		Description: stringPtr(info.Description),
		Licenses:    info.Licenses,
		Resources:   []frictionless.DataResource{},
	}
	if len(pkg.Licenses) == 0 {
		pkg.Licenses = []frictionless.DataLicense{frictionless.DefaultLicense}
	}

	resourceURL := info.URL
	if resourceURL == "" {
		resourceURL = info.ResourceURL
	}
	if resourceURL == "" {
		return pkg, nil
	}

	resp, err := l.open(ctx, resourceURL)
	if err != nil {
		var statusErr *HttpStatusError
		if errors.As(err, &statusErr) {
			err = &DataFileError{URL: resourceURL, Code: statusErr.Code}
		}
		return frictionless.DataPackage{}, err
	}
	schema, err := sniffer.InferTableSchema(ctx, sniffer.StreamCSV(ctx, resp.Body))
	if err != nil {
		return frictionless.DataPackage{}, err
	}
	slog.Debug(fmt.Sprintf("Created resource for %s with %d field(s)", resourceURL, len(schema.Fields)))

	pkg.Resources = append(pkg.Resources, frictionless.DataResource{
		Name:      locations.NameFromURL(resourceURL),
		URL:       resourceURL,
		Format:    "csv",
		MediaType: "text/csv",
		Schema:    &schema,
	})
	return pkg, nil
}
