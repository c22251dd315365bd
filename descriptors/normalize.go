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
	"slices"

	"github.com/kbase/dpkg/frictionless"
	"github.com/kbase/dpkg/locations"
)

// Normalizes a data package descriptor retrieved from (or rooted at) the
// given base URL, filling in derived fields:
//   - the description is always present, falling back to the first
//     paragraph of the README
//   - the README falls back to the description and is rendered to HTML
//   - resources get URLs (from their paths) and names (from their URLs)
//   - table schema fields identified only by id get a name
//   - homepage and bug tracker are inferred for GitHub-hosted packages, and
//     the homepage otherwise defaults to the base URL
//
// The given package is not modified; a normalized copy is returned.
// Normalizing a normalized package with the same base changes nothing.
func Normalize(pkg frictionless.DataPackage, base string) frictionless.DataPackage {
	base = locations.BaseURL(base)
	out := pkg
	out.Resources = make([]frictionless.DataResource, len(pkg.Resources))

	// ensure certain fields exist
	if out.Description == nil {
		out.Description = stringPtr("")
	}

	// set description as first paragraph of readme if no description
	if *out.Description == "" && out.Readme != nil {
		out.Description = stringPtr(summarizeReadme(*out.Readme))
	} else if out.Readme == nil || *out.Readme == "" {
		out.Readme = stringPtr(*out.Description)
	}
	out.ReadmeHtml = renderMarkdown(*out.Readme)

	for i, resource := range pkg.Resources {
		out.Resources[i] = normalizeResource(resource, base)
	}

	// special cases for GitHub data packages
	if repo, ok := locations.GitHubRepository(base); ok {
		if out.Homepage == nil {
			out.Homepage = stringPtr(repo)
		}
		if out.Bugs == nil {
			out.Bugs = &frictionless.Bugs{URL: repo + "/issues"}
		}
	}

	// have a stab at setting a sensible homepage if none there yet
	if out.Homepage == nil {
		out.Homepage = stringPtr(base)
	}

	return out
}

func normalizeResource(resource frictionless.DataResource, base string) frictionless.DataResource {
	if resource.URL == "" && resource.Path != "" {
		resource.URL = base + resource.Path
	}
	if resource.Name == "" && resource.URL != "" {
		resource.Name = locations.NameFromURL(resource.URL)
	}
	if resource.Schema != nil {
		schema := *resource.Schema
		schema.Fields = slices.Clone(resource.Schema.Fields)
		// older table schemas identify fields by id
		for i, field := range schema.Fields {
			if field.Name == "" {
				schema.Fields[i].Name = field.Id
			}
		}
		resource.Schema = &schema
	}
	return resource
}

func stringPtr(s string) *string {
	return &s
}
