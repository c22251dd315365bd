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

// Package locations turns user-supplied data package locations into the
// canonical URLs of their descriptors.
package locations

import (
	"net/url"
	"path"
	"strings"
)

// the name of a data package's descriptor file
const DescriptorFile = "datapackage.json"

const (
	gitHubWeb = "https://github.com"
	gitHubRaw = "https://raw.github.com"

	rawGitHubHost = "raw.github.com"
)

// Returns the canonical URL of the descriptor for the data package at the
// given location. GitHub repository pages are rewritten to their raw content
// equivalents on the master branch, and directory locations have the
// descriptor filename appended. Any string is accepted.
func CanonicalURL(location string) string {
	if strings.Contains(location, gitHubWeb) && !strings.Contains(location, DescriptorFile) {
		location = strings.Replace(location, gitHubWeb, gitHubRaw, 1) + "/master/" + DescriptorFile
	}
	if !strings.Contains(location, DescriptorFile) {
		location = strings.TrimSuffix(location, "/") + "/" + DescriptorFile
	}
	return location
}

// Returns the base URL against which a data package's relative paths are
// resolved: the descriptor URL with the descriptor filename removed.
func BaseURL(descriptorURL string) string {
	return strings.TrimSuffix(descriptorURL, DescriptorFile)
}

// Returns true if the given base URL refers to GitHub's raw content host.
func IsRawGitHub(base string) bool {
	return strings.Contains(base, rawGitHubHost)
}

// Given a base URL on GitHub's raw content host, returns the URL of the
// corresponding repository page (https://github.com/<org>/<repo>) and true.
// Returns false for any other base URL.
func GitHubRepository(base string) (string, bool) {
	if !IsRawGitHub(base) {
		return "", false
	}
	// scheme, "", host, org, repo, ...
	parts := strings.Split(base, "/")
	start, end := min(3, len(parts)), min(5, len(parts))
	return gitHubWeb + "/" + strings.Join(parts[start:end], "/"), true
}

// Creates a name from a URL by taking the final segment of its path and
// removing one extension, if present:
// http://example.com/abc/xyz.fbc.csv?x=1 -> xyz.fbc
func NameFromURL(u string) string {
	p := u
	if parsed, err := url.Parse(u); err == nil {
		p = parsed.EscapedPath() // percent-encoding is kept
	}
	name := path.Base("/" + p)
	if strings.HasSuffix(p, "/") {
		name = ""
	}
	if name == "/" || name == "." {
		name = ""
	}
	if dot := strings.LastIndex(name, "."); dot != -1 {
		name = name[:dot]
	}
	return name
}
