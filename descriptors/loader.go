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

// Package descriptors retrieves data package descriptors over HTTP and
// normalizes them, alone or in batches, and creates new descriptors from
// raw data files.
package descriptors

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/kbase/dpkg/config"
	"github.com/kbase/dpkg/frictionless"
	"github.com/kbase/dpkg/locations"
)

// the name of the README file fetched alongside a descriptor
const ReadmeFile = "README.md"

// A Loader fetches data package descriptors (and their READMEs) over HTTP.
// A Loader holds no per-request state and may be used concurrently.
type Loader struct {
	// HTTP client used for all requests
	Client http.Client
	// maximum number of concurrent loads in LoadMany (0 = one per location)
	MaxConcurrentLoads int
	// User-Agent header sent with each request (optional)
	UserAgent string
}

// creates a Loader configured by config.Loader, using a secure HTTP client
func NewLoader() *Loader {
	return &Loader{
		Client:             SecureHttpClient(time.Duration(config.Loader.Timeout) * time.Second),
		MaxConcurrentLoads: config.Loader.MaxConcurrentLoads,
		UserAgent:          config.Loader.UserAgent,
	}
}

// states traversed by a single Load
type loadState int

const (
	fetchingDescriptor loadState = iota
	fetchingReadme
	normalizing
	done
	failed
)

func (s loadState) String() string {
	switch s {
	case fetchingDescriptor:
		return "fetching descriptor"
	case fetchingReadme:
		return "fetching README"
	case normalizing:
		return "normalizing"
	case done:
		return "done"
	default:
		return "failed"
	}
}

// Loads the data package at the given location (a repository page,
// directory URL, or descriptor URL), returning its normalized descriptor.
// The descriptor must be retrievable and valid JSON. A README.md next to
// the descriptor is attached if it can be retrieved; if not, the package is
// loaded without it.
func (l *Loader) Load(ctx context.Context, location string) (frictionless.DataPackage, error) {
	descriptorURL := locations.CanonicalURL(location)
	base := locations.BaseURL(descriptorURL)

	var pkg frictionless.DataPackage
	var err error
	state := fetchingDescriptor
	for state != done && state != failed {
		slog.Debug(fmt.Sprintf("Loading %s: %s", descriptorURL, state))
		switch state {
		case fetchingDescriptor:
			pkg, err = l.fetchDescriptor(ctx, descriptorURL)
			if err != nil {
				state = failed
			} else {
				state = fetchingReadme
			}
		case fetchingReadme:
			readmeURL := base + ReadmeFile
			if readme, readmeErr := l.get(ctx, readmeURL); readmeErr == nil {
				pkg.Readme = stringPtr(strings.ReplaceAll(string(readme), "\r\n", "\n"))
			} else {
				slog.Debug(fmt.Sprintf("No README for %s: %s", descriptorURL, readmeErr.Error()))
			}
			state = normalizing
		case normalizing:
			pkg = Normalize(pkg, base)
			state = done
		}
	}
	if state == failed {
		return frictionless.DataPackage{}, err
	}
	return pkg, nil
}

// fetches and parses the descriptor at the given URL. Only text that isn't a
// JSON object, a non-string name, or a non-array list of resources is
// malformed; other members are kept however they're written.
func (l *Loader) fetchDescriptor(ctx context.Context, descriptorURL string) (frictionless.DataPackage, error) {
	var pkg frictionless.DataPackage
	body, err := l.get(ctx, descriptorURL)
	if err != nil {
		return pkg, err
	}
	err = json.Unmarshal(body, &pkg)
	if err != nil {
		return frictionless.DataPackage{}, &MalformedDescriptorError{
			URL:     descriptorURL,
			Message: err.Error(),
		}
	}
	return pkg, nil
}
