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
	"fmt"
	"log/slog"

	"github.com/deliveryhero/pipeline/v2"
	"github.com/google/uuid"

	"github.com/kbase/dpkg/frictionless"
)

// Loads the data packages at all of the given locations concurrently,
// returning their normalized descriptors keyed by package name. A location
// that can't be loaded is logged and left out; it doesn't affect the rest of
// the batch. LoadMany returns once every location has been loaded or has
// failed. If two packages share a name, the one that finished loading last
// wins.
func (l *Loader) LoadMany(ctx context.Context, locations []string) map[string]frictionless.DataPackage {
	batchId := uuid.New()
	slog.Info(fmt.Sprintf("Batch %s: loading %d data package(s)", batchId.String(), len(locations)))

	output := make(map[string]frictionless.DataPackage)
	if len(locations) == 0 {
		return output
	}

	concurrency := l.MaxConcurrentLoads
	if concurrency <= 0 || concurrency > len(locations) {
		concurrency = len(locations)
	}

	process := func(ctx context.Context, location string) (frictionless.DataPackage, error) {
		return l.Load(ctx, location)
	}
	cancel := func(location string, err error) {
		slog.Error(fmt.Sprintf("Batch %s: %s: %s", batchId.String(), location, err.Error()))
	}
	loaded := pipeline.ProcessConcurrently(ctx, concurrency,
		pipeline.NewProcessor(process, cancel), pipeline.Emit(locations...))

	// packages are recorded in the order in which they finish
	for pkg := range loaded {
		output[pkg.Name] = pkg
	}
	slog.Info(fmt.Sprintf("Batch %s: loaded %d of %d data package(s)", batchId.String(),
		len(output), len(locations)))
	return output
}
