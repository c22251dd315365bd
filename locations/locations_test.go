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

package locations

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalURLRewritesGitHubRepository(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("https://raw.github.com/org/repo/master/datapackage.json",
		CanonicalURL("https://github.com/org/repo"))
	// already names the descriptor: left alone
	assert.Equal("https://github.com/org/repo/blob/master/datapackage.json",
		CanonicalURL("https://github.com/org/repo/blob/master/datapackage.json"))
}

func TestCanonicalURLAppendsDescriptorFile(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("http://x.com/pkg/datapackage.json", CanonicalURL("http://x.com/pkg/"))
	assert.Equal("http://x.com/pkg/datapackage.json", CanonicalURL("http://x.com/pkg"))
	assert.Equal("http://x.com/pkg/datapackage.json", CanonicalURL("http://x.com/pkg/datapackage.json"))
	assert.Equal("/datapackage.json", CanonicalURL(""))
}

func TestBaseURL(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("http://x.com/pkg/", BaseURL("http://x.com/pkg/datapackage.json"))
	assert.Equal("http://x.com/pkg/", BaseURL("http://x.com/pkg/"))
}

func TestGitHubRepository(t *testing.T) {
	assert := assert.New(t)
	repo, ok := GitHubRepository("https://raw.github.com/datasets/gold-prices/master/")
	assert.True(ok)
	assert.Equal("https://github.com/datasets/gold-prices", repo)

	_, ok = GitHubRepository("http://x.com/pkg/")
	assert.False(ok)
}

func TestNameFromURL(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("xyz.fbc", NameFromURL("http://example.com/abc/xyz.fbc.csv?x=1"))
	assert.Equal("data", NameFromURL("http://example.com/pkg/data/data.csv"))
	assert.Equal("data", NameFromURL("data/data.csv"))
	assert.Equal("noext", NameFromURL("http://example.com/noext"))
	assert.Equal("", NameFromURL("http://example.com/dir/"))
	assert.Equal("", NameFromURL(""))
	assert.Equal("a%20b", NameFromURL("http://example.com/a%20b.csv"))
	assert.Equal("caf%C3%A9", NameFromURL("http://example.com/data/caf%C3%A9.csv"))
}
