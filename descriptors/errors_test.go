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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransportError(t *testing.T) {
	cause := errors.New("connection refused")
	err := TransportError{URL: "http://x.com/datapackage.json", Err: cause}
	assert.Equal(t, "Couldn't reach http://x.com/datapackage.json: connection refused", err.Error())
	assert.ErrorIs(t, &err, cause)
}

func TestHttpStatusError(t *testing.T) {
	err := HttpStatusError{URL: "http://x.com/datapackage.json", Code: 404}
	assert.Equal(t, "Unable to access http://x.com/datapackage.json. Status code: 404", err.Error())
}

func TestDataFileError(t *testing.T) {
	err := DataFileError{URL: "http://x.com/data.csv", Code: 500}
	assert.Equal(t, "Got error code 500 while attempting to access http://x.com/data.csv", err.Error())
}

func TestMalformedDescriptorError(t *testing.T) {
	err := MalformedDescriptorError{
		URL:     "http://x.com/datapackage.json",
		Message: "unexpected end of JSON input",
	}
	assert.Equal(t, "http://x.com/datapackage.json is invalid JSON. Details: unexpected end of JSON input", err.Error())
}

func TestDowngradedRedirectError(t *testing.T) {
	err := DowngradedRedirectError{
		Endpoint: "https://secure-endpoint",
	}
	assert.Equal(t, "The endpoint https://secure-endpoint is attempting to downgrade an HTTPS request to HTTP", err.Error())
}

func TestTooManyRedirectsError(t *testing.T) {
	err := TooManyRedirectsError{Endpoint: "x.com/loop"}
	assert.Equal(t, "Stopped after 10 redirects at x.com/loop", err.Error())
}
