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
	"fmt"
)

// indicates that a request could not be completed at the connection level
// (DNS failure, refused connection, timeout, ...)
type TransportError struct {
	URL string
	Err error
}

func (e TransportError) Error() string {
	return fmt.Sprintf("Couldn't reach %s: %s", e.URL, e.Err.Error())
}

func (e TransportError) Unwrap() error {
	return e.Err
}

// indicates that a server answered a request with a status other than 200 OK
type HttpStatusError struct {
	URL  string
	Code int
}

func (e HttpStatusError) Error() string {
	return fmt.Sprintf("Unable to access %s. Status code: %d", e.URL, e.Code)
}

// indicates that a data file needed to create a data package could not be
// retrieved
type DataFileError struct {
	URL  string
	Code int
}

func (e DataFileError) Error() string {
	return fmt.Sprintf("Got error code %d while attempting to access %s", e.Code, e.URL)
}

// indicates that a descriptor was retrieved but is not valid JSON
type MalformedDescriptorError struct {
	URL, Message string
}

func (e MalformedDescriptorError) Error() string {
	return fmt.Sprintf("%s is invalid JSON. Details: %s", e.URL, e.Message)
}

// this error type is emitted if an endpoint redirects an HTTPS request to an
// HTTP endpoint
type DowngradedRedirectError struct {
	Endpoint string
}

func (e DowngradedRedirectError) Error() string {
	return fmt.Sprintf("The endpoint %s is attempting to downgrade an HTTPS request to HTTP",
		e.Endpoint)
}

// this error type is emitted when a request is redirected too many times
type TooManyRedirectsError struct {
	Endpoint string
}

func (e TooManyRedirectsError) Error() string {
	return fmt.Sprintf("Stopped after %d redirects at %s", maxRedirects, e.Endpoint)
}
