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

// Package sniffer infers a minimal table schema from the header row of a
// delimited (CSV) stream without consuming the rest of the stream.
package sniffer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/kbase/dpkg/frictionless"
)

// the type assigned to every inferred field
const FieldType = "string"

// A source of already-delimited rows. Rows() is closed when production
// stops, after which Err() reports any genuine read error. Close stops
// production and releases the underlying transport.
type Rows interface {
	Rows() <-chan []string
	Err() error
	Close() error
}

// Infers a table schema from the first row of the given stream, which is
// interpreted as a header: one string-typed field per cell. The stream is
// closed as soon as the header has been read, so the remainder of the
// stream is never transferred. A stream with no rows yields a schema with
// no fields.
func InferTableSchema(ctx context.Context, rows Rows) (frictionless.TableSchema, error) {
	defer rows.Close()

	var header []string
	var ok bool
	select {
	case header, ok = <-rows.Rows():
	case <-ctx.Done():
		return frictionless.TableSchema{}, ctx.Err()
	}

	if !ok { // no rows at all
		if err := rows.Err(); err != nil {
			return frictionless.TableSchema{}, err
		}
		slog.Debug("No header row found; inferred an empty table schema")
		return frictionless.TableSchema{Fields: []frictionless.TableField{}}, nil
	}

	schema := frictionless.TableSchema{
		Fields: make([]frictionless.TableField, len(header)),
	}
	for i, cell := range header {
		schema.Fields[i] = frictionless.TableField{
			Id:          cell,
			Description: "",
			Type:        FieldType,
		}
	}
	slog.Debug(fmt.Sprintf("Inferred table schema with %d field(s)", len(schema.Fields)))
	return schema, nil
}

// a stream of rows parsed from a CSV body by a producer goroutine
// (implements Rows)
type RowStream struct {
	rows   chan []string
	body   io.ReadCloser
	cancel context.CancelFunc
	ctx    context.Context

	mu  sync.Mutex
	err error

	closeOnce sync.Once
}

// Starts parsing CSV rows from the given body, delivering them on the
// stream's Rows() channel. Production stops when the body is exhausted, a
// read error occurs, the given context is canceled, or the stream is closed.
func StreamCSV(ctx context.Context, body io.ReadCloser) *RowStream {
	ctx, cancel := context.WithCancel(ctx)
	s := &RowStream{
		rows:   make(chan []string),
		body:   body,
		cancel: cancel,
		ctx:    ctx,
	}
	go s.produce()
	return s
}

func (s *RowStream) produce() {
	defer close(s.rows)

	reader := csv.NewReader(s.body)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	for {
		record, err := reader.Read()
		if err != nil {
			// errors after cancellation come from closing the transport
			// underneath the reader and are expected
			if !errors.Is(err, io.EOF) && s.ctx.Err() == nil {
				s.setErr(&ReadError{Err: err})
			}
			return
		}
		select {
		case s.rows <- record:
		case <-s.ctx.Done():
			return
		}
	}
}

func (s *RowStream) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *RowStream) Rows() <-chan []string {
	return s.rows
}

// returns the read error that stopped production, if any
func (s *RowStream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Stops production and closes the underlying body. Close may be called
// more than once and after the body has already been closed elsewhere;
// only the first call has any effect.
func (s *RowStream) Close() error {
	s.closeOnce.Do(func() {
		s.cancel()
		// the transport may already be gone, which is fine
		if err := s.body.Close(); err != nil {
			slog.Debug(fmt.Sprintf("Closing row stream: %s", err.Error()))
		}
	})
	return nil
}
