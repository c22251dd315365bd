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
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"
)

// READMEs are GitHub-flavored, and any HTML they embed is kept
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(goldmarkhtml.WithUnsafe()),
)

// renders the given Markdown text to HTML
func renderMarkdown(text string) string {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(text), &buf); err != nil {
		slog.Error(fmt.Sprintf("Rendering Markdown: %s", err.Error()))
		return ""
	}
	return buf.String()
}

// removes all tags from the given HTML, leaving its text
func stripTags(markup string) string {
	var text strings.Builder
	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		switch z.Next() {
		case html.ErrorToken: // io.EOF: reading from a string can't fail otherwise
			return text.String()
		case html.TextToken:
			text.Write(z.Text())
		}
	}
}

// Summarizes a README as plain text: the first paragraph of its rendered
// form, stripped of markup. Line breaks inside the paragraph are kept;
// trailing ones are dropped.
func summarizeReadme(readme string) string {
	markup := strings.ReplaceAll(renderMarkdown(readme), "<p>", "\n<p>")
	plain, _, _ := strings.Cut(stripTags(markup), "\n\n")
	plain = strings.Replace(plain, " \n", "", 1)
	plain = strings.Replace(plain, "\n", " ", 1)
	return strings.TrimRight(strings.TrimPrefix(plain, " "), "\n")
}
