package output_test

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/temirov/sizetree/internal/output"
	"github.com/temirov/sizetree/internal/types"
)

const rootPath = "/tmp/root"

var sampleResult = types.RenderResult{
	TotalSize: 1536,
	Lines: []string{
		"◎ root [1.5KiB]",
		"├○ a.txt [1.0KiB]",
		"├ⓧ locked [0.0B]",
		"└...2 more items",
	},
}

func TestRawRendererWritesEveryLine(t *testing.T) {
	renderer, err := output.NewRenderer(types.FormatRaw, false)
	if err != nil {
		t.Fatalf("NewRenderer error: %v", err)
	}
	var buffer bytes.Buffer
	if renderErr := renderer.Render(&buffer, rootPath, sampleResult); renderErr != nil {
		t.Fatalf("Render error: %v", renderErr)
	}
	expected := strings.Join(sampleResult.Lines, "\n") + "\n"
	if buffer.String() != expected {
		t.Fatalf("expected %q, got %q", expected, buffer.String())
	}
	if output.FormatRaw(sampleResult) != expected {
		t.Fatalf("FormatRaw must match raw renderer output")
	}
}

func TestRawRendererColorizesMarkers(t *testing.T) {
	previous := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = previous })

	renderer, err := output.NewRenderer(types.FormatRaw, true)
	if err != nil {
		t.Fatalf("NewRenderer error: %v", err)
	}
	var buffer bytes.Buffer
	if renderErr := renderer.Render(&buffer, rootPath, sampleResult); renderErr != nil {
		t.Fatalf("Render error: %v", renderErr)
	}
	renderedLines := strings.Split(strings.TrimSuffix(buffer.String(), "\n"), "\n")
	if len(renderedLines) != len(sampleResult.Lines) {
		t.Fatalf("expected %d lines, got %d", len(sampleResult.Lines), len(renderedLines))
	}
	if renderedLines[0] != sampleResult.Lines[0] || renderedLines[1] != sampleResult.Lines[1] {
		t.Fatalf("plain lines must not be colorized: %q", renderedLines[:2])
	}
	for _, index := range []int{2, 3} {
		if !strings.Contains(renderedLines[index], "\x1b[") || !strings.Contains(renderedLines[index], sampleResult.Lines[index]) {
			t.Fatalf("expected colorized line %d, got %q", index, renderedLines[index])
		}
	}
}

func TestJSONRendererCarriesTotals(t *testing.T) {
	renderer, err := output.NewRenderer(types.FormatJSON, false)
	if err != nil {
		t.Fatalf("NewRenderer error: %v", err)
	}
	var buffer bytes.Buffer
	if renderErr := renderer.Render(&buffer, rootPath, sampleResult); renderErr != nil {
		t.Fatalf("Render error: %v", renderErr)
	}
	var document types.TreeDocument
	if decodeErr := json.Unmarshal(buffer.Bytes(), &document); decodeErr != nil {
		t.Fatalf("decode: %v", decodeErr)
	}
	if document.Path != rootPath || document.TotalBytes != 1536 || document.TotalSize != "1.5KiB" {
		t.Fatalf("unexpected document %+v", document)
	}
	if len(document.Lines) != len(sampleResult.Lines) {
		t.Fatalf("expected %d lines, got %d", len(sampleResult.Lines), len(document.Lines))
	}
}

func TestXMLRendererCarriesTotals(t *testing.T) {
	renderer, err := output.NewRenderer(types.FormatXML, false)
	if err != nil {
		t.Fatalf("NewRenderer error: %v", err)
	}
	var buffer bytes.Buffer
	if renderErr := renderer.Render(&buffer, rootPath, sampleResult); renderErr != nil {
		t.Fatalf("Render error: %v", renderErr)
	}
	if !strings.HasPrefix(buffer.String(), xml.Header) {
		t.Fatalf("expected xml header, got %q", buffer.String())
	}
	var document types.TreeDocument
	if decodeErr := xml.Unmarshal([]byte(strings.TrimPrefix(buffer.String(), xml.Header)), &document); decodeErr != nil {
		t.Fatalf("decode: %v", decodeErr)
	}
	if document.TotalBytes != 1536 || len(document.Lines) != len(sampleResult.Lines) {
		t.Fatalf("unexpected document %+v", document)
	}
}

func TestNewRendererRejectsUnknownFormat(t *testing.T) {
	if _, err := output.NewRenderer("yaml", false); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
	if output.IsSupportedFormat("yaml") {
		t.Fatalf("yaml must not be supported")
	}
}

func TestNewTreeDocumentNeverHasNilLines(t *testing.T) {
	document := output.NewTreeDocument(rootPath, types.RenderResult{})
	if document.Lines == nil {
		t.Fatalf("expected empty, non-nil lines")
	}
	if document.TotalSize != "0.0B" {
		t.Fatalf("expected 0.0B, got %s", document.TotalSize)
	}
}
