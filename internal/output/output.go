// Package output writes a rendered tree in raw, json or xml form.
package output

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/temirov/sizetree/internal/types"
	"github.com/temirov/sizetree/internal/utils"
)

const (
	indentPrefix = ""
	indentSpacer = "  "

	xmlHeader = xml.Header

	lineTerminator  = "\n"
	moreItemsSuffix = " more items"

	invalidFormatMessage = "unsupported output format '%s'"
)

// Renderer writes one rendered tree to writer as a single blob.
type Renderer interface {
	Render(writer io.Writer, rootPath string, result types.RenderResult) error
}

// NewRenderer returns the renderer for format. colorize only affects raw output.
func NewRenderer(format string, colorize bool) (Renderer, error) {
	switch format {
	case types.FormatRaw:
		return rawRenderer{colorize: colorize}, nil
	case types.FormatJSON:
		return jsonRenderer{}, nil
	case types.FormatXML:
		return xmlRenderer{}, nil
	default:
		return nil, fmt.Errorf(invalidFormatMessage, format)
	}
}

// IsSupportedFormat reports whether the provided format is recognized.
func IsSupportedFormat(format string) bool {
	switch format {
	case types.FormatRaw, types.FormatJSON, types.FormatXML:
		return true
	default:
		return false
	}
}

// FormatRaw joins the rendered lines, each terminated by a newline.
func FormatRaw(result types.RenderResult) string {
	var builder strings.Builder
	for _, line := range result.Lines {
		builder.WriteString(line)
		builder.WriteString(lineTerminator)
	}
	return builder.String()
}

// NewTreeDocument wraps a render result for structured output.
func NewTreeDocument(rootPath string, result types.RenderResult) types.TreeDocument {
	lines := result.Lines
	if lines == nil {
		lines = []string{}
	}
	return types.TreeDocument{
		Path:       rootPath,
		TotalBytes: result.TotalSize,
		TotalSize:  utils.FormatBinarySize(result.TotalSize),
		Lines:      lines,
	}
}

// RenderJSON marshals the tree document as indented JSON.
func RenderJSON(document types.TreeDocument) (string, error) {
	encoded, jsonEncodeError := json.MarshalIndent(document, indentPrefix, indentSpacer)
	return string(encoded), jsonEncodeError
}

// RenderXML marshals the tree document as indented XML with the standard header.
func RenderXML(document types.TreeDocument) (string, error) {
	encoded, xmlMarshalError := xml.MarshalIndent(document, indentPrefix, indentSpacer)
	if xmlMarshalError != nil {
		return "", xmlMarshalError
	}
	return xmlHeader + string(encoded), nil
}

type rawRenderer struct {
	colorize bool
}

func (renderer rawRenderer) Render(writer io.Writer, rootPath string, result types.RenderResult) error {
	if !renderer.colorize {
		_, writeError := io.WriteString(writer, FormatRaw(result))
		return writeError
	}
	inaccessible := color.New(color.FgRed).SprintFunc()
	truncated := color.New(color.FgYellow).SprintFunc()
	var builder strings.Builder
	for _, line := range result.Lines {
		switch {
		case strings.Contains(line, types.GlyphInaccessible):
			builder.WriteString(inaccessible(line))
		case strings.HasSuffix(line, types.TooDeepMarker), strings.HasSuffix(line, moreItemsSuffix):
			builder.WriteString(truncated(line))
		default:
			builder.WriteString(line)
		}
		builder.WriteString(lineTerminator)
	}
	_, writeError := io.WriteString(writer, builder.String())
	return writeError
}

type jsonRenderer struct{}

func (jsonRenderer) Render(writer io.Writer, rootPath string, result types.RenderResult) error {
	encoded, renderError := RenderJSON(NewTreeDocument(rootPath, result))
	if renderError != nil {
		return fmt.Errorf("error generating JSON output: %w", renderError)
	}
	_, writeError := io.WriteString(writer, encoded+lineTerminator)
	return writeError
}

type xmlRenderer struct{}

func (xmlRenderer) Render(writer io.Writer, rootPath string, result types.RenderResult) error {
	encoded, renderError := RenderXML(NewTreeDocument(rootPath, result))
	if renderError != nil {
		return fmt.Errorf("error generating XML output: %w", renderError)
	}
	_, writeError := io.WriteString(writer, encoded+lineTerminator)
	return writeError
}
