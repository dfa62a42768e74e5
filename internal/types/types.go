// Package types defines every cross‑package data structure used by the sizetree CLI.
package types

import "encoding/xml"

const (
	FormatRaw  = "raw"
	FormatJSON = "json"
	FormatXML  = "xml"

	DefaultMaxDepth    = 10
	DefaultMaxChildren = 20
	DefaultRootPath    = "."
)

// Glyphs used in rendered lines.
const (
	GlyphInspected    = "◎"
	GlyphInaccessible = "ⓧ"
	GlyphFile         = "○"
	ConnectorMiddle   = "├"
	ConnectorLast     = "└"
	IndentContinue    = "│"
	IndentBlank       = "  "
	TooDeepMarker     = "└ ...too deep"
	MoreItemsFormat   = "...%d more items"
)

// ValidatedPath is an absolute input path that already passed existence checks.
type ValidatedPath struct {
	AbsolutePath string
	IsDir        bool
}

// RenderConfig holds the immutable settings for a single render.
type RenderConfig struct {
	// MaxDepth is the depth at which truncation begins.
	MaxDepth int
	// MaxChildren is the number of entries listed per directory before truncation.
	MaxChildren int
	// ShowSizes annotates every label with a human-readable size.
	ShowSizes bool
	// ForceComplete keeps traversing truncated branches so sizes stay complete.
	ForceComplete bool
	// ExcludePatterns drops matching root-relative paths from traversal entirely.
	ExcludePatterns []string
}

// DefaultRenderConfig returns the configuration used when nothing is overridden.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		MaxDepth:    DefaultMaxDepth,
		MaxChildren: DefaultMaxChildren,
	}
}

// RenderResult is the folded output of one node and its visible descendants.
type RenderResult struct {
	TotalSize int64
	Lines     []string
}

// TreeDocument is the structured form of a rendered tree used by json and xml output.
type TreeDocument struct {
	XMLName    xml.Name `json:"-" xml:"tree"`
	Path       string   `json:"path" xml:"path"`
	TotalBytes int64    `json:"totalBytes" xml:"totalBytes"`
	TotalSize  string   `json:"totalSize" xml:"totalSize"`
	Lines      []string `json:"lines" xml:"lines>line"`
}
