package commands

import "github.com/temirov/sizetree/internal/types"

// TreeRenderer renders a directory subtree using one immutable configuration.
type TreeRenderer struct {
	configuration types.RenderConfig
}

// NewTreeRenderer returns a renderer bound to configuration.
func NewTreeRenderer(configuration types.RenderConfig) *TreeRenderer {
	return &TreeRenderer{configuration: configuration}
}

// treeWalk carries the state shared by every recursive step of one Render call.
type treeWalk struct {
	configuration     types.RenderConfig
	rootDirectoryPath string
}
