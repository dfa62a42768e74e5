// Package commands contains the core logic for rendering directory trees.
package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/sizetree/internal/types"
	"github.com/temirov/sizetree/internal/utils"
)

const (
	// errorAbsolutePathFormat is used when the absolute path cannot be determined.
	errorAbsolutePathFormat = "getting absolute path for %s: %w"

	// errorReadDirectoryFormat is used when a directory cannot be listed for a reason other than permissions.
	errorReadDirectoryFormat = "reading directory %s: %w"

	// errorStatPathFormat is used when entry metadata cannot be retrieved.
	errorStatPathFormat = "stat %s: %w"

	// errorCloseDirectoryFormat is used when a listed directory handle fails to close.
	errorCloseDirectoryFormat = "closing directory %s: %w"

	labelWithSizeFormat = "%s [%s]"
)

// Render builds the complete listing for rootDirectoryPath. Nothing is written
// anywhere; the caller decides how to emit RenderResult.Lines.
func (treeRenderer *TreeRenderer) Render(rootDirectoryPath string) (types.RenderResult, error) {
	absoluteRootPath, absolutePathError := filepath.Abs(rootDirectoryPath)
	if absolutePathError != nil {
		return types.RenderResult{}, fmt.Errorf(errorAbsolutePathFormat, rootDirectoryPath, absolutePathError)
	}
	walk := treeWalk{
		configuration:     treeRenderer.configuration,
		rootDirectoryPath: filepath.Clean(absoluteRootPath),
	}
	return walk.render(walk.rootDirectoryPath, 0, nil, false)
}

// render produces the result for one directory. ancestorIsLast holds, per
// ancestor level, whether that ancestor was the last entry of its parent.
// alreadyTruncated suppresses every line below the header while sizes are still counted.
func (walk treeWalk) render(directoryPath string, depth int, ancestorIsLast []bool, alreadyTruncated bool) (types.RenderResult, error) {
	indentation := buildIndentation(ancestorIsLast)
	var result types.RenderResult

	entries, listError := walk.listDirectory(directoryPath)
	inaccessible := false
	if listError != nil {
		if !errors.Is(listError, fs.ErrPermission) {
			return types.RenderResult{}, listError
		}
		inaccessible = true
	}

	if !inaccessible {
		if !alreadyTruncated && depth >= walk.configuration.MaxDepth {
			result.Lines = append(result.Lines, indentation+types.TooDeepMarker)
			if walk.configuration.ForceComplete {
				sizeOnly, sizeError := walk.renderEntries(directoryPath, entries, depth, ancestorIsLast, true)
				if sizeError != nil {
					return types.RenderResult{}, sizeError
				}
				result.TotalSize = sizeOnly.TotalSize
			}
		} else {
			entriesResult, entriesError := walk.renderEntries(directoryPath, entries, depth, ancestorIsLast, alreadyTruncated)
			if entriesError != nil {
				return types.RenderResult{}, entriesError
			}
			result.TotalSize = entriesResult.TotalSize
			result.Lines = append(result.Lines, entriesResult.Lines...)
		}
	}

	headerGlyph := types.GlyphInspected
	if inaccessible {
		headerGlyph = types.GlyphInaccessible
	}
	header := headerGlyph + " " + walk.label(filepath.Base(directoryPath), result.TotalSize)
	result.Lines = append([]string{header}, result.Lines...)
	return result, nil
}

// renderEntries folds every listed entry of one directory into a single result.
func (walk treeWalk) renderEntries(directoryPath string, entries []fs.DirEntry, depth int, ancestorIsLast []bool, suppressed bool) (types.RenderResult, error) {
	indentation := buildIndentation(ancestorIsLast)
	var result types.RenderResult
	entryCount := len(entries)

	for entryIndex, entry := range entries {
		isLast := entryIndex == entryCount-1
		overflowed := entryIndex >= walk.configuration.MaxChildren
		connector := types.ConnectorMiddle
		if isLast || overflowed {
			connector = types.ConnectorLast
		}

		if overflowed && !suppressed {
			result.Lines = append(result.Lines, indentation+connector+fmt.Sprintf(types.MoreItemsFormat, entryCount-entryIndex))
			if !walk.configuration.ForceComplete {
				break
			}
			suppressed = true
		}

		entryPath := filepath.Join(directoryPath, entry.Name())
		entryInfo, statError := os.Stat(entryPath)
		if statError != nil {
			return types.RenderResult{}, fmt.Errorf(errorStatPathFormat, entryPath, statError)
		}

		switch {
		case entryInfo.Mode().IsRegular():
			result.TotalSize += entryInfo.Size()
			if !suppressed {
				result.Lines = append(result.Lines, indentation+connector+types.GlyphFile+" "+walk.label(entry.Name(), entryInfo.Size()))
			}
		case entryInfo.IsDir():
			childResult, childError := walk.render(entryPath, depth+1, extendAncestors(ancestorIsLast, isLast), suppressed)
			if childError != nil {
				return types.RenderResult{}, childError
			}
			result.TotalSize += childResult.TotalSize
			if !suppressed {
				result.Lines = append(result.Lines, indentation+connector+childResult.Lines[0])
				result.Lines = append(result.Lines, childResult.Lines[1:]...)
			}
		default:
			if !suppressed {
				result.Lines = append(result.Lines, indentation+connector+types.GlyphFile+" "+walk.label(entry.Name(), 0))
			}
		}
	}

	return result, nil
}

// listDirectory returns the entries of directoryPath in the order the
// filesystem yields them, minus excluded paths. os.ReadDir is avoided
// because it sorts by name.
func (walk treeWalk) listDirectory(directoryPath string) (entries []fs.DirEntry, err error) {
	directoryHandle, openError := os.Open(directoryPath)
	if openError != nil {
		if errors.Is(openError, fs.ErrPermission) {
			return nil, openError
		}
		return nil, fmt.Errorf(errorReadDirectoryFormat, directoryPath, openError)
	}
	defer func() {
		if closeError := directoryHandle.Close(); closeError != nil && err == nil {
			err = fmt.Errorf(errorCloseDirectoryFormat, directoryPath, closeError)
		}
	}()

	listedEntries, readError := directoryHandle.ReadDir(-1)
	if readError != nil {
		if errors.Is(readError, fs.ErrPermission) {
			return nil, readError
		}
		return nil, fmt.Errorf(errorReadDirectoryFormat, directoryPath, readError)
	}
	if len(walk.configuration.ExcludePatterns) == 0 {
		return listedEntries, nil
	}

	keptEntries := listedEntries[:0]
	for _, listedEntry := range listedEntries {
		relativePath := utils.RelativePathOrSelf(filepath.Join(directoryPath, listedEntry.Name()), walk.rootDirectoryPath)
		if utils.ShouldIgnoreByPath(relativePath, walk.configuration.ExcludePatterns) {
			continue
		}
		keptEntries = append(keptEntries, listedEntry)
	}
	return keptEntries, nil
}

// label renders a node name, annotated with its size when sizes are shown.
func (walk treeWalk) label(name string, sizeBytes int64) string {
	if !walk.configuration.ShowSizes {
		return name
	}
	return fmt.Sprintf(labelWithSizeFormat, name, utils.FormatBinarySize(sizeBytes))
}

func buildIndentation(ancestorIsLast []bool) string {
	var builder strings.Builder
	for _, isLast := range ancestorIsLast {
		if isLast {
			builder.WriteString(types.IndentBlank)
		} else {
			builder.WriteString(types.IndentContinue)
		}
	}
	return builder.String()
}

// extendAncestors copies ancestorIsLast so sibling calls never share a backing array.
func extendAncestors(ancestorIsLast []bool, isLast bool) []bool {
	extended := make([]bool, len(ancestorIsLast), len(ancestorIsLast)+1)
	copy(extended, ancestorIsLast)
	return append(extended, isLast)
}
