package render

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/michael-freling/file-manager/internal/vfs"
)

const (
	branch     = "├── "
	lastBranch = "└── "
	indent     = "│   "
	lastIndent = "    "
)

// Tree prints trees with box-drawing lines. Folders are colored with their color tag
func (printer *Printer) Tree(trees []*vfs.TreeNode) {
	for _, tree := range trees {
		fmt.Fprintln(printer.out, printer.label(tree.Node))
		printer.children(tree.Children, "")
	}
}

func (printer *Printer) children(trees []*vfs.TreeNode, prefix string) {
	for index, tree := range trees {
		connector, childPrefix := branch, prefix+indent
		if index == len(trees)-1 {
			connector, childPrefix = lastBranch, prefix+lastIndent
		}
		fmt.Fprintln(printer.out, prefix+connector+printer.label(tree.Node))
		printer.children(tree.Children, childPrefix)
	}
}

func (printer *Printer) label(node vfs.Node) string {
	if node.IsFolder() {
		label := printer.folderName(node.Name, node.Color())
		if node.IsFavorite() {
			label += " *"
		}
		return label
	}
	return fmt.Sprintf("%s (%s)", node.Name, humanize.IBytes(uint64(node.Size())))
}
