package vfs

import (
	"path"
	"strings"
	"time"
)

const (
	// RootID is the parent ID of top-level nodes. The root itself isn't a node
	RootID uint = 0

	// MaxNameLength is the maximum number of characters in a node name
	MaxNameLength = 255

	separator = "/"
)

type Color string

const (
	ColorNone   Color = ""
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorPurple Color = "purple"
	ColorPink   Color = "pink"
	ColorOrange Color = "orange"
	ColorRed    Color = "red"
)

// Palette is the list of colors a folder can be tagged with
var Palette = []Color{
	ColorBlue,
	ColorGreen,
	ColorYellow,
	ColorPurple,
	ColorPink,
	ColorOrange,
	ColorRed,
}

type FolderAttributes struct {
	Color      Color `json:"color,omitempty" yaml:"color,omitempty"`
	IsFavorite bool  `json:"isFavorite" yaml:"isFavorite"`
}

type FileAttributes struct {
	// Type is a MIME-like category such as "pdf" or "image"
	Type string `json:"type" yaml:"type"`
	Size int64  `json:"size" yaml:"size"`
}

// Node is either a folder or a file. Exactly one of Folder and File is set.
type Node struct {
	ID       uint      `json:"id"`
	Name     string    `json:"name"`
	ParentID uint      `json:"parentId"`
	Path     string    `json:"path"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`

	Folder *FolderAttributes `json:"folder,omitempty"`
	File   *FileAttributes   `json:"file,omitempty"`
}

func NewFolderNode(id uint, parentID uint, name string, attributes FolderAttributes) Node {
	return Node{
		ID:       id,
		Name:     name,
		ParentID: parentID,
		Folder:   &attributes,
	}
}

func NewFileNode(id uint, parentID uint, name string, attributes FileAttributes) Node {
	return Node{
		ID:       id,
		Name:     name,
		ParentID: parentID,
		File:     &attributes,
	}
}

func (node Node) IsFolder() bool {
	return node.Folder != nil
}

// Size returns the size of a file in bytes. Folders report 0
func (node Node) Size() int64 {
	if node.File == nil {
		return 0
	}
	return node.File.Size
}

// Type returns the type of a file, or "folder"
func (node Node) Type() string {
	if node.File == nil {
		return "folder"
	}
	return node.File.Type
}

func (node Node) Color() Color {
	if node.Folder == nil {
		return ColorNone
	}
	return node.Folder.Color
}

func (node Node) IsFavorite() bool {
	return node.Folder != nil && node.Folder.IsFavorite
}

func (node Node) clone() Node {
	if node.Folder != nil {
		folder := *node.Folder
		node.Folder = &folder
	}
	if node.File != nil {
		file := *node.File
		node.File = &file
	}
	return node
}

// childPath returns a path of a child. The path of the root is an empty string
func childPath(parentPath string, name string) string {
	return parentPath + separator + name
}

// ParentPath returns the path of the parent folder of nodePath, "/" for top-level nodes
func ParentPath(nodePath string) string {
	index := strings.LastIndex(nodePath, separator)
	if index <= 0 {
		return separator
	}
	return nodePath[:index]
}

// CleanPath normalizes a path of a node. An empty path is the root
func CleanPath(nodePath string) string {
	if nodePath == "" {
		return separator
	}
	return path.Clean(separator + strings.TrimPrefix(nodePath, separator))
}

// splitExtension splits "report.final.pdf" into "report.final" and ".pdf".
// Names starting with a dot have no extension
func splitExtension(name string) (string, string) {
	index := strings.LastIndex(name, ".")
	if index <= 0 {
		return name, ""
	}
	return name[:index], name[index:]
}
