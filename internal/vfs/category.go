package vfs

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/michael-freling/file-manager/internal/xslices"
)

type Category string

const (
	CategoryAll       Category = "all"
	CategoryImages    Category = "images"
	CategoryDocuments Category = "documents"
	CategoryVideos    Category = "videos"
	CategoryAudio     Category = "audio"
	CategoryArchives  Category = "archives"
	CategoryOther     Category = "other"
)

var categoryExtensions = map[Category][]string{
	CategoryImages:    {"jpg", "jpeg", "png", "gif", "bmp", "svg", "webp", "ico", "tiff"},
	CategoryDocuments: {"pdf", "doc", "docx", "txt", "rtf", "odt", "xls", "xlsx", "ppt", "pptx", "csv"},
	CategoryVideos:    {"mp4", "avi", "mov", "wmv", "flv", "webm", "mkv", "m4v", "3gp"},
	CategoryAudio:     {"mp3", "wav", "flac", "aac", "ogg", "m4a", "wma"},
	CategoryArchives:  {"zip", "rar", "7z", "tar", "gz", "bz2", "xz"},
}

var extensionCategories = func() map[string]Category {
	result := make(map[string]Category)
	for category, extensions := range categoryExtensions {
		for _, extension := range extensions {
			result[extension] = category
		}
	}
	return result
}()

// Categorize maps the extension of a file name to a category.
// A name without a dot is treated as an extension itself, so a type like "pdf" works too
func Categorize(name string) Category {
	extension := strings.ToLower(name[strings.LastIndex(name, ".")+1:])
	if category, ok := extensionCategories[extension]; ok {
		return category
	}
	return CategoryOther
}

// CategoryOf categorizes a file by its type, falling back to its name
func CategoryOf(node Node) Category {
	if node.File != nil && node.File.Type != "" {
		if category := Categorize(node.File.Type); category != CategoryOther {
			return category
		}
	}
	return Categorize(node.Name)
}

// FilterByCategory keeps the files in category. Folders are always kept
func FilterByCategory(nodes []Node, category Category) []Node {
	if category == CategoryAll || category == "" {
		return nodes
	}
	return xslices.Filter(nodes, func(node Node) bool {
		return node.IsFolder() || CategoryOf(node) == category
	})
}

func ParseCategory(value string) (Category, error) {
	category := Category(strings.ToLower(strings.TrimSpace(value)))
	if category == "" {
		return CategoryAll, nil
	}
	if err := validation.Validate(category, validation.In(
		CategoryAll,
		CategoryImages,
		CategoryDocuments,
		CategoryVideos,
		CategoryAudio,
		CategoryArchives,
		CategoryOther,
	)); err != nil {
		return "", fmt.Errorf("%w: category %q %w", ErrInvalidArgument, value, err)
	}
	return category, nil
}
