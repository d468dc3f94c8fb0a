package vfs

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

type SortKey string

const (
	SortKeyName     SortKey = "name"
	SortKeySize     SortKey = "size"
	SortKeyModified SortKey = "modified"
)

type SortOrder string

const (
	SortOrderAscending  SortOrder = "asc"
	SortOrderDescending SortOrder = "desc"
)

type SortOptions struct {
	Key   SortKey
	Order SortOrder
}

func ParseSortOptions(key string, order string) (SortOptions, error) {
	options := SortOptions{
		Key:   SortKey(strings.ToLower(key)),
		Order: SortOrder(strings.ToLower(order)),
	}
	switch options.Key {
	case "":
		options.Key = SortKeyName
	case SortKeyName, SortKeySize, SortKeyModified:
	default:
		return SortOptions{}, fmt.Errorf("%w: sort key %q", ErrInvalidArgument, key)
	}
	switch options.Order {
	case "":
		options.Order = SortOrderAscending
	case SortOrderAscending, SortOrderDescending:
	default:
		return SortOptions{}, fmt.Errorf("%w: sort order %q", ErrInvalidArgument, order)
	}
	return options, nil
}

func (options SortOptions) compare(a, b Node) int {
	switch options.Key {
	case SortKeySize:
		return cmp.Compare(a.Size(), b.Size())
	case SortKeyModified:
		return a.Modified.Compare(b.Modified)
	default:
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	}
}

// Sort returns a sorted copy of nodes. Folders come before files regardless of the order,
// and nodes which compare equal keep their original order
func Sort(nodes []Node, options SortOptions) []Node {
	result := slices.Clone(nodes)
	slices.SortStableFunc(result, func(a, b Node) int {
		if a.IsFolder() != b.IsFolder() {
			if a.IsFolder() {
				return -1
			}
			return 1
		}
		compared := options.compare(a, b)
		if options.Order == SortOrderDescending {
			return -compared
		}
		return compared
	})
	return result
}
