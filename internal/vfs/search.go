package vfs

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DateRange is an inclusive range of modified times. A nil bound is unbounded
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

func (dateRange DateRange) contains(t time.Time) bool {
	if dateRange.Start != nil && t.Before(*dateRange.Start) {
		return false
	}
	if dateRange.End != nil && t.After(*dateRange.End) {
		return false
	}
	return true
}

// SizeRange is an inclusive range of file sizes in bytes. A nil bound is unbounded
type SizeRange struct {
	Min *int64
	Max *int64
}

func (sizeRange SizeRange) contains(size int64) bool {
	if sizeRange.Min != nil && size < *sizeRange.Min {
		return false
	}
	if sizeRange.Max != nil && size > *sizeRange.Max {
		return false
	}
	return true
}

type SearchFilters struct {
	DateRange DateRange
	SizeRange SizeRange
}

// IsEmpty reports whether no bound is set
func (filters SearchFilters) IsEmpty() bool {
	return filters.DateRange.Start == nil &&
		filters.DateRange.End == nil &&
		filters.SizeRange.Min == nil &&
		filters.SizeRange.Max == nil
}

func (filters SearchFilters) Validate() error {
	sizeRange := filters.SizeRange
	if err := validation.ValidateStruct(&sizeRange,
		validation.Field(&sizeRange.Min, validation.Min(int64(0))),
		validation.Field(&sizeRange.Max, validation.Min(int64(0))),
	); err != nil {
		return fmt.Errorf("%w: size range %w", ErrInvalidArgument, err)
	}
	if sizeRange.Min != nil && sizeRange.Max != nil && *sizeRange.Min > *sizeRange.Max {
		return fmt.Errorf("%w: minimum size %d is larger than maximum size %d", ErrInvalidArgument, *sizeRange.Min, *sizeRange.Max)
	}

	dateRange := filters.DateRange
	if dateRange.Start != nil && dateRange.End != nil && dateRange.Start.After(*dateRange.End) {
		return fmt.Errorf("%w: start %s is after end %s", ErrInvalidArgument,
			dateRange.Start.Format(time.RFC3339),
			dateRange.End.Format(time.RFC3339),
		)
	}
	return nil
}

func (filters SearchFilters) match(node *Node) bool {
	if !filters.DateRange.contains(node.Modified) {
		return false
	}
	// folders have no size of their own
	if node.IsFolder() {
		return true
	}
	return filters.SizeRange.contains(node.File.Size)
}

// Search returns the nodes whose name contains query case-insensitively and which match filters.
// An empty query matches every node
func (store *Store) Search(query string, filters SearchFilters) ([]Node, error) {
	if err := filters.Validate(); err != nil {
		return nil, err
	}
	query = strings.ToLower(query)

	store.mu.RLock()
	defer store.mu.RUnlock()

	result := make([]Node, 0)
	for _, id := range store.order {
		node := store.nodes[id]
		if !strings.Contains(strings.ToLower(node.Name), query) {
			continue
		}
		if !filters.match(node) {
			continue
		}
		result = append(result, node.clone())
	}
	return result, nil
}
