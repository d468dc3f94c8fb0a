package vfs

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

type StorageUsage struct {
	Used       int64   `json:"used"`
	Total      int64   `json:"total"`
	Available  int64   `json:"available"`
	Percentage float64 `json:"percentage"`
}

func (usage StorageUsage) String() string {
	return fmt.Sprintf("%s / %s (%.1f%%)",
		humanize.IBytes(uint64(usage.Used)),
		humanize.IBytes(uint64(usage.Total)),
		usage.Percentage,
	)
}

// Usage sums the sizes of all files against limit bytes
func (store *Store) Usage(limit int64) StorageUsage {
	store.mu.RLock()
	defer store.mu.RUnlock()

	var used int64
	for _, node := range store.nodes {
		used += node.Size()
	}

	usage := StorageUsage{
		Used:      used,
		Total:     limit,
		Available: max(limit-used, 0),
	}
	if limit > 0 {
		usage.Percentage = float64(used) / float64(limit) * 100
	}
	return usage
}
