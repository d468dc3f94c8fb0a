package vfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_Usage(t *testing.T) {
	tester := newTester(t)
	store := tester.newStore(t, testSeed())

	testCases := []struct {
		name       string
		limit      int64
		want       StorageUsage
		wantString string
	}{
		{
			name:  "under the limit",
			limit: 7696,
			want: StorageUsage{
				Used:       3848,
				Total:      7696,
				Available:  3848,
				Percentage: 50,
			},
			wantString: "3.8 KiB / 7.5 KiB (50.0%)",
		},
		{
			name:  "over the limit",
			limit: 1924,
			want: StorageUsage{
				Used:       3848,
				Total:      1924,
				Available:  0,
				Percentage: 200,
			},
			wantString: "3.8 KiB / 1.9 KiB (200.0%)",
		},
		{
			name:  "no limit",
			limit: 0,
			want: StorageUsage{
				Used: 3848,
			},
			wantString: "3.8 KiB / 0 B (0.0%)",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := store.Usage(tc.limit)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantString, got.String())
		})
	}
}

func TestPaths(t *testing.T) {
	assert.Equal(t, "/", ParentPath("/Documents"))
	assert.Equal(t, "/Documents", ParentPath("/Documents/report.pdf"))
	assert.Equal(t, "/", ParentPath("/"))
	assert.Equal(t, "/", CleanPath(""))
	assert.Equal(t, "/Documents", CleanPath("Documents/"))
	assert.Equal(t, "/a/b", CleanPath("//a//b/"))
}
