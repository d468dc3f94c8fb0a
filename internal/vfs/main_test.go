package vfs

import (
	"strings"
	"testing"
	"time"

	"github.com/michael-freling/file-manager/internal/xlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testStartTime = time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)

type tester struct {
	clock *MockClock
	now   time.Time
}

// newTester returns a tester whose clock advances a second on every call
func newTester(t *testing.T) *tester {
	t.Helper()

	tester := &tester{
		clock: NewMockClock(gomock.NewController(t)),
		now:   testStartTime,
	}
	tester.clock.EXPECT().Now().DoAndReturn(func() time.Time {
		tester.now = tester.now.Add(time.Second)
		return tester.now
	}).AnyTimes()
	return tester
}

func (tester *tester) newStore(t *testing.T, seed []Node) *Store {
	t.Helper()

	store, err := NewStore(xlog.Nop(), seed, WithClock(tester.clock))
	require.NoError(t, err)
	return store
}

func folder(id uint, parentID uint, name string) Node {
	return NewFolderNode(id, parentID, name, FolderAttributes{})
}

func file(id uint, parentID uint, name string, size int64) Node {
	_, extension := splitExtension(name)
	return NewFileNode(id, parentID, name, FileAttributes{
		Type: strings.TrimPrefix(extension, "."),
		Size: size,
	})
}

// testSeed is
//
//	/Documents
//	/Documents/report.pdf
//	/Documents/Projects
//	/Documents/Projects/plan.docx
//	/Pictures
//	/Pictures/cat.png
//	/readme.txt
func testSeed() []Node {
	return []Node{
		folder(1, RootID, "Documents"),
		file(2, 1, "report.pdf", 500),
		folder(3, 1, "Projects"),
		file(4, 3, "plan.docx", 1200),
		folder(5, RootID, "Pictures"),
		file(6, 5, "cat.png", 2048),
		file(7, RootID, "readme.txt", 100),
	}
}

func pathsByID(nodes []Node) map[uint]string {
	result := make(map[uint]string, len(nodes))
	for _, node := range nodes {
		result[node.ID] = node.Path
	}
	return result
}

func assertPathInvariant(t *testing.T, store *Store) {
	t.Helper()

	nodes := store.List()
	paths := pathsByID(nodes)
	siblings := make(map[uint]map[string]struct{})
	for _, node := range nodes {
		parentPath := ""
		if node.ParentID != RootID {
			var ok bool
			parentPath, ok = paths[node.ParentID]
			require.True(t, ok, "parent %d of %d", node.ParentID, node.ID)
		}
		assert.Equal(t, parentPath+"/"+node.Name, node.Path)

		if _, ok := siblings[node.ParentID]; !ok {
			siblings[node.ParentID] = make(map[string]struct{})
		}
		assert.NotContains(t, siblings[node.ParentID], node.Name)
		siblings[node.ParentID][node.Name] = struct{}{}
	}
}
