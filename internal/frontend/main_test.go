package frontend

import (
	"context"
	"log/slog"
	"testing"

	"github.com/michael-freling/file-manager/internal/seed"
	"github.com/michael-freling/file-manager/internal/team"
	"github.com/michael-freling/file-manager/internal/vfs"
	"github.com/michael-freling/file-manager/internal/xlog"
	"github.com/stretchr/testify/require"
)

const testStorageLimit int64 = 1 << 30

// Users of seed.Default() in the team 1
var (
	owner  = team.Actor{UserID: 1, TeamID: 1}
	admin  = team.Actor{UserID: 2, TeamID: 1}
	member = team.Actor{UserID: 3, TeamID: 1}
	viewer = team.Actor{UserID: 4, TeamID: 1}

	// outsider isn't a member of the team 2
	outsider = team.Actor{UserID: 2, TeamID: 2}
)

type tester struct {
	logger   *slog.Logger
	store    *vfs.Store
	registry *team.Registry
}

func newTester(t *testing.T) tester {
	t.Helper()

	logger := xlog.Nop()
	document := seed.Default()
	store, err := vfs.NewStore(logger, document.Nodes())
	require.NoError(t, err)
	registry, err := document.Registry()
	require.NoError(t, err)

	return tester{
		logger:   logger,
		store:    store,
		registry: registry,
	}
}

func (tester tester) getFileService() *FileService {
	return NewFileService(tester.logger, tester.store, tester.registry, testStorageLimit)
}

func (tester tester) getTeamService() *TeamService {
	return NewTeamService(tester.logger, tester.registry)
}

func withActor(actor team.Actor) context.Context {
	return team.WithActor(context.Background(), actor)
}

func fileIDs(files []File) []uint {
	result := make([]uint, 0, len(files))
	for _, file := range files {
		result = append(result, file.ID)
	}
	return result
}
