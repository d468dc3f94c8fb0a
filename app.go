package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/michael-freling/file-manager/internal/config"
	"github.com/michael-freling/file-manager/internal/db"
	"github.com/michael-freling/file-manager/internal/frontend"
	"github.com/michael-freling/file-manager/internal/render"
	"github.com/michael-freling/file-manager/internal/seed"
	"github.com/michael-freling/file-manager/internal/team"
	"github.com/michael-freling/file-manager/internal/vfs"
)

// app holds the services shared by the commands
type app struct {
	logger      *slog.Logger
	actor       team.Actor
	store       *vfs.Store
	registry    *team.Registry
	service     *frontend.FileService
	teamService *frontend.TeamService
	printer     *render.Printer
}

func newApp(ctx context.Context, conf config.Config, logger *slog.Logger, out io.Writer, printerOptions ...render.PrinterOption) (*app, error) {
	document := seed.Default()
	if conf.SeedFile != "" {
		loaded, err := seed.LoadFile(ctx, conf.SeedFile, db.LoggerOptionFromConfig(conf, logger))
		if err != nil {
			return nil, fmt.Errorf("seed.LoadFile: %w", err)
		}
		document = loaded
	}
	logger.Debug("Loaded seed data",
		"seedFile", conf.SeedFile,
		"files", len(document.Files),
		"users", len(document.Users),
		"teams", len(document.Teams),
	)

	store, err := vfs.NewStore(logger, document.Nodes())
	if err != nil {
		return nil, fmt.Errorf("vfs.NewStore: %w", err)
	}
	registry, err := document.Registry()
	if err != nil {
		return nil, fmt.Errorf("document.Registry: %w", err)
	}

	return &app{
		logger: logger,
		actor: team.Actor{
			UserID: conf.UserID,
			TeamID: conf.TeamID,
		},
		store:       store,
		registry:    registry,
		service:     frontend.NewFileService(logger, store, registry, conf.StorageLimit),
		teamService: frontend.NewTeamService(logger, registry),
		printer:     render.NewPrinter(out, printerOptions...),
	}, nil
}

func (app *app) context(ctx context.Context) context.Context {
	return team.WithActor(ctx, app.actor)
}

// folderID resolves a path of a folder. "/" is the root
func (app *app) folderID(folderPath string) (uint, error) {
	folderPath = vfs.CleanPath(folderPath)
	if folderPath == "/" {
		return vfs.RootID, nil
	}
	node, err := app.store.GetByPath(folderPath)
	if err != nil {
		return 0, fmt.Errorf("store.GetByPath: %w", err)
	}
	if !node.IsFolder() {
		return 0, fmt.Errorf("%w: %s", vfs.ErrNotFolder, folderPath)
	}
	return node.ID, nil
}

func (app *app) nodeID(nodePath string) (uint, error) {
	node, err := app.store.GetByPath(nodePath)
	if err != nil {
		return 0, fmt.Errorf("store.GetByPath: %w", err)
	}
	return node.ID, nil
}
