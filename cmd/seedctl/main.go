package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/michael-freling/file-manager/internal/db"
	"github.com/michael-freling/file-manager/internal/seed"
	"github.com/michael-freling/file-manager/internal/vfs"
	"github.com/michael-freling/file-manager/internal/xerrors"
	"github.com/spf13/cobra"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := newRootCommand(logger).Execute(); err != nil {
		logger.Error("runMain", "error", err)
		os.Exit(1)
	}
	os.Exit(0)
}

// validate checks that a document can be loaded into a store and a registry
func validate(logger *slog.Logger, document seed.Document) error {
	if _, err := vfs.NewStore(logger, document.Nodes()); err != nil {
		return fmt.Errorf("vfs.NewStore: %w", err)
	}
	if _, err := document.Registry(); err != nil {
		return fmt.Errorf("document.Registry: %w", err)
	}
	return nil
}

// listFolder prints the records under a folder of a seed database without loading the whole document
func listFolder(ctx context.Context, out io.Writer, dbClient *db.Client, folderID uint) error {
	if folderID != db.RootFolderID {
		folder, err := db.FindByValue(ctx, dbClient, db.File{ID: folderID})
		if errors.Is(err, db.ErrRecordNotFound) {
			return fmt.Errorf("%w: folder %d", vfs.ErrNotFound, folderID)
		}
		if err != nil {
			return fmt.Errorf("db.FindByValue: %w", err)
		}
		if folder.Type != db.FileTypeFolder {
			return fmt.Errorf("%w: %d is a file", vfs.ErrNotFolder, folderID)
		}
	}

	files, err := dbClient.File().FindByParentID(ctx, folderID)
	if err != nil {
		return fmt.Errorf("File().FindByParentID: %w", err)
	}
	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tNAME\tTYPE\tSIZE")
	for _, file := range files {
		fileType, size := file.ContentType, humanize.IBytes(uint64(file.Size))
		if file.Type == db.FileTypeFolder {
			fileType, size = "folder", "-"
		}
		fmt.Fprintf(writer, "%d\t%s\t%s\t%s\n", file.ID, file.Name, fileType, size)
	}
	return writer.Flush()
}

func newRootCommand(logger *slog.Logger) *cobra.Command {
	rootCommand := &cobra.Command{
		Use:          "seedctl",
		Short:        "Manage seed files of file-manager",
		SilenceUsage: true,
	}

	var verbose bool
	rootCommand.PersistentFlags().BoolVar(&verbose, "verbose", false, "log SQL queries")
	dbOptions := func() []db.ClientOption {
		if verbose {
			return []db.ClientOption{db.WithGormLogger(logger)}
		}
		return []db.ClientOption{db.WithNopLogger()}
	}

	convertCommand := &cobra.Command{
		Use:   "convert [source] [destination]",
		Short: "Convert a seed file between JSON, YAML and SQLite",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, destination := args[0], args[1]

			document, err := seed.LoadFile(cmd.Context(), source, dbOptions()...)
			if err != nil {
				return fmt.Errorf("seed.LoadFile: %w", err)
			}
			if err := validate(logger, document); err != nil {
				return fmt.Errorf("validate: %w", err)
			}
			if err := seed.WriteFile(cmd.Context(), destination, document, dbOptions()...); err != nil {
				return fmt.Errorf("seed.WriteFile: %w", err)
			}
			logger.Info("Converted a seed file",
				"source", source,
				"destination", destination,
				"files", len(document.Files),
			)
			return nil
		},
	}

	defaultCommand := &cobra.Command{
		Use:   "default [destination]",
		Short: "Write the built-in seed data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := seed.WriteFile(cmd.Context(), args[0], seed.Default(), dbOptions()...); err != nil {
				return fmt.Errorf("seed.WriteFile: %w", err)
			}
			logger.Info("Wrote the built-in seed data", "destination", args[0])
			return nil
		},
	}

	validateCommand := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a seed file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			document, err := seed.LoadFile(cmd.Context(), args[0], dbOptions()...)
			if err != nil {
				return fmt.Errorf("seed.LoadFile: %w", err)
			}
			if err := validate(logger, document); err != nil {
				return fmt.Errorf("validate: %w", err)
			}
			logger.Info("The seed file is valid",
				"file", args[0],
				"files", len(document.Files),
				"users", len(document.Users),
				"teams", len(document.Teams),
			)
			return nil
		},
	}

	lsCommand := &cobra.Command{
		Use:   "ls [database] [folder id]",
		Short: "List the files in a folder of a SQLite seed file. The default folder is the root",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := seed.FormatFromPath(args[0])
			if err != nil {
				return err
			}
			if format != seed.FormatSQLite {
				return fmt.Errorf("%w: %s is not a SQLite seed file", xerrors.ErrInvalidArgument, args[0])
			}
			folderID := db.RootFolderID
			if len(args) > 1 {
				id, err := strconv.ParseUint(args[1], 10, 0)
				if err != nil {
					return fmt.Errorf("%w: folder id %q: %w", xerrors.ErrInvalidArgument, args[1], err)
				}
				folderID = uint(id)
			}
			if _, err := os.Stat(args[0]); err != nil {
				return fmt.Errorf("os.Stat: %w", err)
			}

			dbClient, err := db.NewClient(db.DSNFromFilePath(args[0]), dbOptions()...)
			if err != nil {
				return fmt.Errorf("db.NewClient: %w", err)
			}
			defer dbClient.Close()

			return listFolder(cmd.Context(), cmd.OutOrStdout(), dbClient, folderID)
		},
	}

	rootCommand.AddCommand(convertCommand, defaultCommand, validateCommand, lsCommand)
	return rootCommand
}
