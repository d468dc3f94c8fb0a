package main

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/michael-freling/file-manager/internal/config"
	"github.com/michael-freling/file-manager/internal/frontend"
	"github.com/michael-freling/file-manager/internal/render"
	"github.com/michael-freling/file-manager/internal/vfs"
	"github.com/michael-freling/file-manager/internal/xerrors"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

type cli struct {
	in  io.Reader
	out io.Writer
	app *app

	configPath string
	userID     uint
	teamID     uint
	color      string
}

func newRootCommand(in io.Reader, out io.Writer) *cobra.Command {
	c := &cli{
		in:  in,
		out: out,
	}

	rootCommand := &cobra.Command{
		Use:           "file-manager",
		Short:         "Browse and organize a virtual file tree",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.ReadConfig(c.configPath)
			if err != nil {
				return fmt.Errorf("config.ReadConfig: %w", err)
			}
			if cmd.Flags().Changed("user") {
				conf.UserID = c.userID
			}
			if cmd.Flags().Changed("team") {
				conf.TeamID = c.teamID
			}
			logger, err := newLogger(conf)
			if err != nil {
				return fmt.Errorf("newLogger: %w", err)
			}

			var printerOptions []render.PrinterOption
			switch c.color {
			case "always":
				printerOptions = append(printerOptions, render.WithColor(true))
			case "never":
				printerOptions = append(printerOptions, render.WithColor(false))
			case "auto":
			default:
				return fmt.Errorf("%w: --color must be auto, always or never: %s", xerrors.ErrInvalidArgument, c.color)
			}

			c.app, err = newApp(cmd.Context(), conf, logger, c.out, printerOptions...)
			if err != nil {
				return fmt.Errorf("newApp: %w", err)
			}
			return nil
		},
	}
	flags := rootCommand.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "path to the configuration file")
	flags.UintVar(&c.userID, "user", 0, "id of the acting user")
	flags.UintVar(&c.teamID, "team", 0, "id of the team of the acting user")
	flags.StringVar(&c.color, "color", "auto", "colorize the output: auto, always or never")

	rootCommand.AddCommand(
		c.newListCommand(),
		c.newSearchCommand(),
		c.newTreeCommand(),
		c.newUsageCommand(),
		c.newShellCommand(),
	)
	return rootCommand
}

type filterFlags struct {
	category string
	sortKey  string
	order    string
	minSize  string
	maxSize  string
	since    string
	until    string
}

func (flags *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flags.category, "category", "all", "all, images, documents, videos, audio, archives or other")
	cmd.Flags().StringVar(&flags.sortKey, "sort", "name", "name, size or modified")
	cmd.Flags().StringVar(&flags.order, "order", "asc", "asc or desc")
	cmd.Flags().StringVar(&flags.minSize, "min-size", "", "minimum size of files, like 10MB")
	cmd.Flags().StringVar(&flags.maxSize, "max-size", "", "maximum size of files, like 1GiB")
	cmd.Flags().StringVar(&flags.since, "since", "", "modified on or after a date, like 2024-01-31")
	cmd.Flags().StringVar(&flags.until, "until", "", "modified on or before a date, like 2024-12-31")
}

func (flags filterFlags) request(directoryPath string, query string) (frontend.ReadDirectoryRequest, error) {
	category, err := vfs.ParseCategory(flags.category)
	if err != nil {
		return frontend.ReadDirectoryRequest{}, fmt.Errorf("vfs.ParseCategory: %w", err)
	}
	sortOptions, err := vfs.ParseSortOptions(flags.sortKey, flags.order)
	if err != nil {
		return frontend.ReadDirectoryRequest{}, fmt.Errorf("vfs.ParseSortOptions: %w", err)
	}
	filters, err := parseFilters(flags.minSize, flags.maxSize, flags.since, flags.until)
	if err != nil {
		return frontend.ReadDirectoryRequest{}, err
	}

	return frontend.ReadDirectoryRequest{
		Path:     directoryPath,
		Query:    query,
		Category: category,
		Filters:  filters,
		Sort:     sortOptions,
	}, nil
}

// parseFilters parses human readable sizes and dates. until includes the whole day
func parseFilters(minSize, maxSize, since, until string) (vfs.SearchFilters, error) {
	var filters vfs.SearchFilters
	parseSize := func(value string) (*int64, error) {
		if value == "" {
			return nil, nil
		}
		size, err := humanize.ParseBytes(value)
		if err != nil {
			return nil, fmt.Errorf("%w: size %q: %w", xerrors.ErrInvalidArgument, value, err)
		}
		result := int64(size)
		return &result, nil
	}
	parseDate := func(value string) (*time.Time, error) {
		if value == "" {
			return nil, nil
		}
		date, err := time.Parse(dateLayout, value)
		if err != nil {
			return nil, fmt.Errorf("%w: date %q: %w", xerrors.ErrInvalidArgument, value, err)
		}
		return &date, nil
	}

	var err error
	if filters.SizeRange.Min, err = parseSize(minSize); err != nil {
		return vfs.SearchFilters{}, err
	}
	if filters.SizeRange.Max, err = parseSize(maxSize); err != nil {
		return vfs.SearchFilters{}, err
	}
	if filters.DateRange.Start, err = parseDate(since); err != nil {
		return vfs.SearchFilters{}, err
	}
	if filters.DateRange.End, err = parseDate(until); err != nil {
		return vfs.SearchFilters{}, err
	}
	if filters.DateRange.End != nil {
		end := filters.DateRange.End.Add(24*time.Hour - time.Nanosecond)
		filters.DateRange.End = &end
	}
	return filters, nil
}

func (c *cli) newListCommand() *cobra.Command {
	var flags filterFlags
	var query string
	cmd := &cobra.Command{
		Use:   "ls [path]",
		Short: "List files in a folder",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			directoryPath := "/"
			if len(args) > 0 {
				directoryPath = args[0]
			}
			request, err := flags.request(directoryPath, query)
			if err != nil {
				return err
			}
			return c.list(cmd, request)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&query, "query", "q", "", "search files whose names contain the query in every folder")
	return cmd
}

func (c *cli) newSearchCommand() *cobra.Command {
	var flags filterFlags
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search files by name in every folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request, err := flags.request("/", args[0])
			if err != nil {
				return err
			}
			return c.list(cmd, request)
		},
	}
	flags.register(cmd)
	return cmd
}

func (c *cli) list(cmd *cobra.Command, request frontend.ReadDirectoryRequest) error {
	response, err := c.app.service.ReadDirectory(c.app.context(cmd.Context()), request)
	if err != nil {
		return fmt.Errorf("service.ReadDirectory: %w", err)
	}
	return c.app.printer.List(response.Files)
}

func (c *cli) newTreeCommand() *cobra.Command {
	var foldersOnly bool
	cmd := &cobra.Command{
		Use:   "tree [path]",
		Short: "Print a folder tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			directoryPath := "/"
			if len(args) > 0 {
				directoryPath = args[0]
			}
			parentID, err := c.app.folderID(directoryPath)
			if err != nil {
				return err
			}
			trees, err := c.app.service.ReadTree(c.app.context(cmd.Context()), parentID, !foldersOnly)
			if err != nil {
				return fmt.Errorf("service.ReadTree: %w", err)
			}
			c.app.printer.Tree(trees)
			fmt.Fprintln(c.out, render.Pluralize("item", int64(len(vfs.Flatten(trees)))))
			return nil
		},
	}
	cmd.Flags().BoolVar(&foldersOnly, "folders-only", false, "print only folders")
	return cmd
}

func (c *cli) newUsageCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "usage",
		Short: "Print the storage usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			usage, err := c.app.service.Usage(c.app.context(cmd.Context()))
			if err != nil {
				return fmt.Errorf("service.Usage: %w", err)
			}
			c.app.printer.Usage(usage)
			return nil
		},
	}
}

func (c *cli) newShellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive shell. Changes are kept until it exits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return newShell(c.app, c.in, c.out).run(cmd.Context())
		},
	}
}
