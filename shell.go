package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/shlex"
	"github.com/michael-freling/file-manager/internal/frontend"
	"github.com/michael-freling/file-manager/internal/render"
	"github.com/michael-freling/file-manager/internal/seed"
	"github.com/michael-freling/file-manager/internal/team"
	"github.com/michael-freling/file-manager/internal/vfs"
	"github.com/michael-freling/file-manager/internal/xerrors"
)

const shellHelp = `Commands:
  pwd                      print the current folder
  cd PATH                  change the current folder
  ls [PATH]                list files
  tree [PATH]              print a tree
  find QUERY               search files by name in every folder
  mkdir NAME               create a folder
  upload NAME SIZE [TYPE]  add a file, renamed if the name is taken
  rename PATH NAME         rename a file or a folder
  mv PATH FOLDER           move a file or a folder
  rm PATH...               delete files and folders
  color PATH COLOR         tag a folder with a color, or "none"
  fav PATH                 toggle a favorite folder
  favorites                list favorite folders
  usage                    print the storage usage
  team                     print the current team
  team name|description|limit VALUE
                           change the current team
  member add USER_ID ROLE  add a user to the current team
  member role USER_ID ROLE change the role of a member
  member rm USER_ID        remove a member from the current team
  save FILE                write the files, users and teams to a JSON, YAML or SQLite seed file
  exit                     quit
Quote names with spaces, like "Q1 Report.pdf" or 'Q1 Report.pdf', or escape spaces with a backslash.
`

type shell struct {
	app *app
	in  io.Reader
	out io.Writer

	cwd string
}

func newShell(app *app, in io.Reader, out io.Writer) *shell {
	return &shell{
		app: app,
		in:  in,
		out: out,
		cwd: "/",
	}
}

func (s *shell) run(ctx context.Context) error {
	scanner := bufio.NewScanner(s.in)
	for {
		fmt.Fprintf(s.out, "%s> ", s.cwd)
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			break
		}

		args, err := splitArgs(scanner.Text())
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
			continue
		}
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" || args[0] == "quit" {
			return nil
		}
		if err := s.execute(s.app.context(ctx), args[0], args[1:]); err != nil {
			s.app.logger.DebugContext(ctx, "Shell command failed", "command", args[0], "error", err)
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner.Err: %w", err)
	}
	return nil
}

// splitArgs splits a line into words like a POSIX shell. Quotes and backslashes keep spaces in a word
func splitArgs(line string) ([]string, error) {
	args, err := shlex.Split(line)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", xerrors.ErrInvalidArgument, err)
	}
	return args, nil
}

func (s *shell) resolve(target string) string {
	if strings.HasPrefix(target, "/") {
		return vfs.CleanPath(target)
	}
	return vfs.CleanPath(path.Join(s.cwd, target))
}

func (s *shell) argOrCwd(args []string) string {
	if len(args) > 0 {
		return s.resolve(args[0])
	}
	return s.cwd
}

func expectArgs(args []string, minimum, maximum int) error {
	if len(args) < minimum || len(args) > maximum {
		return fmt.Errorf("%w: unexpected number of arguments: %d", xerrors.ErrInvalidArgument, len(args))
	}
	return nil
}

func (s *shell) execute(ctx context.Context, command string, args []string) error {
	service := s.app.service
	printer := s.app.printer

	switch command {
	case "help":
		fmt.Fprint(s.out, shellHelp)
	case "pwd":
		fmt.Fprintln(s.out, s.cwd)
	case "cd":
		if err := expectArgs(args, 0, 1); err != nil {
			return err
		}
		target := "/"
		if len(args) > 0 {
			target = s.resolve(args[0])
		}
		if _, err := s.app.folderID(target); err != nil {
			return err
		}
		s.cwd = target
	case "ls":
		if err := expectArgs(args, 0, 1); err != nil {
			return err
		}
		response, err := service.ReadDirectory(ctx, frontend.ReadDirectoryRequest{
			Path: s.argOrCwd(args),
		})
		if err != nil {
			return fmt.Errorf("service.ReadDirectory: %w", err)
		}
		return printer.List(response.Files)
	case "find":
		if err := expectArgs(args, 1, 1); err != nil {
			return err
		}
		response, err := service.ReadDirectory(ctx, frontend.ReadDirectoryRequest{
			Path:  s.cwd,
			Query: args[0],
		})
		if err != nil {
			return fmt.Errorf("service.ReadDirectory: %w", err)
		}
		return printer.List(response.Files)
	case "tree":
		if err := expectArgs(args, 0, 1); err != nil {
			return err
		}
		parentID, err := s.app.folderID(s.argOrCwd(args))
		if err != nil {
			return err
		}
		trees, err := service.ReadTree(ctx, parentID, true)
		if err != nil {
			return fmt.Errorf("service.ReadTree: %w", err)
		}
		printer.Tree(trees)
		fmt.Fprintln(s.out, render.Pluralize("item", int64(len(vfs.Flatten(trees)))))
	case "mkdir":
		if err := expectArgs(args, 1, 1); err != nil {
			return err
		}
		parentID, err := s.app.folderID(s.cwd)
		if err != nil {
			return err
		}
		folder, err := service.CreateFolder(ctx, parentID, args[0])
		if err != nil {
			return fmt.Errorf("service.CreateFolder: %w", err)
		}
		fmt.Fprintf(s.out, "Created %s\n", folder.Path)
	case "upload":
		if err := expectArgs(args, 2, 3); err != nil {
			return err
		}
		size, err := humanize.ParseBytes(args[1])
		if err != nil {
			return fmt.Errorf("%w: size %q: %w", xerrors.ErrInvalidArgument, args[1], err)
		}
		file := frontend.UploadFile{
			Name: args[0],
			Size: int64(size),
		}
		if len(args) > 2 {
			file.Type = args[2]
		}
		parentID, err := s.app.folderID(s.cwd)
		if err != nil {
			return err
		}
		uploaded, err := service.Upload(ctx, parentID, []frontend.UploadFile{file})
		if err != nil {
			return fmt.Errorf("service.Upload: %w", err)
		}
		for _, file := range uploaded {
			fmt.Fprintf(s.out, "Uploaded %s (%s)\n", file.Path, humanize.IBytes(uint64(file.Size)))
		}
	case "rename":
		if err := expectArgs(args, 2, 2); err != nil {
			return err
		}
		id, err := s.app.nodeID(s.resolve(args[0]))
		if err != nil {
			return err
		}
		renamed, err := service.Rename(ctx, id, args[1])
		if err != nil {
			return fmt.Errorf("service.Rename: %w", err)
		}
		s.followMove(s.resolve(args[0]), renamed.Path)
		fmt.Fprintf(s.out, "Renamed to %s\n", renamed.Path)
	case "mv":
		if err := expectArgs(args, 2, 2); err != nil {
			return err
		}
		id, err := s.app.nodeID(s.resolve(args[0]))
		if err != nil {
			return err
		}
		parentID, err := s.app.folderID(s.resolve(args[1]))
		if err != nil {
			return err
		}
		moved, err := service.Move(ctx, id, parentID)
		if err != nil {
			return fmt.Errorf("service.Move: %w", err)
		}
		s.followMove(s.resolve(args[0]), moved.Path)
		fmt.Fprintf(s.out, "Moved to %s\n", moved.Path)
	case "rm":
		if err := expectArgs(args, 1, len(args)); err != nil {
			return err
		}
		ids := make([]uint, 0, len(args))
		for _, arg := range args {
			id, err := s.app.nodeID(s.resolve(arg))
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		deleted, err := service.DeleteSelected(ctx, ids)
		if len(deleted) > 0 {
			fmt.Fprintf(s.out, "Deleted %s\n", render.Pluralize("item", int64(len(deleted))))
		}
		if err != nil {
			return fmt.Errorf("service.DeleteSelected: %w", err)
		}
		if _, err := s.app.folderID(s.cwd); err != nil {
			s.cwd = "/"
		}
	case "color":
		if err := expectArgs(args, 2, 2); err != nil {
			return err
		}
		id, err := s.app.nodeID(s.resolve(args[0]))
		if err != nil {
			return err
		}
		folder, err := service.ChangeFolderColor(ctx, id, args[1])
		if err != nil {
			return fmt.Errorf("service.ChangeFolderColor: %w", err)
		}
		fmt.Fprintf(s.out, "Changed the color of %s\n", folder.Path)
	case "fav":
		if err := expectArgs(args, 1, 1); err != nil {
			return err
		}
		id, err := s.app.nodeID(s.resolve(args[0]))
		if err != nil {
			return err
		}
		folder, err := service.ToggleFavorite(ctx, id)
		if err != nil {
			return fmt.Errorf("service.ToggleFavorite: %w", err)
		}
		if folder.IsFavorite {
			fmt.Fprintf(s.out, "Added %s to favorites\n", folder.Path)
		} else {
			fmt.Fprintf(s.out, "Removed %s from favorites\n", folder.Path)
		}
	case "favorites":
		if err := expectArgs(args, 0, 0); err != nil {
			return err
		}
		response, err := service.ReadFolderTree(ctx)
		if err != nil {
			return fmt.Errorf("service.ReadFolderTree: %w", err)
		}
		return printer.List(response.Favorites)
	case "usage":
		if err := expectArgs(args, 0, 0); err != nil {
			return err
		}
		usage, err := service.Usage(ctx)
		if err != nil {
			return fmt.Errorf("service.Usage: %w", err)
		}
		printer.Usage(usage)
	case "team":
		return s.team(ctx, args)
	case "member":
		return s.member(ctx, args)
	case "save":
		if err := expectArgs(args, 1, 1); err != nil {
			return err
		}
		document := seed.NewDocument(s.app.store.List(), s.app.registry)
		if err := seed.WriteFile(ctx, args[0], document); err != nil {
			return fmt.Errorf("seed.WriteFile: %w", err)
		}
		fmt.Fprintf(s.out, "Saved %s to %s\n", render.Pluralize("file", int64(len(document.Files))), args[0])
	default:
		return fmt.Errorf("%w: unknown command %q. Type help for commands", xerrors.ErrInvalidArgument, command)
	}
	return nil
}

// followMove keeps the current folder when it or its ancestor was moved
func (s *shell) followMove(oldPath, newPath string) {
	if s.cwd == oldPath {
		s.cwd = newPath
		return
	}
	if strings.HasPrefix(s.cwd, oldPath+"/") {
		s.cwd = newPath + strings.TrimPrefix(s.cwd, oldPath)
	}
}

func (s *shell) team(ctx context.Context, args []string) error {
	if len(args) == 0 {
		current, err := s.app.teamService.ReadCurrentTeam(ctx)
		if err != nil {
			return fmt.Errorf("teamService.ReadCurrentTeam: %w", err)
		}
		return s.app.printer.Team(current)
	}
	if err := expectArgs(args, 2, 2); err != nil {
		return err
	}

	field, value := args[0], args[1]
	var request team.UpdateTeamRequest
	switch field {
	case "name":
		request.Name = &value
	case "description":
		request.Description = &value
	case "limit":
		limit, err := humanize.ParseBytes(value)
		if err != nil {
			return fmt.Errorf("%w: limit %q: %w", xerrors.ErrInvalidArgument, value, err)
		}
		current, err := s.app.teamService.ReadCurrentTeam(ctx)
		if err != nil {
			return fmt.Errorf("teamService.ReadCurrentTeam: %w", err)
		}
		settings := current.Settings
		settings.StorageLimit = int64(limit)
		request.Settings = &settings
	default:
		return fmt.Errorf("%w: unknown team field %q", xerrors.ErrInvalidArgument, field)
	}

	updated, err := s.app.teamService.UpdateCurrentTeam(ctx, request)
	if err != nil {
		return fmt.Errorf("teamService.UpdateCurrentTeam: %w", err)
	}
	fmt.Fprintf(s.out, "Updated the team %s\n", updated.Name)
	return nil
}

func (s *shell) member(ctx context.Context, args []string) error {
	if err := expectArgs(args, 2, 3); err != nil {
		return err
	}
	subcommand := args[0]
	userID, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("%w: user id %q: %w", xerrors.ErrInvalidArgument, args[1], err)
	}

	service := s.app.teamService
	var updated frontend.Team
	switch subcommand {
	case "add", "role":
		if len(args) != 3 {
			return fmt.Errorf("%w: member %s needs a role, one of %v", xerrors.ErrInvalidArgument, subcommand, team.Roles)
		}
		role, err := team.ParseRole(args[2])
		if err != nil {
			return err
		}
		if subcommand == "add" {
			updated, err = service.AddMember(ctx, uint(userID), role)
			if err != nil {
				return fmt.Errorf("teamService.AddMember: %w", err)
			}
			break
		}
		updated, err = service.UpdateMemberRole(ctx, uint(userID), role)
		if err != nil {
			return fmt.Errorf("teamService.UpdateMemberRole: %w", err)
		}
	case "rm":
		if len(args) != 2 {
			return fmt.Errorf("%w: member rm takes a user id only", xerrors.ErrInvalidArgument)
		}
		updated, err = service.RemoveMember(ctx, uint(userID))
		if err != nil {
			return fmt.Errorf("teamService.RemoveMember: %w", err)
		}
	default:
		return fmt.Errorf("%w: unknown member command %q", xerrors.ErrInvalidArgument, subcommand)
	}
	fmt.Fprintf(s.out, "%s has %s\n", updated.Name, render.Pluralize("member", int64(len(updated.Members))))
	return nil
}
