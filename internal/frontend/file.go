package frontend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/michael-freling/file-manager/internal/team"
	"github.com/michael-freling/file-manager/internal/vfs"
	"github.com/michael-freling/file-manager/internal/xslices"
	"golang.org/x/sync/errgroup"
)

type File struct {
	ID         uint         `json:"id"`
	Name       string       `json:"name"`
	ParentID   uint         `json:"parentId"`
	Path       string       `json:"path"`
	IsFolder   bool         `json:"isFolder"`
	Type       string       `json:"type"`
	Category   vfs.Category `json:"category,omitempty"`
	Size       int64        `json:"size"`
	Color      vfs.Color    `json:"color,omitempty"`
	IsFavorite bool         `json:"isFavorite"`
	Created    time.Time    `json:"created"`
	Modified   time.Time    `json:"modified"`
}

type fileConverter struct {
}

func newFileConverter() fileConverter {
	return fileConverter{}
}

func (converter fileConverter) convertFile(node vfs.Node) File {
	file := File{
		ID:         node.ID,
		Name:       node.Name,
		ParentID:   node.ParentID,
		Path:       node.Path,
		IsFolder:   node.IsFolder(),
		Type:       node.Type(),
		Size:       node.Size(),
		Color:      node.Color(),
		IsFavorite: node.IsFavorite(),
		Created:    node.Created,
		Modified:   node.Modified,
	}
	if !node.IsFolder() {
		file.Category = vfs.CategoryOf(node)
	}
	return file
}

func (converter fileConverter) convertFiles(nodes []vfs.Node) []File {
	return xslices.Map(nodes, converter.convertFile)
}

type FileService struct {
	logger   *slog.Logger
	store    *vfs.Store
	registry *team.Registry

	storageLimit int64
}

func NewFileService(
	logger *slog.Logger,
	store *vfs.Store,
	registry *team.Registry,
	storageLimit int64,
) *FileService {
	return &FileService{
		logger:       logger,
		store:        store,
		registry:     registry,
		storageLimit: storageLimit,
	}
}

func (service FileService) authorize(ctx context.Context, action team.Action) error {
	if service.registry == nil {
		return nil
	}
	if err := service.registry.Authorize(ctx, action); err != nil {
		service.logger.WarnContext(ctx, "Permission denied", "action", action, "error", err)
		return fmt.Errorf("registry.Authorize: %w", err)
	}
	return nil
}

type ReadDirectoryRequest struct {
	Path     string
	Query    string
	Category vfs.Category
	Filters  vfs.SearchFilters
	Sort     vfs.SortOptions
}

type ReadDirectoryResponse struct {
	Path  string `json:"path"`
	Files []File `json:"files"`
}

// ReadDirectory lists the files under a path.
// A query searches files in every folder. Filters without a query only apply to the files under the path
func (service FileService) ReadDirectory(ctx context.Context, request ReadDirectoryRequest) (ReadDirectoryResponse, error) {
	if err := service.authorize(ctx, team.ActionRead); err != nil {
		return ReadDirectoryResponse{}, err
	}

	directoryPath := vfs.CleanPath(request.Path)
	parentID := vfs.RootID
	if directoryPath != "/" {
		directory, err := service.store.GetByPath(directoryPath)
		if err != nil {
			return ReadDirectoryResponse{}, fmt.Errorf("store.GetByPath: %w", err)
		}
		if !directory.IsFolder() {
			return ReadDirectoryResponse{}, fmt.Errorf("%w: %s", vfs.ErrNotFolder, directoryPath)
		}
		parentID = directory.ID
	}

	var nodes []vfs.Node
	if request.Query != "" || !request.Filters.IsEmpty() {
		searched, err := service.store.Search(request.Query, request.Filters)
		if err != nil {
			return ReadDirectoryResponse{}, fmt.Errorf("store.Search: %w", err)
		}
		nodes = searched
		if request.Query == "" {
			nodes = xslices.Filter(nodes, func(node vfs.Node) bool {
				return vfs.ParentPath(node.Path) == directoryPath
			})
		}
	} else {
		children, err := service.store.GetChildren(parentID)
		if err != nil {
			return ReadDirectoryResponse{}, fmt.Errorf("store.GetChildren: %w", err)
		}
		nodes = children
	}

	nodes = vfs.FilterByCategory(nodes, request.Category)
	nodes = vfs.Sort(nodes, request.Sort)
	return ReadDirectoryResponse{
		Path:  directoryPath,
		Files: newFileConverter().convertFiles(nodes),
	}, nil
}

func (service FileService) Rename(ctx context.Context, id uint, name string) (File, error) {
	if err := service.authorize(ctx, team.ActionUpdate); err != nil {
		return File{}, err
	}

	node, err := service.store.Rename(id, name)
	if err != nil {
		return File{}, fmt.Errorf("store.Rename: %w", err)
	}
	service.logger.InfoContext(ctx, "Renamed a file", "id", id, "path", node.Path)
	return newFileConverter().convertFile(node), nil
}

func (service FileService) Move(ctx context.Context, id uint, parentID uint) (File, error) {
	if err := service.authorize(ctx, team.ActionUpdate); err != nil {
		return File{}, err
	}

	node, err := service.store.Move(id, parentID)
	if err != nil {
		return File{}, fmt.Errorf("store.Move: %w", err)
	}
	service.logger.InfoContext(ctx, "Moved a file", "id", id, "path", node.Path)
	return newFileConverter().convertFile(node), nil
}

// Delete deletes a file or a folder with everything under it, and returns the deleted ids
func (service FileService) Delete(ctx context.Context, id uint) ([]uint, error) {
	if err := service.authorize(ctx, team.ActionDelete); err != nil {
		return nil, err
	}

	deletedIDs, err := service.store.Delete(id)
	if err != nil {
		return nil, fmt.Errorf("store.Delete: %w", err)
	}
	service.logger.InfoContext(ctx, "Deleted a file", "id", id, "deletedCount", len(deletedIDs))
	return deletedIDs, nil
}

// DeleteSelected tries to delete every id even if some of them fail.
// An id which was already deleted with its selected ancestor is not an error
func (service FileService) DeleteSelected(ctx context.Context, ids []uint) ([]uint, error) {
	if err := service.authorize(ctx, team.ActionDelete); err != nil {
		return nil, err
	}

	var mu sync.Mutex
	deletedIDs := make(map[uint]struct{})
	errs := make([]error, len(ids))

	var eg errgroup.Group
	for index, id := range ids {
		index, id := index, id
		eg.Go(func() error {
			removed, err := service.store.Delete(id)
			if err != nil {
				errs[index] = fmt.Errorf("store.Delete(%d): %w", id, err)
				return nil
			}

			mu.Lock()
			defer mu.Unlock()
			for _, removedID := range removed {
				deletedIDs[removedID] = struct{}{}
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("eg.Wait: %w", err)
	}

	for index, err := range errs {
		if _, ok := deletedIDs[ids[index]]; ok && errors.Is(err, vfs.ErrNotFound) {
			errs[index] = nil
		}
	}

	result := make([]uint, 0, len(deletedIDs))
	for id := range deletedIDs {
		result = append(result, id)
	}
	slices.Sort(result)

	service.logger.InfoContext(ctx, "Deleted selected files",
		"selectedCount", len(ids),
		"deletedCount", len(result),
	)
	return result, errors.Join(errs...)
}

type UploadFile struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	// Type is the extension of the name if empty
	Type string `json:"type"`
}

// Upload adds files into a folder. A file with the same name as an existing one is renamed to "name (n).ext".
// Files which fail are skipped and their errors are joined
func (service FileService) Upload(ctx context.Context, parentID uint, files []UploadFile) ([]File, error) {
	if err := service.authorize(ctx, team.ActionCreate); err != nil {
		return nil, err
	}

	result := make([]File, 0, len(files))
	errs := make([]error, 0)
	for _, file := range files {
		fileType := file.Type
		if fileType == "" {
			fileType = strings.TrimPrefix(strings.ToLower(path.Ext(file.Name)), ".")
		}
		node, err := service.store.Upload(vfs.UploadRequest{
			ParentID: parentID,
			Name:     file.Name,
			Size:     file.Size,
			Type:     fileType,
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("store.Upload(%s): %w", file.Name, err))
			continue
		}
		result = append(result, newFileConverter().convertFile(node))
	}

	service.logger.InfoContext(ctx, "Uploaded files",
		"parentId", parentID,
		"uploadedCount", len(result),
		"failedCount", len(errs),
	)
	return result, errors.Join(errs...)
}

// Usage returns the storage usage against the limit of the actor's team,
// or the configured limit without a team
func (service FileService) Usage(ctx context.Context) (vfs.StorageUsage, error) {
	if err := service.authorize(ctx, team.ActionRead); err != nil {
		return vfs.StorageUsage{}, err
	}

	limit := service.storageLimit
	if actor, ok := team.ActorFromContext(ctx); ok && actor.TeamID != 0 && service.registry != nil {
		currentTeam, err := service.registry.Team(actor.TeamID)
		if err != nil {
			return vfs.StorageUsage{}, fmt.Errorf("registry.Team: %w", err)
		}
		limit = currentTeam.Settings.StorageLimit
	}
	return service.store.Usage(limit), nil
}
