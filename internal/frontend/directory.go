package frontend

import (
	"context"
	"fmt"

	"github.com/michael-freling/file-manager/internal/team"
	"github.com/michael-freling/file-manager/internal/vfs"
)

type Folder struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Path       string    `json:"path"`
	Color      vfs.Color `json:"color,omitempty"`
	IsFavorite bool      `json:"isFavorite"`
	Children   []Folder  `json:"children"`
}

type folderConverter struct {
}

func newFolderConverter() folderConverter {
	return folderConverter{}
}

func (converter folderConverter) convertFolder(treeNode vfs.TreeNode) Folder {
	var children []Folder
	if len(treeNode.Children) > 0 {
		children = make([]Folder, 0, len(treeNode.Children))
		for _, child := range treeNode.Children {
			children = append(children, converter.convertFolder(*child))
		}
	}

	return Folder{
		ID:         treeNode.ID,
		Name:       treeNode.Name,
		Path:       treeNode.Path,
		Color:      treeNode.Color(),
		IsFavorite: treeNode.IsFavorite(),
		Children:   children,
	}
}

type ReadFolderTreeResponse struct {
	Folders   []Folder `json:"folders"`
	Favorites []File   `json:"favorites"`
}

// ReadFolderTree returns the folders for a sidebar
func (service FileService) ReadFolderTree(ctx context.Context) (ReadFolderTreeResponse, error) {
	if err := service.authorize(ctx, team.ActionRead); err != nil {
		return ReadFolderTreeResponse{}, err
	}

	trees, err := service.store.BuildFolderTree(vfs.RootID)
	if err != nil {
		return ReadFolderTreeResponse{}, fmt.Errorf("store.BuildFolderTree: %w", err)
	}
	converter := newFolderConverter()
	folders := make([]Folder, 0, len(trees))
	for _, tree := range trees {
		folders = append(folders, converter.convertFolder(*tree))
	}

	return ReadFolderTreeResponse{
		Folders:   folders,
		Favorites: newFileConverter().convertFiles(service.store.Favorites()),
	}, nil
}

func (service FileService) CreateFolder(ctx context.Context, parentID uint, name string) (File, error) {
	if err := service.authorize(ctx, team.ActionCreate); err != nil {
		return File{}, err
	}

	node, err := service.store.Create(vfs.CreateRequest{
		ParentID: parentID,
		Name:     name,
		IsFolder: true,
	})
	if err != nil {
		return File{}, fmt.Errorf("store.Create: %w", err)
	}
	service.logger.InfoContext(ctx, "Created a folder", "id", node.ID, "path", node.Path)
	return newFileConverter().convertFile(node), nil
}

// ChangeFolderColor changes the color of a folder. "none" or an empty color removes it
func (service FileService) ChangeFolderColor(ctx context.Context, id uint, color string) (File, error) {
	if err := service.authorize(ctx, team.ActionUpdate); err != nil {
		return File{}, err
	}

	parsed, err := vfs.ParseColor(color)
	if err != nil {
		return File{}, fmt.Errorf("vfs.ParseColor: %w", err)
	}
	node, err := service.store.SetColor(id, parsed)
	if err != nil {
		return File{}, fmt.Errorf("store.SetColor: %w", err)
	}
	service.logger.InfoContext(ctx, "Changed a folder color", "id", id, "color", parsed)
	return newFileConverter().convertFile(node), nil
}

func (service FileService) ToggleFavorite(ctx context.Context, id uint) (File, error) {
	if err := service.authorize(ctx, team.ActionUpdate); err != nil {
		return File{}, err
	}

	node, err := service.store.ToggleFavorite(id)
	if err != nil {
		return File{}, fmt.Errorf("store.ToggleFavorite: %w", err)
	}
	service.logger.InfoContext(ctx, "Toggled a favorite", "id", id, "isFavorite", node.IsFavorite())
	return newFileConverter().convertFile(node), nil
}

// ReadTree returns the nodes under parentID as trees for a terminal
func (service FileService) ReadTree(ctx context.Context, parentID uint, includeFiles bool) ([]*vfs.TreeNode, error) {
	if err := service.authorize(ctx, team.ActionRead); err != nil {
		return nil, err
	}

	if includeFiles {
		trees, err := service.store.BuildTree(parentID)
		if err != nil {
			return nil, fmt.Errorf("store.BuildTree: %w", err)
		}
		return trees, nil
	}
	trees, err := service.store.BuildFolderTree(parentID)
	if err != nil {
		return nil, fmt.Errorf("store.BuildFolderTree: %w", err)
	}
	return trees, nil
}
