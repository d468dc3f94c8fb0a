package db

import (
	"context"
	"time"
)

type FileType string

const (
	// RootFolderID is the parent id of top-level files
	RootFolderID uint = 0

	FileTypeFolder FileType = "folder"
	FileTypeFile   FileType = "file"
)

type File struct {
	ID       uint
	ParentID uint   `gorm:"uniqueIndex:parent_id_name"`
	Name     string `gorm:"uniqueIndex:parent_id_name"`
	Type     FileType

	// ContentType and Size are only for files
	ContentType string
	Size        int64

	// Color and IsFavorite are only for folders
	Color      string
	IsFavorite bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

type FileClient ORMClient[File]

func (client *Client) File() *FileClient {
	return &FileClient{
		client: client,
	}
}

func (fileClient *FileClient) FindByParentID(ctx context.Context, parentID uint) ([]File, error) {
	var files []File
	err := fileClient.client.withContext(ctx).
		Order("id").
		Find(&files, "parent_id = ?", parentID).
		Error
	return files, err
}
