package vfs

import (
	"errors"

	"github.com/michael-freling/file-manager/internal/xerrors"
)

var (
	ErrNotFound      = errors.New("node not found")
	ErrDuplicateName = errors.New("a node with the same name already exists")
	ErrCycle         = errors.New("a folder cannot be moved into itself or its descendants")

	// ErrNotFolder is returned by folder-only operations on a file
	ErrNotFolder = errors.New("node is not a folder")

	ErrInvalidArgument = xerrors.ErrInvalidArgument
)
