package team

import (
	"errors"

	"github.com/michael-freling/file-manager/internal/xerrors"
)

var (
	ErrTeamNotFound        = errors.New("team not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrMemberAlreadyExists = errors.New("member already exists")
	ErrMemberNotFound      = errors.New("member not found")
	ErrPermissionDenied    = errors.New("permission denied")

	ErrInvalidArgument = xerrors.ErrInvalidArgument
)
