package team

import (
	"fmt"
	"slices"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const (
	DefaultStorageLimit int64 = 10737418240

	FilePermissionsPrivate = "private"
	FilePermissionsTeam    = "team"
	FilePermissionsPublic  = "public"
)

type Settings struct {
	AllowGuestAccess       bool   `json:"allowGuestAccess" yaml:"allowGuestAccess"`
	DefaultFilePermissions string `json:"defaultFilePermissions" yaml:"defaultFilePermissions"`
	StorageLimit           int64  `json:"storageLimit" yaml:"storageLimit"`
}

func DefaultSettings() Settings {
	return Settings{
		AllowGuestAccess:       false,
		DefaultFilePermissions: FilePermissionsTeam,
		StorageLimit:           DefaultStorageLimit,
	}
}

func (settings Settings) Validate() error {
	return validation.ValidateStruct(&settings,
		validation.Field(&settings.DefaultFilePermissions,
			validation.Required,
			validation.In(FilePermissionsPrivate, FilePermissionsTeam, FilePermissionsPublic),
		),
		validation.Field(&settings.StorageLimit, validation.Min(int64(0))),
	)
}

type Member struct {
	UserID   uint
	Role     Role
	JoinedAt time.Time
}

type Team struct {
	ID          uint
	Name        string
	Description string
	Members     []Member
	Settings    Settings
	Created     time.Time
	Modified    time.Time
}

func (team Team) clone() Team {
	team.Members = slices.Clone(team.Members)
	return team
}

func (team Team) Member(userID uint) (Member, bool) {
	index := team.memberIndex(userID)
	if index < 0 {
		return Member{}, false
	}
	return team.Members[index], true
}

func (team Team) memberIndex(userID uint) int {
	return slices.IndexFunc(team.Members, func(member Member) bool {
		return member.UserID == userID
	})
}

func (team Team) validate() error {
	if err := validation.ValidateStruct(&team,
		validation.Field(&team.Name, validation.Required, validation.RuneLength(1, 100)),
		validation.Field(&team.Description, validation.RuneLength(0, 500)),
		validation.Field(&team.Settings),
	); err != nil {
		return fmt.Errorf("%w: team %q: %w", ErrInvalidArgument, team.Name, err)
	}
	return nil
}

type User struct {
	ID       uint
	Name     string
	Email    string
	Created  time.Time
	Modified time.Time
}

func (user User) validate() error {
	if err := validation.ValidateStruct(&user,
		validation.Field(&user.Name, validation.Required),
		validation.Field(&user.Email, validation.Required, is.EmailFormat),
	); err != nil {
		return fmt.Errorf("%w: user %q: %w", ErrInvalidArgument, user.Name, err)
	}
	return nil
}
