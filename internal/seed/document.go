package seed

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/michael-freling/file-manager/internal/team"
	"github.com/michael-freling/file-manager/internal/vfs"
	"github.com/michael-freling/file-manager/internal/xerrors"
)

type FileRecord struct {
	ID       uint   `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	ParentID uint   `json:"parentId,omitempty" yaml:"parentId,omitempty"`
	IsFolder bool   `json:"isFolder" yaml:"isFolder"`

	// Type and Size are only for files
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
	Size int64  `json:"size,omitempty" yaml:"size,omitempty"`

	// Color and IsFavorite are only for folders
	Color      string `json:"color,omitempty" yaml:"color,omitempty"`
	IsFavorite bool   `json:"isFavorite,omitempty" yaml:"isFavorite,omitempty"`

	Created  time.Time `json:"created" yaml:"created"`
	Modified time.Time `json:"modified" yaml:"modified"`
}

func (record FileRecord) Validate() error {
	return validation.ValidateStruct(&record,
		validation.Field(&record.Type, validation.When(record.IsFolder, validation.Empty)),
		validation.Field(&record.Size, validation.When(record.IsFolder, validation.Empty)),
		validation.Field(&record.Color, validation.When(!record.IsFolder, validation.Empty)),
		validation.Field(&record.IsFavorite, validation.When(!record.IsFolder, validation.Empty)),
	)
}

type UserRecord struct {
	ID      uint      `json:"id" yaml:"id"`
	Name    string    `json:"name" yaml:"name"`
	Email   string    `json:"email" yaml:"email"`
	Created time.Time `json:"created" yaml:"created"`
}

type MemberRecord struct {
	UserID   uint      `json:"userId" yaml:"userId"`
	Role     string    `json:"role" yaml:"role"`
	JoinedAt time.Time `json:"joinedAt" yaml:"joinedAt"`
}

type TeamRecord struct {
	ID          uint           `json:"id" yaml:"id"`
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Members     []MemberRecord `json:"members" yaml:"members"`
	// Settings are the default settings if omitted
	Settings *team.Settings `json:"settings,omitempty" yaml:"settings,omitempty"`
	Created  time.Time      `json:"created" yaml:"created"`
}

// Document is a data set loaded into the file store and the team registry at startup
type Document struct {
	Files []FileRecord `json:"files" yaml:"files"`
	Users []UserRecord `json:"users" yaml:"users"`
	Teams []TeamRecord `json:"teams" yaml:"teams"`
}

// Validate checks that folder records have no file fields and file records have no folder fields.
// The hierarchy is validated when nodes are loaded into a store
func (document Document) Validate() error {
	for _, record := range document.Files {
		if err := record.Validate(); err != nil {
			return fmt.Errorf("%w: file %d: %w", xerrors.ErrInvalidArgument, record.ID, err)
		}
	}
	return nil
}

func (document Document) Nodes() []vfs.Node {
	nodes := make([]vfs.Node, 0, len(document.Files))
	for _, record := range document.Files {
		var node vfs.Node
		if record.IsFolder {
			node = vfs.NewFolderNode(record.ID, record.ParentID, record.Name, vfs.FolderAttributes{
				Color:      vfs.Color(record.Color),
				IsFavorite: record.IsFavorite,
			})
		} else {
			node = vfs.NewFileNode(record.ID, record.ParentID, record.Name, vfs.FileAttributes{
				Type: record.Type,
				Size: record.Size,
			})
		}
		node.Created = record.Created
		node.Modified = record.Modified
		nodes = append(nodes, node)
	}
	return nodes
}

func (document Document) Registry(options ...team.RegistryOption) (*team.Registry, error) {
	registry := team.NewRegistry(options...)
	for _, record := range document.Users {
		if _, err := registry.AddUser(team.User{
			ID:      record.ID,
			Name:    record.Name,
			Email:   record.Email,
			Created: record.Created,
		}); err != nil {
			return nil, fmt.Errorf("registry.AddUser: %w", err)
		}
	}
	for _, record := range document.Teams {
		settings := team.DefaultSettings()
		if record.Settings != nil {
			settings = *record.Settings
		}
		members := make([]team.Member, 0, len(record.Members))
		for _, member := range record.Members {
			members = append(members, team.Member{
				UserID:   member.UserID,
				Role:     team.Role(member.Role),
				JoinedAt: member.JoinedAt,
			})
		}
		if _, err := registry.AddTeam(team.Team{
			ID:          record.ID,
			Name:        record.Name,
			Description: record.Description,
			Members:     members,
			Settings:    settings,
			Created:     record.Created,
		}); err != nil {
			return nil, fmt.Errorf("registry.AddTeam: %w", err)
		}
	}
	return registry, nil
}

// FromNodes converts nodes of a store back into file records
func FromNodes(nodes []vfs.Node) []FileRecord {
	records := make([]FileRecord, 0, len(nodes))
	for _, node := range nodes {
		record := FileRecord{
			ID:         node.ID,
			Name:       node.Name,
			ParentID:   node.ParentID,
			IsFolder:   node.IsFolder(),
			Color:      string(node.Color()),
			IsFavorite: node.IsFavorite(),
			Created:    node.Created,
			Modified:   node.Modified,
		}
		if node.File != nil {
			record.Type = node.File.Type
			record.Size = node.File.Size
		}
		records = append(records, record)
	}
	return records
}

// NewDocument converts nodes of a store and a registry back into a document
func NewDocument(nodes []vfs.Node, registry *team.Registry) Document {
	users := registry.Users()
	userRecords := make([]UserRecord, 0, len(users))
	for _, user := range users {
		userRecords = append(userRecords, UserRecord{
			ID:      user.ID,
			Name:    user.Name,
			Email:   user.Email,
			Created: user.Created,
		})
	}

	teams := registry.Teams()
	teamRecords := make([]TeamRecord, 0, len(teams))
	for _, value := range teams {
		members := make([]MemberRecord, 0, len(value.Members))
		for _, member := range value.Members {
			members = append(members, MemberRecord{
				UserID:   member.UserID,
				Role:     string(member.Role),
				JoinedAt: member.JoinedAt,
			})
		}
		settings := value.Settings
		teamRecords = append(teamRecords, TeamRecord{
			ID:          value.ID,
			Name:        value.Name,
			Description: value.Description,
			Members:     members,
			Settings:    &settings,
			Created:     value.Created,
		})
	}

	return Document{
		Files: FromNodes(nodes),
		Users: userRecords,
		Teams: teamRecords,
	}
}
