package seed

import (
	"context"
	"fmt"

	"github.com/michael-freling/file-manager/internal/db"
	"github.com/michael-freling/file-manager/internal/team"
	"github.com/michael-freling/file-manager/internal/xslices"
)

// ReadDB reads a document from a seed database
func ReadDB(ctx context.Context, dbClient *db.Client) (Document, error) {
	files, err := db.GetAll[db.File](ctx, dbClient)
	if err != nil {
		return Document{}, fmt.Errorf("db.GetAll[File]: %w", err)
	}
	users, err := db.GetAll[db.User](ctx, dbClient)
	if err != nil {
		return Document{}, fmt.Errorf("db.GetAll[User]: %w", err)
	}
	teams, err := db.GetAll[db.Team](ctx, dbClient)
	if err != nil {
		return Document{}, fmt.Errorf("db.GetAll[Team]: %w", err)
	}
	membersByTeam := make(map[uint][]db.TeamMember, len(teams))
	for _, t := range teams {
		members, err := dbClient.TeamMember().FindByTeamID(ctx, t.ID)
		if err != nil {
			return Document{}, fmt.Errorf("TeamMember().FindByTeamID(%d): %w", t.ID, err)
		}
		membersByTeam[t.ID] = members
	}

	return Document{
		Files: xslices.Map(files, func(file db.File) FileRecord {
			record := FileRecord{
				ID:         file.ID,
				Name:       file.Name,
				ParentID:   file.ParentID,
				IsFolder:   file.Type == db.FileTypeFolder,
				Color:      file.Color,
				IsFavorite: file.IsFavorite,
				Created:    file.CreatedAt,
				Modified:   file.UpdatedAt,
			}
			if !record.IsFolder {
				record.Type = file.ContentType
				record.Size = file.Size
			}
			return record
		}),
		Users: xslices.Map(users, func(user db.User) UserRecord {
			return UserRecord{
				ID:      user.ID,
				Name:    user.Name,
				Email:   user.Email,
				Created: user.CreatedAt,
			}
		}),
		Teams: xslices.Map(teams, func(t db.Team) TeamRecord {
			return TeamRecord{
				ID:          t.ID,
				Name:        t.Name,
				Description: t.Description,
				Members: xslices.Map(membersByTeam[t.ID], func(member db.TeamMember) MemberRecord {
					return MemberRecord{
						UserID:   member.UserID,
						Role:     member.Role,
						JoinedAt: member.JoinedAt,
					}
				}),
				Settings: &team.Settings{
					AllowGuestAccess:       t.AllowGuestAccess,
					DefaultFilePermissions: t.DefaultFilePermissions,
					StorageLimit:           t.StorageLimit,
				},
				Created: t.CreatedAt,
			}
		}),
	}, nil
}

// WriteDB migrates a seed database and writes the document in a transaction
func WriteDB(ctx context.Context, dbClient *db.Client, document Document) error {
	if err := dbClient.Migrate(); err != nil {
		return fmt.Errorf("dbClient.Migrate: %w", err)
	}

	files := xslices.Map(document.Files, func(record FileRecord) db.File {
		file := db.File{
			ID:         record.ID,
			ParentID:   record.ParentID,
			Name:       record.Name,
			Type:       db.FileTypeFolder,
			Color:      record.Color,
			IsFavorite: record.IsFavorite,
			CreatedAt:  record.Created,
			UpdatedAt:  record.Modified,
		}
		if !record.IsFolder {
			file.Type = db.FileTypeFile
			file.ContentType = record.Type
			file.Size = record.Size
		}
		return file
	})
	users := xslices.Map(document.Users, func(record UserRecord) db.User {
		return db.User{
			ID:        record.ID,
			Name:      record.Name,
			Email:     record.Email,
			CreatedAt: record.Created,
			UpdatedAt: record.Created,
		}
	})
	teams := make([]db.Team, 0, len(document.Teams))
	members := make([]db.TeamMember, 0)
	for _, record := range document.Teams {
		settings := team.DefaultSettings()
		if record.Settings != nil {
			settings = *record.Settings
		}
		teams = append(teams, db.Team{
			ID:                     record.ID,
			Name:                   record.Name,
			Description:            record.Description,
			AllowGuestAccess:       settings.AllowGuestAccess,
			DefaultFilePermissions: settings.DefaultFilePermissions,
			StorageLimit:           settings.StorageLimit,
			CreatedAt:              record.Created,
			UpdatedAt:              record.Created,
		})
		for _, member := range record.Members {
			members = append(members, db.TeamMember{
				TeamID:   record.ID,
				UserID:   member.UserID,
				Role:     member.Role,
				JoinedAt: member.JoinedAt,
			})
		}
	}

	return db.NewTransaction(ctx, dbClient, func(ctx context.Context) error {
		if err := db.BatchCreate(ctx, dbClient, files); err != nil {
			return fmt.Errorf("db.BatchCreate[File]: %w", err)
		}
		if err := db.BatchCreate(ctx, dbClient, users); err != nil {
			return fmt.Errorf("db.BatchCreate[User]: %w", err)
		}
		if err := db.BatchCreate(ctx, dbClient, teams); err != nil {
			return fmt.Errorf("db.BatchCreate[Team]: %w", err)
		}
		if err := db.BatchCreate(ctx, dbClient, members); err != nil {
			return fmt.Errorf("db.BatchCreate[TeamMember]: %w", err)
		}
		return nil
	})
}
