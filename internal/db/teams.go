package db

import (
	"context"
	"time"
)

type User struct {
	ID        uint `gorm:"primarykey"`
	Name      string
	Email     string `gorm:"uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Team struct {
	ID                     uint `gorm:"primarykey"`
	Name                   string
	Description            string
	AllowGuestAccess       bool
	DefaultFilePermissions string
	StorageLimit           int64
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

type TeamMember struct {
	TeamID   uint `gorm:"primaryKey;autoIncrement:false"`
	UserID   uint `gorm:"primaryKey;autoIncrement:false"`
	Role     string
	JoinedAt time.Time `gorm:"autoCreateTime"`
}

type TeamMemberClient ORMClient[TeamMember]

func (client *Client) TeamMember() *TeamMemberClient {
	return &TeamMemberClient{
		client: client,
	}
}

// FindByTeamID returns the members of a team in the order they were added
func (memberClient *TeamMemberClient) FindByTeamID(ctx context.Context, teamID uint) ([]TeamMember, error) {
	var members []TeamMember
	err := memberClient.client.withContext(ctx).
		Order("rowid").
		Find(&members, "team_id = ?", teamID).
		Error
	return members, err
}
