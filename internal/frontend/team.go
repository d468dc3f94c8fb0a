package frontend

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/michael-freling/file-manager/internal/team"
	"github.com/michael-freling/file-manager/internal/xerrors"
)

type TeamMember struct {
	UserID   uint      `json:"userId"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Role     team.Role `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}

type Team struct {
	ID          uint          `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Settings    team.Settings `json:"settings"`
	Members     []TeamMember  `json:"members"`
	Modified    time.Time     `json:"modified"`
}

type TeamService struct {
	logger   *slog.Logger
	registry *team.Registry
}

func NewTeamService(logger *slog.Logger, registry *team.Registry) *TeamService {
	return &TeamService{
		logger:   logger,
		registry: registry,
	}
}

func (service TeamService) convertTeam(value team.Team) (Team, error) {
	users, err := service.registry.UsersByTeam(value.ID)
	if err != nil {
		return Team{}, fmt.Errorf("registry.UsersByTeam: %w", err)
	}
	members := make([]TeamMember, 0, len(value.Members))
	for index, member := range value.Members {
		members = append(members, TeamMember{
			UserID:   member.UserID,
			Name:     users[index].Name,
			Email:    users[index].Email,
			Role:     member.Role,
			JoinedAt: member.JoinedAt,
		})
	}
	return Team{
		ID:          value.ID,
		Name:        value.Name,
		Description: value.Description,
		Settings:    value.Settings,
		Members:     members,
		Modified:    value.Modified,
	}, nil
}

// currentTeamID returns the team of the actor after checking the permission for the action
func (service TeamService) currentTeamID(ctx context.Context, action team.Action) (uint, error) {
	actor, _ := team.ActorFromContext(ctx)
	if actor.IsAnonymous() {
		return 0, fmt.Errorf("%w: no team is selected", xerrors.ErrInvalidArgument)
	}
	if err := service.registry.Authorize(ctx, action); err != nil {
		service.logger.WarnContext(ctx, "Permission denied", "action", action, "error", err)
		return 0, fmt.Errorf("registry.Authorize: %w", err)
	}
	return actor.TeamID, nil
}

// ReadCurrentTeam returns the team of the actor with its members
func (service TeamService) ReadCurrentTeam(ctx context.Context) (Team, error) {
	teamID, err := service.currentTeamID(ctx, team.ActionRead)
	if err != nil {
		return Team{}, err
	}
	value, err := service.registry.Team(teamID)
	if err != nil {
		return Team{}, fmt.Errorf("registry.Team: %w", err)
	}
	return service.convertTeam(value)
}

// UpdateCurrentTeam changes the team of the actor. Only owners can do it
func (service TeamService) UpdateCurrentTeam(ctx context.Context, request team.UpdateTeamRequest) (Team, error) {
	teamID, err := service.currentTeamID(ctx, team.ActionManage)
	if err != nil {
		return Team{}, err
	}
	value, err := service.registry.UpdateTeam(teamID, request)
	if err != nil {
		return Team{}, fmt.Errorf("registry.UpdateTeam: %w", err)
	}
	service.logger.InfoContext(ctx, "Updated a team",
		"teamId", teamID,
		"name", value.Name,
		"storageLimit", value.Settings.StorageLimit,
	)
	return service.convertTeam(value)
}

// AddMember adds a user to the team of the actor. Only owners can do it
func (service TeamService) AddMember(ctx context.Context, userID uint, role team.Role) (Team, error) {
	return service.updateMembers(ctx, "Added a member", userID, func(teamID uint) (team.Team, error) {
		return service.registry.AddMember(teamID, userID, role)
	})
}

func (service TeamService) RemoveMember(ctx context.Context, userID uint) (Team, error) {
	return service.updateMembers(ctx, "Removed a member", userID, func(teamID uint) (team.Team, error) {
		return service.registry.RemoveMember(teamID, userID)
	})
}

func (service TeamService) UpdateMemberRole(ctx context.Context, userID uint, role team.Role) (Team, error) {
	return service.updateMembers(ctx, "Updated a role", userID, func(teamID uint) (team.Team, error) {
		return service.registry.UpdateMemberRole(teamID, userID, role)
	})
}

func (service TeamService) updateMembers(ctx context.Context, message string, userID uint, update func(teamID uint) (team.Team, error)) (Team, error) {
	teamID, err := service.currentTeamID(ctx, team.ActionManage)
	if err != nil {
		return Team{}, err
	}
	value, err := update(teamID)
	if err != nil {
		return Team{}, err
	}
	service.logger.InfoContext(ctx, message, "teamId", teamID, "userId", userID)
	return service.convertTeam(value)
}
