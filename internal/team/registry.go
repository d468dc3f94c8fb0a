package team

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"
)

// Registry keeps users and teams in memory
type Registry struct {
	now func() time.Time

	mu        sync.RWMutex
	users     map[uint]User
	userOrder []uint
	teams     map[uint]*Team
	teamOrder []uint
}

type RegistryOption func(*Registry)

func WithNow(now func() time.Time) RegistryOption {
	return func(registry *Registry) {
		registry.now = now
	}
}

func NewRegistry(options ...RegistryOption) *Registry {
	registry := &Registry{
		now:   time.Now,
		users: make(map[uint]User),
		teams: make(map[uint]*Team),
	}
	for _, option := range options {
		option(registry)
	}
	return registry
}

// AddUser registers a user. A zero ID gets the next free id
func (registry *Registry) AddUser(user User) (User, error) {
	if err := user.validate(); err != nil {
		return User{}, err
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()

	if user.ID == 0 {
		user.ID = nextID(registry.userOrder)
	}
	if _, ok := registry.users[user.ID]; ok {
		return User{}, fmt.Errorf("%w: user %d already exists", ErrInvalidArgument, user.ID)
	}
	for _, existing := range registry.users {
		if existing.Email == user.Email {
			return User{}, fmt.Errorf("%w: email %s is already used", ErrInvalidArgument, user.Email)
		}
	}
	if user.Created.IsZero() {
		user.Created = registry.now()
	}
	if user.Modified.IsZero() {
		user.Modified = user.Created
	}

	registry.users[user.ID] = user
	registry.userOrder = append(registry.userOrder, user.ID)
	return user, nil
}

func (registry *Registry) User(id uint) (User, error) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	user, ok := registry.users[id]
	if !ok {
		return User{}, fmt.Errorf("%w: %d", ErrUserNotFound, id)
	}
	return user, nil
}

func (registry *Registry) Users() []User {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	result := make([]User, 0, len(registry.userOrder))
	for _, id := range registry.userOrder {
		result = append(result, registry.users[id])
	}
	return result
}

type CreateTeamRequest struct {
	Name        string
	Description string
	OwnerID     uint
	// Settings are DefaultSettings() if nil
	Settings *Settings
}

// CreateTeam creates a team with the owner as its first member
func (registry *Registry) CreateTeam(request CreateTeamRequest) (Team, error) {
	settings := DefaultSettings()
	if request.Settings != nil {
		settings = *request.Settings
	}
	team := Team{
		Name:        request.Name,
		Description: request.Description,
		Settings:    settings,
		Members:     make([]Member, 0),
	}
	if request.OwnerID != 0 {
		team.Members = append(team.Members, Member{
			UserID: request.OwnerID,
			Role:   RoleOwner,
		})
	}
	return registry.AddTeam(team)
}

// AddTeam registers a team with its members as they are, for example from seed data.
// A zero ID gets the next free id
func (registry *Registry) AddTeam(team Team) (Team, error) {
	if err := team.validate(); err != nil {
		return Team{}, err
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()

	if team.ID == 0 {
		team.ID = nextID(registry.teamOrder)
	}
	if _, ok := registry.teams[team.ID]; ok {
		return Team{}, fmt.Errorf("%w: team %d already exists", ErrInvalidArgument, team.ID)
	}

	now := registry.now()
	if team.Created.IsZero() {
		team.Created = now
	}
	if team.Modified.IsZero() {
		team.Modified = team.Created
	}
	team = team.clone()
	if team.Members == nil {
		team.Members = make([]Member, 0)
	}
	seen := make(map[uint]struct{}, len(team.Members))
	for index, member := range team.Members {
		if _, ok := registry.users[member.UserID]; !ok {
			return Team{}, fmt.Errorf("%w: %d", ErrUserNotFound, member.UserID)
		}
		if _, ok := seen[member.UserID]; ok {
			return Team{}, fmt.Errorf("%w: user %d", ErrMemberAlreadyExists, member.UserID)
		}
		seen[member.UserID] = struct{}{}
		if err := member.Role.Validate(); err != nil {
			return Team{}, fmt.Errorf("%w: role of user %d: %w", ErrInvalidArgument, member.UserID, err)
		}
		if member.JoinedAt.IsZero() {
			team.Members[index].JoinedAt = now
		}
	}

	registry.teams[team.ID] = &team
	registry.teamOrder = append(registry.teamOrder, team.ID)
	return team.clone(), nil
}

func (registry *Registry) Team(id uint) (Team, error) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	team, ok := registry.teams[id]
	if !ok {
		return Team{}, fmt.Errorf("%w: %d", ErrTeamNotFound, id)
	}
	return team.clone(), nil
}

func (registry *Registry) Teams() []Team {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	result := make([]Team, 0, len(registry.teamOrder))
	for _, id := range registry.teamOrder {
		result = append(result, registry.teams[id].clone())
	}
	return result
}

func (registry *Registry) DeleteTeam(id uint) error {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	if _, ok := registry.teams[id]; !ok {
		return fmt.Errorf("%w: %d", ErrTeamNotFound, id)
	}
	delete(registry.teams, id)
	registry.teamOrder = slices.DeleteFunc(registry.teamOrder, func(teamID uint) bool {
		return teamID == id
	})
	return nil
}

func (registry *Registry) AddMember(teamID, userID uint, role Role) (Team, error) {
	if err := role.Validate(); err != nil {
		return Team{}, fmt.Errorf("%w: role: %w", ErrInvalidArgument, err)
	}

	return registry.updateTeam(teamID, func(team *Team) error {
		if _, ok := registry.users[userID]; !ok {
			return fmt.Errorf("%w: %d", ErrUserNotFound, userID)
		}
		if team.memberIndex(userID) >= 0 {
			return fmt.Errorf("%w: user %d in team %d", ErrMemberAlreadyExists, userID, teamID)
		}
		team.Members = append(team.Members, Member{
			UserID:   userID,
			Role:     role,
			JoinedAt: registry.now(),
		})
		return nil
	})
}

func (registry *Registry) RemoveMember(teamID, userID uint) (Team, error) {
	return registry.updateTeam(teamID, func(team *Team) error {
		index := team.memberIndex(userID)
		if index < 0 {
			return fmt.Errorf("%w: user %d in team %d", ErrMemberNotFound, userID, teamID)
		}
		team.Members = slices.Delete(team.Members, index, index+1)
		return nil
	})
}

func (registry *Registry) UpdateMemberRole(teamID, userID uint, role Role) (Team, error) {
	if err := role.Validate(); err != nil {
		return Team{}, fmt.Errorf("%w: role: %w", ErrInvalidArgument, err)
	}

	return registry.updateTeam(teamID, func(team *Team) error {
		index := team.memberIndex(userID)
		if index < 0 {
			return fmt.Errorf("%w: user %d in team %d", ErrMemberNotFound, userID, teamID)
		}
		team.Members[index].Role = role
		return nil
	})
}

type UpdateTeamRequest struct {
	// nil fields are kept as they are
	Name        *string
	Description *string
	Settings    *Settings
}

// UpdateTeam changes the name, the description or the settings of a team
func (registry *Registry) UpdateTeam(id uint, request UpdateTeamRequest) (Team, error) {
	return registry.updateTeam(id, func(team *Team) error {
		if request.Name != nil {
			team.Name = *request.Name
		}
		if request.Description != nil {
			team.Description = *request.Description
		}
		if request.Settings != nil {
			team.Settings = *request.Settings
		}
		return team.validate()
	})
}

func (registry *Registry) updateTeam(teamID uint, update func(team *Team) error) (Team, error) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	team, ok := registry.teams[teamID]
	if !ok {
		return Team{}, fmt.Errorf("%w: %d", ErrTeamNotFound, teamID)
	}
	updated := team.clone()
	if err := update(&updated); err != nil {
		return Team{}, err
	}
	updated.Modified = registry.now()
	*team = updated
	return updated.clone(), nil
}

// UserTeams returns the teams the user is a member of
func (registry *Registry) UserTeams(userID uint) []Team {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	result := make([]Team, 0)
	for _, id := range registry.teamOrder {
		team := registry.teams[id]
		if team.memberIndex(userID) >= 0 {
			result = append(result, team.clone())
		}
	}
	return result
}

func (registry *Registry) UsersByTeam(teamID uint) ([]User, error) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	team, ok := registry.teams[teamID]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrTeamNotFound, teamID)
	}
	result := make([]User, 0, len(team.Members))
	for _, member := range team.Members {
		result = append(result, registry.users[member.UserID])
	}
	return result, nil
}

// HasPermission reports whether the actor can do the action.
// Anyone who is not signed in to a team has every permission
func (registry *Registry) HasPermission(actor Actor, action Action) bool {
	if actor.IsAnonymous() {
		return true
	}

	registry.mu.RLock()
	defer registry.mu.RUnlock()

	team, ok := registry.teams[actor.TeamID]
	if !ok {
		return false
	}
	member, ok := team.Member(actor.UserID)
	if !ok {
		return false
	}
	return member.Role.Can(action)
}

// Authorize checks the permission of the actor in ctx
func (registry *Registry) Authorize(ctx context.Context, action Action) error {
	actor, _ := ActorFromContext(ctx)
	if registry.HasPermission(actor, action) {
		return nil
	}
	return fmt.Errorf("%w: user %d cannot %s in team %d", ErrPermissionDenied, actor.UserID, action, actor.TeamID)
}

func nextID(ids []uint) uint {
	var maxID uint
	for _, id := range ids {
		maxID = max(maxID, id)
	}
	return maxID + 1
}
