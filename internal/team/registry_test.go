package team

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_AddUser(t *testing.T) {
	testCases := []struct {
		name    string
		user    User
		want    User
		wantErr error
	}{
		{
			name: "Assign the next id",
			user: User{Name: "Lena", Email: "lena@example.com"},
			want: User{ID: 6, Name: "Lena", Email: "lena@example.com", Created: testNow, Modified: testNow},
		},
		{
			name:    "Duplicated id",
			user:    User{ID: 1, Name: "Lena", Email: "lena@example.com"},
			wantErr: ErrInvalidArgument,
		},
		{
			name:    "Duplicated email",
			user:    User{Name: "Lena", Email: "olivia@example.com"},
			wantErr: ErrInvalidArgument,
		},
		{
			name:    "Invalid email",
			user:    User{Name: "Lena", Email: "lena"},
			wantErr: ErrInvalidArgument,
		},
		{
			name:    "Empty name",
			user:    User{Email: "lena@example.com"},
			wantErr: ErrInvalidArgument,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tester := newTester(t)
			registry := tester.newSeededRegistry(t)

			got, gotErr := registry.AddUser(tc.user)
			if tc.wantErr != nil {
				assert.ErrorIs(t, gotErr, tc.wantErr)
				assert.Len(t, registry.Users(), 5)
				return
			}
			assert.NoError(t, gotErr)
			assert.Equal(t, tc.want, got)

			user, err := registry.User(got.ID)
			require.NoError(t, err)
			assert.Equal(t, tc.want, user)
		})
	}
}

func TestRegistry_CreateTeam(t *testing.T) {
	customSettings := Settings{
		AllowGuestAccess:       true,
		DefaultFilePermissions: FilePermissionsPublic,
		StorageLimit:           1024,
	}

	testCases := []struct {
		name    string
		request CreateTeamRequest
		want    Team
		wantErr error
	}{
		{
			name:    "Default settings and an owner",
			request: CreateTeamRequest{Name: "Sales", OwnerID: 3},
			want: Team{
				ID:       3,
				Name:     "Sales",
				Settings: Settings{DefaultFilePermissions: "team", StorageLimit: 10737418240},
				Members: []Member{
					{UserID: 3, Role: RoleOwner, JoinedAt: testNow},
				},
				Created:  testNow,
				Modified: testNow,
			},
		},
		{
			name:    "Custom settings without an owner",
			request: CreateTeamRequest{Name: "Sales", Description: "EMEA", Settings: &customSettings},
			want: Team{
				ID:          3,
				Name:        "Sales",
				Description: "EMEA",
				Settings:    customSettings,
				Members:     []Member{},
				Created:     testNow,
				Modified:    testNow,
			},
		},
		{
			name:    "Unknown owner",
			request: CreateTeamRequest{Name: "Sales", OwnerID: 99},
			wantErr: ErrUserNotFound,
		},
		{
			name:    "Empty name",
			request: CreateTeamRequest{OwnerID: 1},
			wantErr: ErrInvalidArgument,
		},
		{
			name: "Negative storage limit",
			request: CreateTeamRequest{Name: "Sales", Settings: &Settings{
				DefaultFilePermissions: FilePermissionsTeam,
				StorageLimit:           -1,
			}},
			wantErr: ErrInvalidArgument,
		},
		{
			name: "Unknown file permissions",
			request: CreateTeamRequest{Name: "Sales", Settings: &Settings{
				DefaultFilePermissions: "everyone",
			}},
			wantErr: ErrInvalidArgument,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tester := newTester(t)
			registry := tester.newSeededRegistry(t)

			got, gotErr := registry.CreateTeam(tc.request)
			if tc.wantErr != nil {
				assert.ErrorIs(t, gotErr, tc.wantErr)
				assert.Len(t, registry.Teams(), 2)
				return
			}
			assert.NoError(t, gotErr)
			assert.Equal(t, tc.want, got)

			team, err := registry.Team(got.ID)
			require.NoError(t, err)
			assert.Equal(t, tc.want, team)
		})
	}
}

func TestRegistry_DeleteTeam(t *testing.T) {
	tester := newTester(t)
	registry := tester.newSeededRegistry(t)

	require.NoError(t, registry.DeleteTeam(1))
	_, err := registry.Team(1)
	assert.ErrorIs(t, err, ErrTeamNotFound)
	assert.ErrorIs(t, registry.DeleteTeam(1), ErrTeamNotFound)

	teams := registry.Teams()
	require.Len(t, teams, 1)
	assert.Equal(t, uint(2), teams[0].ID)
}

func TestRegistry_Members(t *testing.T) {
	later := testNow.Add(time.Hour)

	testCases := []struct {
		name        string
		update      func(registry *Registry) (Team, error)
		wantMembers []Member
		wantErr     error
	}{
		{
			name: "Add a member",
			update: func(registry *Registry) (Team, error) {
				return registry.AddMember(2, 5, RoleMember)
			},
			wantMembers: []Member{
				{UserID: 4, Role: RoleAdmin, JoinedAt: testNow},
				{UserID: 5, Role: RoleMember, JoinedAt: later},
			},
		},
		{
			name: "Add an existing member",
			update: func(registry *Registry) (Team, error) {
				return registry.AddMember(2, 4, RoleMember)
			},
			wantErr: ErrMemberAlreadyExists,
		},
		{
			name: "Add an unknown user",
			update: func(registry *Registry) (Team, error) {
				return registry.AddMember(2, 99, RoleMember)
			},
			wantErr: ErrUserNotFound,
		},
		{
			name: "Add a member to an unknown team",
			update: func(registry *Registry) (Team, error) {
				return registry.AddMember(99, 5, RoleMember)
			},
			wantErr: ErrTeamNotFound,
		},
		{
			name: "Add a member with an invalid role",
			update: func(registry *Registry) (Team, error) {
				return registry.AddMember(2, 5, Role("Guest"))
			},
			wantErr: ErrInvalidArgument,
		},
		{
			name: "Remove a member",
			update: func(registry *Registry) (Team, error) {
				return registry.RemoveMember(2, 4)
			},
			wantMembers: []Member{},
		},
		{
			name: "Remove a user who is not a member",
			update: func(registry *Registry) (Team, error) {
				return registry.RemoveMember(2, 1)
			},
			wantErr: ErrMemberNotFound,
		},
		{
			name: "Update a role",
			update: func(registry *Registry) (Team, error) {
				return registry.UpdateMemberRole(2, 4, RoleViewer)
			},
			wantMembers: []Member{
				{UserID: 4, Role: RoleViewer, JoinedAt: testNow},
			},
		},
		{
			name: "Update a role of a user who is not a member",
			update: func(registry *Registry) (Team, error) {
				return registry.UpdateMemberRole(2, 1, RoleViewer)
			},
			wantErr: ErrMemberNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tester := newTester(t)
			registry := tester.newSeededRegistry(t)
			tester.now = later
			registry.now = func() time.Time {
				return tester.now
			}
			before, err := registry.Team(2)
			require.NoError(t, err)

			got, gotErr := tc.update(registry)
			after, err := registry.Team(2)
			require.NoError(t, err)
			if tc.wantErr != nil {
				assert.ErrorIs(t, gotErr, tc.wantErr)
				assert.Equal(t, before, after)
				return
			}
			assert.NoError(t, gotErr)
			assert.Equal(t, tc.wantMembers, got.Members)
			assert.Equal(t, later, got.Modified)
			assert.Equal(t, got, after)
		})
	}
}

func TestRegistry_UpdateTeam(t *testing.T) {
	later := testNow.Add(time.Hour)
	name := "Brand"
	description := "Brand and campaigns"
	emptyName := ""
	settings := Settings{
		AllowGuestAccess:       true,
		DefaultFilePermissions: FilePermissionsPrivate,
		StorageLimit:           1024,
	}
	invalidSettings := Settings{
		DefaultFilePermissions: "everyone",
		StorageLimit:           1024,
	}

	testCases := []struct {
		name    string
		id      uint
		request UpdateTeamRequest
		want    func(team Team) Team
		wantErr error
	}{
		{
			name:    "Update the name only",
			id:      2,
			request: UpdateTeamRequest{Name: &name},
			want: func(team Team) Team {
				team.Name = name
				return team
			},
		},
		{
			name: "Update every field",
			id:   2,
			request: UpdateTeamRequest{
				Name:        &name,
				Description: &description,
				Settings:    &settings,
			},
			want: func(team Team) Team {
				team.Name = name
				team.Description = description
				team.Settings = settings
				return team
			},
		},
		{
			name: "Nothing to update",
			id:   2,
			want: func(team Team) Team {
				return team
			},
		},
		{
			name:    "Empty name",
			id:      2,
			request: UpdateTeamRequest{Name: &emptyName},
			wantErr: ErrInvalidArgument,
		},
		{
			name:    "Invalid settings",
			id:      2,
			request: UpdateTeamRequest{Name: &name, Settings: &invalidSettings},
			wantErr: ErrInvalidArgument,
		},
		{
			name:    "Unknown team",
			id:      99,
			request: UpdateTeamRequest{Name: &name},
			wantErr: ErrTeamNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tester := newTester(t)
			registry := tester.newSeededRegistry(t)
			registry.now = func() time.Time {
				return later
			}
			before, err := registry.Team(2)
			require.NoError(t, err)

			got, gotErr := registry.UpdateTeam(tc.id, tc.request)
			after, err := registry.Team(2)
			require.NoError(t, err)
			if tc.wantErr != nil {
				assert.ErrorIs(t, gotErr, tc.wantErr)
				assert.Equal(t, before, after)
				return
			}
			assert.NoError(t, gotErr)

			want := tc.want(before)
			want.Modified = later
			assert.Equal(t, want, got)
			assert.Equal(t, got, after)
		})
	}
}

func TestRegistry_UserTeams(t *testing.T) {
	tester := newTester(t)
	registry := tester.newSeededRegistry(t)

	teamIDs := func(teams []Team) []uint {
		result := make([]uint, 0, len(teams))
		for _, team := range teams {
			result = append(result, team.ID)
		}
		return result
	}
	assert.Equal(t, []uint{1, 2}, teamIDs(registry.UserTeams(4)))
	assert.Equal(t, []uint{1}, teamIDs(registry.UserTeams(1)))
	assert.Empty(t, registry.UserTeams(5))

	users, err := registry.UsersByTeam(2)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Victor", users[0].Name)

	_, err = registry.UsersByTeam(99)
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestRegistry_ReturnsCopies(t *testing.T) {
	tester := newTester(t)
	registry := tester.newSeededRegistry(t)

	team, err := registry.Team(1)
	require.NoError(t, err)
	team.Members[0].Role = RoleViewer

	got, err := registry.Team(1)
	require.NoError(t, err)
	assert.Equal(t, RoleOwner, got.Members[0].Role)
}

func TestRegistry_HasPermission(t *testing.T) {
	testCases := []struct {
		name   string
		actor  Actor
		action Action
		want   bool
	}{
		{name: "No user", actor: Actor{TeamID: 1}, action: ActionDelete, want: true},
		{name: "No team", actor: Actor{UserID: 4}, action: ActionDelete, want: true},
		{name: "Owner can manage", actor: Actor{UserID: 1, TeamID: 1}, action: ActionManage, want: true},
		{name: "Admin cannot manage", actor: Actor{UserID: 2, TeamID: 1}, action: ActionManage, want: false},
		{name: "Admin can delete", actor: Actor{UserID: 2, TeamID: 1}, action: ActionDelete, want: true},
		{name: "Member cannot delete", actor: Actor{UserID: 3, TeamID: 1}, action: ActionDelete, want: false},
		{name: "Member can update", actor: Actor{UserID: 3, TeamID: 1}, action: ActionUpdate, want: true},
		{name: "Viewer can read", actor: Actor{UserID: 4, TeamID: 1}, action: ActionRead, want: true},
		{name: "Viewer cannot create", actor: Actor{UserID: 4, TeamID: 1}, action: ActionCreate, want: false},
		{name: "The role depends on the team", actor: Actor{UserID: 4, TeamID: 2}, action: ActionCreate, want: true},
		{name: "Not a member", actor: Actor{UserID: 5, TeamID: 1}, action: ActionRead, want: false},
		{name: "Unknown team", actor: Actor{UserID: 1, TeamID: 99}, action: ActionRead, want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tester := newTester(t)
			registry := tester.newSeededRegistry(t)

			assert.Equal(t, tc.want, registry.HasPermission(tc.actor, tc.action))
		})
	}
}

func TestRegistry_Authorize(t *testing.T) {
	tester := newTester(t)
	registry := tester.newSeededRegistry(t)

	assert.NoError(t, registry.Authorize(context.Background(), ActionDelete))

	ctx := WithActor(context.Background(), Actor{UserID: 4, TeamID: 1})
	assert.NoError(t, registry.Authorize(ctx, ActionRead))
	assert.ErrorIs(t, registry.Authorize(ctx, ActionDelete), ErrPermissionDenied)

	actor, ok := ActorFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, Actor{UserID: 4, TeamID: 1}, actor)
}
