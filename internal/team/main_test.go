package team

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)

type tester struct {
	now time.Time
}

func newTester(t *testing.T) tester {
	t.Helper()
	return tester{
		now: testNow,
	}
}

func (tester tester) newRegistry() *Registry {
	return NewRegistry(WithNow(func() time.Time {
		return tester.now
	}))
}

// newSeededRegistry has the users 1 to 4 as Owner, Admin, Member and Viewer of team 1
func (tester tester) newSeededRegistry(t *testing.T) *Registry {
	t.Helper()

	registry := tester.newRegistry()
	for _, user := range []User{
		{ID: 1, Name: "Olivia", Email: "olivia@example.com"},
		{ID: 2, Name: "Adam", Email: "adam@example.com"},
		{ID: 3, Name: "Mia", Email: "mia@example.com"},
		{ID: 4, Name: "Victor", Email: "victor@example.com"},
		{ID: 5, Name: "Nora", Email: "nora@example.com"},
	} {
		_, err := registry.AddUser(user)
		require.NoError(t, err)
	}
	_, err := registry.AddTeam(Team{
		ID:       1,
		Name:     "Design",
		Settings: DefaultSettings(),
		Members: []Member{
			{UserID: 1, Role: RoleOwner},
			{UserID: 2, Role: RoleAdmin},
			{UserID: 3, Role: RoleMember},
			{UserID: 4, Role: RoleViewer},
		},
	})
	require.NoError(t, err)
	_, err = registry.AddTeam(Team{
		ID:       2,
		Name:     "Marketing",
		Settings: DefaultSettings(),
		Members: []Member{
			{UserID: 4, Role: RoleAdmin},
		},
	})
	require.NoError(t, err)
	return registry
}
