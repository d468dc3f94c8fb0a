package main

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/michael-freling/file-manager/internal/config"
	"github.com/michael-freling/file-manager/internal/seed"
	"github.com/michael-freling/file-manager/internal/xerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitArgs(t *testing.T) {
	testCases := []struct {
		line    string
		want    []string
		wantErr error
	}{
		{line: "ls", want: []string{"ls"}},
		{line: `  rename  "Q1 Report.pdf"   Report.pdf `, want: []string{"rename", "Q1 Report.pdf", "Report.pdf"}},
		{line: `rename 'b c.txt' d.txt`, want: []string{"rename", "b c.txt", "d.txt"}},
		{line: `rename a\ b c`, want: []string{"rename", "a b", "c"}},
		{line: `mkdir '12" vinyl'`, want: []string{"mkdir", `12" vinyl`}},
		{line: `mkdir 12\" vinyl`, want: []string{"mkdir", `12"`, "vinyl"}},
		{line: `upload "" 10`, want: []string{"upload", "", "10"}},
		{line: "", want: []string{}},
		{line: `mkdir 12" vinyl`, wantErr: xerrors.ErrInvalidArgument},
		{line: `upload "unterminated`, wantErr: xerrors.ErrInvalidArgument},
	}

	for _, tc := range testCases {
		t.Run(tc.line, func(t *testing.T) {
			got, gotErr := splitArgs(tc.line)
			if tc.wantErr != nil {
				assert.ErrorIs(t, gotErr, tc.wantErr)
				return
			}
			assert.NoError(t, gotErr)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestShell_Run(t *testing.T) {
	testCases := []struct {
		name      string
		conf      config.Config
		script    []string
		want      []string
		wantNotIn []string
	}{
		{
			name: "Create, rename and delete",
			script: []string{
				"cd Documents",
				"mkdir Notes",
				"cd Notes",
				`upload "meeting notes.txt" 2KiB`,
				"cd ..",
				"rename Notes Minutes",
				"tree Minutes",
				"rm Minutes Work",
				"ls",
			},
			want: []string{
				"Created /Documents/Notes",
				"Uploaded /Documents/Notes/meeting notes.txt (2.0 KiB)",
				"Renamed to /Documents/Minutes",
				"meeting notes.txt (2.0 KiB)",
				"Deleted 5 items",
				"Resume.docx",
				"1 item\n",
			},
		},
		{
			name: "The current folder follows a renamed ancestor",
			script: []string{
				"cd /Documents/Work",
				"rename /Documents Docs",
				"pwd",
				"mv /Docs/Work /Pictures",
				"pwd",
			},
			want: []string{
				"/Docs/Work\n",
				"Moved to /Pictures/Work",
				"/Pictures/Work\n",
			},
		},
		{
			name: "Folder colors and favorites",
			script: []string{
				"color Music pink",
				"fav Music",
				"favorites",
				"color notes.txt red",
			},
			want: []string{
				"Changed the color of /Music",
				"Added /Music to favorites",
				"3 items",
				"error: service.ChangeFolderColor: store.SetColor:",
			},
		},
		{
			name: "Errors don't stop the shell",
			script: []string{
				"cd /missing",
				"bogus",
				"find beach",
			},
			want: []string{
				`unknown command "bogus"`,
				"beach.jpg",
			},
		},
		{
			name: "Quoted names",
			script: []string{
				`mkdir '12" vinyl'`,
				`cd 12\"\ vinyl`,
				"pwd",
				`upload "" 10`,
			},
			want: []string{
				`Created /12" vinyl`,
				"/12\" vinyl\n",
				"error: service.Upload:",
			},
			wantNotIn: []string{"Uploaded"},
		},
		{
			name: "Owner updates the team",
			conf: config.Config{UserID: 1, TeamID: 1},
			script: []string{
				"team",
				`team name "Product Design"`,
				"team limit 100MiB",
				"usage",
				"team",
			},
			want: []string{
				"Product Team\n",
				"Sarah Johnson",
				"4 members",
				"Updated the team Product Design",
				"73 MiB / 100 MiB (72.9%)",
				"Storage limit: 100 MiB",
			},
		},
		{
			name: "Owner manages members",
			conf: config.Config{UserID: 1, TeamID: 1},
			script: []string{
				"member rm 4",
				"member add 4 Member",
				"member role 4 Viewer",
				"member add 2 Member",
				"member add 4 Boss",
				"member role 3",
			},
			want: []string{
				"Product Team has 3 members",
				"Product Team has 4 members",
				"error: teamService.AddMember: member already exists",
				`role "Boss"`,
				"member role needs a role",
			},
		},
		{
			name: "Admin cannot manage members",
			conf: config.Config{UserID: 2, TeamID: 1},
			script: []string{
				"member rm 4",
			},
			want: []string{
				"error: teamService.RemoveMember: registry.Authorize: permission denied",
			},
			wantNotIn: []string{"has 3 members"},
		},
		{
			name: "Viewer cannot update the team",
			conf: config.Config{UserID: 4, TeamID: 1},
			script: []string{
				"team name Viewers",
				"team limit lots",
			},
			want: []string{
				"error: teamService.UpdateCurrentTeam: registry.Authorize: permission denied",
				`limit "lots"`,
			},
			wantNotIn: []string{"Updated"},
		},
		{
			name: "Viewer cannot create a folder",
			conf: config.Config{UserID: 4, TeamID: 1},
			script: []string{
				"mkdir Notes",
				"usage",
			},
			want: []string{
				"permission denied",
				"73 MiB / 10 GiB (0.7%)",
			},
			wantNotIn: []string{"Created"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tester := newTester(t)
			app := tester.newApp(t, tc.conf)

			in := strings.NewReader(strings.Join(append(tc.script, "exit"), "\n") + "\n")
			require.NoError(t, newShell(app, in, &tester.out).run(context.Background()))

			got := tester.out.String()
			for _, want := range tc.want {
				assert.Contains(t, got, want)
			}
			for _, notWant := range tc.wantNotIn {
				assert.NotContains(t, got, notWant)
			}
		})
	}
}

func TestShell_Save(t *testing.T) {
	tester := newTester(t)
	app := tester.newApp(t, config.Config{})
	filePath := filepath.Join(t.TempDir(), "session.yaml")

	script := strings.Join([]string{
		"upload backup.folder 100 folder",
		"mkdir Projects",
		"save " + filePath,
		"save " + filePath,
		"exit",
	}, "\n")
	require.NoError(t, newShell(app, strings.NewReader(script), &tester.out).run(context.Background()))
	assert.Contains(t, tester.out.String(), "Saved 18 files to "+filePath)
	assert.Contains(t, tester.out.String(), "file already exists")

	document, err := seed.LoadFile(context.Background(), filePath)
	require.NoError(t, err)
	reloaded := tester.newApp(t, config.Config{SeedFile: filePath})

	uploaded, err := reloaded.store.GetByPath("/backup.folder")
	require.NoError(t, err)
	assert.False(t, uploaded.IsFolder())
	assert.Equal(t, int64(100), uploaded.Size())
	projects, err := reloaded.store.GetByPath("/Projects")
	require.NoError(t, err)
	assert.True(t, projects.IsFolder())
	assert.Len(t, document.Teams, 2)
}
