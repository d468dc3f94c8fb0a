package seed

import (
	"time"

	"github.com/michael-freling/file-manager/internal/team"
)

func date(month time.Month, day int) time.Time {
	return time.Date(2024, month, day, 10, 0, 0, 0, time.UTC)
}

// testDocument is the content of testdata/seed.*
func testDocument() Document {
	return Document{
		Files: []FileRecord{
			{ID: 1, Name: "Documents", IsFolder: true, Color: "blue", IsFavorite: true, Created: date(time.January, 5), Modified: date(time.January, 5)},
			{ID: 2, Name: "report.pdf", ParentID: 1, Type: "pdf", Size: 500, Created: date(time.February, 1), Modified: date(time.February, 3)},
			{ID: 3, Name: "readme.txt", Type: "text", Size: 100, Created: date(time.March, 1), Modified: date(time.March, 1)},
		},
		Users: []UserRecord{
			{ID: 1, Name: "Sarah Johnson", Email: "sarah.johnson@example.com", Created: date(time.January, 1)},
		},
		Teams: []TeamRecord{
			{
				ID:   1,
				Name: "Product Team",
				Members: []MemberRecord{
					{UserID: 1, Role: string(team.RoleOwner), JoinedAt: date(time.January, 1)},
				},
				Created: date(time.January, 1),
			},
		},
	}
}
