package seed

import "time"

// Default returns the data set used when no seed file is configured
func Default() Document {
	at := func(month time.Month, day int) time.Time {
		return time.Date(2024, month, day, 10, 0, 0, 0, time.UTC)
	}
	folder := func(id, parentID uint, name string, color string, isFavorite bool, created time.Time) FileRecord {
		return FileRecord{
			ID:         id,
			ParentID:   parentID,
			Name:       name,
			IsFolder:   true,
			Color:      color,
			IsFavorite: isFavorite,
			Created:    created,
			Modified:   created,
		}
	}
	file := func(id, parentID uint, name string, fileType string, size int64, created time.Time) FileRecord {
		return FileRecord{
			ID:       id,
			ParentID: parentID,
			Name:     name,
			Type:     fileType,
			Size:     size,
			Created:  created,
			Modified: created,
		}
	}

	return Document{
		Files: []FileRecord{
			folder(1, 0, "Documents", "blue", true, at(time.January, 5)),
			folder(2, 1, "Work", "", false, at(time.January, 6)),
			file(3, 2, "Q1 Report.pdf", "pdf", 2457600, at(time.March, 30)),
			file(4, 2, "Budget.xlsx", "spreadsheet", 512000, at(time.February, 12)),
			file(5, 1, "Resume.docx", "document", 45056, at(time.January, 20)),
			folder(6, 0, "Pictures", "green", true, at(time.January, 5)),
			folder(7, 6, "Vacation", "yellow", false, at(time.June, 1)),
			file(8, 7, "beach.jpg", "image", 3145728, at(time.June, 3)),
			file(9, 7, "sunset.png", "image", 2097152, at(time.June, 4)),
			folder(10, 0, "Music", "purple", false, at(time.January, 5)),
			file(11, 10, "playlist.mp3", "audio", 5242880, at(time.April, 18)),
			folder(12, 0, "Videos", "red", false, at(time.January, 5)),
			file(13, 12, "tutorial.mp4", "video", 52428800, at(time.May, 9)),
			folder(14, 0, "Archives", "orange", false, at(time.January, 5)),
			file(15, 14, "backup.zip", "archive", 10485760, at(time.July, 1)),
			file(16, 0, "notes.txt", "text", 2048, at(time.July, 15)),
		},
		Users: []UserRecord{
			{ID: 1, Name: "Sarah Johnson", Email: "sarah.johnson@example.com", Created: at(time.January, 1)},
			{ID: 2, Name: "Mike Chen", Email: "mike.chen@example.com", Created: at(time.January, 2)},
			{ID: 3, Name: "Emily Davis", Email: "emily.davis@example.com", Created: at(time.January, 3)},
			{ID: 4, Name: "Alex Rivera", Email: "alex.rivera@example.com", Created: at(time.January, 4)},
		},
		Teams: []TeamRecord{
			{
				ID:          1,
				Name:        "Product Team",
				Description: "Product design and development",
				Members: []MemberRecord{
					{UserID: 1, Role: "Owner", JoinedAt: at(time.January, 1)},
					{UserID: 2, Role: "Admin", JoinedAt: at(time.January, 2)},
					{UserID: 3, Role: "Member", JoinedAt: at(time.January, 3)},
					{UserID: 4, Role: "Viewer", JoinedAt: at(time.January, 4)},
				},
				Created: at(time.January, 1),
			},
			{
				ID:   2,
				Name: "Marketing",
				Members: []MemberRecord{
					{UserID: 3, Role: "Owner", JoinedAt: at(time.February, 1)},
					{UserID: 1, Role: "Member", JoinedAt: at(time.February, 1)},
				},
				Created: at(time.February, 1),
			},
		},
	}
}
