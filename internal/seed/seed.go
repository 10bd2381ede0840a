// Package seed installs the demo schedule into an empty catalog so a fresh
// deployment has something to show.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/example/eventflow/internal/store"
)

type speakerSeed struct {
	id    string
	name  string
	title string
}

type roomSeed struct {
	id    string
	name  string
	color store.RoomColor
}

type sessionSeed struct {
	id          string
	title       string
	speakerID   string
	roomID      string
	date        string
	startTime   string
	endTime     string
	description string
	tags        []string
	attendees   []int
}

var attendeeNames = [][2]string{
	{"Sarah Chen", "sarah.chen@example.com"},
	{"Marcus Williams", "marcus.w@example.com"},
	{"Elena Rodriguez", "elena.r@example.com"},
	{"James Park", "james.park@example.com"},
	{"Amara Okafor", "amara.o@example.com"},
	{"David Kim", "david.kim@example.com"},
	{"Sophie Turner", "sophie.t@example.com"},
	{"Raj Patel", "raj.patel@example.com"},
	{"Isabella Santos", "isabella.s@example.com"},
	{"Omar Hassan", "omar.h@example.com"},
	{"Lily Zhang", "lily.zhang@example.com"},
	{"Alex Morgan", "alex.m@example.com"},
	{"Nina Kowalski", "nina.k@example.com"},
	{"Carlos Mendez", "carlos.m@example.com"},
	{"Aisha Johnson", "aisha.j@example.com"},
}

var speakers = []speakerSeed{
	{"speaker-1", "Dr. Sarah Chen", "AI Research Lead"},
	{"speaker-2", "Marcus Williams", "Principal Engineer"},
	{"speaker-3", "Elena Rodriguez", "Frontend Architect"},
	{"speaker-4", "James Park", "Security Engineer"},
	{"speaker-5", "Amara Okafor", "Data Platform Lead"},
	{"speaker-6", "All Attendees", ""},
	{"speaker-7", "Sophie Turner", "Developer Advocate"},
	{"speaker-8", "Raj Patel", "API Platform Engineer"},
	{"speaker-9", "Omar Hassan", "Site Reliability Engineer"},
	{"speaker-10", "Isabella Santos", "Chief Technology Officer"},
}

var rooms = []roomSeed{
	{"room-1", "Main Auditorium", store.ColorIndigo},
	{"room-2", "Innovation Lab", store.ColorEmerald},
	{"room-3", "Workshop Hall", store.ColorAmber},
	{"room-4", "Studio 4", store.ColorRose},
}

var sessions = []sessionSeed{
	{
		id: "session-1", title: "The Future of AI: Beyond Machine Learning",
		speakerID: "speaker-1", roomID: "room-1",
		date: "2025-12-15", startTime: "09:00", endTime: "10:30",
		description: "Explore the cutting-edge developments in artificial intelligence, including neural architectures, autonomous systems, and ethical considerations. This keynote will set the stage for understanding how AI will transform industries over the next decade.",
		tags:        []string{"AI", "Machine Learning", "Keynote"},
		attendees:   []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
	},
	{
		id: "session-2", title: "Building Scalable Microservices Architecture",
		speakerID: "speaker-2", roomID: "room-2",
		date: "2025-12-15", startTime: "09:00", endTime: "10:00",
		description: "Learn best practices for designing and implementing microservices that can scale to millions of users. We'll cover service mesh, API gateways, and distributed tracing.",
		tags:        []string{"Backend", "Architecture", "Microservices"},
		attendees:   []int{2, 5, 8, 11, 14},
	},
	{
		id: "session-3", title: "Modern Frontend Development with Web Components",
		speakerID: "speaker-3", roomID: "room-3",
		date: "2025-12-15", startTime: "10:00", endTime: "11:30",
		description: "Hands-on workshop covering the latest in frontend development. Build reusable web components, optimize performance, and create delightful user experiences.",
		tags:        []string{"Frontend", "JavaScript", "Workshop"},
		attendees:   []int{3, 6, 9, 12, 15},
	},
	{
		id: "session-4", title: "Cloud Native Security: Best Practices",
		speakerID: "speaker-4", roomID: "room-4",
		date: "2025-12-15", startTime: "11:00", endTime: "12:00",
		description: "Deep dive into securing cloud-native applications. Topics include zero-trust architecture, container security, secrets management, and compliance automation.",
		tags:        []string{"Security", "Cloud", "DevOps"},
		attendees:   []int{4, 7, 10, 13},
	},
	{
		id: "session-5", title: "Data Science in Production: From Notebook to Pipeline",
		speakerID: "speaker-5", roomID: "room-1",
		date: "2025-12-15", startTime: "11:00", endTime: "12:30",
		description: "Transform your data science projects from Jupyter notebooks into production-ready pipelines. Learn about MLOps, model monitoring, and continuous training.",
		tags:        []string{"Data Science", "MLOps", "Python"},
		attendees:   []int{1, 5, 8, 11, 14},
	},
	{
		id: "session-6", title: "Lunch & Network",
		speakerID: "speaker-6", roomID: "room-1",
		date: "2025-12-15", startTime: "12:30", endTime: "14:00",
		description: "Enjoy lunch and connect with fellow attendees, speakers, and sponsors. Great opportunity for networking and discussions.",
		tags:        []string{"Networking", "Break"},
		attendees:   []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
	},
	{
		id: "session-7", title: "Building Developer Communities That Thrive",
		speakerID: "speaker-7", roomID: "room-2",
		date: "2025-12-15", startTime: "14:00", endTime: "15:00",
		description: "Learn strategies for building, growing, and maintaining engaged developer communities. From online forums to in-person meetups, discover what works.",
		tags:        []string{"Community", "DevRel", "Leadership"},
		attendees:   []int{7, 9, 12, 15},
	},
	{
		id: "session-8", title: "GraphQL vs REST: Making the Right Choice",
		speakerID: "speaker-8", roomID: "room-3",
		date: "2025-12-15", startTime: "14:00", endTime: "15:30",
		description: "Compare GraphQL and REST APIs through real-world examples. Understand when to use each approach and how to implement them effectively.",
		tags:        []string{"API", "GraphQL", "Backend"},
		attendees:   []int{2, 8, 11, 14},
	},
	{
		id: "session-9", title: "Kubernetes in Production: Lessons Learned",
		speakerID: "speaker-9", roomID: "room-4",
		date: "2025-12-15", startTime: "15:30", endTime: "17:00",
		description: "Real-world lessons from running Kubernetes at scale. Topics include cluster management, resource optimization, and disaster recovery.",
		tags:        []string{"Kubernetes", "DevOps", "Infrastructure"},
		attendees:   []int{4, 10, 13},
	},
	{
		id: "session-10", title: "Closing Keynote: Tech Trends 2026",
		speakerID: "speaker-10", roomID: "room-1",
		date: "2025-12-15", startTime: "17:00", endTime: "18:00",
		description: "A forward-looking discussion on emerging technologies and trends that will shape the industry in 2026 and beyond. Q&A session included.",
		tags:        []string{"Keynote", "Trends", "Future"},
		attendees:   []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
	},
}

// Apply installs the demo data. It is a no-op when the catalog already holds
// sessions; it writes directly to the store so the ids stay deterministic.
func Apply(ctx context.Context, st *store.Store, now func() time.Time) error {
	if st == nil {
		return nil
	}
	if now == nil {
		now = time.Now
	}
	if st.Stats().Sessions > 0 {
		return nil
	}

	createdAt := now()

	for i, entry := range attendeeNames {
		attendee := store.Attendee{
			ID:        fmt.Sprintf("attendee-%d", i+1),
			Name:      entry[0],
			Email:     entry[1],
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		}
		if err := st.AddAttendee(ctx, attendee); err != nil {
			return fmt.Errorf("seed attendee %s: %w", attendee.ID, err)
		}
	}

	for _, entry := range speakers {
		speaker := store.Speaker{
			ID:        entry.id,
			Name:      entry.name,
			Title:     entry.title,
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		}
		if err := st.AddSpeaker(ctx, speaker); err != nil {
			return fmt.Errorf("seed speaker %s: %w", speaker.ID, err)
		}
	}

	for _, entry := range rooms {
		room := store.Room{
			ID:        entry.id,
			Name:      entry.name,
			Color:     entry.color,
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		}
		if err := st.AddRoom(ctx, room); err != nil {
			return fmt.Errorf("seed room %s: %w", room.ID, err)
		}
	}

	for _, entry := range sessions {
		attendeeIDs := make([]string, 0, len(entry.attendees))
		for _, n := range entry.attendees {
			attendeeIDs = append(attendeeIDs, fmt.Sprintf("attendee-%d", n))
		}
		session := store.Session{
			ID:          entry.id,
			Title:       entry.title,
			SpeakerID:   entry.speakerID,
			RoomID:      entry.roomID,
			Date:        entry.date,
			StartTime:   entry.startTime,
			EndTime:     entry.endTime,
			Description: entry.description,
			Tags:        entry.tags,
			AttendeeIDs: attendeeIDs,
			CreatedAt:   createdAt,
		}
		if err := st.AddSession(ctx, session); err != nil {
			return fmt.Errorf("seed session %s: %w", session.ID, err)
		}
	}

	return nil
}
