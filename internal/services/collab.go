package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/nanatgrail/prodigyspace/internal/aggregate"
	"github.com/nanatgrail/prodigyspace/internal/codec"
	"github.com/nanatgrail/prodigyspace/internal/collection"
	"github.com/nanatgrail/prodigyspace/internal/common"
	"github.com/nanatgrail/prodigyspace/internal/models"
)

// CollabService keeps study groups, group projects, chat messages and
// meeting schedules. Everything is local; "members" are records only.
type CollabService struct {
	groups   *collection.Store[models.StudyGroup, *models.StudyGroup]
	projects *collection.Store[models.Project, *models.Project]
	messages *collection.Store[models.ChatMessage, *models.ChatMessage]
	meetings *collection.Store[models.MeetingSchedule, *models.MeetingSchedule]

	clock clockwork.Clock
	newID func() string
}

func NewCollabService(d Deps) *CollabService {
	d = d.normalize()
	opts := d.storeOptions()
	return &CollabService{
		groups:   collection.New[models.StudyGroup](d.Backend, models.KeyStudyGroups, opts...),
		projects: collection.New[models.Project](d.Backend, models.KeyProjects, opts...),
		messages: collection.New[models.ChatMessage](d.Backend, models.KeyMessages, opts...),
		meetings: collection.New[models.MeetingSchedule](d.Backend, models.KeyMeetings, opts...),
		clock:    d.Clock,
		newID:    d.NewID,
	}
}

func (s *CollabService) Load(ctx context.Context) error {
	return loadAll(ctx, s.groups, s.projects, s.messages, s.meetings)
}

func (s *CollabService) Reload(ctx context.Context) error {
	return reloadAll(ctx, s.groups, s.projects, s.messages, s.meetings)
}

// CreateGroup stores a group whose only member is the current user, as
// admin.
func (s *CollabService) CreateGroup(ctx context.Context, g models.StudyGroup) (models.StudyGroup, error) {
	if strings.TrimSpace(g.Name) == "" {
		return models.StudyGroup{}, fmt.Errorf("group name is required: %w", common.ErrInvalidInput)
	}
	me := models.CurrentUser
	me.JoinedAt = codec.NewTimestamp(s.clock.Now())
	g.Members = []models.GroupMember{me}
	return s.groups.Create(ctx, g)
}

// AddMember appends m to the group. Members are keyed by email; adding an
// existing email changes nothing and reports false.
func (s *CollabService) AddMember(ctx context.Context, groupID string, m models.GroupMember) (bool, error) {
	g, ok := s.groups.Get(groupID)
	if !ok {
		return false, nil
	}
	if slices.ContainsFunc(g.Members, func(x models.GroupMember) bool { return x.Email == m.Email }) {
		return false, nil
	}
	if m.ID == "" {
		m.ID = s.newID()
	}
	if m.Role == "" {
		m.Role = models.RoleMember
	}
	m.JoinedAt = codec.NewTimestamp(s.clock.Now())
	return s.groups.Update(ctx, groupID, func(g *models.StudyGroup) {
		g.Members = append(slices.Clone(g.Members), m)
	})
}

func (s *CollabService) DeleteGroup(ctx context.Context, id string) (bool, error) {
	return s.groups.Delete(ctx, id)
}

func (s *CollabService) Groups() []models.StudyGroup { return s.groups.Items() }

func (s *CollabService) Group(id string) (models.StudyGroup, bool) { return s.groups.Get(id) }

// CreateProject stores a project with no tasks or files.
func (s *CollabService) CreateProject(ctx context.Context, p models.Project) (models.Project, error) {
	if strings.TrimSpace(p.Title) == "" {
		return models.Project{}, fmt.Errorf("project title is required: %w", common.ErrInvalidInput)
	}
	if p.Status == "" {
		p.Status = models.ProjectPlanning
	}
	p.Tasks = []models.ProjectTask{}
	p.Files = []models.SharedFile{}
	return s.projects.Create(ctx, p)
}

func (s *CollabService) AddProjectTask(ctx context.Context, projectID string, t models.ProjectTask) (models.ProjectTask, bool, error) {
	if strings.TrimSpace(t.Title) == "" {
		return models.ProjectTask{}, false, fmt.Errorf("task title is required: %w", common.ErrInvalidInput)
	}
	t.ID = s.newID()
	t.CreatedAt = codec.NewTimestamp(s.clock.Now())
	t.AssignedTo = orEmpty(t.AssignedTo)
	if t.Status == "" {
		t.Status = "todo"
	}
	ok, err := s.projects.Update(ctx, projectID, func(p *models.Project) {
		p.Tasks = append(slices.Clone(p.Tasks), t)
	})
	return t, ok, err
}

func (s *CollabService) UpdateProject(ctx context.Context, id string, fn func(*models.Project)) (bool, error) {
	return s.projects.Update(ctx, id, fn)
}

func (s *CollabService) Projects() []models.Project { return s.projects.Items() }

func (s *CollabService) GroupProjects(groupID string) []models.Project {
	return aggregate.Filter(s.projects.Items(), func(p models.Project) bool { return p.GroupID == groupID })
}

// SendMessage stamps the message with the current time.
func (s *CollabService) SendMessage(ctx context.Context, m models.ChatMessage) (models.ChatMessage, error) {
	if strings.TrimSpace(m.Content) == "" {
		return models.ChatMessage{}, fmt.Errorf("message is empty: %w", common.ErrInvalidInput)
	}
	if m.Type == "" {
		m.Type = models.MessageText
	}
	if m.SenderID == "" {
		m.SenderID, m.SenderName = models.CurrentUser.ID, models.CurrentUser.Name
	}
	m.Timestamp = codec.NewTimestamp(s.clock.Now())
	return s.messages.Create(ctx, m)
}

// Messages returns a group's messages in send order.
func (s *CollabService) Messages(groupID string) []models.ChatMessage {
	items := aggregate.Filter(s.messages.Items(), func(m models.ChatMessage) bool { return m.GroupID == groupID })
	slices.SortStableFunc(items, func(a, b models.ChatMessage) int { return a.Timestamp.Compare(b.Timestamp.Time) })
	return items
}

func (s *CollabService) ScheduleMeeting(ctx context.Context, m models.MeetingSchedule) (models.MeetingSchedule, error) {
	if strings.TrimSpace(m.Title) == "" {
		return models.MeetingSchedule{}, fmt.Errorf("meeting title is required: %w", common.ErrInvalidInput)
	}
	if m.Date.IsZero() {
		return models.MeetingSchedule{}, fmt.Errorf("meeting date is required: %w", common.ErrInvalidInput)
	}
	m.Participants = orEmpty(m.Participants)
	return s.meetings.Create(ctx, m)
}

func (s *CollabService) Meetings() []models.MeetingSchedule { return s.meetings.Items() }

// Upcoming lists meetings that have not ended yet, soonest first.
func (s *CollabService) Upcoming() []models.MeetingSchedule {
	now := s.clock.Now()
	items := aggregate.Filter(s.meetings.Items(), func(m models.MeetingSchedule) bool {
		end := m.Date.Add(time.Duration(m.Duration) * time.Minute)
		return end.After(now)
	})
	slices.SortStableFunc(items, func(a, b models.MeetingSchedule) int { return a.Date.Compare(b.Date.Time) })
	return items
}
