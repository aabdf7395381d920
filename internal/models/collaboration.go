package models

import (
	"github.com/nanatgrail/prodigyspace/internal/codec"
	"github.com/nanatgrail/prodigyspace/internal/collection"
)

type StudyGroup struct {
	collection.Meta
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	Subject         string           `json:"subject"`
	Members         []GroupMember    `json:"members"`
	IsActive        bool             `json:"isActive"`
	MeetingSchedule *MeetingSchedule `json:"meetingSchedule,omitempty"`
}

type MemberRole string

const (
	RoleAdmin  MemberRole = "admin"
	RoleMember MemberRole = "member"
)

type GroupMember struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Role     MemberRole      `json:"role"`
	JoinedAt codec.Timestamp `json:"joinedAt"`
	IsOnline bool            `json:"isOnline"`
}

// CurrentUser is the single local user, added as admin to groups they create.
var CurrentUser = GroupMember{ID: "current-user", Name: "You", Email: "you@example.com", Role: RoleAdmin, IsOnline: true}

type ProjectStatus string

const (
	ProjectPlanning   ProjectStatus = "planning"
	ProjectInProgress ProjectStatus = "in-progress"
	ProjectReview     ProjectStatus = "review"
	ProjectCompleted  ProjectStatus = "completed"
)

type Project struct {
	collection.Meta
	Title       string          `json:"title"`
	Description string          `json:"description"`
	GroupID     string          `json:"groupId"`
	Status      ProjectStatus   `json:"status"`
	DueDate     codec.Timestamp `json:"dueDate"`
	Tasks       []ProjectTask   `json:"tasks"`
	Files       []SharedFile    `json:"files"`
}

type ProjectTask struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	AssignedTo  []string         `json:"assignedTo"`
	Status      string           `json:"status"`
	Priority    Priority         `json:"priority"`
	DueDate     *codec.Timestamp `json:"dueDate,omitempty"`
	CreatedAt   codec.Timestamp  `json:"createdAt"`
}

type SharedFile struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Type       string          `json:"type"`
	Size       int64           `json:"size"`
	UploadedBy string          `json:"uploadedBy"`
	UploadedAt codec.Timestamp `json:"uploadedAt"`
	URL        string          `json:"url"`
}

type MessageType string

const (
	MessageText   MessageType = "text"
	MessageFile   MessageType = "file"
	MessageSystem MessageType = "system"
)

type ChatMessage struct {
	collection.Meta
	GroupID    string          `json:"groupId"`
	SenderID   string          `json:"senderId"`
	SenderName string          `json:"senderName"`
	Content    string          `json:"content"`
	Timestamp  codec.Timestamp `json:"timestamp"`
	Type       MessageType     `json:"type"`
}

type MeetingSchedule struct {
	collection.Meta
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Date         codec.Timestamp `json:"date"`
	Duration     int             `json:"duration"`
	Location     string          `json:"location"`
	Type         string          `json:"type"`
	Participants []string        `json:"participants"`
	Recurring    *Recurring      `json:"recurring,omitempty"`
}

type Recurring struct {
	Frequency string           `json:"frequency"`
	EndDate   *codec.Timestamp `json:"endDate,omitempty"`
}
