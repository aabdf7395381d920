package models

import (
	"github.com/nanatgrail/prodigyspace/internal/codec"
	"github.com/nanatgrail/prodigyspace/internal/collection"
)

type TaskCategory string

const (
	TaskAssignment TaskCategory = "assignment"
	TaskStudy      TaskCategory = "study"
	TaskExam       TaskCategory = "exam"
	TaskProject    TaskCategory = "project"
	TaskPersonal   TaskCategory = "personal"
	TaskReading    TaskCategory = "reading"
)

var TaskCategories = []TaskCategory{TaskAssignment, TaskStudy, TaskExam, TaskProject, TaskPersonal, TaskReading}

type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
	StatusCancelled  TaskStatus = "cancelled"
)

var TaskStatuses = []TaskStatus{StatusTodo, StatusInProgress, StatusCompleted, StatusCancelled}

type Task struct {
	collection.Meta
	Title         string           `json:"title"`
	Description   string           `json:"description,omitempty"`
	Category      TaskCategory     `json:"category"`
	Priority      Priority         `json:"priority"`
	Status        TaskStatus       `json:"status"`
	DueDate       *codec.Timestamp `json:"dueDate,omitempty"`
	EstimatedTime int              `json:"estimatedTime,omitempty"`
	ActualTime    int              `json:"actualTime,omitempty"`
	Tags          []string         `json:"tags"`
	Subtasks      []Subtask        `json:"subtasks"`
	CompletedAt   *codec.Timestamp `json:"completedAt,omitempty"`
	Reminders     []TaskReminder   `json:"reminders"`
	Course        string           `json:"course,omitempty"`
	Professor     string           `json:"professor,omitempty"`
}

type Subtask struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Completed bool            `json:"completed"`
	CreatedAt codec.Timestamp `json:"createdAt"`
}

type ReminderChannel string

const (
	ChannelNotification ReminderChannel = "notification"
	ChannelEmail        ReminderChannel = "email"
)

type TaskReminder struct {
	ID      string          `json:"id"`
	Type    ReminderChannel `json:"type"`
	Time    codec.Timestamp `json:"time"`
	Message string          `json:"message"`
	Sent    bool            `json:"sent"`
}

type StudyTechnique string

const (
	TechniquePomodoro         StudyTechnique = "pomodoro"
	TechniqueTimeBlocking     StudyTechnique = "time-blocking"
	TechniqueActiveRecall     StudyTechnique = "active-recall"
	TechniqueSpacedRepetition StudyTechnique = "spaced-repetition"
)

type StudySession struct {
	collection.Meta
	TaskID       string          `json:"taskId,omitempty"`
	Subject      string          `json:"subject"`
	Topic        string          `json:"topic"`
	Duration     int             `json:"duration"`
	StartTime    codec.Timestamp `json:"startTime"`
	EndTime      codec.Timestamp `json:"endTime"`
	Technique    StudyTechnique  `json:"technique"`
	Productivity int             `json:"productivity"`
	Notes        string          `json:"notes,omitempty"`
	Distractions int             `json:"distractions"`
}

type StudyPlan struct {
	collection.Meta
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	StartDate      codec.Timestamp `json:"startDate"`
	EndDate        codec.Timestamp `json:"endDate"`
	Subjects       []StudySubject  `json:"subjects"`
	TotalHours     float64         `json:"totalHours"`
	CompletedHours float64         `json:"completedHours"`
	IsActive       bool            `json:"isActive"`
}

type StudySubject struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Color          string       `json:"color"`
	AllocatedHours float64      `json:"allocatedHours"`
	CompletedHours float64      `json:"completedHours"`
	Topics         []StudyTopic `json:"topics"`
}

type TopicStatus string

const (
	TopicNotStarted TopicStatus = "not-started"
	TopicInProgress TopicStatus = "in-progress"
	TopicCompleted  TopicStatus = "completed"
)

type StudyTopic struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	EstimatedHours float64     `json:"estimatedHours"`
	CompletedHours float64     `json:"completedHours"`
	Priority       Priority    `json:"priority"`
	Status         TopicStatus `json:"status"`
	Resources      []string    `json:"resources"`
}

type AssignmentType string

const (
	AssignmentEssay        AssignmentType = "essay"
	AssignmentProblemSet   AssignmentType = "problem-set"
	AssignmentProject      AssignmentType = "project"
	AssignmentPresentation AssignmentType = "presentation"
	AssignmentExam         AssignmentType = "exam"
	AssignmentQuiz         AssignmentType = "quiz"
	AssignmentLab          AssignmentType = "lab"
)

type AssignmentStatus string

const (
	AssignmentNotStarted AssignmentStatus = "not-started"
	AssignmentInProgress AssignmentStatus = "in-progress"
	AssignmentCompleted  AssignmentStatus = "completed"
	AssignmentSubmitted  AssignmentStatus = "submitted"
	AssignmentGraded     AssignmentStatus = "graded"
)

type Assignment struct {
	collection.Meta
	Title            string           `json:"title"`
	Course           string           `json:"course"`
	Professor        string           `json:"professor"`
	Type             AssignmentType   `json:"type"`
	DueDate          codec.Timestamp  `json:"dueDate"`
	SubmissionMethod string           `json:"submissionMethod"`
	Status           AssignmentStatus `json:"status"`
	Priority         Priority         `json:"priority"`
	EstimatedHours   float64          `json:"estimatedHours"`
	ActualHours      float64          `json:"actualHours"`
	Grade            string           `json:"grade,omitempty"`
	Feedback         string           `json:"feedback,omitempty"`
	Requirements     []string         `json:"requirements"`
	Resources        []string         `json:"resources"`
}

type TaskStats struct {
	Total              int                  `json:"total"`
	Overdue            int                  `json:"overdue"`
	DueToday           int                  `json:"dueToday"`
	ByStatus           map[TaskStatus]int   `json:"byStatus"`
	ByPriority         map[Priority]int     `json:"byPriority"`
	ByCategory         map[TaskCategory]int `json:"byCategory"`
	WeeklyStudyMinutes []float64            `json:"weeklyStudyMinutes"`
}
