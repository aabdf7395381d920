package models

import (
	"github.com/nanatgrail/prodigyspace/internal/codec"
	"github.com/nanatgrail/prodigyspace/internal/collection"
)

type TodoCategory string

const (
	TodoStudy       TodoCategory = "study"
	TodoPersonal    TodoCategory = "personal"
	TodoAssignments TodoCategory = "assignments"
	TodoProjects    TodoCategory = "projects"
	TodoOther       TodoCategory = "other"
)

var TodoCategories = []TodoCategory{TodoStudy, TodoPersonal, TodoAssignments, TodoProjects, TodoOther}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// TodoPriorities are the priorities a todo may carry; tasks add PriorityUrgent.
var TodoPriorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

var TaskPriorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

type Todo struct {
	collection.Meta
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Completed   bool             `json:"completed"`
	Category    TodoCategory     `json:"category"`
	Priority    Priority         `json:"priority"`
	DueDate     *codec.Timestamp `json:"dueDate,omitempty"`
}

type TodoStats struct {
	Total             int                  `json:"total"`
	Completed         int                  `json:"completed"`
	Pending           int                  `json:"pending"`
	Overdue           int                  `json:"overdue"`
	TodayTasks        int                  `json:"todayTasks"`
	CategoryBreakdown map[TodoCategory]int `json:"categoryBreakdown"`
}
