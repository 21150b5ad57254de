package model

import "time"

// Task is a single entry in the list. Its display position is not stored;
// it is the task's index in the list manager's mirror.
type Task struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IndexedTask pairs a task with its current display index.
type IndexedTask struct {
	Index int  `json:"index"`
	Task  Task `json:"task"`
}
