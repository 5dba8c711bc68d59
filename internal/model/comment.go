// File: internal/model/comment.go
package model

import "time"

// UserInfo is the author profile copied into a comment when it is written.
// Later profile edits do not touch it.
type UserInfo struct {
	ID        string `db:"author_id" json:"id"`
	Firstname string `db:"author_firstname" json:"firstname"`
	Lastname  string `db:"author_lastname" json:"lastname"`
	Email     string `db:"author_email" json:"email"`
	Gender    string `db:"author_gender" json:"gender"`
}

type Comment struct {
	ID       string    `db:"id" json:"id"`
	TaskID   string    `db:"task_id" json:"taskId"`
	Comment  string    `db:"comment" json:"comment"`
	UserInfo UserInfo  `json:"userInfo"`
	Date     time.Time `db:"date" json:"date"`
}
