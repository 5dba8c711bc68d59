// File: internal/model/board.go
package model

import "time"

// Board is owned by exactly one user. SortID comes from the boards
// collection sequence, shared by every owner.
type Board struct {
	ID         string    `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Background *string   `db:"background" json:"background,omitempty"`
	UserID     string    `db:"user_id" json:"userId"`
	SortID     int       `db:"sort_id" json:"sortId"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

type Category struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	BoardID   string    `db:"board_id" json:"boardId"`
	SortID    int       `db:"sort_id" json:"sortId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type Task struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	CategoryID  string    `db:"category_id" json:"categoryId"`
	SortID      int       `db:"sort_id" json:"sortId"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}
