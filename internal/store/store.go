// Package store is the record store behind the task board: named
// collections with find, filter, insert, update and remove, plus a
// per-collection sort sequence. Memory and Postgres implement it.
package store

import (
	"context"
	"errors"

	"taskboard/internal/model"
)

var (
	// ErrNotFound is returned when no record matches the lookup.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a unique key.
	ErrDuplicate = errors.New("duplicate record")
)

// Collection names a group of records sharing one sort sequence.
type Collection string

const (
	Users      Collection = "users"
	Boards     Collection = "boards"
	Categories Collection = "categories"
	Tasks      Collection = "tasks"
	Comments   Collection = "comments"
)

type UserStore interface {
	CreateUser(ctx context.Context, u *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

type BoardStore interface {
	CreateBoard(ctx context.Context, b *model.Board) error
	GetBoard(ctx context.Context, id string) (*model.Board, error)
	ListBoards(ctx context.Context, userID string) ([]model.Board, error)
	UpdateBoard(ctx context.Context, b *model.Board) error
	DeleteBoard(ctx context.Context, id string) error
}

type CategoryStore interface {
	CreateCategory(ctx context.Context, c *model.Category) error
	GetCategory(ctx context.Context, id string) (*model.Category, error)
	ListCategories(ctx context.Context, boardID string) ([]model.Category, error)
}

type TaskStore interface {
	CreateTask(ctx context.Context, t *model.Task) error
	GetTask(ctx context.Context, id string) (*model.Task, error)
	ListTasks(ctx context.Context, categoryID string) ([]model.Task, error)
	UpdateTask(ctx context.Context, t *model.Task) error
	DeleteTask(ctx context.Context, id string) error
}

type CommentStore interface {
	CreateComment(ctx context.Context, c *model.Comment) error
	GetComment(ctx context.Context, id string) (*model.Comment, error)
	ListComments(ctx context.Context, taskID string) ([]model.Comment, error)
	UpdateComment(ctx context.Context, c *model.Comment) error
	DeleteComment(ctx context.Context, id string) error
}

// Sequencer hands out strictly increasing sort ids per collection.
// Values are never reused, deletes included.
type Sequencer interface {
	NextSortID(ctx context.Context, c Collection) (int, error)
}

type Store interface {
	UserStore
	BoardStore
	CategoryStore
	TaskStore
	CommentStore
	Sequencer
	Ping(ctx context.Context) error
}
