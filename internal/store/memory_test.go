package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"taskboard/internal/model"

	"github.com/stretchr/testify/require"
)

func TestMemoryNextSortID(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	for want := 1; want <= 3; want++ {
		got, err := m.NextSortID(ctx, Boards)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	// sequences are per collection
	got, err := m.NextSortID(ctx, Tasks)
	require.NoError(t, err)
	require.Equal(t, 1, got)
}

func TestMemoryNextSortIDConcurrent(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	const n = 50
	var wg sync.WaitGroup
	ids := make(chan int, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := m.NextSortID(ctx, Boards)
			if err != nil {
				t.Error(err)
				return
			}
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[int]bool{}
	for id := range ids {
		require.False(t, seen[id], "duplicate sort id %d", id)
		seen[id] = true
	}
	require.Len(t, seen, n)
}

func TestMemoryUsers(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	u := &model.User{ID: "u1", Email: "a@x.com", PasswordHash: "h"}
	require.NoError(t, m.CreateUser(ctx, u))
	require.ErrorIs(t, m.CreateUser(ctx, &model.User{ID: "u2", Email: "A@X.com"}), ErrDuplicate)

	got, err := m.GetUserByEmail(ctx, "A@x.COM")
	require.NoError(t, err)
	require.Equal(t, "u1", got.ID)

	got, err = m.GetUserByID(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "a@x.com", got.Email)

	_, err = m.GetUserByID(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = m.GetUserByEmail(ctx, "missing@x.com")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryBoardsOrderingWithTies(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	// legacy rows may share a sort id; insertion order breaks the tie
	require.NoError(t, m.CreateBoard(ctx, &model.Board{ID: "z", UserID: "u1", SortID: 2}))
	require.NoError(t, m.CreateBoard(ctx, &model.Board{ID: "a", UserID: "u1", SortID: 2}))
	require.NoError(t, m.CreateBoard(ctx, &model.Board{ID: "m", UserID: "u1", SortID: 1}))
	require.NoError(t, m.CreateBoard(ctx, &model.Board{ID: "other", UserID: "u2", SortID: 1}))

	list, err := m.ListBoards(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, []string{"m", "z", "a"}, []string{list[0].ID, list[1].ID, list[2].ID})

	empty, err := m.ListBoards(ctx, "nobody")
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Empty(t, empty)
}

func TestMemoryBoardLifecycle(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	b := &model.Board{ID: "b1", Name: "B1", UserID: "u1", SortID: 1}
	require.NoError(t, m.CreateBoard(ctx, b))
	require.ErrorIs(t, m.CreateBoard(ctx, b), ErrDuplicate)

	// returned records are copies
	got, err := m.GetBoard(ctx, "b1")
	require.NoError(t, err)
	got.Name = "changed"
	again, _ := m.GetBoard(ctx, "b1")
	require.Equal(t, "B1", again.Name)

	got.Name = "renamed"
	require.NoError(t, m.UpdateBoard(ctx, got))
	again, _ = m.GetBoard(ctx, "b1")
	require.Equal(t, "renamed", again.Name)

	require.NoError(t, m.DeleteBoard(ctx, "b1"))
	require.ErrorIs(t, m.DeleteBoard(ctx, "b1"), ErrNotFound)
	require.ErrorIs(t, m.UpdateBoard(ctx, got), ErrNotFound)
	_, err = m.GetBoard(ctx, "b1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryCategoriesAndTasks(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.CreateCategory(ctx, &model.Category{ID: "c2", BoardID: "b1", SortID: 2}))
	require.NoError(t, m.CreateCategory(ctx, &model.Category{ID: "c1", BoardID: "b1", SortID: 1}))
	require.NoError(t, m.CreateCategory(ctx, &model.Category{ID: "c3", BoardID: "b2", SortID: 3}))

	cats, err := m.ListCategories(ctx, "b1")
	require.NoError(t, err)
	require.Len(t, cats, 2)
	require.Equal(t, "c1", cats[0].ID)

	_, err = m.GetCategory(ctx, "nope")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.CreateTask(ctx, &model.Task{ID: "t1", CategoryID: "c1", SortID: 1, Name: "one"}))
	require.NoError(t, m.CreateTask(ctx, &model.Task{ID: "t2", CategoryID: "c1", SortID: 2, Name: "two"}))
	tasks, err := m.ListTasks(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	task, err := m.GetTask(ctx, "t2")
	require.NoError(t, err)
	task.Description = "desc"
	require.NoError(t, m.UpdateTask(ctx, task))
	task, _ = m.GetTask(ctx, "t2")
	require.Equal(t, "desc", task.Description)

	require.NoError(t, m.DeleteTask(ctx, "t1"))
	require.ErrorIs(t, m.DeleteTask(ctx, "t1"), ErrNotFound)
	tasks, _ = m.ListTasks(ctx, "c1")
	require.Len(t, tasks, 1)
}

func TestMemoryComments(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	now := time.Now()

	require.NoError(t, m.CreateComment(ctx, &model.Comment{ID: "late", TaskID: "t1", Date: now.Add(time.Minute)}))
	require.NoError(t, m.CreateComment(ctx, &model.Comment{ID: "early", TaskID: "t1", Date: now}))
	require.NoError(t, m.CreateComment(ctx, &model.Comment{ID: "elsewhere", TaskID: "t2", Date: now}))

	list, err := m.ListComments(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "early", list[0].ID)

	c, err := m.GetComment(ctx, "late")
	require.NoError(t, err)
	c.Comment = "edited"
	require.NoError(t, m.UpdateComment(ctx, c))
	c, _ = m.GetComment(ctx, "late")
	require.Equal(t, "edited", c.Comment)

	require.NoError(t, m.DeleteComment(ctx, "late"))
	require.ErrorIs(t, m.DeleteComment(ctx, "late"), ErrNotFound)
	require.ErrorIs(t, m.UpdateComment(ctx, c), ErrNotFound)
}
