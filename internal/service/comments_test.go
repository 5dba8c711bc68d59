package service

import (
	"context"
	"testing"
	"time"

	"taskboard/internal/model"

	"github.com/stretchr/testify/require"
)

func TestCommentsLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(DefaultOwnershipPolicy(), false)
	task, err := f.tasks.Create(ctx, alice, TaskInput{Name: "t", CategoryID: "c"})
	require.NoError(t, err)

	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	withClock(t, created)
	c, err := f.comments.Create(ctx, alice, task.ID, "first")
	require.NoError(t, err)
	require.Equal(t, alice.Info(), c.UserInfo)
	require.Equal(t, created, c.Date)
	require.Equal(t, task.ID, c.TaskID)

	withClock(t, created.Add(time.Minute))
	second, err := f.comments.Create(ctx, bob, task.ID, "second")
	require.NoError(t, err)

	list, err := f.comments.List(ctx, alice, task.ID)
	require.NoError(t, err)
	require.Equal(t, []string{c.ID, second.ID}, []string{list[0].ID, list[1].ID})

	// non-author
	_, err = f.comments.Update(ctx, bob, c.ID, "edited")
	require.ErrorIs(t, err, ErrForbidden)
	require.ErrorIs(t, f.comments.Delete(ctx, bob, c.ID), ErrForbidden)

	// author
	edited := created.Add(time.Hour)
	withClock(t, edited)
	updated, err := f.comments.Update(ctx, alice, c.ID, "edited")
	require.NoError(t, err)
	require.Equal(t, "edited", updated.Comment)
	require.Equal(t, edited, updated.Date)
	require.Equal(t, alice.Info(), updated.UserInfo)

	require.NoError(t, f.comments.Delete(ctx, alice, c.ID))
	_, err = f.comments.Update(ctx, alice, c.ID, "again")
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, f.comments.Delete(ctx, alice, c.ID), ErrNotFound)
}

func TestCommentsValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(DefaultOwnershipPolicy(), false)

	_, err := f.comments.Create(ctx, alice, "missing", "hi")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = f.comments.List(ctx, alice, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	task, err := f.tasks.Create(ctx, alice, TaskInput{Name: "t", CategoryID: "c"})
	require.NoError(t, err)
	_, err = f.comments.Create(ctx, alice, task.ID, "   ")
	require.ErrorIs(t, err, ErrInvalidInput)

	// authorship is checked before the text
	c, err := f.comments.Create(ctx, alice, task.ID, "hi")
	require.NoError(t, err)
	_, err = f.comments.Update(ctx, bob, c.ID, "  ")
	require.ErrorIs(t, err, ErrForbidden)
	_, err = f.comments.Update(ctx, alice, "missing", "")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = f.comments.Update(ctx, alice, c.ID, "  ")
	require.ErrorIs(t, err, ErrInvalidInput)
}

// The author snapshot is frozen at write time; fresh identity reads the
// live user instead of the (possibly stale) token claims.
func TestCommentsAuthorSnapshot(t *testing.T) {
	ctx := context.Background()

	for _, fresh := range []bool{false, true} {
		f := newFixture(DefaultOwnershipPolicy(), fresh)
		require.NoError(t, f.mem.CreateUser(ctx, &model.User{
			ID: "alice", Email: "alice@x.com", Firstname: "Alicia", Lastname: "A", Gender: "f",
		}))
		task, err := f.tasks.Create(ctx, alice, TaskInput{Name: "t", CategoryID: "c"})
		require.NoError(t, err)

		c, err := f.comments.Create(ctx, alice, task.ID, "hi")
		require.NoError(t, err)
		if fresh {
			require.Equal(t, "Alicia", c.UserInfo.Firstname)
		} else {
			require.Equal(t, "Alice", c.UserInfo.Firstname)
		}
	}

	f := newFixture(DefaultOwnershipPolicy(), true)
	task, err := f.tasks.Create(ctx, alice, TaskInput{Name: "t", CategoryID: "c"})
	require.NoError(t, err)
	_, err = f.comments.Create(ctx, alice, task.ID, "hi")
	require.ErrorIs(t, err, ErrNotFound)
}
