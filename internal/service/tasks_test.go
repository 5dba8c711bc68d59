package service

import (
	"context"
	"testing"

	"taskboard/internal/store"

	"github.com/stretchr/testify/require"
)

type fixture struct {
	mem        *store.Memory
	boards     *Boards
	categories *Categories
	tasks      *Tasks
	comments   *Comments
}

func newFixture(policy OwnershipPolicy, freshIdentity bool) *fixture {
	mem := store.NewMemory()
	return &fixture{
		mem:        mem,
		boards:     NewBoards(mem, mem, policy),
		categories: NewCategories(mem, policy),
		tasks:      NewTasks(mem, policy),
		comments:   NewComments(mem, policy, freshIdentity),
	}
}

func TestCategories(t *testing.T) {
	ctx := context.Background()
	f := newFixture(DefaultOwnershipPolicy(), false)
	b := mustBoard(t, f.boards, alice, "B")

	c1, err := f.categories.Create(ctx, alice, CategoryInput{Name: "todo", BoardID: b.ID})
	require.NoError(t, err)
	require.Equal(t, 1, c1.SortID)
	c2, err := f.categories.Create(ctx, alice, CategoryInput{Name: "done", BoardID: b.ID})
	require.NoError(t, err)
	require.Equal(t, 2, c2.SortID)
	_, err = f.categories.Create(ctx, alice, CategoryInput{Name: "elsewhere", BoardID: "other"})
	require.NoError(t, err)

	list, err := f.categories.List(ctx, alice, b.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "todo", list[0].Name)
	require.Equal(t, "done", list[1].Name)

	_, err = f.categories.Create(ctx, alice, CategoryInput{Name: "", BoardID: b.ID})
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.categories.Create(ctx, alice, CategoryInput{Name: "x"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestTasksCRUD(t *testing.T) {
	ctx := context.Background()
	f := newFixture(DefaultOwnershipPolicy(), false)

	t1, err := f.tasks.Create(ctx, alice, TaskInput{Name: "write", Description: "d", CategoryID: "c1"})
	require.NoError(t, err)
	require.Equal(t, 1, t1.SortID)
	t2, err := f.tasks.Create(ctx, alice, TaskInput{Name: "ship", CategoryID: "c1"})
	require.NoError(t, err)

	list, err := f.tasks.List(ctx, alice, "c1")
	require.NoError(t, err)
	require.Equal(t, []string{t1.ID, t2.ID}, []string{list[0].ID, list[1].ID})

	got, err := f.tasks.Get(ctx, alice, t1.ID)
	require.NoError(t, err)
	require.Equal(t, "d", got.Description)

	name := "rewrite"
	desc := ""
	moveTo := "c2"
	updated, err := f.tasks.Update(ctx, alice, t1.ID, TaskPatch{Name: &name, Description: &desc, CategoryID: &moveTo})
	require.NoError(t, err)
	require.Equal(t, "rewrite", updated.Name)
	require.Equal(t, "", updated.Description)
	require.Equal(t, "c2", updated.CategoryID)
	require.Equal(t, t1.SortID, updated.SortID)

	list, err = f.tasks.List(ctx, alice, "c1")
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, f.tasks.Delete(ctx, alice, t1.ID))
	_, err = f.tasks.Get(ctx, alice, t1.ID)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, f.tasks.Delete(ctx, alice, t1.ID), ErrNotFound)
	_, err = f.tasks.Update(ctx, alice, t1.ID, TaskPatch{Name: &name})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = f.tasks.Create(ctx, alice, TaskInput{Name: " ", CategoryID: "c1"})
	require.ErrorIs(t, err, ErrInvalidInput)
	empty := ""
	_, err = f.tasks.Update(ctx, alice, t2.ID, TaskPatch{CategoryID: &empty})
	require.ErrorIs(t, err, ErrInvalidInput)
}

// Without hierarchy enforcement categories and tasks of other users'
// boards stay reachable by id.
func TestHierarchyUnenforced(t *testing.T) {
	ctx := context.Background()
	f := newFixture(DefaultOwnershipPolicy(), false)
	bobs := mustBoard(t, f.boards, bob, "bob's")

	c, err := f.categories.Create(ctx, alice, CategoryInput{Name: "intruder", BoardID: bobs.ID})
	require.NoError(t, err)
	task, err := f.tasks.Create(ctx, alice, TaskInput{Name: "t", CategoryID: c.ID})
	require.NoError(t, err)
	_, err = f.tasks.Get(ctx, bob, task.ID)
	require.NoError(t, err)
}

func TestHierarchyEnforced(t *testing.T) {
	ctx := context.Background()
	f := newFixture(OwnershipPolicy{EnforceBoardUpdate: true, EnforceHierarchy: true}, false)
	bobs := mustBoard(t, f.boards, bob, "bob's")
	alices := mustBoard(t, f.boards, alice, "alice's")

	_, err := f.categories.Create(ctx, alice, CategoryInput{Name: "intruder", BoardID: bobs.ID})
	require.ErrorIs(t, err, ErrNotFound)
	_, err = f.categories.Create(ctx, alice, CategoryInput{Name: "x", BoardID: "missing"})
	require.ErrorIs(t, err, ErrNotFound)
	_, err = f.categories.List(ctx, alice, bobs.ID)
	require.ErrorIs(t, err, ErrNotFound)

	bobCat, err := f.categories.Create(ctx, bob, CategoryInput{Name: "todo", BoardID: bobs.ID})
	require.NoError(t, err)
	aliceCat, err := f.categories.Create(ctx, alice, CategoryInput{Name: "todo", BoardID: alices.ID})
	require.NoError(t, err)

	_, err = f.tasks.Create(ctx, alice, TaskInput{Name: "t", CategoryID: bobCat.ID})
	require.ErrorIs(t, err, ErrNotFound)
	_, err = f.tasks.List(ctx, alice, bobCat.ID)
	require.ErrorIs(t, err, ErrNotFound)

	bobTask, err := f.tasks.Create(ctx, bob, TaskInput{Name: "t", CategoryID: bobCat.ID})
	require.NoError(t, err)
	_, err = f.tasks.Get(ctx, alice, bobTask.ID)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, f.tasks.Delete(ctx, alice, bobTask.ID), ErrNotFound)

	aliceTask, err := f.tasks.Create(ctx, alice, TaskInput{Name: "t", CategoryID: aliceCat.ID})
	require.NoError(t, err)
	moveTo := bobCat.ID
	_, err = f.tasks.Update(ctx, alice, aliceTask.ID, TaskPatch{CategoryID: &moveTo})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = f.comments.Create(ctx, alice, bobTask.ID, "hi")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = f.comments.Create(ctx, alice, aliceTask.ID, "hi")
	require.NoError(t, err)
}
