package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"taskboard/internal/model"
)

// Memory keeps every collection in process memory. It is used by tests
// and by the "memory" store driver for local runs.
type Memory struct {
	mu         sync.RWMutex
	users      map[string]model.User
	boards     map[string]model.Board
	categories map[string]model.Category
	tasks      map[string]model.Task
	comments   map[string]model.Comment
	sequences  map[Collection]int
	// inserted records the insertion order used to break sort ties.
	inserted map[string]uint64
	next     uint64
}

func NewMemory() *Memory {
	return &Memory{
		users:      map[string]model.User{},
		boards:     map[string]model.Board{},
		categories: map[string]model.Category{},
		tasks:      map[string]model.Task{},
		comments:   map[string]model.Comment{},
		sequences:  map[Collection]int{},
		inserted:   map[string]uint64{},
	}
}

func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) NextSortID(_ context.Context, c Collection) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sequences[c]++
	return m.sequences[c], nil
}

func (m *Memory) track(id string) {
	m.next++
	m.inserted[id] = m.next
}

func (m *Memory) before(a, b string) bool {
	return m.inserted[a] < m.inserted[b]
}

/* ---------- users ---------- */

func (m *Memory) CreateUser(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.ID]; ok {
		return ErrDuplicate
	}
	for _, existing := range m.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return ErrDuplicate
		}
	}
	m.users[u.ID] = *u
	m.track(u.ID)
	return nil
}

func (m *Memory) GetUserByID(_ context.Context, id string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m *Memory) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

/* ---------- boards ---------- */

func (m *Memory) CreateBoard(_ context.Context, b *model.Board) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.boards[b.ID]; ok {
		return ErrDuplicate
	}
	m.boards[b.ID] = *b
	m.track(b.ID)
	return nil
}

func (m *Memory) GetBoard(_ context.Context, id string) (*model.Board, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.boards[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &b, nil
}

func (m *Memory) ListBoards(_ context.Context, userID string) ([]model.Board, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []model.Board{}
	for _, b := range m.boards {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SortID != out[j].SortID {
			return out[i].SortID < out[j].SortID
		}
		return m.before(out[i].ID, out[j].ID)
	})
	return out, nil
}

func (m *Memory) UpdateBoard(_ context.Context, b *model.Board) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.boards[b.ID]; !ok {
		return ErrNotFound
	}
	m.boards[b.ID] = *b
	return nil
}

func (m *Memory) DeleteBoard(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.boards[id]; !ok {
		return ErrNotFound
	}
	delete(m.boards, id)
	return nil
}

/* ---------- categories ---------- */

func (m *Memory) CreateCategory(_ context.Context, c *model.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[c.ID]; ok {
		return ErrDuplicate
	}
	m.categories[c.ID] = *c
	m.track(c.ID)
	return nil
}

func (m *Memory) GetCategory(_ context.Context, id string) (*model.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.categories[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (m *Memory) ListCategories(_ context.Context, boardID string) ([]model.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []model.Category{}
	for _, c := range m.categories {
		if c.BoardID == boardID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SortID != out[j].SortID {
			return out[i].SortID < out[j].SortID
		}
		return m.before(out[i].ID, out[j].ID)
	})
	return out, nil
}

/* ---------- tasks ---------- */

func (m *Memory) CreateTask(_ context.Context, t *model.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[t.ID]; ok {
		return ErrDuplicate
	}
	m.tasks[t.ID] = *t
	m.track(t.ID)
	return nil
}

func (m *Memory) GetTask(_ context.Context, id string) (*model.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (m *Memory) ListTasks(_ context.Context, categoryID string) ([]model.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []model.Task{}
	for _, t := range m.tasks {
		if t.CategoryID == categoryID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SortID != out[j].SortID {
			return out[i].SortID < out[j].SortID
		}
		return m.before(out[i].ID, out[j].ID)
	})
	return out, nil
}

func (m *Memory) UpdateTask(_ context.Context, t *model.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[t.ID]; !ok {
		return ErrNotFound
	}
	m.tasks[t.ID] = *t
	return nil
}

func (m *Memory) DeleteTask(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(m.tasks, id)
	return nil
}

/* ---------- comments ---------- */

func (m *Memory) CreateComment(_ context.Context, c *model.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.comments[c.ID]; ok {
		return ErrDuplicate
	}
	m.comments[c.ID] = *c
	m.track(c.ID)
	return nil
}

func (m *Memory) GetComment(_ context.Context, id string) (*model.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.comments[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (m *Memory) ListComments(_ context.Context, taskID string) ([]model.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []model.Comment{}
	for _, c := range m.comments {
		if c.TaskID == taskID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return m.before(out[i].ID, out[j].ID)
	})
	return out, nil
}

func (m *Memory) UpdateComment(_ context.Context, c *model.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.comments[c.ID]; !ok {
		return ErrNotFound
	}
	m.comments[c.ID] = *c
	return nil
}

func (m *Memory) DeleteComment(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.comments[id]; !ok {
		return ErrNotFound
	}
	delete(m.comments, id)
	return nil
}
