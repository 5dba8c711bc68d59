package service

import (
	"context"
	"fmt"
	"strings"

	"taskboard/internal/model"
	"taskboard/internal/store"
)

type TaskInput struct {
	Name        string
	Description string
	CategoryID  string
}

// TaskPatch 中為 nil 的欄位維持不變；設定 CategoryID 會把任務移到該分類
type TaskPatch struct {
	Name        *string
	Description *string
	CategoryID  *string
}

type Tasks struct {
	store store.Store
	chain hierarchy
}

func NewTasks(s store.Store, policy OwnershipPolicy) *Tasks {
	return &Tasks{
		store: s,
		chain: hierarchy{boards: s, categories: s, enforce: policy.EnforceHierarchy},
	}
}

func (s *Tasks) Create(ctx context.Context, caller *Claims, in TaskInput) (*model.Task, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("name is required")
	}
	if in.CategoryID == "" {
		return nil, invalid("categoryId is required")
	}
	if err := s.chain.category(ctx, caller, in.CategoryID); err != nil {
		return nil, fmt.Errorf("CreateTask: %w", err)
	}
	sortID, err := s.store.NextSortID(ctx, store.Tasks)
	if err != nil {
		return nil, fmt.Errorf("CreateTask: %w", err)
	}
	t := &model.Task{
		ID:          newID(),
		Name:        name,
		Description: in.Description,
		CategoryID:  in.CategoryID,
		SortID:      sortID,
		CreatedAt:   timeNow().UTC(),
	}
	if err := s.store.CreateTask(ctx, t); err != nil {
		return nil, storeErr("CreateTask", err)
	}
	return t, nil
}

func (s *Tasks) List(ctx context.Context, caller *Claims, categoryID string) ([]model.Task, error) {
	if err := s.chain.category(ctx, caller, categoryID); err != nil {
		return nil, fmt.Errorf("ListTasks: %w", err)
	}
	list, err := s.store.ListTasks(ctx, categoryID)
	if err != nil {
		return nil, storeErr("ListTasks", err)
	}
	return list, nil
}

func (s *Tasks) Get(ctx context.Context, caller *Claims, id string) (*model.Task, error) {
	t, err := s.load(ctx, caller, id)
	if err != nil {
		return nil, fmt.Errorf("GetTask: %w", err)
	}
	return t, nil
}

func (s *Tasks) Update(ctx context.Context, caller *Claims, id string, patch TaskPatch) (*model.Task, error) {
	t, err := s.load(ctx, caller, id)
	if err != nil {
		return nil, fmt.Errorf("UpdateTask: %w", err)
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, invalid("name must not be empty")
		}
		t.Name = name
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.CategoryID != nil && *patch.CategoryID != t.CategoryID {
		if *patch.CategoryID == "" {
			return nil, invalid("categoryId must not be empty")
		}
		if err := s.chain.category(ctx, caller, *patch.CategoryID); err != nil {
			return nil, fmt.Errorf("UpdateTask: %w", err)
		}
		t.CategoryID = *patch.CategoryID
	}
	if err := s.store.UpdateTask(ctx, t); err != nil {
		return nil, storeErr("UpdateTask", err)
	}
	return t, nil
}

func (s *Tasks) Delete(ctx context.Context, caller *Claims, id string) error {
	if _, err := s.load(ctx, caller, id); err != nil {
		return fmt.Errorf("DeleteTask: %w", err)
	}
	if err := s.store.DeleteTask(ctx, id); err != nil {
		return storeErr("DeleteTask", err)
	}
	return nil
}

func (s *Tasks) load(ctx context.Context, caller *Claims, id string) (*model.Task, error) {
	t, err := s.store.GetTask(ctx, id)
	if err != nil {
		return nil, storeErr("task", err)
	}
	if err := s.chain.task(ctx, caller, t); err != nil {
		return nil, err
	}
	return t, nil
}
