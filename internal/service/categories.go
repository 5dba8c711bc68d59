package service

import (
	"context"
	"fmt"
	"strings"

	"taskboard/internal/model"
	"taskboard/internal/store"
)

type CategoryInput struct {
	Name    string
	BoardID string
}

type Categories struct {
	store store.Store
	chain hierarchy
}

func NewCategories(s store.Store, policy OwnershipPolicy) *Categories {
	return &Categories{
		store: s,
		chain: hierarchy{boards: s, categories: s, enforce: policy.EnforceHierarchy},
	}
}

func (s *Categories) Create(ctx context.Context, caller *Claims, in CategoryInput) (*model.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("name is required")
	}
	if in.BoardID == "" {
		return nil, invalid("boardId is required")
	}
	if err := s.chain.board(ctx, caller, in.BoardID); err != nil {
		return nil, fmt.Errorf("CreateCategory: %w", err)
	}
	sortID, err := s.store.NextSortID(ctx, store.Categories)
	if err != nil {
		return nil, fmt.Errorf("CreateCategory: %w", err)
	}
	c := &model.Category{
		ID:        newID(),
		Name:      name,
		BoardID:   in.BoardID,
		SortID:    sortID,
		CreatedAt: timeNow().UTC(),
	}
	if err := s.store.CreateCategory(ctx, c); err != nil {
		return nil, storeErr("CreateCategory", err)
	}
	return c, nil
}

func (s *Categories) List(ctx context.Context, caller *Claims, boardID string) ([]model.Category, error) {
	if err := s.chain.board(ctx, caller, boardID); err != nil {
		return nil, fmt.Errorf("ListCategories: %w", err)
	}
	list, err := s.store.ListCategories(ctx, boardID)
	if err != nil {
		return nil, storeErr("ListCategories", err)
	}
	return list, nil
}
