package service

import (
	"context"
	"fmt"
	"strings"

	"taskboard/internal/model"
	"taskboard/internal/store"
)

// Comments 管理任務留言；只有作者可以修改或刪除
type Comments struct {
	store store.Store
	chain hierarchy
	// freshIdentity 為 true 時作者快照取自使用者資料，而非令牌 claims
	freshIdentity bool
}

func NewComments(s store.Store, policy OwnershipPolicy, freshIdentity bool) *Comments {
	return &Comments{
		store:         s,
		chain:         hierarchy{boards: s, categories: s, enforce: policy.EnforceHierarchy},
		freshIdentity: freshIdentity,
	}
}

func (s *Comments) Create(ctx context.Context, caller *Claims, taskID, text string) (*model.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, invalid("comment is required")
	}
	if err := s.task(ctx, caller, taskID); err != nil {
		return nil, fmt.Errorf("CreateComment: %w", err)
	}
	author, err := s.author(ctx, caller)
	if err != nil {
		return nil, fmt.Errorf("CreateComment: %w", err)
	}
	c := &model.Comment{
		ID:       newID(),
		TaskID:   taskID,
		Comment:  text,
		UserInfo: author,
		Date:     timeNow().UTC(),
	}
	if err := s.store.CreateComment(ctx, c); err != nil {
		return nil, storeErr("CreateComment", err)
	}
	return c, nil
}

func (s *Comments) List(ctx context.Context, caller *Claims, taskID string) ([]model.Comment, error) {
	if err := s.task(ctx, caller, taskID); err != nil {
		return nil, fmt.Errorf("ListComments: %w", err)
	}
	list, err := s.store.ListComments(ctx, taskID)
	if err != nil {
		return nil, storeErr("ListComments", err)
	}
	return list, nil
}

// Update 只有作者可以修改；替換內容並把時間更新為現在
func (s *Comments) Update(ctx context.Context, caller *Claims, id, text string) (*model.Comment, error) {
	c, err := s.authored(ctx, caller, id)
	if err != nil {
		return nil, fmt.Errorf("UpdateComment: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, invalid("comment is required")
	}
	c.Comment = text
	c.Date = timeNow().UTC()
	if err := s.store.UpdateComment(ctx, c); err != nil {
		return nil, storeErr("UpdateComment", err)
	}
	return c, nil
}

func (s *Comments) Delete(ctx context.Context, caller *Claims, id string) error {
	if _, err := s.authored(ctx, caller, id); err != nil {
		return fmt.Errorf("DeleteComment: %w", err)
	}
	if err := s.store.DeleteComment(ctx, id); err != nil {
		return storeErr("DeleteComment", err)
	}
	return nil
}

func (s *Comments) task(ctx context.Context, caller *Claims, taskID string) error {
	t, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return storeErr("task", err)
	}
	return s.chain.task(ctx, caller, t)
}

func (s *Comments) authored(ctx context.Context, caller *Claims, id string) (*model.Comment, error) {
	c, err := s.store.GetComment(ctx, id)
	if err != nil {
		return nil, storeErr("comment", err)
	}
	if c.UserInfo.ID != caller.ID {
		return nil, ErrForbidden
	}
	return c, nil
}

func (s *Comments) author(ctx context.Context, caller *Claims) (model.UserInfo, error) {
	if !s.freshIdentity {
		return caller.Info(), nil
	}
	u, err := s.store.GetUserByID(ctx, caller.ID)
	if err != nil {
		return model.UserInfo{}, storeErr("author", err)
	}
	return u.Info(), nil
}
