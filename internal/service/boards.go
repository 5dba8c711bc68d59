package service

import (
	"context"
	"fmt"
	"strings"

	"taskboard/internal/model"
	"taskboard/internal/store"
)

type BoardInput struct {
	Name       string
	Background *string
}

// BoardPatch 中為 nil 的欄位維持不變
type BoardPatch struct {
	Name       *string
	Background *string
}

// Boards 管理使用者自己的看板
type Boards struct {
	boards store.BoardStore
	seq    store.Sequencer
	policy OwnershipPolicy
}

func NewBoards(boards store.BoardStore, seq store.Sequencer, policy OwnershipPolicy) *Boards {
	return &Boards{boards: boards, seq: seq, policy: policy}
}

func (s *Boards) Create(ctx context.Context, caller *Claims, in BoardInput) (*model.Board, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("name is required")
	}
	sortID, err := s.seq.NextSortID(ctx, store.Boards)
	if err != nil {
		return nil, fmt.Errorf("CreateBoard: %w", err)
	}
	b := &model.Board{
		ID:         newID(),
		Name:       name,
		Background: in.Background,
		UserID:     caller.ID,
		SortID:     sortID,
		CreatedAt:  timeNow().UTC(),
	}
	if err := s.boards.CreateBoard(ctx, b); err != nil {
		return nil, storeErr("CreateBoard", err)
	}
	return b, nil
}

func (s *Boards) List(ctx context.Context, caller *Claims) ([]model.Board, error) {
	boards, err := s.boards.ListBoards(ctx, caller.ID)
	if err != nil {
		return nil, storeErr("ListBoards", err)
	}
	return boards, nil
}

// Get 取得單一看板；他人的看板回傳 ErrNotFound
func (s *Boards) Get(ctx context.Context, caller *Claims, id string) (*model.Board, error) {
	b, err := s.boards.GetBoard(ctx, id)
	if err != nil {
		return nil, storeErr("GetBoard", err)
	}
	if b.UserID != caller.ID {
		return nil, fmt.Errorf("GetBoard: %w", ErrNotFound)
	}
	return b, nil
}

func (s *Boards) Update(ctx context.Context, caller *Claims, id string, patch BoardPatch) (*model.Board, error) {
	b, err := s.boards.GetBoard(ctx, id)
	if err != nil {
		return nil, storeErr("UpdateBoard", err)
	}
	if s.policy.EnforceBoardUpdate && b.UserID != caller.ID {
		return nil, fmt.Errorf("UpdateBoard: %w", ErrForbidden)
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, invalid("name must not be empty")
		}
		b.Name = name
	}
	if patch.Background != nil {
		b.Background = patch.Background
	}
	if err := s.boards.UpdateBoard(ctx, b); err != nil {
		return nil, storeErr("UpdateBoard", err)
	}
	return b, nil
}

// Delete 只刪除看板本身，底下的分類、任務與留言保留
func (s *Boards) Delete(ctx context.Context, caller *Claims, id string) error {
	b, err := s.boards.GetBoard(ctx, id)
	if err != nil {
		return storeErr("DeleteBoard", err)
	}
	if b.UserID != caller.ID {
		return fmt.Errorf("DeleteBoard: %w", ErrForbidden)
	}
	if err := s.boards.DeleteBoard(ctx, id); err != nil {
		return storeErr("DeleteBoard", err)
	}
	return nil
}
