package service

import (
	"context"

	"taskboard/internal/model"
	"taskboard/internal/store"
)

// OwnershipPolicy 決定哪些操作要比對呼叫者與所屬看板的擁有者
type OwnershipPolicy struct {
	// EnforceBoardUpdate 更新看板時也套用刪除的擁有者檢查
	// 為 false 時任何已登入者都可以依 id 修改看板
	EnforceBoardUpdate bool
	// EnforceHierarchy 將分類、任務與留言往上追溯到看板，
	// 不屬於呼叫者的一律隱藏
	EnforceHierarchy bool
}

func DefaultOwnershipPolicy() OwnershipPolicy {
	return OwnershipPolicy{EnforceBoardUpdate: true}
}

// hierarchy 沿著上層 id 走到看板；enforce 未開啟時不做任何檢查
// 斷掉或屬於他人的鏈一律回傳 ErrNotFound，不透露他人的 id 是否存在
type hierarchy struct {
	boards     store.BoardStore
	categories store.CategoryStore
	enforce    bool
}

func (h hierarchy) board(ctx context.Context, caller *Claims, boardID string) error {
	if !h.enforce {
		return nil
	}
	b, err := h.boards.GetBoard(ctx, boardID)
	if err != nil {
		return storeErr("board", err)
	}
	if b.UserID != caller.ID {
		return ErrNotFound
	}
	return nil
}

func (h hierarchy) category(ctx context.Context, caller *Claims, categoryID string) error {
	if !h.enforce {
		return nil
	}
	c, err := h.categories.GetCategory(ctx, categoryID)
	if err != nil {
		return storeErr("category", err)
	}
	return h.board(ctx, caller, c.BoardID)
}

func (h hierarchy) task(ctx context.Context, caller *Claims, t *model.Task) error {
	if !h.enforce {
		return nil
	}
	return h.category(ctx, caller, t.CategoryID)
}
