package service

import (
	"context"
	"fmt"

	"taskboard/internal/worker"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost 固定的 bcrypt 成本
const PasswordCost = bcrypt.DefaultCost

// 測試可覆寫
var bcryptGenerateFromPassword = bcrypt.GenerateFromPassword

// PasswordHasher 在 worker pool 上執行 bcrypt，限制同時計算的數量
// pool 為 nil 時直接在呼叫端 goroutine 執行
type PasswordHasher struct {
	pool worker.Pool
}

func NewPasswordHasher(pool worker.Pool) *PasswordHasher {
	return &PasswordHasher{pool: pool}
}

// Hash 接收明文密碼，回傳 bcrypt 哈希字串，每次呼叫使用新的 salt
func (h *PasswordHasher) Hash(ctx context.Context, plaintext string) (string, error) {
	hash, err := worker.Do(ctx, h.pool, func() ([]byte, error) {
		return bcryptGenerateFromPassword([]byte(plaintext), PasswordCost)
	})
	if err != nil {
		return "", fmt.Errorf("HashPassword: %w", err)
	}
	return string(hash), nil
}

// Verify 比對明文密碼與 bcrypt 哈希；格式錯誤的哈希視為不符，不回傳錯誤
// 只有 ctx 取消或 pool 已停止時才會回傳 error
func (h *PasswordHasher) Verify(ctx context.Context, plaintext, hash string) (bool, error) {
	ok, err := worker.Do(ctx, h.pool, func() (bool, error) {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil, nil
	})
	if err != nil {
		return false, fmt.Errorf("VerifyPassword: %w", err)
	}
	return ok, nil
}
