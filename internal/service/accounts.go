package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"taskboard/internal/model"
	"taskboard/internal/store"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var newID = func() string { return uuid.NewString() }

// Registration 註冊時的輸入資料
type Registration struct {
	Username  string
	Firstname string
	Lastname  string
	Email     string
	Password  string
	Age       int
	Gender    string
}

// Session 登入成功的結果
type Session struct {
	User      *model.User
	Token     string
	ExpiresAt time.Time
}

// Accounts 串接密碼、令牌與使用者儲存，提供註冊、登入與目前使用者查詢
type Accounts struct {
	users  store.UserStore
	hasher *PasswordHasher
	tokens *TokenService
}

func NewAccounts(users store.UserStore, hasher *PasswordHasher, tokens *TokenService) *Accounts {
	return &Accounts{users: users, hasher: hasher, tokens: tokens}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register 建立新使用者；email 重複回傳 ErrConflict
func (a *Accounts) Register(ctx context.Context, r Registration) (*model.User, error) {
	if r.Password == "" {
		return nil, invalid("password is required")
	}
	email := normalizeEmail(r.Email)
	if email == "" {
		return nil, invalid("email is required")
	}

	if _, err := a.users.GetUserByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("Register: %w", ErrConflict)
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("Register: %w", err)
	}

	hash, err := a.hasher.Hash(ctx, r.Password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, invalid("password must be at most 72 bytes")
		}
		return nil, fmt.Errorf("Register: %w", err)
	}

	u := &model.User{
		ID:           newID(),
		Username:     strings.TrimSpace(r.Username),
		Firstname:    strings.TrimSpace(r.Firstname),
		Lastname:     strings.TrimSpace(r.Lastname),
		Email:        email,
		PasswordHash: hash,
		Age:          r.Age,
		Gender:       r.Gender,
		CreatedAt:    timeNow().UTC(),
	}
	if err := a.users.CreateUser(ctx, u); err != nil {
		return nil, storeErr("Register", err)
	}
	return u, nil
}

// Login 驗證 email 與密碼並簽發令牌
func (a *Accounts) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := a.users.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, storeErr("Login", err)
	}
	ok, err := a.hasher.Verify(ctx, password, u.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("Login: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("Login: %w", ErrInvalidCredentials)
	}
	token, exp, err := a.tokens.Issue(u)
	if err != nil {
		return nil, fmt.Errorf("Login: %w", err)
	}
	return &Session{User: u, Token: token, ExpiresAt: exp}, nil
}

// CurrentUser 依令牌中的 email 取得最新的使用者資料
func (a *Accounts) CurrentUser(ctx context.Context, caller *Claims) (*model.User, error) {
	if caller == nil {
		return nil, ErrUnauthenticated
	}
	u, err := a.users.GetUserByEmail(ctx, caller.Email)
	if err != nil {
		return nil, storeErr("CurrentUser", err)
	}
	return u, nil
}
