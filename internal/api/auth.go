package api

import (
	"time"

	"taskboard/internal/model"
)

// swagger:model api.RegisterRequest
type RegisterRequest struct {
	Username  string `json:"username" form:"username" example:"alice"`
	Firstname string `json:"firstname" form:"firstname" validate:"max=100" example:"Alice"`
	Lastname  string `json:"lastname" form:"lastname" validate:"max=100" example:"Liddell"`
	Email     string `json:"email" form:"email" validate:"required,email" example:"alice@example.com"`
	Password  string `json:"password" form:"password" validate:"required,max=72" example:"Secret123!"`
	Age       int    `json:"age" form:"age" validate:"gte=0,lte=150" example:"30"`
	Gender    string `json:"gender" form:"gender" validate:"max=32" example:"female"`
}

// swagger:model api.LoginRequest
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email" example:"alice@example.com"`
	Password string `json:"password" form:"password" validate:"required" example:"Secret123!"`
}

// UserResponse 不含密碼哈希的使用者資料
// swagger:model api.UserResponse
type UserResponse struct {
	ID        string    `json:"id" example:"5f0c7c2e-9a53-4c1e-8f4e-0d6b3c1b2a10"`
	Username  string    `json:"username" example:"alice"`
	Firstname string    `json:"firstname" example:"Alice"`
	Lastname  string    `json:"lastname" example:"Liddell"`
	Email     string    `json:"email" example:"alice@example.com"`
	Age       int       `json:"age" example:"30"`
	Gender    string    `json:"gender" example:"female"`
	CreatedAt time.Time `json:"createdAt" example:"2025-05-01T15:04:05Z"`
}

func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		Email:     u.Email,
		Age:       u.Age,
		Gender:    u.Gender,
		CreatedAt: u.CreatedAt,
	}
}

// LoginResponse 令牌同時放在 cookie 與 body
// swagger:model api.LoginResponse
type LoginResponse struct {
	Token     string       `json:"token" example:"eyJhbGciOi..."`
	ExpiresAt time.Time    `json:"expiresAt" example:"2025-05-09T15:04:05Z"`
	User      UserResponse `json:"user"`
}
