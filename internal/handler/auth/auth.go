package auth

import (
	"context"
	"net/http"
	"time"

	"taskboard/internal/model"
	"taskboard/internal/service"
)

// AccountService 由 *service.Accounts 實作
type AccountService interface {
	Register(ctx context.Context, r service.Registration) (*model.User, error)
	Login(ctx context.Context, email, password string) (*service.Session, error)
	CurrentUser(ctx context.Context, caller *service.Claims) (*model.User, error)
}

// CookieConfig 控制令牌 cookie 的屬性
type CookieConfig struct {
	Name     string
	Domain   string
	Secure   bool
	SameSite http.SameSite
}

func (cc CookieConfig) session(token string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     cc.Name,
		Value:    token,
		Path:     "/",
		Domain:   cc.Domain,
		Expires:  expires,
		HttpOnly: true,
		Secure:   cc.Secure,
		SameSite: cc.SameSite,
	}
}

func (cc CookieConfig) expired() *http.Cookie {
	c := cc.session("", time.Unix(0, 0))
	c.MaxAge = -1
	return c
}
