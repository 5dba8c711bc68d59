package service

import (
	"errors"
	"fmt"
	"time"

	"taskboard/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL NewTokenService 收到非正數 ttl 時使用的有效期
const DefaultTokenTTL = time.Hour

var timeNow = time.Now

// Claims 定義 JWT 負載內容，刻意不含密碼
type Claims struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Firstname string `json:"firstname,omitempty"`
	Lastname  string `json:"lastname,omitempty"`
	Age       int    `json:"age,omitempty"`
	Gender    string `json:"gender,omitempty"`
	jwt.RegisteredClaims
}

// Info 回傳此登入者撰寫留言時的作者快照
func (c *Claims) Info() model.UserInfo {
	return model.UserInfo{
		ID:        c.ID,
		Firstname: c.Firstname,
		Lastname:  c.Lastname,
		Email:     c.Email,
		Gender:    c.Gender,
	}
}

// TokenService 以 HS256 簽發與驗證存取令牌，secret 於啟動時載入一次
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}, nil
}

func (s *TokenService) TTL() time.Duration { return s.ttl }

// Issue 依據使用者資訊產生 JWT，回傳令牌與到期時間
func (s *TokenService) Issue(u *model.User) (string, time.Time, error) {
	now := timeNow()
	exp := now.Add(s.ttl)
	claims := Claims{
		ID:        u.ID,
		Email:     u.Email,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		Age:       u.Age,
		Gender:    u.Gender,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("IssueToken: %w", err)
	}
	return token, exp, nil
}

// Verify 驗證並解析 JWT；過期回傳 ErrTokenExpired，其餘一律 ErrTokenInvalid
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := s.parse(tokenString, claims, jwt.WithExpirationRequired(), jwt.WithTimeFunc(timeNow))
	if err == nil {
		return claims, nil
	}
	if errors.Is(err, jwt.ErrTokenExpired) {
		// parser 先檢查 claims 再驗簽，過期的令牌仍需確認是用我們的 secret 簽的
		if _, sigErr := s.parse(tokenString, &Claims{}, jwt.WithoutClaimsValidation()); sigErr == nil {
			return nil, ErrTokenExpired
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
}

func (s *TokenService) parse(tokenString string, claims *Claims, opts ...jwt.ParserOption) (*jwt.Token, error) {
	opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	return jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, opts...)
}
