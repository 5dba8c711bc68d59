package auth

import (
	"errors"
	"net/http"

	"taskboard/internal/api"
	"taskboard/internal/handler"
	"taskboard/internal/service"

	"github.com/labstack/echo/v4"
)

// LoginHandler 使用 Email/Password 驗證並簽發 JWT
// @Summary     登入使用者
// @Description 驗證成功後令牌同時寫入 HttpOnly cookie 並放在回應內容
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.LoginRequest true "登入資料"
// @Success     200  {object} api.LoginResponse
// @Failure     400  {object} api.HTTPError
// @Failure     500  {object} api.HTTPError
// @Router      /login [post]
func LoginHandler(accounts AccountService, cookie CookieConfig) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if ok, err := handler.BindAndValidate(c, &req); !ok {
			return err
		}

		sess, err := accounts.Login(c.Request().Context(), req.Email, req.Password)
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusBadRequest, api.HTTPError{Message: "user not found"})
		}
		if err != nil {
			return handler.RespondError(c, err)
		}

		c.SetCookie(cookie.session(sess.Token, sess.ExpiresAt))
		return c.JSON(http.StatusOK, api.LoginResponse{
			Token:     sess.Token,
			ExpiresAt: sess.ExpiresAt,
			User:      api.NewUserResponse(sess.User),
		})
	}
}

// LogoutHandler 清除令牌 cookie，永遠成功
// @Summary     登出
// @Tags        auth
// @Produce     json
// @Success     200 {object} api.MessageResponse
// @Router      /logout [post]
func LogoutHandler(cookie CookieConfig) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.SetCookie(cookie.expired())
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "logged out"})
	}
}
