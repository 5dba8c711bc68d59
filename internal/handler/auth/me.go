package auth

import (
	"errors"
	"net/http"

	"taskboard/internal/api"
	"taskboard/internal/handler"
	"taskboard/internal/middleware"
	"taskboard/internal/service"

	"github.com/labstack/echo/v4"
)

// CurrentUserHandler 取得目前登入者的最新資料
// @Summary     Current user
// @Tags        auth
// @Produce     json
// @Success     200 {object} api.UserResponse
// @Failure     400 {object} api.HTTPError
// @Failure     401 {object} api.HTTPError
// @Failure     403 {object} api.HTTPError
// @Failure     500 {object} api.HTTPError
// @Security    CookieAuth
// @Router      /user [get]
func CurrentUserHandler(accounts AccountService) echo.HandlerFunc {
	return func(c echo.Context) error {
		u, err := accounts.CurrentUser(c.Request().Context(), middleware.CallerFrom(c))
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusBadRequest, api.HTTPError{Message: "user not found"})
		}
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, api.NewUserResponse(u))
	}
}
