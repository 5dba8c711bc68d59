package handler

import (
	"errors"
	"net/http"

	"taskboard/internal/api"
	"taskboard/internal/logging"
	"taskboard/internal/service"

	"github.com/labstack/echo/v4"
)

// RespondError 將 service 錯誤轉為 HTTP 狀態與 JSON 訊息
// 非預期錯誤一律回 500，細節只寫進 log
func RespondError(c echo.Context, err error) error {
	var inputErr *service.InputError
	switch {
	case errors.As(err, &inputErr):
		return c.JSON(http.StatusBadRequest, api.HTTPError{Message: inputErr.Reason})
	case errors.Is(err, service.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, api.HTTPError{Message: "invalid input"})
	case errors.Is(err, service.ErrConflict):
		return c.JSON(http.StatusBadRequest, api.HTTPError{Message: "email already registered"})
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.JSON(http.StatusBadRequest, api.HTTPError{Message: "incorrect password"})
	case errors.Is(err, service.ErrUnauthenticated):
		return c.JSON(http.StatusUnauthorized, api.HTTPError{Message: "missing token"})
	case errors.Is(err, service.ErrTokenExpired):
		return c.JSON(http.StatusForbidden, api.HTTPError{Message: "token expired"})
	case errors.Is(err, service.ErrTokenInvalid):
		return c.JSON(http.StatusForbidden, api.HTTPError{Message: "invalid token"})
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, api.HTTPError{Message: "forbidden"})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, api.HTTPError{Message: "not found"})
	}
	logging.FromContext(c).WithError(err).Error("internal error")
	return c.JSON(http.StatusInternalServerError, api.HTTPError{Message: "internal server error"})
}

// BindAndValidate 先 Bind 再用 validator 驗證
// 失敗時已寫出 400 回應，呼叫端只需回傳 ok=false 時的 error
func BindAndValidate(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, api.HTTPError{Message: "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, api.HTTPError{Message: err.Error()})
	}
	return true, nil
}
