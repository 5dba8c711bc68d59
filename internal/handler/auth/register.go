package auth

import (
	"net/http"

	"taskboard/internal/api"
	"taskboard/internal/handler"
	"taskboard/internal/service"

	"github.com/labstack/echo/v4"
)

// RegisterHandler 註冊新使用者
// @Summary     Register
// @Description 建立帳號，email 會轉為小寫且不可重複；回應不含密碼
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.RegisterRequest true "註冊資料"
// @Success     200  {object} api.UserResponse
// @Failure     400  {object} api.HTTPError
// @Failure     500  {object} api.HTTPError
// @Router      /register [post]
func RegisterHandler(accounts AccountService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RegisterRequest
		if ok, err := handler.BindAndValidate(c, &req); !ok {
			return err
		}

		u, err := accounts.Register(c.Request().Context(), service.Registration{
			Username:  req.Username,
			Firstname: req.Firstname,
			Lastname:  req.Lastname,
			Email:     req.Email,
			Password:  req.Password,
			Age:       req.Age,
			Gender:    req.Gender,
		})
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, api.NewUserResponse(u))
	}
}
