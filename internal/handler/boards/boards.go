package boards

import (
	"context"
	"net/http"

	"taskboard/internal/api"
	"taskboard/internal/handler"
	"taskboard/internal/middleware"
	"taskboard/internal/model"
	"taskboard/internal/service"

	"github.com/labstack/echo/v4"
)

// BoardService 由 *service.Boards 實作
type BoardService interface {
	Create(ctx context.Context, caller *service.Claims, in service.BoardInput) (*model.Board, error)
	List(ctx context.Context, caller *service.Claims) ([]model.Board, error)
	Get(ctx context.Context, caller *service.Claims, id string) (*model.Board, error)
	Update(ctx context.Context, caller *service.Claims, id string, patch service.BoardPatch) (*model.Board, error)
	Delete(ctx context.Context, caller *service.Claims, id string) error
}

// CreateBoardHandler 建立看板
// @Summary     Create board
// @Tags        boards
// @Accept      json
// @Produce     json
// @Param       body body     api.CreateBoardRequest true "看板資料"
// @Success     201  {object} model.Board
// @Failure     400  {object} api.HTTPError
// @Failure     401  {object} api.HTTPError
// @Failure     500  {object} api.HTTPError
// @Security    CookieAuth
// @Router      /boards [post]
func CreateBoardHandler(boards BoardService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateBoardRequest
		if ok, err := handler.BindAndValidate(c, &req); !ok {
			return err
		}
		b, err := boards.Create(c.Request().Context(), middleware.CallerFrom(c), service.BoardInput{
			Name:       req.Name,
			Background: req.Background,
		})
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusCreated, b)
	}
}

// ListBoardsHandler 列出自己的看板，依 sortId 排序
// @Summary     List my boards
// @Tags        boards
// @Produce     json
// @Success     200 {array}  model.Board
// @Failure     401 {object} api.HTTPError
// @Failure     500 {object} api.HTTPError
// @Security    CookieAuth
// @Router      /boards [get]
func ListBoardsHandler(boards BoardService) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := boards.List(c.Request().Context(), middleware.CallerFrom(c))
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, list)
	}
}

// GetBoardHandler 取得單一看板；非擁有者視為不存在
// @Summary     Get board
// @Tags        boards
// @Produce     json
// @Param       id  path     string true "Board ID"
// @Success     200 {object} model.Board
// @Failure     404 {object} api.HTTPError
// @Failure     500 {object} api.HTTPError
// @Security    CookieAuth
// @Router      /boards/{id} [get]
func GetBoardHandler(boards BoardService) echo.HandlerFunc {
	return func(c echo.Context) error {
		b, err := boards.Get(c.Request().Context(), middleware.CallerFrom(c), c.Param("id"))
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, b)
	}
}

// UpdateBoardHandler 更新看板名稱或背景
// @Summary     Update board
// @Tags        boards
// @Accept      json
// @Produce     json
// @Param       id   path     string                 true "Board ID"
// @Param       body body     api.UpdateBoardRequest true "更新欄位"
// @Success     200  {object} model.Board
// @Failure     400  {object} api.HTTPError
// @Failure     403  {object} api.HTTPError
// @Failure     404  {object} api.HTTPError
// @Failure     500  {object} api.HTTPError
// @Security    CookieAuth
// @Router      /boards/{id} [put]
func UpdateBoardHandler(boards BoardService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.UpdateBoardRequest
		if ok, err := handler.BindAndValidate(c, &req); !ok {
			return err
		}
		b, err := boards.Update(c.Request().Context(), middleware.CallerFrom(c), c.Param("id"), service.BoardPatch{
			Name:       req.Name,
			Background: req.Background,
		})
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, b)
	}
}

// DeleteBoardHandler 刪除看板，不會連帶刪除分類與任務
// @Summary     Delete board
// @Tags        boards
// @Produce     json
// @Param       id  path     string true "Board ID"
// @Success     200 {object} api.MessageResponse
// @Failure     403 {object} api.HTTPError
// @Failure     404 {object} api.HTTPError
// @Failure     500 {object} api.HTTPError
// @Security    CookieAuth
// @Router      /boards/{id} [delete]
func DeleteBoardHandler(boards BoardService) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := boards.Delete(c.Request().Context(), middleware.CallerFrom(c), c.Param("id")); err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "board deleted"})
	}
}
