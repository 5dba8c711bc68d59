package categories

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

// CategoryService 由 *service.Categories 實作
type CategoryService interface {
	Create(ctx context.Context, caller *service.Claims, in service.CategoryInput) (*model.Category, error)
	List(ctx context.Context, caller *service.Claims, boardID string) ([]model.Category, error)
}

// CreateCategoryHandler 在看板下建立分類
// @Summary     Create category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       body body     api.CreateCategoryRequest true "分類資料"
// @Success     201  {object} model.Category
// @Failure     400  {object} api.HTTPError
// @Failure     404  {object} api.HTTPError
// @Failure     500  {object} api.HTTPError
// @Security    CookieAuth
// @Router      /categories [post]
func CreateCategoryHandler(categories CategoryService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateCategoryRequest
		if ok, err := handler.BindAndValidate(c, &req); !ok {
			return err
		}
		cat, err := categories.Create(c.Request().Context(), middleware.CallerFrom(c), service.CategoryInput{
			Name:    req.Name,
			BoardID: req.BoardID,
		})
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusCreated, cat)
	}
}

// ListCategoriesHandler 列出看板下的分類
// @Summary     List categories of a board
// @Tags        categories
// @Produce     json
// @Param       boardId path     string true "Board ID"
// @Success     200     {array}  model.Category
// @Failure     404     {object} api.HTTPError
// @Failure     500     {object} api.HTTPError
// @Security    CookieAuth
// @Router      /categories/{boardId} [get]
func ListCategoriesHandler(categories CategoryService) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := categories.List(c.Request().Context(), middleware.CallerFrom(c), c.Param("boardId"))
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, list)
	}
}
