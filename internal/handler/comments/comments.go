package comments

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

// CommentService 由 *service.Comments 實作
type CommentService interface {
	Create(ctx context.Context, caller *service.Claims, taskID, text string) (*model.Comment, error)
	List(ctx context.Context, caller *service.Claims, taskID string) ([]model.Comment, error)
	Update(ctx context.Context, caller *service.Claims, id, text string) (*model.Comment, error)
	Delete(ctx context.Context, caller *service.Claims, id string) error
}

// CreateCommentHandler 在任務下新增留言，作者資料取自登入者
// @Summary     Create comment
// @Tags        comments
// @Accept      json
// @Produce     json
// @Param       taskId path     string             true "Task ID"
// @Param       body   body     api.CommentRequest true "留言內容"
// @Success     201    {object} model.Comment
// @Failure     400    {object} api.HTTPError
// @Failure     404    {object} api.HTTPError
// @Failure     500    {object} api.HTTPError
// @Security    CookieAuth
// @Router      /tasks/{taskId}/comments [post]
func CreateCommentHandler(comments CommentService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CommentRequest
		if ok, err := handler.BindAndValidate(c, &req); !ok {
			return err
		}
		cm, err := comments.Create(c.Request().Context(), middleware.CallerFrom(c), c.Param("taskId"), req.Comment)
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusCreated, cm)
	}
}

// ListCommentsHandler 列出任務的留言，由舊到新
// @Summary     List comments of a task
// @Tags        comments
// @Produce     json
// @Param       taskId path     string true "Task ID"
// @Success     200    {array}  model.Comment
// @Failure     404    {object} api.HTTPError
// @Failure     500    {object} api.HTTPError
// @Security    CookieAuth
// @Router      /tasks/{taskId}/comments [get]
func ListCommentsHandler(comments CommentService) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := comments.List(c.Request().Context(), middleware.CallerFrom(c), c.Param("taskId"))
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, list)
	}
}

// UpdateCommentHandler 只有作者可以修改
// @Summary     Update comment
// @Tags        comments
// @Accept      json
// @Produce     json
// @Param       commentId path     string             true "Comment ID"
// @Param       body      body     api.CommentRequest true "新的留言內容"
// @Success     200       {object} model.Comment
// @Failure     400       {object} api.HTTPError
// @Failure     403       {object} api.HTTPError
// @Failure     404       {object} api.HTTPError
// @Failure     500       {object} api.HTTPError
// @Security    CookieAuth
// @Router      /comments/{commentId} [put]
func UpdateCommentHandler(comments CommentService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CommentRequest
		if ok, err := handler.BindAndValidate(c, &req); !ok {
			return err
		}
		cm, err := comments.Update(c.Request().Context(), middleware.CallerFrom(c), c.Param("commentId"), req.Comment)
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, cm)
	}
}

// DeleteCommentHandler 只有作者可以刪除
// @Summary     Delete comment
// @Tags        comments
// @Produce     json
// @Param       commentId path     string true "Comment ID"
// @Success     200       {object} api.MessageResponse
// @Failure     403       {object} api.HTTPError
// @Failure     404       {object} api.HTTPError
// @Failure     500       {object} api.HTTPError
// @Security    CookieAuth
// @Router      /comments/{commentId} [delete]
func DeleteCommentHandler(comments CommentService) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := comments.Delete(c.Request().Context(), middleware.CallerFrom(c), c.Param("commentId")); err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "comment deleted"})
	}
}
