package tasks

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

// TaskService 由 *service.Tasks 實作
type TaskService interface {
	Create(ctx context.Context, caller *service.Claims, in service.TaskInput) (*model.Task, error)
	List(ctx context.Context, caller *service.Claims, categoryID string) ([]model.Task, error)
	Get(ctx context.Context, caller *service.Claims, id string) (*model.Task, error)
	Update(ctx context.Context, caller *service.Claims, id string, patch service.TaskPatch) (*model.Task, error)
	Delete(ctx context.Context, caller *service.Claims, id string) error
}

// CreateTaskHandler 在分類下建立任務
// @Summary     Create task
// @Tags        tasks
// @Accept      json
// @Produce     json
// @Param       body body     api.CreateTaskRequest true "任務資料"
// @Success     201  {object} model.Task
// @Failure     400  {object} api.HTTPError
// @Failure     404  {object} api.HTTPError
// @Failure     500  {object} api.HTTPError
// @Security    CookieAuth
// @Router      /tasks [post]
func CreateTaskHandler(tasks TaskService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateTaskRequest
		if ok, err := handler.BindAndValidate(c, &req); !ok {
			return err
		}
		t, err := tasks.Create(c.Request().Context(), middleware.CallerFrom(c), service.TaskInput{
			Name:        req.Name,
			Description: req.Description,
			CategoryID:  req.CategoryID,
		})
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusCreated, t)
	}
}

// ListTasksHandler 列出分類下的任務
// @Summary     List tasks of a category
// @Tags        tasks
// @Produce     json
// @Param       categoryId path     string true "Category ID"
// @Success     200        {array}  model.Task
// @Failure     404        {object} api.HTTPError
// @Failure     500        {object} api.HTTPError
// @Security    CookieAuth
// @Router      /categories/{categoryId}/tasks [get]
func ListTasksHandler(tasks TaskService) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := tasks.List(c.Request().Context(), middleware.CallerFrom(c), c.Param("categoryId"))
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, list)
	}
}

// GetTaskHandler 取得單一任務
// @Summary     Get task
// @Tags        tasks
// @Produce     json
// @Param       id  path     string true "Task ID"
// @Success     200 {object} model.Task
// @Failure     404 {object} api.HTTPError
// @Failure     500 {object} api.HTTPError
// @Security    CookieAuth
// @Router      /tasks/{id} [get]
func GetTaskHandler(tasks TaskService) echo.HandlerFunc {
	return func(c echo.Context) error {
		t, err := tasks.Get(c.Request().Context(), middleware.CallerFrom(c), c.Param("id"))
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, t)
	}
}

// UpdateTaskHandler 更新任務，提供 categoryId 時移動到其他分類
// @Summary     Update task
// @Tags        tasks
// @Accept      json
// @Produce     json
// @Param       id   path     string                true "Task ID"
// @Param       body body     api.UpdateTaskRequest true "更新欄位"
// @Success     200  {object} model.Task
// @Failure     400  {object} api.HTTPError
// @Failure     404  {object} api.HTTPError
// @Failure     500  {object} api.HTTPError
// @Security    CookieAuth
// @Router      /tasks/{id} [put]
func UpdateTaskHandler(tasks TaskService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.UpdateTaskRequest
		if ok, err := handler.BindAndValidate(c, &req); !ok {
			return err
		}
		t, err := tasks.Update(c.Request().Context(), middleware.CallerFrom(c), c.Param("id"), service.TaskPatch{
			Name:        req.Name,
			Description: req.Description,
			CategoryID:  req.CategoryID,
		})
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, t)
	}
}

// DeleteTaskHandler 刪除任務，留言保留
// @Summary     Delete task
// @Tags        tasks
// @Produce     json
// @Param       id  path     string true "Task ID"
// @Success     200 {object} api.MessageResponse
// @Failure     404 {object} api.HTTPError
// @Failure     500 {object} api.HTTPError
// @Security    CookieAuth
// @Router      /tasks/{id} [delete]
func DeleteTaskHandler(tasks TaskService) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := tasks.Delete(c.Request().Context(), middleware.CallerFrom(c), c.Param("id")); err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "task deleted"})
	}
}
