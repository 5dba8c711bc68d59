package router

import (
	"taskboard/internal/cache"
	"taskboard/internal/handler"
	"taskboard/internal/handler/auth"
	"taskboard/internal/handler/boards"
	"taskboard/internal/handler/categories"
	"taskboard/internal/handler/comments"
	"taskboard/internal/handler/tasks"
	"taskboard/internal/middleware"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Deps 是註冊路由需要的所有相依物件
type Deps struct {
	Store handler.Pinger
	// Cache 可為 nil，代表沒有設定 Redis
	Cache  cache.Cache
	Tokens middleware.TokenVerifier
	Cookie auth.CookieConfig

	Accounts   auth.AccountService
	Boards     boards.BoardService
	Categories categories.CategoryService
	Tasks      tasks.TaskService
	Comments   comments.CommentService

	// Swagger 掛上 /swagger/* 文件頁
	Swagger bool
}

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, d Deps) {
	requireAuth := middleware.RequireAuth(d.Tokens, d.Cookie.Name)

	// 健康檢查
	e.GET("/ping", handler.PingHandler(d.Store, d.Cache))

	// 帳號
	e.POST("/register", auth.RegisterHandler(d.Accounts))
	e.POST("/login", auth.LoginHandler(d.Accounts, d.Cookie))
	e.POST("/logout", auth.LogoutHandler(d.Cookie))
	e.GET("/user", auth.CurrentUserHandler(d.Accounts), requireAuth)

	// 看板
	b := e.Group("/boards", requireAuth)
	b.POST("", boards.CreateBoardHandler(d.Boards))
	b.GET("", boards.ListBoardsHandler(d.Boards))
	b.GET("/:id", boards.GetBoardHandler(d.Boards))
	b.PUT("/:id", boards.UpdateBoardHandler(d.Boards))
	b.DELETE("/:id", boards.DeleteBoardHandler(d.Boards))

	// 分類
	c := e.Group("/categories", requireAuth)
	c.POST("", categories.CreateCategoryHandler(d.Categories))
	c.GET("/:boardId", categories.ListCategoriesHandler(d.Categories))
	c.GET("/:categoryId/tasks", tasks.ListTasksHandler(d.Tasks))

	// 任務與留言
	t := e.Group("/tasks", requireAuth)
	t.POST("", tasks.CreateTaskHandler(d.Tasks))
	t.GET("/:id", tasks.GetTaskHandler(d.Tasks))
	t.PUT("/:id", tasks.UpdateTaskHandler(d.Tasks))
	t.DELETE("/:id", tasks.DeleteTaskHandler(d.Tasks))
	t.POST("/:taskId/comments", comments.CreateCommentHandler(d.Comments))
	t.GET("/:taskId/comments", comments.ListCommentsHandler(d.Comments))

	cm := e.Group("/comments", requireAuth)
	cm.PUT("/:commentId", comments.UpdateCommentHandler(d.Comments))
	cm.DELETE("/:commentId", comments.DeleteCommentHandler(d.Comments))

	if d.Swagger {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}
}
