package api

// swagger:model api.CreateBoardRequest
type CreateBoardRequest struct {
	Name       string  `json:"name" form:"name" validate:"required,max=200" example:"Groceries"`
	Background *string `json:"background" form:"background" validate:"omitempty,max=500" example:"#ffcc00"`
}

// UpdateBoardRequest 只更新有提供的欄位
// swagger:model api.UpdateBoardRequest
type UpdateBoardRequest struct {
	Name       *string `json:"name" form:"name" validate:"omitempty,min=1,max=200" example:"Weekend"`
	Background *string `json:"background" form:"background" validate:"omitempty,max=500" example:"#00ccff"`
}

// swagger:model api.CreateCategoryRequest
type CreateCategoryRequest struct {
	Name    string `json:"name" form:"name" validate:"required,max=200" example:"To do"`
	BoardID string `json:"boardId" form:"boardId" validate:"required" example:"b7e0..."`
}

// swagger:model api.CreateTaskRequest
type CreateTaskRequest struct {
	Name        string `json:"name" form:"name" validate:"required,max=200" example:"Buy milk"`
	Description string `json:"description" form:"description" validate:"max=5000" example:"2 liters"`
	CategoryID  string `json:"categoryId" form:"categoryId" validate:"required" example:"c1d2..."`
}

// swagger:model api.UpdateTaskRequest
type UpdateTaskRequest struct {
	Name        *string `json:"name" form:"name" validate:"omitempty,min=1,max=200" example:"Buy oat milk"`
	Description *string `json:"description" form:"description" validate:"omitempty,max=5000" example:"1 liter"`
	CategoryID  *string `json:"categoryId" form:"categoryId" validate:"omitempty,min=1" example:"c9e8..."`
}

// swagger:model api.CommentRequest
type CommentRequest struct {
	Comment string `json:"comment" form:"comment" validate:"required,max=5000" example:"Done already?"`
}
