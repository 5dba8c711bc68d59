package api

// HTTPError 全域錯誤響應模型
// swagger:model api.HTTPError
type HTTPError struct {
	// message 錯誤描述
	Message string `json:"message" example:"not found"`
}

// swagger:model api.MessageResponse
type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}
