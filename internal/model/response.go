package model

// ErrorResponse 错误响应
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
	Error   string `json:"error"`
}

// NewErrorResponse 创建错误响应，error 字段与 message 相同
func NewErrorResponse(code int, message string, detail ...string) ErrorResponse {
	resp := ErrorResponse{
		Code:    code,
		Message: message,
		Error:   message,
	}
	if len(detail) > 0 && detail[0] != "" {
		resp.Detail = detail[0]
	}
	return resp
}

// ConversationResponse 单个对话响应
type ConversationResponse struct {
	Conversation *Conversation `json:"conversation"`
}

// ConversationListResponse 对话列表响应
type ConversationListResponse struct {
	Conversations []*Conversation `json:"conversations"`
}

// QueryResponse 生成结果
type QueryResponse struct {
	Response string `json:"response"`
}
