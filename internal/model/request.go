package model

// StartConversationRequest 开始对话请求
type StartConversationRequest struct {
	ModelName string `json:"model_name" binding:"required"`
}

// ChatRequest 对话请求
type ChatRequest struct {
	ModelName      string `json:"model_name" binding:"required"`
	Message        string `json:"message" binding:"required,min=1"`
	ConversationID string `json:"conversation_id" binding:"required,len=9"`
}

// QueryRequest 无状态生成请求
// conversation_id 存在时将该对话的历史消息拼入 prompt
type QueryRequest struct {
	ModelName      string `json:"model_name" binding:"required"`
	Message        string `json:"message" binding:"required,min=1"`
	ConversationID string `json:"conversation_id,omitempty" binding:"omitempty,len=9"`
	MaxLength      int    `json:"max_length,omitempty" binding:"omitempty,min=1,max=4096"`
}
