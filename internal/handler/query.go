package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"parley/internal/model"
	"parley/internal/service"
)

// QueryHandler 无状态生成处理器
type QueryHandler struct {
	query *service.QueryService
	convs *service.ConversationService
}

// NewQueryHandler 创建生成处理器
func NewQueryHandler(query *service.QueryService, convs *service.ConversationService) *QueryHandler {
	return &QueryHandler{query: query, convs: convs}
}

// Query 生成回复
// @Summary      生成回复
// @Description  调用模型生成回复，不修改对话；指定 conversation_id 时携带该对话历史
// @Tags         生成
// @Accept       json
// @Produce      json
// @Param        request  body      model.QueryRequest  true  "生成请求"
// @Success      200      {object}  model.QueryResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      404      {object}  model.ErrorResponse
// @Failure      500      {object}  model.ErrorResponse
// @Router       /api/v1/query [post]
func (h *QueryHandler) Query(c *gin.Context) {
	var req model.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(40001, "Invalid request body", err.Error()))
		return
	}

	ctx := c.Request.Context()
	in := &service.QueryInput{
		ModelName: req.ModelName,
		Message:   req.Message,
		MaxLength: req.MaxLength,
	}

	if req.ConversationID != "" {
		conv, err := h.convs.Get(ctx, req.ConversationID)
		if err != nil {
			if errors.Is(err, service.ErrConversationNotFound) {
				c.JSON(http.StatusNotFound, model.NewErrorResponse(40401, msgConversationNotFound))
				return
			}
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, model.NewErrorResponse(50002, msgQueryFailed))
			return
		}
		in.History = conv.Messages
	}

	text, err := h.query.Query(ctx, in)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedModel) {
			c.JSON(http.StatusBadRequest, model.NewErrorResponse(40003, err.Error()))
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse(50002, msgQueryFailed))
		return
	}

	c.JSON(http.StatusOK, model.QueryResponse{Response: text})
}

// Models 获取可用模型
// @Summary      获取可用模型
// @Tags         生成
// @Produce      json
// @Success      200  {object}  map[string][]string
// @Router       /api/v1/models [get]
func (h *QueryHandler) Models(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"models": h.query.ModelNames()})
}
