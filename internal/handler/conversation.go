package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"parley/internal/model"
	"parley/internal/service"
)

// 对外错误消息
const (
	msgConversationNotFound = "Couldn't find conversation"
	msgQueryFailed          = "Error processing query"
)

// ConversationHandler 对话管理处理器
type ConversationHandler struct {
	svc *service.ConversationService
}

// NewConversationHandler 创建对话管理处理器
func NewConversationHandler(svc *service.ConversationService) *ConversationHandler {
	return &ConversationHandler{svc: svc}
}

// Start 开始对话
// @Summary      开始对话
// @Description  使用指定模型创建一个新的空对话
// @Tags         对话
// @Accept       json
// @Produce      json
// @Param        request  body      model.StartConversationRequest  true  "开始对话请求"
// @Success      200      {object}  model.ConversationResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      500      {object}  model.ErrorResponse
// @Router       /api/v1/conversations/start [post]
func (h *ConversationHandler) Start(c *gin.Context) {
	var req model.StartConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(40001, "Invalid request body", err.Error()))
		return
	}

	conv, err := h.svc.Start(c.Request.Context(), req.ModelName)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedModel) {
			c.JSON(http.StatusBadRequest, model.NewErrorResponse(40003, err.Error()))
			return
		}
		log.Error().Err(err).Msg("failed to start conversation")
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse(50001, "Failed to start conversation"))
		return
	}

	c.JSON(http.StatusOK, model.ConversationResponse{Conversation: conv})
}

// Chat 发送消息
// @Summary      发送消息
// @Description  生成回复并将用户消息和 AI 回复追加到对话
// @Tags         对话
// @Accept       json
// @Produce      json
// @Param        request  body      model.ChatRequest  true  "对话请求"
// @Success      201      {object}  model.ConversationResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      404      {object}  model.ErrorResponse
// @Failure      500      {object}  model.ErrorResponse
// @Router       /api/v1/conversations/chat [post]
func (h *ConversationHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(40001, "Invalid request body", err.Error()))
		return
	}

	conv, err := h.svc.Chat(c.Request.Context(), req.ModelName, req.Message, req.ConversationID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrConversationNotFound):
			c.JSON(http.StatusNotFound, model.NewErrorResponse(40401, msgConversationNotFound))
		case errors.Is(err, service.ErrUnsupportedModel):
			c.JSON(http.StatusBadRequest, model.NewErrorResponse(40003, err.Error()))
		default:
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, model.NewErrorResponse(50002, msgQueryFailed))
		}
		return
	}

	c.JSON(http.StatusCreated, model.ConversationResponse{Conversation: conv})
}

// List 获取对话列表
// @Summary      获取对话列表
// @Description  按创建时间倒序返回对话
// @Tags         对话
// @Produce      json
// @Success      200  {object}  model.ConversationListResponse
// @Failure      500  {object}  model.ErrorResponse
// @Router       /api/v1/conversations [get]
func (h *ConversationHandler) List(c *gin.Context) {
	convs, err := h.svc.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse(50001, "Error fetching conversations"))
		return
	}

	c.JSON(http.StatusOK, model.ConversationListResponse{Conversations: convs})
}

// Get 获取对话详情
// @Summary      获取对话详情
// @Tags         对话
// @Produce      json
// @Param        id   path      string  true  "对话 ID"
// @Success      200  {object}  model.ConversationResponse
// @Failure      404  {object}  model.ErrorResponse
// @Failure      500  {object}  model.ErrorResponse
// @Router       /api/v1/conversations/{id} [get]
func (h *ConversationHandler) Get(c *gin.Context) {
	conv, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrConversationNotFound) {
			c.JSON(http.StatusNotFound, model.NewErrorResponse(40401, "Conversation not found"))
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse(50001, "Error fetching conversation"))
		return
	}

	c.JSON(http.StatusOK, model.ConversationResponse{Conversation: conv})
}

// Delete 删除对话
// @Summary      删除对话
// @Tags         对话
// @Produce      json
// @Param        id   path      string  true  "对话 ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  model.ErrorResponse
// @Failure      500  {object}  model.ErrorResponse
// @Router       /api/v1/conversations/{id} [delete]
func (h *ConversationHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrConversationNotFound) {
			c.JSON(http.StatusNotFound, model.NewErrorResponse(40401, "Conversation not found"))
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse(50001, "Failed to delete conversation"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Conversation deleted",
	})
}
