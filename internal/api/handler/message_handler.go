package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/homecook/internal/api/middleware"
	"github.com/d60-Lab/homecook/internal/model"
	"github.com/d60-Lab/homecook/pkg/response"
)

type sendMessageRequest struct {
	ReceiverID int64  `json:"receiver_id" binding:"required"`
	Message    string `json:"message" binding:"required"`
}

// SendMessage 发消息（落库并实时转发给在线接收方）
// @Summary 发送消息
// @Tags 消息
// @Accept json
// @Success 201 {object} response.Response{data=model.Message}
// @Failure 400 {object} response.Response
// @Router /api/messages [post]
func (h *Handler) SendMessage(c *gin.Context) {
	ident, _ := middleware.CurrentUser(c)

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "valid receiver_id and message are required")
		return
	}

	msg, err := h.messages.Send(c.Request.Context(), ident.ID, req.ReceiverID, req.Message)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, "message sent", msg)
}

// Conversation 双人会话记录
// @Summary 会话记录
// @Tags 消息
// @Param otherUserId path int true "对方用户ID"
// @Success 200 {object} response.Response
// @Router /api/messages/{otherUserId} [get]
func (h *Handler) Conversation(c *gin.Context) {
	ident, _ := middleware.CurrentUser(c)

	otherID, err := strconv.ParseInt(c.Param("otherUserId"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}
	msgs, err := h.messages.Conversation(c.Request.Context(), ident.ID, otherID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, msgs)
}

// ChattedCustomers 与家厨有过会话的顾客
// @Summary 聊过天的顾客列表
// @Tags 消息
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /api/messages/customers [get]
func (h *Handler) ChattedCustomers(c *gin.Context) {
	ident, _ := middleware.CurrentUser(c)
	if ident.Role != model.RoleHomecook {
		response.Forbidden(c, "only homecooks can access this")
		return
	}
	briefs, err := h.messages.CustomersChattedWith(c.Request.Context(), ident.ID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, briefs)
}
