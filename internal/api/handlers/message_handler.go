package handlers

import (
	"campus_lost_found/internal/message/app"
	"campus_lost_found/internal/message/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// MessageHandler 处理站内讯息的 HTTP / WebSocket 请求
type MessageHandler struct {
	messageUC app.MessageUseCase
	ws        *app.MessageWebsocketHandler
}

// NewMessageHandler create MessageHandler
func NewMessageHandler(messageUC app.MessageUseCase, ws *app.MessageWebsocketHandler) *MessageHandler {
	return &MessageHandler{messageUC: messageUC, ws: ws}
}

// UnreadRes unread counter
type UnreadRes struct {
	UnreadCount int `json:"unread_count"`
}

// MarkReadRes mark read result
type MarkReadRes struct {
	Updated int64 `json:"updated"`
}

// Conversations 会话列表
// @Summary 会话列表
// @Description 依 (对方, item) 分组, 新到旧
// @Tags Messages
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Conversation
// @Failure 401 {object} ErrorRes
// @Router /messages/conversations [get]
func (h *MessageHandler) Conversations(c *fiber.Ctx) error {
	convs, err := h.messageUC.ListConversations(c.UserContext(), viewerFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	if convs == nil {
		convs = []domain.Conversation{}
	}
	return c.JSON(convs)
}

// Thread 与某人的对话内容
// @Summary 对话内容
// @Tags Messages
// @Produce json
// @Security BearerAuth
// @Param otherUserID path string true "对方 member id"
// @Param item_id query string false "item id, 不带为一般对话"
// @Success 200 {array} domain.Message
// @Failure 400 {object} ErrorRes
// @Failure 401 {object} ErrorRes
// @Router /messages/thread/{otherUserID} [get]
func (h *MessageHandler) Thread(c *fiber.Ctx) error {
	var itemID *string
	if v := c.Query("item_id"); v != "" {
		itemID = &v
	}
	msgs, err := h.messageUC.ListThread(c.UserContext(), viewerFrom(c), c.Params("otherUserID"), itemID)
	if err != nil {
		return respondError(c, err)
	}
	if msgs == nil {
		msgs = []domain.Message{}
	}
	return c.JSON(msgs)
}

// Send 发送讯息
// @Summary 发送讯息
// @Tags Messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body domain.SendMessageReq true "message"
// @Success 201 {object} domain.Message
// @Failure 400 {object} ErrorRes
// @Failure 401 {object} ErrorRes
// @Failure 404 {object} ErrorRes "item 不存在"
// @Router /messages [post]
func (h *MessageHandler) Send(c *fiber.Ctx) error {
	var req domain.SendMessageReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, errEmptyBody.Error())
	}
	msg, err := h.messageUC.SendMessage(c.UserContext(), viewerFrom(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

// MarkRead 标记已读
// @Summary 标记已读
// @Description 只会更新自己收到的讯息
// @Tags Messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body domain.MarkReadReq true "message ids"
// @Success 200 {object} MarkReadRes
// @Failure 400 {object} ErrorRes
// @Failure 401 {object} ErrorRes
// @Router /messages/read [post]
func (h *MessageHandler) MarkRead(c *fiber.Ctx) error {
	var req domain.MarkReadReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, errEmptyBody.Error())
	}
	n, err := h.messageUC.MarkRead(c.UserContext(), viewerFrom(c), req.MessageIDs)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(MarkReadRes{Updated: n})
}

// Unread 未读总数
// @Summary 未读总数
// @Tags Messages
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UnreadRes
// @Failure 401 {object} ErrorRes
// @Router /messages/unread [get]
func (h *MessageHandler) Unread(c *fiber.Ctx) error {
	n, err := h.messageUC.UnreadCount(c.UserContext(), viewerFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(UnreadRes{UnreadCount: n})
}

// UpgradeCheck 非 websocket 请求回 426
func (h *MessageHandler) UpgradeCheck(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return c.Status(fiber.StatusUpgradeRequired).JSON(ErrorRes{Error: "websocket upgrade required"})
}

// Live 即时会话列表与未读数
// @Summary WebSocket 即时更新
// @Description 连线后推送 conversations 与 unread_count, 可送 send_message / mark_read / get_thread
// @Tags Messages
// @Security BearerAuth
// @Param auth query string false "token (browser websocket)"
// @Router /ws [get]
func (h *MessageHandler) Live() fiber.Handler {
	return websocket.New(h.ws.HandleConnection)
}
