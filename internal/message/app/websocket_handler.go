package app

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	memberdomain "campus_lost_found/internal/member/domain"
	"campus_lost_found/internal/message/domain"
	errprocess "campus_lost_found/pkg/err"
	"campus_lost_found/pkg/logger"
	"campus_lost_found/pkg/middlewares"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

const pingInterval = 10 * time.Minute

// MessageWebsocketHandler 即時會話列表與訊息動作
type MessageWebsocketHandler struct {
	uc   MessageUseCase
	feed *ConversationFeed
}

// NewMessageWebsocketHandler create MessageWebsocketHandler
func NewMessageWebsocketHandler(uc MessageUseCase, feed *ConversationFeed) *MessageWebsocketHandler {
	return &MessageWebsocketHandler{uc: uc, feed: feed}
}

// wsWriter conn 不支援併發寫入, 以 mutex 保護
type wsWriter struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (w *wsWriter) write(mt int, data []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteMessage(mt, data)
}

func (w *wsWriter) send(update domain.LiveUpdate) error {
	b, err := json.Marshal(update)
	if err != nil {
		return err
	}
	return w.write(websocket.TextMessage, b)
}

// HandleConnection 是 WebSocket 連線的進入點
func (h *MessageWebsocketHandler) HandleConnection(conn *websocket.Conn) {
	viewer := viewerFromConn(conn)
	logger.Log.Info("websocket handle member", zap.String("member_id", viewer.MemberID))

	w := &wsWriter{conn: conn}
	ticker := time.NewTicker(pingInterval)
	ctx, cancel := context.WithCancel(context.Background())

	defer func() {
		ticker.Stop()
		cancel()
		logger.Log.Info("websocket close", zap.String("member_id", viewer.MemberID))
		conn.Close()
	}()

	if err := viewer.Require(); err != nil {
		_ = w.send(domain.LiveUpdate{Action: domain.ActionError, Error: err.Error()})
		return
	}

	//client發出close, fiber 會在 read msg 回傳 err
	conn.SetCloseHandler(func(code int, text string) error {
		logger.Log.Info("WebSocket closed", zap.Int("code", code), zap.String("member_id", viewer.MemberID))
		return nil
	})

	conn.SetPongHandler(func(appData string) error {
		logger.Log.Debug("Received PONG", zap.String("member_id", viewer.MemberID))
		return nil
	})

	conn.SetPingHandler(func(appData string) error {
		w.mu.Lock()
		defer w.mu.Unlock()
		return conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(time.Second))
	})

	// 會話列表 + 未讀數推送
	go func() {
		if err := h.feed.Run(ctx, viewer, w.send); err != nil {
			logger.Log.Warn("conversation feed stopped", zap.String("member_id", viewer.MemberID), zap.Error(err))
		}
		cancel()
	}()

	// 定期發送 Ping
	go func() {
		for {
			select {
			case <-ticker.C:
				if err := w.write(websocket.PingMessage, []byte("ping")); err != nil {
					logger.Log.Error("Ping error", zap.String("member_id", viewer.MemberID), zap.Error(err))
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
			) {
				logger.Log.Info("Connection closed", zap.String("member_id", viewer.MemberID), zap.Error(err))
			} else {
				//直接斷線 1006
				logger.Log.Error("websocket read error", zap.String("member_id", viewer.MemberID), zap.Error(err))
			}
			return
		}
		if ctx.Err() != nil {
			return
		}

		if mt != websocket.TextMessage {
			_ = w.send(domain.LiveUpdate{Action: domain.ActionError, Error: "unsupported message type"})
			continue
		}
		if err := w.send(h.HandleText(ctx, viewer, message)); err != nil {
			logger.Log.Error("write message error", zap.String("member_id", viewer.MemberID), zap.Error(err))
			return
		}
	}
}

// HandleText 解析 client 請求並執行對應動作
func (h *MessageWebsocketHandler) HandleText(ctx context.Context, viewer memberdomain.Viewer, msg []byte) domain.LiveUpdate {
	var req domain.WSRequest
	if err := json.Unmarshal(msg, &req); err != nil {
		return domain.LiveUpdate{Action: domain.ActionError, Error: "invalid request"}
	}

	resp := domain.LiveUpdate{Action: domain.Action(req.Action)}
	switch domain.Action(req.Action) {
	case domain.ActionSendMessage:
		m, err := h.uc.SendMessage(ctx, viewer, domain.SendMessageReq{
			ReceiverID: req.ReceiverID,
			Content:    req.Content,
			ItemID:     req.ItemID,
		})
		if err != nil {
			resp.Error = clientError(err)
			break
		}
		resp.Success = true
		resp.Message = m

	case domain.ActionMarkRead:
		n, err := h.uc.MarkRead(ctx, viewer, req.MessageIDs)
		if err != nil {
			resp.Error = clientError(err)
			break
		}
		resp.Success = true
		resp.Updated = &n

	case domain.ActionThread:
		msgs, err := h.uc.ListThread(ctx, viewer, req.OtherID, req.ItemID)
		if err != nil {
			resp.Error = clientError(err)
			break
		}
		if msgs == nil {
			msgs = []domain.Message{}
		}
		resp.Success = true
		resp.Messages = msgs

	case domain.ActionConversations:
		convs, err := h.uc.ListConversations(ctx, viewer)
		if err != nil {
			resp.Error = clientError(err)
			break
		}
		resp.Success = true
		resp.Conversations = convs

	case domain.ActionUnread:
		n, err := h.uc.UnreadCount(ctx, viewer)
		if err != nil {
			resp.Error = clientError(err)
			break
		}
		resp.Success = true
		resp.UnreadCount = &n

	default:
		return domain.LiveUpdate{Action: domain.ActionError, Error: "unknown action"}
	}

	if resp.Error != "" {
		logger.Log.Error("websocket err ", zap.String("MemberID", viewer.MemberID), zap.String("Action", req.Action), zap.String("err", resp.Error))
	}
	return resp
}

// clientError 未分類的錯誤不回傳細節, 細節已由 errprocess.Set 記錄
func clientError(err error) string {
	if errprocess.HTTPStatus(err) == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}

func viewerFromConn(conn *websocket.Conn) memberdomain.Viewer {
	id, _ := conn.Locals(middlewares.TokenMemberID).(string)
	email, _ := conn.Locals(middlewares.TokenEmail).(string)
	return memberdomain.Viewer{MemberID: id, Email: email}
}
