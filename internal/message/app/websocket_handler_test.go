package app

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"campus_lost_found/internal/message/domain"
	errprocess "campus_lost_found/pkg/err"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleText(t *testing.T) {
	ctx := context.Background()
	repo := &memRepo{}
	uc := newTestUseCase(repo, nil, nil, nil, nil)
	h := NewMessageWebsocketHandler(uc, NewConversationFeed(uc, nil, time.Minute))

	req := func(v interface{}) []byte {
		b, err := json.Marshal(v)
		require.NoError(t, err)
		return b
	}

	t.Run("格式錯誤", func(t *testing.T) {
		resp := h.HandleText(ctx, alice, []byte("{"))
		assert.Equal(t, domain.ActionError, resp.Action)
		assert.False(t, resp.Success)
	})

	t.Run("未知動作", func(t *testing.T) {
		resp := h.HandleText(ctx, alice, req(domain.WSRequest{Action: "dance"}))
		assert.Equal(t, domain.ActionError, resp.Action)
		assert.Equal(t, "unknown action", resp.Error)
	})

	t.Run("send_message", func(t *testing.T) {
		resp := h.HandleText(ctx, bob, req(domain.WSRequest{Action: "send_message", ReceiverID: "alice", Content: "hello"}))
		require.True(t, resp.Success, resp.Error)
		require.NotNil(t, resp.Message)
		assert.Equal(t, fixedID, resp.Message.ID)
	})

	t.Run("send_message 驗證失敗", func(t *testing.T) {
		resp := h.HandleText(ctx, bob, req(domain.WSRequest{Action: "send_message", ReceiverID: "bob", Content: "hello"}))
		assert.False(t, resp.Success)
		assert.NotEmpty(t, resp.Error)
	})

	t.Run("unread_count 與 mark_read", func(t *testing.T) {
		resp := h.HandleText(ctx, alice, req(domain.WSRequest{Action: "unread_count"}))
		require.True(t, resp.Success)
		assert.Equal(t, 1, *resp.UnreadCount)

		resp = h.HandleText(ctx, alice, req(domain.WSRequest{Action: "mark_read", MessageIDs: []string{fixedID}}))
		require.True(t, resp.Success)
		assert.Equal(t, int64(1), *resp.Updated)

		resp = h.HandleText(ctx, alice, req(domain.WSRequest{Action: "unread_count"}))
		assert.Equal(t, 0, *resp.UnreadCount)
	})

	t.Run("get_thread 與 conversations", func(t *testing.T) {
		resp := h.HandleText(ctx, alice, req(domain.WSRequest{Action: "get_thread", OtherID: "bob"}))
		require.True(t, resp.Success)
		assert.Len(t, resp.Messages, 1)

		resp = h.HandleText(ctx, alice, req(domain.WSRequest{Action: "conversations"}))
		require.True(t, resp.Success)
		require.Len(t, resp.Conversations, 1)
		assert.Equal(t, "bob", resp.Conversations[0].OtherUserID)
	})
}

func TestClientError(t *testing.T) {
	assert.Equal(t, "receiver is required", clientError(errprocess.Wrap(errprocess.ErrValidation, "receiver is required")))
	assert.Equal(t, "internal server error", clientError(errors.New("pq: connection refused")))
}
