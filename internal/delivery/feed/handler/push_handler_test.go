package handler

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"logbid/config"
	"logbid/internal/delivery/feed/hub"
	"logbid/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestPushHandler(t *testing.T) *PushHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{}

	return NewPushHandler(PushHandlerParams{
		Config: cfg,
		Logger: logger,
		Hub:    hub.NewHub(cfg, logger),
	})
}

func performPush(t *testing.T, h *PushHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/push", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.HandlePush(e.NewContext(req, rec)))

	return rec
}

func TestHandlePush_AcceptsValidMessage(t *testing.T) {
	h := createTestPushHandler(t)

	eventData, err := json.Marshal(&service.RealtimeEvent{
		Stream:   service.StreamOffers,
		Action:   service.ActionInsert,
		MarketID: 3,
		Record:   json.RawMessage(`{"id":7}`),
	})
	require.NoError(t, err)

	var pushMsg PubSubMessage
	pushMsg.Message.Data = base64.StdEncoding.EncodeToString(eventData)
	pushMsg.Message.Attributes = map[string]string{"request_id": "req-123"}
	body, err := json.Marshal(pushMsg)
	require.NoError(t, err)

	rec := performPush(t, h, string(body))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandlePush_RejectsMalformedBase64(t *testing.T) {
	h := createTestPushHandler(t)

	rec := performPush(t, h, `{"message":{"data":"%%%not-base64%%%"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlePush_RejectsNonEventPayload(t *testing.T) {
	h := createTestPushHandler(t)

	data := base64.StdEncoding.EncodeToString([]byte("not json"))
	rec := performPush(t, h, `{"message":{"data":"`+data+`"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
