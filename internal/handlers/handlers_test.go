package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syntoo/nepsebot/internal/common"
	"github.com/syntoo/nepsebot/internal/interfaces"
	"github.com/syntoo/nepsebot/internal/models"
	"github.com/syntoo/nepsebot/internal/services/broadcast"
)

type stubBroadcaster struct {
	result *models.BroadcastResult
	err    error
}

func (s *stubBroadcaster) BroadcastDailySummary(ctx context.Context, send interfaces.SendFunc) (*models.BroadcastResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

type nopSender struct{}

func (nopSender) SendMessage(context.Context, int64, string, string) error { return nil }

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestSendDailySummaryHandler_ReportsSentCount(t *testing.T) {
	broadcaster := &stubBroadcaster{result: &models.BroadcastResult{RunID: "r1", Attempted: 5, Succeeded: 4}}
	handler := NewSummaryHandler(broadcaster, nopSender{}, common.GetLogger())

	rec := httptest.NewRecorder()
	handler.SendDailySummaryHandler(rec, httptest.NewRequest(http.MethodGet, "/send_daily_summary", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Sent to 4 users", body["status"])
}

type stubIndexReader struct {
	snapshot *models.IndexSnapshot
}

func (s stubIndexReader) ReadSnapshot(context.Context) (*models.IndexSnapshot, error) {
	return s.snapshot, nil
}

type staticSubscribers struct {
	subs []models.Subscriber
}

func (s staticSubscribers) Snapshot(context.Context) ([]models.Subscriber, error) {
	return s.subs, nil
}

// countingSender fails any send whose context is already cancelled
type countingSender struct {
	mu   sync.Mutex
	sent int
}

func (s *countingSender) SendMessage(ctx context.Context, _ int64, _ string, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.sent++
	s.mu.Unlock()
	return nil
}

func TestSendDailySummaryHandler_SurvivesDisconnectedTrigger(t *testing.T) {
	subs := []models.Subscriber{{ChatID: 1}, {ChatID: 2}, {ChatID: 3}, {ChatID: 4}, {ChatID: 5}}
	engine := broadcast.NewEngine(
		stubIndexReader{snapshot: &models.IndexSnapshot{Index: 2045.5, Change: "-1.2"}},
		staticSubscribers{subs: subs},
		common.GetLogger(),
	)
	sender := &countingSender{}
	handler := NewSummaryHandler(engine, sender, common.GetLogger())

	// The trigger client has already hung up when the pass starts
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/send_daily_summary", nil).WithContext(ctx)

	rec := httptest.NewRecorder()
	handler.SendDailySummaryHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Sent to 5 users", body["status"])
	assert.Equal(t, 5, sender.sent)
}

func TestSendDailySummaryHandler_SnapshotFailure(t *testing.T) {
	broadcaster := &stubBroadcaster{err: interfaces.ErrSnapshotUnavailable}
	handler := NewSummaryHandler(broadcaster, nopSender{}, common.GetLogger())

	rec := httptest.NewRecorder()
	handler.SendDailySummaryHandler(rec, httptest.NewRequest(http.MethodGet, "/send_daily_summary", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "error", body["status"])
}

func TestSendDailySummaryHandler_RejectsPost(t *testing.T) {
	handler := NewSummaryHandler(&stubBroadcaster{}, nopSender{}, common.GetLogger())

	rec := httptest.NewRecorder()
	handler.SendDailySummaryHandler(rec, httptest.NewRequest(http.MethodPost, "/send_daily_summary", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestAPIHandler_Health(t *testing.T) {
	handler := NewAPIHandler()

	rec := httptest.NewRecorder()
	handler.HealthHandler(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "ok", body["status"])
}

func TestAPIHandler_Version(t *testing.T) {
	handler := NewAPIHandler()

	rec := httptest.NewRecorder()
	handler.VersionHandler(rec, httptest.NewRequest(http.MethodGet, "/api/version", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, common.GetVersion(), body["version"])
}

func TestAPIHandler_HomeAndNotFound(t *testing.T) {
	handler := NewAPIHandler()

	rec := httptest.NewRecorder()
	handler.HomeHandler(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "live"))

	rec = httptest.NewRecorder()
	handler.HomeHandler(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
