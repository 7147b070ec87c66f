package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Selaelo1/telemanBot/db"
	"github.com/Selaelo1/telemanBot/engine"
	"github.com/Selaelo1/telemanBot/model"
	"github.com/Selaelo1/telemanBot/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeNotifier) Notify(chatID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, text)
	return nil
}

func (f *fakeNotifier) last() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return ""
	}
	return f.sent[len(f.sent)-1]
}

type fakeWebhooks struct {
	url string
	err error
}

func (f *fakeWebhooks) SetWebhook(url string) error {
	if f.err != nil {
		return f.err
	}
	f.url = url
	return nil
}

func (f *fakeWebhooks) WebhookInfo() (tgbotapi.WebhookInfo, error) {
	return tgbotapi.WebhookInfo{URL: f.url}, f.err
}

type testEnv struct {
	router   *gin.Engine
	store    *db.Store
	sessions *session.Store
	notifier *fakeNotifier
	webhooks *fakeWebhooks
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	sessions := session.NewStore()
	notifier := &fakeNotifier{}
	webhooks := &fakeWebhooks{}
	eng := engine.New(sessions, store, notifier)

	router := gin.New()
	RegisterRoutes(router, New(eng, store, notifier, webhooks))

	return &testEnv{
		router:   router,
		store:    store,
		sessions: sessions,
		notifier: notifier,
		webhooks: webhooks,
	}
}

func (env *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func updateJSON(userID int64, text string) string {
	return fmt.Sprintf(`{"update_id":1,"message":{"message_id":1,"from":{"id":%d,"is_bot":false,"first_name":"Anna","username":"anna_l"},"chat":{"id":%d,"type":"private"},"date":1,"text":%q}}`,
		userID, userID, text)
}

func (env *testEnv) submitApplication(t *testing.T, userID int64) model.Submission {
	t.Helper()
	for _, text := range []string{"/start", "Anna", "Lee", "29", "02/05/1995", "anna@test.com"} {
		w := env.do(t, http.MethodPost, "/api/webhook", updateJSON(userID, text))
		require.Equal(t, http.StatusOK, w.Code)
	}

	subs, err := env.store.GetAllSubmissions()
	require.NoError(t, err)
	require.NotEmpty(t, subs)
	return subs[0]
}

func TestWebhookHappyPath(t *testing.T) {
	env := newTestEnv(t)

	sub := env.submitApplication(t, 42)
	assert.Equal(t, "42", sub.TelegramID)
	assert.Equal(t, "Anna", sub.FirstName)
	assert.Equal(t, "Lee", sub.LastName)
	assert.Equal(t, 29, sub.Age)
	assert.Equal(t, "02/05/1995", sub.DateOfBirth)
	assert.Equal(t, "anna@test.com", sub.Email)
	assert.Equal(t, model.StatusPending, sub.Status)

	assert.Nil(t, env.sessions.Get("42"))
	assert.Contains(t, env.notifier.last(), "Application Submitted Successfully")
}

func TestWebhookIgnoresNonMessageUpdates(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/webhook", `{"update_id":7}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
}

func TestWebhookRejectsMalformedBody(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/webhook", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStartWhilePendingIsNotice(t *testing.T) {
	env := newTestEnv(t)
	env.submitApplication(t, 42)

	w := env.do(t, http.MethodPost, "/api/webhook", updateJSON(42, "/start"))
	require.Equal(t, http.StatusOK, w.Code)

	assert.Nil(t, env.sessions.Get("42"), "no new session")
	subs, err := env.store.GetAllSubmissions()
	require.NoError(t, err)
	assert.Len(t, subs, 1, "no new submission")
	assert.Contains(t, env.notifier.last(), "pending application")
}

func TestListApplicationsNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	env.submitApplication(t, 42)
	env.submitApplication(t, 43)

	w := env.do(t, http.MethodGet, "/api/applications", "")
	require.Equal(t, http.StatusOK, w.Code)

	var subs []model.Submission
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &subs))
	require.Len(t, subs, 2)
	assert.Equal(t, "2", subs[0].ID)
	assert.Equal(t, "1", subs[1].ID)
}

func TestUpdateApplicationAccepted(t *testing.T) {
	env := newTestEnv(t)
	sub := env.submitApplication(t, 42)

	w := env.do(t, http.MethodPatch, "/api/applications/"+sub.ID,
		`{"status":"accepted","adminNotes":"welcome"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var updated model.Submission
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, model.StatusAccepted, updated.Status)
	assert.Equal(t, "welcome", updated.AdminNotes)
	require.NotNil(t, updated.ProcessedAt)

	last := env.notifier.last()
	assert.Contains(t, last, "Application Accepted")
	assert.Contains(t, last, "welcome")
}

func TestUpdateApplicationDeclinedWithoutNotes(t *testing.T) {
	env := newTestEnv(t)
	sub := env.submitApplication(t, 42)

	w := env.do(t, http.MethodPatch, "/api/applications/"+sub.ID, `{"status":"declined"}`)
	require.Equal(t, http.StatusOK, w.Code)

	last := env.notifier.last()
	assert.Contains(t, last, "Application Declined")
	assert.NotContains(t, last, "Reason", "no notes section without notes")
}

// A verdict without notes must not re-send notes stored by an earlier
// verdict.
func TestVerdictNotificationUsesRequestNotes(t *testing.T) {
	env := newTestEnv(t)
	sub := env.submitApplication(t, 42)

	w := env.do(t, http.MethodPatch, "/api/applications/"+sub.ID,
		`{"status":"accepted","adminNotes":"welcome"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, env.notifier.last(), "welcome")

	w = env.do(t, http.MethodPatch, "/api/applications/"+sub.ID, `{"status":"accepted"}`)
	require.Equal(t, http.StatusOK, w.Code)

	last := env.notifier.last()
	assert.Contains(t, last, "Application Accepted")
	assert.NotContains(t, last, "Admin Notes")
	assert.NotContains(t, last, "welcome")

	// The stored record keeps the earlier notes untouched.
	var updated model.Submission
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "welcome", updated.AdminNotes)
}

func TestUpdateApplicationUnknownID(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPatch, "/api/applications/999", `{"status":"accepted"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	stats, err := env.store.Stats()
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Total, "a failed update must not create records")
}

func TestUpdateApplicationBadStatus(t *testing.T) {
	env := newTestEnv(t)
	sub := env.submitApplication(t, 42)

	for _, body := range []string{`{"status":"pending"}`, `{"status":"bogus"}`, `{}`} {
		w := env.do(t, http.MethodPatch, "/api/applications/"+sub.ID, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)
	}
}

func TestStats(t *testing.T) {
	env := newTestEnv(t)
	sub := env.submitApplication(t, 42)
	env.do(t, http.MethodPatch, "/api/applications/"+sub.ID, `{"status":"accepted"}`)

	w := env.do(t, http.MethodGet, "/api/stats", "")
	require.Equal(t, http.StatusOK, w.Code)

	var stats model.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, model.Stats{Total: 1, Pending: 0, Accepted: 1, Declined: 0}, stats)
}

func TestSetWebhook(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/set-webhook", `{"webhookUrl":"https://example.com/api/webhook"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://example.com/api/webhook", env.webhooks.url)

	w = env.do(t, http.MethodGet, "/api/set-webhook", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "example.com"))
}

func TestSetWebhookRequiresURL(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/set-webhook", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSetWebhookUpstreamFailure(t *testing.T) {
	env := newTestEnv(t)
	env.webhooks.err = errors.New("telegram says no")

	w := env.do(t, http.MethodPost, "/api/set-webhook", `{"webhookUrl":"https://example.com"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
