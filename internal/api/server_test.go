package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	config "github.com/bkmarketing/post-composer/configs"
	"github.com/bkmarketing/post-composer/internal/models"
	"github.com/bkmarketing/post-composer/internal/queue"
	"github.com/bkmarketing/post-composer/internal/repository"
	"github.com/bkmarketing/post-composer/internal/service"
	"github.com/bkmarketing/post-composer/internal/transfer"
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, make([]byte, 24)...)

func newTestApp() *fiber.App {
	return newTestAppWithQueue(nil)
}

func newTestAppWithQueue(client *asynq.Client) *fiber.App {
	cfg := config.Config{
		SecretKey:   "test-secret",
		CookieName:  "composer_session",
		FrontendURL: "http://localhost:5173",
		Timezone:    "UTC",
		MaxUploadMB: 10,
		Demo:        config.Demo{Username: "admin", Password: "admin123"},
	}

	pr := repository.NewPageRepository(models.PageCatalog)
	dr := repository.NewDraftRepository()

	return NewServer(cfg, Dependencies{
		Pages:       pr,
		Auth:        service.NewAuthService(cfg, dr, repository.NewSessionRepository()),
		Drafts:      service.NewDraftService(cfg, dr, pr),
		Previews:    service.NewPreviewService(cfg, dr, pr),
		AsynqClient: client,
	})
}

func do(t *testing.T, app *fiber.App, method, path string, body interface{}, cookie *http.Cookie) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func login(t *testing.T, app *fiber.App) *http.Cookie {
	t.Helper()

	resp := do(t, app, http.MethodPost, "/login", transfer.LoginRequest{Username: "admin", Password: "admin123"}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	for _, c := range resp.Cookies() {
		if c.Name == "composer_session" {
			return &http.Cookie{Name: c.Name, Value: c.Value}
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestLoginRejectsWrongCredentials(t *testing.T) {
	app := newTestApp()

	resp := do(t, app, http.MethodPost, "/login", transfer.LoginRequest{Username: "admin", Password: "nope"}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = do(t, app, http.MethodPost, "/login", map[string]string{"username": "admin"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProtectedRoutesNeedSession(t *testing.T) {
	app := newTestApp()

	resp := do(t, app, http.MethodGet, "/api/draft", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/draft", nil, &http.Cookie{Name: "composer_session", Value: "garbage"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestComposeAndSubmit(t *testing.T) {
	app := newTestApp()
	cookie := login(t, app)

	resp := do(t, app, http.MethodPost, "/api/draft/submit", nil, cookie)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	for _, id := range []string{"1", "2", "3"} {
		resp = do(t, app, http.MethodPost, "/api/draft/pages", transfer.TogglePageRequest{PageID: id, Included: true}, cookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp = do(t, app, http.MethodPost, "/api/draft/pages", transfer.TogglePageRequest{PageID: "77", Included: true}, cookie)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp = do(t, app, http.MethodPost, "/api/draft/submit", nil, cookie)
	var failure map[string]string
	decode(t, resp, &failure)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, service.ErrNoContent.Error(), failure["error"])

	resp = do(t, app, http.MethodPut, "/api/draft/text", transfer.TextUpdate{Text: "Hello #sale"}, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/draft/preview", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var preview models.Preview
	decode(t, resp, &preview)
	assert.Len(t, preview.Cards, 2)
	assert.Equal(t, "+1 more", preview.MoreLabel)

	resp = do(t, app, http.MethodPost, "/api/draft/submit", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var result transfer.SubmitResult
	decode(t, resp, &result)
	assert.Equal(t, 3, result.PageCount)
}

func TestUploadAndRemoveMedia(t *testing.T) {
	app := newTestApp()
	cookie := login(t, app)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("files", "photo.png")
	require.NoError(t, err)
	_, err = part.Write(pngBytes)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/draft/media", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.AddCookie(cookie)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var upload transfer.UploadResult
	decode(t, resp, &upload)
	require.Len(t, upload.Added, 1)
	assert.Equal(t, models.MediaKindImage, upload.Added[0].Kind)

	resp = do(t, app, http.MethodDelete, "/api/draft/media/"+upload.Added[0].ID, nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var view transfer.DraftView
	decode(t, resp, &view)
	assert.Empty(t, view.MediaItems)
}

func TestScheduleInPastIsRejected(t *testing.T) {
	app := newTestApp()
	cookie := login(t, app)

	resp := do(t, app, http.MethodPost, "/api/draft/schedule", transfer.ScheduleRequest{Date: "2000-01-01", Time: "10:00"}, cookie)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp = do(t, app, http.MethodPost, "/api/draft/schedule", transfer.ScheduleRequest{Date: "2999-01-01", Time: "10:00"}, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var view transfer.DraftView
	decode(t, resp, &view)
	assert.NotNil(t, view.ScheduledAt)
}

func TestListPagesMarksSelection(t *testing.T) {
	app := newTestApp()
	cookie := login(t, app)

	resp := do(t, app, http.MethodPost, "/api/draft/pages", transfer.TogglePageRequest{PageID: "2", Included: true}, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/pages", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var pages []transfer.PageView
	decode(t, resp, &pages)
	require.Len(t, pages, 4)
	assert.False(t, pages[0].Selected)
	assert.True(t, pages[1].Selected)
	assert.Equal(t, "15.2K", pages[0].Followers)
}

func TestLogoutRevokesSession(t *testing.T) {
	app := newTestApp()
	cookie := login(t, app)

	resp := do(t, app, http.MethodPut, "/api/draft/text", transfer.TextUpdate{Text: "temp"}, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, app, http.MethodPost, "/logout", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/draft", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// a fresh login starts from an empty draft
	cookie = login(t, app)
	resp = do(t, app, http.MethodGet, "/api/draft", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var view transfer.DraftView
	decode(t, resp, &view)
	assert.Empty(t, view.BodyText)
}

func TestSubmitEnqueuesScheduledConfirmation(t *testing.T) {
	mr := miniredis.RunT(t)
	redisConn := asynq.RedisClientOpt{Addr: mr.Addr()}

	client := asynq.NewClient(redisConn)
	defer client.Close()
	inspector := asynq.NewInspector(redisConn)
	defer inspector.Close()

	app := newTestAppWithQueue(client)
	cookie := login(t, app)

	resp := do(t, app, http.MethodPost, "/api/draft/pages", transfer.TogglePageRequest{PageID: "1", Included: true}, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = do(t, app, http.MethodPut, "/api/draft/text", transfer.TextUpdate{Text: "Hello"}, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// posting right away never touches the queue
	resp = do(t, app, http.MethodPost, "/api/draft/submit", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	queues, err := inspector.Queues()
	require.NoError(t, err)
	assert.Empty(t, queues)

	when := time.Now().AddDate(1, 0, 0)
	resp = do(t, app, http.MethodPost, "/api/draft/schedule", transfer.ScheduleRequest{
		Date: when.UTC().Format("2006-01-02"),
		Time: "10:00",
	}, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, app, http.MethodPost, "/api/draft/submit", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var result transfer.SubmitResult
	decode(t, resp, &result)
	require.NotNil(t, result.ScheduledAt)
	assert.Equal(t, []string{"1"}, result.PageIDs)

	tasks, err := inspector.ListScheduledTasks("default")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, queue.TaskTypeScheduledPost, tasks[0].Type)

	var payload queue.ScheduledPostPayload
	require.NoError(t, json.Unmarshal(tasks[0].Payload, &payload))
	assert.NotEmpty(t, payload.SessionID)
	assert.Equal(t, []string{"1"}, payload.PageIDs)
	assert.True(t, payload.ScheduledAt.Equal(*result.ScheduledAt))
}
