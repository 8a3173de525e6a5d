package reconcile

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"mailrecon/core/database"
	"mailrecon/core/history"
	"mailrecon/core/mailbox"
	engine "mailrecon/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const message = "From: bob@example.com\r\n" +
	"To: amy@example.com\r\n" +
	"Subject: Lunch\r\n" +
	"Date: Fri, 01 Mar 2024 10:00:00 +0000\r\n" +
	"\r\n" +
	"Noon?\r\n"

func setupTestApp(t *testing.T, opts Options) *fiber.App {
	t.Helper()
	if opts.Settings == (engine.Settings{}) {
		opts.Settings = engine.DefaultSettings()
	}
	app := fiber.New()
	NewHandler(NewService(opts, zap.NewNop())).RegisterRoutes(app)
	return app
}

func post(t *testing.T, app *fiber.App, path, body string) (int, map[string]any, string) {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded, resp.Header.Get(RunIDHeader)
}

func strs(v any) []string {
	out := []string{}
	for _, s := range v.([]any) {
		out = append(out, s.(string))
	}
	return out
}

const lunch = `"sender_email":"bob@example.com","subject":"Lunch","body_text":"Noon?"`

func TestHandleDedupe(t *testing.T) {
	app := setupTestApp(t, Options{})

	status, body, runID := post(t, app, "/reconcile/dedupe", `{"records":[
		{"id":"a",`+lunch+`},
		{"id":"b",`+lunch+`},
		{"id":"c","sender_email":"amy@example.com","subject":"Other","body_text":"x"}
	]}`)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, runID)
	assert.Equal(t, []string{"a", "c"}, strs(body["unique"]))
	assert.Equal(t, []string{"b"}, strs(body["duplicates"]))
	match := body["matches"].([]any)[0].(map[string]any)
	assert.Equal(t, "exact", match["certainty"])
	assert.Equal(t, "identical content hash", match["reason"])
	index := body["index"].(map[string]any)
	assert.EqualValues(t, 2, index["total"])
	assert.EqualValues(t, 2, index["sender_subject_buckets"])
}

func TestHandleDedupe_Errors(t *testing.T) {
	app := setupTestApp(t, Options{})

	tests := []struct {
		name   string
		body   string
		status int
		errMsg string
	}{
		{"BadJSON", `{"records":`, fiber.StatusBadRequest, "invalid request body"},
		{"BothInputs", `{"source":"s3://box","records":[{"id":"a"}]}`, fiber.StatusBadRequest, "mutually exclusive"},
		{"MissingID", `{"records":[{"subject":"x"}]}`, fiber.StatusBadRequest, "record 0 has no id"},
		{"BadCertainty", `{"records":[{"id":"a"}],"min_certainty":"maybe"}`, fiber.StatusBadRequest, "unknown certainty"},
		{"FilesDisabled", `{"source":"inbox"}`, fiber.StatusBadRequest, "filesystem sources are disabled"},
		{"UnsupportedScheme", `{"source":"ftp://host/x"}`, fiber.StatusBadRequest, "unsupported source"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body, _ := post(t, app, "/reconcile/dedupe", tt.body)
			assert.Equal(t, tt.status, status)
			assert.Contains(t, body["error"], tt.errMsg)
		})
	}

	t.Run("Empty", func(t *testing.T) {
		status, body, _ := post(t, app, "/reconcile/dedupe", `{"records":[]}`)
		assert.Equal(t, fiber.StatusUnprocessableEntity, status)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, []string{"no emails found"}, strs(body["errors"]))
	})
}

func TestHandleDedupe_DataDirAndHistory(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/inbox/1.eml", []byte(message), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/data/inbox/2.eml", []byte(message), 0o644))

	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	store := history.NewStore(db)
	require.NoError(t, store.Migrate())

	app := setupTestApp(t, Options{
		Deps:    mailbox.Deps{Fs: fs},
		DataDir: "/data",
		Store:   store,
	})

	status, body, runID := post(t, app, "/reconcile/dedupe", `{"source":"inbox"}`)
	require.Equal(t, fiber.StatusOK, status, body)
	assert.Equal(t, []string{"1.eml"}, strs(body["unique"]))
	assert.Equal(t, []string{"2.eml"}, strs(body["duplicates"]))
	require.NotEmpty(t, runID)

	run, err := store.Get(context.Background(), runID)
	require.NoError(t, err)
	assert.Equal(t, history.OpDedupe, run.Operation)
	assert.Equal(t, "inbox", run.Source)
	assert.Len(t, run.Matches, 1)

	status, body, _ = post(t, app, "/reconcile/dedupe", `{"source":"../etc"}`)
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.NotEmpty(t, body["error"])
}

func TestHandleCompare(t *testing.T) {
	app := setupTestApp(t, Options{})

	status, body, _ := post(t, app, "/reconcile/compare", `{
		"a":{"records":[
			{"id":"1","message_id":"<m1@x>"},
			{"id":"2","message_id":"<m2@x>","sender_email":"amy@example.com","body_text":"draft"}
		]},
		"b":{"records":[
			{"id":"1","message_id":"<M1@x>"},
			{"id":"9","message_id":"<m9@x>","sender_email":"bob@example.com","body_text":"final"}
		]}
	}`)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, []string{"1"}, strs(body["common_from_a"]))
	assert.Equal(t, []string{"2"}, strs(body["unique_to_a"]))
	assert.Equal(t, []string{"9"}, strs(body["unique_to_b"]))

	// Records without sender, subject or body share one content hash.
	empty := `{
		"a":{"records":[{"id":"2","message_id":"<m2@x>"}]},
		"b":{"records":[{"id":"9","message_id":"<m9@x>"}]}%s
	}`
	status, body, _ = post(t, app, "/reconcile/compare", fmt.Sprintf(empty, ""))
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, []string{"2"}, strs(body["common_from_a"]))
	assert.Empty(t, strs(body["unique_to_b"]))

	status, body, _ = post(t, app, "/reconcile/compare", fmt.Sprintf(empty, `,"use_content":false`))
	assert.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, strs(body["common_from_a"]))
	assert.Equal(t, []string{"9"}, strs(body["unique_to_b"]))

	status, body, _ = post(t, app, "/reconcile/compare", `{"a":{"records":[]},"b":{"records":[]},"tolerance_seconds":-1}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body["error"], "tolerance_seconds")
}

func TestHandleMerge(t *testing.T) {
	app := setupTestApp(t, Options{})

	status, body, _ := post(t, app, "/reconcile/merge", `{
		"deduplicate": true,
		"collections":[
			{"name":"old","records":[{"id":"1",`+lunch+`}]},
			{"name":"new","records":[{"id":"1",`+lunch+`},{"id":"2","subject":"Else","body_text":"y"}]}
		]
	}`)

	assert.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 1, body["duplicates_removed"])
	unique := body["unique"].([]any)
	require.Len(t, unique, 2)
	assert.Equal(t, map[string]any{"collection": "old", "id": "1"}, unique[0])
	assert.Equal(t, map[string]any{"collection": "new", "id": "2"}, unique[1])
}

func TestHandleFilter(t *testing.T) {
	app := setupTestApp(t, Options{})

	status, body, _ := post(t, app, "/reconcile/filter", `{
		"sender_domains":["example.com"],
		"records":[
			{"id":"a","sender_email":"bob@example.com"},
			{"id":"b","sender_email":"eve@elsewhere.org"}
		]
	}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, []string{"a"}, strs(body["matched"]))
	assert.Equal(t, []string{"b"}, strs(body["non_matched"]))

	status, body, _ = post(t, app, "/reconcile/filter", `{"records":[{"id":"a"}]}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, []string{"no filter criteria specified"}, strs(body["errors"]))
}

func TestLoader(t *testing.T) {
	feature := NewFeature(Options{Settings: engine.DefaultSettings()}, zap.NewNop())

	assert.Equal(t, "reconcile", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.NoError(t, feature.Load(fiber.New()))
}
