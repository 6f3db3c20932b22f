package notion

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jomei/notionapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const archivedMessage = "Can't edit block that is archived. You must unarchive the block before editing."

type fakeBlock struct {
	id       string
	text     string
	archived bool
	// ghost blocks are listed as live but refuse deletion as archived.
	ghost bool
	// failStatus makes deletion fail with this status.
	failStatus int
}

type fakeNotion struct {
	mu        sync.Mutex
	throttle  int
	requests  []string
	appended  [][]map[string]any
	created   map[string]any
	updated   map[string]map[string]any
	attempted []string
	deleted   []string
	children  []fakeBlock
	pages     []map[string]any
}

func (f *fakeNotion) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/v1")
	f.requests = append(f.requests, r.Method+" "+path)
	if r.Header.Get("Authorization") != "Bearer secret" || r.Header.Get("Notion-Version") != "2022-06-28" {
		writeError(w, http.StatusUnauthorized, "unauthorized", "API token is invalid.")
		return
	}
	if f.throttle > 0 {
		f.throttle--
		w.Header().Set("Retry-After", "0")
		writeError(w, http.StatusTooManyRequests, "rate_limited", "slow down")
		return
	}

	switch {
	case r.Method == http.MethodPost && path == "/pages":
		_ = json.NewDecoder(r.Body).Decode(&f.created)
		writeJSON(w, pageJSON("page-1", "https://www.notion.so/Digest-Week-7-2026-0123456789abcdef0123456789abcdef", nil))
	case r.Method == http.MethodPatch && strings.HasPrefix(path, "/pages/"):
		var body struct {
			Properties map[string]any `json:"properties"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if f.updated == nil {
			f.updated = map[string]map[string]any{}
		}
		id := strings.TrimPrefix(path, "/pages/")
		f.updated[id] = body.Properties
		writeJSON(w, pageJSON(id, "", nil))
	case r.Method == http.MethodPatch && strings.HasSuffix(path, "/children"):
		var body struct {
			Children []map[string]any `json:"children"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.appended = append(f.appended, body.Children)
		writeJSON(w, map[string]any{"object": "list", "results": []any{}})
	case r.Method == http.MethodGet && strings.HasSuffix(path, "/children"):
		start := 0
		if c := r.URL.Query().Get("start_cursor"); c != "" {
			_, _ = fmt.Sscanf(c, "cursor-%d", &start)
		}
		end := min(start+2, len(f.children))
		results := []map[string]any{}
		for _, b := range f.children[start:end] {
			results = append(results, blockJSON(b.id, b.text, b.archived))
		}
		page := map[string]any{"object": "list", "results": results, "has_more": end < len(f.children)}
		if end < len(f.children) {
			page["next_cursor"] = fmt.Sprintf("cursor-%d", end)
		}
		writeJSON(w, page)
	case r.Method == http.MethodDelete && strings.HasPrefix(path, "/blocks/"):
		id := strings.TrimPrefix(path, "/blocks/")
		f.attempted = append(f.attempted, id)
		for _, b := range f.children {
			if b.id != id {
				continue
			}
			if b.ghost || b.archived {
				writeError(w, http.StatusBadRequest, "validation_error", archivedMessage)
				return
			}
			if b.failStatus != 0 {
				writeError(w, b.failStatus, "conflict_error", "conflict")
				return
			}
		}
		f.deleted = append(f.deleted, id)
		writeJSON(w, blockJSON(id, "", true))
	case r.Method == http.MethodPost && strings.HasSuffix(path, "/query"):
		start := 0
		var body struct {
			StartCursor string `json:"start_cursor"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.StartCursor != "" {
			_, _ = fmt.Sscanf(body.StartCursor, "cursor-%d", &start)
		}
		end := min(start+2, len(f.pages))
		resp := map[string]any{"object": "list", "results": f.pages[start:end], "has_more": end < len(f.pages)}
		if end < len(f.pages) {
			resp["next_cursor"] = fmt.Sprintf("cursor-%d", end)
		}
		writeJSON(w, resp)
	default:
		writeError(w, http.StatusBadRequest, "validation_error", "unexpected request")
	}
}

func pageJSON(id, url string, props map[string]any) map[string]any {
	if props == nil {
		props = map[string]any{}
	}
	return map[string]any{"object": "page", "id": id, "url": url, "properties": props}
}

func blockJSON(id, text string, archived bool) map[string]any {
	richText := []any{}
	if text != "" {
		richText = append(richText, map[string]any{
			"type":       "text",
			"text":       map[string]any{"content": text},
			"plain_text": text,
		})
	}
	return map[string]any{
		"object":    "block",
		"id":        id,
		"type":      "paragraph",
		"archived":  archived,
		"paragraph": map[string]any{"rich_text": richText},
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"object": "error", "status": status, "code": code, "message": message})
}

func testConfig(url string) Config {
	return Config{
		Token:       "secret",
		BaseURL:     url,
		APIVersion:  "2022-06-28",
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
		BlockBatch:  100,
		WriteDelay:  time.Millisecond,
		Timeout:     5 * time.Second,
	}
}

var testLogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(testConfig(server.URL), testLogger)
}

func paragraphs(n int) []notionapi.Block {
	blocks := make([]notionapi.Block, n)
	for i := range blocks {
		blocks[i] = Paragraph(Text(fmt.Sprintf("p%d", i)))
	}
	return blocks
}

// sentText reads the first text run of a block as it was sent over the wire.
func sentText(b map[string]any) string {
	body, _ := b[b["type"].(string)].(map[string]any)
	rt, _ := body["rich_text"].([]any)
	if len(rt) == 0 {
		return ""
	}
	text, _ := rt[0].(map[string]any)["text"].(map[string]any)
	content, _ := text["content"].(string)
	return content
}

func TestCreatePage_AppendsOverflowInBatches(t *testing.T) {
	fake := &fakeNotion{}
	c := newTestClient(t, fake)

	page, err := c.CreatePage(context.Background(), Parent{PageID: "parent"}, notionapi.Properties{}, paragraphs(250))

	require.NoError(t, err)
	assert.Equal(t, "page-1", page.ID)
	assert.Len(t, fake.created["children"], 100)
	assert.Equal(t, "parent", fake.created["parent"].(map[string]any)["page_id"])
	require.Len(t, fake.appended, 2)
	assert.Len(t, fake.appended[0], 100)
	assert.Len(t, fake.appended[1], 50)
	assert.Equal(t, "p100", sentText(fake.appended[0][0]))
	assert.Contains(t, fake.requests, "PATCH /blocks/page-1/children")
}

func TestCall_RetriesRateLimit(t *testing.T) {
	fake := &fakeNotion{throttle: 2}
	c := newTestClient(t, fake)

	_, err := c.CreatePage(context.Background(), Parent{PageID: "parent"}, notionapi.Properties{}, paragraphs(1))

	require.NoError(t, err)
	assert.Len(t, fake.requests, 3)
}

func TestCall_RateLimitExhausted(t *testing.T) {
	fake := &fakeNotion{throttle: 10}
	c := newTestClient(t, fake)

	_, err := c.CreatePage(context.Background(), Parent{PageID: "parent"}, notionapi.Properties{}, paragraphs(1))

	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Len(t, fake.requests, 3)
}

func TestCall_APIErrorIsNotRetried(t *testing.T) {
	fake := &fakeNotion{}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)
	cfg := testConfig(server.URL)
	cfg.Token = "wrong"
	c := New(cfg, testLogger)

	_, err := c.CreatePage(context.Background(), Parent{PageID: "parent"}, notionapi.Properties{}, nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Len(t, fake.requests, 1)
}

func TestDeleteChildren_FollowsCursor(t *testing.T) {
	fake := &fakeNotion{children: []fakeBlock{{id: "b1"}, {id: "b2"}, {id: "b3"}, {id: "b4"}, {id: "b5"}}}
	c := newTestClient(t, fake)

	n, err := c.DeleteChildren(context.Background(), "page-1")

	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, []string{"b1", "b2", "b3", "b4", "b5"}, fake.deleted)
	assert.Contains(t, fake.requests, "GET /blocks/page-1/children")
}

func TestDeleteChildren_SkipsArchivedAndContinuesPastFailures(t *testing.T) {
	fake := &fakeNotion{children: []fakeBlock{
		{id: "b1"},
		{id: "b2", archived: true},
		{id: "b3", ghost: true},
		{id: "b4", failStatus: http.StatusConflict},
		{id: "b5"},
	}}
	c := newTestClient(t, fake)

	n, err := c.DeleteChildren(context.Background(), "page-1")

	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"b1", "b3", "b4", "b5"}, fake.attempted, "archived blocks are not listed")
	assert.Equal(t, []string{"b1", "b5"}, fake.deleted)

	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Contains(t, err.Error(), "b4")
	assert.NotContains(t, err.Error(), "b3")
}

func TestChildren_ReadsText(t *testing.T) {
	fake := &fakeNotion{children: []fakeBlock{
		{id: "b1", text: "first line"},
		{id: "b2", text: "gone", archived: true},
		{id: "b3"},
		{id: "b4", text: "second line"},
	}}
	c := newTestClient(t, fake)

	blocks, err := c.Children(context.Background(), "page-1")

	require.NoError(t, err)
	assert.Len(t, blocks, 3)
	assert.Equal(t, "first line\nsecond line", PlainText(blocks))
}

func TestUpdateProperties(t *testing.T) {
	fake := &fakeNotion{}
	c := newTestClient(t, fake)

	err := c.UpdateProperties(context.Background(), "page-9", notionapi.Properties{
		"Steve": notionapi.NumberProperty{Number: 8},
	})

	require.NoError(t, err)
	assert.Contains(t, fake.requests, "PATCH /pages/page-9")
	assert.Equal(t, float64(8), fake.updated["page-9"]["Steve"].(map[string]any)["number"])
}

func TestPageIDFromURL(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{"https://www.notion.so/Digest-Week-7-2026-0123456789abcdef0123456789abcdef", "01234567-89ab-cdef-0123-456789abcdef"},
		{"https://www.notion.so/0123456789ABCDEF0123456789ABCDEF?pvs=4", "01234567-89ab-cdef-0123-456789abcdef"},
		{"01234567-89ab-cdef-0123-456789abcdef", "01234567-89ab-cdef-0123-456789abcdef"},
	}
	for _, tt := range tests {
		got, err := PageIDFromURL(tt.ref)
		require.NoError(t, err, tt.ref)
		assert.Equal(t, tt.want, got)
	}

	_, err := PageIDFromURL("https://www.notion.so/no-id-here")
	assert.Error(t, err)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
