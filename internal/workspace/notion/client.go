// Package notion publishes digests and idea pages through the Notion API.
// Calls go through github.com/jomei/notionapi; rate limiting is retried here
// with exponential backoff so every write shares one policy.
package notion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"
	"github.com/jomei/notionapi"

	"newsletter_digest/internal/pacing"
)

var ErrRateLimited = errors.New("notion: rate limited")

// APIError is a failed call that is not worth retrying.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("notion returned status %d: %s", e.StatusCode, e.Message)
}

type Config struct {
	Token       string
	BaseURL     string
	APIVersion  string
	MaxAttempts int
	BaseDelay   time.Duration
	BlockBatch  int
	WriteDelay  time.Duration
	Timeout     time.Duration
}

type Client struct {
	api        *notionapi.Client
	status     *statusTransport
	batch      int
	writeDelay time.Duration
	executor   failsafe.Executor[any]
	sleep      func(context.Context, time.Duration) error
	logger     *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Client {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.BlockBatch <= 0 || cfg.BlockBatch > 100 {
		cfg.BlockBatch = 100
	}

	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = time.Millisecond
	}

	policy := retrypolicy.NewBuilder[any]().
		WithBackoff(cfg.BaseDelay, cfg.BaseDelay<<max(cfg.MaxAttempts-1, 1)).
		WithMaxRetries(cfg.MaxAttempts - 1).
		HandleIf(func(_ any, err error) bool {
			var apiErr *APIError
			return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests
		}).
		Build()

	status := &statusTransport{base: http.DefaultTransport}
	if cfg.BaseURL != "" {
		if u, err := url.Parse(cfg.BaseURL); err == nil && u.Host != "" {
			status.target = u
		}
	}

	opts := []notionapi.ClientOption{
		notionapi.WithHTTPClient(&http.Client{Timeout: cfg.Timeout, Transport: status}),
		// A single attempt inside notionapi; backoff is driven by the policy above.
		notionapi.WithRetry(1),
	}
	if cfg.APIVersion != "" {
		opts = append(opts, notionapi.WithVersion(cfg.APIVersion))
	}

	return &Client{
		api:        notionapi.NewClient(notionapi.Token(cfg.Token), opts...),
		status:     status,
		batch:      cfg.BlockBatch,
		writeDelay: cfg.WriteDelay,
		executor:   failsafe.With(policy),
		sleep:      pacing.Sleep,
		logger:     logger.With("component", "notion"),
	}
}

// statusTransport remembers the status of the latest response so failures
// can be classified without depending on the error types of the SDK. A
// configured target replaces scheme and host of every request.
type statusTransport struct {
	base   http.RoundTripper
	target *url.URL
	last   atomic.Int32
}

func (t *statusTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.target != nil {
		req = req.Clone(req.Context())
		req.URL.Scheme = t.target.Scheme
		req.URL.Host = t.target.Host
		req.Host = t.target.Host
	}
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		t.last.Store(0)
		return nil, err
	}
	t.last.Store(int32(resp.StatusCode))
	return resp, nil
}

// call runs fn under the retry policy. Only 429 responses are retried.
func (c *Client) call(ctx context.Context, op string, fn func() error) error {
	var lastErr error
	_, err := c.executor.WithContext(ctx).Get(func() (any, error) {
		c.status.last.Store(0)
		if err := fn(); err != nil {
			status := int(c.status.last.Load())
			if status == http.StatusTooManyRequests {
				c.logger.Warn("rate limited", "op", op)
			}
			if status == 0 {
				lastErr = err
			} else {
				lastErr = &APIError{StatusCode: status, Message: err.Error()}
			}
			return nil, lastErr
		}
		lastErr = nil
		return nil, nil
	})
	if err == nil {
		return nil
	}

	var apiErr *APIError
	switch {
	case errors.As(lastErr, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%s: %w", op, ErrRateLimited)
	case lastErr != nil && ctx.Err() == nil:
		return fmt.Errorf("%s: %w", op, lastErr)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

type Parent struct {
	PageID     string
	DatabaseID string
}

func (p Parent) api() notionapi.Parent {
	if p.DatabaseID != "" {
		return notionapi.Parent{Type: "database_id", DatabaseID: notionapi.DatabaseID(p.DatabaseID)}
	}
	return notionapi.Parent{Type: "page_id", PageID: notionapi.PageID(p.PageID)}
}

type Page struct {
	ID  string
	URL string
}

// CreatePage creates a page with the first batch of blocks and appends the
// remainder in further batches.
func (c *Client) CreatePage(ctx context.Context, parent Parent, props notionapi.Properties, blocks []notionapi.Block) (*Page, error) {
	first, rest := split(blocks, c.batch)

	var created *notionapi.Page
	err := c.call(ctx, "create page", func() error {
		var err error
		created, err = c.api.Page.Create(ctx, &notionapi.PageCreateRequest{
			Parent:     parent.api(),
			Properties: props,
			Children:   first,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	page := &Page{ID: string(created.ID), URL: created.URL}
	if len(rest) > 0 {
		if err := c.AppendBlocks(ctx, page.ID, rest); err != nil {
			return page, err
		}
	}
	return page, nil
}

// AppendBlocks appends blocks to blockID in batches, pausing between writes.
func (c *Client) AppendBlocks(ctx context.Context, blockID string, blocks []notionapi.Block) error {
	for start := 0; start < len(blocks); start += c.batch {
		if start > 0 {
			if err := c.sleep(ctx, c.writeDelay); err != nil {
				return err
			}
		}
		end := min(start+c.batch, len(blocks))

		op := fmt.Sprintf("append blocks %d-%d", start, end)
		err := c.call(ctx, op, func() error {
			_, err := c.api.Block.AppendChildren(ctx, notionapi.BlockID(blockID), &notionapi.AppendBlockChildrenRequest{
				Children: blocks[start:end],
			})
			return err
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// UpdateProperties patches properties of an existing page.
func (c *Client) UpdateProperties(ctx context.Context, pageID string, props notionapi.Properties) error {
	return c.call(ctx, "update page "+pageID, func() error {
		_, err := c.api.Page.Update(ctx, notionapi.PageID(pageID), &notionapi.PageUpdateRequest{Properties: props})
		return err
	})
}

// Children lists the live child blocks of blockID, following cursors.
// Archived blocks are left out.
func (c *Client) Children(ctx context.Context, blockID string) ([]notionapi.Block, error) {
	var out []notionapi.Block
	var cursor notionapi.Cursor
	for {
		var resp *notionapi.GetChildrenResponse
		err := c.call(ctx, "list children of "+blockID, func() error {
			var err error
			resp, err = c.api.Block.GetChildren(ctx, notionapi.BlockID(blockID), &notionapi.Pagination{
				StartCursor: cursor,
				PageSize:    100,
			})
			return err
		})
		if err != nil {
			return nil, err
		}

		for _, b := range resp.Results {
			if !archived(b) {
				out = append(out, b)
			}
		}
		if !resp.HasMore || resp.NextCursor == "" {
			return out, nil
		}
		cursor = notionapi.Cursor(resp.NextCursor)
	}
}

// DeleteChildren removes every live child block of blockID. The full listing
// is read before anything is deleted so cursors stay valid. Blocks Notion
// reports as already archived are counted as ghosts and skipped; any other
// failure is collected and the sweep goes on.
func (c *Client) DeleteChildren(ctx context.Context, blockID string) (int, error) {
	blocks, err := c.Children(ctx, blockID)
	if err != nil {
		return 0, err
	}

	deleted, ghosts := 0, 0
	var errs []error
	for i, b := range blocks {
		if i > 0 {
			if err := c.sleep(ctx, c.writeDelay); err != nil {
				return deleted, err
			}
		}

		id := string(b.GetID())
		err := c.call(ctx, "delete block "+id, func() error {
			_, err := c.api.Block.Delete(ctx, notionapi.BlockID(id))
			return err
		})
		switch {
		case err == nil:
			deleted++
		case isArchivedError(err):
			ghosts++
		default:
			if ctx.Err() != nil {
				return deleted, ctx.Err()
			}
			errs = append(errs, err)
		}
	}

	if ghosts > 0 {
		c.logger.Info("skipped archived blocks", "block_id", blockID, "ghosts", ghosts)
	}
	return deleted, errors.Join(errs...)
}

// QueryDatabase returns every page of a database.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string) ([]notionapi.Page, error) {
	var out []notionapi.Page
	var cursor notionapi.Cursor
	for {
		var resp *notionapi.DatabaseQueryResponse
		err := c.call(ctx, "query database "+databaseID, func() error {
			var err error
			resp, err = c.api.Database.Query(ctx, notionapi.DatabaseID(databaseID), &notionapi.DatabaseQueryRequest{
				StartCursor: cursor,
				PageSize:    100,
			})
			return err
		})
		if err != nil {
			return nil, err
		}

		out = append(out, resp.Results...)
		if !resp.HasMore || resp.NextCursor == "" {
			return out, nil
		}
		cursor = notionapi.Cursor(resp.NextCursor)
	}
}

func isArchivedError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusBadRequest {
		return false
	}
	return strings.Contains(strings.ToLower(apiErr.Message), "archived")
}

// archived reads the archived flag through the JSON form of the block,
// which covers every concrete block type.
func archived(b notionapi.Block) bool {
	raw, err := json.Marshal(b)
	if err != nil {
		return false
	}
	var flags struct {
		Archived bool `json:"archived"`
		InTrash  bool `json:"in_trash"`
	}
	if err := json.Unmarshal(raw, &flags); err != nil {
		return false
	}
	return flags.Archived || flags.InTrash
}

var pageIDPattern = regexp.MustCompile(`([0-9a-f]{32})(?:[?#].*)?$`)

// PageIDFromURL extracts the page id from a notion.so page URL. A bare id is
// returned unchanged.
func PageIDFromURL(ref string) (string, error) {
	compact := strings.ReplaceAll(ref, "-", "")
	m := pageIDPattern.FindStringSubmatch(strings.ToLower(compact))
	if m == nil {
		return "", fmt.Errorf("no page id in %q", ref)
	}
	id := m[1]
	return id[:8] + "-" + id[8:12] + "-" + id[12:16] + "-" + id[16:20] + "-" + id[20:], nil
}

func split(blocks []notionapi.Block, n int) ([]notionapi.Block, []notionapi.Block) {
	if len(blocks) <= n {
		return blocks, nil
	}
	return blocks[:n], blocks[n:]
}
