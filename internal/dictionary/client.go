package dictionary

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// maxBodyBytes caps how much of a response is read.
const maxBodyBytes = 1 << 20

// Source tells where a validation result came from.
type Source int

const (
	SourceCache Source = iota
	SourceRemote
	SourceFallback
)

// String returns a human-readable name for the source.
func (s Source) String() string {
	switch s {
	case SourceCache:
		return "cache"
	case SourceRemote:
		return "dictionary"
	case SourceFallback:
		return "offline list"
	default:
		return "unknown"
	}
}

// Result is the outcome of Validate. Err holds the remote failure that led
// to a fallback answer; it is informational only.
type Result struct {
	Word   string
	Valid  bool
	Source Source
	Err    error
}

// Notice returns the informational message to surface for a fallback
// result, or "" when the remote dictionary answered.
func (r Result) Notice() string {
	if r.Source != SourceFallback {
		return ""
	}
	if r.Valid {
		return "Dictionary unavailable, word checked against the offline list"
	}
	return fmt.Sprintf("Dictionary unavailable, %q is not on the offline list (it may still be a real word)", strings.ToUpper(r.Word))
}

// Options configures a Client.
type Options struct {
	URL        string                 // Format string, %s is the escaped word. Empty disables lookups.
	APIKey     string                 // Sent as the "key" query parameter when set
	Timeout    time.Duration          // Per-request timeout
	HTTPClient *http.Client           // Optional; built from Timeout when nil
	Fallback   func(word string) bool // Local word list membership
	Logger     *log.Logger
}

// Client resolves words against a remote dictionary with a local fallback.
// It holds no per-session state and is safe for concurrent use.
type Client struct {
	http     *http.Client
	urlFmt   string
	apiKey   string
	fallback func(string) bool
	logger   *log.Logger
}

// NewClient creates a dictionary client.
func NewClient(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	fallback := opts.Fallback
	if fallback == nil {
		fallback = func(string) bool { return false }
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Client{
		http:     hc,
		urlFmt:   opts.URL,
		apiKey:   opts.APIKey,
		fallback: fallback,
		logger:   logger,
	}
}

// Validate resolves word to a validity verdict. Order: cache, remote
// dictionary, local fallback list. Every outcome is written to cache (when
// non-nil). Validate never fails; remote errors end up in Result.Err.
func (c *Client) Validate(ctx context.Context, word string, cache *Cache) Result {
	key := strings.ToLower(strings.TrimSpace(word))

	if cache != nil {
		if valid, ok := cache.Get(key); ok {
			return Result{Word: key, Valid: valid, Source: SourceCache}
		}
	}

	valid, err := c.Lookup(ctx, key)
	if err == nil {
		if cache != nil {
			cache.Put(key, valid)
		}
		c.logger.Debug("dictionary lookup", "word", key, "valid", valid)
		return Result{Word: key, Valid: valid, Source: SourceRemote}
	}

	valid = c.fallback(key)
	c.logger.Warn("dictionary lookup failed, using offline list", "word", key, "valid", valid, "error", err)
	if cache != nil {
		cache.Put(key, valid)
	}
	return Result{Word: key, Valid: valid, Source: SourceFallback, Err: err}
}

// Lookup asks the remote dictionary about word. Errors are *LookupError.
func (c *Client) Lookup(ctx context.Context, word string) (bool, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	if c.urlFmt == "" {
		return false, networkErr(word, ErrDisabled)
	}

	reqURL, err := c.requestURL(word)
	if err != nil {
		return false, networkErr(word, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return false, networkErr(word, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return false, networkErr(word, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, networkErr(word, fmt.Errorf("unexpected status %s", resp.Status))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return false, networkErr(word, err)
	}

	entries, err := ParseEntries(body)
	if err != nil {
		return false, parseErr(word, err)
	}
	return AnyMatch(entries, word), nil
}

// requestURL fills the word into the URL template and adds the API key.
func (c *Client) requestURL(word string) (string, error) {
	u, err := url.Parse(fmt.Sprintf(c.urlFmt, url.PathEscape(word)))
	if err != nil {
		return "", fmt.Errorf("invalid dictionary url: %w", err)
	}
	if c.apiKey != "" {
		q := u.Query()
		q.Set("key", c.apiKey)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}
