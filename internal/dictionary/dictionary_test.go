package dictionary

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestParseEntriesSkipsSuggestions(t *testing.T) {
	body := []byte(`["cart", {"meta":{"id":"cat:1","stems":["cat","cats"]},"hwi":{"hw":"cat"}}, "coat"]`)
	entries, err := ParseEntries(body)
	if err != nil {
		t.Fatalf("ParseEntries() failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Meta.ID != "cat:1" {
		t.Errorf("id = %q, want cat:1", entries[0].Meta.ID)
	}
}

func TestParseEntriesRejectsNonArray(t *testing.T) {
	for _, body := range []string{`{"meta":{}}`, `not json`, ``} {
		if _, err := ParseEntries([]byte(body)); err == nil {
			t.Errorf("ParseEntries(%q) should fail", body)
		}
	}
}

func TestEntryMatches(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
		word  string
		want  bool
	}{
		{"id prefix", Entry{Meta: EntryMeta{ID: "house:2"}}, "house", true},
		{"id case", Entry{Meta: EntryMeta{ID: "House"}}, "house", true},
		{"headword markers", Entry{Hwi: Headword{Hw: "sum*mer"}}, "summer", true},
		{"stress marks", Entry{Hwi: Headword{Hw: "ˈbird"}}, "bird", true},
		{"stem", Entry{Meta: EntryMeta{ID: "run:1", Stems: []string{"run", "ran", "running"}}}, "ran", true},
		{"other word", Entry{Meta: EntryMeta{ID: "cart:1"}, Hwi: Headword{Hw: "cart"}}, "cat", false},
		{"empty entry", Entry{}, "cat", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.Matches(tt.word); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.word, got, tt.want)
			}
		})
	}
}

func TestCache(t *testing.T) {
	c := NewCache()
	if _, ok := c.Get("cat"); ok {
		t.Error("empty cache should miss")
	}
	c.Put("CAT", true)
	c.Put("xqz", false)
	if v, ok := c.Get("cat"); !ok || !v {
		t.Errorf("Get(cat) = %v, %v, want true, true", v, ok)
	}
	if v, ok := c.Get("XQZ"); !ok || v {
		t.Errorf("Get(XQZ) = %v, %v, want false, true", v, ok)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

// countingServer serves the offline handler and counts lookups.
func countingServer(t *testing.T, words ...string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	inner := NewServer(words, nil)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/json/") {
			hits.Add(1)
		}
		inner.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestValidateUsesCacheAfterFirstLookup(t *testing.T) {
	srv, hits := countingServer(t, "cat", "bird")
	client := NewClient(Options{URL: srv.URL + "/json/%s"})
	cache := NewCache()

	first := client.Validate(context.Background(), "CAT", cache)
	if !first.Valid || first.Source != SourceRemote {
		t.Fatalf("first = %+v, want valid from remote", first)
	}
	second := client.Validate(context.Background(), "cat", cache)
	if !second.Valid || second.Source != SourceCache {
		t.Fatalf("second = %+v, want valid from cache", second)
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("remote lookups = %d, want 1", got)
	}
}

func TestValidateCachesInvalidWords(t *testing.T) {
	srv, hits := countingServer(t, "cat")
	client := NewClient(Options{URL: srv.URL + "/json/%s"})
	cache := NewCache()

	for i := 0; i < 3; i++ {
		if r := client.Validate(context.Background(), "tac", cache); r.Valid {
			t.Fatalf("tac should be invalid: %+v", r)
		}
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("remote lookups = %d, want 1", got)
	}
}

func TestLookupSendsAPIKey(t *testing.T) {
	var gotKey atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey.Store(r.URL.Query().Get("key"))
		w.Write([]byte(`[{"meta":{"id":"cat:1"},"hwi":{"hw":"cat"}}]`))
	}))
	defer srv.Close()

	client := NewClient(Options{URL: srv.URL + "/json/%s", APIKey: "abc123"})
	ok, err := client.Lookup(context.Background(), "cat")
	if err != nil || !ok {
		t.Fatalf("Lookup() = %v, %v", ok, err)
	}
	if gotKey.Load() != "abc123" {
		t.Errorf("key = %v, want abc123", gotKey.Load())
	}
}

func TestLookupErrorKinds(t *testing.T) {
	badStatus := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer badStatus.Close()

	badBody := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>Invalid API key</html>`))
	}))
	defer badBody.Close()

	tests := []struct {
		name string
		url  string
		want error
	}{
		{"disabled", "", ErrNetwork},
		{"bad status", badStatus.URL + "/json/%s", ErrNetwork},
		{"bad body", badBody.URL + "/json/%s", ErrParse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(Options{URL: tt.url})
			_, err := client.Lookup(context.Background(), "cat")
			if !errors.Is(err, tt.want) {
				t.Fatalf("Lookup() error = %v, want %v", err, tt.want)
			}
			var le *LookupError
			if !errors.As(err, &le) || le.Word != "cat" {
				t.Errorf("error should be *LookupError for cat, got %#v", err)
			}
		})
	}
}

func TestValidateFallsBackOffline(t *testing.T) {
	client := NewClient(Options{
		Fallback: func(w string) bool { return w == "cat" },
	})
	cache := NewCache()

	r := client.Validate(context.Background(), "cat", cache)
	if !r.Valid || r.Source != SourceFallback {
		t.Fatalf("Validate(cat) = %+v, want valid fallback", r)
	}
	if !errors.Is(r.Err, ErrDisabled) {
		t.Errorf("Err = %v, want ErrDisabled", r.Err)
	}
	if r.Notice() == "" {
		t.Error("fallback result should carry a notice")
	}

	miss := client.Validate(context.Background(), "zyx", cache)
	if miss.Valid {
		t.Error("zyx should be invalid offline")
	}
	if !strings.Contains(miss.Notice(), "ZYX") {
		t.Errorf("notice %q should name the word", miss.Notice())
	}

	// Fallback verdicts are cached too
	if again := client.Validate(context.Background(), "cat", cache); again.Source != SourceCache {
		t.Errorf("second lookup source = %v, want cache", again.Source)
	}
}

func TestValidateTimeoutFallsBack(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer slow.Close()

	client := NewClient(Options{
		URL:      slow.URL + "/json/%s",
		Timeout:  50 * time.Millisecond,
		Fallback: func(string) bool { return true },
	})
	r := client.Validate(context.Background(), "bird", nil)
	if r.Source != SourceFallback || !r.Valid {
		t.Fatalf("Validate() = %+v, want valid fallback", r)
	}
	if !errors.Is(r.Err, ErrNetwork) {
		t.Errorf("Err = %v, want network error", r.Err)
	}
}

func TestServerRoutes(t *testing.T) {
	srv := httptest.NewServer(NewServer([]string{"cat", "cart", "care", "bird"}, nil))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("/health status = %d", resp.StatusCode)
	}

	client := NewClient(Options{URL: srv.URL + "/json/%s"})
	if ok, err := client.Lookup(context.Background(), "bird"); err != nil || !ok {
		t.Errorf("Lookup(bird) = %v, %v, want true", ok, err)
	}
	// Misses come back as suggestion strings, which never match
	if ok, err := client.Lookup(context.Background(), "cax"); err != nil || ok {
		t.Errorf("Lookup(cax) = %v, %v, want false, nil", ok, err)
	}
}

func TestServerSuggest(t *testing.T) {
	s := NewServer([]string{"cat", "cart", "care", "dog"}, nil)
	got := s.suggest("carx")
	if len(got) != 2 || got[0] != "care" || got[1] != "cart" {
		t.Errorf("suggest(carx) = %v, want [care cart]", got)
	}
	if got := s.suggest("zzz"); len(got) != 0 {
		t.Errorf("suggest(zzz) = %v, want empty", got)
	}
}
