package cascade

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/Koipioy/forkcast-backend/internal/media"
)

// fakeStrategy scripts one strategy attempt and records invocations.
type fakeStrategy struct {
	name    string
	outcome *media.Outcome
	err     error
	calls   int
}

func (f *fakeStrategy) Name() string { return f.name }

func (f *fakeStrategy) Extract(ctx context.Context, pageURL string) (*media.Outcome, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.outcome, nil
}

func TestRunFirstSuccessWins(t *testing.T) {
	first := &fakeStrategy{name: "render", outcome: &media.Outcome{Title: "T", MediaURL: "https://cdn.test/v.mp4"}}
	second := &fakeStrategy{name: "fetch", outcome: &media.Outcome{Title: "other"}}

	outcome, failure := New(first, second).Run(context.Background(), "https://example.test/watch")
	if failure != nil {
		t.Fatalf("Run returned failure: %+v", failure)
	}
	if outcome.MediaURL != "https://cdn.test/v.mp4" {
		t.Errorf("outcome.MediaURL = %q, want first strategy's result", outcome.MediaURL)
	}
	if second.calls != 0 {
		t.Errorf("second strategy ran %d times after first succeeded, want 0", second.calls)
	}
}

func TestRunFallsThroughOnFailure(t *testing.T) {
	// Stage 1 fails, stage 2 succeeds: stage 1's error never reaches the caller.
	first := &fakeStrategy{name: "render", err: errors.New("page took too long to load")}
	second := &fakeStrategy{name: "fetch", outcome: &media.Outcome{Title: "Found", MediaURL: "https://cdn.test/v.mp4"}}

	outcome, failure := New(first, second).Run(context.Background(), "https://example.test/watch")
	if failure != nil {
		t.Fatalf("Run returned failure %+v, want stage 2 success", failure)
	}
	if outcome.Title != "Found" {
		t.Errorf("outcome.Title = %q, want stage 2's title", outcome.Title)
	}
	if first.calls != 1 || second.calls != 1 {
		t.Errorf("calls = %d, %d; each stage runs exactly once", first.calls, second.calls)
	}
}

func TestRunAllFailClassifiesLastError(t *testing.T) {
	first := &fakeStrategy{name: "render", err: errors.New("page took too long to load")}
	second := &fakeStrategy{name: "fetch", err: errors.New("no video found in page HTML")}
	third := &fakeStrategy{name: "metadata", err: errors.New("HTTP Error 404: Not Found")}

	outcome, failure := New(first, second, third).Run(context.Background(), "https://example.test/gone")
	if outcome != nil {
		t.Fatalf("Run returned outcome %+v, want failure", outcome)
	}
	if failure.Status != http.StatusNotFound {
		t.Errorf("failure.Status = %d, want 404 from the last stage's error", failure.Status)
	}
	if failure.Message != "Video not found: The requested video could not be found" {
		t.Errorf("failure.Message = %q, want canonical not-found message", failure.Message)
	}
	if !strings.Contains(failure.Cause.Error(), "404") {
		t.Errorf("failure.Cause = %v, want the raw last error retained", failure.Cause)
	}
}

func TestRunTitleFallback(t *testing.T) {
	s := &fakeStrategy{name: "fetch", outcome: &media.Outcome{MediaURL: "https://cdn.test/v.mp4"}}
	outcome, failure := New(s).Run(context.Background(), "https://example.test/untitled")
	if failure != nil {
		t.Fatalf("Run returned failure: %+v", failure)
	}
	if outcome.Title != "Unknown" {
		t.Errorf("outcome.Title = %q, want literal Unknown fallback", outcome.Title)
	}
}

func TestRunNoStrategies(t *testing.T) {
	outcome, failure := New().Run(context.Background(), "https://example.test/")
	if outcome != nil {
		t.Fatalf("Run returned outcome %+v with no strategies", outcome)
	}
	if failure.Status != http.StatusInternalServerError {
		t.Errorf("failure.Status = %d, want 500", failure.Status)
	}
}
