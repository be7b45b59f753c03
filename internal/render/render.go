// Package render drives a headless browser to capture pages whose media
// elements are populated by script.
package render

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// ErrPageTimeout marks a page that did not finish loading within the
// configured deadline. The text matters: it feeds the timeout
// classification rule.
var ErrPageTimeout = errors.New("page took too long to load")

// Capture is the result of rendering one page: the post-script DOM and the
// video sources observed inside it.
type Capture struct {
	HTML    string
	Sources []string
}

// Renderer renders a page with script execution enabled.
type Renderer interface {
	Render(ctx context.Context, pageURL string) (*Capture, error)
}

// collectSourcesJS gathers video element sources from the live DOM: direct
// src, the resolved currentSrc, nested <source> children, and data
// attributes carrying media-looking URLs.
const collectSourcesJS = `() => {
	const urls = [];
	const push = (v) => { if (v) urls.push(v); };
	for (const video of document.querySelectorAll('video')) {
		push(video.getAttribute('src'));
		push(video.currentSrc);
		for (const source of video.querySelectorAll('source')) {
			push(source.getAttribute('src'));
		}
	}
	const mediaRe = /\.(mp4|webm|ogg|mov|avi|m3u8)([?#]|$)/i;
	for (const el of document.querySelectorAll('[data-src],[data-video],[data-url]')) {
		for (const attr of ['data-src', 'data-video', 'data-url']) {
			const v = el.getAttribute(attr);
			if (v && mediaRe.test(v)) urls.push(v);
		}
	}
	return urls;
}`

// Chrome renders pages with a headless Chrome launched per call, so a hung
// or crashed render never leaks into later requests.
type Chrome struct {
	loadTimeout time.Duration
	settleDelay time.Duration
	userAgent   string
}

// NewChrome creates a Chrome renderer. loadTimeout bounds navigation and
// load, settleDelay is the fixed wait after load for lazily attached media.
func NewChrome(loadTimeout, settleDelay time.Duration, userAgent string) *Chrome {
	return &Chrome{
		loadTimeout: loadTimeout,
		settleDelay: settleDelay,
		userAgent:   userAgent,
	}
}

// Render navigates to pageURL, waits for load plus the settle delay, and
// captures the DOM and video sources. The browser is closed on every exit
// path before Render returns.
func (c *Chrome) Render(ctx context.Context, pageURL string) (*Capture, error) {
	controlURL, err := launcher.New().
		Headless(true).
		Set("--mute-audio").
		Set("--disable-blink-features", "AutomationControlled").
		Set("--user-agent", c.userAgent).
		Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("opening page: %w", err)
	}
	defer page.Close()

	loaded := page.Timeout(c.loadTimeout)
	if err := loaded.Navigate(pageURL); err != nil {
		return nil, timeoutOr(err, "navigating to page")
	}
	if err := loaded.WaitLoad(); err != nil {
		return nil, timeoutOr(err, "waiting for page load")
	}

	// Deferred players attach their media after load; give them a moment.
	select {
	case <-time.After(c.settleDelay):
	case <-ctx.Done():
		return nil, timeoutOr(ctx.Err(), "settling page")
	}

	capture := &Capture{}

	if res, err := page.Eval(collectSourcesJS); err == nil {
		for _, v := range res.Value.Arr() {
			if s := v.Str(); s != "" {
				capture.Sources = append(capture.Sources, s)
			}
		}
	}

	html, err := page.HTML()
	if err != nil {
		return nil, fmt.Errorf("reading rendered DOM: %w", err)
	}
	capture.HTML = html

	return capture, nil
}

// timeoutOr folds deadline errors into ErrPageTimeout so the classifier
// sees a timeout, not a generic context error.
func timeoutOr(err error, action string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", action, ErrPageTimeout)
	}
	return fmt.Errorf("%s: %w", action, err)
}
