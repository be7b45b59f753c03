// Package classify maps heterogeneous extraction failures onto a small set
// of stable HTTP statuses and canonical messages.
package classify

import (
	"net/http"
	"strings"
)

// Classified is the stable outward form of an extraction failure. Message
// is safe to return to clients; only the 500 case embeds the raw cause.
type Classified struct {
	Status  int
	Message string
}

// rule is one row of the ordered decision table. First match wins, so the
// specific access-denial row sits above the generic 404/timeout rows:
// denial responses frequently also contain ambiguous wording.
type rule struct {
	keywords []string
	status   int
	message  string
}

var rules = []rule{
	{[]string{"403", "forbidden"},
		http.StatusForbidden, "Access denied: the video source rejected the request"},
	{[]string{"404", "not found", "does not exist"},
		http.StatusNotFound, "Video not found: The requested video could not be found"},
	{[]string{"401", "unauthorized"},
		http.StatusUnauthorized, "Unauthorized: the video requires authentication"},
	{[]string{"timeout", "timed out", "took too long"},
		http.StatusRequestTimeout, "Request timeout: the video source took too long to respond"},
	{[]string{"connection", "network"},
		http.StatusServiceUnavailable, "Service unavailable: could not reach the video source"},
	{[]string{"unsupported url", "no video formats found", "unable to extract", "unable to download"},
		http.StatusBadRequest, "Bad request: unable to process URL"},
	{[]string{"no english subtitles", "no subtitles", "no suitable media", "no video found"},
		http.StatusBadRequest, "No content available"},
}

// Error maps a terminal cascade failure to its classified form. Matching is
// case-insensitive against the full error text. Unrecognized failures
// become 500 with the original message preserved for operators.
func Error(err error) Classified {
	if err == nil {
		return Classified{Status: http.StatusInternalServerError, Message: "Internal error"}
	}
	return Message(err.Error())
}

// Message classifies a bare failure description.
func Message(msg string) Classified {
	lowered := strings.ToLower(msg)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lowered, kw) {
				return Classified{Status: r.status, Message: r.message}
			}
		}
	}
	return Classified{
		Status:  http.StatusInternalServerError,
		Message: "Failed to extract transcription: " + msg,
	}
}
