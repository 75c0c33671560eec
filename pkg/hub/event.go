package hub

import "time"

// Event kinds published on the status stream.
const (
	KindRequest = "request"
	KindResult  = "result"
	KindError   = "error"
)

// Event is one status update on the /ws/status stream.
type Event struct {
	Kind      string    `json:"kind"`
	Mode      string    `json:"mode,omitempty"`
	People    int       `json:"people,omitempty"`
	Error     string    `json:"error,omitempty"`
	ElapsedMs int64     `json:"elapsed_ms,omitempty"`
	Time      time.Time `json:"time"`
}

// RequestEvent marks the start of an inference request.
func RequestEvent(mode string) Event {
	return Event{Kind: KindRequest, Mode: mode, Time: time.Now()}
}

// ResultEvent reports a completed inference request.
func ResultEvent(mode string, people int, elapsed time.Duration) Event {
	return Event{
		Kind:      KindResult,
		Mode:      mode,
		People:    people,
		ElapsedMs: elapsed.Milliseconds(),
		Time:      time.Now(),
	}
}

// ErrorEvent reports a failed inference request.
func ErrorEvent(mode string, err error) Event {
	return Event{Kind: KindError, Mode: mode, Error: err.Error(), Time: time.Now()}
}
