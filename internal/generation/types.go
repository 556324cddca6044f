// Package generation implements the wire contract of the content service's generate endpoint
package generation

import "context"

// NoImageSentinel is what the content service sends when image generation was skipped.
// The backend formats Python's None into the field on some paths.
const NoImageSentinel = "None"

const (
	// CaptionPlaceholder is shown when the service returned no caption
	CaptionPlaceholder = "No caption generated"
	// ContentPlaceholder is shown when the service returned no body text
	ContentPlaceholder = "No content generated"
)

// Request is the body of one generate call. It is built fresh per attempt.
type Request struct {
	Topic     string   `json:"topic" validate:"required"`
	Platforms []string `json:"platforms" validate:"required,min=1,dive,platform"`

	// ScheduleTime is nil unless the user chose to post later; it is sent as null.
	ScheduleTime *string `json:"schedule_time"`
}

// Scheduled reports whether the request carries a schedule time
func (r Request) Scheduled() bool {
	return r.ScheduleTime != nil
}

// Result is the decoded response of a generate call
type Result struct {
	Success  bool   `json:"success"`
	Caption  string `json:"caption,omitempty"`
	Content  string `json:"content,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
	Error    string `json:"error,omitempty"`
	Message  string `json:"message,omitempty"`
}

// HasImage reports whether the result carries a usable image URL
func (r Result) HasImage() bool {
	return r.ImageURL != "" && r.ImageURL != NoImageSentinel
}

// CaptionText returns the caption or its placeholder
func (r Result) CaptionText() string {
	if r.Caption == "" {
		return CaptionPlaceholder
	}
	return r.Caption
}

// ContentText returns the content or its placeholder
func (r Result) ContentText() string {
	if r.Content == "" {
		return ContentPlaceholder
	}
	return r.Content
}

type attemptKey struct{}

// WithAttemptID tags ctx with the submission attempt id sent as X-Request-ID
func WithAttemptID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, attemptKey{}, id)
}

// AttemptID returns the attempt id stored in ctx, if any
func AttemptID(ctx context.Context) string {
	id, _ := ctx.Value(attemptKey{}).(string)
	return id
}
