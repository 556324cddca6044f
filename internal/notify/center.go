// Package notify implements transient, auto-dismissing notification banners
package notify

import (
	"sync"
	"time"
)

// Level selects how a notification is presented
type Level int

const (
	Info Level = iota
	Success
	Error
)

func (l Level) String() string {
	switch l {
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// Phase is the lifecycle position of a notification
type Phase int

const (
	// Visible notifications are on screen
	Visible Phase = iota
	// Exiting notifications are animating out and will be removed shortly
	Exiting
)

const (
	DefaultDismissAfter = 5 * time.Second
	DefaultExitDuration = 300 * time.Millisecond
)

// Notification is a single banner
type Notification struct {
	ID        uint64
	Level     Level
	Message   string
	Phase     Phase
	CreatedAt time.Time
}

// Options configures a Center
type Options struct {
	DismissAfter time.Duration
	ExitDuration time.Duration

	// OnChange is called, outside the lock, after every show, exit or removal
	OnChange func()
}

type entry struct {
	Notification
	dismissTimer *time.Timer
	removeTimer  *time.Timer
}

// Center owns the set of active notifications and their timers
type Center struct {
	mu           sync.Mutex
	next         uint64
	entries      []*entry
	dismissAfter time.Duration
	exitDuration time.Duration
	onChange     func()
	closed       bool
}

// NewCenter creates a notification center
func NewCenter(opts Options) *Center {
	if opts.DismissAfter <= 0 {
		opts.DismissAfter = DefaultDismissAfter
	}
	if opts.ExitDuration < 0 {
		opts.ExitDuration = DefaultExitDuration
	}
	return &Center{
		dismissAfter: opts.DismissAfter,
		exitDuration: opts.ExitDuration,
		onChange:     opts.OnChange,
	}
}

// SetOnChange replaces the change listener
func (c *Center) SetOnChange(fn func()) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// Show adds a notification that dismisses itself after the configured delay
func (c *Center) Show(level Level, message string) uint64 {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return 0
	}
	c.next++
	id := c.next
	e := &entry{Notification: Notification{
		ID:        id,
		Level:     level,
		Message:   message,
		Phase:     Visible,
		CreatedAt: time.Now(),
	}}
	e.dismissTimer = time.AfterFunc(c.dismissAfter, func() { c.Dismiss(id) })
	c.entries = append(c.entries, e)
	fn := c.onChange
	c.mu.Unlock()

	if fn != nil {
		fn()
	}
	return id
}

// Error shows an error notification
func (c *Center) Error(message string) uint64 { return c.Show(Error, message) }

// Success shows a success notification
func (c *Center) Success(message string) uint64 { return c.Show(Success, message) }

// Info shows an informational notification
func (c *Center) Info(message string) uint64 { return c.Show(Info, message) }

// Dismiss starts the exit phase of a visible notification.
// It returns false if the notification is unknown or already exiting.
func (c *Center) Dismiss(id uint64) bool {
	c.mu.Lock()
	e := c.find(id)
	if e == nil || e.Phase == Exiting || c.closed {
		c.mu.Unlock()
		return false
	}
	e.Phase = Exiting
	e.dismissTimer.Stop()
	if c.exitDuration == 0 {
		c.removeLocked(id)
	} else {
		e.removeTimer = time.AfterFunc(c.exitDuration, func() { c.remove(id) })
	}
	fn := c.onChange
	c.mu.Unlock()

	if fn != nil {
		fn()
	}
	return true
}

func (c *Center) remove(id uint64) {
	c.mu.Lock()
	removed := c.removeLocked(id)
	fn := c.onChange
	c.mu.Unlock()

	if removed && fn != nil {
		fn()
	}
}

func (c *Center) removeLocked(id uint64) bool {
	for i, e := range c.entries {
		if e.ID == id {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Center) find(id uint64) *entry {
	for _, e := range c.entries {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// Active returns the notifications currently on screen, oldest first
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	result := make([]Notification, len(c.entries))
	for i, e := range c.entries {
		result[i] = e.Notification
	}
	return result
}

// Close stops all timers and drops every notification
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.entries {
		e.dismissTimer.Stop()
		if e.removeTimer != nil {
			e.removeTimer.Stop()
		}
	}
	c.entries = nil
	c.closed = true
}
