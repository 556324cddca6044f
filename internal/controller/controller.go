// Package controller drives one generate-content form through validation,
// loading, and results or error.
package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vscj1234/content-agent-langgraph/internal/attachment"
	"github.com/vscj1234/content-agent-langgraph/internal/clipboard"
	"github.com/vscj1234/content-agent-langgraph/internal/generation"
	"github.com/vscj1234/content-agent-langgraph/internal/notify"
	"github.com/vscj1234/content-agent-langgraph/internal/platform"
	"github.com/vscj1234/content-agent-langgraph/internal/schedule"
)

const (
	CopiedMessage     = "Copied to clipboard!"
	CopyFailedMessage = "Failed to copy to clipboard"
	GeneratedMessage  = "Content generated successfully!"
)

// ErrNothingToCopy is returned by Copy when no results are showing
var ErrNothingToCopy = errors.New("nothing to copy")

// Generator issues one generate request
type Generator interface {
	Generate(ctx context.Context, req generation.Request) (generation.Result, error)
}

// View draws a snapshot. Render is never called concurrently.
type View interface {
	Render(Snapshot)
}

// Notifier surfaces transient messages
type Notifier interface {
	Show(level notify.Level, message string) uint64
}

// Target selects which results field Copy reads
type Target string

const (
	CopyCaption Target = "caption"
	CopyContent Target = "content"
)

// Options configures a Controller. Zero values fall back to defaults.
type Options struct {
	Platforms     *platform.Registry
	Stages        []string
	StageInterval time.Duration
	MinLead       time.Duration
	Location      *time.Location
	Clipboard     clipboard.Writer
	Notifier      Notifier
	Logger        *slog.Logger
	Now           func() time.Time
}

// DefaultStages is the cosmetic progress sequence shown while loading
var DefaultStages = []string{
	"Crawling context",
	"Writing caption",
	"Writing content",
	"Generating image",
	"Finalizing",
}

// DefaultStageInterval is the delay between progress stages
const DefaultStageInterval = 1500 * time.Millisecond

// Controller owns the UI state of the generate form
type Controller struct {
	gen       Generator
	view      View
	validator *generation.Validator
	platforms *platform.Registry
	stages    []string
	interval  time.Duration
	minLead   time.Duration
	loc       *time.Location
	clip      clipboard.Writer
	notifier  Notifier
	owned     *notify.Center
	logger    *slog.Logger
	now       func() time.Time

	mu             sync.Mutex
	snap           Snapshot
	cancelProgress context.CancelFunc
	closed         bool

	renderMu sync.Mutex
}

// New creates a controller in the Idle state and renders it once
func New(gen Generator, view View, opts Options) *Controller {
	if opts.Platforms == nil {
		opts.Platforms = platform.NewRegistry()
	}
	if len(opts.Stages) == 0 {
		opts.Stages = DefaultStages
	}
	if opts.StageInterval <= 0 {
		opts.StageInterval = DefaultStageInterval
	}
	if opts.MinLead <= 0 {
		opts.MinLead = schedule.DefaultMinLead
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.NewSystem(nil, opts.Logger)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	c := &Controller{
		gen:       gen,
		view:      view,
		validator: generation.NewValidator(opts.Platforms.Names()),
		platforms: opts.Platforms,
		stages:    opts.Stages,
		interval:  opts.StageInterval,
		minLead:   opts.MinLead,
		loc:       opts.Location,
		clip:      opts.Clipboard,
		notifier:  opts.Notifier,
		logger:    opts.Logger,
		now:       opts.Now,
	}
	if c.notifier == nil {
		c.owned = notify.NewCenter(notify.Options{})
		c.notifier = c.owned
	}
	c.snap = c.idleSnapshot()
	c.render()
	return c
}

func (c *Controller) idleSnapshot() Snapshot {
	return Snapshot{
		State:      Idle,
		StageIndex: -1,
		StageCount: len(c.stages),
		Form:       FormState{ScheduleOption: schedule.Now},
		Preview:    attachment.Default(),
	}
}

// State returns the current UI state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap.State
}

// Snapshot returns a copy of everything the view shows
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copySnapshot()
}

func (c *Controller) copySnapshot() Snapshot {
	s := c.snap
	s.Form.Platforms = append([]string(nil), c.snap.Form.Platforms...)
	s.Submitted.Platforms = append([]string(nil), c.snap.Submitted.Platforms...)
	return s
}

// render draws the latest state. Holding renderMu while reading the state keeps
// concurrent renders from drawing an older snapshot last.
func (c *Controller) render() {
	if c.view == nil {
		return
	}
	c.renderMu.Lock()
	defer c.renderMu.Unlock()
	c.view.Render(c.Snapshot())
}

func (c *Controller) notify(level notify.Level, message string) {
	if message == "" {
		return
	}
	c.notifier.Show(level, message)
}

// Validate turns form input into a request. A failure is surfaced as an error
// notification and leaves the UI state untouched.
func (c *Controller) Validate(form FormState) (generation.Request, error) {
	req, err := c.buildRequest(form)
	if err != nil {
		c.logger.Debug("form rejected", "error", err)
		c.notify(notify.Error, generation.UserMessage(err))
		return generation.Request{}, err
	}
	return req, nil
}

func (c *Controller) buildRequest(form FormState) (generation.Request, error) {
	req := generation.Request{
		Topic:     form.Topic,
		Platforms: append([]string(nil), form.Platforms...),
	}
	if err := c.validator.Validate(&req); err != nil {
		return generation.Request{}, err
	}

	if form.ScheduleOption != schedule.Later {
		return req, nil
	}

	at, err := schedule.Parse(form.ScheduleTime, c.loc)
	if err != nil {
		msg := "Please choose a valid date and time to schedule the post."
		if errors.Is(err, schedule.ErrMissingTime) {
			msg = "Please choose a date and time to schedule the post."
		}
		return generation.Request{}, &generation.ValidationError{
			Kind:    generation.KindInvalidSchedule,
			Field:   "schedule_time",
			Message: msg,
		}
	}

	earliest := c.earliestSchedule()
	if err := schedule.Check(at, earliest); err != nil {
		return generation.Request{}, &generation.ValidationError{
			Kind:    generation.KindScheduleTooSoon,
			Field:   "schedule_time",
			Message: fmt.Sprintf("Please schedule at least %s from now (%s or later).", formatLead(c.minLead), schedule.Format(earliest, c.loc)),
		}
	}

	ts := schedule.Format(at, c.loc)
	req.ScheduleTime = &ts
	return req, nil
}

// earliestSchedule is the later of the minimum recorded at selection and the
// minimum computed now.
func (c *Controller) earliestSchedule() time.Time {
	earliest := schedule.MinimumTime(c.now(), c.minLead)
	c.mu.Lock()
	recorded := c.snap.MinScheduleTime
	c.mu.Unlock()
	if recorded.After(earliest) {
		return recorded
	}
	return earliest
}

func formatLead(d time.Duration) string {
	if d%time.Minute == 0 {
		return fmt.Sprintf("%d minutes", int(d/time.Minute))
	}
	return d.String()
}

// SubmitForm records the form, validates it and submits the resulting request
func (c *Controller) SubmitForm(ctx context.Context, form FormState) (generation.Result, error) {
	c.mu.Lock()
	c.snap.Form = form
	c.snap.Form.Platforms = append([]string(nil), form.Platforms...)
	if form.ScheduleOption == "" {
		c.snap.Form.ScheduleOption = schedule.Now
	}
	c.mu.Unlock()

	req, err := c.Validate(form)
	if err != nil {
		return generation.Result{}, err
	}
	return c.Submit(ctx, req)
}

// Submit sends one request. The UI is in Loading while it is in flight and is
// left in Results or Error once it settles. A newer Submit or a Reset
// supersedes this attempt: its outcome is returned but not shown.
func (c *Controller) Submit(ctx context.Context, req generation.Request) (generation.Result, error) {
	attempt := uuid.NewString()
	progressCtx, stopProgress := context.WithCancel(ctx)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		stopProgress()
		return generation.Result{}, errors.New("controller is closed")
	}
	if c.cancelProgress != nil {
		c.cancelProgress()
	}
	c.cancelProgress = stopProgress
	c.snap.Attempt = attempt
	c.snap.Submitted = req
	c.snap.State = Loading
	c.snap.StageIndex = 0
	c.snap.Stage = c.stages[0]
	c.snap.Results = ResultsPanel{}
	c.snap.ErrorMessage = ""
	c.mu.Unlock()

	logger := c.logger.With("attempt", attempt)
	logger.Debug("submitting", "topic", req.Topic, "platforms", req.Platforms, "scheduled", req.Scheduled())

	defer c.leaveLoading(attempt, stopProgress)

	c.render()

	var (
		g   errgroup.Group
		res generation.Result
	)
	g.Go(func() error {
		c.runProgress(progressCtx, attempt)
		return nil
	})
	g.Go(func() error {
		defer stopProgress()
		var err error
		res, err = c.gen.Generate(generation.WithAttemptID(ctx, attempt), req)
		return err
	})
	err := g.Wait()

	if !c.settle(attempt, req, res, err) {
		logger.Debug("attempt superseded, outcome not shown", "error", err)
		return res, err
	}
	if err != nil {
		logger.Debug("generation failed", "error", err)
		c.notify(notify.Error, generation.UserMessage(err))
		return res, err
	}

	logger.Debug("generation succeeded", "image", res.HasImage())
	msg := res.Message
	if msg == "" {
		msg = GeneratedMessage
	}
	c.notify(notify.Success, msg)
	c.warnPlatforms(req, res)
	return res, nil
}

// settle applies the outcome if attempt is still current
func (c *Controller) settle(attempt string, req generation.Request, res generation.Result, err error) bool {
	c.mu.Lock()
	if c.closed || c.snap.Attempt != attempt {
		c.mu.Unlock()
		return false
	}
	c.clearProgress()
	if err != nil {
		c.snap.State = Error
		c.snap.ErrorMessage = generation.UserMessage(err)
	} else {
		c.snap.State = Results
		c.snap.Results = ResultsPanel{
			Caption:      res.CaptionText(),
			Content:      res.ContentText(),
			ImageURL:     res.ImageURL,
			ImageVisible: res.HasImage(),
			Message:      res.Message,
		}
	}
	c.mu.Unlock()
	c.render()
	return true
}

// leaveLoading makes sure the progress sequence is stopped and the loading
// indicator hidden once attempt has settled, whatever path it took.
func (c *Controller) leaveLoading(attempt string, stopProgress context.CancelFunc) {
	stopProgress()

	c.mu.Lock()
	if c.snap.Attempt != attempt || c.snap.State != Loading {
		c.mu.Unlock()
		return
	}
	c.clearProgress()
	c.snap.State = Error
	c.snap.ErrorMessage = generation.FallbackMessage
	c.mu.Unlock()
	c.render()
}

func (c *Controller) clearProgress() {
	if c.cancelProgress != nil {
		c.cancelProgress()
		c.cancelProgress = nil
	}
	c.snap.Stage = ""
	c.snap.StageIndex = -1
}

func (c *Controller) warnPlatforms(req generation.Request, res generation.Result) {
	if !res.HasImage() {
		if need := c.platforms.RequiringImage(req.Platforms); len(need) > 0 {
			c.notify(notify.Info, fmt.Sprintf("%s requires an image; no image was generated.", labels(need)))
		}
	}
	if req.Scheduled() {
		if skip := c.platforms.Unschedulable(req.Platforms); len(skip) > 0 {
			c.notify(notify.Info, fmt.Sprintf("Scheduling is not supported for %s.", labels(skip)))
		}
	}
}

func labels(ps []*platform.Platform) string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.Label()
	}
	return strings.Join(names, ", ")
}

// Reset returns to Idle: the form is cleared, the attachment preview goes back
// to its placeholder, and the results and schedule input are hidden. An
// in-flight attempt is superseded.
func (c *Controller) Reset() {
	c.mu.Lock()
	if c.cancelProgress != nil {
		c.cancelProgress()
		c.cancelProgress = nil
	}
	c.snap = c.idleSnapshot()
	c.mu.Unlock()
	c.render()
}

// SelectScheduleOption shows or hides the schedule input. Choosing Later
// records and returns the earliest selectable time.
func (c *Controller) SelectScheduleOption(opt schedule.Option) time.Time {
	c.mu.Lock()
	c.snap.Form.ScheduleOption = opt
	if opt == schedule.Later {
		c.snap.ScheduleVisible = true
		c.snap.MinScheduleTime = schedule.MinimumTime(c.now(), c.minLead).In(c.loc)
	} else {
		c.snap.ScheduleVisible = false
		c.snap.MinScheduleTime = time.Time{}
		c.snap.Form.ScheduleTime = ""
	}
	earliest := c.snap.MinScheduleTime
	c.mu.Unlock()
	c.render()
	return earliest
}

// Attach selects an image file and updates the preview
func (c *Controller) Attach(path string) error {
	preview, err := attachment.ForFile(path)
	c.setPreview(preview, path, err)
	return err
}

// Drop attaches the first of several dropped files
func (c *Controller) Drop(paths []string) error {
	preview, err := attachment.ForDrop(paths)
	var path string
	if len(paths) > 0 {
		path = paths[0]
	}
	c.setPreview(preview, path, err)
	return err
}

func (c *Controller) setPreview(preview attachment.Preview, path string, err error) {
	c.mu.Lock()
	c.snap.Preview = preview
	if err != nil || !preview.Attached() {
		c.snap.Form.Attachment = ""
	} else {
		c.snap.Form.Attachment = path
	}
	c.mu.Unlock()
	if err != nil {
		c.notify(notify.Error, fmt.Sprintf("Could not attach %s", path))
	}
	c.render()
}

// Copy puts the caption or content shown in the results panel on the clipboard
func (c *Controller) Copy(ctx context.Context, target Target) error {
	c.mu.Lock()
	var text string
	if c.snap.State == Results {
		switch target {
		case CopyCaption:
			text = c.snap.Results.Caption
		case CopyContent:
			text = c.snap.Results.Content
		default:
			c.mu.Unlock()
			return fmt.Errorf("unknown copy target %q", target)
		}
	}
	c.mu.Unlock()

	if text == "" {
		return ErrNothingToCopy
	}

	if err := c.clip.Write(ctx, text); err != nil {
		c.logger.Debug("copy failed", "target", target, "error", err)
		c.notify(notify.Error, CopyFailedMessage)
		var cerr *clipboard.ClipboardError
		if !errors.As(err, &cerr) {
			err = &clipboard.ClipboardError{Err: err}
		}
		return err
	}
	c.notify(notify.Success, CopiedMessage)
	return nil
}

// Close stops the progress sequence. Outcomes of in-flight attempts are dropped.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.cancelProgress != nil {
		c.cancelProgress()
		c.cancelProgress = nil
	}
	c.closed = true
	c.mu.Unlock()
	if c.owned != nil {
		c.owned.Close()
	}
}
