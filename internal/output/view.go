package output

import (
	"fmt"
	"strings"
	"sync"

	"github.com/vscj1234/content-agent-langgraph/internal/controller"
	"github.com/vscj1234/content-agent-langgraph/internal/notify"
	"github.com/vscj1234/content-agent-langgraph/internal/schedule"
)

// TerminalView prints controller snapshots as they change. Only the parts that
// differ from the previous snapshot are printed.
type TerminalView struct {
	p            *Printer
	showProgress bool

	mu       sync.Mutex
	prev     *controller.Snapshot
	notified map[uint64]bool
}

// NewTerminalView creates a view printing through p
func NewTerminalView(p *Printer, showProgress bool) *TerminalView {
	return &TerminalView{
		p:            p,
		showProgress: showProgress,
		notified:     make(map[uint64]bool),
	}
}

// Render implements controller.View
func (v *TerminalView) Render(s controller.Snapshot) {
	v.mu.Lock()
	defer v.mu.Unlock()

	prev := v.prev
	v.prev = &s
	if prev == nil {
		return
	}

	if s.Preview != prev.Preview {
		if s.Preview.Attached() {
			v.p.Info("Attachment: %s (%s)", s.Preview.Text, s.Preview.Subtext)
		} else {
			v.p.Print(v.p.Dim(s.Preview.Text))
		}
	}

	if s.ScheduleVisible && (!prev.ScheduleVisible || !s.MinScheduleTime.Equal(prev.MinScheduleTime)) {
		v.p.Info("Schedule for later: earliest %s", schedule.Format(s.MinScheduleTime, s.MinScheduleTime.Location()))
	}

	if s.State != prev.State || s.Attempt != prev.Attempt {
		v.renderState(s, prev)
		return
	}

	if s.LoadingVisible() && s.Stage != prev.Stage {
		v.renderStage(s)
	}
}

func (v *TerminalView) renderState(s controller.Snapshot, prev *controller.Snapshot) {
	switch s.State {
	case controller.Loading:
		v.p.Print("%s Generating content...", v.p.StateBadge(s.State.String()))
		v.renderStage(s)
	case controller.Results:
		v.renderResults(s)
	case controller.Error:
		v.p.Print("%s Generation failed. The form is ready for another attempt.", v.p.StateBadge(s.State.String()))
	case controller.Idle:
		if prev.State != controller.Idle {
			v.p.Print("%s Form cleared.", v.p.StateBadge(s.State.String()))
		}
	}
}

func (v *TerminalView) renderStage(s controller.Snapshot) {
	if !v.showProgress || s.Stage == "" {
		return
	}
	v.p.Print("  %s %s", v.p.Dim(fmt.Sprintf("[%d/%d]", s.StageIndex+1, s.StageCount)), s.Stage)
}

func (v *TerminalView) renderResults(s controller.Snapshot) {
	r := s.Results

	v.p.Header("Caption")
	v.p.Print("%s", r.Caption)
	v.p.Header("Content")
	v.p.Print("%s", r.Content)

	if s.ImageVisible() {
		v.p.Header("Image")
		v.p.Print("%s", r.ImageURL)
	}

	v.p.Print("")
	table := v.p.Table([]string{"FIELD", "VALUE"})
	table.AddRow([]string{"Platforms", strings.Join(s.Submitted.Platforms, ", ")})
	if s.Submitted.Scheduled() {
		table.AddRow([]string{"Scheduled", *s.Submitted.ScheduleTime})
	} else {
		table.AddRow([]string{"Scheduled", "now"})
	}
	image := "none"
	if s.ImageVisible() {
		image = "yes"
	}
	table.AddRow([]string{"Image", image})
	if s.Preview.Attached() {
		table.AddRow([]string{"Attachment", s.Preview.Text})
	}
	table.Render()
}

// Notify prints the notifications that have not been printed yet
func (v *TerminalView) Notify(active []notify.Notification) {
	v.mu.Lock()
	defer v.mu.Unlock()

	live := make(map[uint64]bool, len(active))
	for _, n := range active {
		live[n.ID] = true
		if v.notified[n.ID] || n.Phase != notify.Visible {
			continue
		}
		v.notified[n.ID] = true
		switch n.Level {
		case notify.Error:
			v.p.Error("%s", n.Message)
		case notify.Success:
			v.p.Success("%s", n.Message)
		default:
			v.p.Warning("%s", n.Message)
		}
	}
	for id := range v.notified {
		if !live[id] {
			delete(v.notified, id)
		}
	}
}

// Watch subscribes the view to a notification center
func (v *TerminalView) Watch(c *notify.Center) {
	c.SetOnChange(func() { v.Notify(c.Active()) })
}
