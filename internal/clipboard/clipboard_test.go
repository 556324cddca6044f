package clipboard

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	cmd   string
	args  []string
	input string
}

type fakeExecutor struct {
	installed map[string]bool
	failWith  error
	calls     []call
}

func (f *fakeExecutor) LookPath(name string) (string, error) {
	if f.installed[name] {
		return "/usr/bin/" + name, nil
	}
	return "", exec.ErrNotFound
}

func (f *fakeExecutor) RunWithInput(_ context.Context, cmd string, args []string, stdin io.Reader) error {
	b, _ := io.ReadAll(stdin)
	f.calls = append(f.calls, call{cmd: cmd, args: args, input: string(b)})
	return f.failWith
}

func TestSystemWrite_FirstInstalledTool(t *testing.T) {
	fx := &fakeExecutor{installed: map[string]bool{"xclip": true, "xsel": true}}
	s := NewSystem(fx, slog.Default())

	require.NoError(t, s.Write(context.Background(), "hello caption"))

	require.Len(t, fx.calls, 1)
	assert.Equal(t, "xclip", fx.calls[0].cmd)
	assert.Equal(t, []string{"-selection", "clipboard"}, fx.calls[0].args)
	assert.Equal(t, "hello caption", fx.calls[0].input)
}

func TestSystemWrite_NoTool(t *testing.T) {
	s := NewSystem(&fakeExecutor{}, slog.Default())

	err := s.Write(context.Background(), "x")

	var cerr *ClipboardError
	require.True(t, errors.As(err, &cerr))
	assert.True(t, errors.Is(err, ErrNoTool))
	assert.Empty(t, cerr.Tool)
}

func TestSystemWrite_ToolFails(t *testing.T) {
	fx := &fakeExecutor{
		installed: map[string]bool{"pbcopy": true, "wl-copy": true},
		failWith:  errors.New("exit status 1"),
	}
	s := NewSystem(fx, slog.Default())

	err := s.Write(context.Background(), "x")

	var cerr *ClipboardError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "pbcopy", cerr.Tool)
	assert.Contains(t, err.Error(), "exit status 1")
	assert.Len(t, fx.calls, 1, "a failing tool does not fall through")
}

func TestSystemWrite_CustomTools(t *testing.T) {
	fx := &fakeExecutor{installed: map[string]bool{"tee": true, "pbcopy": true}}
	s := NewSystem(fx, nil).WithTools(Tool{Name: "tee", Args: []string{"/tmp/clip"}})

	require.NoError(t, s.Write(context.Background(), "x"))
	require.Len(t, fx.calls, 1)
	assert.Equal(t, "tee", fx.calls[0].cmd)
}

func TestToolString(t *testing.T) {
	assert.Equal(t, "pbcopy", Tool{Name: "pbcopy"}.String())
	assert.Equal(t, "xsel --clipboard --input", DefaultTools[3].String())
}

func TestFunc(t *testing.T) {
	var got string
	w := Func(func(_ context.Context, text string) error {
		got = text
		return nil
	})
	require.NoError(t, w.Write(context.Background(), "abc"))
	assert.Equal(t, "abc", got)
}
