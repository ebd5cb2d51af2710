package wifi

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"piservices/internal/command"
)

type fakeRunner struct {
	output []byte
	err    error
	args   []string
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) (command.Result, error) {
	f.args = append([]string{name}, args...)
	res := command.Result{Output: f.output}
	var exitErr *command.ExitError
	if errors.As(f.err, &exitErr) {
		res.ExitCode = exitErr.Code
	}
	return res, f.err
}

func probe(r *fakeRunner) IwgetidProbe {
	return IwgetidProbe{Runner: r, Command: "iwgetid", Marker: "ESSID"}
}

func TestIwgetid_Associated(t *testing.T) {
	r := &fakeRunner{output: []byte("wlan0     ESSID:\"home net\"\n")}
	res, err := probe(r).Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Associated, res.Status)
	assert.Equal(t, "home net", res.SSID)
	assert.Equal(t, []string{"iwgetid"}, r.args)
}

func TestIwgetid_PassesInterface(t *testing.T) {
	r := &fakeRunner{output: []byte("wlan1     ESSID:\"x\"\n")}
	p := probe(r)
	p.Interface = "wlan1"
	_, err := p.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"iwgetid", "wlan1"}, r.args)
}

func TestIwgetid_NotAssociated(t *testing.T) {
	tests := []struct {
		name   string
		output string
		err    error
	}{
		{"nothing printed, non-zero exit", "", &command.ExitError{Name: "iwgetid", Code: 255}},
		{"empty essid", "wlan0     ESSID:\"\"\n", nil},
		{"off/any", "wlan0     ESSID:off/any\n", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := probe(&fakeRunner{output: []byte(tt.output), err: tt.err}).Check(context.Background())
			require.NoError(t, err)
			assert.Equal(t, NotAssociated, res.Status)
			assert.Empty(t, res.SSID)
		})
	}
}

func TestIwgetid_CommandNotFound(t *testing.T) {
	r := &fakeRunner{err: fmt.Errorf("iwgetid: %w", command.ErrNotFound)}
	res, err := probe(r).Check(context.Background())
	assert.ErrorIs(t, err, command.ErrNotFound)
	assert.Equal(t, Unknown, res.Status)
}

func TestIwgetid_ToolFailure(t *testing.T) {
	r := &fakeRunner{
		output: []byte("Operation not permitted\n"),
		err:    &command.ExitError{Name: "iwgetid", Code: 1},
	}
	res, err := probe(r).Check(context.Background())
	require.Error(t, err)

	var exitErr *command.ExitError
	assert.True(t, errors.As(err, &exitErr))
	assert.Contains(t, err.Error(), "Operation not permitted")
	assert.Equal(t, Unknown, res.Status)
}

func TestIwgetid_KilledWithoutOutputIsUnknown(t *testing.T) {
	r := &fakeRunner{err: &command.ExitError{Name: "iwgetid", Code: -1}}
	res, err := probe(r).Check(context.Background())
	require.Error(t, err)

	var exitErr *command.ExitError
	assert.True(t, errors.As(err, &exitErr))
	assert.Equal(t, Unknown, res.Status)
}

func TestIwgetid_TimedOutIsUnknown(t *testing.T) {
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}
	// "sleep 5" stands in for a query tool that hangs past the timeout.
	p := IwgetidProbe{
		Runner:    command.ExecRunner{Timeout: 50 * time.Millisecond},
		Command:   "sleep",
		Interface: "5",
		Marker:    "ESSID",
	}
	res, err := p.Check(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, Unknown, res.Status)
}

func TestIwgetid_UnexpectedOutput(t *testing.T) {
	r := &fakeRunner{output: []byte("wlan0     SSID=home\n")}
	res, err := probe(r).Check(context.Background())
	assert.ErrorIs(t, err, command.ErrUnexpectedOutput)
	assert.Equal(t, Unknown, res.Status)
}

func TestFindMarker_AnyAssociatedInterface(t *testing.T) {
	out := []byte("wlan0     ESSID:\"\"\nwlan1     ESSID:\"guest\"\n")
	ssid, found := findMarker(out, "ESSID")
	assert.True(t, found)
	assert.Equal(t, "guest", ssid)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "associated", Associated.String())
	assert.Equal(t, "not associated", NotAssociated.String())
	assert.Equal(t, "unknown", Unknown.String())
}
