// Package wifi reports whether the Pi is associated with a wireless network.
package wifi

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"piservices/internal/command"
)

// Status is the association state seen by a probe.
type Status int

const (
	// Unknown means the probe could not tell, see the returned error.
	Unknown Status = iota
	NotAssociated
	Associated
)

func (s Status) String() string {
	switch s {
	case NotAssociated:
		return "not associated"
	case Associated:
		return "associated"
	default:
		return "unknown"
	}
}

// ErrNoInterface is returned when a named interface does not exist.
var ErrNoInterface = errors.New("no such wireless interface")

// Result of one probe. SSID is set when Status is Associated.
type Result struct {
	Status Status
	SSID   string
}

// Probe checks the current association.
type Probe interface {
	Check(ctx context.Context) (Result, error)
}

// IwgetidProbe runs iwgetid and looks for the ESSID marker in its output.
//
// iwgetid prints one line per associated interface, e.g.
//
//	wlan0     ESSID:"home"
//
// and prints nothing and exits with a positive status when no interface is
// associated. An empty value (ESSID:"" or ESSID:off/any, printed for a named
// interface that is up but not associated) also counts as not associated,
// so the LED stays off instead of lighting on the bare marker.
//
// A program that could not be found, was killed by a signal or timed out,
// exited non-zero with other output, or printed something without the
// marker yields Unknown and an error.
type IwgetidProbe struct {
	Runner    command.Runner
	Command   string
	Interface string // empty asks about every interface
	Marker    string
}

// Check runs the command once and classifies its output.
func (p IwgetidProbe) Check(ctx context.Context) (Result, error) {
	var args []string
	if p.Interface != "" {
		args = append(args, p.Interface)
	}
	res, err := p.Runner.Run(ctx, p.Command, args...)

	var exitErr *command.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return Result{}, fmt.Errorf("wifi probe: %w", err)
	}
	output := res.Output
	if len(output) == 0 && exitErr != nil {
		output = exitErr.Output
	}

	ssid, found := findMarker(output, p.Marker)
	switch {
	case found && ssid != "":
		return Result{Status: Associated, SSID: ssid}, nil
	case found:
		return Result{Status: NotAssociated}, nil
	case exitErr != nil && exitErr.Code > 0 && len(bytes.TrimSpace(output)) == 0:
		return Result{Status: NotAssociated}, nil
	case exitErr != nil:
		if line := firstLine(output); line != "" {
			return Result{}, fmt.Errorf("wifi probe: %w: %s", exitErr, line)
		}
		return Result{}, fmt.Errorf("wifi probe: %w", exitErr)
	default:
		return Result{}, fmt.Errorf("wifi probe: %s printed %q: %w", p.Command, firstLine(output), command.ErrUnexpectedOutput)
	}
}

// findMarker looks for marker on every line and returns the first
// non-empty value following it. Quotes are stripped; "off/any" counts as
// empty. found reports whether the marker appeared at all.
func findMarker(output []byte, marker string) (value string, found bool) {
	sc := bufio.NewScanner(bytes.NewReader(output))
	for sc.Scan() {
		line := sc.Text()
		i := strings.Index(line, marker)
		if i < 0 {
			continue
		}
		found = true
		v := strings.TrimSpace(line[i+len(marker):])
		v = strings.TrimPrefix(v, ":")
		v = strings.Trim(strings.TrimSpace(v), `"`)
		if v != "" && v != "off/any" {
			return v, true
		}
	}
	return "", found
}

func firstLine(output []byte) string {
	line, _, _ := bytes.Cut(bytes.TrimSpace(output), []byte("\n"))
	return string(line)
}
