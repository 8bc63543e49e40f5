package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	calls    []string
	args     [][]string
	reported []error
}

func (r *recorder) cmd(name string, level access, minArgs int) command {
	return command{
		name:    name,
		usage:   "<x>",
		level:   level,
		minArgs: minArgs,
		run: func(_ context.Context, args []string) error {
			r.calls = append(r.calls, name)
			r.args = append(r.args, args)
			return nil
		},
	}
}

func newTestShell(rec *recorder, lvl access, input string) (*shell, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &shell{
		commands: []command{
			rec.cmd("guestcmd", accessGuest, 0),
			rec.cmd("membercmd", accessMember, 1),
			rec.cmd("admincmd", accessAdmin, 0),
		},
		level:  func() access { return lvl },
		status: func() string { return "(test)" },
		report: func(err error) { rec.reported = append(rec.reported, err) },
		in:     bufio.NewReader(strings.NewReader(input)),
		out:    out,
	}, out
}

func TestRunREPL_GatesByRole(t *testing.T) {
	rec := &recorder{}
	sh, out := newTestShell(rec, accessMember, strings.Join([]string{
		"guestcmd",
		"membercmd r1 extra",
		"admincmd",
		"",
		"foobar",
		"exit",
		"guestcmd",
	}, "\n"))

	runREPL(context.Background(), sh)

	assert.Equal(t, []string{"guestcmd", "membercmd"}, rec.calls)
	assert.Equal(t, []string{"r1", "extra"}, rec.args[1])
	require.Len(t, rec.reported, 1)
	assert.ErrorIs(t, rec.reported[0], errAdminRequired)
	assert.Contains(t, out.String(), "Unknown command: foobar")
	assert.Contains(t, out.String(), "Bye!")
	assert.Contains(t, out.String(), "bngrc (test)> ")
}

func TestRunREPL_GuestMustLogIn(t *testing.T) {
	rec := &recorder{}
	sh, _ := newTestShell(rec, accessGuest, "membercmd r1\nadmincmd\n")

	runREPL(context.Background(), sh)

	assert.Empty(t, rec.calls)
	require.Len(t, rec.reported, 2)
	assert.ErrorIs(t, rec.reported[0], errLoginRequired)
	assert.ErrorIs(t, rec.reported[1], errLoginRequired)
}

func TestRunREPL_UsageWhenArgsMissing(t *testing.T) {
	rec := &recorder{}
	sh, out := newTestShell(rec, accessAdmin, "membercmd\n")

	runREPL(context.Background(), sh)

	assert.Empty(t, rec.calls)
	assert.Contains(t, out.String(), "Usage: membercmd <x>")
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	rec := &recorder{}
	sh, _ := newTestShell(rec, accessAdmin, "admincmd")

	runREPL(context.Background(), sh)

	assert.Equal(t, []string{"admincmd"}, rec.calls)
}

func TestPrintHelp_HidesCommandsAboveLevel(t *testing.T) {
	rec := &recorder{}
	sh, _ := newTestShell(rec, accessMember, "")

	var buf bytes.Buffer
	printHelp(&buf, sh.commands, accessMember)

	assert.Contains(t, buf.String(), "guestcmd")
	assert.Contains(t, buf.String(), "membercmd <x>")
	assert.NotContains(t, buf.String(), "admincmd")
	assert.Contains(t, buf.String(), "exit")
}
