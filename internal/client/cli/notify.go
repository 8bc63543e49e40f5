package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// notifier prints one-line colored notices.
type notifier struct {
	w       io.Writer
	success *color.Color
	failure *color.Color
	info    *color.Color
}

func newNotifier(w io.Writer) *notifier {
	return &notifier{
		w:       w,
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed),
		info:    color.New(color.FgCyan),
	}
}

func (n *notifier) Success(format string, args ...any) {
	_, _ = n.success.Fprintln(n.w, "✔ "+fmt.Sprintf(format, args...))
}

func (n *notifier) Error(format string, args ...any) {
	_, _ = n.failure.Fprintln(n.w, "✘ "+fmt.Sprintf(format, args...))
}

func (n *notifier) Info(format string, args ...any) {
	_, _ = n.info.Fprintln(n.w, "ℹ "+fmt.Sprintf(format, args...))
}
