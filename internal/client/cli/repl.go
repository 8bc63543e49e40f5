package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// access is the role needed to run a command.
type access int

const (
	accessGuest access = iota
	accessMember
	accessAdmin
)

type command struct {
	name  string
	usage string
	help  string
	level access
	// minArgs is checked before run is called.
	minArgs int
	run     func(ctx context.Context, args []string) error
}

// shell is the REPL state independent of App, so tests can drive it with
// stub commands.
type shell struct {
	commands []command
	level    func() access
	status   func() string
	report   func(err error)
	in       *bufio.Reader
	out      io.Writer
}

// runREPL reads commands until EOF or "exit"/"quit". Errors returned by
// commands are passed to report and never stop the loop.
func runREPL(ctx context.Context, sh *shell) {
	for {
		fmt.Fprintf(sh.out, "bngrc %s> ", sh.status())

		line, err := sh.in.ReadString('\n')
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				return
			}
			continue
		}

		name, args := parts[0], parts[1:]
		switch name {
		case "exit", "quit":
			fmt.Fprintln(sh.out, "Bye!")
			return
		case "help":
			printHelp(sh.out, sh.commands, sh.level())
		default:
			sh.dispatch(ctx, name, args)
		}

		if err != nil {
			return
		}
	}
}

func (sh *shell) dispatch(ctx context.Context, name string, args []string) {
	var cmd *command
	for i := range sh.commands {
		if sh.commands[i].name == name {
			cmd = &sh.commands[i]
			break
		}
	}
	if cmd == nil {
		fmt.Fprintln(sh.out, "Unknown command:", name)
		return
	}

	if lvl := sh.level(); cmd.level > lvl {
		if lvl == accessGuest {
			sh.report(errLoginRequired)
		} else {
			sh.report(errAdminRequired)
		}
		return
	}

	if len(args) < cmd.minArgs {
		fmt.Fprintln(sh.out, "Usage:", strings.TrimSpace(cmd.name+" "+cmd.usage))
		return
	}

	if err := cmd.run(ctx, args); err != nil {
		sh.report(err)
	}
}

var (
	errLoginRequired = errors.New("please log in first")
	errAdminRequired = errors.New("administrator role required")
)

func printHelp(w io.Writer, commands []command, lvl access) {
	fmt.Fprintln(w, "Available commands:")
	for _, c := range commands {
		if c.level > lvl {
			continue
		}
		fmt.Fprintf(w, "  %-32s %s\n", strings.TrimSpace(c.name+" "+c.usage), c.help)
	}
	fmt.Fprintf(w, "  %-32s %s\n", "exit", "leave the program")
}
