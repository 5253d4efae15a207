package cli

import (
	"context"
	"strings"
)

// commands is the surface the REPL drives. *App implements it; tests use a
// lightweight stub.
type commands interface {
	Help()
	Add(ctx context.Context, name string) error
	List(ctx context.Context) error
	Toggle(ctx context.Context, ref string) error
	Delete(ctx context.Context, ref string) error
	Unknown(cmd string)
	Usage(text string)
	Bye()
}

// runREPL reads lines, splits off the first word as the command and
// dispatches it. It returns on end of input, on exit/quit, or when ctx is
// done. Errors from handlers are ignored here; handlers log and report their
// own.
func runREPL(ctx context.Context, a commands, lines <-chan string, prompt func()) {
	for {
		prompt()

		var line string
		select {
		case <-ctx.Done():
			return
		case l, ok := <-lines:
			if !ok {
				return
			}
			line = strings.TrimSpace(l)
		}
		if line == "" {
			continue
		}

		cmd, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)

		switch strings.ToLower(cmd) {
		case "help", "?":
			a.Help()

		case "add", "a":
			_ = a.Add(ctx, rest)

		case "l", "list", "ls":
			_ = a.List(ctx)

		case "toggle", "t":
			if rest == "" {
				a.Usage("toggle <id|number>")
				continue
			}
			_ = a.Toggle(ctx, rest)

		case "delete", "del", "rm":
			if rest == "" {
				a.Usage("delete <id|number>")
				continue
			}
			_ = a.Delete(ctx, rest)

		case "exit", "quit", "q":
			a.Bye()
			return

		default:
			a.Unknown(cmd)
		}
	}
}
