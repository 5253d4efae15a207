package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/bucketlist/internal/models"
)

var errNoMatch = errors.New("no matching destination")

func (a *App) Help() {
	a.printf("Available commands: add [name], (l)ist, toggle <ref>, delete <ref>, exit\n")
	a.printf("<ref> is a destination id or its number in the list\n")
}

func (a *App) Add(ctx context.Context, name string) error {
	if name == "" {
		var err error
		name, err = a.readLine(ctx, "Where to next?")
		if err != nil {
			a.log.Warn(ctx, "error reading destination name", "error", err)
			return err
		}
	}

	d, err := a.store.Add(name)
	if err != nil {
		if errors.Is(err, models.ErrValidation) {
			a.notice(noticeNameRequired)
		} else {
			a.log.Error(ctx, "error adding destination", "error", err)
			a.notice(err.Error())
		}
		return err
	}

	a.log.Info(ctx, "destination added", "id", d.ID)
	return nil
}

func (a *App) List(ctx context.Context) error {
	a.render(a.store.List())
	return nil
}

func (a *App) Toggle(ctx context.Context, ref string) error {
	id, err := a.resolve(ref)
	if err != nil {
		a.printf("No destination %q\n", ref)
		return err
	}
	a.store.ToggleVisited(id)
	return nil
}

func (a *App) Delete(ctx context.Context, ref string) error {
	id, err := a.resolve(ref)
	if err != nil {
		a.printf("No destination %q\n", ref)
		return err
	}
	a.store.Delete(id)
	return nil
}

func (a *App) Unknown(cmd string) {
	a.printf("Unknown command: %s\n", cmd)
}

func (a *App) Usage(text string) {
	a.printf("Usage: %s\n", text)
}

func (a *App) Bye() {
	a.printf("Bye!\n")
}

// resolve maps an id or a 1-based position to a destination id. Ids win over
// positions.
func (a *App) resolve(ref string) (string, error) {
	if d, ok := a.store.Get(ref); ok {
		return d.ID, nil
	}

	n, err := strconv.Atoi(ref)
	if err != nil {
		return "", fmt.Errorf("%w: %s", errNoMatch, ref)
	}
	list := a.store.List()
	if n < 1 || n > len(list) {
		return "", fmt.Errorf("%w: %s", errNoMatch, ref)
	}
	return list[n-1].ID, nil
}

// readLine prints prompt and waits for the next input line.
func (a *App) readLine(ctx context.Context, prompt string) (string, error) {
	a.printf("%s\n> ", prompt)

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-a.lines:
		if !ok {
			return "", errors.New("input closed")
		}
		return line, nil
	}
}
