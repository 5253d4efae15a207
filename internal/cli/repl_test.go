package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeCommands struct {
	calls []string
}

func (f *fakeCommands) Help() { f.calls = append(f.calls, "help") }
func (f *fakeCommands) Add(_ context.Context, name string) error {
	f.calls = append(f.calls, "add:"+name)
	return nil
}
func (f *fakeCommands) List(context.Context) error { f.calls = append(f.calls, "list"); return nil }
func (f *fakeCommands) Toggle(_ context.Context, ref string) error {
	f.calls = append(f.calls, "toggle:"+ref)
	return nil
}
func (f *fakeCommands) Delete(_ context.Context, ref string) error {
	f.calls = append(f.calls, "delete:"+ref)
	return nil
}
func (f *fakeCommands) Unknown(cmd string) { f.calls = append(f.calls, "unknown:"+cmd) }
func (f *fakeCommands) Usage(text string)  { f.calls = append(f.calls, "usage:"+text) }
func (f *fakeCommands) Bye()               { f.calls = append(f.calls, "bye") }

func feed(lines ...string) <-chan string {
	ch := make(chan string, len(lines))
	for _, l := range lines {
		ch <- l
	}
	close(ch)
	return ch
}

func TestRunREPL_Dispatch(t *testing.T) {
	f := &fakeCommands{}
	prompts := 0

	runREPL(context.Background(), f, feed(
		"help",
		"",
		"add   New York  ",
		"add",
		"l",
		"LIST",
		"toggle 2",
		"t abc",
		"rm 1",
		"delete some-id",
		"toggle",
		"delete",
		"foobar",
		"quit",
		"add never-reached",
	), func() { prompts++ })

	assert.Equal(t, []string{
		"help",
		"add:New York",
		"add:",
		"list",
		"list",
		"toggle:2",
		"toggle:abc",
		"delete:1",
		"delete:some-id",
		"usage:toggle <id|number>",
		"usage:delete <id|number>",
		"unknown:foobar",
		"bye",
	}, f.calls)
	assert.Equal(t, 14, prompts)
}

func TestRunREPL_StopsOnEndOfInput(t *testing.T) {
	f := &fakeCommands{}
	runREPL(context.Background(), f, feed("list"), func() {})

	assert.Equal(t, []string{"list"}, f.calls)
}

func TestRunREPL_StopsOnCancel(t *testing.T) {
	f := &fakeCommands{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runREPL(ctx, f, make(chan string), func() {})

	assert.Empty(t, f.calls)
}
