package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	stopped bool

	calls []string
	arg   string
}

func (f *fakeExec) active() bool { return !f.stopped }
func (f *fakeExec) quit()        { f.stopped = true }
func (f *fakeExec) List(ctx context.Context) error {
	f.calls = append(f.calls, "list")
	return nil
}
func (f *fakeExec) Search(ctx context.Context, query string) error {
	f.calls = append(f.calls, "search")
	f.arg = query
	return nil
}
func (f *fakeExec) Add(ctx context.Context) error {
	f.calls = append(f.calls, "add")
	return nil
}
func (f *fakeExec) Update(ctx context.Context, id string) error {
	f.calls = append(f.calls, "update "+id)
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.stopped = true
	return nil
}

func TestRunREPL_Commands(t *testing.T) {
	input := strings.Join([]string{
		"help",
		"",
		"l",
		"search apple inc",
		"add",
		"update 7",
		"foobar",
		"exit",
		"list",
	}, "\n")

	exec := &fakeExec{}
	var out bytes.Buffer
	runREPL(context.Background(), exec, func() string { return "status" }, rdr(input), &out)

	assert.Equal(t, []string{"list", "search", "add", "update 7"}, exec.calls)
	assert.Equal(t, "apple inc", exec.arg)
	assert.True(t, exec.stopped)
	assert.Contains(t, out.String(), "passgate status> ")
	assert.Contains(t, out.String(), "Unknown command: foobar")
	assert.Contains(t, out.String(), "Bye!")
}

func TestRunREPL_UsageAndEOF(t *testing.T) {
	exec := &fakeExec{}
	var out bytes.Buffer
	runREPL(context.Background(), exec, func() string { return "s" }, rdr("update\n"), &out)

	assert.Empty(t, exec.calls)
	assert.Contains(t, out.String(), "Usage: update <id>")
	assert.True(t, exec.stopped, "EOF quits")
}

func TestRunREPL_LogoutLeavesLoop(t *testing.T) {
	exec := &fakeExec{}
	var out bytes.Buffer
	runREPL(context.Background(), exec, func() string { return "s" }, rdr("logout\nlist\n"), &out)

	assert.Equal(t, []string{"logout"}, exec.calls)
}

func TestGreeting(t *testing.T) {
	day := func(h int) time.Time { return time.Date(2024, 5, 1, h, 30, 0, 0, time.UTC) }

	assert.Equal(t, "Morning, John Doe", greeting(day(0), "John Doe"))
	assert.Equal(t, "Morning, John Doe", greeting(day(11), "John Doe"))
	assert.Equal(t, "Afternoon, John Doe", greeting(day(12), "John Doe"))
	assert.Equal(t, "Afternoon, John Doe", greeting(day(17), "John Doe"))
	assert.Equal(t, "Evening, John Doe", greeting(day(18), "John Doe"))
	assert.Equal(t, "Evening, Default User", greeting(day(23), "Default User"))
}
