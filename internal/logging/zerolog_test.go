package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func newTestZerolog(t *testing.T) (*ZerologLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return NewZerologLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)), &buf
}

func TestZerologLogger_Levels(t *testing.T) {
	log, buf := newTestZerolog(t)
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	out := buf.String()
	for _, want := range []string{
		`"level":"debug"`, `"message":"dbg"`, `"a":1`,
		`"level":"info"`, `"message":"inf"`, `"b":2`,
		`"level":"warn"`, `"message":"wrn"`, `"c":3`,
		`"level":"error"`, `"message":"err"`, `"d":4`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in output:\n%s", want, out)
		}
	}
}

func TestZerologLogger_With(t *testing.T) {
	log, buf := newTestZerolog(t)

	log.With("module", "rest").Info(context.Background(), "hello", "k", "v")

	out := buf.String()
	for _, want := range []string{`"module":"rest"`, `"k":"v"`, `"message":"hello"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in output:\n%s", want, out)
		}
	}
}

func TestZerologLogger_DanglingKey(t *testing.T) {
	log, buf := newTestZerolog(t)

	log.Info(context.Background(), "odd", "lonely")

	if !strings.Contains(buf.String(), `"!BADKEY":"lonely"`) {
		t.Fatalf("dangling key not reported:\n%s", buf.String())
	}
}

func TestNew_SelectsImplementation(t *testing.T) {
	var buf bytes.Buffer

	if _, ok := New(FormatConsole, &buf).(*ZerologLogger); !ok {
		t.Fatal("console format must use zerolog")
	}
	if _, ok := New(FormatJSON, &buf).(*SlogLogger); !ok {
		t.Fatal("json format must use slog")
	}
	if _, ok := New("whatever", &buf).(*SlogLogger); !ok {
		t.Fatal("unknown format must fall back to slog")
	}
}

func TestNop_DoesNotPanic(t *testing.T) {
	l := Nop()
	ctx := context.Background()
	l.Debug(ctx, "x")
	l.Info(ctx, "x")
	l.Warn(ctx, "x")
	l.Error(ctx, "x")
	l.With("a", 1).Info(ctx, "y")
}
