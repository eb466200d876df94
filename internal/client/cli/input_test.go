package cli

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("hello world\n"), "Name?", &out)
	if err != nil || got != "hello world" {
		t.Fatalf("got %q, err=%v", got, err)
	}
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	if err != nil || got != "lastline" {
		t.Fatalf("got %q, err=%v", got, err)
	}

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	require.ErrorIs(t, err, io.EOF)
}

func TestGetWithDefault(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		current string
		want    string
		prompt  string
	}{
		{name: "empty keeps current", input: "\n", current: "Apple", want: "Apple", prompt: "Name [Apple]\n> "},
		{name: "answer replaces", input: "Pear\n", current: "Apple", want: "Pear", prompt: "Name [Apple]\n> "},
		{name: "no current", input: "\n", current: "", want: "", prompt: "Name\n> "},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetWithDefault(rdr(tc.input), "Name", tc.current, &out)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.prompt, out.String())
		})
	}
}
