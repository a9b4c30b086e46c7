package main

import (
	"io"
	"os"
	"reflect"
	"testing"

	"github.com/and161185/vibe-journal/internal/model"
)

func Test_splitTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"life", []string{"life"}},
		{"life, work ,life", []string{"life", "work"}},
		{" , ,", []string{}},
	}
	for _, tt := range tests {
		if got := splitTags(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("splitTags(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func Test_readContent_Literal(t *testing.T) {
	t.Parallel()

	if got := readContent("plain text"); got != "plain text" {
		t.Fatalf("readContent: %q", got)
	}
}

func Test_readContent_Stdin(t *testing.T) {
	r, w, _ := os.Pipe()
	old := os.Stdin
	os.Stdin = r
	defer func() { os.Stdin = old }()
	go func() { _, _ = io.WriteString(w, "line one\nline two\n"); _ = w.Close() }()

	if got := readContent("-"); got != "line one\nline two" {
		t.Fatalf("readContent(stdin): %q", got)
	}
}

func Test_moodEmojis_CoverAllMoods(t *testing.T) {
	t.Parallel()

	for _, m := range model.Moods {
		if moodEmojis[m] == "" {
			t.Fatalf("mood %q has no emoji", m)
		}
	}
}

func Test_stdinConfirmer(t *testing.T) {
	tests := []struct {
		answer string
		want   bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
	}
	for _, tt := range tests {
		r, w, _ := os.Pipe()
		old := os.Stdin
		os.Stdin = r
		go func() { _, _ = io.WriteString(w, tt.answer); _ = w.Close() }()
		got := stdinConfirmer{}.Confirm("sure?")
		os.Stdin = old
		if got != tt.want {
			t.Fatalf("Confirm with %q = %v, want %v", tt.answer, got, tt.want)
		}
	}
}
