package domain

import (
	"errors"
	"testing"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name            string
		text            string
		expectedKind    CommandKind
		expectedKeyword string
		expectedPayload string
		expectedErr     error
	}{
		{name: "plain chat", text: "hello there", expectedKind: CommandNone},
		{name: "empty message", text: "", expectedKind: CommandNone},
		{name: "prelude only", text: "!dss", expectedKind: CommandNone},
		{name: "prelude with trailing spaces", text: "!dss   ", expectedKind: CommandNone},
		{name: "prelude glued to keyword", text: "!dssplay x", expectedKind: CommandNone},
		{
			name:            "play with query",
			text:            "!dss play lofi beats",
			expectedKind:    CommandPlay,
			expectedKeyword: "play",
			expectedPayload: "lofi beats",
		},
		{
			name:            "short play with link",
			text:            "!dss p https://example.com/a.mp3",
			expectedKind:    CommandPlay,
			expectedKeyword: "p",
			expectedPayload: "https://example.com/a.mp3",
		},
		{
			name:            "prelude and keyword are case-insensitive",
			text:            "!DSS PLAY Some Song",
			expectedKind:    CommandPlay,
			expectedKeyword: "play",
			expectedPayload: "Some Song",
		},
		{
			name:            "payload keeps inner whitespace and is trimmed",
			text:            "!dss play   a   b   ",
			expectedKind:    CommandPlay,
			expectedKeyword: "play",
			expectedPayload: "a   b",
		},
		{
			name:            "payload stops at newline",
			text:            "!dss play first line\nsecond line",
			expectedKind:    CommandPlay,
			expectedKeyword: "play",
			expectedPayload: "first line",
		},
		{
			name:            "play without payload",
			text:            "!dss play",
			expectedKind:    CommandPlay,
			expectedKeyword: "play",
			expectedErr:     ErrMissingArgument,
		},
		{
			name:            "play with whitespace payload",
			text:            "!dss p    ",
			expectedKind:    CommandPlay,
			expectedKeyword: "p",
			expectedErr:     ErrMissingArgument,
		},
		{name: "skip", text: "!dss skip", expectedKind: CommandSkip, expectedKeyword: "skip"},
		{name: "next", text: "!dss n", expectedKind: CommandSkip, expectedKeyword: "n"},
		{name: "s", text: "!dss s", expectedKind: CommandSkip, expectedKeyword: "s"},
		{
			name:            "skip ignores payload",
			text:            "!dss next please",
			expectedKind:    CommandSkip,
			expectedKeyword: "next",
		},
		{
			name:            "pause",
			text:            "!dss pause",
			expectedKind:    CommandPauseToggle,
			expectedKeyword: "pause",
		},
		{
			name:            "unpause",
			text:            "!dss unpause",
			expectedKind:    CommandPauseToggle,
			expectedKeyword: "unpause",
		},
		{
			name:            "disconnect",
			text:            "!dss disc",
			expectedKind:    CommandDisconnect,
			expectedKeyword: "disc",
		},
		{name: "help", text: "!dss ?", expectedKind: CommandHelp, expectedKeyword: "?"},
		{
			name:            "unknown keyword",
			text:            "!dss Lyrics now",
			expectedKind:    CommandUnknown,
			expectedKeyword: "lyrics",
		},
		{
			name:            "tab separator",
			text:            "!dss\thelp",
			expectedKind:    CommandHelp,
			expectedKeyword: "help",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := ParseCommand("!dss", tt.text)

			if !errors.Is(err, tt.expectedErr) {
				t.Errorf("error = %v, expected %v", err, tt.expectedErr)
			}
			if cmd.Kind != tt.expectedKind {
				t.Errorf("Kind = %s, expected %s", cmd.Kind, tt.expectedKind)
			}
			if cmd.Keyword != tt.expectedKeyword {
				t.Errorf("Keyword = %q, expected %q", cmd.Keyword, tt.expectedKeyword)
			}
			if cmd.Payload != tt.expectedPayload {
				t.Errorf("Payload = %q, expected %q", cmd.Payload, tt.expectedPayload)
			}
		})
	}
}

func TestParseCommand_DevPrelude(t *testing.T) {
	// The prod prelude is a prefix of the dev one, so each bot must only answer its own.
	cmd, _ := ParseCommand("!dss", "!dssd play x")
	if cmd.IsCommand() {
		t.Errorf("expected prod prelude to ignore dev command, got %s", cmd.Kind)
	}

	cmd, err := ParseCommand("!dssd", "!dssd play x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.Kind != CommandPlay || cmd.Payload != "x" {
		t.Errorf("expected play x, got %s %q", cmd.Kind, cmd.Payload)
	}
}

func TestParseCommand_EmptyPrelude(t *testing.T) {
	cmd, err := ParseCommand("", " play x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.IsCommand() {
		t.Error("expected empty prelude to never match")
	}
}

func TestKeywords_NoSynonymSharedBetweenKinds(t *testing.T) {
	seen := make(map[string]CommandKind)
	for kind, words := range Keywords {
		for _, w := range words {
			if other, ok := seen[w]; ok {
				t.Errorf("keyword %q maps to both %s and %s", w, other, kind)
			}
			seen[w] = kind
		}
	}
}

func TestCommandKind_String(t *testing.T) {
	tests := []struct {
		kind     CommandKind
		expected string
	}{
		{CommandNone, "none"},
		{CommandPlay, "play"},
		{CommandSkip, "skip"},
		{CommandPauseToggle, "pause"},
		{CommandDisconnect, "disconnect"},
		{CommandHelp, "help"},
		{CommandUnknown, "unknown"},
		{CommandKind(99), "invalid"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("%d.String() = %q, expected %q", tt.kind, got, tt.expected)
		}
	}
}
