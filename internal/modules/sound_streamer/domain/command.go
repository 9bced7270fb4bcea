package domain

import (
	"errors"
	"regexp"
	"strings"
)

// ErrMissingArgument is returned alongside a Play command that has no payload.
var ErrMissingArgument = errors.New("missing argument")

// CommandKind identifies what a chat message asks the streamer to do.
type CommandKind int

const (
	// CommandNone means the message is not addressed to the streamer.
	CommandNone CommandKind = iota
	CommandPlay
	CommandSkip
	CommandPauseToggle
	CommandDisconnect
	CommandHelp
	// CommandUnknown is a prelude-prefixed message with an unrecognized keyword.
	CommandUnknown
)

// String returns the string representation of the command kind.
func (k CommandKind) String() string {
	switch k {
	case CommandNone:
		return "none"
	case CommandPlay:
		return "play"
	case CommandSkip:
		return "skip"
	case CommandPauseToggle:
		return "pause"
	case CommandDisconnect:
		return "disconnect"
	case CommandHelp:
		return "help"
	case CommandUnknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// Keywords maps each command kind to its synonyms, in the order they are listed in the manual.
var Keywords = map[CommandKind][]string{
	CommandPlay:        {"p", "play"},
	CommandSkip:        {"n", "next", "s", "skip"},
	CommandPauseToggle: {"pause", "unpause"},
	CommandDisconnect:  {"d", "disc", "disconnect"},
	CommandHelp:        {"?", "h", "help"},
}

var keywordIndex = buildKeywordIndex(Keywords)

func buildKeywordIndex(table map[CommandKind][]string) map[string]CommandKind {
	index := make(map[string]CommandKind)
	for kind, words := range table {
		for _, w := range words {
			index[strings.ToLower(w)] = kind
		}
	}
	return index
}

// commandPattern matches the text following the prelude: keyword, then the rest of the line.
var commandPattern = regexp.MustCompile(`^\s+(\S+)\s*(.*)`)

// Command is a parsed chat command.
type Command struct {
	Kind CommandKind
	// Keyword is the lowercased keyword as typed.
	Keyword string
	// Payload is the trimmed argument; only meaningful for CommandPlay.
	Payload string
}

// IsCommand returns true if the message was addressed to the streamer.
func (c Command) IsCommand() bool {
	return c.Kind != CommandNone
}

// ParseCommand parses raw message text against the given prelude.
// A Play command without a payload is returned together with ErrMissingArgument.
func ParseCommand(prelude, text string) (Command, error) {
	if prelude == "" || len(text) < len(prelude) ||
		!strings.EqualFold(text[:len(prelude)], prelude) {
		return Command{Kind: CommandNone}, nil
	}

	match := commandPattern.FindStringSubmatch(text[len(prelude):])
	if match == nil {
		return Command{Kind: CommandNone}, nil
	}

	keyword := strings.ToLower(match[1])
	kind, ok := keywordIndex[keyword]
	if !ok {
		return Command{Kind: CommandUnknown, Keyword: keyword}, nil
	}

	cmd := Command{Kind: kind, Keyword: keyword}
	if kind != CommandPlay {
		return cmd, nil
	}

	cmd.Payload = strings.TrimSpace(match[2])
	if cmd.Payload == "" {
		return cmd, ErrMissingArgument
	}
	return cmd, nil
}
