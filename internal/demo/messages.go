package demo

import (
	"strings"

	"github.com/brogue-touch/brogue_touch/internal/core"
)

// MsgKind controls the colour of a message in the log.
type MsgKind uint8

const (
	MsgInfo MsgKind = iota
	MsgCombat
	MsgDiscovery
	MsgPrompt
)

func (k MsgKind) color() core.Color {
	switch k {
	case MsgCombat:
		return core.Color{R: 100, G: 40, B: 40}
	case MsgDiscovery:
		return core.Color{R: 40, G: 100, B: 40}
	case MsgPrompt:
		return core.Color{R: 100, G: 100, B: 30}
	default:
		return core.Color{R: 80, G: 80, B: 90}
	}
}

// Message is one line of the log.
type Message struct {
	Text string
	Kind MsgKind
}

// MessageLog keeps the most recent lines, wrapped to the log width.
type MessageLog struct {
	Messages []Message
	maxSize  int
	width    int
}

// NewMessageLog creates a log of at most maxSize lines of width cells.
func NewMessageLog(maxSize, width int) *MessageLog {
	return &MessageLog{Messages: make([]Message, 0, maxSize), maxSize: maxSize, width: width}
}

// Add appends text, wrapping it and evicting the oldest lines when full.
func (l *MessageLog) Add(text string, kind MsgKind) {
	for _, line := range wrapText(text, l.width) {
		msg := Message{Text: line, Kind: kind}
		if len(l.Messages) >= l.maxSize {
			copy(l.Messages, l.Messages[1:])
			l.Messages[len(l.Messages)-1] = msg
		} else {
			l.Messages = append(l.Messages, msg)
		}
	}
}

// Recent returns the last n lines, or fewer if the log is shorter.
func (l *MessageLog) Recent(n int) []Message {
	if n > len(l.Messages) {
		n = len(l.Messages)
	}
	return l.Messages[len(l.Messages)-n:]
}

// wrapText splits text into lines of at most maxWidth runes. Words longer
// than a line are split.
func wrapText(s string, maxWidth int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	var out []string
	var line []rune
	for _, w := range words {
		wr := []rune(w)
		for len(wr) > maxWidth {
			if len(line) > 0 {
				out = append(out, string(line))
				line = nil
			}
			out = append(out, string(wr[:maxWidth]))
			wr = wr[maxWidth:]
		}
		switch {
		case len(line) == 0:
			line = wr
		case len(line)+1+len(wr) > maxWidth:
			out = append(out, string(line))
			line = wr
		default:
			line = append(append(line, ' '), wr...)
		}
	}
	if len(line) > 0 {
		out = append(out, string(line))
	}
	return out
}
