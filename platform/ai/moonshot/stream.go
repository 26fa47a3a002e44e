package moonshot

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ParserState is the state of the line-oriented stream parser.
type ParserState int

const (
	// StateAwaitingLine means the parser sits on a line boundary.
	StateAwaitingLine ParserState = iota
	// StateAccumulatingPartial means a line is buffered but not yet terminated.
	StateAccumulatingPartial
	// StateDone means the terminal [DONE] marker was seen; further input is ignored.
	StateDone
)

// StreamEvent is one parsed event from the completions stream.
type StreamEvent struct {
	Token string
	Done  bool
}

// StreamParser parses the line-oriented `data: {...}` event stream emitted by
// OpenAI-compatible completion endpoints. Chunks may split lines at arbitrary
// byte offsets; partial lines are buffered until their newline arrives.
// Malformed lines are dropped rather than failing the stream.
type StreamParser struct {
	state ParserState
	buf   bytes.Buffer
}

// NewStreamParser creates a parser in the awaiting-line state.
func NewStreamParser() *StreamParser {
	return &StreamParser{state: StateAwaitingLine}
}

// State returns the current parser state.
func (p *StreamParser) State() ParserState {
	return p.state
}

// Feed consumes a raw chunk and returns the events completed by it.
func (p *StreamParser) Feed(chunk []byte) []StreamEvent {
	if p.state == StateDone {
		return nil
	}

	p.buf.Write(chunk)

	var events []StreamEvent
	for {
		line, ok := p.nextLine()
		if !ok {
			break
		}
		if ev, ok := p.parseLine(line); ok {
			events = append(events, ev)
			if ev.Done {
				break
			}
		}
	}
	return events
}

// nextLine pops one complete line from the buffer, updating the parser state
// to reflect whether a partial line remains.
func (p *StreamParser) nextLine() (string, bool) {
	data := p.buf.Bytes()
	idx := bytes.IndexByte(data, '\n')
	if idx < 0 {
		if p.buf.Len() > 0 {
			p.state = StateAccumulatingPartial
		} else {
			p.state = StateAwaitingLine
		}
		return "", false
	}

	line := string(data[:idx])
	p.buf.Next(idx + 1)
	p.state = StateAwaitingLine
	return strings.TrimRight(line, "\r"), true
}

type streamDelta struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// parseLine interprets one complete line. Lines without the data prefix
// (comments, event names, blanks) and undecodable payloads are skipped.
func (p *StreamParser) parseLine(line string) (StreamEvent, bool) {
	line = strings.TrimSpace(line)
	if line == "" || !strings.HasPrefix(line, "data:") {
		return StreamEvent{}, false
	}

	payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
	if payload == "[DONE]" {
		p.state = StateDone
		return StreamEvent{Done: true}, true
	}

	var delta streamDelta
	if err := json.Unmarshal([]byte(payload), &delta); err != nil {
		return StreamEvent{}, false
	}
	if len(delta.Choices) == 0 || delta.Choices[0].Delta.Content == "" {
		return StreamEvent{}, false
	}

	return StreamEvent{Token: delta.Choices[0].Delta.Content}, true
}
