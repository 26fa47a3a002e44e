package moonshot

import (
	"testing"
)

func chunkEvent(content string) string {
	return `data: {"choices":[{"delta":{"content":"` + content + `"}}]}` + "\n"
}

func TestStreamParser_WholeLines(t *testing.T) {
	p := NewStreamParser()

	events := p.Feed([]byte(chunkEvent("Bon") + chunkEvent("jour") + "data: [DONE]\n"))

	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if events[0].Token != "Bon" || events[1].Token != "jour" {
		t.Fatalf("unexpected tokens: %q %q", events[0].Token, events[1].Token)
	}
	if !events[2].Done {
		t.Fatal("expected terminal done event")
	}
	if p.State() != StateDone {
		t.Fatalf("expected StateDone, got %v", p.State())
	}
}

func TestStreamParser_SplitAcrossChunks(t *testing.T) {
	p := NewStreamParser()
	full := chunkEvent("Bonjour")

	// Split mid-JSON: no event until the newline arrives.
	events := p.Feed([]byte(full[:13]))
	if len(events) != 0 {
		t.Fatalf("expected no events from partial chunk, got %d", len(events))
	}
	if p.State() != StateAccumulatingPartial {
		t.Fatalf("expected StateAccumulatingPartial, got %v", p.State())
	}

	events = p.Feed([]byte(full[13:]))
	if len(events) != 1 || events[0].Token != "Bonjour" {
		t.Fatalf("expected single Bonjour token, got %v", events)
	}
	if p.State() != StateAwaitingLine {
		t.Fatalf("expected StateAwaitingLine, got %v", p.State())
	}
}

func TestStreamParser_SkipsMalformedAndBlankLines(t *testing.T) {
	p := NewStreamParser()

	input := "\n" + // blank keep-alive
		": comment line\n" +
		"data: {not json}\n" +
		chunkEvent("ok") +
		"data: {\"choices\":[]}\n"

	events := p.Feed([]byte(input))
	if len(events) != 1 || events[0].Token != "ok" {
		t.Fatalf("expected only the valid token event, got %v", events)
	}
}

func TestStreamParser_IgnoresInputAfterDone(t *testing.T) {
	p := NewStreamParser()

	p.Feed([]byte("data: [DONE]\n"))
	events := p.Feed([]byte(chunkEvent("late")))
	if len(events) != 0 {
		t.Fatalf("expected no events after done, got %v", events)
	}
}

func TestStreamParser_CRLFLines(t *testing.T) {
	p := NewStreamParser()

	events := p.Feed([]byte(`data: {"choices":[{"delta":{"content":"ok"}}]}` + "\r\n"))
	if len(events) != 1 || events[0].Token != "ok" {
		t.Fatalf("expected ok token from CRLF line, got %v", events)
	}
}
