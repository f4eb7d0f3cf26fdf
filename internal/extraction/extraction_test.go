package extraction

import (
	"testing"

	"github.com/anubhavkohli2718/call-summarzy/internal/diarize"
)

func labeled(speaker string, start float64, text string) diarize.LabeledSegment {
	return diarize.LabeledSegment{Speaker: speaker, Start: start, End: start + 3, Text: text}
}

func TestActionItemsCommitmentAssignsSpeaker(t *testing.T) {
	segments := []diarize.LabeledSegment{
		labeled("Fania", 0, "Your replacement ships out shortly."),
		labeled("Anthony", 166.6, "I will process that from here."),
	}

	items := NewExtractor(DefaultConfig()).ActionItems(segments)
	if len(items) != 1 {
		t.Fatalf("expected 1 action item, got %d: %+v", len(items), items)
	}

	// A commitment stays with its speaker even when another party is on
	// the call.
	item := items[0]
	if item.Assignee != "Anthony" || item.Speaker != "Anthony" {
		t.Errorf("expected Anthony as assignee and speaker, got %q / %q", item.Assignee, item.Speaker)
	}
	if item.Description != "process that from here" {
		t.Errorf("expected description %q, got %q", "process that from here", item.Description)
	}
	if item.Timestamp != 166.6 {
		t.Errorf("expected timestamp 166.6, got %v", item.Timestamp)
	}
	if item.Date != nil || item.Time != nil {
		t.Errorf("expected no date or time, got %v / %v", item.Date, item.Time)
	}
}

func TestActionItemsDelegationAssignsOtherParty(t *testing.T) {
	segments := []diarize.LabeledSegment{
		labeled("Fania", 10, "Can you confirm that?"),
		labeled("Anthony", 15, "Sure, it's 42 Elm Street."),
	}

	items := NewExtractor(DefaultConfig()).ActionItems(segments)
	if len(items) != 1 {
		t.Fatalf("expected 1 action item, got %d: %+v", len(items), items)
	}

	item := items[0]
	if item.Assignee != "Anthony" {
		t.Errorf("delegation should assign the other party, got %q", item.Assignee)
	}
	if item.Speaker != "Fania" {
		t.Errorf("expected speaker Fania, got %q", item.Speaker)
	}
	if item.Description != "confirm that" {
		t.Errorf("unexpected description %q", item.Description)
	}
}

func TestActionItemsDelegationWithoutOtherParty(t *testing.T) {
	segments := []diarize.LabeledSegment{
		labeled("Speaker 1", 0, "Please send the report when you can."),
	}

	items := NewExtractor(DefaultConfig()).ActionItems(segments)
	if len(items) != 1 {
		t.Fatalf("expected 1 action item, got %d", len(items))
	}
	if items[0].Assignee != "Speaker 1" {
		t.Errorf("lone speaker should stay the assignee, got %q", items[0].Assignee)
	}
}

func TestActionItemsCarryDateAndTime(t *testing.T) {
	segments := []diarize.LabeledSegment{
		labeled("Fania", 120, "You should be receiving that in three to four days."),
		labeled("Fania", 140, "I'll call you back Friday at 3:30 PM."),
	}

	items := NewExtractor(DefaultConfig()).ActionItems(segments)
	if len(items) != 2 {
		t.Fatalf("expected 2 action items, got %d: %+v", len(items), items)
	}

	first := items[0]
	if first.Date == nil || *first.Date != "three to four days" {
		t.Errorf("expected date %q, got %v", "three to four days", first.Date)
	}
	if first.Time != nil {
		t.Errorf("expected no time, got %q", *first.Time)
	}

	second := items[1]
	if second.Date == nil || *second.Date != "Friday" {
		t.Errorf("expected date %q, got %v", "Friday", second.Date)
	}
	if second.Time == nil || *second.Time != "3:30 PM" {
		t.Errorf("expected time %q, got %v", "3:30 PM", second.Time)
	}
	if second.Description != "call you back Friday at 3:30 PM" {
		t.Errorf("unexpected description %q", second.Description)
	}
}

func TestActionItemsAtMostOnePerSegment(t *testing.T) {
	segments := []diarize.LabeledSegment{
		labeled("Gina", 0, "I will check the invoice and I'll email you, can you stay on the line?"),
	}

	items := NewExtractor(DefaultConfig()).ActionItems(segments)
	if len(items) != 1 {
		t.Fatalf("expected 1 action item for a segment with several triggers, got %d", len(items))
	}
	if items[0].Description != "check the invoice and I'll email you, can you stay on the line" {
		t.Errorf("unexpected description %q", items[0].Description)
	}
}

func TestActionItemsTriggerOrderDecides(t *testing.T) {
	cfg := Config{
		CommitmentTriggers: []string{"i'll", "i will"},
		DelegationTriggers: nil,
	}
	segments := []diarize.LabeledSegment{
		labeled("Gina", 0, "I will send it, or I'll drop it off."),
	}

	items := NewExtractor(cfg).ActionItems(segments)
	if len(items) != 1 {
		t.Fatalf("expected 1 action item, got %d", len(items))
	}
	// "i'll" is configured first, so it wins even though "I will" appears
	// earlier in the text.
	if items[0].Description != "drop it off" {
		t.Errorf("expected the first configured trigger to win, got %q", items[0].Description)
	}
}

func TestActionItemsIgnoresPlainConversation(t *testing.T) {
	segments := []diarize.LabeledSegment{
		labeled("Fania", 0, "Thank you for calling, how are you today?"),
		labeled("Anthony", 5, "Doing well, thanks for asking."),
	}

	if items := NewExtractor(DefaultConfig()).ActionItems(segments); len(items) != 0 {
		t.Fatalf("expected no action items, got %+v", items)
	}
	if items := NewExtractor(DefaultConfig()).ActionItems(nil); len(items) != 0 {
		t.Fatalf("expected no action items for empty input, got %+v", items)
	}
}

func TestActionItemsEmptyClauseProducesNothing(t *testing.T) {
	segments := []diarize.LabeledSegment{
		labeled("Anthony", 0, "Whatever you think I will."),
	}

	if items := NewExtractor(DefaultConfig()).ActionItems(segments); len(items) != 0 {
		t.Fatalf("expected no action items for an empty clause, got %+v", items)
	}
}

func TestActionItemsPreserveSegmentOrder(t *testing.T) {
	segments := []diarize.LabeledSegment{
		labeled("Fania", 30, "I'll start the refund right away."),
		labeled("Anthony", 60, "Could you email me a receipt?"),
		labeled("Fania", 90, "Let me flag the account as well."),
	}

	items := NewExtractor(DefaultConfig()).ActionItems(segments)
	if len(items) != 3 {
		t.Fatalf("expected 3 action items, got %d", len(items))
	}
	for i := 1; i < len(items); i++ {
		if items[i].Timestamp <= items[i-1].Timestamp {
			t.Errorf("items out of order: %v after %v", items[i].Timestamp, items[i-1].Timestamp)
		}
	}
}
