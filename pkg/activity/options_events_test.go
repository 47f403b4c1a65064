package activity

import (
	"context"
	"testing"
)

func TestBuildOptionCommittedEvent(t *testing.T) {
	event := BuildOptionCommittedEvent(OptionEventInput{
		ActorID:  " operator ",
		Name:     "LIKE",
		Kind:     "int",
		Location: "/tmp/options.json",
		OldValue: "3",
		NewValue: "4",
		Metadata: map[string]any{"custom": "value"},
	})

	if event.Verb != VerbOptionCommitted {
		t.Fatalf("expected verb %s got %s", VerbOptionCommitted, event.Verb)
	}
	if event.ObjectType != "option" || event.ObjectID != "LIKE" {
		t.Fatalf("unexpected object fields: %+v", event)
	}
	if event.ActorID != "operator" {
		t.Fatalf("expected trimmed actor, got %q", event.ActorID)
	}
	if event.Metadata["old_value"] != "3" || event.Metadata["new_value"] != "4" {
		t.Fatalf("expected old/new metadata, got %+v", event.Metadata)
	}
	if event.Metadata["custom"] != "value" || event.Metadata["kind"] != "int" {
		t.Fatalf("expected merged metadata, got %+v", event.Metadata)
	}
}

func TestBuildOptionCommittedEventUnset(t *testing.T) {
	event := BuildOptionCommittedEvent(OptionEventInput{Name: "SUBSCRIBE", NewValue: "true", Unset: true})
	if _, ok := event.Metadata["old_value"]; ok {
		t.Fatalf("unset option should not report old_value")
	}
}

func TestBuildOptionsSavedEventFallsBackToSnapshotID(t *testing.T) {
	event := BuildOptionsSavedEvent(OptionEventInput{SnapshotID: "snap-1", Count: 2})
	if event.Verb != VerbOptionsSaved || event.ObjectType != "options.store" {
		t.Fatalf("unexpected event %+v", event)
	}
	if event.ObjectID != "snap-1" {
		t.Fatalf("expected snapshot id as object id, got %q", event.ObjectID)
	}
	if event.Metadata["count"] != 2 || event.Metadata["snapshot_id"] != "snap-1" {
		t.Fatalf("unexpected metadata %+v", event.Metadata)
	}
}

func TestBuiltEventsPassHookValidation(t *testing.T) {
	capture := &CaptureHook{}
	emitter := NewEmitter(Hooks{capture}, Config{Enabled: true})

	events := []Event{
		BuildOptionCommittedEvent(OptionEventInput{Name: "LIKE", NewValue: "1"}),
		BuildOptionsSavedEvent(OptionEventInput{Location: "memory"}),
		BuildOptionsLoadedEvent(OptionEventInput{}),
	}
	for _, event := range events {
		if err := emitter.Emit(context.Background(), event); err != nil {
			t.Fatalf("emit: %v", err)
		}
	}
	if len(capture.Events) != 3 {
		t.Fatalf("expected 3 captured events, got %d", len(capture.Events))
	}
	for _, event := range capture.Events {
		if event.Channel != DefaultChannel {
			t.Fatalf("expected default channel, got %q", event.Channel)
		}
		if event.OccurredAt.IsZero() {
			t.Fatalf("expected timestamp to be filled")
		}
	}
}
