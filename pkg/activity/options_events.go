package activity

import (
	"strings"
	"time"
)

const (
	// VerbOptionCommitted is emitted when a new value is committed for one option.
	VerbOptionCommitted = "option.committed"
	// VerbOptionsSaved is emitted after the store has been written to its backend.
	VerbOptionsSaved = "options.saved"
	// VerbOptionsLoaded is emitted after the store has been (re)loaded.
	VerbOptionsLoaded = "options.loaded"

	objectTypeOption = "option"
	objectTypeStore  = "options.store"
)

// OptionEventInput describes the common fields for option store events.
type OptionEventInput struct {
	ActorID    string
	UserID     string
	TenantID   string
	Channel    string
	Name       string
	Kind       string
	Location   string
	OldValue   string
	NewValue   string
	Unset      bool
	SnapshotID string
	Count      int
	Metadata   map[string]any
	OccurredAt time.Time
}

// BuildOptionCommittedEvent constructs the event for a committed option value.
// OldValue is omitted when the option was previously unset.
func BuildOptionCommittedEvent(input OptionEventInput) Event {
	metadata := cloneMap(input.Metadata)
	metadata = ensureMetadata(metadata)
	metadata["name"] = input.Name
	metadata["new_value"] = input.NewValue
	if !input.Unset {
		metadata["old_value"] = input.OldValue
	}
	if input.Kind != "" {
		metadata["kind"] = input.Kind
	}
	if input.Location != "" {
		metadata["location"] = input.Location
	}
	return buildEvent(VerbOptionCommitted, objectTypeOption, input.Name, input, metadata)
}

// BuildOptionsSavedEvent constructs the event for a completed save.
func BuildOptionsSavedEvent(input OptionEventInput) Event {
	return buildEvent(VerbOptionsSaved, objectTypeStore, input.Location, input, storeMetadata(input))
}

// BuildOptionsLoadedEvent constructs the event for a completed load.
func BuildOptionsLoadedEvent(input OptionEventInput) Event {
	return buildEvent(VerbOptionsLoaded, objectTypeStore, input.Location, input, storeMetadata(input))
}

func storeMetadata(input OptionEventInput) map[string]any {
	metadata := ensureMetadata(cloneMap(input.Metadata))
	metadata["count"] = input.Count
	if input.SnapshotID != "" {
		metadata["snapshot_id"] = input.SnapshotID
	}
	return metadata
}

func buildEvent(verb, objectType, objectID string, input OptionEventInput, metadata map[string]any) Event {
	objectID = strings.TrimSpace(objectID)
	if objectID == "" {
		objectID = strings.TrimSpace(input.SnapshotID)
	}
	if objectID == "" {
		objectID = objectType
	}
	return Event{
		Verb:       verb,
		ActorID:    strings.TrimSpace(input.ActorID),
		UserID:     strings.TrimSpace(input.UserID),
		TenantID:   strings.TrimSpace(input.TenantID),
		ObjectType: objectType,
		ObjectID:   objectID,
		Channel:    strings.TrimSpace(input.Channel),
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}

func ensureMetadata(meta map[string]any) map[string]any {
	if meta == nil {
		return map[string]any{}
	}
	return meta
}
