/* SPDX-License-Identifier: MPL-2.0
 * Copyright 2025 Tejus Pratap <tejzpr@gmail.com>
 *
 * See CONTRIBUTORS.md for full contributor list.
 */

package events

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/iancoleman/strcase"
)

// registry maps each event type to a constructor for its empty event.
var registry = map[string]func() Event{
	TypeIncomingCall:       func() Event { return &IncomingCallEvent{} },
	TypeAnswer:             func() Event { return &AnswerCallEvent{} },
	TypeHangup:             func() Event { return &HangupEvent{} },
	TypePlayback:           func() Event { return &PlaybackEvent{} },
	TypeGather:             func() Event { return &GatherEvent{} },
	TypeDtmf:               func() Event { return &DtmfEvent{} },
	TypeSpeak:              func() Event { return &SpeakEvent{} },
	TypeError:              func() Event { return &ErrorEvent{} },
	TypeTimeout:            func() Event { return &TimeoutEvent{} },
	TypeRecording:          func() Event { return &RecordingEvent{} },
	TypeSms:                func() Event { return &SmsEvent{} },
	TypeConference:         func() Event { return &ConferenceEvent{} },
	TypeConferenceMember:   func() Event { return &ConferenceMemberEvent{} },
	TypeConferencePlayback: func() Event { return &ConferencePlaybackEvent{} },
	TypeConferenceSpeak:    func() Event { return &ConferenceSpeakEvent{} },
}

// Types returns every registered event type, sorted.
func Types() []string {
	types := make([]string, 0, len(registry))
	for t := range registry {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Create decodes a raw callback body, a JSON object with camelCase keys,
// into the event registered for its eventType.
func Create(data []byte) (Event, error) {
	var fields map[string]any
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&fields); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if fields == nil {
		return nil, &DecodeError{Err: fmt.Errorf("payload is not a JSON object")}
	}
	return FromFields(fields)
}

// FromFields builds an event from an already decoded payload. Keys are
// normalized to snake_case, a non-empty "from" is renamed to "from_", and
// keys the event does not declare are dropped. A declared key whose value
// cannot be read as the field's type is dropped as well, so FromFields only
// fails for an unknown event type. The input map is not modified.
func FromFields(fields map[string]any) (Event, error) {
	normalized := NormalizeKeys(fields)

	eventType, _ := normalized["event_type"].(string)
	newEvent, ok := registry[eventType]
	if !ok {
		return nil, &UnknownEventError{Type: eventType, Payload: normalized}
	}

	if from, ok := normalized["from"]; ok {
		delete(normalized, "from")
		if from != nil && from != "" {
			normalized["from_"] = from
		}
	}

	event := newEvent()
	for _, name := range event.Fields() {
		if value, ok := normalized[name]; ok && value != nil {
			setField(event, name, value)
		}
	}
	return event, nil
}

// setField decodes a single payload value into the event field tagged name.
// A value whose shape does not match the field is coerced when it has an
// obvious scalar reading, such as "2" for a count or 12345 for a string, and
// dropped otherwise, leaving the field at its zero value.
func setField(event Event, name string, value any) {
	for _, candidate := range append([]any{value}, coercions(value)...) {
		raw, err := json.Marshal(map[string]any{name: candidate})
		if err != nil {
			continue
		}
		if err := json.Unmarshal(raw, event); err == nil {
			return
		}
	}
}

// coercions lists alternative readings of a scalar value, in the order they
// are tried.
func coercions(value any) []any {
	switch v := value.(type) {
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil
		}
		var out []any
		if _, err := strconv.ParseFloat(s, 64); err == nil {
			out = append(out, json.Number(s))
		}
		if b, err := strconv.ParseBool(s); err == nil {
			out = append(out, b)
		}
		return out
	case json.Number:
		return []any{v.String()}
	case bool, float64, float32, int, int64, int32, uint, uint64, uint32:
		return []any{fmt.Sprint(v)}
	default:
		return nil
	}
}

// NormalizeKeys returns a copy of fields with every key, including keys of
// nested objects, converted from camelCase to snake_case. Keys already in
// snake_case are left untouched.
func NormalizeKeys(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for key, value := range fields {
		out[normalizeKey(key)] = normalizeValue(value)
	}
	return out
}

func normalizeValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return NormalizeKeys(v)
	case []any:
		items := make([]any, len(v))
		for i, item := range v {
			items[i] = normalizeValue(item)
		}
		return items
	default:
		return value
	}
}

func normalizeKey(key string) string {
	if strings.ToLower(key) == key && !strings.ContainsAny(key, "- .") {
		return key
	}
	return strcase.ToSnake(key)
}
