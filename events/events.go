/* SPDX-License-Identifier: MPL-2.0
 * Copyright 2025 Tejus Pratap <tejzpr@gmail.com>
 *
 * See CONTRIBUTORS.md for full contributor list.
 */

// Package events decodes Bandwidth callback payloads into typed events.
//
// Every event type declares the closed set of fields it understands. Keys
// in a payload that are not part of that set are dropped silently, so new
// fields added to the callback format never break decoding.
package events

import (
	"encoding/json"
	"slices"
	"time"
)

// Event discriminators, as sent in the eventType field of a callback.
const (
	TypeIncomingCall       = "incomingcall"
	TypeAnswer             = "answer"
	TypeHangup             = "hangup"
	TypePlayback           = "playback"
	TypeGather             = "gather"
	TypeDtmf               = "dtmf"
	TypeSpeak              = "speak"
	TypeError              = "error"
	TypeTimeout            = "timeout"
	TypeRecording          = "recording"
	TypeSms                = "sms"
	TypeConference         = "conference"
	TypeConferenceMember   = "conference-member"
	TypeConferencePlayback = "conference-playback"
	TypeConferenceSpeak    = "conference-speak"
)

// StatusDone is the playback/speak status reported when media finished.
const StatusDone = "done"

// Event is a decoded callback.
type Event interface {
	// Type returns the discriminator this event was registered under.
	Type() string

	// Fields returns the normalized payload keys this event accepts.
	Fields() []string
}

var (
	incomingCallFields = []string{"call_id", "event_type", "from_", "to", "call_uri", "call_state", "time", "application_id", "tag"}
	hangupFields       = []string{"call_id", "event_type", "from_", "to", "call_uri", "call_state", "time", "cause", "tag"}
	playbackFields     = []string{"call_id", "event_type", "call_uri", "status", "time", "tag"}
	gatherFields       = []string{"call_id", "event_type", "state", "digits", "tag", "time", "gather_id", "reason"}
	dtmfFields         = []string{"call_id", "event_type", "call_uri", "time", "dtmf_digit", "dtmf_duration", "tag"}
	speakFields        = []string{"call_id", "event_type", "status", "state", "call_uri", "tag", "time"}
	errorFields        = []string{"call_id", "event_type", "from_", "to", "call_uri", "call_state", "time", "tag"}
	timeoutFields      = []string{"call_id", "event_type", "from_", "to", "call_uri", "time", "tag"}
	recordingFields    = []string{"call_id", "event_type", "recording_id", "recording_uri", "state", "status", "start_time", "end_time", "tag"}
	smsFields          = []string{"event_type", "direction", "message_id", "message_uri", "from_", "to", "text", "application_id", "time", "state"}
	conferenceFields   = []string{"event_type", "conference_id", "conference_uri", "status", "created_time", "completed_time"}
	memberFields       = []string{"event_type", "conference_id", "call_id", "active_members", "hold", "member_id", "member_uri", "mute", "state", "time"}
	confMediaFields    = []string{"event_type", "conference_id", "conference_uri", "status", "time"}
)

// ---- Call events ----

// IncomingCallEvent is sent to the application associated with the called
// number when an incoming call arrives.
type IncomingCallEvent struct {
	CallRef
	EventType     string    `json:"event_type,omitempty"`
	From          string    `json:"from_,omitempty"`
	To            string    `json:"to,omitempty"`
	CallURI       string    `json:"call_uri,omitempty"`
	CallState     string    `json:"call_state,omitempty"`
	ApplicationID string    `json:"application_id,omitempty"`
	Time          time.Time `json:"time,omitzero"`
	Tag           string    `json:"tag,omitempty"`
}

func (*IncomingCallEvent) Type() string     { return TypeIncomingCall }
func (*IncomingCallEvent) Fields() []string { return slices.Clone(incomingCallFields) }

// AnswerCallEvent is sent when a call is answered.
type AnswerCallEvent struct {
	CallRef
	EventType     string    `json:"event_type,omitempty"`
	From          string    `json:"from_,omitempty"`
	To            string    `json:"to,omitempty"`
	CallURI       string    `json:"call_uri,omitempty"`
	CallState     string    `json:"call_state,omitempty"`
	ApplicationID string    `json:"application_id,omitempty"`
	Time          time.Time `json:"time,omitzero"`
	Tag           string    `json:"tag,omitempty"`
}

func (*AnswerCallEvent) Type() string     { return TypeAnswer }
func (*AnswerCallEvent) Fields() []string { return slices.Clone(incomingCallFields) }

// HangupEvent is sent when a call ends.
type HangupEvent struct {
	CallRef
	EventType string    `json:"event_type,omitempty"`
	From      string    `json:"from_,omitempty"`
	To        string    `json:"to,omitempty"`
	CallURI   string    `json:"call_uri,omitempty"`
	CallState string    `json:"call_state,omitempty"`
	Cause     string    `json:"cause,omitempty"`
	Time      time.Time `json:"time,omitzero"`
	Tag       string    `json:"tag,omitempty"`
}

func (*HangupEvent) Type() string     { return TypeHangup }
func (*HangupEvent) Fields() []string { return slices.Clone(hangupFields) }

// PlaybackEvent is sent when audio file playback starts or stops.
type PlaybackEvent struct {
	CallRef
	EventType string    `json:"event_type,omitempty"`
	CallURI   string    `json:"call_uri,omitempty"`
	Status    string    `json:"status,omitempty"`
	Time      time.Time `json:"time,omitzero"`
	Tag       string    `json:"tag,omitempty"`
}

func (*PlaybackEvent) Type() string     { return TypePlayback }
func (*PlaybackEvent) Fields() []string { return slices.Clone(playbackFields) }

// Done reports whether playback has finished.
func (e *PlaybackEvent) Done() bool { return e.Status == StatusDone }

// GatherEvent is sent when a DTMF gather completes or fails.
type GatherEvent struct {
	CallRef
	EventType string    `json:"event_type,omitempty"`
	GatherID  string    `json:"gather_id,omitempty"`
	State     string    `json:"state,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	Digits    string    `json:"digits,omitempty"`
	Time      time.Time `json:"time,omitzero"`
	Tag       string    `json:"tag,omitempty"`
}

func (*GatherEvent) Type() string     { return TypeGather }
func (*GatherEvent) Fields() []string { return slices.Clone(gatherFields) }

// DtmfEvent is sent for every DTMF digit pressed on a call.
type DtmfEvent struct {
	CallRef
	EventType    string      `json:"event_type,omitempty"`
	CallURI      string      `json:"call_uri,omitempty"`
	DtmfDigit    string      `json:"dtmf_digit,omitempty"`
	DtmfDuration json.Number `json:"dtmf_duration,omitempty"`
	Time         time.Time   `json:"time,omitzero"`
	Tag          string      `json:"tag,omitempty"`
}

func (*DtmfEvent) Type() string     { return TypeDtmf }
func (*DtmfEvent) Fields() []string { return slices.Clone(dtmfFields) }

// SpeakEvent is sent when text-to-speech starts or stops.
type SpeakEvent struct {
	CallRef
	EventType string    `json:"event_type,omitempty"`
	CallURI   string    `json:"call_uri,omitempty"`
	Status    string    `json:"status,omitempty"`
	State     string    `json:"state,omitempty"`
	Time      time.Time `json:"time,omitzero"`
	Tag       string    `json:"tag,omitempty"`
}

func (*SpeakEvent) Type() string     { return TypeSpeak }
func (*SpeakEvent) Fields() []string { return slices.Clone(speakFields) }

// Done reports whether speaking has finished.
func (e *SpeakEvent) Done() bool { return e.Status == StatusDone }

// ErrorEvent is sent when a call fails.
type ErrorEvent struct {
	CallRef
	EventType string    `json:"event_type,omitempty"`
	From      string    `json:"from_,omitempty"`
	To        string    `json:"to,omitempty"`
	CallURI   string    `json:"call_uri,omitempty"`
	CallState string    `json:"call_state,omitempty"`
	Time      time.Time `json:"time,omitzero"`
	Tag       string    `json:"tag,omitempty"`
}

func (*ErrorEvent) Type() string     { return TypeError }
func (*ErrorEvent) Fields() []string { return slices.Clone(errorFields) }

// TimeoutEvent is sent when an outbound call is not answered in time.
type TimeoutEvent struct {
	CallRef
	EventType string    `json:"event_type,omitempty"`
	From      string    `json:"from_,omitempty"`
	To        string    `json:"to,omitempty"`
	CallURI   string    `json:"call_uri,omitempty"`
	Time      time.Time `json:"time,omitzero"`
	Tag       string    `json:"tag,omitempty"`
}

func (*TimeoutEvent) Type() string     { return TypeTimeout }
func (*TimeoutEvent) Fields() []string { return slices.Clone(timeoutFields) }

// RecordingEvent is sent when a recording is saved or fails to save.
type RecordingEvent struct {
	CallRef
	EventType    string    `json:"event_type,omitempty"`
	RecordingID  string    `json:"recording_id,omitempty"`
	RecordingURI string    `json:"recording_uri,omitempty"`
	State        string    `json:"state,omitempty"`
	Status       string    `json:"status,omitempty"`
	StartTime    time.Time `json:"start_time,omitzero"`
	EndTime      time.Time `json:"end_time,omitzero"`
	Tag          string    `json:"tag,omitempty"`
}

func (*RecordingEvent) Type() string     { return TypeRecording }
func (*RecordingEvent) Fields() []string { return slices.Clone(recordingFields) }

// ---- Messaging events ----

// SmsEvent is sent when an SMS is sent or received.
type SmsEvent struct {
	EventType     string    `json:"event_type,omitempty"`
	Direction     string    `json:"direction,omitempty"`
	MessageID     string    `json:"message_id,omitempty"`
	MessageURI    string    `json:"message_uri,omitempty"`
	From          string    `json:"from_,omitempty"`
	To            string    `json:"to,omitempty"`
	Text          string    `json:"text,omitempty"`
	ApplicationID string    `json:"application_id,omitempty"`
	State         string    `json:"state,omitempty"`
	Time          time.Time `json:"time,omitzero"`
}

func (*SmsEvent) Type() string     { return TypeSms }
func (*SmsEvent) Fields() []string { return slices.Clone(smsFields) }

// ---- Conference events ----

// ConferenceEvent is sent when a conference is created or completed.
type ConferenceEvent struct {
	ConferenceRef
	EventType     string    `json:"event_type,omitempty"`
	ConferenceURI string    `json:"conference_uri,omitempty"`
	Status        string    `json:"status,omitempty"`
	CreatedTime   time.Time `json:"created_time,omitzero"`
	CompletedTime time.Time `json:"completed_time,omitzero"`
}

func (*ConferenceEvent) Type() string     { return TypeConference }
func (*ConferenceEvent) Fields() []string { return slices.Clone(conferenceFields) }

// ConferenceMemberEvent is sent when a member joins or leaves a conference,
// or is muted or put on hold.
type ConferenceMemberEvent struct {
	ConferenceRef
	CallRef
	EventType     string    `json:"event_type,omitempty"`
	MemberID      string    `json:"member_id,omitempty"`
	MemberURI     string    `json:"member_uri,omitempty"`
	ActiveMembers int       `json:"active_members,omitempty"`
	Hold          bool      `json:"hold,omitempty"`
	Mute          bool      `json:"mute,omitempty"`
	State         string    `json:"state,omitempty"`
	Time          time.Time `json:"time,omitzero"`
}

func (*ConferenceMemberEvent) Type() string     { return TypeConferenceMember }
func (*ConferenceMemberEvent) Fields() []string { return slices.Clone(memberFields) }

// ConferencePlaybackEvent is sent when audio playback starts or stops in a
// conference.
type ConferencePlaybackEvent struct {
	ConferenceRef
	EventType     string    `json:"event_type,omitempty"`
	ConferenceURI string    `json:"conference_uri,omitempty"`
	Status        string    `json:"status,omitempty"`
	Time          time.Time `json:"time,omitzero"`
}

func (*ConferencePlaybackEvent) Type() string     { return TypeConferencePlayback }
func (*ConferencePlaybackEvent) Fields() []string { return slices.Clone(confMediaFields) }

// ConferenceSpeakEvent is sent when text-to-speech starts or stops in a
// conference.
type ConferenceSpeakEvent struct {
	ConferenceRef
	EventType     string    `json:"event_type,omitempty"`
	ConferenceURI string    `json:"conference_uri,omitempty"`
	Status        string    `json:"status,omitempty"`
	Time          time.Time `json:"time,omitzero"`
}

func (*ConferenceSpeakEvent) Type() string     { return TypeConferenceSpeak }
func (*ConferenceSpeakEvent) Fields() []string { return slices.Clone(confMediaFields) }
