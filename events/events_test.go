/* SPDX-License-Identifier: MPL-2.0
 * Copyright 2025 Tejus Pratap <tejzpr@gmail.com>
 *
 * See CONTRIBUTORS.md for full contributor list.
 */

package events

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDropsUnknownFields(t *testing.T) {
	event, err := Create([]byte(`{"eventType":"hangup","callId":"c1","extraneousField":"x","cause":"NORMAL_CLEARING"}`))
	require.NoError(t, err)

	hangup, ok := event.(*HangupEvent)
	require.True(t, ok, "expected *HangupEvent, got %T", event)
	assert.Equal(t, TypeHangup, hangup.Type())
	assert.Equal(t, "hangup", hangup.EventType)
	assert.Equal(t, "c1", hangup.CallID)
	assert.Equal(t, "NORMAL_CLEARING", hangup.Cause)
}

func TestCreateUnknownType(t *testing.T) {
	for _, payload := range []string{
		`{"eventType":"bogus","callId":"c1"}`,
		`{"event_type":"bogus"}`,
		`{"callId":"c1"}`,
		`{"eventType":7}`,
	} {
		_, err := Create([]byte(payload))
		require.Error(t, err, payload)
		assert.True(t, IsUnknownEvent(err), payload)
	}

	_, err := Create([]byte(`{"eventType":"bogus","callId":"c1"}`))
	var unknown *UnknownEventError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "bogus", unknown.Type)
	assert.Equal(t, "c1", unknown.Payload["call_id"])
	assert.Contains(t, err.Error(), "bogus")
}

func TestCreateInvalidPayload(t *testing.T) {
	for _, payload := range []string{``, `not json`, `[1,2]`, `null`, `"hangup"`} {
		_, err := Create([]byte(payload))
		require.Error(t, err, payload)
		assert.True(t, IsDecode(err), payload)
	}
}

func TestCreateLenientFields(t *testing.T) {
	testCases := map[string]struct {
		payload string
		check   func(t *testing.T, event Event)
	}{
		"empty time": {
			payload: `{"eventType":"hangup","callId":"c1","time":"","cause":"NORMAL_CLEARING"}`,
			check: func(t *testing.T, event Event) {
				hangup := event.(*HangupEvent)
				assert.True(t, hangup.Time.IsZero())
				assert.Equal(t, "NORMAL_CLEARING", hangup.Cause)
			},
		},
		"unparsable time": {
			payload: `{"eventType":"recording","callId":"c1","startTime":"yesterday","endTime":"2013-02-08T13:15:47Z"}`,
			check: func(t *testing.T, event Event) {
				recording := event.(*RecordingEvent)
				assert.True(t, recording.StartTime.IsZero())
				assert.Equal(t, time.Date(2013, 2, 8, 13, 15, 47, 0, time.UTC), recording.EndTime)
			},
		},
		"quoted count and booleans": {
			payload: `{"eventType":"conference-member","conferenceId":"conf-1","activeMembers":"2","hold":"false","mute":"true"}`,
			check: func(t *testing.T, event Event) {
				member := event.(*ConferenceMemberEvent)
				assert.Equal(t, 2, member.ActiveMembers)
				assert.False(t, member.Hold)
				assert.True(t, member.Mute)
				assert.Equal(t, "conf-1", member.ConferenceID)
			},
		},
		"mismatched count": {
			payload: `{"eventType":"conference-member","conferenceId":"conf-1","activeMembers":"many","hold":null,"mute":{}}`,
			check: func(t *testing.T, event Event) {
				member := event.(*ConferenceMemberEvent)
				assert.Zero(t, member.ActiveMembers)
				assert.False(t, member.Hold)
				assert.False(t, member.Mute)
				assert.Equal(t, "conf-1", member.ConferenceID)
			},
		},
		"empty dtmf duration": {
			payload: `{"eventType":"dtmf","callId":"c1","dtmfDigit":"5","dtmfDuration":""}`,
			check: func(t *testing.T, event Event) {
				dtmf := event.(*DtmfEvent)
				assert.Empty(t, dtmf.DtmfDuration)
				assert.Equal(t, "5", dtmf.DtmfDigit)
			},
		},
		"numeric strings": {
			payload: `{"eventType":"sms","from":12345,"to":"+15557654321","text":true,"messageId":5}`,
			check: func(t *testing.T, event Event) {
				sms := event.(*SmsEvent)
				assert.Equal(t, "12345", sms.From)
				assert.Equal(t, "true", sms.Text)
				assert.Equal(t, "5", sms.MessageID)
			},
		},
		"numeric call id": {
			payload: `{"eventType":"hangup","callId":5}`,
			check: func(t *testing.T, event Event) {
				assert.Equal(t, "5", event.(*HangupEvent).CallID)
			},
		},
		"object in string field": {
			payload: `{"eventType":"gather","callId":"c1","digits":{"value":"12"},"reason":"max-digits"}`,
			check: func(t *testing.T, event Event) {
				gather := event.(*GatherEvent)
				assert.Empty(t, gather.Digits)
				assert.Equal(t, "max-digits", gather.Reason)
			},
		},
	}

	for name, test := range testCases {
		t.Run(name, func(t *testing.T) {
			event, err := Create([]byte(test.payload))
			require.NoError(t, err)
			test.check(t, event)
		})
	}
}

func TestCreateIncomingCallFrom(t *testing.T) {
	event, err := Create([]byte(`{
		"eventType": "incomingcall",
		"callId": "c-1",
		"from": "+15551234567",
		"to": "+15557654321",
		"callUri": "https://api.catapult.inetwork.com/v1/users/u-1/calls/c-1",
		"callState": "active",
		"applicationId": "a-1",
		"time": "2013-02-08T13:15:47.587Z"
	}`))
	require.NoError(t, err)

	incoming := event.(*IncomingCallEvent)
	assert.Equal(t, "+15551234567", incoming.From)
	assert.Equal(t, "+15557654321", incoming.To)
	assert.Equal(t, "active", incoming.CallState)
	assert.Equal(t, "a-1", incoming.ApplicationID)
	assert.Equal(t, time.Date(2013, 2, 8, 13, 15, 47, 587000000, time.UTC), incoming.Time)
}

func TestCreateEmptyFrom(t *testing.T) {
	event, err := Create([]byte(`{"eventType":"timeout","callId":"c-1","from":"","to":"+15557654321"}`))
	require.NoError(t, err)
	timeout := event.(*TimeoutEvent)
	assert.Empty(t, timeout.From)
	assert.Equal(t, "+15557654321", timeout.To)
}

func TestFromFieldsDoesNotModifyInput(t *testing.T) {
	fields := map[string]any{"eventType": "sms", "from": "+1", "messageId": "m-1", "text": "hi"}
	event, err := FromFields(fields)
	require.NoError(t, err)

	sms := event.(*SmsEvent)
	assert.Equal(t, "+1", sms.From)
	assert.Equal(t, "m-1", sms.MessageID)
	assert.Equal(t, "hi", sms.Text)
	assert.Equal(t, map[string]any{"eventType": "sms", "from": "+1", "messageId": "m-1", "text": "hi"}, fields)
}

func TestNormalizeKeys(t *testing.T) {
	in := map[string]any{
		"eventType":     "conference-member",
		"conferenceId":  "conf-1",
		"activeMembers": 2,
		"nested":        map[string]any{"memberUri": "x", "list": []any{map[string]any{"innerKey": 1}}},
	}
	want := map[string]any{
		"event_type":     "conference-member",
		"conference_id":  "conf-1",
		"active_members": 2,
		"nested":         map[string]any{"member_uri": "x", "list": []any{map[string]any{"inner_key": 1}}},
	}

	got := NormalizeKeys(in)
	assert.Equal(t, want, got)
	assert.Equal(t, want, NormalizeKeys(got), "normalizing snake_case keys is a no-op")
}

func TestTypes(t *testing.T) {
	types := Types()
	assert.Len(t, types, 15)
	assert.Contains(t, types, TypeIncomingCall)
	assert.Contains(t, types, TypeConferenceSpeak)
	assert.True(t, sortedStrings(types))
}

func TestFieldsMatchStructTags(t *testing.T) {
	for _, eventType := range Types() {
		event := registry[eventType]()
		assert.Equal(t, eventType, event.Type())
		assert.ElementsMatch(t, event.Fields(), jsonFieldNames(reflect.TypeOf(event).Elem()), eventType)
	}
}

func TestFieldsReturnsCopy(t *testing.T) {
	event := &HangupEvent{}
	fields := event.Fields()
	fields[0] = "mutated"
	assert.Equal(t, "call_id", event.Fields()[0])
}

func TestDone(t *testing.T) {
	event, err := Create([]byte(`{"eventType":"playback","callId":"c-1","status":"done","tag":"greeting"}`))
	require.NoError(t, err)
	playback := event.(*PlaybackEvent)
	assert.True(t, playback.Done())
	assert.Equal(t, "greeting", playback.Tag)

	event, err = Create([]byte(`{"eventType":"speak","callId":"c-1","status":"started","state":"PLAYBACK_START"}`))
	require.NoError(t, err)
	speak := event.(*SpeakEvent)
	assert.False(t, speak.Done())
	assert.Equal(t, "PLAYBACK_START", speak.State)
}

func TestCreateTypedFields(t *testing.T) {
	event, err := Create([]byte(`{
		"eventType": "conference-member",
		"conferenceId": "conf-1",
		"callId": "c-1",
		"memberId": "m-1",
		"activeMembers": 3,
		"hold": false,
		"mute": true,
		"state": "active"
	}`))
	require.NoError(t, err)
	member := event.(*ConferenceMemberEvent)
	assert.Equal(t, "conf-1", member.ConferenceID)
	assert.Equal(t, "c-1", member.CallID)
	assert.Equal(t, 3, member.ActiveMembers)
	assert.True(t, member.Mute)
	assert.False(t, member.Hold)

	for _, payload := range []string{
		`{"eventType":"dtmf","callId":"c-1","dtmfDigit":"5","dtmfDuration":"150"}`,
		`{"eventType":"dtmf","callId":"c-1","dtmfDigit":"5","dtmfDuration":150}`,
	} {
		event, err := Create([]byte(payload))
		require.NoError(t, err, payload)
		dtmf := event.(*DtmfEvent)
		assert.Equal(t, "5", dtmf.DtmfDigit)
		duration, err := dtmf.DtmfDuration.Int64()
		require.NoError(t, err)
		assert.EqualValues(t, 150, duration)
	}
}

func TestScopes(t *testing.T) {
	callScoped := map[string]bool{}
	conferenceScoped := map[string]bool{}
	for _, eventType := range Types() {
		event := registry[eventType]()
		_, callScoped[eventType] = event.(CallScoped)
		_, conferenceScoped[eventType] = event.(ConferenceScoped)
	}

	assert.True(t, callScoped[TypeHangup])
	assert.True(t, callScoped[TypeRecording])
	assert.False(t, callScoped[TypeSms])
	assert.False(t, callScoped[TypeConference])
	assert.True(t, callScoped[TypeConferenceMember])
	assert.True(t, conferenceScoped[TypeConferenceMember])
	assert.True(t, conferenceScoped[TypeConferenceSpeak])
	assert.False(t, conferenceScoped[TypeGather])
	assert.False(t, conferenceScoped[TypeSms])
}

func jsonFieldNames(typ reflect.Type) []string {
	var names []string
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.Anonymous {
			names = append(names, jsonFieldNames(field.Type)...)
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		names = append(names, name)
	}
	return names
}

func sortedStrings(values []string) bool {
	for i := 1; i < len(values); i++ {
		if values[i-1] > values[i] {
			return false
		}
	}
	return true
}
