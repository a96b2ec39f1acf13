/* SPDX-License-Identifier: MPL-2.0
 * Copyright 2025 Tejus Pratap <tejzpr@gmail.com>
 *
 * See CONTRIBUTORS.md for full contributor list.
 */

package events

import (
	bandwidth "github.com/tejzpr/bandwidth-go-sdk"
	"github.com/tejzpr/bandwidth-go-sdk/calls"
	"github.com/tejzpr/bandwidth-go-sdk/conferences"
	"github.com/tejzpr/bandwidth-go-sdk/rest"
)

// CallScoped is implemented by events that refer to a call.
type CallScoped interface {
	Event
	CallIdentifier() string
	Call(client *rest.Client) (*calls.Call, error)
}

// ConferenceScoped is implemented by events that refer to a conference.
type ConferenceScoped interface {
	Event
	ConferenceIdentifier() string
	Conference(client *rest.Client) (*conferences.Conference, error)
}

// CallRef carries the call identifier of a call scoped event.
type CallRef struct {
	CallID string `json:"call_id,omitempty"`
}

// CallIdentifier returns the call id the event refers to.
func (r CallRef) CallIdentifier() string { return r.CallID }

// Call fetches the call the event refers to. A nil client means the
// process-wide current client.
func (r CallRef) Call(client *rest.Client) (*calls.Call, error) {
	client, err := clientOrCurrent(client)
	if err != nil {
		return nil, err
	}
	return calls.New(client, nil).Get(r.CallID)
}

// ConferenceRef carries the conference identifier of a conference scoped
// event.
type ConferenceRef struct {
	ConferenceID string `json:"conference_id,omitempty"`
}

// ConferenceIdentifier returns the conference id the event refers to.
func (r ConferenceRef) ConferenceIdentifier() string { return r.ConferenceID }

// Conference fetches the conference the event refers to. A nil client means
// the process-wide current client.
func (r ConferenceRef) Conference(client *rest.Client) (*conferences.Conference, error) {
	client, err := clientOrCurrent(client)
	if err != nil {
		return nil, err
	}
	return conferences.New(client, nil).Get(r.ConferenceID)
}

// Gather fetches the gather this event reports on.
func (e *GatherEvent) Gather(client *rest.Client) (*calls.Gather, error) {
	client, err := clientOrCurrent(client)
	if err != nil {
		return nil, err
	}
	return calls.New(client, nil).GetGather(e.CallID, e.GatherID)
}

// Member fetches the conference member this event reports on.
func (e *ConferenceMemberEvent) Member(client *rest.Client) (*conferences.Member, error) {
	client, err := clientOrCurrent(client)
	if err != nil {
		return nil, err
	}
	return conferences.New(client, nil).GetMember(e.ConferenceID, e.MemberID)
}

func clientOrCurrent(client *rest.Client) (*rest.Client, error) {
	if client != nil {
		return client, nil
	}
	return bandwidth.CurrentClient()
}
