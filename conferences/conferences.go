/* SPDX-License-Identifier: MPL-2.0
 * Copyright 2025 Tejus Pratap <tejzpr@gmail.com>
 *
 * See CONTRIBUTORS.md for full contributor list.
 */

package conferences

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/tejzpr/bandwidth-go-sdk/rest"
)

// Conference represents a Catapult conference
type Conference struct {
	ID            string     `json:"id,omitempty"`
	State         string     `json:"state,omitempty"`
	From          string     `json:"from,omitempty"`
	CreatedTime   *time.Time `json:"createdTime,omitempty"`
	CompletedTime *time.Time `json:"completedTime,omitempty"`
	ActiveMembers int        `json:"activeMembers,omitempty"`
	Mute          bool       `json:"mute,omitempty"`
	Hold          bool       `json:"hold,omitempty"`
	CallbackURL   string     `json:"callbackUrl,omitempty"`
	Tag           string     `json:"tag,omitempty"`
}

// Member represents a call participating in a conference
type Member struct {
	ID          string     `json:"id,omitempty"`
	State       string     `json:"state,omitempty"`
	Call        string     `json:"call,omitempty"`
	Hold        bool       `json:"hold,omitempty"`
	Mute        bool       `json:"mute,omitempty"`
	JoinTime    *time.Time `json:"joinTime,omitempty"`
	RemovedTime *time.Time `json:"removedTime,omitempty"`
}

// Config holds the configuration for the Conferences plugin
type Config struct {
	// Any configuration settings for the conferences plugin can go here
}

// DefaultConfig returns the default configuration for the Conferences plugin
func DefaultConfig() *Config {
	return &Config{}
}

// Client is the conferences API client
type Client struct {
	restClient *rest.Client
	config     *Config
}

// New creates a new Conferences plugin
func New(restClient *rest.Client, config *Config) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	return &Client{
		restClient: restClient,
		config:     config,
	}
}

func (c *Client) conferencePath(conferenceID string) string {
	return fmt.Sprintf("users/%s/conferences/%s",
		url.PathEscape(c.restClient.PrincipalID()), url.PathEscape(conferenceID))
}

// Get returns the current state of a conference
func (c *Client) Get(conferenceID string) (*Conference, error) {
	return c.GetWithContext(context.Background(), conferenceID)
}

// GetWithContext returns the current state of a conference
func (c *Client) GetWithContext(ctx context.Context, conferenceID string) (*Conference, error) {
	if conferenceID == "" {
		return nil, fmt.Errorf("conferenceID is required")
	}

	resp, err := c.restClient.RequestWithRetry(ctx, http.MethodGet, c.conferencePath(conferenceID), nil, nil)
	if err != nil {
		return nil, err
	}

	var conference Conference
	if err := rest.ParseResponse(resp, &conference); err != nil {
		return nil, err
	}

	return &conference, nil
}

// GetMember returns a single member of a conference
func (c *Client) GetMember(conferenceID, memberID string) (*Member, error) {
	if conferenceID == "" {
		return nil, fmt.Errorf("conferenceID is required")
	}
	if memberID == "" {
		return nil, fmt.Errorf("memberID is required")
	}

	path := fmt.Sprintf("%s/members/%s", c.conferencePath(conferenceID), url.PathEscape(memberID))
	resp, err := c.restClient.Request(http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var member Member
	if err := rest.ParseResponse(resp, &member); err != nil {
		return nil, err
	}

	return &member, nil
}
