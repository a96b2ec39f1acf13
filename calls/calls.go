/* SPDX-License-Identifier: MPL-2.0
 * Copyright 2025 Tejus Pratap <tejzpr@gmail.com>
 *
 * See CONTRIBUTORS.md for full contributor list.
 */

package calls

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tejzpr/bandwidth-go-sdk/rest"
)

// Call represents a Catapult voice call
type Call struct {
	ID                 string     `json:"id,omitempty"`
	Direction          string     `json:"direction,omitempty"`
	From               string     `json:"from,omitempty"`
	To                 string     `json:"to,omitempty"`
	State              string     `json:"state,omitempty"`
	StartTime          *time.Time `json:"startTime,omitempty"`
	ActiveTime         *time.Time `json:"activeTime,omitempty"`
	EndTime            *time.Time `json:"endTime,omitempty"`
	ChargeableDuration int        `json:"chargeableDuration,omitempty"`
	CallbackURL        string     `json:"callbackUrl,omitempty"`
	RecordingEnabled   bool       `json:"recordingEnabled,omitempty"`
	Tag                string     `json:"tag,omitempty"`
}

// Gather represents a DTMF gather operation on a call
type Gather struct {
	ID            string     `json:"id,omitempty"`
	State         string     `json:"state,omitempty"`
	Reason        string     `json:"reason,omitempty"`
	Digits        string     `json:"digits,omitempty"`
	Call          string     `json:"call,omitempty"`
	CreatedTime   *time.Time `json:"createdTime,omitempty"`
	CompletedTime *time.Time `json:"completedTime,omitempty"`
}

// ListOptions contains the options for listing calls
type ListOptions struct {
	State string
	Page  int
	Size  int
}

// CallsPage represents a paginated list of calls
type CallsPage struct {
	Items []Call
	*rest.Page
}

// Config holds the configuration for the Calls plugin
type Config struct {
	// Any configuration settings for the calls plugin can go here
}

// DefaultConfig returns the default configuration for the Calls plugin
func DefaultConfig() *Config {
	return &Config{}
}

// Client is the calls API client
type Client struct {
	restClient *rest.Client
	config     *Config
}

// New creates a new Calls plugin
func New(restClient *rest.Client, config *Config) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	return &Client{
		restClient: restClient,
		config:     config,
	}
}

func (c *Client) callsPath() string {
	return fmt.Sprintf("users/%s/calls", url.PathEscape(c.restClient.PrincipalID()))
}

// Get returns the current state of a call
func (c *Client) Get(callID string) (*Call, error) {
	return c.GetWithContext(context.Background(), callID)
}

// GetWithContext returns the current state of a call
func (c *Client) GetWithContext(ctx context.Context, callID string) (*Call, error) {
	if callID == "" {
		return nil, fmt.Errorf("callID is required")
	}

	path := fmt.Sprintf("%s/%s", c.callsPath(), url.PathEscape(callID))
	resp, err := c.restClient.RequestWithRetry(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var call Call
	if err := rest.ParseResponse(resp, &call); err != nil {
		return nil, err
	}

	return &call, nil
}

// GetGather returns a gather operation of a call
func (c *Client) GetGather(callID, gatherID string) (*Gather, error) {
	if callID == "" {
		return nil, fmt.Errorf("callID is required")
	}
	if gatherID == "" {
		return nil, fmt.Errorf("gatherID is required")
	}

	path := fmt.Sprintf("%s/%s/gather/%s", c.callsPath(), url.PathEscape(callID), url.PathEscape(gatherID))
	resp, err := c.restClient.Request(http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var gather Gather
	if err := rest.ParseResponse(resp, &gather); err != nil {
		return nil, err
	}

	return &gather, nil
}

// List returns a list of calls
func (c *Client) List(options *ListOptions) (*CallsPage, error) {
	params := url.Values{}
	if options != nil {
		if options.State != "" {
			params.Set("state", options.State)
		}
		if options.Page > 0 {
			params.Set("page", strconv.Itoa(options.Page))
		}
		if options.Size > 0 {
			params.Set("size", strconv.Itoa(options.Size))
		}
	}

	resp, err := c.restClient.Request(http.MethodGet, c.callsPath(), params, nil)
	if err != nil {
		return nil, err
	}

	page, err := rest.NewPage(resp, c.restClient)
	if err != nil {
		return nil, err
	}

	return newCallsPage(page)
}

// Next returns the next page of calls
func (p *CallsPage) Next(ctx context.Context) (*CallsPage, error) {
	page, err := p.Page.Next(ctx)
	if err != nil {
		return nil, err
	}
	return newCallsPage(page)
}

func newCallsPage(page *rest.Page) (*CallsPage, error) {
	callsPage := &CallsPage{
		Page:  page,
		Items: make([]Call, len(page.Items)),
	}

	for i, item := range page.Items {
		var call Call
		if err := json.Unmarshal(item, &call); err != nil {
			return nil, err
		}
		callsPage.Items[i] = call
	}

	return callsPage, nil
}
