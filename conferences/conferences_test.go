/* SPDX-License-Identifier: MPL-2.0
 * Copyright 2025 Tejus Pratap <tejzpr@gmail.com>
 *
 * See CONTRIBUTORS.md for full contributor list.
 */

package conferences

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tejzpr/bandwidth-go-sdk/rest"
)

func newTestPlugin(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	restClient, err := rest.NewClient("u-123", "t", "s", &rest.Config{
		BaseURL:    server.URL + "/v1/",
		Timeout:    5 * time.Second,
		HttpClient: server.Client(),
	})
	require.NoError(t, err)

	return New(restClient, nil)
}

func TestGet(t *testing.T) {
	plugin := newTestPlugin(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/users/u-123/conferences/conf-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"conf-1","state":"created","activeMembers":2,"from":"+15551234567"}`))
	})

	conference, err := plugin.Get("conf-1")
	require.NoError(t, err)
	assert.Equal(t, "conf-1", conference.ID)
	assert.Equal(t, "created", conference.State)
	assert.Equal(t, 2, conference.ActiveMembers)

	_, err = plugin.Get("")
	assert.Error(t, err)
}

func TestGetMember(t *testing.T) {
	plugin := newTestPlugin(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/users/u-123/conferences/conf-1/members/m-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"m-1","state":"active","mute":true,"call":"https://api.test/calls/c-1"}`))
	})

	member, err := plugin.GetMember("conf-1", "m-1")
	require.NoError(t, err)
	assert.Equal(t, "m-1", member.ID)
	assert.True(t, member.Mute)

	_, err = plugin.GetMember("conf-1", "")
	assert.Error(t, err)
}

func TestGetServerError(t *testing.T) {
	plugin := newTestPlugin(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := plugin.Get("conf-1")
	require.Error(t, err)
	assert.True(t, rest.IsServerError(err))
}
