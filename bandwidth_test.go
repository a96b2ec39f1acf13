/* SPDX-License-Identifier: MPL-2.0
 * Copyright 2025 Tejus Pratap <tejzpr@gmail.com>
 *
 * See CONTRIBUTORS.md for full contributor list.
 */

package bandwidth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tejzpr/bandwidth-go-sdk/credentials"
	"github.com/tejzpr/bandwidth-go-sdk/rest"
)

// isolate swaps in a resolver that only sees environ and clears the current
// client, restoring both when the test ends.
func isolate(t *testing.T, environ map[string]string) *credentials.Fallback {
	t.Helper()
	if environ == nil {
		environ = map[string]string{}
	}
	fb := credentials.NewFallback()
	previousResolver := SetResolver(credentials.New(&credentials.Config{
		Environment: environ,
		Fallback:    fb,
	}))
	previousClient := SetClient(nil)
	t.Cleanup(func() {
		SetResolver(previousResolver)
		SetClient(previousClient)
	})
	return fb
}

func TestNewClientExplicit(t *testing.T) {
	isolate(t, map[string]string{
		credentials.EnvUserID:    "u-env",
		credentials.EnvAPIToken:  "t-env",
		credentials.EnvAPISecret: "s-env",
	})

	client, err := NewClient("u-arg", "t-arg", "s-arg", nil)
	require.NoError(t, err)
	assert.Equal(t, "u-arg", client.PrincipalID())
	token, secret := client.BasicAuth()
	assert.Equal(t, "t-arg", token)
	assert.Equal(t, "s-arg", secret)
	assert.False(t, client.Markup())
	assert.Equal(t, "https://api.catapult.inetwork.com/v1", client.BaseURL.String())

	got, err := CurrentClient()
	require.NoError(t, err)
	assert.Same(t, client, got)
}

func TestNewClientPartialArguments(t *testing.T) {
	isolate(t, nil)

	for _, args := range [][3]string{
		{"u", "", ""},
		{"", "t", ""},
		{"", "", "s"},
		{"u", "t", ""},
		{"u", "", "s"},
		{"", "t", "s"},
	} {
		_, err := NewClient(args[0], args[1], args[2], nil)
		require.Error(t, err)
		assert.True(t, credentials.IsValidation(err))
	}

	assert.Nil(t, SetClient(nil), "failed construction must not install a client")
}

func TestCurrentClientResolvesFromEnvironment(t *testing.T) {
	isolate(t, map[string]string{
		credentials.EnvUserID:    "u-env",
		credentials.EnvAPIToken:  "t-env",
		credentials.EnvAPISecret: "s-env",
	})

	client, err := CurrentClient()
	require.NoError(t, err)
	assert.Equal(t, "u-env", client.PrincipalID())

	again, err := CurrentClient()
	require.NoError(t, err)
	assert.Same(t, client, again)
}

func TestCurrentClientWithoutConfiguration(t *testing.T) {
	isolate(t, nil)

	_, err := CurrentClient()
	require.Error(t, err)
	assert.True(t, credentials.IsNoConfiguration(err))
}

func TestSetClient(t *testing.T) {
	isolate(t, nil)

	first, err := rest.NewClient("u-1", "t", "s", nil)
	require.NoError(t, err)
	second, err := rest.NewClient("u-2", "t", "s", nil)
	require.NoError(t, err)

	assert.Nil(t, SetClient(first))

	got, err := CurrentClient()
	require.NoError(t, err)
	assert.Same(t, first, got)

	assert.Same(t, first, SetClient(second))
	got, err = CurrentClient()
	require.NoError(t, err)
	assert.Same(t, second, got)
}

func TestNewClientKeepsConfig(t *testing.T) {
	isolate(t, nil)

	cfg := &rest.Config{BaseURL: "https://catapult.test/v1/", Markup: true, MaxRetries: 1}
	client, err := NewClient("u", "t", "s", cfg)
	require.NoError(t, err)
	assert.Equal(t, "https://catapult.test/v1", client.BaseURL.String())
	assert.False(t, client.Markup())
	assert.True(t, cfg.Markup, "caller config must not be modified")
}

func TestNewDashboardClient(t *testing.T) {
	fb := isolate(t, nil)

	telephony, err := rest.NewClient("u-1", "t", "s", nil)
	require.NoError(t, err)
	SetClient(telephony)

	dashboard, err := NewDashboardClient("a-1", "user", "pass", nil)
	require.NoError(t, err)
	assert.Equal(t, "a-1", dashboard.PrincipalID())
	assert.True(t, dashboard.Markup())
	assert.Equal(t, "https://dashboard.bandwidth.com:443/v1.0", dashboard.BaseURL.String())

	got, err := CurrentClient()
	require.NoError(t, err)
	assert.Same(t, telephony, got, "dashboard clients never become current")

	fb.SetEndpoint("https://dashboard.test/v1.0/")
	again, err := DashboardClient()
	require.NoError(t, err)
	assert.Equal(t, "a-1", again.PrincipalID())
	assert.Equal(t, "https://dashboard.test/v1.0", again.BaseURL.String())
}

func TestNewDashboardClientBaseURL(t *testing.T) {
	fb := isolate(t, nil)
	fb.SetEndpoint("https://dashboard.test/v1.0/")

	cfg := &rest.Config{BaseURL: "https://dashboard.override.test/v1.0/"}
	dashboard, err := NewDashboardClient("a-1", "user", "pass", cfg)
	require.NoError(t, err)
	assert.Equal(t, "https://dashboard.override.test/v1.0", dashboard.BaseURL.String())
	assert.True(t, dashboard.Markup())
	assert.False(t, cfg.Markup, "caller config must not be modified")

	dashboard, err = NewDashboardClient("a-1", "user", "pass", &rest.Config{MaxRetries: 1})
	require.NoError(t, err)
	assert.Equal(t, "https://dashboard.test/v1.0", dashboard.BaseURL.String())
}

func TestNewDashboardClientErrors(t *testing.T) {
	isolate(t, map[string]string{credentials.EnvAccountID: "a-env"})

	_, err := NewDashboardClient("", "", "", nil)
	assert.True(t, credentials.IsEnvironmentConfig(err))

	_, err = NewDashboardClient("a", "", "", nil)
	assert.True(t, credentials.IsValidation(err))
}
