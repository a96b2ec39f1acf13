/* SPDX-License-Identifier: MPL-2.0
 * Copyright 2025 Tejus Pratap <tejzpr@gmail.com>
 *
 * See CONTRIBUTORS.md for full contributor list.
 */

// Package bandwidth constructs REST clients for the Bandwidth telephony
// (Catapult) and Dashboard APIs and keeps track of the current telephony
// client used by resource lookups that are not handed a client explicitly.
package bandwidth

import (
	"sync"

	"github.com/tejzpr/bandwidth-go-sdk/credentials"
	"github.com/tejzpr/bandwidth-go-sdk/rest"
)

var (
	// mu guards current and resolver.
	mu       sync.Mutex
	current  *rest.Client
	resolver = credentials.Default()
)

// NewClient resolves telephony credentials and returns a client for the
// Catapult API. Empty arguments defer to the environment, config files and
// the process-wide fallback, in that order; see credentials.TelephonyUsage.
//
// The returned client becomes the current client.
func NewClient(userID, token, secret string, config *rest.Config) (*rest.Client, error) {
	mu.Lock()
	defer mu.Unlock()

	return newClientLocked(credentials.Telephony{UserID: userID, Token: token, Secret: secret}, config)
}

func newClientLocked(args credentials.Telephony, config *rest.Config) (*rest.Client, error) {
	creds, err := resolver.Telephony(args)
	if err != nil {
		return nil, err
	}

	cfg := rest.DefaultConfig()
	if config != nil {
		copied := *config
		cfg = &copied
	}
	cfg.Markup = false

	client, err := rest.NewClient(creds.UserID, creds.Token, creds.Secret, cfg)
	if err != nil {
		return nil, err
	}

	current = client
	return client, nil
}

// CurrentClient returns the current telephony client. If there is none yet,
// one is built from ambient credentials (environment, config files or the
// process-wide fallback) and becomes current.
func CurrentClient() (*rest.Client, error) {
	mu.Lock()
	defer mu.Unlock()

	if current != nil {
		return current, nil
	}
	return newClientLocked(credentials.Telephony{}, nil)
}

// SetClient replaces the current telephony client and returns the previous
// one, which is nil if no client was current.
func SetClient(client *rest.Client) *rest.Client {
	mu.Lock()
	defer mu.Unlock()

	previous := current
	current = client
	return previous
}

// NewDashboardClient resolves Bandwidth Dashboard credentials and returns an
// XML client for the Dashboard API; see credentials.DashboardUsage. The
// endpoint is config.BaseURL when set, then credentials.SetDashboardEndpoint,
// then credentials.DefaultDashboardEndpoint.
//
// Dashboard clients never become the current client.
func NewDashboardClient(accountID, username, password string, config *rest.Config) (*rest.Client, error) {
	mu.Lock()
	r := resolver
	mu.Unlock()

	args := credentials.Dashboard{AccountID: accountID, Username: username, Password: password}
	if config != nil {
		args.Endpoint = config.BaseURL
	}
	creds, err := r.Dashboard(args)
	if err != nil {
		return nil, err
	}

	cfg := rest.DefaultConfig()
	if config != nil {
		copied := *config
		cfg = &copied
	}
	cfg.BaseURL = creds.Endpoint
	cfg.Markup = true

	return rest.NewClient(creds.AccountID, creds.Username, creds.Password, cfg)
}

// DashboardClient returns a Dashboard client built from ambient credentials.
func DashboardClient() (*rest.Client, error) {
	return NewDashboardClient("", "", "", nil)
}

// SetResolver replaces the credential resolver used by this package and
// returns the previous one. Passing nil restores credentials.Default().
func SetResolver(r *credentials.Resolver) *credentials.Resolver {
	mu.Lock()
	defer mu.Unlock()

	if r == nil {
		r = credentials.Default()
	}
	previous := resolver
	resolver = r
	return previous
}
