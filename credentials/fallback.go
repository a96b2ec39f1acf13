/* SPDX-License-Identifier: MPL-2.0
 * Copyright 2025 Tejus Pratap <tejzpr@gmail.com>
 *
 * See CONTRIBUTORS.md for full contributor list.
 */

package credentials

import "sync"

// Fallback holds credentials registered by the application at runtime. It is
// the last source consulted by a Resolver before giving up.
type Fallback struct {
	mu        sync.RWMutex
	telephony Telephony
	dashboard Dashboard
	endpoint  string
}

// NewFallback returns an empty Fallback. Most callers use the process-wide
// instance through SetTelephonyFallback and friends instead.
func NewFallback() *Fallback {
	return &Fallback{}
}

var processFallback = NewFallback()

// ProcessFallback returns the process-wide fallback state.
func ProcessFallback() *Fallback {
	return processFallback
}

// SetTelephony records telephony credentials.
func (f *Fallback) SetTelephony(userID, token, secret string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.telephony = Telephony{UserID: userID, Token: token, Secret: secret}
}

// Telephony returns the recorded telephony credentials.
func (f *Fallback) Telephony() Telephony {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.telephony
}

// SetDashboard records dashboard credentials.
func (f *Fallback) SetDashboard(accountID, username, password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dashboard = Dashboard{AccountID: accountID, Username: username, Password: password}
}

// Dashboard returns the recorded dashboard credentials.
func (f *Fallback) Dashboard() Dashboard {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.dashboard
}

// SetEndpoint overrides the dashboard base endpoint. An empty value restores
// DefaultDashboardEndpoint.
func (f *Fallback) SetEndpoint(endpoint string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.endpoint = endpoint
}

// Endpoint returns the dashboard endpoint override, or "" if none is set.
func (f *Fallback) Endpoint() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.endpoint
}

// Reset clears everything recorded so far.
func (f *Fallback) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.telephony = Telephony{}
	f.dashboard = Dashboard{}
	f.endpoint = ""
}

// SetTelephonyFallback records telephony credentials in the process-wide fallback.
func SetTelephonyFallback(userID, token, secret string) {
	processFallback.SetTelephony(userID, token, secret)
}

// SetDashboardFallback records dashboard credentials in the process-wide fallback.
func SetDashboardFallback(accountID, username, password string) {
	processFallback.SetDashboard(accountID, username, password)
}

// SetDashboardEndpoint overrides the dashboard endpoint process-wide.
func SetDashboardEndpoint(endpoint string) {
	processFallback.SetEndpoint(endpoint)
}
