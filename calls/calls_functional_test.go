//go:build functional

/* SPDX-License-Identifier: MPL-2.0
 * Copyright 2025 Tejus Pratap <tejzpr@gmail.com>
 *
 * See CONTRIBUTORS.md for full contributor list.
 */

package calls

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/tejzpr/bandwidth-go-sdk/credentials"
	"github.com/tejzpr/bandwidth-go-sdk/rest"
)

// functionalClient builds a client from the ambient credentials, the same
// sources an application would use.
func functionalClient(t *testing.T) *rest.Client {
	t.Helper()
	creds, err := credentials.ResolveTelephony(credentials.Telephony{})
	if err != nil {
		t.Fatalf("BANDWIDTH_USER_ID, BANDWIDTH_API_TOKEN and BANDWIDTH_API_SECRET are required: %v", err)
	}
	client, err := rest.NewClient(creds.UserID, creds.Token, creds.Secret, nil)
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	return client
}

// TestFunctionalCallsList lists recent calls and fetches the first one.
// Run with:
//
//	BANDWIDTH_USER_ID=u-... BANDWIDTH_API_TOKEN=t-... BANDWIDTH_API_SECRET=... \
//	  go test -tags functional -run TestFunctionalCallsList -v ./calls/
func TestFunctionalCallsList(t *testing.T) {
	callsClient := New(functionalClient(t), nil)

	page, err := callsClient.List(&ListOptions{Size: 5})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	t.Logf("Found %d calls", len(page.Items))
	for i, c := range page.Items {
		_, _ = fmt.Fprintf(os.Stdout, "[%d] ID=%s State=%s From=%s To=%s\n",
			i+1, c.ID, c.State, c.From, c.To)
	}
	if len(page.Items) == 0 {
		t.Skip("No calls on this account")
	}

	got, err := callsClient.GetWithContext(context.Background(), page.Items[0].ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.ID != page.Items[0].ID {
		t.Errorf("Get returned wrong ID: got %s, want %s", got.ID, page.Items[0].ID)
	}
}

// TestFunctionalCallNotFound checks that an unknown call maps to a typed error.
// Run with:
//
//	go test -tags functional -run TestFunctionalCallNotFound -v ./calls/
func TestFunctionalCallNotFound(t *testing.T) {
	callsClient := New(functionalClient(t), nil)

	_, err := callsClient.Get("c-does-not-exist")
	if err == nil {
		t.Fatal("Expected an error for an unknown call")
	}
	if !rest.IsNotFound(err) {
		t.Errorf("Expected a not found error, got %v", err)
	}
}
