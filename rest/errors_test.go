/* SPDX-License-Identifier: MPL-2.0
 * Copyright 2025 Tejus Pratap <tejzpr@gmail.com>
 *
 * See CONTRIBUTORS.md for full contributor list.
 */

package rest

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResponse(status int, contentType string, headers map[string]string) *http.Response {
	resp := &http.Response{
		StatusCode: status,
		Status:     fmt.Sprintf("%d %s", status, http.StatusText(status)),
		Header:     http.Header{},
	}
	if contentType != "" {
		resp.Header.Set("Content-Type", contentType)
	}
	for k, v := range headers {
		resp.Header.Set(k, v)
	}
	return resp
}

func TestAPIErrorMessage(t *testing.T) {
	err := &APIError{StatusCode: 404, Code: "call-not-found", Message: "The call c-1 could not be found"}
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "call-not-found")
	assert.Contains(t, err.Error(), "could not be found")

	inner := errors.New("network timeout")
	wrapped := &APIError{StatusCode: 502, Err: inner}
	assert.ErrorIs(t, wrapped, inner)
}

func TestNewAPIErrorJSON(t *testing.T) {
	body := []byte(`{"category":"not-found","code":"call-not-found","message":"The call could not be found"}`)
	err := NewAPIError(newResponse(http.StatusNotFound, "application/json", nil), body)

	assert.True(t, IsNotFound(err))
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "call-not-found", apiErr.Code)
	assert.Equal(t, "The call could not be found", apiErr.Message)
	assert.Equal(t, body, apiErr.RawBody)
}

func TestNewAPIErrorXML(t *testing.T) {
	body := []byte(`<AccountResponse><ResponseStatus><ErrorCode>1001</ErrorCode><Description>Unknown account</Description></ResponseStatus></AccountResponse>`)
	err := NewAPIError(newResponse(http.StatusForbidden, "application/xml", nil), body)

	assert.True(t, IsForbidden(err))
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "1001", apiErr.Code)
	assert.Equal(t, "Unknown account", apiErr.Message)
}

func TestNewAPIErrorSubTypes(t *testing.T) {
	tests := []struct {
		status int
		check  func(error) bool
	}{
		{http.StatusUnauthorized, IsAuthError},
		{http.StatusForbidden, IsForbidden},
		{http.StatusNotFound, IsNotFound},
		{http.StatusTooManyRequests, IsRateLimited},
		{http.StatusInternalServerError, IsServerError},
		{http.StatusBadGateway, IsServerError},
		{http.StatusServiceUnavailable, IsServerError},
		{http.StatusGatewayTimeout, IsServerError},
	}

	for _, tc := range tests {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			err := NewAPIError(newResponse(tc.status, "application/json", nil), []byte(`not json`))
			assert.True(t, tc.check(err))

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tc.status, apiErr.StatusCode)
			assert.Empty(t, apiErr.Message)
		})
	}

	err := NewAPIError(newResponse(http.StatusBadRequest, "", nil), nil)
	_, isBase := err.(*APIError)
	assert.True(t, isBase)
}

func TestNewAPIErrorRetryAfter(t *testing.T) {
	err := NewAPIError(newResponse(http.StatusTooManyRequests, "", map[string]string{"Retry-After": "30"}), nil)

	var rle *RateLimitError
	require.True(t, errors.As(err, &rle))
	assert.Equal(t, 30*time.Second, rle.RetryAfter)
}
