package dairyapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginCapturesSessionCookie(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login/", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		http.SetCookie(w, &http.Cookie{Name: SessionCookieName, Value: "fresh-session"})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"ok","user":{"id":12,"first_name":"Asha","role":"user"}}`))
	}))
	defer backend.Close()

	client := NewClient(backend.URL)
	resp, sessionCookie, err := client.Login(context.Background(), &LoginRequest{Identifier: "asha@milkroute.in", Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, "fresh-session", sessionCookie)
	require.NotNil(t, resp.User)
	assert.Equal(t, 12, resp.User.ID)
}

func TestMeAnonymousYieldsNilUser(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":null}`))
	}))
	defer backend.Close()

	user, err := NewClient(backend.URL).Me(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestDoSendsSessionCookie(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		require.NoError(t, err)
		assert.Equal(t, "abc", cookie.Value)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer backend.Close()

	_, err := NewClient(backend.URL).ListAdmins(context.Background(), "abc")
	require.NoError(t, err)
}

func TestDoReturnsParsedAPIError(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(400)
		_, _ = w.Write([]byte(`{"non_field_errors":["invalid credentials"]}`))
	}))
	defer backend.Close()

	_, _, err := NewClient(backend.URL).Login(context.Background(), &LoginRequest{Identifier: "x", Password: "y"})
	require.Error(t, err)
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 400, apiErr.StatusCode)
	assert.Equal(t, "invalid credentials", apiErr.Error())
}

func TestDoNotifiesSessionRotation(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: SessionCookieName, Value: "rotated"})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":{"id":12,"role":"user"}}`))
	}))
	defer backend.Close()

	var gotOld, gotNew string
	client := NewClient(backend.URL)
	client.OnSessionRefresh(func(_ context.Context, oldSession, newSession string) {
		gotOld, gotNew = oldSession, newSession
	})

	_, err := client.Me(context.Background(), "stale")
	require.NoError(t, err)
	assert.Equal(t, "stale", gotOld)
	assert.Equal(t, "rotated", gotNew)
}

func TestCollectionNotifiesSessionRotation(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: SessionCookieName, Value: "rotated"})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer backend.Close()

	var gotNew string
	client := NewClient(backend.URL)
	client.OnSessionRefresh(func(_ context.Context, _, newSession string) {
		gotNew = newSession
	})

	_, err := client.ListProducts(context.Background(), "stale")
	require.NoError(t, err)
	assert.Equal(t, "rotated", gotNew)
}

func TestLoginDoesNotNotifySessionRotation(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: SessionCookieName, Value: "fresh"})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":{"id":12,"role":"user"}}`))
	}))
	defer backend.Close()

	notified := false
	client := NewClient(backend.URL)
	client.OnSessionRefresh(func(_ context.Context, _, _ string) { notified = true })

	_, sessionCookie, err := client.Login(context.Background(), &LoginRequest{Identifier: "asha@milkroute.in", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "fresh", sessionCookie)
	assert.False(t, notified)
}

func TestDeliveriesUnwrapsEnvelope(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "12", r.URL.Query().Get("customer_id"))
		assert.Equal(t, "7", r.URL.Query().Get("days"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"deliveries":[{"delivery_id":1,"scheduled_for":"2026-08-29","status":"scheduled"}]}`))
	}))
	defer backend.Close()

	deliveries, err := NewClient(backend.URL).SubscriptionDeliveries(context.Background(), "s", 12, 7)
	require.NoError(t, err)
	require.Len(t, deliveries, 1)
	assert.Equal(t, "scheduled", deliveries[0].Status)
}
