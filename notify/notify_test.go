package notify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderBody(t *testing.T) {
	body, err := RenderBody(BodyData{
		Name:   "Alice",
		Amount: 200,
		Symbol: "HRT",
		Wallet: "Addr123",
		TxID:   "Sig456",
	})
	require.NoError(t, err)
	assert.Contains(t, body, "Hello Alice")
	assert.Contains(t, body, "200 HRT tokens")
	assert.Contains(t, body, "Addr123")
	assert.Contains(t, body, "Sig456")
}

func TestRenderBody_NoName(t *testing.T) {
	body, err := RenderBody(BodyData{Amount: 100, Symbol: "HRT", Wallet: "Addr"})
	require.NoError(t, err)
	assert.Contains(t, body, "Hello there")
	assert.NotContains(t, body, "Transaction:")
}

func TestMessageValidate(t *testing.T) {
	assert.ErrorIs(t, Message{To: "a@x.com"}.Validate(), ErrMissingFrom)
	assert.ErrorIs(t, Message{From: "hr@x.com"}.Validate(), ErrMissingRecipient)
	assert.NoError(t, Message{From: "hr@x.com", To: "a@x.com"}.Validate())
}

func TestHTTPNotifier_Send(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "api", user)
		assert.Equal(t, "key-test", pass)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "hr@acme.com", r.PostForm.Get("from"))
		assert.Equal(t, "a@x.com", r.PostForm.Get("to"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n, err := NewHTTPNotifier(server.URL, "mg.acme.com", "key-test")
	require.NoError(t, err)

	err = n.Send(context.Background(), Message{
		From: "hr@acme.com", To: "a@x.com", Subject: "hi", Body: "body",
	})
	require.NoError(t, err)
	assert.Equal(t, "/v3/mg.acme.com/messages", gotPath)
}

func TestHTTPNotifier_APIFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer server.Close()

	n, err := NewHTTPNotifier(server.URL, "mg.acme.com", "bad-key")
	require.NoError(t, err)

	err = n.Send(context.Background(), Message{From: "hr@acme.com", To: "a@x.com"})
	assert.ErrorIs(t, err, ErrSendFailed)
}

func TestNewHTTPNotifier_RequiresAPIKey(t *testing.T) {
	_, err := NewHTTPNotifier("", "mg.acme.com", "")
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestSimulatedNotifier_Records(t *testing.T) {
	n := NewSimulatedNotifier()
	msg := Message{From: "hr@acme.com", To: "a@x.com", Subject: "s", Body: "b"}
	require.NoError(t, n.Send(context.Background(), msg))
	require.Len(t, n.Sent(), 1)
	assert.Equal(t, msg, n.Sent()[0])
}

func TestFallbackNotifier_DegradesToSimulated(t *testing.T) {
	primary := &MockNotifier{SendFn: func(context.Context, Message) error {
		return errors.New("provider down")
	}}
	fallback := NewSimulatedNotifier()
	n := &FallbackNotifier{Primary: primary, Fallback: fallback}

	err := n.Send(context.Background(), Message{From: "hr@acme.com", To: "a@x.com"})
	require.NoError(t, err)
	assert.Len(t, fallback.Sent(), 1)
}

func TestFallbackNotifier_ValidationNotDegraded(t *testing.T) {
	fallback := NewSimulatedNotifier()
	n := &FallbackNotifier{
		Primary:  &MockNotifier{SendFn: func(context.Context, Message) error { return nil }},
		Fallback: fallback,
	}

	err := n.Send(context.Background(), Message{To: "a@x.com"})
	assert.ErrorIs(t, err, ErrMissingFrom)
	assert.Empty(t, fallback.Sent())
}
