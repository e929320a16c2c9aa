package email

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMTPSender_BuildMessage(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{Host: "localhost", Port: 1025, From: "noreply@outreach.local"}, nil)

	msg, err := s.buildMessage(Compose("Hi", "World", []string{"a@x.com", "b@x.com"}))
	require.NoError(t, err)

	assert.Equal(t, []string{"<noreply@outreach.local>"}, msg.GetFromString())
	assert.Equal(t, []string{"<a@x.com>", "<b@x.com>"}, msg.GetToString())
}

func TestSMTPSender_BuildMessage_Errors(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{Host: "localhost", Port: 1025, From: "noreply@outreach.local"}, nil)

	_, err := s.buildMessage(Compose("Hi", "World", nil))
	assert.ErrorIs(t, err, ErrNoRecipients)

	_, err = s.buildMessage(Compose("Hi", "World", []string{"not an address"}))
	assert.True(t, errors.Is(err, ErrInvalidToAddress), "got %v", err)
}

func TestPostmarkSender_Send(t *testing.T) {
	var got postmarkEmail
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "token-123", r.Header.Get("X-Postmark-Server-Token"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"To":"a@x.com","MessageID":"pm-1","ErrorCode":0,"Message":"OK"}`))
	}))
	defer srv.Close()

	p := NewPostmarkSender("token-123", "noreply@outreach.local")
	p.endpoint = srv.URL

	id, err := p.Send(context.Background(), Compose("Hi", "World", []string{"a@x.com", "b@x.com"}))
	require.NoError(t, err)

	assert.Equal(t, "pm-1", id)
	assert.Equal(t, "noreply@outreach.local", got.From)
	assert.Equal(t, "a@x.com,b@x.com", got.To)
	assert.Equal(t, "<p>World</p>", got.HtmlBody)
}

func TestPostmarkSender_Send_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"ErrorCode":300,"Message":"Invalid email request"}`))
	}))
	defer srv.Close()

	p := NewPostmarkSender("token-123", "noreply@outreach.local")
	p.endpoint = srv.URL

	_, err := p.Send(context.Background(), Compose("Hi", "World", []string{"a@x.com"}))
	assert.ErrorContains(t, err, "status 422")
}

func TestNewSender(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ProviderConfig
		want    interface{}
		wantErr bool
	}{
		{name: "smtp", cfg: ProviderConfig{Name: ProviderSMTP, From: "a@x.com"}, want: &SMTPSender{}},
		{name: "postmark", cfg: ProviderConfig{Name: ProviderPostmark, PostmarkToken: "t"}, want: &PostmarkSender{}},
		{name: "postmark missing token", cfg: ProviderConfig{Name: ProviderPostmark}, wantErr: true},
		{name: "resend", cfg: ProviderConfig{Name: ProviderResend, ResendAPIKey: "re_1"}, want: &ResendSender{}},
		{name: "resend missing key", cfg: ProviderConfig{Name: ProviderResend}, wantErr: true},
		{name: "log", cfg: ProviderConfig{Name: ProviderLog}, want: &LogSender{}},
		{name: "unknown", cfg: ProviderConfig{Name: "carrier-pigeon"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender, err := NewSender(tt.cfg, nil)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, sender)
		})
	}
}

func TestLogSender_Send(t *testing.T) {
	id, err := NewLogSender(nil).Send(context.Background(), Compose("Hi", "World", []string{"a@x.com"}))
	require.NoError(t, err)
	assert.Contains(t, id, "log-")
}
