package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromEnv_Defaults(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("EMAIL_PROVIDER", "")
	t.Setenv("PORT", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("NATS_URL", "")
	t.Setenv("NATS_SUBJECT_PREFIX", "")

	cfg, err := configFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, uint16(5000), cfg.Port)
	assert.Equal(t, "smtp", cfg.Email.Provider)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 30*time.Second, cfg.Email.SendTimeout)
	assert.Empty(t, cfg.NATS.URL, "event publishing is off by default")
	assert.Equal(t, "outreach", cfg.NATS.SubjectPrefix)
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("ENV", "staging")
	t.Setenv("LOG_LEVEL", "verbose")
	t.Setenv("PORT", "8080")
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("EMAIL_PROVIDER", "log")
	t.Setenv("EMAIL_SEND_TIMEOUT", "5s")
	t.Setenv("NATS_URL", "nats://bus:4222")

	cfg, err := configFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env, "unknown env falls back to prod")
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, uint16(8080), cfg.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 5*time.Second, cfg.Email.SendTimeout)
	assert.Equal(t, "nats://bus:4222", cfg.NATS.URL)
}

func TestConfigFromEnv_EmailProviderValidation(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		env      map[string]string
		wantErr  bool
	}{
		{name: "smtp", provider: "smtp"},
		{name: "log", provider: "log"},
		{name: "postmark without token", provider: "postmark", wantErr: true},
		{name: "postmark with token", provider: "postmark", env: map[string]string{"POSTMARK_API_TOKEN": "tok"}},
		{name: "resend without key", provider: "resend", wantErr: true},
		{name: "resend with key", provider: "resend", env: map[string]string{"RESEND_API_KEY": "re_123"}},
		{name: "unknown", provider: "pigeon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("EMAIL_PROVIDER", tt.provider)
			t.Setenv("POSTMARK_API_TOKEN", "")
			t.Setenv("RESEND_API_KEY", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := configFromEnv()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
