package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompose(t *testing.T) {
	tests := []struct {
		name       string
		subject    string
		body       string
		recipients []string
		wantHTML   string
	}{
		{
			name:       "campaign content",
			subject:    "Hi",
			body:       "World",
			recipients: []string{"a@x.com", "b@x.com"},
			wantHTML:   "<p>World</p>",
		},
		{
			name:       "no recipients",
			subject:    "Hi",
			body:       "World",
			recipients: nil,
			wantHTML:   "<p>World</p>",
		},
		{
			name:       "markup passes through untouched",
			subject:    "Launch",
			body:       "<strong>now</strong> & later",
			recipients: []string{"not-an-address"},
			wantHTML:   "<p><strong>now</strong> & later</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := Compose(tt.subject, tt.body, tt.recipients)

			assert.Equal(t, tt.subject, msg.Subject)
			assert.Equal(t, tt.body, msg.TextBody)
			assert.Equal(t, tt.wantHTML, msg.HTMLBody)
			assert.Equal(t, len(tt.recipients), len(msg.To))
			for i := range tt.recipients {
				assert.Equal(t, tt.recipients[i], msg.To[i])
			}
			assert.Empty(t, msg.From)
		})
	}
}

func TestCompose_CopiesRecipients(t *testing.T) {
	recipients := []string{"a@x.com"}
	msg := Compose("s", "b", recipients)

	recipients[0] = "changed@x.com"
	assert.Equal(t, []string{"a@x.com"}, msg.To)
}
