package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCampaign_Validate(t *testing.T) {
	assert.NoError(t, (&Campaign{UserEmail: "owner@x.com"}).Validate())

	err := (&Campaign{Title: "Hi"}).Validate()
	assert.True(t, IsCode(err, EINVALID))
}

func TestProspect_Validate(t *testing.T) {
	valid := Prospect{CampaignID: uuid.New(), Email: "a@x.com", UserEmail: "owner@x.com"}

	tests := []struct {
		name    string
		mutate  func(p *Prospect)
		wantErr bool
	}{
		{name: "valid", mutate: func(p *Prospect) {}},
		{name: "missing campaign", mutate: func(p *Prospect) { p.CampaignID = uuid.Nil }, wantErr: true},
		{name: "blank email", mutate: func(p *Prospect) { p.Email = "  " }, wantErr: true},
		{name: "missing owner", mutate: func(p *Prospect) { p.UserEmail = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr {
				assert.True(t, IsCode(err, EINVALID), "got %v", err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
