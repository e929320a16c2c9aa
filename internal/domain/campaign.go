package domain

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Campaign is an outreach message definition owned by a user.
// Title becomes the email subject and Content the email body.
type Campaign struct {
	ID        uuid.UUID `json:"id"`
	UserEmail string    `json:"user_email"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Prospect is a contact record attached to a campaign. CampaignID is a
// reference, not ownership: deleting a campaign leaves its prospects in place.
type Prospect struct {
	ID         uuid.UUID `json:"id"`
	CampaignID uuid.UUID `json:"campaign_id"`
	Email      string    `json:"email"`
	UserEmail  string    `json:"user_email"`
	CreatedAt  time.Time `json:"created_at"`
}

var (
	ErrCampaignNotFound = Errorf(ENOTFOUND, "", "Campaign not found")
	ErrProspectNotFound = Errorf(ENOTFOUND, "", "Prospect not found")
)

// Validate checks the fields required to create a campaign.
func (c *Campaign) Validate() error {
	if strings.TrimSpace(c.UserEmail) == "" {
		return Invalid("campaign.validate", "user_email is required")
	}
	return nil
}

// Validate checks the fields required to create a prospect.
func (p *Prospect) Validate() error {
	if p.CampaignID == uuid.Nil {
		return Invalid("prospect.validate", "campaign_id is required")
	}
	if strings.TrimSpace(p.Email) == "" {
		return Invalid("prospect.validate", "email is required")
	}
	if strings.TrimSpace(p.UserEmail) == "" {
		return Invalid("prospect.validate", "user_email is required")
	}
	return nil
}

// CampaignStore is the data-access surface for campaigns.
type CampaignStore interface {
	CreateCampaign(ctx context.Context, c *Campaign) error
	GetCampaign(ctx context.Context, id uuid.UUID) (*Campaign, error)
	ListCampaigns(ctx context.Context, userEmail string) ([]Campaign, error)
	// DeleteCampaign returns the number of rows removed (0 or 1).
	DeleteCampaign(ctx context.Context, id uuid.UUID) (int64, error)
}

// ProspectStore is the data-access surface for prospects.
type ProspectStore interface {
	CreateProspect(ctx context.Context, p *Prospect) error
	ListProspects(ctx context.Context, campaignID uuid.UUID, userEmail string) ([]Prospect, error)
	DeleteProspect(ctx context.Context, id uuid.UUID) (int64, error)

	// QueryEmails returns prospect addresses for a campaign/owner pair in
	// insertion order. No match yields an empty slice, never an error.
	QueryEmails(ctx context.Context, campaignID uuid.UUID, userEmail string) ([]string, error)
}
