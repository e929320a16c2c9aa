package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/dukerupert/outreach/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// CampaignStore implements domain.CampaignStore using PostgreSQL.
type CampaignStore struct {
	db DBTX
}

// Compile-time check to ensure CampaignStore implements domain.CampaignStore.
var _ domain.CampaignStore = (*CampaignStore)(nil)

// NewCampaignStore creates a new CampaignStore instance.
func NewCampaignStore(db DBTX) *CampaignStore {
	return &CampaignStore{db: db}
}

const createCampaign = `
INSERT INTO campaigns (id, user_email, title, content, created_at)
VALUES ($1, $2, $3, $4, $5)`

// CreateCampaign inserts c, assigning its ID and CreatedAt when unset.
func (s *CampaignStore) CreateCampaign(ctx context.Context, c *domain.Campaign) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(ctx, createCampaign,
		toPgUUID(c.ID),
		c.UserEmail,
		c.Title,
		c.Content,
		toPgTimestamptz(c.CreatedAt),
	)
	if err != nil {
		return domain.Internal(err, "campaign.create", "failed to save campaign")
	}
	return nil
}

const getCampaign = `
SELECT id, user_email, title, content, created_at
FROM campaigns
WHERE id = $1`

// GetCampaign returns domain.ErrCampaignNotFound when no row matches.
func (s *CampaignStore) GetCampaign(ctx context.Context, id uuid.UUID) (*domain.Campaign, error) {
	c, err := scanCampaign(s.db.QueryRow(ctx, getCampaign, toPgUUID(id)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCampaignNotFound
	}
	if err != nil {
		return nil, domain.Internal(err, "campaign.get", "failed to load campaign")
	}
	return c, nil
}

const listCampaigns = `
SELECT id, user_email, title, content, created_at
FROM campaigns
WHERE user_email = $1
ORDER BY created_at, id`

func (s *CampaignStore) ListCampaigns(ctx context.Context, userEmail string) ([]domain.Campaign, error) {
	rows, err := s.db.Query(ctx, listCampaigns, userEmail)
	if err != nil {
		return nil, domain.Internal(err, "campaign.list", "failed to list campaigns")
	}
	defer rows.Close()

	campaigns := []domain.Campaign{}
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, domain.Internal(err, "campaign.list", "failed to read campaign")
		}
		campaigns = append(campaigns, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "campaign.list", "failed to list campaigns")
	}
	return campaigns, nil
}

const deleteCampaign = `DELETE FROM campaigns WHERE id = $1`

func (s *CampaignStore) DeleteCampaign(ctx context.Context, id uuid.UUID) (int64, error) {
	tag, err := s.db.Exec(ctx, deleteCampaign, toPgUUID(id))
	if err != nil {
		return 0, domain.Internal(err, "campaign.delete", "failed to delete campaign")
	}
	return tag.RowsAffected(), nil
}

func scanCampaign(row pgx.Row) (*domain.Campaign, error) {
	var (
		id        pgtype.UUID
		createdAt pgtype.Timestamptz
		c         domain.Campaign
	)
	if err := row.Scan(&id, &c.UserEmail, &c.Title, &c.Content, &createdAt); err != nil {
		return nil, err
	}
	c.ID = fromPgUUID(id)
	c.CreatedAt = createdAt.Time
	return &c, nil
}
