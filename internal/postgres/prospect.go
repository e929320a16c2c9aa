package postgres

import (
	"context"
	"time"

	"github.com/dukerupert/outreach/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// ProspectStore implements domain.ProspectStore using PostgreSQL.
type ProspectStore struct {
	db DBTX
}

var _ domain.ProspectStore = (*ProspectStore)(nil)

// NewProspectStore creates a new ProspectStore instance.
func NewProspectStore(db DBTX) *ProspectStore {
	return &ProspectStore{db: db}
}

const createProspect = `
INSERT INTO prospects (id, campaign_id, email, user_email, created_at)
VALUES ($1, $2, $3, $4, $5)`

func (s *ProspectStore) CreateProspect(ctx context.Context, p *domain.Prospect) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(ctx, createProspect,
		toPgUUID(p.ID),
		toPgUUID(p.CampaignID),
		p.Email,
		p.UserEmail,
		toPgTimestamptz(p.CreatedAt),
	)
	if err != nil {
		return domain.Internal(err, "prospect.create", "failed to save prospect")
	}
	return nil
}

const listProspects = `
SELECT id, campaign_id, email, user_email, created_at
FROM prospects
WHERE campaign_id = $1 AND user_email = $2
ORDER BY created_at, id`

func (s *ProspectStore) ListProspects(ctx context.Context, campaignID uuid.UUID, userEmail string) ([]domain.Prospect, error) {
	rows, err := s.db.Query(ctx, listProspects, toPgUUID(campaignID), userEmail)
	if err != nil {
		return nil, domain.Internal(err, "prospect.list", "failed to list prospects")
	}
	defer rows.Close()

	prospects := []domain.Prospect{}
	for rows.Next() {
		p, err := scanProspect(rows)
		if err != nil {
			return nil, domain.Internal(err, "prospect.list", "failed to read prospect")
		}
		prospects = append(prospects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "prospect.list", "failed to list prospects")
	}
	return prospects, nil
}

const deleteProspect = `DELETE FROM prospects WHERE id = $1`

func (s *ProspectStore) DeleteProspect(ctx context.Context, id uuid.UUID) (int64, error) {
	tag, err := s.db.Exec(ctx, deleteProspect, toPgUUID(id))
	if err != nil {
		return 0, domain.Internal(err, "prospect.delete", "failed to delete prospect")
	}
	return tag.RowsAffected(), nil
}

const queryProspectEmails = `
SELECT email
FROM prospects
WHERE campaign_id = $1 AND user_email = $2
ORDER BY created_at, id`

func (s *ProspectStore) QueryEmails(ctx context.Context, campaignID uuid.UUID, userEmail string) ([]string, error) {
	rows, err := s.db.Query(ctx, queryProspectEmails, toPgUUID(campaignID), userEmail)
	if err != nil {
		return nil, domain.Internal(err, "prospect.query_emails", "failed to query prospect emails")
	}

	emails, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, domain.Internal(err, "prospect.query_emails", "failed to read prospect emails")
	}
	if emails == nil {
		emails = []string{}
	}
	return emails, nil
}

func scanProspect(row pgx.Row) (*domain.Prospect, error) {
	var (
		id, campaignID pgtype.UUID
		createdAt      pgtype.Timestamptz
		p              domain.Prospect
	)
	if err := row.Scan(&id, &campaignID, &p.Email, &p.UserEmail, &createdAt); err != nil {
		return nil, err
	}
	p.ID = fromPgUUID(id)
	p.CampaignID = fromPgUUID(campaignID)
	p.CreatedAt = createdAt.Time
	return &p, nil
}
