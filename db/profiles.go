package db

import (
	"context"

	"coderr/models"
)

const profileColumns = `id, user_id, username, first_name, last_name, email, type, created_at`

func (s *Storage) AddProfile(ctx context.Context, p *models.UserProfile) error {
	query := `
        INSERT INTO user_profile (user_id, username, first_name, last_name, email, type)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at`
	err := s.db.QueryRowxContext(ctx, query,
		p.UserID, p.Username, p.FirstName, p.LastName, p.Email, p.Role).
		Scan(&p.ID, &p.CreatedAt)
	return translate(err, "insert profile")
}

// UpsertProfile создает профиль или обновляет профиль с тем же username
func (s *Storage) UpsertProfile(ctx context.Context, p *models.UserProfile) error {
	query := `
        INSERT INTO user_profile (user_id, username, first_name, last_name, email, type)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (username) DO UPDATE
        SET user_id = EXCLUDED.user_id,
            first_name = EXCLUDED.first_name,
            last_name = EXCLUDED.last_name,
            email = EXCLUDED.email,
            type = EXCLUDED.type
        RETURNING id, created_at`
	err := s.db.QueryRowxContext(ctx, query,
		p.UserID, p.Username, p.FirstName, p.LastName, p.Email, p.Role).
		Scan(&p.ID, &p.CreatedAt)
	return translate(err, "upsert profile")
}

func (s *Storage) GetProfile(ctx context.Context, id int64) (*models.UserProfile, error) {
	p := &models.UserProfile{}
	err := s.db.GetContext(ctx, p, `SELECT `+profileColumns+` FROM user_profile WHERE id = $1`, id)
	if err != nil {
		return nil, translate(err, "get profile")
	}
	return p, nil
}

func (s *Storage) GetProfileByUserID(ctx context.Context, userID int64) (*models.UserProfile, error) {
	p := &models.UserProfile{}
	err := s.db.GetContext(ctx, p, `SELECT `+profileColumns+` FROM user_profile WHERE user_id = $1`, userID)
	if err != nil {
		return nil, translate(err, "get profile by user")
	}
	return p, nil
}

func (s *Storage) PlatformStats(ctx context.Context) (*models.PlatformStats, error) {
	query := `
        SELECT
            (SELECT COUNT(*) FROM user_profile WHERE type = 'business') AS business_profile_count,
            (SELECT COUNT(*) FROM review) AS review_count,
            (SELECT COALESCE(AVG(rating), 0)::float8 FROM review) AS average_rating,
            (SELECT COUNT(*) FROM offer) AS offer_count`
	stats := &models.PlatformStats{}
	if err := s.db.GetContext(ctx, stats, query); err != nil {
		return nil, translate(err, "platform stats")
	}
	return stats, nil
}
