package services

import (
	"context"
	"fmt"

	"github.com/dimitrije/futbol-api/internal/database"
	"github.com/dimitrije/futbol-api/internal/match"
	"github.com/dimitrije/futbol-api/internal/models"
	"github.com/google/uuid"
)

type VenueService struct {
	db *database.DB
}

func NewVenueService(db *database.DB) *VenueService {
	return &VenueService{db: db}
}

func (s *VenueService) List(ctx context.Context) ([]models.Venue, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, name, address, created_at
		FROM venues
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}
	defer rows.Close()

	venues := []models.Venue{}
	for rows.Next() {
		var v models.Venue
		if err := rows.Scan(&v.ID, &v.Name, &v.Address, &v.CreatedAt); err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

func (s *VenueService) GetByID(ctx context.Context, id uuid.UUID) (*models.Venue, error) {
	var v models.Venue
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, name, address, created_at FROM venues WHERE id = $1
	`, id).Scan(&v.ID, &v.Name, &v.Address, &v.CreatedAt)
	if err != nil {
		return nil, notFound(err, match.ErrVenueNotFound, "venue")
	}
	return &v, nil
}
