package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"project_karcis/internal/entities"
)

type AmenityRepository struct {
	db *pgxpool.Pool
}

func NewAmenityRepository(db *pgxpool.Pool) *AmenityRepository {
	return &AmenityRepository{db: db}
}

func (r *AmenityRepository) GetAll(ctx context.Context) ([]entities.Amenity, error) {
	rows, err := r.db.Query(ctx, "SELECT id, name, description, icon FROM amenities ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	amenities := []entities.Amenity{}
	for rows.Next() {
		var a entities.Amenity
		if err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.Icon); err != nil {
			return nil, err
		}
		amenities = append(amenities, a)
	}
	return amenities, rows.Err()
}

func (r *AmenityRepository) FindByID(ctx context.Context, id int64) (*entities.Amenity, error) {
	var a entities.Amenity
	err := r.db.QueryRow(ctx,
		"SELECT id, name, description, icon FROM amenities WHERE id = $1", id).
		Scan(&a.ID, &a.Name, &a.Description, &a.Icon)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil // Not found
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AmenityRepository) Create(ctx context.Context, amenity entities.Amenity) (*entities.Amenity, error) {
	var a entities.Amenity
	err := r.db.QueryRow(ctx,
		"INSERT INTO amenities (name, description, icon) VALUES ($1, $2, $3) RETURNING id, name, description, icon",
		amenity.Name, amenity.Description, amenity.Icon).
		Scan(&a.ID, &a.Name, &a.Description, &a.Icon)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AmenityRepository) Update(ctx context.Context, amenity entities.Amenity) (*entities.Amenity, error) {
	var a entities.Amenity
	err := r.db.QueryRow(ctx,
		"UPDATE amenities SET name = $1, description = $2, icon = $3 WHERE id = $4 RETURNING id, name, description, icon",
		amenity.Name, amenity.Description, amenity.Icon, amenity.ID).
		Scan(&a.ID, &a.Name, &a.Description, &a.Icon)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AmenityRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM amenities WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
