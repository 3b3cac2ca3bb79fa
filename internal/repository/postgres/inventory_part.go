package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/domain"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// inventoryPartRepository - PostgreSQL implementation of InventoryPartRepository
type inventoryPartRepository struct {
	db *pgxpool.Pool
}

// NewInventoryPartRepository creates a new inventoryPartRepository instance
func NewInventoryPartRepository(db *pgxpool.Pool) repository.InventoryPartRepository {
	return &inventoryPartRepository{db: db}
}

func (r *inventoryPartRepository) Create(ctx context.Context, part *domain.InventoryPart) error {
	query := `
		INSERT INTO inventory_parts (id, part_name, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	part.ID = uuid.New()
	part.CreatedAt = time.Now()
	part.UpdatedAt = time.Now()

	_, err := r.db.Exec(ctx, query,
		part.ID,
		part.PartName,
		part.Price,
		part.CreatedAt,
		part.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrPartNameTaken
		}
		return err
	}

	return nil
}

func (r *inventoryPartRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.InventoryPart, error) {
	query := `
		SELECT id, part_name, price, created_at, updated_at
		FROM inventory_parts
		WHERE id = $1
	`

	return r.scanPartRow(r.db.QueryRow(ctx, query, id))
}

func (r *inventoryPartRepository) GetByPartName(ctx context.Context, partName string) (*domain.InventoryPart, error) {
	query := `
		SELECT id, part_name, price, created_at, updated_at
		FROM inventory_parts
		WHERE part_name = $1
	`

	return r.scanPartRow(r.db.QueryRow(ctx, query, partName))
}

func (r *inventoryPartRepository) SearchByPartName(ctx context.Context, partName string) (*domain.InventoryPart, error) {
	// Substring match, first hit only - matches are not assumed unique
	query := `
		SELECT id, part_name, price, created_at, updated_at
		FROM inventory_parts
		WHERE part_name ILIKE '%' || $1 || '%'
		ORDER BY created_at
		LIMIT 1
	`

	return r.scanPartRow(r.db.QueryRow(ctx, query, partName))
}

func (r *inventoryPartRepository) Update(ctx context.Context, part *domain.InventoryPart) error {
	query := `
		UPDATE inventory_parts
		SET part_name = $2, price = $3, updated_at = $4
		WHERE id = $1
	`

	part.UpdatedAt = time.Now()

	result, err := r.db.Exec(ctx, query,
		part.ID,
		part.PartName,
		part.Price,
		part.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrPartNameTaken
		}
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrPartNotFound
	}

	return nil
}

func (r *inventoryPartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Hard delete - ticket_parts rows referencing the part may dangle
	query := `DELETE FROM inventory_parts WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrPartNotFound
	}

	return nil
}

func (r *inventoryPartRepository) List(ctx context.Context, limit, offset int) ([]*domain.InventoryPart, error) {
	query := `
		SELECT id, part_name, price, created_at, updated_at
		FROM inventory_parts
		ORDER BY created_at
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanParts(rows)
}

func (r *inventoryPartRepository) ListAll(ctx context.Context) ([]*domain.InventoryPart, error) {
	query := `
		SELECT id, part_name, price, created_at, updated_at
		FROM inventory_parts
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanParts(rows)
}

func (r *inventoryPartRepository) scanPartRow(row pgx.Row) (*domain.InventoryPart, error) {
	part := &domain.InventoryPart{}
	err := row.Scan(
		&part.ID,
		&part.PartName,
		&part.Price,
		&part.CreatedAt,
		&part.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPartNotFound
		}
		return nil, err
	}

	return part, nil
}

func (r *inventoryPartRepository) scanParts(rows pgx.Rows) ([]*domain.InventoryPart, error) {
	var parts []*domain.InventoryPart
	for rows.Next() {
		part := &domain.InventoryPart{}
		err := rows.Scan(
			&part.ID,
			&part.PartName,
			&part.Price,
			&part.CreatedAt,
			&part.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}

	return parts, rows.Err()
}
