package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avelichko/postline/internal/app/models"
	"github.com/avelichko/postline/internal/pkg/apperrors"
	"github.com/avelichko/postline/internal/pkg/dberrors"
)

// GroupRepository handles database operations for groups
type GroupRepository struct {
	db *pgxpool.Pool
}

// NewGroupRepository creates a new GroupRepository
func NewGroupRepository(db *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{db: db}
}

// Create inserts a new group and returns its ID
func (r *GroupRepository) Create(ctx context.Context, group *models.Group) (int64, error) {
	query := `
		INSERT INTO groups (title, slug, description)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query, group.Title, group.Slug, group.Description).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "groups_slug_key") {
			return 0, apperrors.ErrSlugAlreadyUsed
		}
		return 0, fmt.Errorf("error creating group: %w", err)
	}

	return id, nil
}

// GetBySlug retrieves a group by its unique slug
func (r *GroupRepository) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	query := `
		SELECT id, title, slug, description
		FROM groups
		WHERE slug = $1
	`
	return r.scanOne(ctx, query, slug)
}

// GetByID retrieves a group by ID
func (r *GroupRepository) GetByID(ctx context.Context, id int64) (*models.Group, error) {
	query := `
		SELECT id, title, slug, description
		FROM groups
		WHERE id = $1
	`
	return r.scanOne(ctx, query, id)
}

// List retrieves groups ordered by title
func (r *GroupRepository) List(ctx context.Context, offset uint64, limit int) ([]models.Group, error) {
	query := `
		SELECT id, title, slug, description
		FROM groups
		ORDER BY title, id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("error querying groups: %w", err)
	}
	defer rows.Close()

	groups := []models.Group{}
	for rows.Next() {
		var group models.Group
		if err := rows.Scan(&group.ID, &group.Title, &group.Slug, &group.Description); err != nil {
			return nil, fmt.Errorf("error scanning group row: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating group rows: %w", err)
	}

	return groups, nil
}

// Count returns the total number of groups
func (r *GroupRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM groups`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("error counting groups: %w", err)
	}
	return total, nil
}

func (r *GroupRepository) scanOne(ctx context.Context, query string, arg interface{}) (*models.Group, error) {
	var group models.Group
	err := r.db.QueryRow(ctx, query, arg).Scan(&group.ID, &group.Title, &group.Slug, &group.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGroupNotFound
		}
		return nil, fmt.Errorf("error querying group: %w", err)
	}
	return &group, nil
}
