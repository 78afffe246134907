package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sispa-api/internal/models"
)

type aggregateTable struct {
	name    string
	nameCol string
}

var aggregateTables = map[models.AggregateKind]aggregateTable{
	models.AggregateSchool: {name: "schools", nameCol: "name"},
	models.AggregateField:  {name: "fields", nameCol: "name_of_the_field"},
}

// AggregateRepository maintains the school and field tallies.
type AggregateRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewAggregateRepository constructs the repository.
func NewAggregateRepository(db *sqlx.DB) *AggregateRepository {
	return &AggregateRepository{db: db, now: time.Now}
}

func tableFor(kind models.AggregateKind) (aggregateTable, error) {
	t, ok := aggregateTables[kind]
	if !ok {
		return aggregateTable{}, fmt.Errorf("unknown aggregate kind %q", kind)
	}
	return t, nil
}

func (t aggregateTable) selectColumns() string {
	return fmt.Sprintf("id, %s AS name, count, created_at, updated_at", t.nameCol)
}

// Increment creates the aggregate with count 1 or bumps an existing count in a single
// statement, so concurrent callers never lose an update.
func (r *AggregateRepository) Increment(ctx context.Context, kind models.AggregateKind, name string) (*models.Aggregate, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`INSERT INTO %[1]s (id, %[2]s, count, created_at, updated_at)
        VALUES ($1, $2, 1, $3, $3)
        ON CONFLICT (%[2]s) DO UPDATE SET count = %[1]s.count + 1, updated_at = EXCLUDED.updated_at
        RETURNING %[3]s`, t.name, t.nameCol, t.selectColumns())

	var agg models.Aggregate
	if err := sqlx.GetContext(ctx, executor(ctx, r.db), &agg, query, uuid.NewString(), name, r.now().UTC()); err != nil {
		return nil, fmt.Errorf("increment %s: %w", t.name, err)
	}
	return &agg, nil
}

// List returns aggregates ordered by name. activeOnly keeps rows with count > 0.
func (r *AggregateRepository) List(ctx context.Context, kind models.AggregateKind, activeOnly bool) ([]models.Aggregate, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf("SELECT %s FROM %s", t.selectColumns(), t.name)
	if activeOnly {
		query += " WHERE count > 0"
	}
	query += fmt.Sprintf(" ORDER BY %s", t.nameCol)

	var items []models.Aggregate
	if err := sqlx.SelectContext(ctx, executor(ctx, r.db), &items, query); err != nil {
		return nil, fmt.Errorf("list %s: %w", t.name, err)
	}
	return items, nil
}

// FindByID fetches one aggregate.
func (r *AggregateRepository) FindByID(ctx context.Context, kind models.AggregateKind, id string) (*models.Aggregate, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", t.selectColumns(), t.name)

	var agg models.Aggregate
	if err := sqlx.GetContext(ctx, executor(ctx, r.db), &agg, query, id); err != nil {
		return nil, err
	}
	return &agg, nil
}
