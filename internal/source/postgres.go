package source

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"apparel-store-service/internal/domain"
)

// PostgresSource loads the catalog from the shared catalog database. The
// service only ever reads: the catalog is owned and written elsewhere.
type PostgresSource struct {
	db *sql.DB
}

// NewPostgresSource creates a loader over an open database handle.
func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

// LoadProducts fetches the full catalog. Sizes are stored as text[] and
// colors as jsonb ([{name, hex}, ...]).
func (s *PostgresSource) LoadProducts(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, name, price, category, gender, sizes, colors, description, material
		FROM catalog.products
		ORDER BY name ASC;
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("source: failed to query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		var sizes pq.StringArray
		var colorsJSON []byte
		var description, material sql.NullString

		if err := rows.Scan(
			&p.ID, &p.Name, &p.Price, &p.Category, &p.Gender,
			&sizes, &colorsJSON, &description, &material,
		); err != nil {
			return nil, fmt.Errorf("source: failed to scan product row: %w", err)
		}

		p.Sizes = []string(sizes)
		if len(colorsJSON) > 0 {
			if err := json.Unmarshal(colorsJSON, &p.Colors); err != nil {
				return nil, fmt.Errorf("source: failed to decode colors for product %d: %w", p.ID, err)
			}
		}
		p.Description = description.String
		p.Material = material.String

		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("source: product rows iteration error: %w", err)
	}

	return products, nil
}
