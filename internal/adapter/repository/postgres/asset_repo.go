package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/simaogato/finpulse-backend/internal/domain"
)

// assetRepository implements domain.AssetRepository
type assetRepository struct {
	db *DB
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(db *DB) domain.AssetRepository {
	return &assetRepository{db: db}
}

// List retrieves all assets in entry order
func (r *assetRepository) List(ctx context.Context) ([]domain.Asset, error) {
	query := `
		SELECT id, name, ticker, amount, value, change, icon
		FROM assets
		ORDER BY seq ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	assets := make([]domain.Asset, 0)
	for rows.Next() {
		var asset domain.Asset
		var name, ticker, icon sql.NullString
		var amount, value, change decimal.NullDecimal

		if err := rows.Scan(&asset.ID, &name, &ticker, &amount, &value, &change, &icon); err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}

		asset.Name = stringOrEmpty(name)
		asset.Ticker = stringOrEmpty(ticker)
		asset.Amount = decimalOrZero(amount)
		asset.Value = decimalOrZero(value)
		asset.Change = decimalOrZero(change)
		asset.Icon = stringOrEmpty(icon)

		assets = append(assets, asset)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assets: %w", err)
	}

	return assets, nil
}

// Create creates a new asset
func (r *assetRepository) Create(ctx context.Context, asset *domain.Asset) error {
	query := `
		INSERT INTO assets (id, name, ticker, amount, value, change, icon)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		asset.ID,
		asset.Name,
		asset.Ticker,
		asset.Amount.String(),
		asset.Value.String(),
		asset.Change.String(),
		asset.Icon,
	)
	if err != nil {
		return fmt.Errorf("failed to insert asset: %w", err)
	}

	return nil
}
