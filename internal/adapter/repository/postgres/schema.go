package postgres

import (
	"context"
	"fmt"

	"github.com/lib/pq"
)

// Numeric columns carry no scale: values round-trip exactly, so a row echoed
// back through NOTIFY equals the one held in memory.
// seq records entry order; snapshots are loaded by it.
const schema = `
CREATE TABLE IF NOT EXISTS assets (
	id UUID PRIMARY KEY,
	seq BIGSERIAL,
	name TEXT,
	ticker TEXT,
	amount NUMERIC,
	value NUMERIC,
	change NUMERIC,
	icon TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS transactions (
	id UUID PRIMARY KEY,
	seq BIGSERIAL,
	description TEXT,
	amount NUMERIC CHECK (amount >= 0),
	date DATE,
	type TEXT,
	category TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS budgets (
	id UUID PRIMARY KEY,
	seq BIGSERIAL,
	category TEXT,
	limit_amount NUMERIC,
	spent NUMERIC NOT NULL DEFAULT 0,
	month TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

ALTER TABLE assets ADD COLUMN IF NOT EXISTS seq BIGSERIAL;
ALTER TABLE transactions ADD COLUMN IF NOT EXISTS seq BIGSERIAL;
ALTER TABLE budgets ADD COLUMN IF NOT EXISTS seq BIGSERIAL;

ALTER TABLE assets
	ALTER COLUMN amount TYPE NUMERIC,
	ALTER COLUMN value TYPE NUMERIC,
	ALTER COLUMN change TYPE NUMERIC;
ALTER TABLE transactions ALTER COLUMN amount TYPE NUMERIC;
ALTER TABLE budgets
	ALTER COLUMN limit_amount TYPE NUMERIC,
	ALTER COLUMN spent TYPE NUMERIC;

CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);
CREATE INDEX IF NOT EXISTS idx_budgets_category ON budgets(category);

CREATE OR REPLACE FUNCTION finpulse_notify_change() RETURNS trigger AS $$
BEGIN
	PERFORM pg_notify(TG_ARGV[0], json_build_object(
		'table', TG_TABLE_NAME,
		'type', TG_OP,
		'record', CASE WHEN TG_OP = 'DELETE' THEN NULL ELSE row_to_json(NEW) END,
		'old_record', CASE WHEN TG_OP = 'INSERT' THEN NULL ELSE row_to_json(OLD) END
	)::text);
	RETURN NULL;
END;
$$ LANGUAGE plpgsql;
`

var notifyTables = []string{"assets", "transactions", "budgets"}

// Migrate creates the tables if they don't exist and (re)installs the triggers
// that publish every row change on the given NOTIFY channel
func (db *DB) Migrate(ctx context.Context, channel string) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	for _, table := range notifyTables {
		trigger := pq.QuoteIdentifier(table + "_notify_change")
		stmt := fmt.Sprintf(`
			DROP TRIGGER IF EXISTS %[1]s ON %[2]s;
			CREATE TRIGGER %[1]s AFTER INSERT OR UPDATE OR DELETE ON %[2]s
			FOR EACH ROW EXECUTE FUNCTION finpulse_notify_change(%[3]s);
		`, trigger, pq.QuoteIdentifier(table), pq.QuoteLiteral(channel))

		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to install change trigger on %s: %w", table, err)
		}
	}

	return nil
}
