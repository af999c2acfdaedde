package postgres

import (
	"github.com/jmoiron/sqlx"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		created_at BIGINT NOT NULL DEFAULT 0,
		updated_at BIGINT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id BIGSERIAL PRIMARY KEY,
		category_id BIGINT REFERENCES categories(id),
		name TEXT NOT NULL,
		price BIGINT NOT NULL,
		stock BIGINT NOT NULL DEFAULT 0 CHECK (stock >= 0),
		created_at BIGINT NOT NULL DEFAULT 0,
		updated_at BIGINT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id BIGSERIAL PRIMARY KEY,
		order_id TEXT UNIQUE,
		invoice_number TEXT NOT NULL UNIQUE,
		transaction_code TEXT NOT NULL UNIQUE,
		cashier_id BIGINT,
		user_id BIGINT,
		customer_name TEXT NOT NULL,
		total_amount BIGINT NOT NULL,
		paid_amount BIGINT NOT NULL,
		change_amount BIGINT NOT NULL,
		payment_method TEXT NOT NULL,
		status TEXT NOT NULL,
		is_confirmed BOOLEAN NOT NULL DEFAULT FALSE,
		confirmed_at BIGINT,
		created_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS transaction_details (
		id BIGSERIAL PRIMARY KEY,
		transaction_id BIGINT NOT NULL REFERENCES transactions(id) ON DELETE CASCADE,
		product_id BIGINT NOT NULL REFERENCES products(id),
		price BIGINT NOT NULL,
		quantity BIGINT NOT NULL CHECK (quantity > 0),
		subtotal BIGINT NOT NULL
	)`,
	// Invoice numbers and transaction codes draw from one sequence so
	// concurrent order creation can never hand out duplicates.
	`CREATE SEQUENCE IF NOT EXISTS transaction_number_seq START 1`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_created_at ON transactions (created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_user_id ON transactions (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_transaction_details_transaction_id ON transaction_details (transaction_id)`,
}

// Migrate applies the schema idempotently at startup.
func Migrate(db *sqlx.DB) error {
	for _, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
