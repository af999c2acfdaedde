package domain

type Product struct {
	ID         int64  `db:"id"`
	CategoryID *int64 `db:"category_id"`
	Name       string `db:"name"`
	Price      int64  `db:"price"`
	Stock      int64  `db:"stock"`
	CreatedAt  int64  `db:"created_at"`
	UpdatedAt  int64  `db:"updated_at"`
}
