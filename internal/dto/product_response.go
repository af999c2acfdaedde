package dto

type ProductResponse struct {
	ID         int64  `json:"id"`
	CategoryID *int64 `json:"category_id"`
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	Stock      int64  `json:"stock"`
}
