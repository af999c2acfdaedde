package dto

type TransactionFilter struct {
	Status      string `query:"status"`
	IsConfirmed *bool  `query:"is_confirmed"`
	StartDate   string `query:"start_date"`
	EndDate     string `query:"end_date"`
	Search      string `query:"search"`
	Limit       int    `query:"limit"`
	Page        int    `query:"page"`

	// Visibility scoping, set by the service, never bound from the
	// request: customers only see rows matched by their account id or
	// their exact customer name (guest continuity).
	ViewerUserID       *int64 `query:"-"`
	ViewerCustomerName string `query:"-"`

	// Resolved by the service from StartDate/EndDate (inclusive bounds).
	CreatedFrom int64 `query:"-"`
	CreatedTo   int64 `query:"-"`

	// Sweep criteria for the pending-payment expiry job.
	PaymentMethod string `query:"-"`
	CreatedBefore int64  `query:"-"`
}

func (f *TransactionFilter) Normalize() {
	if f.Limit <= 0 {
		f.Limit = 10
	}
	if f.Page <= 0 {
		f.Page = 1
	}
}

func (f TransactionFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}
