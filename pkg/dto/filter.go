package dto

type Filter struct {
	Limit int    `query:"limit"`
	Page  int    `query:"page"`
	Q     string `query:"q"`
}

func (f *Filter) Normalize() {
	if f.Limit <= 0 {
		f.Limit = 10
	}
	if f.Page <= 0 {
		f.Page = 1
	}
}

func (f Filter) Offset() int {
	return (f.Page - 1) * f.Limit
}
