package shared

// ListFilters represents standard list filters for catalog endpoints
type ListFilters struct {
	Page     int
	Limit    int
	Search   string
	SortBy   string
	SortDir  string
	IsActive *bool

	// Entity specific filters
	GSTRateID *int64
	GSTCodeID *int64
}

// Offset converts page and limit into a SQL offset.
func (f ListFilters) Offset() int {
	page := f.Page
	if page < 1 {
		page = DefaultPage
	}
	limit := f.Limit
	if limit < 1 {
		limit = DefaultLimit
	}
	return (page - 1) * limit
}

// EffectiveLimit returns the page size, falling back to the default.
func (f ListFilters) EffectiveLimit() int {
	if f.Limit < 1 {
		return DefaultLimit
	}
	return f.Limit
}
