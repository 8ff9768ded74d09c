package serviceitems

import "github.com/shopspring/decimal"

type ServiceItemForm struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	GSTCodeID   int64           `json:"gst_code_id"`
	IsActive    bool            `json:"is_active"`
}

func (f ServiceItemForm) toModel() ServiceItem {
	return ServiceItem{
		Name:        f.Name,
		Description: f.Description,
		Price:       f.Price,
		GSTCodeID:   f.GSTCodeID,
		IsActive:    f.IsActive,
	}
}
