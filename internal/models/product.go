package models

// Product represents a single inventory line item identified by its code.
type Product struct {
	Code      int     `json:"code" gorm:"primaryKey;column:code" validate:"required,min=1,max=9999"`
	Name      string  `json:"name" gorm:"column:name;type:varchar(40)" validate:"required,min=1,max=40"`
	UnitPrice float64 `json:"unit_price" gorm:"column:unitPrice" validate:"required,gt=0"`
	Quantity  int     `json:"quantity" gorm:"column:quantity" validate:"gte=0"`
}

// TableName keeps the table name stable regardless of GORM's pluralization rules.
func (Product) TableName() string {
	return "products"
}

// TotalValue is the worth of this line item: unit price times quantity on hand.
// It is always derived, never persisted.
func (p Product) TotalValue() float64 {
	return p.UnitPrice * float64(p.Quantity)
}
