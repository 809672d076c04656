package models

// All lists every model in dependency order for AutoMigrate in dev and tests.
func All() []any {
	return []any{
		&User{},
		&APIToken{},
		&Attribute{},
		&AttributeValue{},
		&Product{},
		&Shop{},
		&ProductAttribute{},
		&ProductDiscount{},
		&Cart{},
		&CartItem{},
		&Category{},
		&OrderStatus{},
		&Order{},
		&OrderItem{},
		&OrderStatusHistory{},
		&FacebookAccount{},
		&FacebookPage{},
		&FacebookPost{},
	}
}
