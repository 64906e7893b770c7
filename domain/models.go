package domain

// Models lists every table owned by the service, in migration order.
func Models() []any {
	return []any{
		&User{},
		&Address{},
		&Billing{},
		&Category{},
		&Product{},
		&ProductImage{},
		&ProductVideo{},
		&Cart{},
		&CartItem{},
		&OrderItem{},
		&Order{},
		&Payment{},
		&Review{},
	}
}
