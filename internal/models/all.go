package models

// All lists every table managed by auto-migration.
func All() []any {
	return []any{
		&Profile{},
		&Event{},
		&Ticket{},
		&PromotionalCode{},
		&Order{},
		&Registration{},
		&RegistrationTransfer{},
		&RequestLog{},
	}
}
