package entity

type SeatType struct {
	BaseSimple
	Name  string  `db:"name"` // STANDARD, VIP
	Price float64 `db:"price"`
}
