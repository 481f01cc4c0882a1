package entity

type Movie struct {
	Base
	Title             string  `db:"title"`
	Description       *string `db:"description"`
	DurationInMinutes int     `db:"duration_in_minutes"`
	IsActive          bool    `db:"is_active"`
}
