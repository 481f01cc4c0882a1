package entity

type Hall struct {
	Base
	Name    string `db:"name"`
	Rows    int    `db:"rows"`
	Columns int    `db:"columns"`
}
