package request

type CreateHallRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Rows    int    `json:"rows" validate:"required,min=1,max=100"`
	Columns int    `json:"columns" validate:"required,min=1,max=100"`
}

type UpdateSeatTypeRequest struct {
	SeatID     string `json:"seat_id" validate:"required,uuid"`
	SeatTypeID string `json:"seat_type_id" validate:"required,uuid"`
}
