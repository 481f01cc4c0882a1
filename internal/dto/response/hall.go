package response

import "cinema-reservation/internal/data/entity"

type HallResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Rows    int    `json:"rows"`
	Columns int    `json:"columns"`
}

func HallToResponse(hall *entity.Hall) HallResponse {
	return HallResponse{
		ID:      hall.ID.String(),
		Name:    hall.Name,
		Rows:    hall.Rows,
		Columns: hall.Columns,
	}
}

type SeatTypeResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func SeatTypeToResponse(seatType *entity.SeatType) SeatTypeResponse {
	return SeatTypeResponse{
		ID:    seatType.ID.String(),
		Name:  seatType.Name,
		Price: seatType.Price,
	}
}

type HallDetailResponse struct {
	HallResponse
	Seats []SeatResponse `json:"seats"`
}

type SeatResponse struct {
	ID     string  `json:"id"`
	Row    int     `json:"row"`
	Column int     `json:"column"`
	Type   string  `json:"type"`
	Price  float64 `json:"price"`
}
