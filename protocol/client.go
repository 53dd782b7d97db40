package protocol

//input structs coming in from the client.

type Move struct {
	Direction string  `json:"direction"` // up, down, left or right
	Speed     float64 `json:"speed"`
}
