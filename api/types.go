package api

import "encoding/json"

// ValueResponse is returned by the float, int and string endpoints.
type ValueResponse[T any] struct {
	Value T `json:"value"`
}

type IndexRequest struct {
	Weights []float64 `json:"weights" validate:"max=1000000"`
}

type IndexResponse struct {
	Index int `json:"index"`
}

type StringRequest struct {
	Length  int    `query:"length" validate:"gte=0,lte=1048576"`
	Charset string `query:"charset"`
}

type ShuffleRequest struct {
	Items  []json.RawMessage `json:"items" validate:"max=1000000"`
	Biased bool              `json:"biased"`
}

type ShuffleResponse struct {
	Items []json.RawMessage `json:"items"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
