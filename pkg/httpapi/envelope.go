package httpapi

import "net/http"

// ListEnvelope is the standard shape for paginated collection responses.
type ListEnvelope[T any] struct {
	Data    []T   `json:"data"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	PerPage int   `json:"perPage"`
}

func WriteList[T any](w http.ResponseWriter, data []T, total int64, page, perPage int) error {
	if data == nil {
		data = []T{}
	}
	return WriteJSON(w, http.StatusOK, ListEnvelope[T]{
		Data:    data,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	})
}
