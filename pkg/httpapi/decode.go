package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeAndValidate reads the JSON body into dst and runs struct validation.
// On failure it writes the error response itself and returns false.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		_ = WriteError(w, http.StatusBadRequest, "INVALID_JSON", "request body is not valid JSON", nil)
		return false
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		meta := map[string]string{}
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				meta[fe.Field()] = fe.Tag()
			}
		}
		_ = WriteError(w, http.StatusUnprocessableEntity, "VALIDATION_FAILED", "request body failed validation", meta)
		return false
	}
	return true
}
