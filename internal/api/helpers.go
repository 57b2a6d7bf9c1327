package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/fireminder/fireminder/internal/errors"
	"github.com/go-playground/validator/v10"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// decodeJSON parses and validates a request body into dst, which must be a
// pointer to a struct carrying validate tags.
func (s *Server) decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.NewBadRequestError("invalid JSON body")
	}
	if err := s.validate.Struct(dst); err != nil {
		var fields validator.ValidationErrors
		if stderrors.As(err, &fields) && len(fields) > 0 {
			f := fields[0]
			return errors.NewValidationError(strings.ToLower(f.Field()), "failed "+f.Tag()+" check")
		}
		return errors.NewBadRequestError("invalid request body")
	}
	return nil
}
