package validate

import (
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/baechuer/vidshare/internal/domain"
)

const maxBodyBytes = 1 << 20

var v = newValidator()

func newValidator() *validator.Validate {
	vv := validator.New(validator.WithRequiredStructEnabled())
	// report json names in error meta
	vv.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return vv
}

// DecodeJSON reads a JSON body into dst. Any failure is a validation error.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := render.DecodeJSON(r.Body, dst); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.ErrValidationMeta("invalid json body", map[string]string{"body": "required"})
		}
		return domain.ErrValidationMeta("invalid json body", map[string]string{"body": "malformed JSON"})
	}
	return nil
}

// Struct runs the validate tags on s and maps failures to field -> rule.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.ErrValidation("invalid request")
	}
	meta := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		meta[fe.Field()] = rule
	}
	return domain.ErrValidationMeta("invalid request body", meta)
}

// Body decodes then validates.
func Body(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := DecodeJSON(w, r, dst); err != nil {
		return err
	}
	return Struct(dst)
}

func IsUUID(s string) bool {
	id, err := uuid.Parse(s)
	return err == nil && id != uuid.Nil
}

// PathID parses a chi path parameter as a non-nil uuid.
func PathID(r *http.Request, name string) (uuid.UUID, error) {
	return domain.ParseID(name, chi.URLParam(r, name))
}

// Page reads page, limit (alias page_size), sortBy and sortType.
func Page(r *http.Request) domain.PageRequest {
	q := r.URL.Query()
	limit := q.Get("limit")
	if limit == "" {
		limit = q.Get("page_size")
	}
	return domain.ParsePageRequest(q.Get("page"), limit, q.Get("sortBy"), q.Get("sortType"))
}
