package validators

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/angelmondragon/shopadmin-backend/pkg/errors"
	"github.com/angelmondragon/shopadmin-backend/pkg/pagination"
)

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, singleField(key, "The %s field must be an integer.")
	}
	if value < min || value > max {
		return 0, pkgerrors.FieldErrors{key: {"The " + humanize(key) + " field must be between " + strconv.Itoa(min) + " and " + strconv.Itoa(max) + "."}}.Err()
	}
	return value, nil
}

// ParseQueryInt64 returns the optional equality filter named key, or nil when absent.
func ParseQueryInt64(r *http.Request, key string) (*int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, singleField(key, "The %s field must be an integer.")
	}
	return &value, nil
}

// ParseQueryBool returns the optional boolean filter named key. Accepts true/false/1/0.
func ParseQueryBool(r *http.Request, key string) (*bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, singleField(key, "The %s field must be true or false.")
	}
	return &value, nil
}

// ParseQueryString returns the trimmed optional filter named key, or nil when absent.
func ParseQueryString(r *http.Request, key string) *string {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil
	}
	return &raw
}

// ParseQueryDecimal parses a required decimal query parameter.
func ParseQueryDecimal(r *http.Request, key string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return decimal.Zero, singleField(key, "The %s field is required.")
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, singleField(key, "The %s field must be a number.")
	}
	if value.IsNegative() {
		return decimal.Zero, singleField(key, "The %s field must be at least 0.")
	}
	return value, nil
}

// ParsePage reads page and per_page.
func ParsePage(r *http.Request) (pagination.Params, error) {
	page, err := ParseQueryInt(r, "page", 1, 1, 1<<30)
	if err != nil {
		return pagination.Params{}, err
	}
	perPage, err := ParseQueryInt(r, "per_page", pagination.DefaultPerPage, 1, pagination.MaxPerPage)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{Page: page, PerPage: perPage}, nil
}

// PathID parses the chi URL parameter key as a positive id. Anything else is NOT_FOUND.
func PathID(r *http.Request, key string) (int64, error) {
	value, err := strconv.ParseInt(chi.URLParam(r, key), 10, 64)
	if err != nil || value <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeNotFound, "resource not found")
	}
	return value, nil
}

func singleField(key, format string) error {
	return pkgerrors.FieldErrors{key: {strings.Replace(format, "%s", humanize(key), 1)}}.Err()
}
