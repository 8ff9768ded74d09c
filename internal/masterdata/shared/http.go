package shared

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ledgerdesk/ledgerdesk/internal/platform/httpx"
)

// FiltersFromQuery builds list filters from the standard query parameters
// shared by the catalog endpoints.
func FiltersFromQuery(r *http.Request) ListFilters {
	q := r.URL.Query()

	f := ListFilters{
		Search:  q.Get("search"),
		SortBy:  q.Get("sort_by"),
		SortDir: q.Get("sort_dir"),
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 {
		f.Page = page
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		f.Limit = limit
	}
	if raw := q.Get("is_active"); raw != "" {
		if active, err := strconv.ParseBool(raw); err == nil {
			f.IsActive = &active
		}
	}
	if id, err := strconv.ParseInt(q.Get("gst_rate_id"), 10, 64); err == nil && id > 0 {
		f.GSTRateID = &id
	}
	if id, err := strconv.ParseInt(q.Get("gst_code_id"), 10, 64); err == nil && id > 0 {
		f.GSTCodeID = &id
	}
	return f
}

// RespondError translates the shared domain sentinels into RFC7807
// responses, deferring anything unrecognized to the platform mapping.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrDuplicate):
		httpx.Problem(w, http.StatusConflict, "Duplicate", err.Error())
	case errors.Is(err, ErrInUse):
		httpx.Problem(w, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidID), errors.Is(err, ErrRequiredField):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	default:
		httpx.RespondError(w, err)
	}
}
