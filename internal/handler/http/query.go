package http

import (
	"net/http"

	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/period"
)

// rangeFromQuery reads an optional from/to range. startDate/endDate are
// accepted as aliases.
func rangeFromQuery(r *http.Request) (period.Range, error) {
	from, to := boundsFromQuery(r)
	return period.Parse(from, to)
}

func requiredRangeFromQuery(r *http.Request) (period.Range, error) {
	from, to := boundsFromQuery(r)
	return period.ParseRequired(from, to)
}

func boundsFromQuery(r *http.Request) (string, string) {
	q := r.URL.Query()
	return firstNonEmpty(q.Get("from"), q.Get("startDate")), firstNonEmpty(q.Get("to"), q.Get("endDate"))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
