package ocean

import (
	"net/url"
	"strconv"
)

// QueryParams captures the query-string options common to list endpoints.
type QueryParams struct {
	// Page is the 1-based page number; zero lets the server choose.
	Page int
	// PerPage is the page size; zero lets the server choose.
	PerPage int
	// Name filters the collection by exact name where supported.
	Name string
	// Tag filters the collection by tag where supported.
	Tag string
	// Filters carries endpoint-specific parameters verbatim.
	Filters map[string]string
}

// ToValues renders the parameters as url.Values.
func (q *QueryParams) ToValues() url.Values {
	values := url.Values{}

	if q == nil {
		return values
	}

	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}

	if q.PerPage > 0 {
		values.Set("per_page", strconv.Itoa(q.PerPage))
	}

	if q.Name != "" {
		values.Set("name", q.Name)
	}

	if q.Tag != "" {
		values.Set("tag_name", q.Tag)
	}

	for key, value := range q.Filters {
		values.Set(key, value)
	}

	return values
}

// WithPage returns a copy of the parameters addressing the given page.
func (q *QueryParams) WithPage(page int) *QueryParams {
	out := QueryParams{}
	if q != nil {
		out = *q
	}

	out.Page = page

	return &out
}
