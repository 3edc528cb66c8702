package ocean

// Links represents the pagination links attached to list responses.
type Links struct {
	Pages *Pages `json:"pages,omitempty" yaml:"pages,omitempty"`
}

// Pages holds the page URLs of a paginated collection. Absent URLs are
// empty strings; a missing Next marks the last page.
type Pages struct {
	First string `json:"first,omitempty" yaml:"first,omitempty"`
	Prev  string `json:"prev,omitempty"  yaml:"prev,omitempty"`
	Next  string `json:"next,omitempty"  yaml:"next,omitempty"`
	Last  string `json:"last,omitempty"  yaml:"last,omitempty"`
}

// Meta carries collection metadata.
type Meta struct {
	Total int `json:"total" yaml:"total"`
}

// Page is one page of a collection together with its links and metadata.
// Resource clients decode their named top-level array into Items.
type Page[T any] struct {
	Items []T
	Links Links
	Meta  Meta
}

// Logger is the structured logging interface accepted by the client.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}
