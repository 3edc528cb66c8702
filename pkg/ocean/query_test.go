package ocean

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryParams_ToValues(t *testing.T) {
	t.Parallel()

	t.Run("nil receiver", func(t *testing.T) {
		t.Parallel()

		var params *QueryParams

		values := params.ToValues()
		assert.Empty(t, values)
	})

	t.Run("zero values omitted", func(t *testing.T) {
		t.Parallel()

		values := (&QueryParams{}).ToValues()
		assert.Empty(t, values)
	})

	t.Run("all fields", func(t *testing.T) {
		t.Parallel()

		params := &QueryParams{
			Page:    2,
			PerPage: 50,
			Name:    "web-1",
			Tag:     "production",
			Filters: map[string]string{"type": "snapshot"},
		}

		values := params.ToValues()
		assert.Equal(t, "2", values.Get("page"))
		assert.Equal(t, "50", values.Get("per_page"))
		assert.Equal(t, "web-1", values.Get("name"))
		assert.Equal(t, "production", values.Get("tag_name"))
		assert.Equal(t, "snapshot", values.Get("type"))
	})
}

func TestQueryParams_WithPage(t *testing.T) {
	t.Parallel()

	t.Run("copies existing params", func(t *testing.T) {
		t.Parallel()

		original := &QueryParams{PerPage: 25, Tag: "production"}

		paged := original.WithPage(3)
		assert.Equal(t, 3, paged.Page)
		assert.Equal(t, 25, paged.PerPage)
		assert.Equal(t, "production", paged.Tag)
		assert.Equal(t, 0, original.Page, "original must not change")
	})

	t.Run("nil receiver", func(t *testing.T) {
		t.Parallel()

		var params *QueryParams

		paged := params.WithPage(1)
		assert.Equal(t, 1, paged.Page)
	})
}
