package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		pageNumber string
		pageSize   string
		want       *Filter
	}{
		{name: "both absent", pageNumber: "", pageSize: "", want: nil},
		{name: "non-numeric page", pageNumber: "abc", pageSize: "10", want: nil},
		{name: "non-numeric size", pageNumber: "2", pageSize: "xyz", want: nil},
		{name: "valid", pageNumber: "2", pageSize: "10", want: &Filter{PageNumber: 2, PageSize: 10}},
		{name: "zero values parse", pageNumber: "0", pageSize: "0", want: &Filter{PageNumber: 0, PageSize: 0}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FromQuery(tt.pageNumber, tt.pageSize))
		})
	}
}

func TestFilterValid(t *testing.T) {
	t.Parallel()

	var nilFilter *Filter
	assert.False(t, nilFilter.Valid())
	assert.False(t, (&Filter{PageNumber: 0, PageSize: 5}).Valid())
	assert.False(t, (&Filter{PageNumber: 1, PageSize: 0}).Valid())
	assert.True(t, (&Filter{PageNumber: 1, PageSize: 1}).Valid())
}

func TestOffset(t *testing.T) {
	t.Parallel()

	skip, take := (&Filter{PageNumber: 2, PageSize: 2}).Offset()
	assert.Equal(t, 2, skip)
	assert.Equal(t, 2, take)

	skip, take = (&Filter{PageNumber: 1, PageSize: 50}).Offset()
	assert.Equal(t, 0, skip)
	assert.Equal(t, 50, take)
}

func TestBuildPage_InvalidFilterReturnsBareList(t *testing.T) {
	t.Parallel()

	uris := NewURIService("http://localhost:8080")
	items := []string{"a", "b"}

	assert.Equal(t, items, BuildPage(uris, nil, items))
	assert.Equal(t, items, BuildPage(uris, &Filter{PageNumber: 0, PageSize: 5}, items))
	assert.Equal(t, items, BuildPage(uris, &Filter{PageNumber: 1, PageSize: 0}, items))
}

func TestBuildPage_NavigationLinks(t *testing.T) {
	t.Parallel()

	uris := NewURIService("http://localhost:8080")

	t.Run("first page has next but no previous", func(t *testing.T) {
		t.Parallel()

		got := BuildPage(uris, &Filter{PageNumber: 1, PageSize: 2}, []string{"a", "b"})
		page, ok := got.(PagedResponse)
		require.True(t, ok)

		assert.Equal(t, 1, page.PageNumber)
		assert.Equal(t, 2, page.PageSize)
		require.NotNil(t, page.NextPage)
		assert.Contains(t, *page.NextPage, "pageNumber=2")
		assert.Contains(t, *page.NextPage, "pageSize=2")
		assert.Nil(t, page.PreviousPage)
	})

	t.Run("middle page has both links", func(t *testing.T) {
		t.Parallel()

		got := BuildPage(uris, &Filter{PageNumber: 2, PageSize: 2}, []string{"c", "d"})
		page, ok := got.(PagedResponse)
		require.True(t, ok)

		require.NotNil(t, page.NextPage)
		assert.Contains(t, *page.NextPage, "pageNumber=3")
		require.NotNil(t, page.PreviousPage)
		assert.Contains(t, *page.PreviousPage, "pageNumber=1")
	})

	t.Run("empty page has no next", func(t *testing.T) {
		t.Parallel()

		got := BuildPage(uris, &Filter{PageNumber: 3, PageSize: 2}, []string{})
		page, ok := got.(PagedResponse)
		require.True(t, ok)

		assert.Nil(t, page.NextPage)
		require.NotNil(t, page.PreviousPage)
		assert.Contains(t, *page.PreviousPage, "pageNumber=2")
	})
}

func TestURIService(t *testing.T) {
	t.Parallel()

	uris := NewURIService("http://localhost:8080")

	assert.Equal(t, "http://localhost:8080/api/v1/posts/abc", uris.GetPostURI("abc"))
	assert.Equal(t, "http://localhost:8080/api/v1/posts", uris.GetAllPostsURI(nil))

	uri := uris.GetAllPostsURI(&Filter{PageNumber: 2, PageSize: 10})
	assert.Contains(t, uri, "http://localhost:8080/api/v1/posts?")
	assert.Contains(t, uri, "pageNumber=2")
	assert.Contains(t, uri, "pageSize=10")
}
