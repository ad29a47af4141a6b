package pagination

import (
	"fmt"
	"net/url"
)

// URIService builds absolute resource URIs from a configured base address.
type URIService struct {
	BaseURL string
}

func NewURIService(baseURL string) *URIService {
	return &URIService{BaseURL: baseURL}
}

func (u *URIService) GetPostURI(postID string) string {
	return u.BaseURL + "/api/v1/posts/" + postID
}

func (u *URIService) GetAllPostsURI(f *Filter) string {
	uri := u.BaseURL + "/api/v1/posts"
	if f == nil {
		return uri
	}

	q := url.Values{}
	q.Set("pageNumber", fmt.Sprint(f.PageNumber))
	q.Set("pageSize", fmt.Sprint(f.PageSize))
	return uri + "?" + q.Encode()
}
