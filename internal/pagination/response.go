package pagination

type Response struct {
	Data any `json:"data"`
}

type PagedResponse struct {
	Data         any     `json:"data"`
	PageNumber   int     `json:"pageNumber"`
	PageSize     int     `json:"pageSize"`
	NextPage     *string `json:"nextPage"`
	PreviousPage *string `json:"previousPage"`
}

type ErrorModel struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Errors []ErrorModel `json:"errors"`
}

func NewErrorResponse(messages ...string) ErrorResponse {
	errs := make([]ErrorModel, len(messages))
	for i, m := range messages {
		errs[i] = ErrorModel{Message: m}
	}
	return ErrorResponse{Errors: errs}
}

// BuildPage wraps a list result into a page envelope with navigation links.
// When the filter does not describe a real page window the bare item list is
// returned unchanged. Pure function: URI construction is delegated to uris.
func BuildPage[T any](uris *URIService, f *Filter, items []T) any {
	if !f.Valid() {
		return items
	}

	var next, prev *string
	if len(items) > 0 {
		u := uris.GetAllPostsURI(&Filter{PageNumber: f.PageNumber + 1, PageSize: f.PageSize})
		next = &u
	}
	if f.PageNumber-1 >= 1 {
		u := uris.GetAllPostsURI(&Filter{PageNumber: f.PageNumber - 1, PageSize: f.PageSize})
		prev = &u
	}

	return PagedResponse{
		Data:         items,
		PageNumber:   f.PageNumber,
		PageSize:     f.PageSize,
		NextPage:     next,
		PreviousPage: prev,
	}
}
