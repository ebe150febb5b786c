package platform

// Page is the paged list payload returned by the list endpoints.
type Page[T any] struct {
	Records    []T   `json:"records"`
	PageNumber int64 `json:"pageNumber"`
	PageSize   int64 `json:"pageSize"`
	TotalPage  int64 `json:"totalPage"`
	TotalRow   int64 `json:"totalRow"`
}

// PageRequest carries paging and sorting for list endpoints.
type PageRequest struct {
	PageNum   int    `json:"pageNum,omitempty"`
	PageSize  int    `json:"pageSize,omitempty"`
	SortField string `json:"sortField,omitempty"`
	SortOrder string `json:"sortOrder,omitempty"`
}

// DefaultPageSize is used when a page request leaves the size unset.
const DefaultPageSize = 10

// Normalize fills in the first page and the default size.
func (p PageRequest) Normalize() PageRequest {
	if p.PageNum < 1 {
		p.PageNum = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	return p
}

// IDRequest is the body of delete and toggle calls.
type IDRequest struct {
	ID int64 `json:"id"`
}

// UploadFile is one file in a multipart upload.
type UploadFile struct {
	Name    string
	Content []byte
}
