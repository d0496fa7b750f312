package api

// Pagination is rendered exactly as the server reports it; the client never
// computes total pages itself.
type Pagination struct {
	Page      int  `json:"page"`
	Limit     int  `json:"limit"`
	TotalItem int  `json:"totalItem"`
	TotalPage int  `json:"totalPage"`
	NextPage  *int `json:"nextPage"`
	PrevPage  *int `json:"prevPage"`
}

// Page is the envelope every list endpoint returns.
type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}
