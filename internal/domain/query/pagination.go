package query

// Pagination carries optional limit/offset and ordering direction for
// repository list queries.
type Pagination struct {
	Limit  *int
	Offset *int
	Order  string
}
