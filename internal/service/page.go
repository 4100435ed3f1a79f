package service

// NextPage computes the follow-up page number for a zero-based paginated
// query. A page is assumed to be the last one when it comes back smaller
// than the requested limit, so a full page always advertises a next page
// even when it is the final one. Applied uniformly to every paginated
// listing in the service layer.
func NextPage(page, limit, count int) *int {
	if limit <= 0 || count < limit {
		return nil
	}
	next := page + 1
	return &next
}
