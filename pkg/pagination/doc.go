// Package pagination walks every page of a play-history result set.
//
// The search API pages with total/offset/limit metadata. A Pager starts
// from the caller's options, then keeps re-issuing the search with the
// offset advanced by the last page's limit until the declared total is
// reached. Offsets are recomputed from the most recently fetched page
// rather than tracked locally: the server's metadata is authoritative.
//
// Example usage:
//
//	pager := pagination.New(searchClient, query.Params{Station: query.String("triplej")})
//	for pager.Next(ctx) {
//		page := pager.Current()
//		// process page.Plays
//	}
//	if err := pager.Err(); err != nil {
//		// handle failure
//	}
//
// Each Pager is a fresh, finite iteration: it is not restartable, and it
// suspends exactly at each search call. Requests are strictly sequential;
// parallel page fetching is a caller-level concern built on the
// single-page Search primitive.
package pagination
