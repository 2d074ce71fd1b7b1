package shopify

import "context"

// PageInfo is the cursor block of a GraphQL connection.
type PageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

// Connection is a page of nodes.
type Connection[T any] struct {
	Nodes    []T      `json:"nodes"`
	PageInfo PageInfo `json:"pageInfo"`
}

// PageFunc fetches the page after the given cursor; nil means the first page.
type PageFunc[T any] func(ctx context.Context, after *string) (Connection[T], error)

// Paginate follows cursors until the last page and concatenates the nodes.
func Paginate[T any](ctx context.Context, fetch PageFunc[T]) ([]T, error) {
	var (
		all   []T
		after *string
	)
	for {
		page, err := fetch(ctx, after)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Nodes...)

		if !page.PageInfo.HasNextPage || page.PageInfo.EndCursor == "" {
			return all, nil
		}
		cursor := page.PageInfo.EndCursor
		after = &cursor
	}
}
