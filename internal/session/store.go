// Package session holds the ephemeral basket of anonymous visitors, keyed by
// the session token issued in the visitor's cookie. The mapping is product id
// (as string) to quantity; nothing here is checked against the catalog until
// read time.
package session

import "context"

// Store is injected into the basket service; it is the only way the
// application touches anonymous-session state.
type Store interface {
	// Basket returns the token's mapping. A token never seen before yields
	// an empty map, not an error.
	Basket(ctx context.Context, token string) (map[string]int, error)

	// SetBasket replaces the token's mapping.
	SetBasket(ctx context.Context, token string, items map[string]int) error

	// ClearBasket removes the token's mapping entirely.
	ClearBasket(ctx context.Context, token string) error
}
