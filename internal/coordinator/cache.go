package coordinator

import "github.com/jcmexdev/storefront-aggregator/internal/storefront/core/domain/entity"

// catalogCache holds the most recent successful product listing keyed by
// product ID. It is wholesale-replaced on every successful fetch, so it is
// always a coherent snapshot of a single server response, never a merge of
// responses from different points in time. Mutating workflows never write
// to it directly; they trigger a full re-fetch instead, so the client
// never has to guess at server-assigned fields.
type catalogCache struct {
	byID map[string]entity.Product
}

func newCatalogCache() *catalogCache {
	return &catalogCache{byID: make(map[string]entity.Product)}
}

// Replace swaps the whole snapshot for the given listing.
func (c *catalogCache) Replace(products []entity.Product) {
	next := make(map[string]entity.Product, len(products))
	for _, p := range products {
		next[p.ID] = p
	}
	c.byID = next
}

// Get returns the cached record for id, if present.
func (c *catalogCache) Get(id string) (entity.Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// Len returns the number of cached records.
func (c *catalogCache) Len() int {
	return len(c.byID)
}
