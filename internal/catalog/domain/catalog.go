package domain

// Catalog is a read-only snapshot shared by every request.
type Catalog struct {
	entries    []Entry
	categories []string
	byID       map[int]int
}

// NewCatalog copies entries into a new snapshot.
func NewCatalog(entries []Entry) *Catalog {
	c := &Catalog{
		entries: make([]Entry, len(entries)),
		byID:    make(map[int]int, len(entries)),
	}
	copy(c.entries, entries)

	seen := make(map[string]bool)
	for i := range c.entries {
		c.byID[c.entries[i].ID] = i
		if label := c.entries[i].Label; !seen[label] {
			seen[label] = true
			c.categories = append(c.categories, label)
		}
	}
	return c
}

// Len returns the number of rows.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Entries returns the rows in catalog order. Callers must not modify them.
func (c *Catalog) Entries() []Entry {
	if c == nil {
		return nil
	}
	return c.entries
}

// Lookup finds an entry by product id.
func (c *Catalog) Lookup(id int) (*Entry, bool) {
	if c == nil {
		return nil, false
	}
	i, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	return &c.entries[i], true
}

// Categories returns unique labels in first-seen order.
func (c *Catalog) Categories() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.categories))
	copy(out, c.categories)
	return out
}

// Corpus returns every ingredient text in row order.
func (c *Catalog) Corpus() []string {
	docs := make([]string, 0, c.Len())
	for i := range c.Entries() {
		docs = append(docs, c.entries[i].Ingredients)
	}
	return docs
}

// ProductInfo returns the name and category of a product.
func (c *Catalog) ProductInfo(id int) (name, category string, ok bool) {
	e, ok := c.Lookup(id)
	if !ok {
		return "", "", false
	}
	return e.Name, e.Label, true
}
