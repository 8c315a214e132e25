package schema

import "slices"

// Catalog is the whole parsed schema: relations by name, in insertion order.
type Catalog struct {
	names     []string
	relations map[string]*Relation
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{relations: map[string]*Relation{}}
}

// Add stores r under its name. A relation with the same name is replaced in
// place, keeping its original position; replaced reports whether that happened.
func (c *Catalog) Add(r *Relation) (replaced bool) {
	if _, ok := c.relations[r.Name]; ok {
		replaced = true
	} else {
		c.names = append(c.names, r.Name)
	}
	c.relations[r.Name] = r
	return replaced
}

// Relation returns the named relation or nil.
func (c *Catalog) Relation(name string) *Relation {
	return c.relations[name]
}

// Relations returns every relation in insertion order.
func (c *Catalog) Relations() []*Relation {
	result := make([]*Relation, 0, len(c.names))
	for _, name := range c.names {
		result = append(result, c.relations[name])
	}
	return result
}

// Names returns the relation names in insertion order.
func (c *Catalog) Names() []string {
	return slices.Clone(c.names)
}

// Len returns the number of relations.
func (c *Catalog) Len() int {
	return len(c.names)
}

// IsReferencedByOther reports whether any other relation has a foreign key pointing at r.
func (c *Catalog) IsReferencedByOther(r *Relation) bool {
	for _, other := range c.Relations() {
		if other.Name == r.Name {
			continue
		}
		if slices.Contains(other.ReferencedRelationNames(), r.Name) {
			return true
		}
	}
	return false
}
