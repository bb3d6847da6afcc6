package movie

// Snapshot is the read-only catalog shared by all request handlers. It is
// built once before the server starts listening and never changes, so
// readers need no locking.
type Snapshot struct {
	catalog Catalog
}

func NewSnapshot(catalog Catalog) *Snapshot {
	if catalog == nil {
		catalog = Catalog{}
	}
	return &Snapshot{catalog: catalog}
}

// Catalog borrows the snapshot's catalog. Callers must not modify it.
func (s *Snapshot) Catalog() Catalog {
	if s == nil {
		return Catalog{}
	}
	return s.catalog
}

func (s *Snapshot) Len() int {
	return len(s.Catalog())
}
