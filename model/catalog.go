package model

type CatalogEntry struct {
	Song     string
	SafeName string
	Header   string
	ID       uint8
}

type Catalog = []CatalogEntry
