package models

// Setting is a single key/value entry. Value holds the JSON encoding of the
// stored value so that strings, numbers, and booleans round-trip unchanged;
// decoding happens at the service boundary.
type Setting struct {
	Key   string `gorm:"primaryKey" json:"key"`
	Value string `gorm:"not null" json:"value"`
}
