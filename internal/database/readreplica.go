package database

import "gorm.io/gorm"

// readDB is an optional read-replica connection. Nil when no replica is
// configured, in which case readers fall back to the primary.
var readDB *gorm.DB

// GetReadDB returns the read-replica connection, or nil if none is configured.
func GetReadDB() *gorm.DB {
	return readDB
}

// SetReadDB installs a read-replica connection for read-heavy queries.
func SetReadDB(db *gorm.DB) {
	readDB = db
}
