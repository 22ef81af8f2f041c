// Package eol resolves product versions against the endoflife.date registry.
//
// The registry publishes one cycle table per product; each cycle names a
// release train (a major or major.minor version, depending on the product)
// and its EOL date. Fetched tables are cached for a freshness window, and a
// stale table is better than none: when a refresh fails, the most recent
// cached table is used regardless of age.
package eol

import "github.com/eolscan/eolscan/pkg/detect"

// Product identifies a product tracked by the EOL registry. The set is
// closed and mirrors the supported technologies one-to-one.
type Product int

const (
	ProductRuby Product = iota
	ProductRails
	ProductPostgreSQL
	ProductMySQL
	ProductRedis
	ProductMongoDB
	ProductPython
	ProductNodeJS
	ProductRust
	ProductGo
)

// Slug returns the product key used by the remote registry
// (endoflife.date/api/<slug>.json).
func (p Product) Slug() string {
	switch p {
	case ProductRuby:
		return "ruby"
	case ProductRails:
		return "rails"
	case ProductPostgreSQL:
		return "postgresql"
	case ProductMySQL:
		return "mysql"
	case ProductRedis:
		return "redis"
	case ProductMongoDB:
		return "mongodb"
	case ProductPython:
		return "python"
	case ProductNodeJS:
		return "nodejs"
	case ProductRust:
		return "rust"
	case ProductGo:
		return "go"
	}
	return "unknown"
}

// ProductForTech maps a detected technology to its registry product.
func ProductForTech(t detect.Tech) Product {
	switch t {
	case detect.Ruby:
		return ProductRuby
	case detect.Rails:
		return ProductRails
	case detect.Postgres:
		return ProductPostgreSQL
	case detect.MySQL:
		return ProductMySQL
	case detect.Redis:
		return ProductRedis
	case detect.Mongo:
		return ProductMongoDB
	case detect.Python:
		return ProductPython
	case detect.NodeJS:
		return ProductNodeJS
	case detect.Rust:
		return ProductRust
	case detect.Go:
		return ProductGo
	}
	return ProductRuby
}
