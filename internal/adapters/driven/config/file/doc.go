// Package file provides the TOML-backed configuration store.
//
// The file lives at ~/.ronin/config.toml unless another directory is given.
// Nested tables are flattened into dot-separated keys on load and nested
// again on save, so
//
//	[github]
//	token = "ghp_..."
//	max_queries = 3
//
// is read back as "github.token" and "github.max_queries".
package file
