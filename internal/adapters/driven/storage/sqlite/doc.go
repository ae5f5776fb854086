// Package sqlite records analysis runs in a local SQLite database.
//
// It uses modernc.org/sqlite, a pure Go driver, so ronin still builds
// without CGO. Store implements driven.HistoryStore.
//
// # Schema
//
// The schema lives in versioned migrations under migrations/. Each run is
// stored once as its full JSON result plus one row per narrative, so a
// narrative's confidence can be charted across runs without decoding results.
//
// # Data Location
//
// By default the database is ~/.ronin/history.db.
package sqlite
