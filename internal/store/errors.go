package store

import "errors"

// Sentinel errors returned by [TokenStore] implementations. Callers should
// use [errors.Is] to match against these values.
var (
	// ErrKeyNotFound is returned by Get when nothing is stored under the key.
	ErrKeyNotFound = errors.New("key not found")

	// ErrStoreClosed is returned by operations on a closed store.
	ErrStoreClosed = errors.New("token store is closed")

	// ErrEmptyKey is returned when an empty key is passed to Get or Set.
	ErrEmptyKey = errors.New("empty key")

	// ErrEmptyPath is returned by [NewFileStore] when no path is given.
	ErrEmptyPath = errors.New("empty token cache path")
)

// Low-level database operation errors. These are returned (or wrapped) by
// the SQL store when an operation fails before any result can be produced.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing an INSERT or DELETE
	// fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a result row fails.
	ErrScanningRow = errors.New("failed to scan row")
)
