// Package storage provides the key/value persistence used to keep DOT
// sources and rendered artifacts.
//
// # Overview
//
// [Store] has the four operations of the persistence collaborator (save,
// load, delete, exists) plus Close. Everything above this package,
// the pipeline and the HTTP server included, depends on the interface only.
//
//	st, err := storage.Open(ctx, storage.Config{Backend: "file", Dir: "~/.orgdot"})
//	if err != nil {
//	    return err
//	}
//	defer st.Close()
//	err = st.Save(ctx, "kitchen_sink.dot", []byte(src))
//
// # Backends
//
//   - [Memory]: map guarded by a mutex, for tests and one-shot CLI runs
//   - [File]: one file per key below a directory, written atomically
//   - [Redis]: github.com/redis/go-redis/v9, optional key prefix
//   - [Mongo]: go.mongodb.org/mongo-driver, one document per key
//   - [SQLite]: github.com/ncruces/go-sqlite3, a single documents table
//
// # Keys
//
// Keys are validated by [ValidateKey] in every backend: no empty keys, no
// control characters, no absolute paths, no ".." or "//" and no
// backslashes. [Keyer] builds the keys the pipeline uses and [Scoped]
// prefixes all keys of a store, for example per tenant.
//
// # Errors
//
// Load reports a missing key with [ErrNotFound]; Delete of a missing key
// succeeds. Network failures in the Redis and Mongo backends are marked
// [Retryable] and retried by [RetryWithBackoff].
package storage
