// Package history keeps a best-effort record of fired triggers.
//
// Every invocation handed to the automation daemon lands here with its
// outcome, so "what did pressing that key actually do" has an answer
// after the fact. Layer switches are session-local state changes, not
// invocations, and are not recorded.
//
// History is strictly best effort: a failed write is logged by the caller
// and dispatch carries on. Retention is enforced by Prune at startup.
//
// # Usage
//
//	repo := history.NewSQLiteRepository(db.DB)
//	_ = repo.Record(ctx, &history.Invocation{...})
//	recent, err := repo.Recent(ctx, 50)
package history
