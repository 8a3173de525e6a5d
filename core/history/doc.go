// Package history records reconciliation runs in a relational database.
//
// Every CLI or HTTP operation can be persisted as a Run row with one
// MatchRow per reported match. The full result document is kept in the
// summary column so it can be served again without recomputation.
//
// CheckSchema reflects over the GORM models and compares their column and
// type tags against the live tables, which surfaces drift after a manual
// migration on MySQL or PostgreSQL.
//
// # Usage
//
//	store := history.NewStore(db)
//	_ = store.Migrate()
//	run, _ := history.NewRun("/var/mail/export", result, started, time.Since(started))
//	_ = store.Save(ctx, run)
package history
