// Package products keeps the client's snapshot of the remote product list.
//
// The snapshot is a full copy of the collection as of the last successful
// fetch: ReplaceAll swaps it in one transaction, so a reader never sees a mix
// of two fetches. Single-record Upsert and DeleteByID mirror the mutations the
// client performs between fetches.
//
// Typical usage
//
//	db, _ := products.InitDatabase(ctx, "catalog.db")
//	repo := products.NewSQLiteRepository(db)
//	_ = repo.ReplaceAll(ctx, list)
//	cached, _ := repo.GetAll(ctx)
package products
