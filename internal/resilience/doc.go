// Package resilience groups the fault tolerance helpers placed in front of
// the journal store.
//
//   - circuitbreaker: a gobreaker-backed JournalRepository decorator
//   - retry: exponential backoff for idempotent reads
//
// Usage:
//
//	repo := circuitbreaker.NewJournalRepository(postgres.NewJournalRepo(db), circuitbreaker.StoreConfig())
//	svc := &journal.Service{Repo: repo}
package resilience
