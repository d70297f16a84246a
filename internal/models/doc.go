// Package models defines the core domain models for Pennypool.
//
// # Ledger
//
//   - User: a participant with cached savings and expense totals
//   - SavingRecord / ExpenseRecord: individual ledger entries owned by one user
//   - Aggregates, Stats, TimeSeriesPoint: values derived from ledger entries
//
// # Collective targets
//
//   - Group: a shared savings goal owned by one user
//   - Challenge: a time-boxed savings target, owned by its creator
//   - Contribution: money moved from a user's net worth into a target
//
// # Rankings
//
//   - LeaderboardEntry, Placement: derived from per-user metric values
//
// # Design Principles
//
// 1. **Exact money**: amounts are decimal.Decimal in Go and integer cents in storage
// 2. **Derived totals**: cached user totals are only ever written by reconciliation
// 3. **Avoid circular references**: use ID strings instead of pointers for relationships
// 4. **Typed failures**: every failure maps onto one of the sentinel errors in errors.go
package models
