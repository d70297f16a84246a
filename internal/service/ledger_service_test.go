package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/pennypool/pkg/api"
)

func TestRecordAndQueryLedger(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()
	alice := signUp(t, c, "Alice")

	saving, err := c.ledger.RecordSaving(ctx, as(alice, &api.RecordSavingRequest{
		Amount: amt("500"), Purpose: "salary", Date: "2024-01-01",
	}))
	if err != nil {
		t.Fatalf("RecordSaving failed: %v", err)
	}
	if saving.Msg.RecordID == "" || saving.Msg.NextView != api.ViewDashboard {
		t.Errorf("unexpected response: %+v", saving.Msg)
	}

	if _, err := c.ledger.RecordExpense(ctx, as(alice, &api.RecordExpenseRequest{
		Amount: amt("100"), Category: "rent", Date: "2024-01-03",
	})); err != nil {
		t.Fatalf("RecordExpense failed: %v", err)
	}
	if _, err := c.ledger.RecordExpense(ctx, as(alice, &api.RecordExpenseRequest{
		Amount: amt("20.50"), Category: "food", Date: "2024-01-01",
	})); err != nil {
		t.Fatalf("RecordExpense failed: %v", err)
	}

	list, err := c.ledger.QueryLedger(ctx, as(alice, &api.QueryLedgerRequest{SortBy: "amount", Order: "desc"}))
	if err != nil {
		t.Fatalf("QueryLedger failed: %v", err)
	}
	if len(list.Msg.Entries) != 3 {
		t.Fatalf("entries: expected 3, got %d", len(list.Msg.Entries))
	}
	if list.Msg.Entries[0].Label != "salary" || list.Msg.Entries[2].Label != "food" {
		t.Errorf("unexpected order: %+v", list.Msg.Entries)
	}

	expenses, err := c.ledger.QueryLedger(ctx, as(alice, &api.QueryLedgerRequest{Filter: "expenses"}))
	if err != nil {
		t.Fatalf("QueryLedger failed: %v", err)
	}
	if len(expenses.Msg.Entries) != 2 || expenses.Msg.Entries[0].Date != "2024-01-01" {
		t.Errorf("unexpected expenses: %+v", expenses.Msg.Entries)
	}

	stats, err := c.ledger.QueryStats(ctx, as(alice, &api.QueryStatsRequest{}))
	if err != nil {
		t.Fatalf("QueryStats failed: %v", err)
	}
	s := stats.Msg.Stats
	if !s.NetWorth.Equal(amt("379.50")) {
		t.Errorf("net worth: expected 379.50, got %s", s.NetWorth)
	}
	if s.HighestExpense == nil || !s.HighestExpense.Equal(amt("100")) {
		t.Errorf("highest expense: expected 100, got %v", s.HighestExpense)
	}
	if s.LowestSaving == nil || !s.LowestSaving.Equal(amt("500")) {
		t.Errorf("lowest saving: expected 500, got %v", s.LowestSaving)
	}
	if s.SavingsCount != 1 || s.ExpensesCount != 2 {
		t.Errorf("counts: expected 1/2, got %d/%d", s.SavingsCount, s.ExpensesCount)
	}

	series, err := c.ledger.QueryTimeSeries(ctx, as(alice, &api.QueryTimeSeriesRequest{}))
	if err != nil {
		t.Fatalf("QueryTimeSeries failed: %v", err)
	}
	if len(series.Msg.Points) != 2 {
		t.Fatalf("points: expected 2, got %d", len(series.Msg.Points))
	}
	first, second := series.Msg.Points[0], series.Msg.Points[1]
	if first.Date != "2024-01-01" || !first.Savings.Equal(amt("500")) || !first.Expenses.Equal(amt("20.5")) {
		t.Errorf("unexpected first point: %+v", first)
	}
	if second.Date != "2024-01-03" || !second.Savings.IsZero() || !second.Expenses.Equal(amt("100")) {
		t.Errorf("unexpected second point: %+v", second)
	}
}

func TestQueryStats_Empty(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()
	bob := signUp(t, c, "Bob")

	stats, err := c.ledger.QueryStats(context.Background(), as(bob, &api.QueryStatsRequest{}))
	if err != nil {
		t.Fatalf("QueryStats failed: %v", err)
	}
	if stats.Msg.Stats.HighestSaving != nil || stats.Msg.Stats.LowestExpense != nil {
		t.Errorf("expected absent extremes, got %+v", stats.Msg.Stats)
	}
}

func TestRecord_Validation(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()
	alice := signUp(t, c, "Alice")

	_, err := c.ledger.RecordSaving(ctx, as(alice, &api.RecordSavingRequest{Amount: amt("0"), Purpose: "nothing"}))
	expectCode(t, err, connect.CodeInvalidArgument)

	_, err = c.ledger.RecordExpense(ctx, as(alice, &api.RecordExpenseRequest{Amount: amt("-3"), Category: "refund"}))
	expectCode(t, err, connect.CodeInvalidArgument)

	_, err = c.ledger.RecordSaving(ctx, as(alice, &api.RecordSavingRequest{Amount: amt("1"), Date: "01/02/2024"}))
	expectCode(t, err, connect.CodeInvalidArgument)

	_, err = c.ledger.RecordExpense(ctx, as(alice, &api.RecordExpenseRequest{Amount: amt("1"), Category: "Group Contribution"}))
	expectCode(t, err, connect.CodeInvalidArgument)

	_, err = c.ledger.QueryLedger(ctx, as(alice, &api.QueryLedgerRequest{SortBy: "purpose"}))
	expectCode(t, err, connect.CodeInvalidArgument)
}

func TestEditAndDeleteRecord(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()
	alice := signUp(t, c, "Alice")
	mallory := signUp(t, c, "Mallory")

	rec, err := c.ledger.RecordExpense(ctx, as(alice, &api.RecordExpenseRequest{Amount: amt("40"), Category: "books"}))
	if err != nil {
		t.Fatalf("RecordExpense failed: %v", err)
	}
	id := rec.Msg.RecordID

	edit, err := c.ledger.EditRecord(ctx, as(alice, &api.EditRecordRequest{
		RecordID: id, Kind: "expense", Amount: amt("45"), Label: "textbooks", Date: "2024-02-10",
	}))
	if err != nil {
		t.Fatalf("EditRecord failed: %v", err)
	}
	if !edit.Msg.OK || edit.Msg.NextView != api.ViewLedger {
		t.Errorf("unexpected edit response: %+v", edit.Msg)
	}

	_, err = c.ledger.EditRecord(ctx, as(mallory, &api.EditRecordRequest{
		RecordID: id, Kind: "expense", Amount: amt("1"), Label: "mine now",
	}))
	expectCode(t, err, connect.CodeNotFound)

	_, err = c.ledger.DeleteRecord(ctx, as(mallory, &api.DeleteRecordRequest{RecordID: id, Kind: "expense"}))
	expectCode(t, err, connect.CodeNotFound)

	_, err = c.ledger.DeleteRecord(ctx, as(alice, &api.DeleteRecordRequest{RecordID: id, Kind: "saving"}))
	expectCode(t, err, connect.CodeNotFound)

	list, err := c.ledger.QueryLedger(ctx, as(alice, &api.QueryLedgerRequest{}))
	if err != nil {
		t.Fatalf("QueryLedger failed: %v", err)
	}
	if len(list.Msg.Entries) != 1 || list.Msg.Entries[0].Label != "textbooks" || list.Msg.Entries[0].Date != "2024-02-10" {
		t.Errorf("unexpected ledger after edit: %+v", list.Msg.Entries)
	}

	del, err := c.ledger.DeleteRecord(ctx, as(alice, &api.DeleteRecordRequest{RecordID: id, Kind: "expense"}))
	if err != nil {
		t.Fatalf("DeleteRecord failed: %v", err)
	}
	if !del.Msg.OK {
		t.Error("expected ok delete")
	}

	stats, err := c.ledger.QueryStats(ctx, as(alice, &api.QueryStatsRequest{}))
	if err != nil {
		t.Fatalf("QueryStats failed: %v", err)
	}
	if !stats.Msg.Stats.TotalExpenses.IsZero() {
		t.Errorf("total expenses after delete: expected 0, got %s", stats.Msg.Stats.TotalExpenses)
	}
}
