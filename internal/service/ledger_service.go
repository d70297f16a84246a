package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/pennypool/internal/ledger"
	"github.com/mmynk/pennypool/internal/models"
	"github.com/mmynk/pennypool/pkg/api"
)

// LedgerService implements the Connect LedgerService for the authenticated caller.
type LedgerService struct {
	ledger *ledger.Service
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(l *ledger.Service) *LedgerService {
	return &LedgerService{ledger: l}
}

// RecordSaving appends a saving.
func (s *LedgerService) RecordSaving(ctx context.Context, req *connect.Request[api.RecordSavingRequest]) (*connect.Response[api.RecordResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("RecordSaving request received", "user_id", userID, "amount", req.Msg.Amount.String())

	date, err := models.ParseDate(req.Msg.Date)
	if err != nil {
		return nil, toConnectError(err)
	}

	id, err := s.ledger.AddSaving(ctx, userID, req.Msg.Amount, req.Msg.Purpose, date)
	if err != nil {
		slog.Error("RecordSaving failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.RecordResponse{RecordID: id, NextView: api.ViewDashboard}), nil
}

// RecordExpense appends a plain expense.
func (s *LedgerService) RecordExpense(ctx context.Context, req *connect.Request[api.RecordExpenseRequest]) (*connect.Response[api.RecordResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("RecordExpense request received", "user_id", userID, "amount", req.Msg.Amount.String(), "category", req.Msg.Category)

	date, err := models.ParseDate(req.Msg.Date)
	if err != nil {
		return nil, toConnectError(err)
	}

	id, err := s.ledger.AddExpense(ctx, userID, req.Msg.Amount, req.Msg.Category, date)
	if err != nil {
		slog.Error("RecordExpense failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.RecordResponse{RecordID: id, NextView: api.ViewDashboard}), nil
}

// EditRecord changes one of the caller's records.
func (s *LedgerService) EditRecord(ctx context.Context, req *connect.Request[api.EditRecordRequest]) (*connect.Response[api.MutationResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("EditRecord request received", "user_id", userID, "record_id", req.Msg.RecordID, "kind", req.Msg.Kind)

	date, err := models.ParseDate(req.Msg.Date)
	if err != nil {
		return nil, toConnectError(err)
	}

	ok, err := s.ledger.Edit(ctx, models.RecordKind(req.Msg.Kind), userID, req.Msg.RecordID, req.Msg.Amount, req.Msg.Label, date)
	if err != nil {
		slog.Error("EditRecord failed", "user_id", userID, "record_id", req.Msg.RecordID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.MutationResponse{OK: ok, NextView: api.ViewLedger}), nil
}

// DeleteRecord removes one of the caller's records.
func (s *LedgerService) DeleteRecord(ctx context.Context, req *connect.Request[api.DeleteRecordRequest]) (*connect.Response[api.MutationResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("DeleteRecord request received", "user_id", userID, "record_id", req.Msg.RecordID, "kind", req.Msg.Kind)

	ok, err := s.ledger.Delete(ctx, models.RecordKind(req.Msg.Kind), userID, req.Msg.RecordID)
	if err != nil {
		slog.Error("DeleteRecord failed", "user_id", userID, "record_id", req.Msg.RecordID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.MutationResponse{OK: ok, NextView: api.ViewLedger}), nil
}

// QueryLedger lists the caller's records.
func (s *LedgerService) QueryLedger(ctx context.Context, req *connect.Request[api.QueryLedgerRequest]) (*connect.Response[api.QueryLedgerResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("QueryLedger request received",
		"user_id", userID,
		"sort_by", req.Msg.SortBy,
		"order", req.Msg.Order,
		"filter", req.Msg.Filter,
	)

	entries, err := s.ledger.List(ctx, models.ListQuery{
		UserID: userID,
		SortBy: models.SortKey(req.Msg.SortBy),
		Order:  models.SortOrder(req.Msg.Order),
		Filter: models.LedgerFilter(req.Msg.Filter),
	})
	if err != nil {
		slog.Error("QueryLedger failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.QueryLedgerResponse{Entries: entriesToAPI(entries)}), nil
}

// QueryStats summarizes the caller's ledger.
func (s *LedgerService) QueryStats(ctx context.Context, req *connect.Request[api.QueryStatsRequest]) (*connect.Response[api.QueryStatsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("QueryStats request received", "user_id", userID)

	stats, err := s.ledger.Stats(ctx, userID)
	if err != nil {
		slog.Error("QueryStats failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.QueryStatsResponse{Stats: statsToAPI(stats)}), nil
}

// QueryTimeSeries returns the caller's per-date totals.
func (s *LedgerService) QueryTimeSeries(ctx context.Context, req *connect.Request[api.QueryTimeSeriesRequest]) (*connect.Response[api.QueryTimeSeriesResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("QueryTimeSeries request received", "user_id", userID)

	points, err := s.ledger.TimeSeries(ctx, userID)
	if err != nil {
		slog.Error("QueryTimeSeries failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.QueryTimeSeriesResponse{Points: pointsToAPI(points)}), nil
}
