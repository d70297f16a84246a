package service

import (
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/pennypool/internal/auth"
	"github.com/mmynk/pennypool/internal/ledger"
	"github.com/mmynk/pennypool/internal/membership"
	"github.com/mmynk/pennypool/internal/middleware"
	"github.com/mmynk/pennypool/internal/ranking"
	"github.com/mmynk/pennypool/internal/storage"
	"github.com/mmynk/pennypool/internal/transfer"
	"github.com/mmynk/pennypool/pkg/api"
)

// Mount registers every pennypool.v1 service on mux. All procedures except
// CreateUser require a session token issued by jwtManager.
func Mount(mux *http.ServeMux, store storage.Store, jwtManager *auth.JWTManager) {
	private := connect.WithInterceptors(middleware.RequireAuth(jwtManager), middleware.LoggingInterceptor())

	userPath, userHandler := api.NewUserServiceHandler(NewUserService(store, jwtManager), private)
	mux.Handle(userPath, userHandler)

	ledgerPath, ledgerHandler := api.NewLedgerServiceHandler(NewLedgerService(ledger.NewService(store)), private)
	mux.Handle(ledgerPath, ledgerHandler)

	targetSvc := NewTargetService(membership.NewRegistry(store), transfer.NewEngine(store))
	targetPath, targetHandler := api.NewTargetServiceHandler(targetSvc, private)
	mux.Handle(targetPath, targetHandler)

	leaderboardPath, leaderboardHandler := api.NewLeaderboardServiceHandler(NewLeaderboardService(ranking.NewEngine(store)), private)
	mux.Handle(leaderboardPath, leaderboardHandler)
}
