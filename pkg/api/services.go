package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// Fully-qualified service names.
const (
	UserServiceName        = "pennypool.v1.UserService"
	LedgerServiceName      = "pennypool.v1.LedgerService"
	TargetServiceName      = "pennypool.v1.TargetService"
	LeaderboardServiceName = "pennypool.v1.LeaderboardService"
)

// Procedure paths, as they appear in the URL and in connect.Spec.Procedure.
const (
	UserServiceCreateUserProcedure = "/pennypool.v1.UserService/CreateUser"
	UserServiceGetUserProcedure    = "/pennypool.v1.UserService/GetUser"

	LedgerServiceRecordSavingProcedure    = "/pennypool.v1.LedgerService/RecordSaving"
	LedgerServiceRecordExpenseProcedure   = "/pennypool.v1.LedgerService/RecordExpense"
	LedgerServiceEditRecordProcedure      = "/pennypool.v1.LedgerService/EditRecord"
	LedgerServiceDeleteRecordProcedure    = "/pennypool.v1.LedgerService/DeleteRecord"
	LedgerServiceQueryLedgerProcedure     = "/pennypool.v1.LedgerService/QueryLedger"
	LedgerServiceQueryStatsProcedure      = "/pennypool.v1.LedgerService/QueryStats"
	LedgerServiceQueryTimeSeriesProcedure = "/pennypool.v1.LedgerService/QueryTimeSeries"

	TargetServiceCreateGroupProcedure     = "/pennypool.v1.TargetService/CreateGroup"
	TargetServiceEditGroupProcedure       = "/pennypool.v1.TargetService/EditGroup"
	TargetServiceDeleteGroupProcedure     = "/pennypool.v1.TargetService/DeleteGroup"
	TargetServiceGetGroupProcedure        = "/pennypool.v1.TargetService/GetGroup"
	TargetServiceCreateChallengeProcedure = "/pennypool.v1.TargetService/CreateChallenge"
	TargetServiceEditChallengeProcedure   = "/pennypool.v1.TargetService/EditChallenge"
	TargetServiceDeleteChallengeProcedure = "/pennypool.v1.TargetService/DeleteChallenge"
	TargetServiceGetChallengeProcedure    = "/pennypool.v1.TargetService/GetChallenge"
	TargetServiceJoinProcedure            = "/pennypool.v1.TargetService/Join"
	TargetServiceLeaveProcedure           = "/pennypool.v1.TargetService/Leave"
	TargetServiceListMembersProcedure     = "/pennypool.v1.TargetService/ListMembers"
	TargetServiceListTargetsProcedure     = "/pennypool.v1.TargetService/ListTargets"
	TargetServiceContributeProcedure      = "/pennypool.v1.TargetService/Contribute"

	LeaderboardServiceLeaderboardProcedure = "/pennypool.v1.LeaderboardService/Leaderboard"
	LeaderboardServicePlacementProcedure   = "/pennypool.v1.LeaderboardService/Placement"
)

// IsPublicProcedure reports whether procedure may be called without a session token.
func IsPublicProcedure(procedure string) bool {
	return procedure == UserServiceCreateUserProcedure
}

// route dispatches a service's procedures by URL path.
func route(service string, handlers map[string]*connect.Handler) (string, http.Handler) {
	return "/" + service + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// UserService

type UserServiceHandler interface {
	CreateUser(context.Context, *connect.Request[CreateUserRequest]) (*connect.Response[CreateUserResponse], error)
	GetUser(context.Context, *connect.Request[GetUserRequest]) (*connect.Response[GetUserResponse], error)
}

// NewUserServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewUserServiceHandler(svc UserServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return route(UserServiceName, map[string]*connect.Handler{
		UserServiceCreateUserProcedure: connect.NewUnaryHandler(UserServiceCreateUserProcedure, svc.CreateUser, opts...),
		UserServiceGetUserProcedure:    connect.NewUnaryHandler(UserServiceGetUserProcedure, svc.GetUser, opts...),
	})
}

// UserServiceClient is a client for pennypool.v1.UserService.
type UserServiceClient struct {
	createUser *connect.Client[CreateUserRequest, CreateUserResponse]
	getUser    *connect.Client[GetUserRequest, GetUserResponse]
}

// NewUserServiceClient constructs a client. baseURL is the server root, e.g.
// http://localhost:8080.
func NewUserServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *UserServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &UserServiceClient{
		createUser: connect.NewClient[CreateUserRequest, CreateUserResponse](httpClient, baseURL+UserServiceCreateUserProcedure, opts...),
		getUser:    connect.NewClient[GetUserRequest, GetUserResponse](httpClient, baseURL+UserServiceGetUserProcedure, opts...),
	}
}

func (c *UserServiceClient) CreateUser(ctx context.Context, req *connect.Request[CreateUserRequest]) (*connect.Response[CreateUserResponse], error) {
	return c.createUser.CallUnary(ctx, req)
}

func (c *UserServiceClient) GetUser(ctx context.Context, req *connect.Request[GetUserRequest]) (*connect.Response[GetUserResponse], error) {
	return c.getUser.CallUnary(ctx, req)
}

// LedgerService

type LedgerServiceHandler interface {
	RecordSaving(context.Context, *connect.Request[RecordSavingRequest]) (*connect.Response[RecordResponse], error)
	RecordExpense(context.Context, *connect.Request[RecordExpenseRequest]) (*connect.Response[RecordResponse], error)
	EditRecord(context.Context, *connect.Request[EditRecordRequest]) (*connect.Response[MutationResponse], error)
	DeleteRecord(context.Context, *connect.Request[DeleteRecordRequest]) (*connect.Response[MutationResponse], error)
	QueryLedger(context.Context, *connect.Request[QueryLedgerRequest]) (*connect.Response[QueryLedgerResponse], error)
	QueryStats(context.Context, *connect.Request[QueryStatsRequest]) (*connect.Response[QueryStatsResponse], error)
	QueryTimeSeries(context.Context, *connect.Request[QueryTimeSeriesRequest]) (*connect.Response[QueryTimeSeriesResponse], error)
}

func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return route(LedgerServiceName, map[string]*connect.Handler{
		LedgerServiceRecordSavingProcedure:    connect.NewUnaryHandler(LedgerServiceRecordSavingProcedure, svc.RecordSaving, opts...),
		LedgerServiceRecordExpenseProcedure:   connect.NewUnaryHandler(LedgerServiceRecordExpenseProcedure, svc.RecordExpense, opts...),
		LedgerServiceEditRecordProcedure:      connect.NewUnaryHandler(LedgerServiceEditRecordProcedure, svc.EditRecord, opts...),
		LedgerServiceDeleteRecordProcedure:    connect.NewUnaryHandler(LedgerServiceDeleteRecordProcedure, svc.DeleteRecord, opts...),
		LedgerServiceQueryLedgerProcedure:     connect.NewUnaryHandler(LedgerServiceQueryLedgerProcedure, svc.QueryLedger, opts...),
		LedgerServiceQueryStatsProcedure:      connect.NewUnaryHandler(LedgerServiceQueryStatsProcedure, svc.QueryStats, opts...),
		LedgerServiceQueryTimeSeriesProcedure: connect.NewUnaryHandler(LedgerServiceQueryTimeSeriesProcedure, svc.QueryTimeSeries, opts...),
	})
}

// LedgerServiceClient is a client for pennypool.v1.LedgerService.
type LedgerServiceClient struct {
	recordSaving    *connect.Client[RecordSavingRequest, RecordResponse]
	recordExpense   *connect.Client[RecordExpenseRequest, RecordResponse]
	editRecord      *connect.Client[EditRecordRequest, MutationResponse]
	deleteRecord    *connect.Client[DeleteRecordRequest, MutationResponse]
	queryLedger     *connect.Client[QueryLedgerRequest, QueryLedgerResponse]
	queryStats      *connect.Client[QueryStatsRequest, QueryStatsResponse]
	queryTimeSeries *connect.Client[QueryTimeSeriesRequest, QueryTimeSeriesResponse]
}

func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &LedgerServiceClient{
		recordSaving:    connect.NewClient[RecordSavingRequest, RecordResponse](httpClient, baseURL+LedgerServiceRecordSavingProcedure, opts...),
		recordExpense:   connect.NewClient[RecordExpenseRequest, RecordResponse](httpClient, baseURL+LedgerServiceRecordExpenseProcedure, opts...),
		editRecord:      connect.NewClient[EditRecordRequest, MutationResponse](httpClient, baseURL+LedgerServiceEditRecordProcedure, opts...),
		deleteRecord:    connect.NewClient[DeleteRecordRequest, MutationResponse](httpClient, baseURL+LedgerServiceDeleteRecordProcedure, opts...),
		queryLedger:     connect.NewClient[QueryLedgerRequest, QueryLedgerResponse](httpClient, baseURL+LedgerServiceQueryLedgerProcedure, opts...),
		queryStats:      connect.NewClient[QueryStatsRequest, QueryStatsResponse](httpClient, baseURL+LedgerServiceQueryStatsProcedure, opts...),
		queryTimeSeries: connect.NewClient[QueryTimeSeriesRequest, QueryTimeSeriesResponse](httpClient, baseURL+LedgerServiceQueryTimeSeriesProcedure, opts...),
	}
}

func (c *LedgerServiceClient) RecordSaving(ctx context.Context, req *connect.Request[RecordSavingRequest]) (*connect.Response[RecordResponse], error) {
	return c.recordSaving.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) RecordExpense(ctx context.Context, req *connect.Request[RecordExpenseRequest]) (*connect.Response[RecordResponse], error) {
	return c.recordExpense.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) EditRecord(ctx context.Context, req *connect.Request[EditRecordRequest]) (*connect.Response[MutationResponse], error) {
	return c.editRecord.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) DeleteRecord(ctx context.Context, req *connect.Request[DeleteRecordRequest]) (*connect.Response[MutationResponse], error) {
	return c.deleteRecord.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) QueryLedger(ctx context.Context, req *connect.Request[QueryLedgerRequest]) (*connect.Response[QueryLedgerResponse], error) {
	return c.queryLedger.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) QueryStats(ctx context.Context, req *connect.Request[QueryStatsRequest]) (*connect.Response[QueryStatsResponse], error) {
	return c.queryStats.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) QueryTimeSeries(ctx context.Context, req *connect.Request[QueryTimeSeriesRequest]) (*connect.Response[QueryTimeSeriesResponse], error) {
	return c.queryTimeSeries.CallUnary(ctx, req)
}

// TargetService

type TargetServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[CreateGroupRequest]) (*connect.Response[GroupResponse], error)
	EditGroup(context.Context, *connect.Request[EditGroupRequest]) (*connect.Response[GroupResponse], error)
	DeleteGroup(context.Context, *connect.Request[DeleteGroupRequest]) (*connect.Response[MutationResponse], error)
	GetGroup(context.Context, *connect.Request[GetGroupRequest]) (*connect.Response[GroupResponse], error)
	CreateChallenge(context.Context, *connect.Request[CreateChallengeRequest]) (*connect.Response[ChallengeResponse], error)
	EditChallenge(context.Context, *connect.Request[EditChallengeRequest]) (*connect.Response[ChallengeResponse], error)
	DeleteChallenge(context.Context, *connect.Request[DeleteChallengeRequest]) (*connect.Response[MutationResponse], error)
	GetChallenge(context.Context, *connect.Request[GetChallengeRequest]) (*connect.Response[ChallengeResponse], error)
	Join(context.Context, *connect.Request[MembershipRequest]) (*connect.Response[MutationResponse], error)
	Leave(context.Context, *connect.Request[MembershipRequest]) (*connect.Response[MutationResponse], error)
	ListMembers(context.Context, *connect.Request[ListMembersRequest]) (*connect.Response[ListMembersResponse], error)
	ListTargets(context.Context, *connect.Request[ListTargetsRequest]) (*connect.Response[ListTargetsResponse], error)
	Contribute(context.Context, *connect.Request[ContributeRequest]) (*connect.Response[ContributeResponse], error)
}

func NewTargetServiceHandler(svc TargetServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return route(TargetServiceName, map[string]*connect.Handler{
		TargetServiceCreateGroupProcedure:     connect.NewUnaryHandler(TargetServiceCreateGroupProcedure, svc.CreateGroup, opts...),
		TargetServiceEditGroupProcedure:       connect.NewUnaryHandler(TargetServiceEditGroupProcedure, svc.EditGroup, opts...),
		TargetServiceDeleteGroupProcedure:     connect.NewUnaryHandler(TargetServiceDeleteGroupProcedure, svc.DeleteGroup, opts...),
		TargetServiceGetGroupProcedure:        connect.NewUnaryHandler(TargetServiceGetGroupProcedure, svc.GetGroup, opts...),
		TargetServiceCreateChallengeProcedure: connect.NewUnaryHandler(TargetServiceCreateChallengeProcedure, svc.CreateChallenge, opts...),
		TargetServiceEditChallengeProcedure:   connect.NewUnaryHandler(TargetServiceEditChallengeProcedure, svc.EditChallenge, opts...),
		TargetServiceDeleteChallengeProcedure: connect.NewUnaryHandler(TargetServiceDeleteChallengeProcedure, svc.DeleteChallenge, opts...),
		TargetServiceGetChallengeProcedure:    connect.NewUnaryHandler(TargetServiceGetChallengeProcedure, svc.GetChallenge, opts...),
		TargetServiceJoinProcedure:            connect.NewUnaryHandler(TargetServiceJoinProcedure, svc.Join, opts...),
		TargetServiceLeaveProcedure:           connect.NewUnaryHandler(TargetServiceLeaveProcedure, svc.Leave, opts...),
		TargetServiceListMembersProcedure:     connect.NewUnaryHandler(TargetServiceListMembersProcedure, svc.ListMembers, opts...),
		TargetServiceListTargetsProcedure:     connect.NewUnaryHandler(TargetServiceListTargetsProcedure, svc.ListTargets, opts...),
		TargetServiceContributeProcedure:      connect.NewUnaryHandler(TargetServiceContributeProcedure, svc.Contribute, opts...),
	})
}

// TargetServiceClient is a client for pennypool.v1.TargetService.
type TargetServiceClient struct {
	createGroup     *connect.Client[CreateGroupRequest, GroupResponse]
	editGroup       *connect.Client[EditGroupRequest, GroupResponse]
	deleteGroup     *connect.Client[DeleteGroupRequest, MutationResponse]
	getGroup        *connect.Client[GetGroupRequest, GroupResponse]
	createChallenge *connect.Client[CreateChallengeRequest, ChallengeResponse]
	editChallenge   *connect.Client[EditChallengeRequest, ChallengeResponse]
	deleteChallenge *connect.Client[DeleteChallengeRequest, MutationResponse]
	getChallenge    *connect.Client[GetChallengeRequest, ChallengeResponse]
	join            *connect.Client[MembershipRequest, MutationResponse]
	leave           *connect.Client[MembershipRequest, MutationResponse]
	listMembers     *connect.Client[ListMembersRequest, ListMembersResponse]
	listTargets     *connect.Client[ListTargetsRequest, ListTargetsResponse]
	contribute      *connect.Client[ContributeRequest, ContributeResponse]
}

func NewTargetServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *TargetServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &TargetServiceClient{
		createGroup:     connect.NewClient[CreateGroupRequest, GroupResponse](httpClient, baseURL+TargetServiceCreateGroupProcedure, opts...),
		editGroup:       connect.NewClient[EditGroupRequest, GroupResponse](httpClient, baseURL+TargetServiceEditGroupProcedure, opts...),
		deleteGroup:     connect.NewClient[DeleteGroupRequest, MutationResponse](httpClient, baseURL+TargetServiceDeleteGroupProcedure, opts...),
		getGroup:        connect.NewClient[GetGroupRequest, GroupResponse](httpClient, baseURL+TargetServiceGetGroupProcedure, opts...),
		createChallenge: connect.NewClient[CreateChallengeRequest, ChallengeResponse](httpClient, baseURL+TargetServiceCreateChallengeProcedure, opts...),
		editChallenge:   connect.NewClient[EditChallengeRequest, ChallengeResponse](httpClient, baseURL+TargetServiceEditChallengeProcedure, opts...),
		deleteChallenge: connect.NewClient[DeleteChallengeRequest, MutationResponse](httpClient, baseURL+TargetServiceDeleteChallengeProcedure, opts...),
		getChallenge:    connect.NewClient[GetChallengeRequest, ChallengeResponse](httpClient, baseURL+TargetServiceGetChallengeProcedure, opts...),
		join:            connect.NewClient[MembershipRequest, MutationResponse](httpClient, baseURL+TargetServiceJoinProcedure, opts...),
		leave:           connect.NewClient[MembershipRequest, MutationResponse](httpClient, baseURL+TargetServiceLeaveProcedure, opts...),
		listMembers:     connect.NewClient[ListMembersRequest, ListMembersResponse](httpClient, baseURL+TargetServiceListMembersProcedure, opts...),
		listTargets:     connect.NewClient[ListTargetsRequest, ListTargetsResponse](httpClient, baseURL+TargetServiceListTargetsProcedure, opts...),
		contribute:      connect.NewClient[ContributeRequest, ContributeResponse](httpClient, baseURL+TargetServiceContributeProcedure, opts...),
	}
}

func (c *TargetServiceClient) CreateGroup(ctx context.Context, req *connect.Request[CreateGroupRequest]) (*connect.Response[GroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *TargetServiceClient) EditGroup(ctx context.Context, req *connect.Request[EditGroupRequest]) (*connect.Response[GroupResponse], error) {
	return c.editGroup.CallUnary(ctx, req)
}

func (c *TargetServiceClient) DeleteGroup(ctx context.Context, req *connect.Request[DeleteGroupRequest]) (*connect.Response[MutationResponse], error) {
	return c.deleteGroup.CallUnary(ctx, req)
}

func (c *TargetServiceClient) GetGroup(ctx context.Context, req *connect.Request[GetGroupRequest]) (*connect.Response[GroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *TargetServiceClient) CreateChallenge(ctx context.Context, req *connect.Request[CreateChallengeRequest]) (*connect.Response[ChallengeResponse], error) {
	return c.createChallenge.CallUnary(ctx, req)
}

func (c *TargetServiceClient) EditChallenge(ctx context.Context, req *connect.Request[EditChallengeRequest]) (*connect.Response[ChallengeResponse], error) {
	return c.editChallenge.CallUnary(ctx, req)
}

func (c *TargetServiceClient) DeleteChallenge(ctx context.Context, req *connect.Request[DeleteChallengeRequest]) (*connect.Response[MutationResponse], error) {
	return c.deleteChallenge.CallUnary(ctx, req)
}

func (c *TargetServiceClient) GetChallenge(ctx context.Context, req *connect.Request[GetChallengeRequest]) (*connect.Response[ChallengeResponse], error) {
	return c.getChallenge.CallUnary(ctx, req)
}

func (c *TargetServiceClient) Join(ctx context.Context, req *connect.Request[MembershipRequest]) (*connect.Response[MutationResponse], error) {
	return c.join.CallUnary(ctx, req)
}

func (c *TargetServiceClient) Leave(ctx context.Context, req *connect.Request[MembershipRequest]) (*connect.Response[MutationResponse], error) {
	return c.leave.CallUnary(ctx, req)
}

func (c *TargetServiceClient) ListMembers(ctx context.Context, req *connect.Request[ListMembersRequest]) (*connect.Response[ListMembersResponse], error) {
	return c.listMembers.CallUnary(ctx, req)
}

func (c *TargetServiceClient) ListTargets(ctx context.Context, req *connect.Request[ListTargetsRequest]) (*connect.Response[ListTargetsResponse], error) {
	return c.listTargets.CallUnary(ctx, req)
}

func (c *TargetServiceClient) Contribute(ctx context.Context, req *connect.Request[ContributeRequest]) (*connect.Response[ContributeResponse], error) {
	return c.contribute.CallUnary(ctx, req)
}

// LeaderboardService

type LeaderboardServiceHandler interface {
	Leaderboard(context.Context, *connect.Request[LeaderboardRequest]) (*connect.Response[LeaderboardResponse], error)
	Placement(context.Context, *connect.Request[PlacementRequest]) (*connect.Response[PlacementResponse], error)
}

func NewLeaderboardServiceHandler(svc LeaderboardServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return route(LeaderboardServiceName, map[string]*connect.Handler{
		LeaderboardServiceLeaderboardProcedure: connect.NewUnaryHandler(LeaderboardServiceLeaderboardProcedure, svc.Leaderboard, opts...),
		LeaderboardServicePlacementProcedure:   connect.NewUnaryHandler(LeaderboardServicePlacementProcedure, svc.Placement, opts...),
	})
}

// LeaderboardServiceClient is a client for pennypool.v1.LeaderboardService.
type LeaderboardServiceClient struct {
	leaderboard *connect.Client[LeaderboardRequest, LeaderboardResponse]
	placement   *connect.Client[PlacementRequest, PlacementResponse]
}

func NewLeaderboardServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *LeaderboardServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &LeaderboardServiceClient{
		leaderboard: connect.NewClient[LeaderboardRequest, LeaderboardResponse](httpClient, baseURL+LeaderboardServiceLeaderboardProcedure, opts...),
		placement:   connect.NewClient[PlacementRequest, PlacementResponse](httpClient, baseURL+LeaderboardServicePlacementProcedure, opts...),
	}
}

func (c *LeaderboardServiceClient) Leaderboard(ctx context.Context, req *connect.Request[LeaderboardRequest]) (*connect.Response[LeaderboardResponse], error) {
	return c.leaderboard.CallUnary(ctx, req)
}

func (c *LeaderboardServiceClient) Placement(ctx context.Context, req *connect.Request[PlacementRequest]) (*connect.Response[PlacementResponse], error) {
	return c.placement.CallUnary(ctx, req)
}
