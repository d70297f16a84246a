package api

import "github.com/shopspring/decimal"

// View names a screen the presentation layer should show after a mutation.
type View string

const (
	ViewDashboard View = "dashboard"
	ViewLedger    View = "ledger"
	ViewTargets   View = "targets"
	ViewTarget    View = "target"
)

// User is a user profile with its cached totals.
type User struct {
	ID            string          `json:"id"`
	DisplayName   string          `json:"display_name"`
	Email         string          `json:"email,omitempty"`
	TotalSavings  decimal.Decimal `json:"total_savings"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetWorth      decimal.Decimal `json:"net_worth"`
	CreatedAt     int64           `json:"created_at"`
}

type CreateUserRequest struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email,omitempty"`
}

// CreateUserResponse carries the session token to send as "Authorization: Bearer".
type CreateUserResponse struct {
	User     *User  `json:"user"`
	Token    string `json:"token"`
	NextView View   `json:"next_view"`
}

type GetUserRequest struct {
	UserID string `json:"user_id"`
}

type GetUserResponse struct {
	User *User `json:"user"`
}

// Ledger

type RecordSavingRequest struct {
	Amount  decimal.Decimal `json:"amount"`
	Purpose string          `json:"purpose"`
	// Date defaults to today.
	Date string `json:"date,omitempty"`
}

type RecordExpenseRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
	Date     string          `json:"date,omitempty"`
}

type RecordResponse struct {
	RecordID string `json:"record_id"`
	NextView View   `json:"next_view"`
}

// EditRecordRequest replaces amount and label of a record. An empty Date keeps the
// stored date.
type EditRecordRequest struct {
	RecordID string          `json:"record_id"`
	Kind     string          `json:"kind"`
	Amount   decimal.Decimal `json:"amount"`
	Label    string          `json:"label"`
	Date     string          `json:"date,omitempty"`
}

type DeleteRecordRequest struct {
	RecordID string `json:"record_id"`
	Kind     string `json:"kind"`
}

type MutationResponse struct {
	OK       bool `json:"ok"`
	NextView View `json:"next_view"`
}

type QueryLedgerRequest struct {
	SortBy string `json:"sort_by,omitempty"`
	Order  string `json:"order,omitempty"`
	Filter string `json:"filter,omitempty"`
}

type LedgerEntry struct {
	ID           string          `json:"id"`
	Kind         string          `json:"kind"`
	Amount       decimal.Decimal `json:"amount"`
	Label        string          `json:"label"`
	Date         string          `json:"date"`
	Contribution bool            `json:"contribution,omitempty"`
}

type QueryLedgerResponse struct {
	Entries []LedgerEntry `json:"entries"`
}

type QueryStatsRequest struct{}

// Stats is the dashboard summary. Highest and lowest values are absent when the
// user has no records of that kind.
type Stats struct {
	TotalSavings   decimal.Decimal  `json:"total_savings"`
	TotalExpenses  decimal.Decimal  `json:"total_expenses"`
	NetWorth       decimal.Decimal  `json:"net_worth"`
	HighestSaving  *decimal.Decimal `json:"highest_saving,omitempty"`
	LowestSaving   *decimal.Decimal `json:"lowest_saving,omitempty"`
	HighestExpense *decimal.Decimal `json:"highest_expense,omitempty"`
	LowestExpense  *decimal.Decimal `json:"lowest_expense,omitempty"`
	SavingsCount   int              `json:"savings_count"`
	ExpensesCount  int              `json:"expenses_count"`
}

type QueryStatsResponse struct {
	Stats Stats `json:"stats"`
}

type QueryTimeSeriesRequest struct{}

type TimeSeriesPoint struct {
	Date     string          `json:"date"`
	Savings  decimal.Decimal `json:"savings"`
	Expenses decimal.Decimal `json:"expenses"`
}

type QueryTimeSeriesResponse struct {
	Points []TimeSeriesPoint `json:"points"`
}

// Targets

type Group struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Goal           decimal.Decimal `json:"goal"`
	CurrentSavings decimal.Decimal `json:"current_savings"`
	OwnerID        string          `json:"owner_id"`
	CreatedAt      int64           `json:"created_at"`
}

type Challenge struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	StartDate     string          `json:"start_date"`
	EndDate       string          `json:"end_date"`
	Target        decimal.Decimal `json:"target"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	OwnerID       string          `json:"owner_id"`
	CreatedAt     int64           `json:"created_at"`
}

type CreateGroupRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Goal        decimal.Decimal `json:"goal"`
}

type EditGroupRequest struct {
	GroupID     string          `json:"group_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Goal        decimal.Decimal `json:"goal"`
}

type GetGroupRequest struct {
	GroupID string `json:"group_id"`
}

type DeleteGroupRequest struct {
	GroupID string `json:"group_id"`
}

type GroupResponse struct {
	Group    *Group `json:"group"`
	NextView View   `json:"next_view,omitempty"`
}

type CreateChallengeRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	EndDate     string          `json:"end_date"`
	Target      decimal.Decimal `json:"target"`
}

// EditChallengeRequest changes a challenge. An empty EndDate keeps the stored one.
type EditChallengeRequest struct {
	ChallengeID string          `json:"challenge_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	EndDate     string          `json:"end_date,omitempty"`
	Target      decimal.Decimal `json:"target"`
}

type GetChallengeRequest struct {
	ChallengeID string `json:"challenge_id"`
}

type DeleteChallengeRequest struct {
	ChallengeID string `json:"challenge_id"`
}

type ChallengeResponse struct {
	Challenge *Challenge `json:"challenge"`
	NextView  View       `json:"next_view,omitempty"`
}

// MembershipRequest joins or leaves a target on behalf of the caller.
type MembershipRequest struct {
	Kind     string `json:"kind"`
	TargetID string `json:"target_id"`
}

type ListMembersRequest struct {
	Kind     string `json:"kind"`
	TargetID string `json:"target_id"`
}

type ListMembersResponse struct {
	UserIDs []string `json:"user_ids"`
}

type ListTargetsRequest struct {
	Kind string `json:"kind"`
}

type TargetRef struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ListTargetsResponse struct {
	Targets []TargetRef `json:"targets"`
}

type ContributeRequest struct {
	Kind     string          `json:"kind"`
	TargetID string          `json:"target_id"`
	Amount   decimal.Decimal `json:"amount"`
}

type ContributeResponse struct {
	ExpenseID string `json:"expense_id"`
	NextView  View   `json:"next_view"`
}

// Leaderboard

type LeaderboardRequest struct {
	Metric string `json:"metric"`
	// Limit is 10, 50 or 100; 0 returns every user.
	Limit int `json:"limit,omitempty"`
}

type LeaderboardEntry struct {
	Rank        int             `json:"rank"`
	UserID      string          `json:"user_id"`
	DisplayName string          `json:"display_name"`
	Value       decimal.Decimal `json:"value"`
}

type LeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// PlacementRequest locates a user. An empty UserID means the caller.
type PlacementRequest struct {
	UserID string `json:"user_id,omitempty"`
	Metric string `json:"metric"`
}

// PlacementResponse omits Rank and Percentile when the user is not ranked.
type PlacementResponse struct {
	Rank       *int     `json:"rank,omitempty"`
	TotalUsers int      `json:"total_users"`
	Percentile *float64 `json:"percentile,omitempty"`
}
