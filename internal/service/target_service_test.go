package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/pennypool/internal/models"
	"github.com/mmynk/pennypool/pkg/api"
)

func fund(t *testing.T, c *testClients, s session, savings, expenses string) {
	t.Helper()
	ctx := context.Background()
	if _, err := c.ledger.RecordSaving(ctx, as(s, &api.RecordSavingRequest{Amount: amt(savings), Purpose: "income"})); err != nil {
		t.Fatalf("RecordSaving failed: %v", err)
	}
	if expenses == "0" {
		return
	}
	if _, err := c.ledger.RecordExpense(ctx, as(s, &api.RecordExpenseRequest{Amount: amt(expenses), Category: "bills"})); err != nil {
		t.Fatalf("RecordExpense failed: %v", err)
	}
}

func nextMonth() string {
	return models.FormatDate(time.Now().UTC().AddDate(0, 1, 0))
}

func TestGroupLifecycle(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()
	alice := signUp(t, c, "Alice")
	bob := signUp(t, c, "Bob")

	created, err := c.targets.CreateGroup(ctx, as(alice, &api.CreateGroupRequest{
		Name: "Roommates", Description: "new couch", Goal: amt("800"),
	}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	group := created.Msg.Group
	if group.ID == "" || group.OwnerID != alice.userID || !group.CurrentSavings.IsZero() {
		t.Errorf("unexpected group: %+v", group)
	}
	if created.Msg.NextView != api.ViewTarget {
		t.Errorf("next view: expected target, got %s", created.Msg.NextView)
	}

	members, err := c.targets.ListMembers(ctx, as(alice, &api.ListMembersRequest{Kind: "group", TargetID: group.ID}))
	if err != nil {
		t.Fatalf("ListMembers failed: %v", err)
	}
	if len(members.Msg.UserIDs) != 1 || members.Msg.UserIDs[0] != alice.userID {
		t.Errorf("expected only the owner as member, got %v", members.Msg.UserIDs)
	}

	_, err = c.targets.EditGroup(ctx, as(bob, &api.EditGroupRequest{GroupID: group.ID, Name: "Mine", Goal: amt("1")}))
	expectCode(t, err, connect.CodePermissionDenied)

	_, err = c.targets.DeleteGroup(ctx, as(bob, &api.DeleteGroupRequest{GroupID: group.ID}))
	expectCode(t, err, connect.CodePermissionDenied)

	edited, err := c.targets.EditGroup(ctx, as(alice, &api.EditGroupRequest{GroupID: group.ID, Name: "Roommates", Goal: amt("900")}))
	if err != nil {
		t.Fatalf("EditGroup failed: %v", err)
	}
	if !edited.Msg.Group.Goal.Equal(amt("900")) {
		t.Errorf("goal: expected 900, got %s", edited.Msg.Group.Goal)
	}

	joined, err := c.targets.Join(ctx, as(bob, &api.MembershipRequest{Kind: "group", TargetID: group.ID}))
	if err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	if !joined.Msg.OK {
		t.Error("expected first join to change membership")
	}

	targets, err := c.targets.ListTargets(ctx, as(bob, &api.ListTargetsRequest{Kind: "group"}))
	if err != nil {
		t.Fatalf("ListTargets failed: %v", err)
	}
	if len(targets.Msg.Targets) != 1 || targets.Msg.Targets[0].ID != group.ID {
		t.Errorf("unexpected targets: %+v", targets.Msg.Targets)
	}

	left, err := c.targets.Leave(ctx, as(bob, &api.MembershipRequest{Kind: "group", TargetID: group.ID}))
	if err != nil {
		t.Fatalf("Leave failed: %v", err)
	}
	if !left.Msg.OK || left.Msg.NextView != api.ViewTargets {
		t.Errorf("unexpected leave response: %+v", left.Msg)
	}

	if _, err := c.targets.DeleteGroup(ctx, as(alice, &api.DeleteGroupRequest{GroupID: group.ID})); err != nil {
		t.Fatalf("DeleteGroup failed: %v", err)
	}
	_, err = c.targets.GetGroup(ctx, as(alice, &api.GetGroupRequest{GroupID: group.ID}))
	expectCode(t, err, connect.CodeNotFound)
}

func TestChallengeLifecycle(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()
	alice := signUp(t, c, "Alice")
	bob := signUp(t, c, "Bob")

	created, err := c.targets.CreateChallenge(ctx, as(alice, &api.CreateChallengeRequest{
		Name: "No takeout", EndDate: nextMonth(), Target: amt("200"),
	}))
	if err != nil {
		t.Fatalf("CreateChallenge failed: %v", err)
	}
	challenge := created.Msg.Challenge
	if challenge.StartDate == "" || challenge.EndDate != nextMonth() || challenge.OwnerID != alice.userID {
		t.Errorf("unexpected challenge: %+v", challenge)
	}

	_, err = c.targets.CreateChallenge(ctx, as(alice, &api.CreateChallengeRequest{
		Name: "Backwards", EndDate: "2000-01-01", Target: amt("1"),
	}))
	expectCode(t, err, connect.CodeInvalidArgument)

	_, err = c.targets.DeleteChallenge(ctx, as(bob, &api.DeleteChallengeRequest{ChallengeID: challenge.ID}))
	expectCode(t, err, connect.CodePermissionDenied)

	edited, err := c.targets.EditChallenge(ctx, as(alice, &api.EditChallengeRequest{
		ChallengeID: challenge.ID, Name: "No takeout", Target: amt("250"),
	}))
	if err != nil {
		t.Fatalf("EditChallenge failed: %v", err)
	}
	if edited.Msg.Challenge.EndDate != challenge.EndDate || !edited.Msg.Challenge.Target.Equal(amt("250")) {
		t.Errorf("unexpected edited challenge: %+v", edited.Msg.Challenge)
	}

	if _, err := c.targets.DeleteChallenge(ctx, as(alice, &api.DeleteChallengeRequest{ChallengeID: challenge.ID})); err != nil {
		t.Fatalf("DeleteChallenge failed: %v", err)
	}
	_, err = c.targets.GetChallenge(ctx, as(alice, &api.GetChallengeRequest{ChallengeID: challenge.ID}))
	expectCode(t, err, connect.CodeNotFound)
}

func TestContributeAndLeaderboard(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()
	a := signUp(t, c, "A")
	b := signUp(t, c, "B")
	fund(t, c, a, "500", "100")
	fund(t, c, b, "300", "50")

	created, err := c.targets.CreateChallenge(ctx, as(b, &api.CreateChallengeRequest{
		Name: "C", EndDate: nextMonth(), Target: amt("1000"),
	}))
	if err != nil {
		t.Fatalf("CreateChallenge failed: %v", err)
	}
	challengeID := created.Msg.Challenge.ID

	// A is not a member yet.
	_, err = c.targets.Contribute(ctx, as(a, &api.ContributeRequest{Kind: "challenge", TargetID: challengeID, Amount: amt("150")}))
	expectReason(t, err, connect.CodeFailedPrecondition, api.ReasonNotMember)

	if _, err := c.targets.Join(ctx, as(a, &api.MembershipRequest{Kind: "challenge", TargetID: challengeID})); err != nil {
		t.Fatalf("Join failed: %v", err)
	}

	contributed, err := c.targets.Contribute(ctx, as(a, &api.ContributeRequest{Kind: "challenge", TargetID: challengeID, Amount: amt("150")}))
	if err != nil {
		t.Fatalf("Contribute failed: %v", err)
	}
	if contributed.Msg.ExpenseID == "" || contributed.Msg.NextView != api.ViewTarget {
		t.Errorf("unexpected contribute response: %+v", contributed.Msg)
	}

	got, err := c.targets.GetChallenge(ctx, as(a, &api.GetChallengeRequest{ChallengeID: challengeID}))
	if err != nil {
		t.Fatalf("GetChallenge failed: %v", err)
	}
	if !got.Msg.Challenge.CurrentAmount.Equal(amt("150")) {
		t.Errorf("current amount: expected 150, got %s", got.Msg.Challenge.CurrentAmount)
	}

	_, err = c.targets.Contribute(ctx, as(a, &api.ContributeRequest{Kind: "challenge", TargetID: challengeID, Amount: amt("300")}))
	expectReason(t, err, connect.CodeFailedPrecondition, api.ReasonInsufficientFunds)

	// The contribution is an immutable expense.
	_, err = c.ledger.DeleteRecord(ctx, as(a, &api.DeleteRecordRequest{RecordID: contributed.Msg.ExpenseID, Kind: "expense"}))
	expectCode(t, err, connect.CodeInvalidArgument)

	list, err := c.ledger.QueryLedger(ctx, as(a, &api.QueryLedgerRequest{Filter: "expenses"}))
	if err != nil {
		t.Fatalf("QueryLedger failed: %v", err)
	}
	var contributions int
	for _, e := range list.Msg.Entries {
		if e.Contribution {
			contributions++
			if e.Label != "Challenge Contribution" {
				t.Errorf("contribution label: got %q", e.Label)
			}
		}
	}
	if contributions != 1 {
		t.Errorf("contributions: expected 1, got %d", contributions)
	}

	// A: 500 - 250 = 250, B: 300 - 50 = 250. Equal values tie-break on user ID.
	board, err := c.leaderboard.Leaderboard(ctx, as(a, &api.LeaderboardRequest{Metric: "net_worth", Limit: 10}))
	if err != nil {
		t.Fatalf("Leaderboard failed: %v", err)
	}
	if len(board.Msg.Entries) != 2 {
		t.Fatalf("entries: expected 2, got %d", len(board.Msg.Entries))
	}
	for i, e := range board.Msg.Entries {
		if e.Rank != i+1 || !e.Value.Equal(amt("250")) {
			t.Errorf("entry %d: %+v", i, e)
		}
	}
	if board.Msg.Entries[0].UserID > board.Msg.Entries[1].UserID {
		t.Errorf("tie not broken by user id: %+v", board.Msg.Entries)
	}

	expenses, err := c.leaderboard.Leaderboard(ctx, as(a, &api.LeaderboardRequest{Metric: "expenses"}))
	if err != nil {
		t.Fatalf("Leaderboard failed: %v", err)
	}
	if expenses.Msg.Entries[0].UserID != a.userID || !expenses.Msg.Entries[0].Value.Equal(amt("250")) {
		t.Errorf("expected A to lead expenses, got %+v", expenses.Msg.Entries[0])
	}

	placement, err := c.leaderboard.Placement(ctx, as(a, &api.PlacementRequest{Metric: "expenses"}))
	if err != nil {
		t.Fatalf("Placement failed: %v", err)
	}
	if placement.Msg.Rank == nil || *placement.Msg.Rank != 1 || placement.Msg.TotalUsers != 2 || *placement.Msg.Percentile != 100 {
		t.Errorf("unexpected placement: %+v", placement.Msg)
	}

	missing, err := c.leaderboard.Placement(ctx, as(a, &api.PlacementRequest{UserID: "nobody", Metric: "savings"}))
	if err != nil {
		t.Fatalf("Placement failed: %v", err)
	}
	if missing.Msg.Rank != nil || missing.Msg.Percentile != nil {
		t.Errorf("expected absent rank, got %+v", missing.Msg)
	}

	_, err = c.leaderboard.Leaderboard(ctx, as(a, &api.LeaderboardRequest{Metric: "net_worth", Limit: 7}))
	expectCode(t, err, connect.CodeInvalidArgument)
}

func TestContribute_ConcurrentRequests(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()
	racer := signUp(t, c, "Racer")
	fund(t, c, racer, "100", "0")

	created, err := c.targets.CreateGroup(ctx, as(racer, &api.CreateGroupRequest{Name: "Pot", Goal: amt("1000")}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	groupID := created.Msg.Group.ID

	const attempts = 5
	var wg sync.WaitGroup
	codes := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, codes[i] = c.targets.Contribute(ctx, as(racer, &api.ContributeRequest{Kind: "group", TargetID: groupID, Amount: amt("60")}))
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range codes {
		if err == nil {
			successes++
			continue
		}
		if code := connect.CodeOf(err); code != connect.CodeFailedPrecondition && code != connect.CodeAborted {
			t.Errorf("unexpected failure: %v", err)
		}
	}
	if successes != 1 {
		t.Errorf("successes: expected 1, got %d", successes)
	}

	group, err := c.targets.GetGroup(ctx, as(racer, &api.GetGroupRequest{GroupID: groupID}))
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if !group.Msg.Group.CurrentSavings.Equal(amt("60")) {
		t.Errorf("current savings: expected 60, got %s", group.Msg.Group.CurrentSavings)
	}
}
