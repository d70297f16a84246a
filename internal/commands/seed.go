package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mmynk/pennypool/internal/ledger"
	"github.com/mmynk/pennypool/internal/membership"
	"github.com/mmynk/pennypool/internal/models"
	"github.com/mmynk/pennypool/internal/storage"
	"github.com/mmynk/pennypool/internal/transfer"
)

var (
	firstNames     = []string{"Ada", "Bruno", "Chidi", "Dana", "Elif", "Farah", "Goran", "Hana", "Ivo", "Jun", "Kofi", "Lena", "Mateo", "Nia", "Omar", "Priya"}
	lastNames      = []string{"Okafor", "Silva", "Novak", "Tanaka", "Haddad", "Berg", "Moreau", "Kowalski", "Reyes", "Lindqvist", "Mensah", "Rossi"}
	purposes       = []string{"salary", "freelance invoice", "birthday gift", "tax refund", "sold old bike", "bonus", "side project", "interest"}
	categories     = []string{"groceries", "rent", "transport", "coffee", "utilities", "books", "dining out", "gym", "phone", "travel"}
	groupNames     = []string{"Roommates", "Trip fund", "Wedding gift", "Band gear", "Book club", "Garden plot", "Game night", "Camping"}
	challengeNames = []string{"No-spend month", "Cook at home", "Coffee detox", "Bike to work", "Weekly fifty", "Round-up sprint"}
)

// seedCounts says how much mock data to generate.
type seedCounts struct {
	Users         int
	Savings       int
	Expenses      int
	Groups        int
	Challenges    int
	Memberships   int
	Contributions int
}

func newSeedCommand(opts *globalOptions) *cobra.Command {
	counts := seedCounts{}
	var seed int64

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with mock users, records and targets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			store, err := opts.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			got, err := runSeed(cmd.Context(), store, counts, rand.New(rand.NewSource(seed)))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(),
				"Seeded %s users, %s savings, %s expenses, %s groups, %s challenges, %s memberships and %s contributions (seed %d)\n",
				humanize.Comma(int64(got.Users)), humanize.Comma(int64(got.Savings)), humanize.Comma(int64(got.Expenses)),
				humanize.Comma(int64(got.Groups)), humanize.Comma(int64(got.Challenges)), humanize.Comma(int64(got.Memberships)),
				humanize.Comma(int64(got.Contributions)), seed)
			return err
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&counts.Users, "users", 20, "users to create")
	flags.IntVar(&counts.Savings, "savings", 100, "saving records to create")
	flags.IntVar(&counts.Expenses, "expenses", 150, "expense records to create")
	flags.IntVar(&counts.Groups, "groups", 5, "groups to create")
	flags.IntVar(&counts.Challenges, "challenges", 5, "challenges to create")
	flags.IntVar(&counts.Memberships, "memberships", 30, "join attempts to make")
	flags.IntVar(&counts.Contributions, "contributions", 20, "contribution attempts to make")
	flags.Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")

	return cmd
}

// runSeed generates mock data through the ledger, membership and transfer layers so
// every invariant holds. It returns how many of each item were actually created.
// Join attempts on a target the user already belongs to and contributions the user
// cannot afford are skipped.
func runSeed(ctx context.Context, store storage.Store, want seedCounts, rng *rand.Rand) (seedCounts, error) {
	var got seedCounts
	if want.Users <= 0 {
		return got, fmt.Errorf("%w: at least one user required", models.ErrValidation)
	}

	ledgerSvc := ledger.NewService(store)
	registry := membership.NewRegistry(store)
	engine := transfer.NewEngine(store)
	today := models.Day(time.Now())

	pick := func(list []string) string { return list[rng.Intn(len(list))] }
	cents := func(lo, hi int64) decimal.Decimal { return models.FromCents(lo + rng.Int63n(hi-lo+1)) }
	pastDate := func() time.Time { return today.AddDate(0, 0, -rng.Intn(730)) }

	userIDs := make([]string, 0, want.Users)
	for range want.Users {
		first, last := pick(firstNames), pick(lastNames)
		user := &models.User{
			DisplayName: first + " " + last,
			Email:       strings.ToLower(first+"."+last) + "@example.com",
		}
		if err := store.CreateUser(ctx, user); err != nil {
			return got, fmt.Errorf("creating user: %w", err)
		}
		userIDs = append(userIDs, user.ID)
		got.Users++
	}
	randomUser := func() string { return userIDs[rng.Intn(len(userIDs))] }

	for range want.Savings {
		if _, err := ledgerSvc.AddSaving(ctx, randomUser(), cents(10000, 200000), pick(purposes), pastDate()); err != nil {
			return got, fmt.Errorf("adding saving: %w", err)
		}
		got.Savings++
	}

	for range want.Expenses {
		if _, err := ledgerSvc.AddExpense(ctx, randomUser(), cents(1000, 50000), pick(categories), pastDate()); err != nil {
			return got, fmt.Errorf("adding expense: %w", err)
		}
		got.Expenses++
	}

	var targets []models.TargetRef
	for i := range want.Groups {
		name := fmt.Sprintf("%s %d", pick(groupNames), i+1)
		group, err := registry.CreateGroup(ctx, randomUser(), name, "", cents(500000, 2000000))
		if err != nil {
			return got, fmt.Errorf("creating group: %w", err)
		}
		targets = append(targets, models.TargetRef{Kind: models.TargetGroup, ID: group.ID, Name: group.Name})
		got.Groups++
	}

	for i := range want.Challenges {
		name := fmt.Sprintf("%s %d", pick(challengeNames), i+1)
		end := today.AddDate(0, 0, 1+rng.Intn(365))
		challenge, err := registry.CreateChallenge(ctx, randomUser(), name, "", end, cents(50000, 500000))
		if err != nil {
			return got, fmt.Errorf("creating challenge: %w", err)
		}
		targets = append(targets, models.TargetRef{Kind: models.TargetChallenge, ID: challenge.ID, Name: challenge.Name})
		got.Challenges++
	}

	if len(targets) == 0 {
		return got, nil
	}
	randomTarget := func() models.TargetRef { return targets[rng.Intn(len(targets))] }

	for range want.Memberships {
		t := randomTarget()
		joined, err := registry.Join(ctx, randomUser(), t.Kind, t.ID)
		if err != nil {
			return got, fmt.Errorf("joining %s: %w", t.Kind, err)
		}
		if joined {
			got.Memberships++
		}
	}

	for range want.Contributions {
		t := randomTarget()
		members, err := registry.ListMembers(ctx, t.Kind, t.ID)
		if err != nil {
			return got, err
		}
		userID := members[rng.Intn(len(members))]

		balance, err := ledgerSvc.AvailableBalance(ctx, userID)
		if err != nil {
			return got, err
		}
		maxCents := min(models.ToCents(balance), 20000)
		if maxCents < 100 {
			continue
		}

		_, err = engine.Contribute(ctx, userID, t.ID, t.Kind, cents(100, maxCents))
		if errors.Is(err, models.ErrInsufficientFunds) {
			continue
		}
		if err != nil {
			return got, fmt.Errorf("contributing to %s: %w", t.Kind, err)
		}
		got.Contributions++
	}

	slog.Info("Seed complete", "users", got.Users, "targets", len(targets), "contributions", got.Contributions)
	return got, nil
}
