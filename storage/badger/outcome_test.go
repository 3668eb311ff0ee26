package badger

import (
	"context"
	"testing"
	"time"

	"github.com/theralab/startmatch/core"
)

func TestOutcomeBasics(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	outcome := &core.Outcome{
		ChallengeID:         core.ID(42),
		CompanyKey:          "acme-corp",
		FinalScore:          0.83,
		EmbeddingSimilarity: 0.91,
		MLScore:             0.64,
		RuleFeatures: core.RuleFeatures{
			IndustryMatch:  1.0,
			GeoMatch:       0.0,
			NameSimilarity: 0.2,
		},
	}

	if err := repos.Outcomes.AddOutcomes(ctx, outcome); err != nil {
		t.Fatalf("Failed to add outcome: %v", err)
	}

	if outcome.CreatedAt.IsZero() {
		t.Fatal("Expected CreatedAt to be stamped")
	}

	start := outcome.CreatedAt.Add(-time.Minute)
	end := outcome.CreatedAt.Add(time.Minute)
	rows, err := repos.Outcomes.GetOutcomesByDateRange(ctx, start, end)
	if err != nil {
		t.Fatalf("Failed to query outcomes: %v", err)
	}

	if len(rows) != 1 {
		t.Fatalf("Expected 1 outcome, got %d", len(rows))
	}
	if rows[0].CompanyKey != "acme-corp" {
		t.Fatalf("Expected acme-corp, got %s", rows[0].CompanyKey)
	}
	if rows[0].FinalScore != 0.83 {
		t.Fatalf("Expected final score 0.83, got %v", rows[0].FinalScore)
	}
	if rows[0].RuleFeatures.IndustryMatch != 1.0 {
		t.Fatalf("Expected industry match 1.0, got %v", rows[0].RuleFeatures.IndustryMatch)
	}
}

func TestOutcomeDateRange(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	now := time.Now().UTC()
	outcomes := []*core.Outcome{
		{ChallengeID: 1, CompanyKey: "older", FinalScore: 0.5, CreatedAt: now.Add(-2 * time.Hour)},
		{ChallengeID: 1, CompanyKey: "middle", FinalScore: 0.6, CreatedAt: now.Add(-1 * time.Hour)},
		{ChallengeID: 1, CompanyKey: "newest", FinalScore: 0.7, CreatedAt: now},
	}

	if err := repos.Outcomes.AddOutcomes(ctx, outcomes...); err != nil {
		t.Fatalf("Failed to add outcomes: %v", err)
	}

	// Last 90 minutes only
	rows, err := repos.Outcomes.GetOutcomesByDateRange(ctx, now.Add(-90*time.Minute), now.Add(time.Minute))
	if err != nil {
		t.Fatalf("Failed to query outcomes: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("Expected 2 outcomes in range, got %d", len(rows))
	}
	if rows[0].CompanyKey != "middle" || rows[1].CompanyKey != "newest" {
		t.Fatalf("Expected chronological order [middle newest], got [%s %s]", rows[0].CompanyKey, rows[1].CompanyKey)
	}
}

func TestOutcomeDateRange_ExactTimestamp(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	at := time.Now().UTC().Truncate(time.Microsecond)
	outcome := &core.Outcome{ChallengeID: 7, CompanyKey: "acme-corp", FinalScore: 0.9, CreatedAt: at}
	if err := repos.Outcomes.AddOutcomes(ctx, outcome); err != nil {
		t.Fatalf("Failed to add outcome: %v", err)
	}

	// start == end should still return rows stamped at exactly that instant
	rows, err := repos.Outcomes.GetOutcomesByDateRange(ctx, at, at)
	if err != nil {
		t.Fatalf("Failed to query outcomes: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Expected 1 outcome at exact timestamp, got %d", len(rows))
	}
}
