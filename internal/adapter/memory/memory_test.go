package memory

import (
	"context"
	"testing"
	"time"
)

func TestSeedPeople_Idempotent(t *testing.T) {
	db := New()
	ctx := context.Background()

	if err := db.SeedPeople(ctx, []string{"Samuel", "Fabian"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := db.SeedPeople(ctx, []string{"Fabian", "Genee"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	people, err := db.ListPeople(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(people) != 3 {
		t.Fatalf("expected 3 people, got %d", len(people))
	}
}

func TestGetPersonByName(t *testing.T) {
	db := New()
	ctx := context.Background()
	_ = db.SeedPeople(ctx, []string{"Samuel"})

	p, err := db.GetPersonByName(ctx, "Samuel")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p == nil || p.Name != "Samuel" {
		t.Fatalf("unexpected person: %v", p)
	}

	missing, err := db.GetPersonByName(ctx, "Nobody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown name, got %v", missing)
	}
}

func TestObservations_RoundTrip(t *testing.T) {
	db := New()
	ctx := context.Background()

	if err := db.AddObservation(ctx, 1, 80.5, "2026-03-01T08:00:00"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	obs, err := db.ListObservations(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(obs) != 1 {
		t.Fatalf("expected 1 observation, got %d", len(obs))
	}
	if obs[0].PersonID != 1 || obs[0].Weight != "80.5" || obs[0].Datetime != "2026-03-01T08:00:00" {
		t.Fatalf("unexpected row: %+v", obs[0])
	}
}

func TestSessions(t *testing.T) {
	db := New()
	ctx := context.Background()

	if err := db.CreateSession(ctx, 1, "tok", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s, err := db.GetSessionByToken(ctx, "tok")
	if err != nil || s == nil {
		t.Fatalf("expected session, got %v, %v", s, err)
	}

	_ = db.CreateSession(ctx, 1, "stale", time.Now().Add(-time.Hour))
	if err := db.DeleteExpiredSessions(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s, _ := db.GetSessionByToken(ctx, "stale"); s != nil {
		t.Fatal("expired session must be gone")
	}
	if s, _ := db.GetSessionByToken(ctx, "tok"); s == nil {
		t.Fatal("live session must survive")
	}
}
