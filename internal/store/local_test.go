package store

import (
	"context"
	"path/filepath"
	"testing"

	"momentum-cli/internal/model"
)

func openTestLocal(t *testing.T) *Local {
	t.Helper()
	l, err := OpenLocalAt(context.Background(), filepath.Join(t.TempDir(), "local.sqlite"))
	if err != nil {
		t.Fatalf("OpenLocalAt: %v", err)
	}
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func TestProfileRoundTrip(t *testing.T) {
	ctx := context.Background()
	l := openTestLocal(t)

	p, err := l.Profile(ctx)
	if err != nil {
		t.Fatalf("Profile (empty): %v", err)
	}
	if p != (model.Profile{}) {
		t.Fatalf("expected zero profile, got %+v", p)
	}

	want := model.Profile{Name: "John Doe", Occupation: "Software Engineer", About: "Building things."}
	if err := l.SaveProfile(ctx, want); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}
	got, err := l.Profile(ctx)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if got != want {
		t.Fatalf("profile: got %+v, want %+v", got, want)
	}

	// Saving again overwrites the single row.
	want.About = "Still building."
	if err := l.SaveProfile(ctx, want); err != nil {
		t.Fatalf("SaveProfile (update): %v", err)
	}
	got, _ = l.Profile(ctx)
	if got.About != "Still building." {
		t.Fatalf("about not updated: %q", got.About)
	}
}

func TestReflectionPerDay(t *testing.T) {
	ctx := context.Background()
	l := openTestLocal(t)

	r, err := l.Reflection(ctx, "2026-08-30")
	if err != nil {
		t.Fatalf("Reflection (empty): %v", err)
	}
	if r.Satisfaction != 0 || r.Mood != 0 || r.Productivity != 0 || r.Analysis != "" {
		t.Fatalf("expected unfilled reflection, got %+v", r)
	}

	if err := l.SaveReflection(ctx, model.Reflection{
		Date: "2026-08-30", Analysis: "Got the sync layer done.", Satisfaction: 4, Productivity: 5, Mood: 3,
	}); err != nil {
		t.Fatalf("SaveReflection: %v", err)
	}
	if err := l.SaveReflection(ctx, model.Reflection{
		Date: "2026-08-31", Satisfaction: 2,
	}); err != nil {
		t.Fatalf("SaveReflection: %v", err)
	}

	r, err = l.Reflection(ctx, "2026-08-30")
	if err != nil {
		t.Fatalf("Reflection: %v", err)
	}
	if r.Satisfaction != 4 || r.Productivity != 5 || r.Mood != 3 {
		t.Fatalf("ratings: %+v", r)
	}
	other, _ := l.Reflection(ctx, "2026-08-31")
	if other.Satisfaction != 2 || other.Analysis != "" {
		t.Fatalf("days should not bleed into each other: %+v", other)
	}
}
