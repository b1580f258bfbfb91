package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhisek/mindflow/internal/profile"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestProfileGetMissing(t *testing.T) {
	repo := openTestStore(t).ProfileRepo()
	_, err := repo.Get(context.Background(), "nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) err = %v, want ErrNotFound", err)
	}
}

func TestProfileGetOrCreate(t *testing.T) {
	repo := openTestStore(t).ProfileRepo()
	ctx := context.Background()

	p, err := repo.GetOrCreate(ctx, "Asha")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if p.Name != "Asha" || len(p.Scores) != 0 {
		t.Errorf("fresh profile = %+v", p)
	}
}

func TestProfileGetOrCreateKeepsExisting(t *testing.T) {
	repo := openTestStore(t).ProfileRepo()
	ctx := context.Background()

	p, _ := repo.GetOrCreate(ctx, "Asha")
	p.RecordAnswer("Empirical Probability", true, "", time.Now(), profile.DefaultParams())
	if err := repo.Save(ctx, p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// A second creator for the same name must receive the stored
	// record, not a fresh one.
	again, err := repo.GetOrCreate(ctx, "Asha")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if len(again.Scores) != 1 || again.Scores[0] != 100 {
		t.Errorf("scores = %v, want [100]", again.Scores)
	}
	if got := again.Mastery["Empirical Probability"]; got != 62 {
		t.Errorf("mastery = %d, want 62", got)
	}
}

func TestProfileSaveRoundTrip(t *testing.T) {
	repo := openTestStore(t).ProfileRepo()
	ctx := context.Background()

	p := profile.New("Ravi")
	p.RecordAnswer("Tangents to a Circle", false, "one point of contact", time.Now(), profile.DefaultParams())
	if err := repo.Save(ctx, p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.Get(ctx, "Ravi")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Sessions) != 1 {
		t.Fatalf("sessions = %d, want 1", len(got.Sessions))
	}
	if got.Sessions[0].Feedback != "one point of contact" {
		t.Errorf("feedback = %q", got.Sessions[0].Feedback)
	}
	if got.Mastery["Tangents to a Circle"] != 32 {
		t.Errorf("mastery = %d, want 32", got.Mastery["Tangents to a Circle"])
	}
}

func TestProfileList(t *testing.T) {
	repo := openTestStore(t).ProfileRepo()
	ctx := context.Background()

	for _, name := range []string{"Zara", "Asha", "Ravi"} {
		if _, err := repo.GetOrCreate(ctx, name); err != nil {
			t.Fatalf("GetOrCreate(%s): %v", name, err)
		}
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	want := []string{"Asha", "Ravi", "Zara"}
	for i, p := range all {
		if p.Name != want[i] {
			t.Errorf("all[%d].Name = %q, want %q", i, p.Name, want[i])
		}
	}
}

func TestProfileDelete(t *testing.T) {
	repo := openTestStore(t).ProfileRepo()
	ctx := context.Background()

	if _, err := repo.GetOrCreate(ctx, "Asha"); err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if err := repo.Delete(ctx, "Asha"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Get(ctx, "Asha"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(deleted) err = %v, want ErrNotFound", err)
	}
	if err := repo.Delete(ctx, "Asha"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(missing) err = %v, want ErrNotFound", err)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	s1, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if _, err := s1.ProfileRepo().GetOrCreate(context.Background(), "Asha"); err != nil {
		t.Fatalf("create: %v", err)
	}
	s1.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer s2.Close()
	if _, err := s2.ProfileRepo().Get(context.Background(), "Asha"); err != nil {
		t.Errorf("record lost across reopen: %v", err)
	}
}
