package badger

import (
	"context"
	"testing"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/syntoo/nepsebot/internal/models"
)

func newTestDB(t *testing.T) *BadgerDB {
	t.Helper()

	options := badgerhold.DefaultOptions
	options.Dir = t.TempDir()
	options.ValueDir = options.Dir
	options.Logger = nil

	store, err := badgerhold.Open(options)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	return &BadgerDB{store: store, logger: arbor.NewLogger()}
}

func TestSubscriberAddIsIdempotent(t *testing.T) {
	storage := NewSubscriberStorage(newTestDB(t), arbor.NewLogger())
	ctx := context.Background()

	added, err := storage.Add(ctx, 1001)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if !added {
		t.Error("first Add should return true")
	}

	added, err = storage.Add(ctx, 1001)
	if err != nil {
		t.Fatalf("second Add failed: %v", err)
	}
	if added {
		t.Error("second Add should return false")
	}

	count, err := storage.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected exactly one occurrence, got %d", count)
	}
}

func TestSubscriberRemoveAbsent(t *testing.T) {
	storage := NewSubscriberStorage(newTestDB(t), arbor.NewLogger())
	ctx := context.Background()

	if _, err := storage.Add(ctx, 2002); err != nil {
		t.Fatal(err)
	}

	removed, err := storage.Remove(ctx, 9999)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if removed {
		t.Error("Remove of never-added subscriber should return false")
	}

	// Persisted state is unchanged
	count, err := storage.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("expected 1 subscriber, got %d", count)
	}
}

func TestSubscriberRemovePresent(t *testing.T) {
	storage := NewSubscriberStorage(newTestDB(t), arbor.NewLogger())
	ctx := context.Background()

	if _, err := storage.Add(ctx, 3003); err != nil {
		t.Fatal(err)
	}

	removed, err := storage.Remove(ctx, 3003)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if !removed {
		t.Error("Remove of present subscriber should return true")
	}

	present, err := storage.Contains(ctx, 3003)
	if err != nil {
		t.Fatal(err)
	}
	if present {
		t.Error("subscriber should be gone after Remove")
	}
}

func TestSubscriberListSnapshot(t *testing.T) {
	storage := NewSubscriberStorage(newTestDB(t), arbor.NewLogger())
	ctx := context.Background()

	for _, id := range []int64{10, 20, 30} {
		if _, err := storage.Add(ctx, id); err != nil {
			t.Fatal(err)
		}
	}

	subs, err := storage.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(subs) != 3 {
		t.Fatalf("expected 3 subscribers, got %d", len(subs))
	}

	// Mutations after the snapshot do not affect the returned slice
	if _, err := storage.Remove(ctx, 20); err != nil {
		t.Fatal(err)
	}
	if len(subs) != 3 {
		t.Error("snapshot changed after concurrent mutation")
	}
}

func TestSubscriberListIncludesZeroChatID(t *testing.T) {
	storage := NewSubscriberStorage(newTestDB(t), arbor.NewLogger())
	ctx := context.Background()

	for _, id := range []int64{0, 42} {
		if _, err := storage.Add(ctx, id); err != nil {
			t.Fatal(err)
		}
	}

	subs, err := storage.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("expected 2 subscribers, got %d", len(subs))
	}

	found := false
	for _, sub := range subs {
		if sub.ChatID == 0 {
			found = true
		}
	}
	if !found {
		t.Error("chat ID 0 missing from List")
	}
}

func TestSubscriberStateSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	open := func() *BadgerDB {
		options := badgerhold.DefaultOptions
		options.Dir = dir
		options.ValueDir = dir
		options.Logger = nil
		store, err := badgerhold.Open(options)
		if err != nil {
			t.Fatal(err)
		}
		return &BadgerDB{store: store, logger: arbor.NewLogger()}
	}

	ctx := context.Background()

	db := open()
	storage := NewSubscriberStorage(db, arbor.NewLogger())
	if _, err := storage.Add(ctx, 4004); err != nil {
		t.Fatal(err)
	}
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}

	db = open()
	defer db.Close()
	storage = NewSubscriberStorage(db, arbor.NewLogger())

	present, err := storage.Contains(ctx, 4004)
	if err != nil {
		t.Fatal(err)
	}
	if !present {
		t.Error("subscription did not survive restart")
	}
}

func TestUserUpsert(t *testing.T) {
	db := newTestDB(t)
	storage := NewUserStorage(db, arbor.NewLogger())
	ctx := context.Background()

	isNew, err := storage.Upsert(ctx, &models.RegisteredUser{
		ChatID:   5005,
		FullName: "Ram Bahadur",
		Username: "rambdr",
	})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if !isNew {
		t.Error("first Upsert should report a new record")
	}

	first, err := storage.Get(ctx, 5005)
	if err != nil {
		t.Fatal(err)
	}

	// Name change updates the record in place
	isNew, err = storage.Upsert(ctx, &models.RegisteredUser{
		ChatID:   5005,
		FullName: "Ram B. Thapa",
		Username: "rambdr",
	})
	if err != nil {
		t.Fatal(err)
	}
	if isNew {
		t.Error("second Upsert should report an update")
	}

	updated, err := storage.Get(ctx, 5005)
	if err != nil {
		t.Fatal(err)
	}
	if updated.FullName != "Ram B. Thapa" {
		t.Errorf("FullName = %q, want %q", updated.FullName, "Ram B. Thapa")
	}
	if !updated.CreatedAt.Equal(first.CreatedAt) {
		t.Error("CreatedAt should be preserved across updates")
	}
}

func TestUserGetUnknown(t *testing.T) {
	storage := NewUserStorage(newTestDB(t), arbor.NewLogger())

	user, err := storage.Get(context.Background(), 404404)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if user != nil {
		t.Error("unknown chat should return nil")
	}
}
