package logbook

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/shiftlog/shiftlog-backend/internal/adapter/postgres/testhelper"
	"github.com/shiftlog/shiftlog-backend/internal/domain"
)

// uniq makes identifiers safe for the shared test database.
func uniq(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

// Fixture for the visibility tests: three accounts in two overlapping
// groups.
//
//	alice -> g1
//	bob   -> g1, g2
//	carol -> g2
func TestRepo_Visibility(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := New(pool)
	ctx := context.Background()

	alice := testhelper.SeedAccount(t, pool, uniq("alice"))
	bob := testhelper.SeedAccount(t, pool, uniq("bob"))
	carol := testhelper.SeedAccount(t, pool, uniq("carol"))
	g1 := testhelper.SeedGroup(t, pool, uniq("day-shift"))
	g2 := testhelper.SeedGroup(t, pool, uniq("night-shift"))
	testhelper.SeedMembership(t, pool, alice, g1)
	testhelper.SeedMembership(t, pool, bob, g1)
	testhelper.SeedMembership(t, pool, bob, g2)
	testhelper.SeedMembership(t, pool, carol, g2)

	aliceLog, err := repo.Create(ctx, domain.Log{
		ID: uuid.New(), CreatedBy: alice, TimeOfEvent: time.Now(), Title: "generator check",
	})
	if err != nil {
		t.Fatalf("create log: %v", err)
	}

	t.Run("creator sees own log", func(t *testing.T) {
		got, err := repo.GetVisibleByID(ctx, []uuid.UUID{g1}, aliceLog.ID)
		if err != nil {
			t.Fatalf("GetVisibleByID() error = %v", err)
		}
		if got.ID != aliceLog.ID {
			t.Errorf("got %v, want %v", got.ID, aliceLog.ID)
		}
	})

	t.Run("groupmate sees the log", func(t *testing.T) {
		if _, err := repo.GetVisibleByID(ctx, []uuid.UUID{g1, g2}, aliceLog.ID); err != nil {
			t.Fatalf("GetVisibleByID() error = %v", err)
		}
	})

	t.Run("outsider reports not found", func(t *testing.T) {
		_, err := repo.GetVisibleByID(ctx, []uuid.UUID{g2}, aliceLog.ID)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("GetVisibleByID() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("empty group set sees nothing", func(t *testing.T) {
		_, err := repo.GetVisibleByID(ctx, nil, aliceLog.ID)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("GetVisibleByID() error = %v, want ErrNotFound", err)
		}
		logs, err := repo.ListVisible(ctx, nil, domain.LogFilter{})
		if err != nil {
			t.Fatalf("ListVisible() error = %v", err)
		}
		if len(logs) != 0 {
			t.Errorf("ListVisible() len = %d, want 0", len(logs))
		}
	})

	t.Run("list narrows by title fragment ignoring case", func(t *testing.T) {
		frag := "GENERATOR"
		logs, err := repo.ListVisible(ctx, []uuid.UUID{g1},
			domain.LogFilter{TitleContains: &frag, AccountIDs: []uuid.UUID{alice}})
		if err != nil {
			t.Fatalf("ListVisible() error = %v", err)
		}
		if len(logs) != 1 || logs[0].ID != aliceLog.ID {
			t.Errorf("ListVisible() = %v, want [%v]", logs, aliceLog.ID)
		}
	})

	t.Run("wildcards in the fragment match literally", func(t *testing.T) {
		marked, err := repo.Create(ctx, domain.Log{
			ID: uuid.New(), CreatedBy: alice, TimeOfEvent: time.Now(), Title: "load at 50% capacity",
		})
		if err != nil {
			t.Fatalf("create log: %v", err)
		}

		frag := "50% cap"
		logs, err := repo.ListVisible(ctx, []uuid.UUID{g1},
			domain.LogFilter{TitleContains: &frag, AccountIDs: []uuid.UUID{alice}})
		if err != nil {
			t.Fatalf("ListVisible() error = %v", err)
		}
		if len(logs) != 1 || logs[0].ID != marked.ID {
			t.Errorf("ListVisible() = %v, want only the %% entry", logs)
		}

		// _ must not act as match-any-character
		frag = "load_at"
		logs, err = repo.ListVisible(ctx, []uuid.UUID{g1},
			domain.LogFilter{TitleContains: &frag, AccountIDs: []uuid.UUID{alice}})
		if err != nil {
			t.Fatalf("ListVisible() error = %v", err)
		}
		if len(logs) != 0 {
			t.Errorf("ListVisible() len = %d, want 0 for literal underscore fragment", len(logs))
		}
	})

	t.Run("carol sees nothing from g1", func(t *testing.T) {
		carolView, err := repo.ListVisible(ctx, []uuid.UUID{g2},
			domain.LogFilter{AccountIDs: []uuid.UUID{alice}})
		if err != nil {
			t.Fatalf("ListVisible() error = %v", err)
		}
		if len(carolView) != 0 {
			t.Errorf("ListVisible() len = %d, want 0", len(carolView))
		}
	})
}

func TestRepo_RevisionOrdering(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := New(pool)
	ctx := context.Background()

	author := testhelper.SeedAccount(t, pool, uniq("author"))
	g := testhelper.SeedGroup(t, pool, uniq("crew"))
	testhelper.SeedMembership(t, pool, author, g)

	original, err := repo.Create(ctx, domain.Log{
		ID: uuid.New(), CreatedBy: author, TimeOfEvent: time.Now(), Title: "pump reading",
	})
	if err != nil {
		t.Fatalf("create original: %v", err)
	}

	base := time.Now().UTC().Truncate(time.Second)
	mkRevision := func(title string, revisedAt time.Time) *domain.Log {
		t.Helper()
		rev, err := repo.Create(ctx, domain.Log{
			ID:          uuid.New(),
			CreatedBy:   author,
			TimeOfEvent: base,
			Title:       title,
			ParentID:    &original.ID,
			RevisedBy:   &author,
			RevisedAt:   &revisedAt,
		})
		if err != nil {
			t.Fatalf("create revision %s: %v", title, err)
		}
		return rev
	}

	r1 := mkRevision("rev one", base.Add(1*time.Minute))
	r2 := mkRevision("rev two", base.Add(2*time.Minute))
	// same revised_at as r2: insertion order decides
	r3 := mkRevision("rev three", base.Add(2*time.Minute))

	revs, err := repo.ListRevisions(ctx, original.ID)
	if err != nil {
		t.Fatalf("ListRevisions() error = %v", err)
	}

	want := []uuid.UUID{r2.ID, r3.ID, r1.ID}
	if len(revs) != len(want) {
		t.Fatalf("ListRevisions() len = %d, want %d", len(revs), len(want))
	}
	for i, id := range want {
		if revs[i].ID != id {
			t.Errorf("ListRevisions()[%d] = %v, want %v", i, revs[i].ID, id)
		}
	}
}

func TestRepo_ReviseLeavesParentUntouched(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := New(pool)
	ctx := context.Background()

	author := testhelper.SeedAccount(t, pool, uniq("author"))
	editor := testhelper.SeedAccount(t, pool, uniq("editor"))
	g := testhelper.SeedGroup(t, pool, uniq("crew"))
	testhelper.SeedMembership(t, pool, author, g)
	testhelper.SeedMembership(t, pool, editor, g)

	tagA := testhelper.SeedTag(t, pool, uniq("alpha"))
	tagB := testhelper.SeedTag(t, pool, uniq("beta"))

	original, err := repo.Create(ctx, domain.Log{
		ID:          uuid.New(),
		CreatedBy:   author,
		TimeOfEvent: time.Now(),
		Title:       "turbine inspection",
		Description: "blades within tolerance",
		TagIDs:      []uuid.UUID{tagA},
	})
	if err != nil {
		t.Fatalf("create original: %v", err)
	}

	now := time.Now().UTC()
	if _, err := repo.Create(ctx, domain.Log{
		ID:          uuid.New(),
		CreatedBy:   editor,
		TimeOfEvent: time.Now(),
		Title:       "turbine inspection corrected",
		Description: "blade 4 out of tolerance",
		TagIDs:      []uuid.UUID{tagB},
		ParentID:    &original.ID,
		RevisedBy:   &editor,
		RevisedAt:   &now,
	}); err != nil {
		t.Fatalf("create revision: %v", err)
	}

	got, err := repo.GetByID(ctx, original.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Title != original.Title {
		t.Errorf("parent title = %q, want unchanged %q", got.Title, original.Title)
	}
	if got.Description != original.Description {
		t.Errorf("parent description = %q, want unchanged %q", got.Description, original.Description)
	}
	if len(got.TagIDs) != 1 || got.TagIDs[0] != tagA {
		t.Errorf("parent tags = %v, want unchanged [%v]", got.TagIDs, tagA)
	}
	if got.CreatedBy != author {
		t.Errorf("parent creator = %v, want unchanged %v", got.CreatedBy, author)
	}
	if !got.IsOriginal() {
		t.Error("parent became a revision")
	}
}

func TestRepo_DeleteCascadesRevisions(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := New(pool)
	ctx := context.Background()

	author := testhelper.SeedAccount(t, pool, uniq("author"))
	g := testhelper.SeedGroup(t, pool, uniq("crew"))
	testhelper.SeedMembership(t, pool, author, g)
	gids := []uuid.UUID{g}

	original, err := repo.Create(ctx, domain.Log{
		ID: uuid.New(), CreatedBy: author, TimeOfEvent: time.Now(), Title: "valve swap",
	})
	if err != nil {
		t.Fatalf("create original: %v", err)
	}
	now := time.Now().UTC()
	revision, err := repo.Create(ctx, domain.Log{
		ID: uuid.New(), CreatedBy: author, TimeOfEvent: time.Now(), Title: "valve swap v2",
		ParentID: &original.ID, RevisedBy: &author, RevisedAt: &now,
	})
	if err != nil {
		t.Fatalf("create revision: %v", err)
	}
	// a revision of the revision, two levels deep
	deep, err := repo.Create(ctx, domain.Log{
		ID: uuid.New(), CreatedBy: author, TimeOfEvent: time.Now(), Title: "valve swap v3",
		ParentID: &revision.ID, RevisedBy: &author, RevisedAt: &now,
	})
	if err != nil {
		t.Fatalf("create deep revision: %v", err)
	}

	deleted, err := repo.DeleteVisible(ctx, gids, original.ID)
	if err != nil {
		t.Fatalf("DeleteVisible() error = %v", err)
	}
	if !deleted {
		t.Fatal("DeleteVisible() = false, want true")
	}

	for _, id := range []uuid.UUID{original.ID, revision.ID, deep.ID} {
		if _, err := repo.GetByID(ctx, id); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("GetByID(%v) error = %v, want ErrNotFound after cascade", id, err)
		}
	}
}

func TestRepo_DeleteByGroup_RequiresBothPredicates(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := New(pool)
	ctx := context.Background()

	// victim creates in target group; the admin only shares adminGroup
	// with nobody, so nothing is visible and nothing may be deleted
	victim := testhelper.SeedAccount(t, pool, uniq("victim"))
	target := testhelper.SeedGroup(t, pool, uniq("target"))
	adminOnly := testhelper.SeedGroup(t, pool, uniq("admin-only"))
	testhelper.SeedMembership(t, pool, victim, target)

	if _, err := repo.Create(ctx, domain.Log{
		ID: uuid.New(), CreatedBy: victim, TimeOfEvent: time.Now(), Title: "incident",
	}); err != nil {
		t.Fatalf("create log: %v", err)
	}

	n, err := repo.DeleteByGroup(ctx, []uuid.UUID{adminOnly}, target)
	if err != nil {
		t.Fatalf("DeleteByGroup() error = %v", err)
	}
	if n != 0 {
		t.Errorf("DeleteByGroup() = %d, want 0 for invisible logs", n)
	}

	// an admin who shares the target group deletes the lot
	n, err = repo.DeleteByGroup(ctx, []uuid.UUID{target}, target)
	if err != nil {
		t.Fatalf("DeleteByGroup() error = %v", err)
	}
	if n != 1 {
		t.Errorf("DeleteByGroup() = %d, want 1", n)
	}
}

func TestRepo_TagHydration(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := New(pool)
	ctx := context.Background()

	author := testhelper.SeedAccount(t, pool, uniq("author"))
	g := testhelper.SeedGroup(t, pool, uniq("crew"))
	testhelper.SeedMembership(t, pool, author, g)

	tagA := testhelper.SeedTag(t, pool, uniq("alpha"))
	tagB := testhelper.SeedTag(t, pool, uniq("beta"))

	created, err := repo.Create(ctx, domain.Log{
		ID: uuid.New(), CreatedBy: author, TimeOfEvent: time.Now(), Title: "tagged entry",
		TagIDs: []uuid.UUID{tagA, tagB},
	})
	if err != nil {
		t.Fatalf("create log: %v", err)
	}

	got, err := repo.GetVisibleByID(ctx, []uuid.UUID{g}, created.ID)
	if err != nil {
		t.Fatalf("GetVisibleByID() error = %v", err)
	}
	if len(got.TagIDs) != 2 {
		t.Fatalf("TagIDs len = %d, want 2", len(got.TagIDs))
	}

	seen := map[uuid.UUID]bool{}
	for _, id := range got.TagIDs {
		seen[id] = true
	}
	if !seen[tagA] || !seen[tagB] {
		t.Errorf("TagIDs = %v, want both %v and %v", got.TagIDs, tagA, tagB)
	}
}
