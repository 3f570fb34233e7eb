package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/volatiletech/null/v8"

	"github.com/lamms/lamms/core/grade"
	"github.com/lamms/lamms/core/section"
	"github.com/lamms/lamms/storage/database"
)

// DatabaseURLEnv names the env var holding the connection URL of a disposable test database.
const DatabaseURLEnv = "TEST_DATABASE_URL"

// OpenDB opens and migrates the test database. Tests are skipped when no database is configured.
func OpenDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dbURL := os.Getenv(DatabaseURLEnv)
	if dbURL == "" {
		t.Skipf("%s not set", DatabaseURLEnv)
	}
	db, err := database.OpenURL(dbURL)
	if err != nil {
		t.Fatalf("OpenDB(): %v", err)
	}
	if err = database.Ping(db); err != nil {
		t.Fatalf("OpenDB(): %v", err)
	}
	if err = database.Migrate(db.DB); err != nil {
		t.Fatalf("OpenDB(): %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ResetDB(t, db)
	return db
}

// ResetDB empties every application table.
func ResetDB(t *testing.T, db *sqlx.DB) {
	t.Helper()
	if _, err := db.Exec("TRUNCATE grades, sections RESTART IDENTITY"); err != nil {
		t.Fatalf("ResetDB(): %v", err)
	}
}

func CreateGrade(
	t *testing.T,
	repo grade.Repository,
	name, code string,
	isActive bool,
	displayOrder int,
	createdAt ...time.Time,
) grade.Grade {
	t.Helper()

	tstamp := time.Now().UTC().Truncate(time.Second)
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	grd, err := repo.CreateGrade(context.Background(), grade.Grade{
		Name:         name,
		Code:         null.NewString(code, code != ""),
		IsActive:     isActive,
		DisplayOrder: displayOrder,
		CreatedAt:    tstamp,
		UpdatedAt:    tstamp,
	})
	if err != nil {
		t.Fatalf("CreateGrade(): %v", err)
	}
	return grd
}

func CreateSection(t *testing.T, repo section.Repository, data section.Payload) section.Section {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Second)
	sec, err := repo.CreateSection(context.Background(), section.Section{
		Data:      data,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateSection(): %v", err)
	}
	return sec
}
