package database

import "testing"

func TestConfigEnabled(t *testing.T) {
	if (Config{}).Enabled() {
		t.Fatal("empty config must be disabled")
	}
	if !(Config{Host: "db"}).Enabled() {
		t.Fatal("config with host must be enabled")
	}
}

func TestConfigDSNDefaults(t *testing.T) {
	cfg := Config{Host: "db", User: "bot", Password: "secret", Name: "hustlex"}
	if got, want := cfg.KeywordDSN(), "user=bot password=secret host=db port=5432 dbname=hustlex sslmode=disable"; got != want {
		t.Fatalf("KeywordDSN = %q, want %q", got, want)
	}
	if got, want := cfg.URL(), "postgres://bot:secret@db:5432/hustlex?sslmode=disable"; got != want {
		t.Fatalf("URL = %q, want %q", got, want)
	}
}

func TestMigrationBookkeeping(t *testing.T) {
	files := []string{"000001_create_jobs.up.sql", "000002_jobs_index.up.sql", "000003_seed.up.sql"}
	if got := countApplied(files, 1, 3); got != 2 {
		t.Fatalf("countApplied = %d, want 2", got)
	}
	if got := countApplied(files, 3, 3); got != 0 {
		t.Fatalf("countApplied with no change = %d", got)
	}
	applied := selectApplied(files, 0, 1)
	if len(applied) != 1 || applied[0] != files[0] {
		t.Fatalf("selectApplied = %v", applied)
	}
}
