package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeRepo struct {
	jobs     []Job
	err      error
	gotLimit int
	deadline bool
}

func (f *fakeRepo) Latest(ctx context.Context, limit int) ([]Job, error) {
	f.gotLimit = limit
	_, f.deadline = ctx.Deadline()
	if f.err != nil {
		return nil, f.err
	}
	if len(f.jobs) > limit {
		return f.jobs[:limit], nil
	}
	return f.jobs, nil
}

func TestJobLink(t *testing.T) {
	id := uuid.MustParse("6f1c2a7e-3b7d-4d0e-9a55-2f8f0c9b1e11")
	j := Job{ID: id}
	got := j.Link("https://www.hustlex.com/")
	want := "https://www.hustlex.com/job-details/6f1c2a7e-3b7d-4d0e-9a55-2f8f0c9b1e11"
	if got != want {
		t.Fatalf("Link = %q, want %q", got, want)
	}
}

func TestDemoJobsNewestFirst(t *testing.T) {
	now := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	demo := DemoJobs(now)
	if len(demo) == 0 {
		t.Fatal("no demo jobs")
	}
	seen := map[uuid.UUID]bool{}
	for i, j := range demo {
		if j.ID == uuid.Nil || seen[j.ID] {
			t.Fatalf("job %d has a bad or duplicate id %s", i, j.ID)
		}
		seen[j.ID] = true
		if !j.CreatedAt.Before(now) {
			t.Fatalf("job %d created in the future: %s", i, j.CreatedAt)
		}
		if i > 0 && !j.CreatedAt.Before(demo[i-1].CreatedAt) {
			t.Fatalf("demo jobs not ordered newest first at %d", i)
		}
	}
}

func TestServiceWithoutRepository(t *testing.T) {
	s := NewService(nil, 5, time.Second)
	if s.Enabled() {
		t.Fatal("service without repository must be disabled")
	}
	got, err := s.Latest(context.Background())
	if err != nil || got != nil {
		t.Fatalf("Latest = %v, %v", got, err)
	}
}

func TestServiceLatest(t *testing.T) {
	repo := &fakeRepo{jobs: DemoJobs(time.Now())}
	s := NewService(repo, 2, time.Second)

	got, err := s.Latest(context.Background())
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if len(got) != 2 || repo.gotLimit != 2 {
		t.Fatalf("got %d jobs with limit %d", len(got), repo.gotLimit)
	}
	if !repo.deadline {
		t.Fatal("repository call should carry a deadline")
	}
}

func TestServiceLatestError(t *testing.T) {
	boom := errors.New("connection refused")
	s := NewService(&fakeRepo{err: boom}, 3, 0)
	if _, err := s.Latest(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected repository error, got %v", err)
	}
}
