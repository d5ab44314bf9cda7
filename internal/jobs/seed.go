package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/hustlex/hustlexbot/core/bootstrap"
	"github.com/hustlex/hustlexbot/core/logger"
)

// DemoJobs returns sample postings, newest first, dated relative to now.
func DemoJobs(now time.Time) []Job {
	mk := func(age time.Duration, title, company, category, jobType, sector, city, budget string) Job {
		return Job{
			ID:        uuid.New(),
			Title:     title,
			Company:   company,
			Category:  category,
			JobType:   jobType,
			JobSector: sector,
			City:      city,
			Budget:    budget,
			CreatedAt: now.Add(-age).UTC(),
		}
	}
	return []Job{
		mk(1*time.Hour, "Backend Developer (Go)", "Kuraz Tech", "Software Development", "Contract", "Technology", "Addis Ababa", "45,000 ETB"),
		mk(5*time.Hour, "Brand Identity Designer", "Selam Studio", "Design & Creative", "Freelance", "Creative", "Remote", "20,000 ETB"),
		mk(26*time.Hour, "Social Media Marketer", "Abyssinia Foods", "Marketing & Sales", "Part-time", "Retail", "Adama", "12,000 ETB"),
		mk(50*time.Hour, "Amharic-English Translator", "Habesha Docs", "Writing & Translation", "Freelance", "Services", "Remote", "8,000 ETB"),
	}
}

// DemoSeeder inserts DemoJobs when the jobs table is empty.
func DemoSeeder() bootstrap.Seeder {
	return bootstrap.SeederFunc(func(ctx context.Context, db *sqlx.DB) error {
		repo := NewPostgresRepository(db)
		n, err := repo.Count(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			logger.SVCJobs.Debug("seed skipped",
				slog.String("event", "jobs.seed"),
				slog.Int("rows", n),
			)
			return nil
		}
		demo := DemoJobs(time.Now())
		if err := repo.InsertPublished(ctx, demo); err != nil {
			return err
		}
		logger.SVCJobs.Info("demo jobs seeded",
			slog.String("event", "jobs.seed"),
			slog.Int("rows", len(demo)),
		)
		return nil
	})
}
