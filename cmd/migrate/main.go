package main

// Run database migrations, optionally seeding the jobs table:
//   go run ./cmd/migrate
//   go run ./cmd/migrate -seed

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/SHIVANSHU-TECH/ApplyAI/internal/jobs"
	"github.com/SHIVANSHU-TECH/ApplyAI/internal/shared/config"
	"github.com/SHIVANSHU-TECH/ApplyAI/internal/shared/storage/db"
)

func main() {
	seed := flag.Bool("seed", false, "seed the jobs table from JOBS_FILE after migrating")
	flag.Parse()

	cfg := config.Load()
	ctx := context.Background()

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		log.Printf("failed to connect database: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		log.Printf("failed to run migrations: %v", err)
		os.Exit(1)
	}

	if !*seed {
		return
	}
	if err := seedJobs(ctx, sqlDB, cfg.JobsFile); err != nil {
		log.Printf("failed to seed jobs: %v", err)
		os.Exit(1)
	}
}

func seedJobs(ctx context.Context, sqlDB *sql.DB, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var list []jobs.JobRecord
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}

	repo := &jobs.PGRepo{DB: sqlDB}
	for _, job := range list {
		if err := repo.Insert(ctx, job); err != nil {
			return err
		}
	}
	log.Printf("seeded %d jobs from %s", len(list), path)
	return nil
}
