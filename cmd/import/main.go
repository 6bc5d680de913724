package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/yukikurage/resource-dashboard/internal/config"
	"github.com/yukikurage/resource-dashboard/internal/database"
	"github.com/yukikurage/resource-dashboard/internal/importer"
	"github.com/yukikurage/resource-dashboard/internal/logger"
	"github.com/yukikurage/resource-dashboard/internal/period"
	"github.com/yukikurage/resource-dashboard/internal/repository"
	"github.com/yukikurage/resource-dashboard/internal/services"
)

const usage = `usage:
  import resources [--year YYYY] [--month M] <file.xlsx>
  import projects <file.xlsx>`

func main() {
	if len(os.Args) < 2 || (os.Args[1] != "resources" && os.Args[1] != "projects") {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	now := period.Of(time.Now())
	fs := flag.NewFlagSet(os.Args[1], flag.ExitOnError)
	year := fs.Int("year", now.Year, "Attendance year (resources only)")
	month := fs.Int("month", now.Month, "Attendance month 1-12 (resources only)")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	path := fs.Arg(0)

	cfg := config.Load()
	logger.Configure(cfg.LogLevel, cfg.LogFormat)
	log := logger.Get()

	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.GetDB()
	resourceRepo := repository.NewResourceRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	im := importer.New(
		services.NewResourceService(resourceRepo),
		services.NewProjectService(projectRepo, resourceRepo),
	)

	rows, err := importer.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", path, err)
	}

	var res *importer.Result
	switch os.Args[1] {
	case "resources":
		res, err = im.ImportResources(rows, period.Period{Year: *year, Month: *month})
	case "projects":
		res, err = im.ImportProjects(rows)
	}
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	for _, rowErr := range res.Errors {
		log.WithField("row", rowErr.Row).Warn(rowErr.Err.Error())
	}
	log.WithFields(map[string]interface{}{
		"created": res.Created,
		"updated": res.Updated,
		"skipped": res.Skipped,
		"failed":  len(res.Errors),
	}).Info("Import complete")

	if len(res.Errors) > 0 {
		os.Exit(1)
	}
}
