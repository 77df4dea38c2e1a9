package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/locvowork/employee_directory/internal/bootstrap"
	"github.com/locvowork/employee_directory/internal/database"
	"github.com/locvowork/employee_directory/internal/domain"
	"github.com/locvowork/employee_directory/internal/logger"
	"github.com/locvowork/employee_directory/internal/seed"
)

type seederOptions struct {
	Action string
	Target string
	File   string
}

func main() {
	var opts seederOptions
	flag.StringVar(&opts.Action, "action", "seed", "Action to perform: seed, clear")
	flag.StringVar(&opts.Target, "target", "postgres", "Backend to seed: postgres, elastic, datastore")
	flag.StringVar(&opts.File, "file", "", "YAML file with employees (defaults to the embedded sample)")

	flag.Parse()

	fmt.Println("Employee Data Seeder")
	fmt.Println(strings.Repeat("=", 50))

	if err := run(context.Background(), opts); err != nil {
		flag.PrintDefaults()
		log.Fatal(err)
	}

	fmt.Println("Done!")
}

func run(ctx context.Context, opts seederOptions) error {
	target, err := database.ParseSeedTarget(opts.Target)
	if err != nil {
		return err
	}
	if opts.Action != "seed" && opts.Action != "clear" {
		return fmt.Errorf("unknown action %q", opts.Action)
	}

	var employees []domain.Employee
	if opts.Action == "seed" {
		if employees, err = loadEmployees(ctx, opts.File); err != nil {
			return err
		}
	}

	cfg, err := bootstrap.Setup(ctx)
	if err != nil {
		return err
	}

	seeder, closeFn, err := bootstrap.NewSeeder(ctx, cfg, target)
	if err != nil {
		logger.ErrorLog(ctx, "Failed to connect to %s: %v", target, err)
		return err
	}
	defer bootstrap.Release(ctx, closeFn)

	if opts.Action == "clear" {
		fmt.Printf("Clearing employees from %s...\n", target)
		if err := seeder.ClearData(ctx, target); err != nil {
			logger.ErrorLog(ctx, "Failed to clear data: %v", err)
			return err
		}
		return nil
	}

	fmt.Printf("Seeding %d employees into %s...\n", len(employees), target)
	if err := seeder.SeedData(ctx, target, employees); err != nil {
		logger.ErrorLog(ctx, "Failed to seed data: %v", err)
		return err
	}
	return nil
}

func loadEmployees(ctx context.Context, path string) ([]domain.Employee, error) {
	if path == "" {
		return seed.Embedded().Load(ctx)
	}
	return seed.FileSource{Path: path}.Load(ctx)
}
