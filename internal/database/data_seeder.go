package database

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/locvowork/employee_directory/internal/domain"
	"github.com/locvowork/employee_directory/internal/logger"
	"github.com/locvowork/employee_directory/internal/repository"
	"github.com/locvowork/employee_directory/pkg/dataflow"
)

// SeedTarget names a backend the seeder can write to.
type SeedTarget string

const (
	TargetPostgres  SeedTarget = "postgres"
	TargetElastic   SeedTarget = "elastic"
	TargetDatastore SeedTarget = "datastore"
)

// ErrTargetUnavailable is returned when the seeder has no client for a target.
var ErrTargetUnavailable = errors.New("seed target not configured")

// Datastore rejects PutMulti calls with more than 500 entities.
const DefaultBatchSize = 500

// DataSeeder copies directory records into the configured backends.
// Any client may be nil; using its target then fails with ErrTargetUnavailable.
type DataSeeder struct {
	repo      *repository.EmployeeRepository
	elastic   *ElasticSearchClient
	datastore *DatastoreClient

	batchSize int
	workers   int
	retries   int
}

type SeederOption func(*DataSeeder)

// WithBatchSize caps how many employees go into one bulk request.
func WithBatchSize(n int) SeederOption {
	return func(ds *DataSeeder) {
		if n > 0 && n <= DefaultBatchSize {
			ds.batchSize = n
		}
	}
}

// WithWorkers sets how many batches are written concurrently.
func WithWorkers(n int) SeederOption {
	return func(ds *DataSeeder) {
		if n > 0 {
			ds.workers = n
		}
	}
}

// WithRetries retries a failed batch n times.
func WithRetries(n int) SeederOption {
	return func(ds *DataSeeder) {
		if n >= 0 {
			ds.retries = n
		}
	}
}

func NewDataSeeder(repo *repository.EmployeeRepository, es *ElasticSearchClient, dc *DatastoreClient, opts ...SeederOption) *DataSeeder {
	ds := &DataSeeder{
		repo:      repo,
		elastic:   es,
		datastore: dc,
		batchSize: DefaultBatchSize,
		workers:   2,
		retries:   2,
	}
	for _, o := range opts {
		o(ds)
	}
	return ds
}

// ParseSeedTarget validates a target name.
func ParseSeedTarget(s string) (SeedTarget, error) {
	switch t := SeedTarget(s); t {
	case TargetPostgres, TargetElastic, TargetDatastore:
		return t, nil
	default:
		return "", fmt.Errorf("unknown seed target %q", s)
	}
}

// SeedData writes employees to target, replacing records with the same id.
func (ds *DataSeeder) SeedData(ctx context.Context, target SeedTarget, employees []domain.Employee) error {
	start := time.Now()
	logger.InfoLog(ctx, "Seeding %d employees into %s", len(employees), target)

	var err error
	switch target {
	case TargetPostgres:
		if ds.repo == nil {
			return fmt.Errorf("%s: %w", target, ErrTargetUnavailable)
		}
		if err = ds.repo.EnsureTable(ctx); err == nil {
			err = ds.repo.Upsert(ctx, employees)
		}
	case TargetElastic:
		if ds.elastic == nil {
			return fmt.Errorf("%s: %w", target, ErrTargetUnavailable)
		}
		err = ds.writeBatches(ctx, employees, ds.elastic.BulkIndexEmployees)
	case TargetDatastore:
		if ds.datastore == nil {
			return fmt.Errorf("%s: %w", target, ErrTargetUnavailable)
		}
		err = ds.writeBatches(ctx, employees, ds.datastore.BatchSaveEmployees)
	default:
		return fmt.Errorf("unknown seed target %q", target)
	}
	if err != nil {
		return fmt.Errorf("failed to seed %s: %w", target, err)
	}

	logger.InfoLog(ctx, "Seeded %d employees into %s in %v", len(employees), target, time.Since(start))
	return nil
}

// ClearData removes every seeded record from target.
func (ds *DataSeeder) ClearData(ctx context.Context, target SeedTarget) error {
	logger.InfoLog(ctx, "Clearing employees from %s", target)

	switch target {
	case TargetPostgres:
		if ds.repo == nil {
			return fmt.Errorf("%s: %w", target, ErrTargetUnavailable)
		}
		n, err := ds.repo.DeleteAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to clear %s: %w", target, err)
		}
		logger.InfoLog(ctx, "Deleted %d rows", n)
	case TargetElastic:
		if ds.elastic == nil {
			return fmt.Errorf("%s: %w", target, ErrTargetUnavailable)
		}
		if err := ds.elastic.DeleteIndex(ctx); err != nil {
			return fmt.Errorf("failed to clear %s: %w", target, err)
		}
	case TargetDatastore:
		if ds.datastore == nil {
			return fmt.Errorf("%s: %w", target, ErrTargetUnavailable)
		}
		n, err := ds.datastore.DeleteAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to clear %s: %w", target, err)
		}
		logger.InfoLog(ctx, "Deleted %d entities", n)
	default:
		return fmt.Errorf("unknown seed target %q", target)
	}
	return nil
}

// writeBatches splits employees into batches and writes them with the
// configured workers. Postgres goes through Upsert, which splits its own statements.
func (ds *DataSeeder) writeBatches(ctx context.Context, employees []domain.Employee, write func(context.Context, []domain.Employee) error) error {
	var batches int64
	err := dataflow.ForEach(ctx, dataflow.Chunk(ctx, employees, ds.batchSize), func(ctx context.Context, batch []domain.Employee) error {
		if err := write(ctx, batch); err != nil {
			logger.WarnLog(ctx, "batch of %d employees failed: %v", len(batch), err)
			return err
		}
		atomic.AddInt64(&batches, 1)
		return nil
	},
		dataflow.WithWorkers(ds.workers),
		dataflow.WithRetry(ds.retries, dataflow.LinearBackoff(200*time.Millisecond)),
	)
	logger.DebugLog(ctx, "wrote %d batches", atomic.LoadInt64(&batches))
	return err
}
