package database

import (
	"context"
	"fmt"

	"cloud.google.com/go/datastore"
	"github.com/locvowork/employee_directory/internal/domain"
	"github.com/locvowork/employee_directory/pkg/dataflow"
)

// employeeEntity is the Datastore representation of a directory record.
type employeeEntity struct {
	ID         int64   `datastore:"id"`
	Name       string  `datastore:"name"`
	Age        int64   `datastore:"age"`
	Location   string  `datastore:"location"`
	Salary     float64 `datastore:"salary"`
	Department string  `datastore:"department"`
	Image      string  `datastore:"image,noindex"`
}

func newEmployeeEntity(e domain.Employee) employeeEntity {
	return employeeEntity{
		ID:         int64(e.ID),
		Name:       e.Name,
		Age:        int64(e.Age),
		Location:   e.Location,
		Salary:     e.Salary,
		Department: e.Department,
		Image:      e.Image,
	}
}

func (en employeeEntity) toDomain() domain.Employee {
	return domain.Employee{
		ID:         int(en.ID),
		Name:       en.Name,
		Age:        int(en.Age),
		Location:   en.Location,
		Salary:     en.Salary,
		Department: en.Department,
		Image:      en.Image,
	}
}

// DatastoreClient wraps the cloud datastore client
type DatastoreClient struct {
	client *datastore.Client
	kind   string
}

// NewDatastoreClient connects to the given project. An empty kind
// defaults to "Employee".
func NewDatastoreClient(ctx context.Context, projectID, kind string) (*DatastoreClient, error) {
	client, err := datastore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create datastore client: %w", err)
	}
	return WrapDatastoreClient(client, kind), nil
}

// WrapDatastoreClient wraps existing datastore client
func WrapDatastoreClient(client *datastore.Client, kind string) *DatastoreClient {
	if client == nil {
		return nil
	}
	if kind == "" {
		kind = "Employee"
	}
	return &DatastoreClient{client: client, kind: kind}
}

func (dc *DatastoreClient) key(id int) *datastore.Key {
	return datastore.IDKey(dc.kind, int64(id), nil)
}

// Load implements domain.EmployeeSource, returning entities ordered by id.
func (dc *DatastoreClient) Load(ctx context.Context) ([]domain.Employee, error) {
	if dc == nil || dc.client == nil {
		return nil, fmt.Errorf("datastore client is nil")
	}

	var entities []employeeEntity
	q := datastore.NewQuery(dc.kind).Order("id")
	if _, err := dc.client.GetAll(ctx, q, &entities); err != nil {
		return nil, fmt.Errorf("get %s entities: %w", dc.kind, err)
	}

	employees := make([]domain.Employee, 0, len(entities))
	for _, en := range entities {
		employees = append(employees, en.toDomain())
	}
	return employees, nil
}

// BatchSaveEmployees saves employees keyed by their numeric id.
func (dc *DatastoreClient) BatchSaveEmployees(ctx context.Context, employees []domain.Employee) error {
	if dc == nil || dc.client == nil {
		return fmt.Errorf("datastore client is nil")
	}

	if len(employees) == 0 {
		return nil
	}

	keys := make([]*datastore.Key, len(employees))
	entities := make([]employeeEntity, len(employees))
	for i, e := range employees {
		keys[i] = dc.key(e.ID)
		entities[i] = newEmployeeEntity(e)
	}

	_, err := dc.client.PutMulti(ctx, keys, entities)
	return err
}

// DeleteAll removes every entity of the configured kind.
func (dc *DatastoreClient) DeleteAll(ctx context.Context) (int, error) {
	if dc == nil || dc.client == nil {
		return 0, fmt.Errorf("datastore client is nil")
	}

	keys, err := dc.client.GetAll(ctx, datastore.NewQuery(dc.kind).KeysOnly(), nil)
	if err != nil {
		return 0, fmt.Errorf("list %s keys: %w", dc.kind, err)
	}
	n, err := deleteInBatches(ctx, keys, dc.client.DeleteMulti)
	if err != nil {
		return n, fmt.Errorf("delete %s entities: %w", dc.kind, err)
	}
	return n, nil
}

// deleteInBatches calls del once per DefaultBatchSize keys, since a
// Datastore commit takes at most 500 mutations. It returns how many keys
// were deleted before the first failure.
func deleteInBatches(ctx context.Context, keys []*datastore.Key, del func(context.Context, []*datastore.Key) error) (int, error) {
	deleted := 0
	err := dataflow.ForEach(ctx, dataflow.Chunk(ctx, keys, DefaultBatchSize), func(ctx context.Context, batch []*datastore.Key) error {
		if err := del(ctx, batch); err != nil {
			return err
		}
		deleted += len(batch)
		return nil
	})
	return deleted, err
}

// Close releases the underlying connection.
func (dc *DatastoreClient) Close() error {
	if dc == nil || dc.client == nil {
		return nil
	}
	return dc.client.Close()
}
