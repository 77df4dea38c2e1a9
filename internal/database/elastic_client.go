package database

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/locvowork/employee_directory/internal/domain"
	"github.com/olivere/elastic/v7"
)

// EmployeeDoc is the Elasticsearch document shape of a directory record.
type EmployeeDoc struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Age        int     `json:"age"`
	Location   string  `json:"location"`
	Salary     float64 `json:"salary"`
	Department string  `json:"department"`
	Image      string  `json:"image"`
}

func newEmployeeDoc(e domain.Employee) EmployeeDoc {
	return EmployeeDoc(e)
}

func (d EmployeeDoc) toDomain() domain.Employee {
	return domain.Employee(d)
}

// ElasticSearchClient wraps olivere/elastic client.
type ElasticSearchClient struct {
	client *elastic.Client
	index  string
	// pageSize is the number of hits fetched per Load request.
	pageSize int
}

// NewElasticSearchClient creates a new client for Elasticsearch 7.x.
func NewElasticSearchClient(url, index string, opts ...elastic.ClientOptionFunc) (*ElasticSearchClient, error) {
	options := append([]elastic.ClientOptionFunc{
		elastic.SetURL(url),
		elastic.SetSniff(false), // Essential when using Docker or cloud
	}, opts...)

	client, err := elastic.NewClient(options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}
	if index == "" {
		index = "employees"
	}

	return &ElasticSearchClient{client: client, index: index, pageSize: 10000}, nil
}

// Load implements domain.EmployeeSource with a match-all search sorted by id.
// Pages are fetched with search_after on id until a short page comes back.
func (es *ElasticSearchClient) Load(ctx context.Context) ([]domain.Employee, error) {
	employees := []domain.Employee{}
	var after []interface{}

	for {
		search := es.client.Search().
			Index(es.index).
			Query(elastic.NewMatchAllQuery()).
			Sort("id", true).
			Size(es.pageSize)
		if after != nil {
			search = search.SearchAfter(after...)
		}

		searchResult, err := search.Do(ctx)
		if err != nil {
			return nil, fmt.Errorf("search %s: %w", es.index, err)
		}
		if searchResult.Hits == nil || len(searchResult.Hits.Hits) == 0 {
			return employees, nil
		}

		hits := searchResult.Hits.Hits
		for _, hit := range hits {
			var doc EmployeeDoc
			if err := json.Unmarshal(hit.Source, &doc); err != nil {
				return nil, fmt.Errorf("decode hit %s: %w", hit.Id, err)
			}
			employees = append(employees, doc.toDomain())
		}
		if len(hits) < es.pageSize {
			return employees, nil
		}
		after = []interface{}{employees[len(employees)-1].ID}
	}
}

// BulkIndexEmployees indexes employees using their id as document id.
func (es *ElasticSearchClient) BulkIndexEmployees(ctx context.Context, employees []domain.Employee) error {
	bulkRequest := es.client.Bulk()

	for _, e := range employees {
		req := elastic.NewBulkIndexRequest().
			Index(es.index).
			Id(strconv.Itoa(e.ID)).
			Doc(newEmployeeDoc(e))
		bulkRequest = bulkRequest.Add(req)
	}

	if bulkRequest.NumberOfActions() == 0 {
		return nil
	}

	bulkResponse, err := bulkRequest.Refresh("true").Do(ctx)
	if err != nil {
		return fmt.Errorf("bulk index failed: %w", err)
	}

	if bulkResponse.Errors {
		for _, item := range bulkResponse.Items {
			for _, op := range item {
				if op.Error != nil {
					return fmt.Errorf("bulk item failed: %s", op.Error.Reason)
				}
			}
		}
	}

	return nil
}

// DeleteIndex drops the employee index. A missing index is not an error.
func (es *ElasticSearchClient) DeleteIndex(ctx context.Context) error {
	exists, err := es.client.IndexExists(es.index).Do(ctx)
	if err != nil {
		return fmt.Errorf("check index %s: %w", es.index, err)
	}
	if !exists {
		return nil
	}
	if _, err := es.client.DeleteIndex(es.index).Do(ctx); err != nil {
		return fmt.Errorf("delete index %s: %w", es.index, err)
	}
	return nil
}
