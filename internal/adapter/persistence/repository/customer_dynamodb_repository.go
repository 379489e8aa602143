package repository

import (
	"context"
	"sort"

	"servicedesk/internal/domain/entities"
	"servicedesk/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

type customerItem struct {
	ID        string `dynamodbav:"id"`
	Name      string `dynamodbav:"name"`
	Phone     string `dynamodbav:"phone"`
	Email     string `dynamodbav:"email,omitempty"`
	Active    bool   `dynamodbav:"active"`
	Version   int64  `dynamodbav:"version"`
	CreatedAt string `dynamodbav:"created_at"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// CustomerDynamoRepository reads the customer registry.
//
// Table requirements:
//   - PK: id (string)
type CustomerDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.ICustomerRepository = (*CustomerDynamoRepository)(nil)

func NewCustomerDynamoRepository(ddb DynamoAPI, tableName string) *CustomerDynamoRepository {
	return &CustomerDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *CustomerDynamoRepository) GetByID(ctx context.Context, id string) (entities.Customer, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Customer{}, err
	}
	if len(out.Item) == 0 {
		return entities.Customer{}, nil
	}

	var it customerItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Customer{}, err
	}
	return fromCustomerItem(it), nil
}

func (r *CustomerDynamoRepository) List(ctx context.Context, filter entities.CustomerFilter) ([]entities.Customer, error) {
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
		TableName:      aws.String(r.tableName),
		ConsistentRead: aws.Bool(true),
	})
	out := make([]entities.Customer, 0)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			var it customerItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			if c := fromCustomerItem(it); filter.Matches(c) {
				out = append(out, c)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func toCustomerItem(c entities.Customer) customerItem {
	return customerItem{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Active:    c.Active,
		Version:   c.Version,
		CreatedAt: formatTime(c.CreatedAt),
		UpdatedAt: formatTime(c.UpdatedAt),
	}
}

func fromCustomerItem(it customerItem) entities.Customer {
	return entities.Customer{
		ID:        it.ID,
		Name:      it.Name,
		Phone:     it.Phone,
		Email:     it.Email,
		Active:    it.Active,
		Version:   it.Version,
		CreatedAt: parseTime(it.CreatedAt),
		UpdatedAt: parseTime(it.UpdatedAt),
	}
}
