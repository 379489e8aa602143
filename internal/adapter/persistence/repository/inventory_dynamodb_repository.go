package repository

import (
	"context"
	"fmt"

	"servicedesk/internal/domain/entities"
	"servicedesk/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	batchGetLimit    = 100
	batchGetAttempts = 5
)

type inventoryItem struct {
	ID               string `dynamodbav:"id"`
	Name             string `dynamodbav:"name"`
	Description      string `dynamodbav:"description,omitempty"`
	Category         string `dynamodbav:"category"`
	UnitPrice        string `dynamodbav:"unit_price"`
	Stock            int    `dynamodbav:"stock"`
	ReorderThreshold int    `dynamodbav:"reorder_threshold"`
	Active           bool   `dynamodbav:"active"`
	Version          int64  `dynamodbav:"version"`
	CreatedAt        string `dynamodbav:"created_at"`
	UpdatedAt        string `dynamodbav:"updated_at"`
}

// InventoryDynamoRepository reads the parts catalog. Stock is a number
// attribute moved only by UnitOfWork with conditional ADD updates.
//
// Table requirements:
//   - PK: id (string)
type InventoryDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IInventoryRepository = (*InventoryDynamoRepository)(nil)

func NewInventoryDynamoRepository(ddb DynamoAPI, tableName string) *InventoryDynamoRepository {
	return &InventoryDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *InventoryDynamoRepository) GetByID(ctx context.Context, id string) (entities.InventoryItem, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.InventoryItem{}, err
	}
	if len(out.Item) == 0 {
		return entities.InventoryItem{}, nil
	}

	var it inventoryItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.InventoryItem{}, err
	}
	return fromInventoryItem(it), nil
}

func (r *InventoryDynamoRepository) GetMany(ctx context.Context, ids []string) (map[string]entities.InventoryItem, error) {
	out := make(map[string]entities.InventoryItem, len(ids))
	for start := 0; start < len(ids); start += batchGetLimit {
		end := start + batchGetLimit
		if end > len(ids) {
			end = len(ids)
		}
		if err := r.batchGet(ctx, ids[start:end], out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *InventoryDynamoRepository) batchGet(ctx context.Context, ids []string, out map[string]entities.InventoryItem) error {
	keys := make([]map[string]types.AttributeValue, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		keys = append(keys, idKey(id))
	}
	request := map[string]types.KeysAndAttributes{
		r.tableName: {Keys: keys, ConsistentRead: aws.Bool(true)},
	}

	for attempt := 0; attempt < batchGetAttempts && len(request) > 0; attempt++ {
		resp, err := r.ddb.BatchGetItem(ctx, &dynamodb.BatchGetItemInput{RequestItems: request})
		if err != nil {
			return err
		}
		for _, raw := range resp.Responses[r.tableName] {
			var it inventoryItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return err
			}
			out[it.ID] = fromInventoryItem(it)
		}
		request = resp.UnprocessedKeys
	}
	if len(request) > 0 {
		return fmt.Errorf("inventory batch get: %d keys left unprocessed", len(request[r.tableName].Keys))
	}
	return nil
}

func (r *InventoryDynamoRepository) List(ctx context.Context, filter entities.InventoryFilter) ([]entities.InventoryItem, error) {
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
		TableName:      aws.String(r.tableName),
		ConsistentRead: aws.Bool(true),
	})
	out := make([]entities.InventoryItem, 0)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			var it inventoryItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			if item := fromInventoryItem(it); filter.Matches(item) {
				out = append(out, item)
			}
		}
	}
	sortItems(out)
	return out, nil
}

func toInventoryItem(i entities.InventoryItem) inventoryItem {
	return inventoryItem{
		ID:               i.ID,
		Name:             i.Name,
		Description:      i.Description,
		Category:         string(i.Category),
		UnitPrice:        i.UnitPrice.String(),
		Stock:            i.Stock,
		ReorderThreshold: i.ReorderThreshold,
		Active:           i.Active,
		Version:          i.Version,
		CreatedAt:        formatTime(i.CreatedAt),
		UpdatedAt:        formatTime(i.UpdatedAt),
	}
}

func fromInventoryItem(it inventoryItem) entities.InventoryItem {
	return entities.InventoryItem{
		ID:               it.ID,
		Name:             it.Name,
		Description:      it.Description,
		Category:         entities.Category(it.Category),
		UnitPrice:        parseDecimal(it.UnitPrice),
		Stock:            it.Stock,
		ReorderThreshold: it.ReorderThreshold,
		Active:           it.Active,
		Version:          it.Version,
		CreatedAt:        parseTime(it.CreatedAt),
		UpdatedAt:        parseTime(it.UpdatedAt),
	}
}
