package repository

import (
	"context"
	"sort"

	"servicedesk/internal/domain/entities"
	"servicedesk/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const customerIDIndex = "customer_id-index"

type deviceItem struct {
	ID                 string   `dynamodbav:"id"`
	CustomerID         string   `dynamodbav:"customer_id"`
	Type               string   `dynamodbav:"type"`
	Brand              string   `dynamodbav:"brand"`
	Model              string   `dynamodbav:"model"`
	SerialNumber       string   `dynamodbav:"serial_number,omitempty"`
	ProblemDescription string   `dynamodbav:"problem_description"`
	Accessories        string   `dynamodbav:"accessories,omitempty"`
	Photos             []string `dynamodbav:"photos,omitempty"`
	Active             bool     `dynamodbav:"active"`
	Version            int64    `dynamodbav:"version"`
	ReceivedAt         string   `dynamodbav:"received_at"`
	UpdatedAt          string   `dynamodbav:"updated_at"`
}

// DeviceDynamoRepository reads the device registry.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: customer_id-index (PK: customer_id)
type DeviceDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IDeviceRepository = (*DeviceDynamoRepository)(nil)

func NewDeviceDynamoRepository(ddb DynamoAPI, tableName string) *DeviceDynamoRepository {
	return &DeviceDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *DeviceDynamoRepository) GetByID(ctx context.Context, id string) (entities.Device, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Device{}, err
	}
	if len(out.Item) == 0 {
		return entities.Device{}, nil
	}

	var it deviceItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Device{}, err
	}
	return fromDeviceItem(it), nil
}

// List queries the customer index when filter names a customer and scans
// otherwise.
func (r *DeviceDynamoRepository) List(ctx context.Context, filter entities.DeviceFilter) ([]entities.Device, error) {
	var (
		raws []map[string]types.AttributeValue
		err  error
	)
	if filter.CustomerID != "" {
		raws, err = r.byCustomer(ctx, filter.CustomerID)
	} else {
		raws, err = r.scan(ctx)
	}
	if err != nil {
		return nil, err
	}

	out := make([]entities.Device, 0, len(raws))
	for _, raw := range raws {
		var it deviceItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		if d := fromDeviceItem(it); filter.Matches(d) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ReceivedAt.Equal(out[j].ReceivedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].ReceivedAt.Before(out[j].ReceivedAt)
	})
	return out, nil
}

func (r *DeviceDynamoRepository) byCustomer(ctx context.Context, customerID string) ([]map[string]types.AttributeValue, error) {
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(customerIDIndex),
		KeyConditionExpression: aws.String("#customer_id = :customer_id"),
		ExpressionAttributeNames: map[string]string{
			"#customer_id": "customer_id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":customer_id": &types.AttributeValueMemberS{Value: customerID},
		},
	})
	var items []map[string]types.AttributeValue
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
	}
	return items, nil
}

func (r *DeviceDynamoRepository) scan(ctx context.Context) ([]map[string]types.AttributeValue, error) {
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
		TableName:      aws.String(r.tableName),
		ConsistentRead: aws.Bool(true),
	})
	var items []map[string]types.AttributeValue
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
	}
	return items, nil
}

func toDeviceItem(d entities.Device) deviceItem {
	return deviceItem{
		ID:                 d.ID,
		CustomerID:         d.CustomerID,
		Type:               string(d.Type),
		Brand:              d.Brand,
		Model:              d.Model,
		SerialNumber:       d.SerialNumber,
		ProblemDescription: d.ProblemDescription,
		Accessories:        d.Accessories,
		Photos:             d.Photos,
		Active:             d.Active,
		Version:            d.Version,
		ReceivedAt:         formatTime(d.ReceivedAt),
		UpdatedAt:          formatTime(d.UpdatedAt),
	}
}

func fromDeviceItem(it deviceItem) entities.Device {
	return entities.Device{
		ID:                 it.ID,
		CustomerID:         it.CustomerID,
		Type:               entities.DeviceType(it.Type),
		Brand:              it.Brand,
		Model:              it.Model,
		SerialNumber:       it.SerialNumber,
		ProblemDescription: it.ProblemDescription,
		Accessories:        it.Accessories,
		Photos:             it.Photos,
		Active:             it.Active,
		Version:            it.Version,
		ReceivedAt:         parseTime(it.ReceivedAt),
		UpdatedAt:          parseTime(it.UpdatedAt),
	}
}
