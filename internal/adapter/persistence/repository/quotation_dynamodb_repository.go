package repository

import (
	"context"

	"servicedesk/internal/domain/entities"
	"servicedesk/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type lineItemRecord struct {
	InventoryItemID string `dynamodbav:"inventory_item_id"`
	Quantity        int    `dynamodbav:"quantity"`
	UnitPrice       string `dynamodbav:"unit_price"`
	Subtotal        string `dynamodbav:"subtotal"`
}

type quotationItem struct {
	ID                string           `dynamodbav:"id"`
	ServiceOrderID    string           `dynamodbav:"service_order_id"`
	LaborDescription  string           `dynamodbav:"labor_description"`
	LaborHours        string           `dynamodbav:"labor_hours"`
	LaborHourlyRate   string           `dynamodbav:"labor_hourly_rate"`
	LaborSubtotal     string           `dynamodbav:"labor_subtotal"`
	LineItems         []lineItemRecord `dynamodbav:"line_items"`
	MaterialsSubtotal string           `dynamodbav:"materials_subtotal"`
	Discount          string           `dynamodbav:"discount"`
	Total             string           `dynamodbav:"total"`
	State             string           `dynamodbav:"state"`
	Notes             string           `dynamodbav:"notes,omitempty"`
	CreatedBy         string           `dynamodbav:"created_by"`
	ApprovedBy        string           `dynamodbav:"approved_by,omitempty"`
	CreatedAt         string           `dynamodbav:"created_at"`
	ApprovedAt        string           `dynamodbav:"approved_at,omitempty"`
	Revision          int              `dynamodbav:"revision"`
	Version           int64            `dynamodbav:"version"`
	UpdatedAt         string           `dynamodbav:"updated_at"`
}

// QuotationDynamoRepository reads quotations from DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: service_order_id-index (PK: service_order_id)
//   - GSI: state-index (PK: state)
type QuotationDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IQuotationRepository = (*QuotationDynamoRepository)(nil)

func NewQuotationDynamoRepository(ddb DynamoAPI, tableName string) *QuotationDynamoRepository {
	return &QuotationDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *QuotationDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quotation, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Quotation{}, err
	}
	if len(out.Item) == 0 {
		return entities.Quotation{}, nil
	}

	var it quotationItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Quotation{}, err
	}
	return fromQuotationItem(it), nil
}

// List queries the GSI matching the filter. A filter with both fields set
// queries by order and narrows by state in memory.
func (r *QuotationDynamoRepository) List(ctx context.Context, filter entities.QuotationFilter) ([]entities.Quotation, error) {
	var raws []map[string]types.AttributeValue
	var err error
	switch {
	case filter.ServiceOrderID != "":
		raws, err = r.query(ctx, serviceOrderIDIndex, "service_order_id", filter.ServiceOrderID)
	case filter.State != "":
		raws, err = r.query(ctx, stateIndex, "state", string(filter.State))
	default:
		raws, err = r.scan(ctx)
	}
	if err != nil {
		return nil, err
	}

	out := make([]entities.Quotation, 0, len(raws))
	for _, raw := range raws {
		var it quotationItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		if q := fromQuotationItem(it); filter.Matches(q) {
			out = append(out, q)
		}
	}
	sortQuotations(out)
	return out, nil
}

func (r *QuotationDynamoRepository) query(ctx context.Context, index, attr, value string) ([]map[string]types.AttributeValue, error) {
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String("#k = :v"),
		ExpressionAttributeNames: map[string]string{
			"#k": attr,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: value},
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

func (r *QuotationDynamoRepository) scan(ctx context.Context) ([]map[string]types.AttributeValue, error) {
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})
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

func toQuotationItem(q entities.Quotation) quotationItem {
	lines := make([]lineItemRecord, 0, len(q.LineItems))
	for _, l := range q.LineItems {
		lines = append(lines, lineItemRecord{
			InventoryItemID: l.InventoryItemID,
			Quantity:        l.Quantity,
			UnitPrice:       l.UnitPrice.String(),
			Subtotal:        l.Subtotal.String(),
		})
	}
	return quotationItem{
		ID:                q.ID,
		ServiceOrderID:    q.ServiceOrderID,
		LaborDescription:  q.Labor.Description,
		LaborHours:        q.Labor.Hours.String(),
		LaborHourlyRate:   q.Labor.HourlyRate.String(),
		LaborSubtotal:     q.LaborSubtotal.String(),
		LineItems:         lines,
		MaterialsSubtotal: q.MaterialsSubtotal.String(),
		Discount:          q.Discount.String(),
		Total:             q.Total.String(),
		State:             string(q.State),
		Notes:             q.Notes,
		CreatedBy:         q.CreatedBy,
		ApprovedBy:        q.ApprovedBy,
		CreatedAt:         formatTime(q.CreatedAt),
		ApprovedAt:        formatTimePtr(q.ApprovedAt),
		Revision:          q.Revision,
		Version:           q.Version,
		UpdatedAt:         formatTime(q.UpdatedAt),
	}
}

func fromQuotationItem(it quotationItem) entities.Quotation {
	lines := make([]entities.LineItem, 0, len(it.LineItems))
	for _, l := range it.LineItems {
		lines = append(lines, entities.LineItem{
			InventoryItemID: l.InventoryItemID,
			Quantity:        l.Quantity,
			UnitPrice:       parseDecimal(l.UnitPrice),
			Subtotal:        parseDecimal(l.Subtotal),
		})
	}
	laborSubtotal := parseDecimal(it.LaborSubtotal)
	return entities.Quotation{
		ID:             it.ID,
		ServiceOrderID: it.ServiceOrderID,
		Labor: entities.Labor{
			Description: it.LaborDescription,
			Hours:       parseDecimal(it.LaborHours),
			HourlyRate:  parseDecimal(it.LaborHourlyRate),
			Subtotal:    laborSubtotal,
		},
		LineItems:         lines,
		LaborSubtotal:     laborSubtotal,
		MaterialsSubtotal: parseDecimal(it.MaterialsSubtotal),
		Discount:          parseDecimal(it.Discount),
		Total:             parseDecimal(it.Total),
		State:             entities.QuotationState(it.State),
		Notes:             it.Notes,
		CreatedBy:         it.CreatedBy,
		ApprovedBy:        it.ApprovedBy,
		CreatedAt:         parseTime(it.CreatedAt),
		ApprovedAt:        parseTimePtr(it.ApprovedAt),
		Revision:          it.Revision,
		Version:           it.Version,
		UpdatedAt:         parseTime(it.UpdatedAt),
	}
}
