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

type billingPaymentItem struct {
	ID                 string                 `dynamodbav:"id"`
	ServiceOrderID     string                 `dynamodbav:"service_order_id"`
	QuotationID        string                 `dynamodbav:"quotation_id,omitempty"`
	Amount             string                 `dynamodbav:"amount"`
	AmountPaidAfter    string                 `dynamodbav:"amount_paid_after"`
	Date               string                 `dynamodbav:"date"`
	Status             string                 `dynamodbav:"status"`
	Provider           string                 `dynamodbav:"provider"`
	ProviderPaymentID  string                 `dynamodbav:"provider_payment_id,omitempty"`
	RecordedBy         string                 `dynamodbav:"recorded_by,omitempty"`
	ProviderPayload    map[string]interface{} `dynamodbav:"provider_payload,omitempty"`
	ProviderPayloadRaw string                 `dynamodbav:"provider_payload_raw,omitempty"`
}

// BillingPaymentDynamoRepository persists the payment history in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: service_order_id-index (PK: service_order_id)
type BillingPaymentDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IBillingPaymentRepository = (*BillingPaymentDynamoRepository)(nil)

func NewBillingPaymentDynamoRepository(ddb DynamoAPI, tableName string) *BillingPaymentDynamoRepository {
	return &BillingPaymentDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *BillingPaymentDynamoRepository) Create(ctx context.Context, p entities.BillingPayment) (entities.BillingPayment, error) {
	av, err := attributevalue.MarshalMap(toBillingPaymentItem(p))
	if err != nil {
		return entities.BillingPayment{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.BillingPayment{}, fmt.Errorf("%w: payment %s already recorded", entities.ErrConcurrentUpdate, p.ID)
		}
		return entities.BillingPayment{}, err
	}
	return p, nil
}

func (r *BillingPaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.BillingPayment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.BillingPayment{}, err
	}
	if len(out.Item) == 0 {
		return entities.BillingPayment{}, nil
	}

	var it billingPaymentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.BillingPayment{}, err
	}
	return fromBillingPaymentItem(it), nil
}

func (r *BillingPaymentDynamoRepository) ListByServiceOrderID(ctx context.Context, serviceOrderID string) ([]entities.BillingPayment, error) {
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(serviceOrderIDIndex),
		KeyConditionExpression: aws.String("service_order_id = :oid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":oid": &types.AttributeValueMemberS{Value: serviceOrderID},
		},
	})

	items := make([]entities.BillingPayment, 0)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			var it billingPaymentItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			items = append(items, fromBillingPaymentItem(it))
		}
	}
	sortPayments(items)
	return items, nil
}

func toBillingPaymentItem(p entities.BillingPayment) billingPaymentItem {
	return billingPaymentItem{
		ID:                 p.ID,
		ServiceOrderID:     p.ServiceOrderID,
		QuotationID:        p.QuotationID,
		Amount:             p.Amount.String(),
		AmountPaidAfter:    p.AmountPaidAfter.String(),
		Date:               formatTime(p.Date),
		Status:             string(p.Status),
		Provider:           string(p.Provider),
		ProviderPaymentID:  p.ProviderPaymentID,
		RecordedBy:         p.RecordedBy,
		ProviderPayload:    p.ProviderPayload,
		ProviderPayloadRaw: string(p.ProviderPayloadRaw),
	}
}

func fromBillingPaymentItem(it billingPaymentItem) entities.BillingPayment {
	p := entities.BillingPayment{
		ID:                it.ID,
		ServiceOrderID:    it.ServiceOrderID,
		QuotationID:       it.QuotationID,
		Amount:            parseDecimal(it.Amount),
		AmountPaidAfter:   parseDecimal(it.AmountPaidAfter),
		Date:              parseTime(it.Date),
		Status:            entities.PaymentStatus(it.Status),
		Provider:          entities.PaymentProvider(it.Provider),
		ProviderPaymentID: it.ProviderPaymentID,
		RecordedBy:        it.RecordedBy,
		ProviderPayload:   it.ProviderPayload,
	}
	if it.ProviderPayloadRaw != "" {
		p.ProviderPayloadRaw = []byte(it.ProviderPayloadRaw)
	}
	return p
}
