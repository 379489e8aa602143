package repository

import (
	"context"

	"servicedesk/internal/domain/entities"
	"servicedesk/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

type serviceOrderItem struct {
	ID                   string `dynamodbav:"id"`
	DeviceRef            string `dynamodbav:"device_ref"`
	ServiceType          string `dynamodbav:"service_type"`
	State                string `dynamodbav:"state"`
	AssignedTechnicianID string `dynamodbav:"assigned_technician_id,omitempty"`
	Priority             string `dynamodbav:"priority"`
	InitialDiagnosis     string `dynamodbav:"initial_diagnosis,omitempty"`
	Notes                string `dynamodbav:"notes,omitempty"`
	WorkPerformed        string `dynamodbav:"work_performed,omitempty"`
	CreatedBy            string `dynamodbav:"created_by"`
	CreatedAt            string `dynamodbav:"created_at"`
	AssignedAt           string `dynamodbav:"assigned_at,omitempty"`
	StartedAt            string `dynamodbav:"started_at,omitempty"`
	FinishedAt           string `dynamodbav:"finished_at,omitempty"`
	DeliveredAt          string `dynamodbav:"delivered_at,omitempty"`
	AmountPaid           string `dynamodbav:"amount_paid"`
	PaymentState         string `dynamodbav:"payment_state"`
	LiveQuotationID      string `dynamodbav:"live_quotation_id,omitempty"`
	Active               bool   `dynamodbav:"active"`
	Version              int64  `dynamodbav:"version"`
	UpdatedAt            string `dynamodbav:"updated_at"`
}

// ServiceOrderDynamoRepository reads service orders from DynamoDB. Writes go
// through UnitOfWork.
//
// Table requirements:
//   - PK: id (string)
type ServiceOrderDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IServiceOrderRepository = (*ServiceOrderDynamoRepository)(nil)

func NewServiceOrderDynamoRepository(ddb DynamoAPI, tableName string) *ServiceOrderDynamoRepository {
	return &ServiceOrderDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *ServiceOrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.ServiceOrder, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if len(out.Item) == 0 {
		return entities.ServiceOrder{}, nil
	}

	var it serviceOrderItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.ServiceOrder{}, err
	}
	return fromServiceOrderItem(it), nil
}

// List scans the table and filters in memory. Order volume per shop is small
// enough that a scan stays cheap.
func (r *ServiceOrderDynamoRepository) List(ctx context.Context, filter entities.OrderFilter) ([]entities.ServiceOrder, error) {
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
		TableName:      aws.String(r.tableName),
		ConsistentRead: aws.Bool(true),
	})
	out := make([]entities.ServiceOrder, 0)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			var it serviceOrderItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			if o := fromServiceOrderItem(it); filter.Matches(o) {
				out = append(out, o)
			}
		}
	}
	sortOrders(out)
	return out, nil
}

func toServiceOrderItem(o entities.ServiceOrder) serviceOrderItem {
	return serviceOrderItem{
		ID:                   o.ID,
		DeviceRef:            o.DeviceRef,
		ServiceType:          string(o.ServiceType),
		State:                string(o.State),
		AssignedTechnicianID: o.AssignedTechnicianID,
		Priority:             string(o.Priority),
		InitialDiagnosis:     o.InitialDiagnosis,
		Notes:                o.Notes,
		WorkPerformed:        o.WorkPerformed,
		CreatedBy:            o.CreatedBy,
		CreatedAt:            formatTime(o.CreatedAt),
		AssignedAt:           formatTimePtr(o.AssignedAt),
		StartedAt:            formatTimePtr(o.StartedAt),
		FinishedAt:           formatTimePtr(o.FinishedAt),
		DeliveredAt:          formatTimePtr(o.DeliveredAt),
		AmountPaid:           o.AmountPaid.String(),
		PaymentState:         string(o.PaymentState),
		LiveQuotationID:      o.LiveQuotationID,
		Active:               o.Active,
		Version:              o.Version,
		UpdatedAt:            formatTime(o.UpdatedAt),
	}
}

func fromServiceOrderItem(it serviceOrderItem) entities.ServiceOrder {
	return entities.ServiceOrder{
		ID:                   it.ID,
		DeviceRef:            it.DeviceRef,
		ServiceType:          entities.ServiceType(it.ServiceType),
		State:                entities.OrderState(it.State),
		AssignedTechnicianID: it.AssignedTechnicianID,
		Priority:             entities.Priority(it.Priority),
		InitialDiagnosis:     it.InitialDiagnosis,
		Notes:                it.Notes,
		WorkPerformed:        it.WorkPerformed,
		CreatedBy:            it.CreatedBy,
		CreatedAt:            parseTime(it.CreatedAt),
		AssignedAt:           parseTimePtr(it.AssignedAt),
		StartedAt:            parseTimePtr(it.StartedAt),
		FinishedAt:           parseTimePtr(it.FinishedAt),
		DeliveredAt:          parseTimePtr(it.DeliveredAt),
		AmountPaid:           parseDecimal(it.AmountPaid),
		PaymentState:         entities.PaymentState(it.PaymentState),
		LiveQuotationID:      it.LiveQuotationID,
		Active:               it.Active,
		Version:              it.Version,
		UpdatedAt:            parseTime(it.UpdatedAt),
	}
}
