package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"servicedesk/internal/domain/entities"
	"servicedesk/internal/usecase/interfaces"
	"servicedesk/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "servicedesk/persistence/dynamodb"

// UnitOfWork commits a ChangeSet with a single TransactWriteItems call.
//
//   - creates are conditioned on attribute_not_exists(id)
//   - updates are conditioned on the expected version
//   - reservations are ADD updates conditioned on stock >= quantity, releases
//     on the result staying within MaxStock
type UnitOfWork struct {
	ddb    DynamoAPI
	tables Tables
	tracer trace.Tracer
	now    func() time.Time
}

var _ interfaces.IUnitOfWork = (*UnitOfWork)(nil)

func NewUnitOfWork(ddb DynamoAPI, tables Tables) *UnitOfWork {
	return &UnitOfWork{
		ddb:    ddb,
		tables: tables,
		tracer: otel.Tracer(tracerName),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// txOp describes one transact item so a cancellation reason can be mapped
// back to a domain error.
type txOp struct {
	entity string
	id     string
	delta  int
}

func (u *UnitOfWork) Commit(ctx context.Context, cs *entities.ChangeSet) error {
	if err := cs.Validate(); err != nil {
		return err
	}
	if cs.Empty() {
		return nil
	}

	items, ops, err := u.buildTransaction(cs)
	if err != nil {
		return err
	}

	ctx, span := u.tracer.Start(ctx, "dynamodb.TransactWriteItems", trace.WithAttributes(
		attribute.Int("servicedesk.tx.items", len(items)),
		attribute.Int("servicedesk.tx.stock_adjustments", len(cs.MergedStock())),
	))
	defer span.End()

	_, err = u.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err == nil {
		return nil
	}

	mapped := mapTransactionError(err, ops)
	span.RecordError(mapped)
	span.SetStatus(codes.Error, mapped.Error())
	logger.Warn(ctx).Err(err).Int("items", len(items)).Msg("[uow][dynamodb] transaction cancelled")
	return mapped
}

func (u *UnitOfWork) buildTransaction(cs *entities.ChangeSet) ([]types.TransactWriteItem, []txOp, error) {
	var (
		items []types.TransactWriteItem
		ops   []txOp
	)
	add := func(item types.TransactWriteItem, op txOp) {
		items = append(items, item)
		ops = append(ops, op)
	}

	for _, w := range cs.Orders {
		put, err := versionedPut(u.tables.Orders, toServiceOrderItem(w.Order), w.Create, w.ExpectedVersion)
		if err != nil {
			return nil, nil, err
		}
		add(put, txOp{entity: entities.EntityServiceOrder, id: w.Order.ID})
	}
	for _, w := range cs.Quotations {
		put, err := versionedPut(u.tables.Quotations, toQuotationItem(w.Quotation), w.Create, w.ExpectedVersion)
		if err != nil {
			return nil, nil, err
		}
		add(put, txOp{entity: entities.EntityQuotation, id: w.Quotation.ID})
	}
	for _, w := range cs.Items {
		if w.Create {
			put, err := versionedPut(u.tables.Inventory, toInventoryItem(w.Item), true, 0)
			if err != nil {
				return nil, nil, err
			}
			add(put, txOp{entity: entities.EntityInventoryItem, id: w.Item.ID})
			continue
		}
		add(u.catalogUpdate(w), txOp{entity: entities.EntityInventoryItem, id: w.Item.ID})
	}
	for _, a := range cs.MergedStock() {
		add(u.stockUpdate(a), txOp{entity: entities.EntityInventoryItem, id: a.ItemID, delta: a.Delta})
	}
	for _, p := range cs.Payments {
		av, err := attributevalue.MarshalMap(toBillingPaymentItem(p))
		if err != nil {
			return nil, nil, err
		}
		add(types.TransactWriteItem{Put: &types.Put{
			TableName:                aws.String(u.tables.Payments),
			Item:                     av,
			ConditionExpression:      aws.String("attribute_not_exists(#id)"),
			ExpressionAttributeNames: map[string]string{"#id": "id"},
		}}, txOp{entity: entities.EntityPayment, id: p.ID})
	}
	for _, w := range cs.Customers {
		put, err := versionedPut(u.tables.Customers, toCustomerItem(w.Customer), w.Create, w.ExpectedVersion)
		if err != nil {
			return nil, nil, err
		}
		add(put, txOp{entity: entities.EntityCustomer, id: w.Customer.ID})
	}
	for _, w := range cs.Devices {
		put, err := versionedPut(u.tables.Devices, toDeviceItem(w.Device), w.Create, w.ExpectedVersion)
		if err != nil {
			return nil, nil, err
		}
		add(put, txOp{entity: entities.EntityDevice, id: w.Device.ID})
	}
	return items, ops, nil
}

func versionedPut(table string, record any, create bool, expected int64) (types.TransactWriteItem, error) {
	av, err := attributevalue.MarshalMap(record)
	if err != nil {
		return types.TransactWriteItem{}, err
	}
	put := &types.Put{
		TableName: aws.String(table),
		Item:      av,
	}
	if create {
		put.ConditionExpression = aws.String("attribute_not_exists(#id)")
		put.ExpressionAttributeNames = map[string]string{"#id": "id"}
	} else {
		put.ConditionExpression = aws.String("#version = :expected")
		put.ExpressionAttributeNames = map[string]string{"#version": "version"}
		put.ExpressionAttributeValues = map[string]types.AttributeValue{
			":expected": numberAV(expected),
		}
	}
	return types.TransactWriteItem{Put: put}, nil
}

// catalogUpdate rewrites the admin-editable fields and leaves stock alone.
func (u *UnitOfWork) catalogUpdate(w entities.ItemWrite) types.TransactWriteItem {
	i := w.Item
	return types.TransactWriteItem{Update: &types.Update{
		TableName:           aws.String(u.tables.Inventory),
		Key:                 idKey(i.ID),
		ConditionExpression: aws.String("#version = :expected"),
		UpdateExpression: aws.String("SET #name = :name, #description = :description, #category = :category, " +
			"#unit_price = :unit_price, #reorder_threshold = :reorder_threshold, #active = :active, " +
			"#version = :version, #updated_at = :updated_at"),
		ExpressionAttributeNames: map[string]string{
			"#name":              "name",
			"#description":       "description",
			"#category":          "category",
			"#unit_price":        "unit_price",
			"#reorder_threshold": "reorder_threshold",
			"#active":            "active",
			"#version":           "version",
			"#updated_at":        "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":name":              &types.AttributeValueMemberS{Value: i.Name},
			":description":       &types.AttributeValueMemberS{Value: i.Description},
			":category":          &types.AttributeValueMemberS{Value: string(i.Category)},
			":unit_price":        &types.AttributeValueMemberS{Value: i.UnitPrice.String()},
			":reorder_threshold": numberAV(int64(i.ReorderThreshold)),
			":active":            &types.AttributeValueMemberBOOL{Value: i.Active},
			":version":           numberAV(i.Version),
			":updated_at":        &types.AttributeValueMemberS{Value: formatTime(i.UpdatedAt)},
			":expected":          numberAV(w.ExpectedVersion),
		},
	}}
}

func (u *UnitOfWork) stockUpdate(a entities.StockAdjustment) types.TransactWriteItem {
	names := map[string]string{
		"#id":         "id",
		"#stock":      "stock",
		"#updated_at": "updated_at",
	}
	values := map[string]types.AttributeValue{
		":delta":      numberAV(int64(a.Delta)),
		":updated_at": &types.AttributeValueMemberS{Value: formatTime(u.now())},
	}
	cond := "attribute_exists(#id)"
	if a.Delta < 0 {
		cond += " AND #stock >= :need"
		values[":need"] = numberAV(int64(-a.Delta))
	} else {
		cond += " AND #stock <= :ceiling"
		values[":ceiling"] = numberAV(int64(entities.MaxStock - a.Delta))
	}
	return types.TransactWriteItem{Update: &types.Update{
		TableName:                           aws.String(u.tables.Inventory),
		Key:                                 idKey(a.ItemID),
		UpdateExpression:                    aws.String("ADD #stock :delta SET #updated_at = :updated_at"),
		ConditionExpression:                 aws.String(cond),
		ExpressionAttributeNames:            names,
		ExpressionAttributeValues:           values,
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	}}
}

// mapTransactionError turns cancellation reasons into domain errors. A failed
// reservation becomes InsufficientStockError (or NotFoundError when the item
// is gone); every other failed condition is a lost optimistic race.
func mapTransactionError(err error, ops []txOp) error {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) {
		var tcf *types.TransactionConflictException
		if errors.As(err, &tcf) {
			return fmt.Errorf("%w: %v", entities.ErrConcurrentUpdate, err)
		}
		return err
	}

	var conflictErr error
	for i, reason := range tce.CancellationReasons {
		if i >= len(ops) {
			break
		}
		code := aws.ToString(reason.Code)
		op := ops[i]
		switch code {
		case "", "None":
			continue
		case "ConditionalCheckFailed":
			if op.delta != 0 && conflictErr == nil {
				return stockError(op, reason.Item)
			}
			if conflictErr == nil {
				conflictErr = fmt.Errorf("%w: %s %s", entities.ErrConcurrentUpdate, op.entity, op.id)
			}
		case "TransactionConflict":
			if conflictErr == nil {
				conflictErr = fmt.Errorf("%w: %s %s is being written concurrently", entities.ErrConcurrentUpdate, op.entity, op.id)
			}
		}
	}
	if conflictErr != nil {
		return conflictErr
	}
	return err
}

func stockError(op txOp, old map[string]types.AttributeValue) error {
	if len(old) == 0 {
		return &entities.NotFoundError{Entity: entities.EntityInventoryItem, ID: op.id}
	}
	if op.delta > 0 {
		return entities.StockCeilingError(op.id)
	}
	var it inventoryItem
	if err := attributevalue.UnmarshalMap(old, &it); err != nil {
		return &entities.InsufficientStockError{ItemID: op.id, Requested: -op.delta}
	}
	return &entities.InsufficientStockError{
		ItemID:    op.id,
		ItemName:  it.Name,
		Requested: -op.delta,
		Available: it.Stock,
	}
}

func numberAV(n int64) types.AttributeValue {
	return &types.AttributeValueMemberN{Value: strconv.FormatInt(n, 10)}
}
