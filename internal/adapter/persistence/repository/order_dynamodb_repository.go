package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"orderhub/internal/domain/entities"
	"orderhub/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultOrdersTableName   = "orders"
	defaultCountersTableName = "counters"

	ordersCustomerIDIndex       = "customer_id-index"
	ordersAssignedSupplierIndex = "assigned_supplier_id-index"
	ordersStatusIndex           = "status-index"
	ordersPaymentRefIndex       = "payment_reference-index"

	orderNumberCounterID = "order_number"
)

type uploadedFileItem struct {
	ID         string `dynamodbav:"id"`
	Name       string `dynamodbav:"name"`
	Size       int64  `dynamodbav:"size"`
	Type       string `dynamodbav:"type"`
	URL        string `dynamodbav:"url"`
	UploadedAt string `dynamodbav:"uploaded_at"`
}

type orderItem struct {
	ID          string `dynamodbav:"id"`
	OrderNumber int64  `dynamodbav:"order_number"`
	CustomerID  string `dynamodbav:"customer_id"`

	Title           string             `dynamodbav:"title"`
	Description     string             `dynamodbav:"description"`
	Quantity        int                `dynamodbav:"quantity"`
	ProductLink     string             `dynamodbav:"product_link,omitempty"`
	DeliveryAddress string             `dynamodbav:"delivery_address,omitempty"`
	PhoneNumber     string             `dynamodbav:"phone_number,omitempty"`
	UploadedFiles   []uploadedFileItem `dynamodbav:"uploaded_files,omitempty"`
	FilesUploadedAt string             `dynamodbav:"files_uploaded_at,omitempty"`

	Status        string   `dynamodbav:"status"`
	SupplierPrice *float64 `dynamodbav:"supplier_price,omitempty"`
	AdminMargin   *float64 `dynamodbav:"admin_margin,omitempty"`
	FinalPrice    *float64 `dynamodbav:"final_price,omitempty"`

	AssignedSupplierID  string `dynamodbav:"assigned_supplier_id,omitempty"`
	SupplierImageURL    string `dynamodbav:"supplier_image_url,omitempty"`
	SupplierCompletedAt string `dynamodbav:"supplier_completed_at,omitempty"`
	PaymentReference    string `dynamodbav:"payment_reference,omitempty"`
	PaymentConfirmedAt  string `dynamodbav:"payment_confirmed_at,omitempty"`

	Version   int64  `dynamodbav:"version"`
	CreatedAt string `dynamodbav:"created_at"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// OrderDynamoRepository persists Order entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: customer_id-index (PK: customer_id)
//   - GSI: assigned_supplier_id-index (PK: assigned_supplier_id)
//   - GSI: status-index (PK: status)
//   - GSI: payment_reference-index (PK: payment_reference)
//
// A second table backs the human-readable order number: a single counter item
// bumped with an atomic ADD.
//
// Every mutation bumps version; transitions additionally write their history
// row in the same TransactWriteItems call so the ledger can never lag behind
// the order.

type OrderDynamoRepository struct {
	ddb           *dynamodb.Client
	tableName     string
	countersTable string
	historyTable  string
	quotesTable   string
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb *dynamodb.Client) *OrderDynamoRepository {
	return &OrderDynamoRepository{
		ddb:           ddb,
		tableName:     getenvDefault("ORDERS_TABLE", defaultOrdersTableName),
		countersTable: getenvDefault("COUNTERS_TABLE", defaultCountersTableName),
		historyTable:  getenvDefault("ORDER_STATUS_HISTORY_TABLE", defaultHistoryTableName),
		quotesTable:   getenvDefault("SUPPLIER_QUOTES_TABLE", defaultQuotesTableName),
	}
}

func (r *OrderDynamoRepository) Create(ctx context.Context, o entities.Order, h entities.OrderStatusHistory) (entities.Order, error) {
	orderAV, err := attributevalue.MarshalMap(toOrderItem(o))
	if err != nil {
		return entities.Order{}, infraErr("marshal order", err)
	}
	historyAV, err := attributevalue.MarshalMap(toHistoryItem(h))
	if err != nil {
		return entities.Order{}, infraErr("marshal history", err)
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:           aws.String(r.tableName),
					Item:                orderAV,
					ConditionExpression: aws.String("attribute_not_exists(#id)"),
					ExpressionAttributeNames: map[string]string{
						"#id": "id",
					},
				},
			},
			{
				Put: &types.Put{
					TableName: aws.String(r.historyTable),
					Item:      historyAV,
				},
			},
		},
	})
	if err != nil {
		return entities.Order{}, conditionErr("create order", err, -1)
	}
	return o, nil
}

func (r *OrderDynamoRepository) NextOrderNumber(ctx context.Context) (int64, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.countersTable),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: orderNumberCounterID},
		},
		UpdateExpression: aws.String("ADD #value :one"),
		ExpressionAttributeNames: map[string]string{
			"#value": "value",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, infraErr("next order number", err)
	}

	var counter struct {
		Value int64 `dynamodbav:"value"`
	}
	if err := attributevalue.UnmarshalMap(out.Attributes, &counter); err != nil {
		return 0, infraErr("unmarshal counter", err)
	}
	return counter.Value, nil
}

func (r *OrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.Order, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Order{}, infraErr("get order", err)
	}
	if len(out.Item) == 0 {
		return entities.Order{}, nil
	}

	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Order{}, infraErr("unmarshal order", err)
	}
	return fromOrderItem(it), nil
}

func (r *OrderDynamoRepository) GetByPaymentReference(ctx context.Context, reference string) (entities.Order, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(ordersPaymentRefIndex),
		KeyConditionExpression: aws.String("payment_reference = :ref"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ref": &types.AttributeValueMemberS{Value: reference},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Order{}, infraErr("get order by payment reference", err)
	}
	if len(out.Items) == 0 {
		return entities.Order{}, nil
	}

	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.Order{}, infraErr("unmarshal order", err)
	}
	return fromOrderItem(it), nil
}

func (r *OrderDynamoRepository) ListByCustomerID(ctx context.Context, customerID string) ([]entities.Order, error) {
	return r.queryIndex(ctx, ordersCustomerIDIndex, "customer_id", customerID)
}

func (r *OrderDynamoRepository) ListByAssignedSupplierID(ctx context.Context, supplierID string) ([]entities.Order, error) {
	return r.queryIndex(ctx, ordersAssignedSupplierIndex, "assigned_supplier_id", supplierID)
}

func (r *OrderDynamoRepository) ListByStatus(ctx context.Context, status entities.OrderStatus) ([]entities.Order, error) {
	return r.queryIndex(ctx, ordersStatusIndex, "status", string(status))
}

func (r *OrderDynamoRepository) ListAll(ctx context.Context) ([]entities.Order, error) {
	orders := make([]entities.Order, 0)

	var startKey map[string]types.AttributeValue
	for {
		out, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, infraErr("list orders", err)
		}
		for _, raw := range out.Items {
			var it orderItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, infraErr("unmarshal order", err)
			}
			orders = append(orders, fromOrderItem(it))
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return orders, nil
}

func (r *OrderDynamoRepository) queryIndex(ctx context.Context, index, key, value string) ([]entities.Order, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String("#key = :value"),
		ExpressionAttributeNames: map[string]string{
			"#key": key,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":value": &types.AttributeValueMemberS{Value: value},
		},
	})
	if err != nil {
		return nil, infraErr("query "+index, err)
	}

	orders := make([]entities.Order, 0, len(out.Items))
	for _, raw := range out.Items {
		var it orderItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, infraErr("unmarshal order", err)
		}
		orders = append(orders, fromOrderItem(it))
	}
	return orders, nil
}

// TransitionStatus applies the transition, its history row and any quote
// deletions in one TransactWriteItems call. The order update is conditioned
// on the caller's observed status and version, so a concurrent writer makes
// the whole transaction cancel without side effects.
func (r *OrderDynamoRepository) TransitionStatus(ctx context.Context, cmd interfaces.TransitionCommand) (entities.Order, error) {
	now := time.Now().UTC()
	newVersion := cmd.ExpectedVersion + 1

	sets := []string{"#status = :to", "#version = :newver", "#updated_at = :now"}
	var removes []string
	names := map[string]string{
		"#status":     "status",
		"#version":    "version",
		"#updated_at": "updated_at",
	}
	values := map[string]types.AttributeValue{
		":from":     &types.AttributeValueMemberS{Value: string(cmd.FromStatus)},
		":to":       &types.AttributeValueMemberS{Value: string(cmd.ToStatus)},
		":expected": &types.AttributeValueMemberN{Value: int64ToString(cmd.ExpectedVersion)},
		":newver":   &types.AttributeValueMemberN{Value: int64ToString(newVersion)},
		":now":      &types.AttributeValueMemberS{Value: formatTime(now)},
	}

	if cmd.Pricing != nil {
		sets = append(sets, "#supplier_price = :sp", "#admin_margin = :am", "#final_price = :fp")
		names["#supplier_price"] = "supplier_price"
		names["#admin_margin"] = "admin_margin"
		names["#final_price"] = "final_price"
		values[":sp"] = &types.AttributeValueMemberN{Value: floatToString(cmd.Pricing.SupplierPrice)}
		values[":am"] = &types.AttributeValueMemberN{Value: floatToString(cmd.Pricing.AdminMargin)}
		values[":fp"] = &types.AttributeValueMemberN{Value: floatToString(cmd.Pricing.FinalPrice)}
	}
	if cmd.ClearPricing {
		removes = append(removes, "#supplier_price", "#admin_margin", "#final_price", "#assigned_supplier_id")
		names["#supplier_price"] = "supplier_price"
		names["#admin_margin"] = "admin_margin"
		names["#final_price"] = "final_price"
		names["#assigned_supplier_id"] = "assigned_supplier_id"
	}
	if cmd.AssignSupplierID != "" {
		sets = append(sets, "#assigned_supplier_id = :asid")
		names["#assigned_supplier_id"] = "assigned_supplier_id"
		values[":asid"] = &types.AttributeValueMemberS{Value: cmd.AssignSupplierID}
	}
	if cmd.SupplierImageURL != "" {
		sets = append(sets, "#supplier_image_url = :img")
		names["#supplier_image_url"] = "supplier_image_url"
		values[":img"] = &types.AttributeValueMemberS{Value: cmd.SupplierImageURL}
	}
	if cmd.SupplierCompletedAt != nil {
		sets = append(sets, "#supplier_completed_at = :completed")
		names["#supplier_completed_at"] = "supplier_completed_at"
		values[":completed"] = &types.AttributeValueMemberS{Value: formatTime(*cmd.SupplierCompletedAt)}
	}
	if cmd.Content != nil {
		contentSets, contentRemoves, err := contentExpression(*cmd.Content, names, values)
		if err != nil {
			return entities.Order{}, infraErr("marshal order content", err)
		}
		sets = append(sets, contentSets...)
		removes = append(removes, contentRemoves...)
	}

	updateExpr := "SET " + strings.Join(sets, ", ")
	if len(removes) > 0 {
		updateExpr += " REMOVE " + strings.Join(removes, ", ")
	}

	historyAV, err := attributevalue.MarshalMap(toHistoryItem(entities.OrderStatusHistory{
		OrderID:   cmd.OrderID,
		Seq:       newVersion,
		Status:    cmd.ToStatus,
		Notes:     cmd.Notes,
		ChangedBy: cmd.ChangedBy,
		CreatedAt: now,
	}))
	if err != nil {
		return entities.Order{}, infraErr("marshal history", err)
	}

	items := []types.TransactWriteItem{
		{
			Update: &types.Update{
				TableName: aws.String(r.tableName),
				Key: map[string]types.AttributeValue{
					"id": &types.AttributeValueMemberS{Value: cmd.OrderID},
				},
				ConditionExpression:       aws.String("#status = :from AND #version = :expected"),
				UpdateExpression:          aws.String(updateExpr),
				ExpressionAttributeNames:  names,
				ExpressionAttributeValues: values,
			},
		},
		{
			Put: &types.Put{
				TableName: aws.String(r.historyTable),
				Item:      historyAV,
			},
		},
	}
	for _, supplierID := range cmd.DeleteQuoteIDs {
		items = append(items, types.TransactWriteItem{
			Delete: &types.Delete{
				TableName: aws.String(r.quotesTable),
				Key: map[string]types.AttributeValue{
					"order_id":    &types.AttributeValueMemberS{Value: cmd.OrderID},
					"supplier_id": &types.AttributeValueMemberS{Value: supplierID},
				},
			},
		})
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		return entities.Order{}, conditionErr("transition order", err, -1)
	}
	return r.GetByID(ctx, cmd.OrderID)
}

func (r *OrderDynamoRepository) UpdateContent(ctx context.Context, orderID string, expectedVersion int64, content interfaces.ContentUpdate) (entities.Order, error) {
	now := time.Now().UTC()

	sets := []string{"#version = :newver", "#updated_at = :now"}
	names := map[string]string{
		"#version":    "version",
		"#updated_at": "updated_at",
	}
	values := map[string]types.AttributeValue{
		":expected": &types.AttributeValueMemberN{Value: int64ToString(expectedVersion)},
		":newver":   &types.AttributeValueMemberN{Value: int64ToString(expectedVersion + 1)},
		":now":      &types.AttributeValueMemberS{Value: formatTime(now)},
	}
	contentSets, removes, err := contentExpression(content, names, values)
	if err != nil {
		return entities.Order{}, infraErr("marshal order content", err)
	}
	sets = append(sets, contentSets...)

	updateExpr := "SET " + strings.Join(sets, ", ")
	if len(removes) > 0 {
		updateExpr += " REMOVE " + strings.Join(removes, ", ")
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: orderID},
		},
		ConditionExpression:       aws.String("attribute_exists(#id) AND #version = :expected"),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		return entities.Order{}, conditionErr("update order content", err, -1)
	}

	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Order{}, infraErr("unmarshal order", err)
	}
	return fromOrderItem(it), nil
}

// SetPaymentReference writes the reference only when none exists yet; a
// concurrent generator losing the race gets the stored order back instead of
// overwriting the winner's code.
func (r *OrderDynamoRepository) SetPaymentReference(ctx context.Context, orderID, reference string) (entities.Order, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: orderID},
		},
		ConditionExpression: aws.String("attribute_exists(#id) AND attribute_not_exists(#payment_reference)"),
		UpdateExpression:    aws.String("SET #payment_reference = :ref, #version = #version + :one, #updated_at = :now"),
		ExpressionAttributeNames: map[string]string{
			"#id":                "id",
			"#payment_reference": "payment_reference",
			"#version":           "version",
			"#updated_at":        "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ref": &types.AttributeValueMemberS{Value: reference},
			":one": &types.AttributeValueMemberN{Value: "1"},
			":now": &types.AttributeValueMemberS{Value: formatTime(time.Now().UTC())},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return r.GetByID(ctx, orderID)
		}
		return entities.Order{}, infraErr("set payment reference", err)
	}

	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Order{}, infraErr("unmarshal order", err)
	}
	return fromOrderItem(it), nil
}

func (r *OrderDynamoRepository) StampPaymentConfirmed(ctx context.Context, orderID string, at time.Time) (entities.Order, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: orderID},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #payment_confirmed_at = :at, #version = #version + :one, #updated_at = :now"),
		ExpressionAttributeNames: map[string]string{
			"#id":                   "id",
			"#payment_confirmed_at": "payment_confirmed_at",
			"#version":              "version",
			"#updated_at":           "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":at":  &types.AttributeValueMemberS{Value: formatTime(at)},
			":one": &types.AttributeValueMemberN{Value: "1"},
			":now": &types.AttributeValueMemberS{Value: formatTime(time.Now().UTC())},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		return entities.Order{}, conditionErr("stamp payment confirmed", err, -1)
	}

	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Order{}, infraErr("unmarshal order", err)
	}
	return fromOrderItem(it), nil
}

func (r *OrderDynamoRepository) Delete(ctx context.Context, orderID string) error {
	quoteKeys, err := r.childKeys(ctx, r.quotesTable, orderID, "supplier_id")
	if err != nil {
		return err
	}
	historyKeys, err := r.childKeys(ctx, r.historyTable, orderID, "seq")
	if err != nil {
		return err
	}

	_, err = r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: orderID},
		},
	})
	if err != nil {
		return infraErr("delete order", err)
	}

	if err := r.batchDelete(ctx, r.quotesTable, quoteKeys); err != nil {
		return err
	}
	return r.batchDelete(ctx, r.historyTable, historyKeys)
}

func (r *OrderDynamoRepository) childKeys(ctx context.Context, table, orderID, sortKey string) ([]map[string]types.AttributeValue, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(table),
		KeyConditionExpression: aws.String("order_id = :oid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":oid": &types.AttributeValueMemberS{Value: orderID},
		},
		ProjectionExpression: aws.String("order_id, " + sortKey),
	})
	if err != nil {
		return nil, infraErr("query "+table, err)
	}
	keys := make([]map[string]types.AttributeValue, 0, len(out.Items))
	for _, item := range out.Items {
		keys = append(keys, map[string]types.AttributeValue{
			"order_id": item["order_id"],
			sortKey:    item[sortKey],
		})
	}
	return keys, nil
}

func (r *OrderDynamoRepository) batchDelete(ctx context.Context, table string, keys []map[string]types.AttributeValue) error {
	const batchSize = 25
	for start := 0; start < len(keys); start += batchSize {
		end := start + batchSize
		if end > len(keys) {
			end = len(keys)
		}

		requests := make([]types.WriteRequest, 0, end-start)
		for _, key := range keys[start:end] {
			requests = append(requests, types.WriteRequest{
				DeleteRequest: &types.DeleteRequest{Key: key},
			})
		}

		_, err := r.ddb.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{table: requests},
		})
		if err != nil {
			return infraErr("batch delete "+table, err)
		}
	}
	return nil
}

func contentExpression(content interfaces.ContentUpdate, names map[string]string, values map[string]types.AttributeValue) (sets, removes []string, err error) {
	sets = []string{
		"#title = :title",
		"#description = :description",
		"#quantity = :quantity",
		"#product_link = :product_link",
		"#delivery_address = :delivery_address",
		"#phone_number = :phone_number",
	}
	names["#title"] = "title"
	names["#description"] = "description"
	names["#quantity"] = "quantity"
	names["#product_link"] = "product_link"
	names["#delivery_address"] = "delivery_address"
	names["#phone_number"] = "phone_number"
	values[":title"] = &types.AttributeValueMemberS{Value: content.Title}
	values[":description"] = &types.AttributeValueMemberS{Value: content.Description}
	values[":quantity"] = &types.AttributeValueMemberN{Value: strconv.Itoa(content.Quantity)}
	values[":product_link"] = &types.AttributeValueMemberS{Value: content.ProductLink}
	values[":delivery_address"] = &types.AttributeValueMemberS{Value: content.DeliveryAddress}
	values[":phone_number"] = &types.AttributeValueMemberS{Value: content.PhoneNumber}

	names["#uploaded_files"] = "uploaded_files"
	names["#files_uploaded_at"] = "files_uploaded_at"
	if len(content.UploadedFiles) > 0 {
		files := make([]uploadedFileItem, 0, len(content.UploadedFiles))
		for _, f := range content.UploadedFiles {
			files = append(files, toUploadedFileItem(f))
		}
		av, merr := attributevalue.Marshal(files)
		if merr != nil {
			return nil, nil, merr
		}
		sets = append(sets, "#uploaded_files = :uploaded_files")
		values[":uploaded_files"] = av
	} else {
		removes = append(removes, "#uploaded_files")
	}
	if content.FilesUploadedAt != nil {
		sets = append(sets, "#files_uploaded_at = :files_uploaded_at")
		values[":files_uploaded_at"] = &types.AttributeValueMemberS{Value: formatTime(*content.FilesUploadedAt)}
	} else {
		removes = append(removes, "#files_uploaded_at")
	}
	return sets, removes, nil
}

func toUploadedFileItem(f entities.UploadedFile) uploadedFileItem {
	return uploadedFileItem{
		ID:         f.ID,
		Name:       f.Name,
		Size:       f.Size,
		Type:       f.Type,
		URL:        f.URL,
		UploadedAt: formatTime(f.UploadedAt),
	}
}

func fromUploadedFileItem(it uploadedFileItem) entities.UploadedFile {
	return entities.UploadedFile{
		ID:         it.ID,
		Name:       it.Name,
		Size:       it.Size,
		Type:       it.Type,
		URL:        it.URL,
		UploadedAt: parseTime(it.UploadedAt),
	}
}

func toOrderItem(o entities.Order) orderItem {
	files := make([]uploadedFileItem, 0, len(o.UploadedFiles))
	for _, f := range o.UploadedFiles {
		files = append(files, toUploadedFileItem(f))
	}
	if len(files) == 0 {
		files = nil
	}
	return orderItem{
		ID:                  o.ID,
		OrderNumber:         o.OrderNumber,
		CustomerID:          o.CustomerID,
		Title:               o.Title,
		Description:         o.Description,
		Quantity:            o.Quantity,
		ProductLink:         o.ProductLink,
		DeliveryAddress:     o.DeliveryAddress,
		PhoneNumber:         o.PhoneNumber,
		UploadedFiles:       files,
		FilesUploadedAt:     formatTimePtr(o.FilesUploadedAt),
		Status:              string(o.Status),
		SupplierPrice:       o.SupplierPrice,
		AdminMargin:         o.AdminMargin,
		FinalPrice:          o.FinalPrice,
		AssignedSupplierID:  o.AssignedSupplierID,
		SupplierImageURL:    o.SupplierImageURL,
		SupplierCompletedAt: formatTimePtr(o.SupplierCompletedAt),
		PaymentReference:    o.PaymentReference,
		PaymentConfirmedAt:  formatTimePtr(o.PaymentConfirmedAt),
		Version:             o.Version,
		CreatedAt:           formatTime(o.CreatedAt),
		UpdatedAt:           formatTime(o.UpdatedAt),
	}
}

func fromOrderItem(it orderItem) entities.Order {
	files := make([]entities.UploadedFile, 0, len(it.UploadedFiles))
	for _, f := range it.UploadedFiles {
		files = append(files, fromUploadedFileItem(f))
	}
	if len(files) == 0 {
		files = nil
	}
	return entities.Order{
		ID:                  it.ID,
		OrderNumber:         it.OrderNumber,
		CustomerID:          it.CustomerID,
		Title:               it.Title,
		Description:         it.Description,
		Quantity:            it.Quantity,
		ProductLink:         it.ProductLink,
		DeliveryAddress:     it.DeliveryAddress,
		PhoneNumber:         it.PhoneNumber,
		UploadedFiles:       files,
		FilesUploadedAt:     parseTimePtr(it.FilesUploadedAt),
		Status:              entities.OrderStatus(it.Status),
		SupplierPrice:       it.SupplierPrice,
		AdminMargin:         it.AdminMargin,
		FinalPrice:          it.FinalPrice,
		AssignedSupplierID:  it.AssignedSupplierID,
		SupplierImageURL:    it.SupplierImageURL,
		SupplierCompletedAt: parseTimePtr(it.SupplierCompletedAt),
		PaymentReference:    it.PaymentReference,
		PaymentConfirmedAt:  parseTimePtr(it.PaymentConfirmedAt),
		Version:             it.Version,
		CreatedAt:           parseTime(it.CreatedAt),
		UpdatedAt:           parseTime(it.UpdatedAt),
	}
}
