package repository

import (
	"context"
	"time"

	"orderhub/internal/domain/entities"
	"orderhub/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultQuotesTableName = "supplier_quotes"

type quoteItem struct {
	OrderID    string  `dynamodbav:"order_id"`
	SupplierID string  `dynamodbav:"supplier_id"`
	Price      float64 `dynamodbav:"price"`
	Notes      string  `dynamodbav:"notes,omitempty"`
	CreatedAt  string  `dynamodbav:"created_at"`
	UpdatedAt  string  `dynamodbav:"updated_at"`
}

// QuoteDynamoRepository persists SupplierQuote entities in DynamoDB.
//
// Table requirements:
//   - PK: order_id (string)
//   - SK: supplier_id (string)
//
// Submission is a transaction against the orders table: inserting the quote
// and claiming the order are one atomic step, so exactly one supplier wins an
// unassigned order no matter how many submit at once.

type QuoteDynamoRepository struct {
	ddb          *dynamodb.Client
	tableName    string
	ordersTable  string
	historyTable string
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb *dynamodb.Client) *QuoteDynamoRepository {
	return &QuoteDynamoRepository{
		ddb:          ddb,
		tableName:    getenvDefault("SUPPLIER_QUOTES_TABLE", defaultQuotesTableName),
		ordersTable:  getenvDefault("ORDERS_TABLE", defaultOrdersTableName),
		historyTable: getenvDefault("ORDER_STATUS_HISTORY_TABLE", defaultHistoryTableName),
	}
}

func (r *QuoteDynamoRepository) GetByOrderAndSupplier(ctx context.Context, orderID, supplierID string) (entities.SupplierQuote, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"order_id":    &types.AttributeValueMemberS{Value: orderID},
			"supplier_id": &types.AttributeValueMemberS{Value: supplierID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.SupplierQuote{}, infraErr("get quote", err)
	}
	if len(out.Item) == 0 {
		return entities.SupplierQuote{}, nil
	}

	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.SupplierQuote{}, infraErr("unmarshal quote", err)
	}
	return fromQuoteItem(it), nil
}

func (r *QuoteDynamoRepository) ListByOrderID(ctx context.Context, orderID string) ([]entities.SupplierQuote, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("order_id = :oid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":oid": &types.AttributeValueMemberS{Value: orderID},
		},
	})
	if err != nil {
		return nil, infraErr("list quotes", err)
	}

	quotes := make([]entities.SupplierQuote, 0, len(out.Items))
	for _, raw := range out.Items {
		var it quoteItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, infraErr("unmarshal quote", err)
		}
		quotes = append(quotes, fromQuoteItem(it))
	}
	return quotes, nil
}

// CreateWithAssignment inserts the quote, claims the order for the supplier
// and records the price_quoted history row in one transaction. Which item's
// condition failed tells the caller whether the supplier double-submitted or
// another supplier claimed the order first.
func (r *QuoteDynamoRepository) CreateWithAssignment(ctx context.Context, cmd interfaces.QuoteAssignmentCommand) (entities.SupplierQuote, entities.Order, error) {
	now := time.Now().UTC()
	newVersion := cmd.ExpectedVersion + 1

	quote := cmd.Quote
	quote.CreatedAt = now
	quote.UpdatedAt = now

	quoteAV, err := attributevalue.MarshalMap(toQuoteItem(quote))
	if err != nil {
		return entities.SupplierQuote{}, entities.Order{}, infraErr("marshal quote", err)
	}
	historyAV, err := attributevalue.MarshalMap(toHistoryItem(entities.OrderStatusHistory{
		OrderID:   quote.OrderID,
		Seq:       newVersion,
		Status:    entities.StatusPriceQuoted,
		Notes:     cmd.Notes,
		ChangedBy: quote.SupplierID,
		CreatedAt: now,
	}))
	if err != nil {
		return entities.SupplierQuote{}, entities.Order{}, infraErr("marshal history", err)
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:           aws.String(r.tableName),
					Item:                quoteAV,
					ConditionExpression: aws.String("attribute_not_exists(#order_id)"),
					ExpressionAttributeNames: map[string]string{
						"#order_id": "order_id",
					},
				},
			},
			{
				Update: &types.Update{
					TableName: aws.String(r.ordersTable),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: quote.OrderID},
					},
					ConditionExpression: aws.String("#status = :from AND #version = :expected AND attribute_not_exists(#assigned_supplier_id)"),
					UpdateExpression: aws.String("SET #status = :to, #assigned_supplier_id = :sid, " +
						"#supplier_price = :sp, #admin_margin = :am, #final_price = :fp, " +
						"#version = :newver, #updated_at = :now"),
					ExpressionAttributeNames: map[string]string{
						"#status":               "status",
						"#version":              "version",
						"#assigned_supplier_id": "assigned_supplier_id",
						"#supplier_price":       "supplier_price",
						"#admin_margin":         "admin_margin",
						"#final_price":          "final_price",
						"#updated_at":           "updated_at",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":from":     &types.AttributeValueMemberS{Value: string(cmd.FromStatus)},
						":to":       &types.AttributeValueMemberS{Value: string(entities.StatusPriceQuoted)},
						":sid":      &types.AttributeValueMemberS{Value: quote.SupplierID},
						":sp":       &types.AttributeValueMemberN{Value: floatToString(cmd.Pricing.SupplierPrice)},
						":am":       &types.AttributeValueMemberN{Value: floatToString(cmd.Pricing.AdminMargin)},
						":fp":       &types.AttributeValueMemberN{Value: floatToString(cmd.Pricing.FinalPrice)},
						":expected": &types.AttributeValueMemberN{Value: int64ToString(cmd.ExpectedVersion)},
						":newver":   &types.AttributeValueMemberN{Value: int64ToString(newVersion)},
						":now":      &types.AttributeValueMemberS{Value: formatTime(now)},
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
		return entities.SupplierQuote{}, entities.Order{}, conditionErr("submit quote", err, 0)
	}

	order, err := r.readOrder(ctx, quote.OrderID)
	if err != nil {
		return entities.SupplierQuote{}, entities.Order{}, err
	}
	return quote, order, nil
}

// UpdateWithPricing re-prices an existing quote of the assigned supplier. The
// order stays in price_quoted; only the derived price set and the quote row
// change.
func (r *QuoteDynamoRepository) UpdateWithPricing(ctx context.Context, cmd interfaces.QuoteUpdateCommand) (entities.SupplierQuote, entities.Order, error) {
	now := time.Now().UTC()

	quote := cmd.Quote
	quote.UpdatedAt = now

	_, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Update: &types.Update{
					TableName: aws.String(r.tableName),
					Key: map[string]types.AttributeValue{
						"order_id":    &types.AttributeValueMemberS{Value: quote.OrderID},
						"supplier_id": &types.AttributeValueMemberS{Value: quote.SupplierID},
					},
					ConditionExpression: aws.String("attribute_exists(#order_id)"),
					UpdateExpression:    aws.String("SET #price = :price, #notes = :notes, #updated_at = :now"),
					ExpressionAttributeNames: map[string]string{
						"#order_id":   "order_id",
						"#price":      "price",
						"#notes":      "notes",
						"#updated_at": "updated_at",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":price": &types.AttributeValueMemberN{Value: floatToString(quote.Price)},
						":notes": &types.AttributeValueMemberS{Value: quote.Notes},
						":now":   &types.AttributeValueMemberS{Value: formatTime(now)},
					},
				},
			},
			{
				Update: &types.Update{
					TableName: aws.String(r.ordersTable),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: quote.OrderID},
					},
					ConditionExpression: aws.String("#assigned_supplier_id = :sid AND #version = :expected"),
					UpdateExpression: aws.String("SET #supplier_price = :sp, #admin_margin = :am, #final_price = :fp, " +
						"#version = :newver, #updated_at = :now"),
					ExpressionAttributeNames: map[string]string{
						"#assigned_supplier_id": "assigned_supplier_id",
						"#supplier_price":       "supplier_price",
						"#admin_margin":         "admin_margin",
						"#final_price":          "final_price",
						"#version":              "version",
						"#updated_at":           "updated_at",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":sid":      &types.AttributeValueMemberS{Value: quote.SupplierID},
						":sp":       &types.AttributeValueMemberN{Value: floatToString(cmd.Pricing.SupplierPrice)},
						":am":       &types.AttributeValueMemberN{Value: floatToString(cmd.Pricing.AdminMargin)},
						":fp":       &types.AttributeValueMemberN{Value: floatToString(cmd.Pricing.FinalPrice)},
						":expected": &types.AttributeValueMemberN{Value: int64ToString(cmd.ExpectedVersion)},
						":newver":   &types.AttributeValueMemberN{Value: int64ToString(cmd.ExpectedVersion + 1)},
						":now":      &types.AttributeValueMemberS{Value: formatTime(now)},
					},
				},
			},
		},
	})
	if err != nil {
		return entities.SupplierQuote{}, entities.Order{}, conditionErr("update quote", err, -1)
	}

	order, err := r.readOrder(ctx, quote.OrderID)
	if err != nil {
		return entities.SupplierQuote{}, entities.Order{}, err
	}
	return quote, order, nil
}

func (r *QuoteDynamoRepository) readOrder(ctx context.Context, orderID string) (entities.Order, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.ordersTable),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: orderID},
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

func toQuoteItem(q entities.SupplierQuote) quoteItem {
	return quoteItem{
		OrderID:    q.OrderID,
		SupplierID: q.SupplierID,
		Price:      q.Price,
		Notes:      q.Notes,
		CreatedAt:  formatTime(q.CreatedAt),
		UpdatedAt:  formatTime(q.UpdatedAt),
	}
}

func fromQuoteItem(it quoteItem) entities.SupplierQuote {
	return entities.SupplierQuote{
		OrderID:    it.OrderID,
		SupplierID: it.SupplierID,
		Price:      it.Price,
		Notes:      it.Notes,
		CreatedAt:  parseTime(it.CreatedAt),
		UpdatedAt:  parseTime(it.UpdatedAt),
	}
}
