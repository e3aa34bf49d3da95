package repository

import (
	"context"

	"orderhub/internal/domain/entities"
	"orderhub/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultPaymentsTableName = "payments"
	paymentsOrderIDIndex     = "order_id-index"
)

type paymentItem struct {
	ID            string  `dynamodbav:"id"`
	OrderID       string  `dynamodbav:"order_id"`
	Amount        float64 `dynamodbav:"amount"`
	ReferenceCode string  `dynamodbav:"reference_code"`
	TransactionID string  `dynamodbav:"transaction_id,omitempty"`
	Status        string  `dynamodbav:"status"`
	ConfirmedAt   string  `dynamodbav:"confirmed_at,omitempty"`
	CreatedAt     string  `dynamodbav:"created_at"`
}

// PaymentDynamoRepository persists PaymentTransaction entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: order_id-index (PK: order_id)

type PaymentDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IPaymentRepository = (*PaymentDynamoRepository)(nil)

func NewPaymentDynamoRepository(ddb *dynamodb.Client) *PaymentDynamoRepository {
	return &PaymentDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PAYMENTS_TABLE", defaultPaymentsTableName),
	}
}

func (r *PaymentDynamoRepository) Create(ctx context.Context, p entities.PaymentTransaction) (entities.PaymentTransaction, error) {
	av, err := attributevalue.MarshalMap(toPaymentItem(p))
	if err != nil {
		return entities.PaymentTransaction{}, infraErr("marshal payment", err)
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
		return entities.PaymentTransaction{}, conditionErr("create payment", err, -1)
	}
	return p, nil
}

func (r *PaymentDynamoRepository) ListByOrderID(ctx context.Context, orderID string) ([]entities.PaymentTransaction, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsOrderIDIndex),
		KeyConditionExpression: aws.String("order_id = :oid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":oid": &types.AttributeValueMemberS{Value: orderID},
		},
	})
	if err != nil {
		return nil, infraErr("list payments", err)
	}

	payments := make([]entities.PaymentTransaction, 0, len(out.Items))
	for _, raw := range out.Items {
		var it paymentItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, infraErr("unmarshal payment", err)
		}
		payments = append(payments, fromPaymentItem(it))
	}
	return payments, nil
}

func toPaymentItem(p entities.PaymentTransaction) paymentItem {
	return paymentItem{
		ID:            p.ID,
		OrderID:       p.OrderID,
		Amount:        p.Amount,
		ReferenceCode: p.ReferenceCode,
		TransactionID: p.TransactionID,
		Status:        string(p.Status),
		ConfirmedAt:   formatTimePtr(p.ConfirmedAt),
		CreatedAt:     formatTime(p.CreatedAt),
	}
}

func fromPaymentItem(it paymentItem) entities.PaymentTransaction {
	return entities.PaymentTransaction{
		ID:            it.ID,
		OrderID:       it.OrderID,
		Amount:        it.Amount,
		ReferenceCode: it.ReferenceCode,
		TransactionID: it.TransactionID,
		Status:        entities.PaymentTransactionStatus(it.Status),
		ConfirmedAt:   parseTimePtr(it.ConfirmedAt),
		CreatedAt:     parseTime(it.CreatedAt),
	}
}
