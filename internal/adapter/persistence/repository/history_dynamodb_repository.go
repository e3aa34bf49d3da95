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

const defaultHistoryTableName = "order_status_history"

type historyItem struct {
	OrderID   string `dynamodbav:"order_id"`
	Seq       int64  `dynamodbav:"seq"`
	Status    string `dynamodbav:"status"`
	Notes     string `dynamodbav:"notes,omitempty"`
	ChangedBy string `dynamodbav:"changed_by,omitempty"`
	CreatedAt string `dynamodbav:"created_at"`
}

// HistoryDynamoRepository reads the order status ledger.
//
// Table requirements:
//   - PK: order_id (string)
//   - SK: seq (number)
//
// Writes happen only inside order transactions (see OrderDynamoRepository and
// QuoteDynamoRepository); this repository is read-only.

type HistoryDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IHistoryRepository = (*HistoryDynamoRepository)(nil)

func NewHistoryDynamoRepository(ddb *dynamodb.Client) *HistoryDynamoRepository {
	return &HistoryDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("ORDER_STATUS_HISTORY_TABLE", defaultHistoryTableName),
	}
}

func (r *HistoryDynamoRepository) ListByOrderID(ctx context.Context, orderID string) ([]entities.OrderStatusHistory, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("order_id = :oid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":oid": &types.AttributeValueMemberS{Value: orderID},
		},
	})
	if err != nil {
		return nil, infraErr("list order history", err)
	}

	rows := make([]entities.OrderStatusHistory, 0, len(out.Items))
	for _, raw := range out.Items {
		var it historyItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, infraErr("unmarshal history", err)
		}
		rows = append(rows, fromHistoryItem(it))
	}
	return rows, nil
}

func toHistoryItem(h entities.OrderStatusHistory) historyItem {
	return historyItem{
		OrderID:   h.OrderID,
		Seq:       h.Seq,
		Status:    string(h.Status),
		Notes:     h.Notes,
		ChangedBy: h.ChangedBy,
		CreatedAt: formatTime(h.CreatedAt),
	}
}

func fromHistoryItem(it historyItem) entities.OrderStatusHistory {
	return entities.OrderStatusHistory{
		OrderID:   it.OrderID,
		Seq:       it.Seq,
		Status:    entities.OrderStatus(it.Status),
		Notes:     it.Notes,
		ChangedBy: it.ChangedBy,
		CreatedAt: parseTime(it.CreatedAt),
	}
}
