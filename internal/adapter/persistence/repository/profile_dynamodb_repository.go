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

const defaultProfilesTableName = "profiles"

type profileItem struct {
	ID          string `dynamodbav:"id"`
	Email       string `dynamodbav:"email"`
	FullName    string `dynamodbav:"full_name"`
	Role        string `dynamodbav:"role"`
	CompanyName string `dynamodbav:"company_name,omitempty"`
	Phone       string `dynamodbav:"phone,omitempty"`
	Address     string `dynamodbav:"address,omitempty"`
	CreatedAt   string `dynamodbav:"created_at"`
	UpdatedAt   string `dynamodbav:"updated_at"`
}

// ProfileDynamoRepository reads identity profiles from DynamoDB.
//
// Table requirements:
//   - PK: id (string)

type ProfileDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IProfileRepository = (*ProfileDynamoRepository)(nil)

func NewProfileDynamoRepository(ddb *dynamodb.Client) *ProfileDynamoRepository {
	return &ProfileDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PROFILES_TABLE", defaultProfilesTableName),
	}
}

func (r *ProfileDynamoRepository) GetByID(ctx context.Context, id string) (entities.Profile, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return entities.Profile{}, infraErr("get profile", err)
	}
	if len(out.Item) == 0 {
		return entities.Profile{}, nil
	}

	var it profileItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Profile{}, infraErr("unmarshal profile", err)
	}
	return fromProfileItem(it), nil
}

func fromProfileItem(it profileItem) entities.Profile {
	return entities.Profile{
		ID:          it.ID,
		Email:       it.Email,
		FullName:    it.FullName,
		Role:        entities.Role(it.Role),
		CompanyName: it.CompanyName,
		Phone:       it.Phone,
		Address:     it.Address,
		CreatedAt:   parseTime(it.CreatedAt),
		UpdatedAt:   parseTime(it.UpdatedAt),
	}
}
