package repository

import (
	"context"
	"encoding/json"
	"time"

	"quotedraft/internal/domain/entities"
	"quotedraft/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultSessionsTableName = "conversation_sessions"

type sessionItem struct {
	ConversationID string `dynamodbav:"conversation_id"`
	Draft          string `dynamodbav:"draft"`
	UpdatedAt      string `dynamodbav:"updated_at"`
}

// SessionDynamoRepository persists one conversation Draft per item in
// DynamoDB.
//
// Table requirements:
//   - PK: conversation_id (string)
//
// The draft itself is stored as one JSON document rather than flattened
// attributes: the draft shape changes often during the conversation flow and
// is only ever read back whole.

type SessionDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ISessionRepository = (*SessionDynamoRepository)(nil)

func NewSessionDynamoRepository(ddb *dynamodb.Client) *SessionDynamoRepository {
	return &SessionDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("SESSIONS_TABLE", defaultSessionsTableName),
	}
}

func (r *SessionDynamoRepository) Get(ctx context.Context, conversationID string) (entities.Draft, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"conversation_id": &types.AttributeValueMemberS{Value: conversationID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Draft{}, err
	}
	if len(out.Item) == 0 {
		return entities.Draft{}, nil
	}

	var it sessionItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Draft{}, err
	}

	var draft entities.Draft
	if err := json.Unmarshal([]byte(it.Draft), &draft); err != nil {
		return entities.Draft{}, err
	}
	return draft, nil
}

func (r *SessionDynamoRepository) Put(ctx context.Context, draft entities.Draft) error {
	b, err := json.Marshal(draft)
	if err != nil {
		return err
	}

	av, err := attributevalue.MarshalMap(sessionItem{
		ConversationID: draft.ConversationID,
		Draft:          string(b),
		UpdatedAt:      time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	return err
}

func (r *SessionDynamoRepository) Delete(ctx context.Context, conversationID string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"conversation_id": &types.AttributeValueMemberS{Value: conversationID},
		},
	})
	return err
}
