package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/meli-backend-challenge/product-catalog/internal/domain"
	pkgconfig "github.com/meli-backend-challenge/product-catalog/pkg/config"
)

// counterID is the reserved key of the item holding the id sequence. Product
// ids start at 1, so it never collides with a real record.
const counterID = 0

// DynamoStore persists products in a DynamoDB table keyed by numeric id.
// Surrogate ids are allocated from an atomic counter item so creation behaves
// like an auto-incrementing table.
type DynamoStore struct {
	client    *dynamodb.Client
	tableName string
}

func NewDynamoDBClient(cfg *pkgconfig.Config) (*dynamodb.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return nil, err
	}

	return dynamodb.NewFromConfig(awsCfg), nil
}

func NewDynamoStore(client *dynamodb.Client, tableName string) *DynamoStore {
	return &DynamoStore{
		client:    client,
		tableName: tableName,
	}
}

func (s *DynamoStore) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	// Product ids start above the counter item; without this guard the
	// counter would be addressable as a product.
	if id <= counterID {
		return nil, ErrProductNotFound
	}

	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key:       productKey(id),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	if result.Item == nil {
		return nil, ErrProductNotFound
	}

	var product domain.Product
	if err := attributevalue.UnmarshalMap(result.Item, &product); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product: %w", err)
	}

	return &product, nil
}

func (s *DynamoStore) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	now := time.Now()
	saved := *product
	if saved.ID == 0 {
		id, err := s.nextID(ctx)
		if err != nil {
			return nil, err
		}
		saved.ID = id
		saved.CreatedAt = now
	}
	saved.UpdatedAt = now

	av, err := attributevalue.MarshalMap(saved)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal product: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      av,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to put item: %w", err)
	}

	return &saved, nil
}

func (s *DynamoStore) Delete(ctx context.Context, id int64) error {
	// Deleting the counter item would restart the id sequence and let new
	// products overwrite existing ones.
	if id <= counterID {
		return ErrProductNotFound
	}

	expr, err := expression.NewBuilder().
		WithCondition(expression.AttributeExists(expression.Name("id"))).
		Build()
	if err != nil {
		return err
	}

	_, err = s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                aws.String(s.tableName),
		Key:                      productKey(id),
		ConditionExpression:      expr.Condition(),
		ExpressionAttributeNames: expr.Names(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to delete item: %w", err)
	}

	return nil
}

func (s *DynamoStore) FindAll(ctx context.Context, page PageRequest) (*Page, error) {
	if err := ValidateSortField(page.SortField); err != nil {
		return nil, err
	}

	items, err := s.scanAll(ctx)
	if err != nil {
		return nil, err
	}

	// The catalog fits in memory, so sorting happens after the scan rather
	// than through secondary indexes.
	sortProducts(items, page.SortField, page.Descending)

	total := int64(len(items))
	start := page.Page * page.Size
	if start >= len(items) {
		return &Page{Items: []domain.Product{}, TotalElements: total}, nil
	}
	end := start + page.Size
	if end > len(items) {
		end = len(items)
	}
	return &Page{Items: items[start:end], TotalElements: total}, nil
}

func (s *DynamoStore) DeleteAll(ctx context.Context) error {
	items, err := s.scanAll(ctx)
	if err != nil {
		return err
	}

	// BatchWriteItem accepts at most 25 requests per call.
	for start := 0; start < len(items); start += 25 {
		end := start + 25
		if end > len(items) {
			end = len(items)
		}

		requests := make([]types.WriteRequest, 0, end-start)
		for _, product := range items[start:end] {
			requests = append(requests, types.WriteRequest{
				DeleteRequest: &types.DeleteRequest{Key: productKey(product.ID)},
			})
		}

		_, err := s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{s.tableName: requests},
		})
		if err != nil {
			return fmt.Errorf("failed to batch delete: %w", err)
		}
	}

	return nil
}

// scanAll reads every product record, following scan pagination and skipping
// the id counter item.
func (s *DynamoStore) scanAll(ctx context.Context) ([]domain.Product, error) {
	expr, err := expression.NewBuilder().
		WithFilter(expression.Name("id").GreaterThan(expression.Value(counterID))).
		Build()
	if err != nil {
		return nil, err
	}

	var items []domain.Product
	var lastKey map[string]types.AttributeValue

	for {
		result, err := s.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:                 aws.String(s.tableName),
			FilterExpression:          expr.Filter(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         lastKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan table: %w", err)
		}

		var pageItems []domain.Product
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &pageItems); err != nil {
			return nil, fmt.Errorf("failed to unmarshal products: %w", err)
		}
		items = append(items, pageItems...)

		lastKey = result.LastEvaluatedKey
		if len(lastKey) == 0 {
			return items, nil
		}
	}
}

// nextID atomically increments the counter item and returns the new value.
func (s *DynamoStore) nextID(ctx context.Context) (int64, error) {
	result, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(s.tableName),
		Key:              productKey(counterID),
		UpdateExpression: aws.String("ADD next_id :one"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to allocate product id: %w", err)
	}

	counter, ok := result.Attributes["next_id"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("unexpected counter attribute: %v", result.Attributes)
	}
	return strconv.ParseInt(counter.Value, 10, 64)
}

func productKey(id int64) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberN{Value: strconv.FormatInt(id, 10)},
	}
}
