// Package dynamostore provides a DynamoDB-backed store.Connection.
//
// Individuals live in one table keyed by id, with one attribute per
// resolved property name. A second table holds class-membership and
// property index records so SearchOne can locate candidates without
// scanning. Deletion is soft: a ttl attribute marks an individual
// deleted, and reads filter expired individuals out.
package dynamostore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/jacentio/ontomap/internal/propkey"
	"github.com/jacentio/ontomap/store"
)

// Store implements store.Connection on DynamoDB.
type Store struct {
	client *dynamodb.Client
	schema *store.Schema
	config Config
}

// New creates a Store resolving names against schema.
func New(client *dynamodb.Client, schema *store.Schema, config Config) *Store {
	config.validate()
	return &Store{
		client: client,
		schema: schema,
		config: config,
	}
}

// Config returns the store's validated configuration.
func (s *Store) Config() Config {
	return s.config
}

// ResolveName resolves a name through the schema.
func (s *Store) ResolveName(ctx context.Context, name, namespace string) (store.Name, error) {
	return s.schema.Resolve(name, namespace)
}

// CreateIndividual creates a new individual of the given class, writing
// the individual record and its class-membership index record in one
// transaction.
func (s *Store) CreateIndividual(ctx context.Context, class store.Name) (store.Individual, error) {
	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)

	_, err := s.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName: aws.String(s.config.IndividualsTable),
					Item: map[string]types.AttributeValue{
						"id":         &types.AttributeValueMemberS{Value: id},
						"class":      &types.AttributeValueMemberS{Value: string(class)},
						"created_at": &types.AttributeValueMemberS{Value: now},
					},
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
			{
				Put: &types.Put{
					TableName: aws.String(s.config.IndexTable),
					Item: map[string]types.AttributeValue{
						"pk":    &types.AttributeValueMemberS{Value: propkey.Class(string(class), id, s.config.NumShards)},
						"sk":    &types.AttributeValueMemberS{Value: id},
						"class": &types.AttributeValueMemberS{Value: string(class)},
					},
				},
			},
		},
	})
	if err != nil {
		return store.Individual{}, fmt.Errorf("create individual: %w", err)
	}

	return store.Individual{ID: id, Class: class}, nil
}

// GetProperty reads one property. Absent properties return nil; missing
// or deleted individuals return store.ErrNotFound.
func (s *Store) GetProperty(ctx context.Context, ind store.Individual, property store.Name) (store.Value, error) {
	item, err := s.getItem(ctx, ind.ID)
	if err != nil {
		return nil, err
	}
	av, ok := item[string(property)]
	if !ok {
		return nil, nil
	}
	return unmarshalValue(av)
}

// SetProperty assigns one property, replacing any prior value, and
// writes a property index record for the new value. Index records for
// prior values go stale; SearchOne verifies every candidate against the
// individual record, so stale records are filtered on the read path.
func (s *Store) SetProperty(ctx context.Context, ind store.Individual, property store.Name, value store.Value) error {
	av, err := marshalValue(value)
	if err != nil {
		return fmt.Errorf("marshal value for %s: %w", property, err)
	}

	indexPK := propkey.Index(string(ind.Class), string(property), canonical(value))

	_, err = s.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Update: &types.Update{
					TableName:           aws.String(s.config.IndividualsTable),
					Key:                 s.key(ind.ID),
					UpdateExpression:    aws.String("SET #p = :v"),
					ConditionExpression: aws.String("attribute_exists(id) AND attribute_not_exists(#ttl)"),
					ExpressionAttributeNames: map[string]string{
						"#p":   string(property),
						"#ttl": "ttl",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":v": av,
					},
				},
			},
			{
				Put: &types.Put{
					TableName: aws.String(s.config.IndexTable),
					Item: map[string]types.AttributeValue{
						"pk":       &types.AttributeValueMemberS{Value: indexPK},
						"sk":       &types.AttributeValueMemberS{Value: ind.ID},
						"class":    &types.AttributeValueMemberS{Value: string(ind.Class)},
						"property": &types.AttributeValueMemberS{Value: string(property)},
					},
				},
			},
		},
	})

	return mapConditionError(err)
}

// SearchOne returns one individual of the given class matching every
// constraint, or store.ErrNotFound. The first constraint narrows
// candidates through the property index; remaining constraints are
// verified against each candidate's record.
func (s *Store) SearchOne(ctx context.Context, class store.Name, constraints []store.Constraint) (store.Individual, error) {
	var pks []string
	if len(constraints) == 0 {
		for shard := 0; shard < s.config.NumShards; shard++ {
			pks = append(pks, propkey.ClassShard(string(class), shard))
		}
	} else {
		first := constraints[0]
		pks = []string{propkey.Index(string(class), string(first.Property), canonical(first.Value))}
	}

	for _, pk := range pks {
		ind, err := s.searchPartition(ctx, pk, class, constraints)
		if err == nil {
			return ind, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return store.Individual{}, err
		}
	}
	return store.Individual{}, store.ErrNotFound
}

func (s *Store) searchPartition(ctx context.Context, pk string, class store.Name, constraints []store.Constraint) (store.Individual, error) {
	paginator := dynamodb.NewQueryPaginator(s.client, &dynamodb.QueryInput{
		TableName:              aws.String(s.config.IndexTable),
		KeyConditionExpression: aws.String("pk = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: pk},
		},
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return store.Individual{}, err
		}
		for _, rec := range page.Items {
			sk, ok := rec["sk"].(*types.AttributeValueMemberS)
			if !ok {
				continue
			}
			ind, err := s.verifyCandidate(ctx, sk.Value, class, constraints)
			if err == nil {
				return ind, nil
			}
			if !errors.Is(err, store.ErrNotFound) {
				return store.Individual{}, err
			}
		}
	}
	return store.Individual{}, store.ErrNotFound
}

// verifyCandidate loads one candidate and checks class and every
// constraint against its live record.
func (s *Store) verifyCandidate(ctx context.Context, id string, class store.Name, constraints []store.Constraint) (store.Individual, error) {
	item, err := s.getItem(ctx, id)
	if err != nil {
		return store.Individual{}, err
	}

	cls, ok := item["class"].(*types.AttributeValueMemberS)
	if !ok || store.Name(cls.Value) != class {
		return store.Individual{}, store.ErrNotFound
	}

	for _, c := range constraints {
		var got store.Value
		if av, ok := item[string(c.Property)]; ok {
			got, err = unmarshalValue(av)
			if err != nil {
				return store.Individual{}, err
			}
		}
		if !store.ValueEqual(got, c.Value) {
			return store.Individual{}, store.ErrNotFound
		}
	}

	return store.Individual{ID: id, Class: class}, nil
}

// DeleteIndividual soft-deletes an individual by setting its ttl to now.
// Deleting an already-deleted individual is a no-op. The mapper core
// never calls this; it exists for maintenance paths such as the pivot
// sweeper in package stream.
func (s *Store) DeleteIndividual(ctx context.Context, ind store.Individual) error {
	_, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.config.IndividualsTable),
		Key:                 s.key(ind.ID),
		UpdateExpression:    aws.String("SET #ttl = :now"),
		ConditionExpression: aws.String("attribute_exists(id) AND attribute_not_exists(#ttl)"),
		ExpressionAttributeNames: map[string]string{
			"#ttl": "ttl",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":now": &types.AttributeValueMemberN{
				Value: strconv.FormatInt(time.Now().Unix(), 10),
			},
		},
	})

	var condErr *types.ConditionalCheckFailedException
	if errors.As(err, &condErr) {
		return nil
	}
	return err
}

func (s *Store) key(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

func (s *Store) getItem(ctx context.Context, id string) (map[string]types.AttributeValue, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.config.IndividualsTable),
		Key:       s.key(id),
	})
	if err != nil {
		return nil, err
	}
	if result.Item == nil || isDeleted(result.Item) {
		return nil, fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	return result.Item, nil
}

// isDeleted checks whether an item carries an expired ttl.
func isDeleted(item map[string]types.AttributeValue) bool {
	ttlAttr, exists := item["ttl"]
	if !exists {
		return false
	}
	ttlNum, ok := ttlAttr.(*types.AttributeValueMemberN)
	if !ok {
		return false
	}
	ttl, err := strconv.ParseInt(ttlNum.Value, 10, 64)
	if err != nil {
		return false
	}
	return ttl <= time.Now().Unix()
}

// mapConditionError translates conditional-check failures on the
// individual record into store.ErrNotFound.
func mapConditionError(err error) error {
	if err == nil {
		return nil
	}

	var txErr *types.TransactionCanceledException
	if errors.As(err, &txErr) {
		for _, reason := range txErr.CancellationReasons {
			if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
				return store.ErrNotFound
			}
		}
	}

	var condErr *types.ConditionalCheckFailedException
	if errors.As(err, &condErr) {
		return store.ErrNotFound
	}

	return err
}
