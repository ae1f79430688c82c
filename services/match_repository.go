package services

import (
	"context"
	"fmt"

	"unhinge_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// MatchRepository stores match records keyed by their deterministic id
type MatchRepository struct {
	Dynamo *DynamoService
}

// PutMatch writes a match record, overwriting any existing record at the same
// id. Two clients detecting the same reciprocity both succeed and the later
// write's createdAt/isNew wins.
func (r *MatchRepository) PutMatch(ctx context.Context, match *models.Match) error {
	if err := r.Dynamo.PutItem(ctx, models.MatchesTable, match); err != nil {
		return fmt.Errorf("failed to create match: %w", err)
	}
	return nil
}

// ListForUser returns every match the user participates in
func (r *MatchRepository) ListForUser(ctx context.Context, userID string) ([]models.Match, error) {
	filterExpression := "contains(participants, :user)"
	expressionValues := map[string]types.AttributeValue{
		":user": &types.AttributeValueMemberS{Value: userID},
	}

	items, err := r.Dynamo.ScanItems(ctx, models.MatchesTable, filterExpression, expressionValues, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch matches for %s: %w", userID, err)
	}

	matches := make([]models.Match, 0, len(items))
	for _, item := range items {
		var match models.Match
		if err := attributevalue.UnmarshalMap(item, &match); err != nil {
			continue
		}
		matches = append(matches, match)
	}
	return matches, nil
}

// MarkSeen flips a match's isNew flag off once the client has surfaced it
func (r *MatchRepository) MarkSeen(ctx context.Context, matchID string) error {
	updateExpression := "SET isNew = :isNew"
	key := map[string]types.AttributeValue{
		"matchId": &types.AttributeValueMemberS{Value: matchID},
	}
	expressionValues := map[string]types.AttributeValue{
		":isNew": &types.AttributeValueMemberBOOL{Value: false},
	}

	_, err := r.Dynamo.UpdateItem(ctx, models.MatchesTable, updateExpression, key, expressionValues, nil)
	if err != nil {
		return fmt.Errorf("failed to mark match %s seen: %w", matchID, err)
	}
	return nil
}
