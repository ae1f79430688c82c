package services

import (
	"context"
	"fmt"

	"unhinge_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ProfileRepository stores user profiles
type ProfileRepository struct {
	Dynamo *DynamoService
}

// GetProfile retrieves a user profile by id
func (r *ProfileRepository) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	item, err := r.GetProfileItem(ctx, userID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrProfileNotFound
	}

	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &profile, nil
}

// GetProfileItem retrieves a profile as a raw attribute map
func (r *ProfileRepository) GetProfileItem(ctx context.Context, userID string) (map[string]types.AttributeValue, error) {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
	return r.Dynamo.GetItem(ctx, models.UserProfilesTable, key)
}

// PutProfile creates or replaces a user profile
func (r *ProfileRepository) PutProfile(ctx context.Context, profile *models.UserProfile) error {
	if err := r.Dynamo.PutItem(ctx, models.UserProfilesTable, profile); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}
