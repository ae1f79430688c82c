package services

import (
	"context"
	"fmt"

	"unhinge_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// SwipeRepository appends and queries the swipe event log
type SwipeRepository struct {
	Dynamo *DynamoService
}

// PutSwipe appends a swipe event. Events are write-once; nothing ever updates
// or deletes them.
func (r *SwipeRepository) PutSwipe(ctx context.Context, swipe *models.Swipe) error {
	if err := r.Dynamo.PutItem(ctx, models.SwipesTable, swipe); err != nil {
		return fmt.Errorf("failed to save swipe: %w", err)
	}
	return nil
}

// ListMemeIDsBySwiper returns every meme id a user has swiped on, via the
// swiperId GSI
func (r *SwipeRepository) ListMemeIDsBySwiper(ctx context.Context, swiperID string) ([]string, error) {
	keyCondition := "swiperId = :swiper"
	expressionValues := map[string]types.AttributeValue{
		":swiper": &types.AttributeValueMemberS{Value: swiperID},
	}

	items, err := r.Dynamo.QueryItemsWithIndex(ctx, models.SwipesTable, models.SwiperIDIndex, keyCondition, expressionValues, nil, 500)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch swipes for %s: %w", swiperID, err)
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		var swipe models.Swipe
		if err := attributevalue.UnmarshalMap(item, &swipe); err != nil {
			continue
		}
		if swipe.MemeID != "" {
			ids = append(ids, swipe.MemeID)
		}
	}
	return ids, nil
}

// HasReciprocalLike reports whether ownerID has ever liked a meme uploaded by
// likerID. Any qualifying event is sufficient; recency does not matter.
func (r *SwipeRepository) HasReciprocalLike(ctx context.Context, ownerID, likerID string) (bool, error) {
	keyCondition := "swiperId = :swiper"
	filterExpression := "memeOwnerId = :target AND decision = :like"
	expressionValues := map[string]types.AttributeValue{
		":swiper": &types.AttributeValueMemberS{Value: ownerID},
		":target": &types.AttributeValueMemberS{Value: likerID},
		":like":   &types.AttributeValueMemberS{Value: models.DecisionLike},
	}

	items, err := r.Dynamo.QueryItemsWithFilters(ctx, models.SwipesTable, models.SwiperIDIndex, keyCondition, expressionValues, nil, filterExpression)
	if err != nil {
		return false, fmt.Errorf("failed to check reciprocal like: %w", err)
	}
	return len(items) > 0, nil
}
