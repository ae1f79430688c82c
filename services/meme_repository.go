package services

import (
	"context"
	"fmt"
	"log"
	"sort"

	"unhinge_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// MemeRepository stores and queries meme documents
type MemeRepository struct {
	Dynamo *DynamoService
}

// PutMeme inserts a new meme document
func (r *MemeRepository) PutMeme(ctx context.Context, meme *models.Meme) error {
	if err := r.Dynamo.PutItem(ctx, models.MemesTable, meme); err != nil {
		return fmt.Errorf("failed to save meme: %w", err)
	}
	log.Printf("✅ Meme %s saved for uploader %s", meme.MemeID, meme.UploadedBy)
	return nil
}

// GetMeme retrieves a meme by id
func (r *MemeRepository) GetMeme(ctx context.Context, memeID string) (*models.Meme, error) {
	key := map[string]types.AttributeValue{
		"memeId": &types.AttributeValueMemberS{Value: memeID},
	}
	item, err := r.Dynamo.GetItem(ctx, models.MemesTable, key)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrMemeNotFound
	}

	var meme models.Meme
	if err := attributevalue.UnmarshalMap(item, &meme); err != nil {
		return nil, fmt.Errorf("failed to unmarshal meme: %w", err)
	}
	if !validMeme(&meme) {
		return nil, ErrMemeNotFound
	}
	return &meme, nil
}

// ListIDsByUploader returns the ids of every meme a user has uploaded
func (r *MemeRepository) ListIDsByUploader(ctx context.Context, userID string) ([]string, error) {
	memes, err := r.ListByUploader(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(memes))
	for _, meme := range memes {
		ids = append(ids, meme.MemeID)
	}
	return ids, nil
}

// ListByUploader returns a user's uploaded memes via the uploadedBy GSI
func (r *MemeRepository) ListByUploader(ctx context.Context, userID string) ([]models.Meme, error) {
	keyCondition := "uploadedBy = :uploader"
	expressionValues := map[string]types.AttributeValue{
		":uploader": &types.AttributeValueMemberS{Value: userID},
	}

	items, err := r.Dynamo.QueryItemsWithIndex(ctx, models.MemesTable, models.UploadedByIndex, keyCondition, expressionValues, nil, 100)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch memes for uploader %s: %w", userID, err)
	}

	memes := make([]models.Meme, 0, len(items))
	for _, item := range items {
		var meme models.Meme
		if err := attributevalue.UnmarshalMap(item, &meme); err != nil || !validMeme(&meme) {
			continue
		}
		memes = append(memes, meme)
	}
	return memes, nil
}

// FeedCandidates returns up to limit memes not uploaded by excludeOwner,
// newest first. Malformed documents are dropped rather than propagated.
func (r *MemeRepository) FeedCandidates(ctx context.Context, excludeOwner string, limit int) ([]models.Meme, error) {
	filterExpression := "uploadedBy <> :owner"
	expressionValues := map[string]types.AttributeValue{
		":owner": &types.AttributeValueMemberS{Value: excludeOwner},
	}

	items, err := r.Dynamo.ScanItems(ctx, models.MemesTable, filterExpression, expressionValues, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed candidates: %w", err)
	}

	memes := make([]models.Meme, 0, len(items))
	for _, item := range items {
		var meme models.Meme
		if err := attributevalue.UnmarshalMap(item, &meme); err != nil {
			log.Printf("⚠️ Dropping unreadable meme document: %v", err)
			continue
		}
		if !validMeme(&meme) {
			log.Printf("⚠️ Dropping meme document with missing fields: %q", meme.MemeID)
			continue
		}
		memes = append(memes, meme)
	}

	// RFC3339 timestamps compare correctly as strings
	sort.Slice(memes, func(i, j int) bool {
		return memes[i].UploadedAt > memes[j].UploadedAt
	})

	if limit > 0 && len(memes) > limit {
		memes = memes[:limit]
	}
	return memes, nil
}

// IncrementCounters bumps a meme's like/view counters
func (r *MemeRepository) IncrementCounters(ctx context.Context, memeID string, likes, views int) error {
	updateExpression := "ADD likes :likes, #views :views"
	key := map[string]types.AttributeValue{
		"memeId": &types.AttributeValueMemberS{Value: memeID},
	}
	expressionValues := map[string]types.AttributeValue{
		":likes": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", likes)},
		":views": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", views)},
	}
	expressionNames := map[string]string{
		"#views": "views",
	}

	_, err := r.Dynamo.UpdateItem(ctx, models.MemesTable, updateExpression, key, expressionValues, expressionNames)
	if err != nil {
		return fmt.Errorf("failed to increment counters for meme %s: %w", memeID, err)
	}
	return nil
}

func validMeme(meme *models.Meme) bool {
	return meme.MemeID != "" && meme.ImageURL != "" && meme.UploadedBy != ""
}
