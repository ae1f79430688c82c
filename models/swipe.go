package models

// Swipe is an append-only record of a single like/dislike decision.
// Never updated or deleted; repeat swipes on the same meme produce new events.
type Swipe struct {
	SwipeID     string `dynamodbav:"swipeId" json:"swipeId"`
	SwiperID    string `dynamodbav:"swiperId" json:"swiperId"`         // ✅ Used in GSI
	MemeID      string `dynamodbav:"memeId" json:"memeId"`
	MemeOwnerID string `dynamodbav:"memeOwnerId" json:"memeOwnerId"` // owner of MemeID at write time
	Decision    string `dynamodbav:"decision" json:"decision"`       // like, dislike
	CreatedAt   string `dynamodbav:"createdAt" json:"createdAt"`
}

// SwipesTable is the DynamoDB table name for swipe events
const SwipesTable = "Swipes"

// SwiperIDIndex is the GSI used to query a user's swipe history
const SwiperIDIndex = "swiperId-index"
