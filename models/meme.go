package models

// Meme is one uploadable content unit. Immutable after creation except the
// Likes/Views counters, which are bumped best-effort.
type Meme struct {
	MemeID     string   `dynamodbav:"memeId" json:"memeId"`
	ImageURL   string   `dynamodbav:"imageUrl" json:"imageUrl"`
	Caption    string   `dynamodbav:"caption,omitempty" json:"caption,omitempty"`
	Tags       []string `dynamodbav:"tags,omitempty" json:"tags,omitempty"`
	UploadedBy string   `dynamodbav:"uploadedBy" json:"uploadedBy"`
	UploadedAt string   `dynamodbav:"uploadedAt" json:"uploadedAt"` // RFC3339
	Likes      int      `dynamodbav:"likes" json:"likes"`
	Views      int      `dynamodbav:"views" json:"views"`
}

// MemesTable is the DynamoDB table name for memes
const MemesTable = "Memes"

// UploadedByIndex is the GSI used to list a user's own uploads
const UploadedByIndex = "uploadedBy-index"
