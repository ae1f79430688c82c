package models

// Match is the mutual-like relationship between exactly two users. Its id is
// derived from the sorted participant ids, so both sides of a reciprocal like
// land on the same record no matter who detects it first.
type Match struct {
	MatchID      string   `dynamodbav:"matchId" json:"matchId"`
	Participants []string `dynamodbav:"participants" json:"participants"`
	CreatedAt    string   `dynamodbav:"createdAt" json:"createdAt"`
	IsNew        bool     `dynamodbav:"isNew" json:"isNew"` // cleared once the client has shown the match
}

// MatchWithProfile is a match enriched with the partner's profile details
type MatchWithProfile struct {
	MatchID         string `json:"matchId"`
	PartnerID       string `json:"partnerId"`
	PartnerName     string `json:"partnerName,omitempty"`
	PartnerPhotoURL string `json:"partnerPhotoUrl,omitempty"`
	CreatedAt       string `json:"createdAt"`
	IsNew           bool   `json:"isNew"`
}

// MatchesTable is the DynamoDB table name for matches
const MatchesTable = "Matches"
