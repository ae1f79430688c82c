package models

// UserProfile defines the structure for user profiles
type UserProfile struct {
	UserID    string   `dynamodbav:"userId" json:"userId"`
	Name      string   `dynamodbav:"name,omitempty" json:"name,omitempty"`
	Bio       string   `dynamodbav:"bio,omitempty" json:"bio,omitempty"`
	PhotoURL  string   `dynamodbav:"photoUrl,omitempty" json:"photoUrl,omitempty"`
	Interests []string `dynamodbav:"interests,omitempty" json:"interests,omitempty"`
}

// UserProfilesTable is the DynamoDB table name for user profiles
const UserProfilesTable = "UserProfiles"
