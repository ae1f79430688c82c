package services

import (
	"context"
	"testing"

	"unhinge_server/models"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/require"
)

func TestPutMatchOverwrites(t *testing.T) {
	client := &fakeDynamoClient{}
	repo := &MatchRepository{Dynamo: &DynamoService{Client: client}}

	match := &models.Match{
		MatchID:      "alice_bob",
		Participants: []string{"alice", "bob"},
		CreatedAt:    "2026-08-30T12:00:00Z",
		IsNew:        true,
	}
	require.NoError(t, repo.PutMatch(context.Background(), match))

	require.Equal(t, models.MatchesTable, *client.putInput.TableName)
	// Plain put, no condition expression: re-detection overwrites.
	require.Nil(t, client.putInput.ConditionExpression)
}

func TestListForUserFiltersByParticipant(t *testing.T) {
	client := &fakeDynamoClient{scanOutput: &dynamodb.ScanOutput{
		Items: []map[string]types.AttributeValue{
			mustMarshal(t, models.Match{MatchID: "alice_bob", Participants: []string{"alice", "bob"}, IsNew: true}),
		},
	}}
	repo := &MatchRepository{Dynamo: &DynamoService{Client: client}}

	matches, err := repo.ListForUser(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.Equal(t, "alice_bob", matches[0].MatchID)
	require.Equal(t, "contains(participants, :user)", *client.scanInput.FilterExpression)
}

func TestMarkSeenClearsFlag(t *testing.T) {
	client := &fakeDynamoClient{}
	repo := &MatchRepository{Dynamo: &DynamoService{Client: client}}

	require.NoError(t, repo.MarkSeen(context.Background(), "alice_bob"))
	require.Equal(t, "SET isNew = :isNew", *client.updateInput.UpdateExpression)

	isNew, ok := client.updateInput.ExpressionAttributeValues[":isNew"].(*types.AttributeValueMemberBOOL)
	require.True(t, ok)
	require.False(t, isNew.Value)
}
