package utils

import (
	"testing"

	"casefile/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestJWTRoundTrip(t *testing.T) {
	user := &models.User{
		ID:         primitive.NewObjectID(),
		Email:      "owner@example.com",
		Name:       "Owner",
		ExternalID: "ext-123",
		Role:       "user",
	}

	token, err := GenerateJWTTokenWithSecret(user, "test-secret", 1)
	require.NoError(t, err)

	claims, err := VerifyJWTTokenWithSecret(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.ExternalID, claims.ExternalID)

	userID, err := GetUserIDFromTokenWithSecret(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID()}

	token, err := GenerateJWTTokenWithSecret(user, "right-secret", 1)
	require.NoError(t, err)

	_, err = VerifyJWTTokenWithSecret(token, "wrong-secret")
	assert.Error(t, err)
}

func TestJWTRejectsGarbage(t *testing.T) {
	_, err := VerifyJWTTokenWithSecret("not-a-token", "secret")
	assert.Error(t, err)
}
