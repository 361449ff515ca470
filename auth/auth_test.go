package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/JalilAbdallah/hrm-backend/config"
	"github.com/JalilAbdallah/hrm-backend/models"
)

func testService(secret string) *Service {
	return NewService(nil, config.AuthConfig{Secret: secret, ExpireHours: 1})
}

func testUser() *models.User {
	return &models.User{
		ID:       primitive.NewObjectID(),
		UserID:   "u-100",
		Username: "analyst",
		Email:    "analyst@example.org",
		Role:     models.RoleAdmin,
	}
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	svc := testService("test-secret")
	user := testUser()

	token, err := svc.issue(user)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.ID)
	assert.Equal(t, "u-100", claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestVerifyAcceptsBearerPrefix(t *testing.T) {
	svc := testService("test-secret")
	token, err := svc.issue(testUser())
	require.NoError(t, err)

	claims, err := svc.Verify("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "u-100", claims.UserID)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := testService("secret-a").issue(testUser())
	require.NoError(t, err)

	_, err = testService("secret-b").Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := testService("test-secret")
	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token=%q", token)
	}
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	require.NotEqual(t, "correct horse", hash)

	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("correct horse")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("wrong")))
}
