package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestEncodeID(t *testing.T) {
	oid := primitive.NewObjectID()

	got, err := EncodeID(oid.Hex())
	require.NoError(t, err)
	assert.Equal(t, oid, got)
}

func TestEncodeIDRejectsMalformedInput(t *testing.T) {
	for _, raw := range []string{"", "not-an-id", "123", "zzzzzzzzzzzzzzzzzzzzzzzz"} {
		_, err := EncodeID(raw)
		require.Error(t, err, "raw=%q", raw)
		assert.True(t, IsValidation(err), "raw=%q should be a validation error", raw)
	}
}

func TestDecodeIDRoundTrip(t *testing.T) {
	oid := primitive.NewObjectID()
	back, err := EncodeID(DecodeID(oid))
	require.NoError(t, err)
	assert.Equal(t, oid, back)
}

func TestEncodeIDs(t *testing.T) {
	a, b := primitive.NewObjectID(), primitive.NewObjectID()

	got, err := EncodeIDs([]string{a.Hex(), b.Hex()})
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{a, b}, got)

	_, err = EncodeIDs([]string{a.Hex(), "bogus"})
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	got, err = EncodeIDs(nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}
