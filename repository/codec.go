package repository

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EncodeID turns a caller-supplied hex string into a storage ObjectID.
// Every identifier-shaped input crosses this before touching a query, so a
// malformed id surfaces as a client error, never a driver error.
func EncodeID(raw string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, validationf("invalid id format: %q", raw)
	}
	return oid, nil
}

// EncodeIDs converts a list of hex strings, failing on the first bad one.
func EncodeIDs(raw []string) ([]primitive.ObjectID, error) {
	if raw == nil {
		return nil, nil
	}
	out := make([]primitive.ObjectID, 0, len(raw))
	for _, r := range raw {
		oid, err := EncodeID(r)
		if err != nil {
			return nil, err
		}
		out = append(out, oid)
	}
	return out, nil
}

// DecodeID is the total inverse: storage id back to its hex form.
func DecodeID(id primitive.ObjectID) string { return id.Hex() }
