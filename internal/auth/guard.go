package auth

import (
	"fmt"
	"strings"
)

type hexer interface {
	Hex() string
}

// CanonicalID renders an identifier the same way regardless of whether it is a
// store-native id (bson.ObjectID, uuid.UUID) or the string embedded in a token.
func CanonicalID(id any) string {
	var s string
	switch v := id.(type) {
	case nil:
		return ""
	case string:
		s = v
	case *string:
		if v == nil {
			return ""
		}
		s = *v
	case []byte:
		s = string(v)
	case hexer:
		s = v.Hex()
	case fmt.Stringer:
		s = v.String()
	default:
		s = fmt.Sprint(v)
	}
	return strings.ToLower(strings.TrimSpace(s))
}

// CanMutate reports whether the authenticated subject may modify a resource
// recorded as owned by resourceOwnerID. It must be consulted before any write.
func CanMutate(authenticatedID, resourceOwnerID any) bool {
	subject := CanonicalID(authenticatedID)
	if subject == "" {
		return false
	}
	return subject == CanonicalID(resourceOwnerID)
}
