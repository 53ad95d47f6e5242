package auth

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestCanonicalID(t *testing.T) {
	oid := bson.NewObjectID()
	uid := uuid.New()
	str := "abc"

	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "nil", in: nil, want: ""},
		{name: "string", in: " ABC ", want: "abc"},
		{name: "string pointer", in: &str, want: "abc"},
		{name: "nil string pointer", in: (*string)(nil), want: ""},
		{name: "bytes", in: []byte("Abc"), want: "abc"},
		{name: "object id", in: oid, want: oid.Hex()},
		{name: "uuid", in: uid, want: uid.String()},
		{name: "number", in: 42, want: "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalID(tt.in))
		})
	}
}

func TestCanMutate(t *testing.T) {
	oid := bson.NewObjectID()
	other := bson.NewObjectID()
	uid := uuid.New()

	tests := []struct {
		name    string
		subject any
		owner   any
		want    bool
	}{
		{name: "same string", subject: "u1", owner: "u1", want: true},
		{name: "different string", subject: "u1", owner: "u2", want: false},
		{name: "token hex vs object id", subject: oid.Hex(), owner: oid, want: true},
		{name: "token hex vs other object id", subject: oid.Hex(), owner: other, want: false},
		{name: "upper case hex", subject: strings.ToUpper(oid.Hex()), owner: oid, want: true},
		{name: "uuid string vs uuid", subject: uid.String(), owner: uid, want: true},
		{name: "empty subject", subject: "", owner: "", want: false},
		{name: "empty owner", subject: "u1", owner: "", want: false},
		{name: "nil owner", subject: "u1", owner: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanMutate(tt.subject, tt.owner))
		})
	}
}
