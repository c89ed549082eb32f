package domain

import "github.com/google/uuid"

// BuildTransferIdempotencyKey scopes a client key to the paying person.
func BuildTransferIdempotencyKey(personID uuid.UUID, clientKey string) string {
	return personID.String() + ":transfer:" + clientKey
}
