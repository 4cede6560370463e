package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectMongoRejectsInvalidURI(t *testing.T) {
	// An unparseable URI fails during client construction, before any
	// network access.
	_, err := ConnectMongo("invalid://not-a-mongo-uri")
	assert.ErrorContains(t, err, "error creating MongoDB client")
}
