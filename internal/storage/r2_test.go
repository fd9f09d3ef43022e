package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpoint(t *testing.T) {
	assert.Equal(t, "https://abc123.r2.cloudflarestorage.com", Endpoint("abc123"))
}

func TestNewR2(t *testing.T) {
	r, err := NewR2(context.Background(), R2Config{
		AccountID: "abc123",
		Bucket:    "resumes",
		AccessKey: "key",
		SecretKey: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "resumes", r.bucket)
	assert.NotNil(t, r.client)
}
