package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentStatusValid(t *testing.T) {
	valid := []DocumentStatus{
		DocumentStatusUploading,
		DocumentStatusProcessing,
		DocumentStatusReady,
		DocumentStatusError,
	}
	for _, s := range valid {
		assert.True(t, s.Valid(), string(s))
	}

	assert.False(t, DocumentStatus("deleted").Valid())
	assert.False(t, DocumentStatus("").Valid())
}

func TestDocumentStatusCanReprocess(t *testing.T) {
	assert.True(t, DocumentStatusReady.CanReprocess())
	assert.True(t, DocumentStatusError.CanReprocess())
	assert.False(t, DocumentStatusUploading.CanReprocess())
	assert.False(t, DocumentStatusProcessing.CanReprocess())
}
