package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/allisson/credguard/internal/credential/domain"
)

func TestClassifySecret(t *testing.T) {
	assert.Equal(t, domain.SecretEmpty, domain.ClassifySecret(""))
	assert.Equal(t, domain.SecretPlaintext, domain.ClassifySecret("ABCD1234"))
	assert.Equal(t, domain.SecretEncrypted, domain.ClassifySecret("enc:v1:Zm9vYmFy"))
	// Shape only: a malformed payload is still classified as encrypted.
	assert.Equal(t, domain.SecretEncrypted, domain.ClassifySecret("enc:v1:xyz"))
}
