package service

// AESGCMFactory creates AES-256-GCM ciphers. It is the only cipher of format v1.
type AESGCMFactory struct{}

// NewAESGCMFactory creates a new AESGCMFactory.
func NewAESGCMFactory() *AESGCMFactory {
	return &AESGCMFactory{}
}

// CreateCipher creates an AES-256-GCM cipher for key.
// Returns ErrInvalidKeySize if key is not 32 bytes.
func (f *AESGCMFactory) CreateCipher(key []byte) (AEAD, error) {
	cipher, err := NewAESGCM(key)
	if err != nil {
		return nil, err
	}
	return cipher, nil
}
