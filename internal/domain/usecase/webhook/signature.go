package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const signaturePrefix = "sha256="

// SignatureVerifier checks that a webhook body was produced by the gateway.
// The digest is computed over the body exactly as received; callers must not
// re-serialize a parsed payload before verifying.
type SignatureVerifier struct {
	secret []byte
}

// NewSignatureVerifier creates a verifier for the shared secret
func NewSignatureVerifier(secret string) *SignatureVerifier {
	return &SignatureVerifier{secret: []byte(secret)}
}

// Sign returns the hex HMAC-SHA256 of body
func (v *SignatureVerifier) Sign(body []byte) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether signature matches body. An optional "sha256=" prefix is accepted.
// An empty secret never verifies.
func (v *SignatureVerifier) Verify(body []byte, signature string) bool {
	if len(v.secret) == 0 {
		return false
	}

	signature = strings.TrimSpace(signature)
	if len(signature) >= len(signaturePrefix) && strings.EqualFold(signature[:len(signaturePrefix)], signaturePrefix) {
		signature = signature[len(signaturePrefix):]
	}

	supplied, err := hex.DecodeString(signature)
	if err != nil || len(supplied) != sha256.Size {
		return false
	}

	mac := hmac.New(sha256.New, v.secret)
	mac.Write(body)
	return hmac.Equal(mac.Sum(nil), supplied)
}
