package webhook

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignatureVerifier(t *testing.T) {
	verifier := NewSignatureVerifier("whsec")
	body := []byte(`{"tx_ref":"TX1","status":"successful"}`)
	good := verifier.Sign(body)

	tests := []struct {
		name      string
		verifier  *SignatureVerifier
		body      []byte
		signature string
		want      bool
	}{
		{name: "matching signature", verifier: verifier, body: body, signature: good, want: true},
		{name: "upper case hex", verifier: verifier, body: body, signature: strings.ToUpper(good), want: true},
		{name: "sha256 prefix", verifier: verifier, body: body, signature: "sha256=" + good, want: true},
		{name: "surrounding whitespace", verifier: verifier, body: body, signature: " " + good + " ", want: true},
		{name: "body changed by one byte", verifier: verifier, body: []byte(`{"tx_ref":"TX2","status":"successful"}`), signature: good},
		{name: "re-serialized body", verifier: verifier, body: []byte(`{"tx_ref": "TX1", "status": "successful"}`), signature: good},
		{name: "wrong secret", verifier: NewSignatureVerifier("other"), body: body, signature: good},
		{name: "empty secret", verifier: NewSignatureVerifier(""), body: body, signature: NewSignatureVerifier("").Sign(body)},
		{name: "missing signature", verifier: verifier, body: body, signature: ""},
		{name: "not hex", verifier: verifier, body: body, signature: "zz" + good[2:]},
		{name: "truncated", verifier: verifier, body: body, signature: good[:32]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.verifier.Verify(tt.body, tt.signature))
		})
	}
}
