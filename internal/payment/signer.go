package payment

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// Signer derives the X-VERIFY integrity tag the gateway expects on every
// call: hex(sha256(payload ++ routeSuffix ++ secret)) ++ "###" ++ keyIndex.
// The key index tells the gateway which secret version was used; the secret
// itself never leaves this process. The tag is not a credential — it proves
// the request was built by a holder of the secret and was not altered in
// transit.
type Signer struct {
	secret   string
	keyIndex int
}

func NewSigner(secret string, keyIndex int) Signer {
	return Signer{secret: secret, keyIndex: keyIndex}
}

// Sign computes the tag. For initiation, payload is the base64 of the JSON
// order body and routeSuffix is the pay route. For status queries there is no
// body: payload is empty and routeSuffix is the full status path.
func (s Signer) Sign(payload, routeSuffix string) string {
	sum := sha256.Sum256([]byte(payload + routeSuffix + s.secret))
	return hex.EncodeToString(sum[:]) + "###" + strconv.Itoa(s.keyIndex)
}
