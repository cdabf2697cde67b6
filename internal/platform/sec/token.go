// Copyright (c) 2026 Inkwell. All rights reserved.

package sec

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateSecureToken returns a hex-encoded random string built from
// byteLength bytes of CSPRNG output.
//
// It is used for session keys: the opaque value stored in the client's
// cookie. The key carries no information; it is only a lookup handle into
// the server-side session store.
func GenerateSecureToken(byteLength int) (string, error) {
	buf := make([]byte, byteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("sec: failed to generate secure token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
