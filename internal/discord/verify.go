package discord

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"

	"github.com/skyhigh636/Skybot/internal/obslog"
	"go.uber.org/zap"
)

const (
	headerSignature = "X-Signature-Ed25519"
	headerTimestamp = "X-Signature-Timestamp"

	maxBodyBytes = 1 << 20
)

// NewVerifyMiddleware returns HTTP middleware that authenticates webhook
// requests with the application's ed25519 public key. The signature
// covers timestamp||body. Unverified requests are rejected with 401, as
// the platform requires.
func NewVerifyMiddleware(publicKeyHex string) (func(http.Handler) http.Handler, error) {
	raw, err := hex.DecodeString(publicKeyHex)
	if err != nil {
		return nil, fmt.Errorf("decode public key: %w", err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("public key must be %d bytes, got %d", ed25519.PublicKeySize, len(raw))
	}
	pub := ed25519.PublicKey(raw)

	mw := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sig, err := hex.DecodeString(r.Header.Get(headerSignature))
			if err != nil || len(sig) != ed25519.SignatureSize {
				http.Error(w, "invalid request signature", http.StatusUnauthorized)
				return
			}
			ts := r.Header.Get(headerTimestamp)
			if ts == "" {
				http.Error(w, "invalid request signature", http.StatusUnauthorized)
				return
			}

			body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
			if err != nil {
				http.Error(w, "read body", http.StatusBadRequest)
				return
			}
			_ = r.Body.Close()

			msg := make([]byte, 0, len(ts)+len(body))
			msg = append(msg, ts...)
			msg = append(msg, body...)
			if !ed25519.Verify(pub, msg, sig) {
				obslog.L().Warn("webhook_bad_signature", zap.String("remote", r.RemoteAddr))
				http.Error(w, "invalid request signature", http.StatusUnauthorized)
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(body))
			next.ServeHTTP(w, r)
		})
	}
	return mw, nil
}
