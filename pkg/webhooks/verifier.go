package webhooks

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-faster/errors"

	"github.com/ledgerflow/practice-sdk/pkg/httpapi"
)

// Header names follow the convention payload providers use for signed
// webhooks: a hex HMAC of the raw body and a unix timestamp that bounds
// how long a captured request stays valid.
const (
	HeaderSignature = "X-Webhook-Signature"
	HeaderTimestamp = "X-Webhook-Timestamp"
)

var (
	ErrMissingSignature = errors.New("webhook signature header missing")
	ErrBadSignature     = errors.New("webhook signature mismatch")
	ErrStaleTimestamp   = errors.New("webhook timestamp outside replay window")
)

// Verifier authenticates inbound webhook requests with a shared HMAC-SHA256
// secret. The signed message is "<timestamp>.<body>" so a valid signature
// cannot be replayed with a fresh timestamp.
type Verifier struct {
	secret       []byte
	replayWindow time.Duration
	now          func() time.Time
}

func NewVerifier(secret string, replayWindow time.Duration) *Verifier {
	return &Verifier{
		secret:       []byte(secret),
		replayWindow: replayWindow,
		now:          time.Now,
	}
}

// Sign computes the signature a caller must send for the given timestamp and
// body. Exposed for tests and for outbound webhook delivery.
func (v *Verifier) Sign(ts time.Time, body []byte) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(strconv.FormatInt(ts.Unix(), 10)))
	mac.Write([]byte("."))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks the signature and timestamp headers against the raw body.
func (v *Verifier) Verify(r *http.Request, body []byte) error {
	sig := r.Header.Get(HeaderSignature)
	if sig == "" {
		return ErrMissingSignature
	}

	rawTS := r.Header.Get(HeaderTimestamp)
	unix, err := strconv.ParseInt(rawTS, 10, 64)
	if err != nil {
		return errors.Wrap(ErrStaleTimestamp, "unparseable timestamp")
	}
	ts := time.Unix(unix, 0)
	if age := v.now().Sub(ts); age > v.replayWindow || age < -v.replayWindow {
		return ErrStaleTimestamp
	}

	expected := v.Sign(ts, body)
	if !hmac.Equal([]byte(expected), []byte(sig)) {
		return ErrBadSignature
	}
	return nil
}

// Middleware verifies every request before handing it to next. The body is
// re-buffered so downstream handlers can read it normally.
func (v *Verifier) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			_ = httpapi.WriteError(w, http.StatusBadRequest, "BODY_READ_FAILED", "could not read request body", nil)
			return
		}
		_ = r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(body))

		if err := v.Verify(r, body); err != nil {
			status := http.StatusUnauthorized
			code := "SIGNATURE_INVALID"
			if errors.Is(err, ErrStaleTimestamp) {
				code = "SIGNATURE_STALE"
			}
			_ = httpapi.WriteError(w, status, code, err.Error(), nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
