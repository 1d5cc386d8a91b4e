package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signPayload(t *testing.T, payload []byte, secret string, ts int64) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func TestVerifySignature(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)
	secret := "whsec_test"
	now := time.Now()

	t.Run("valid", func(t *testing.T) {
		header := signPayload(t, payload, secret, now.Unix())
		assert.NoError(t, VerifySignature(payload, header, secret, now))
	})

	t.Run("wrong secret", func(t *testing.T) {
		header := signPayload(t, payload, "whsec_other", now.Unix())
		assert.ErrorIs(t, VerifySignature(payload, header, secret, now), ErrInvalidSignature)
	})

	t.Run("tampered payload", func(t *testing.T) {
		header := signPayload(t, payload, secret, now.Unix())
		tampered := []byte(`{"id":"evt_2","type":"checkout.session.completed"}`)
		assert.ErrorIs(t, VerifySignature(tampered, header, secret, now), ErrInvalidSignature)
	})

	t.Run("stale timestamp", func(t *testing.T) {
		old := now.Add(-10 * time.Minute)
		header := signPayload(t, payload, secret, old.Unix())
		assert.ErrorIs(t, VerifySignature(payload, header, secret, now), ErrStaleTimestamp)
	})

	t.Run("future timestamp outside tolerance", func(t *testing.T) {
		future := now.Add(10 * time.Minute)
		header := signPayload(t, payload, secret, future.Unix())
		assert.ErrorIs(t, VerifySignature(payload, header, secret, now), ErrStaleTimestamp)
	})

	t.Run("malformed header", func(t *testing.T) {
		assert.ErrorIs(t, VerifySignature(payload, "nonsense", secret, now), ErrInvalidSignature)
		assert.ErrorIs(t, VerifySignature(payload, "t=abc,v1=00", secret, now), ErrInvalidSignature)
		assert.ErrorIs(t, VerifySignature(payload, fmt.Sprintf("t=%d", now.Unix()), secret, now), ErrInvalidSignature)
	})

	t.Run("second signature accepted", func(t *testing.T) {
		valid := signPayload(t, payload, secret, now.Unix())
		// prepend a rotated-out key signature, keep the valid one
		header := fmt.Sprintf("t=%d,v1=%s,%s", now.Unix(), "deadbeef", valid[len(fmt.Sprintf("t=%d,", now.Unix())):])
		assert.NoError(t, VerifySignature(payload, header, secret, now))
	})
}

func TestParseEvent(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"id":"cs_test_9"}}}`)

	event, err := ParseEvent(payload)
	require.NoError(t, err)
	assert.Equal(t, "evt_1", event.ID)
	assert.Equal(t, "checkout.session.completed", event.Type)
	assert.Equal(t, "cs_test_9", event.Data.Object.ID)

	_, err = ParseEvent([]byte("not json"))
	assert.Error(t, err)
}
