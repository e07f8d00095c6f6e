package oauth

import (
	"encoding/base64"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() GoogleService {
	return NewGoogleService(
		"test-client-id",
		"test-client-secret",
		"http://localhost:3000/api/v1/auth/oauth/callback/google",
		[]string{"openid", "email"},
	)
}

func TestGenerateState_UniquePerCall(t *testing.T) {
	svc := newTestService()

	first := svc.GenerateState("Mozilla/5.0")
	second := svc.GenerateState("Mozilla/5.0")

	require.NotEmpty(t, first)
	require.NotEmpty(t, second)
	assert.NotEqual(t, first, second)

	raw, err := base64.URLEncoding.DecodeString(first)
	require.NoError(t, err)
	// 32 bytes of nonce plus the 8-byte user-agent digest.
	assert.Len(t, raw, 40)
}

func TestRedirectURL_CarriesState(t *testing.T) {
	svc := newTestService()
	state := svc.GenerateState("Mozilla/5.0")

	redirect := svc.RedirectURL(state)

	parsed, err := url.Parse(redirect)
	require.NoError(t, err)
	query := parsed.Query()
	assert.Equal(t, state, query.Get("state"))
	assert.Equal(t, "test-client-id", query.Get("client_id"))
	assert.Contains(t, query.Get("scope"), "email")
}
