package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectoryFetchCommunities(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/communities", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"communities": [
			{
				"title": "Acme Protocol",
				"username": "acmeprotocol",
				"description": "A DeFi protocol",
				"invite_link": "https://t.me/acmeprotocol",
				"token_symbol": "ACME",
				"member_count": 42,
				"admin_count": 2,
				"verified": true,
				"created_at": "2025-01-15T10:00:00Z"
			}
		]}`))
	}))
	defer server.Close()

	client := NewDirectoryClient(server.URL)

	communities, err := client.FetchCommunities(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, communities, 1)

	c := communities[0]
	assert.Equal(t, "Acme Protocol", c.Title)
	assert.Equal(t, "acmeprotocol", c.Username)
	assert.Equal(t, "ACME", c.TokenSymbol)
	assert.Equal(t, "directory", c.Source)
	assert.Equal(t, 42, c.Metrics.MemberCount)
	assert.True(t, c.Metrics.Verified)
	require.NotNil(t, c.Metrics.CreationDate)
	assert.Equal(t, 2025, c.Metrics.CreationDate.Year())
}

func TestDirectoryFetchCommunitiesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewDirectoryClient(server.URL)

	_, err := client.FetchCommunities(context.Background(), 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestUniqueIDStable(t *testing.T) {
	a := UniqueID("Acme Protocol", "acmeprotocol")
	b := UniqueID("ACME PROTOCOL", "AcmeProtocol")
	c := UniqueID("Other Project", "other")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 16)
}

func TestLooksLikeFunding(t *testing.T) {
	assert.True(t, looksLikeFunding("Acme raises $5M in seed round"))
	assert.True(t, looksLikeFunding("Project closes Series A funding"))
	assert.False(t, looksLikeFunding("Bitcoin price hits new high"))
}
