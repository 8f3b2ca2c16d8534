package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/scoutlabs/web3scout/internal/models"
)

// DirectoryClient fetches candidate communities from a community directory
// API.
type DirectoryClient struct {
	baseURL string
	client  *http.Client
}

type directoryResponse struct {
	Communities []struct {
		Title          string   `json:"title"`
		Username       string   `json:"username"`
		Description    string   `json:"description"`
		MemberCount    int      `json:"member_count"`
		AdminCount     int      `json:"admin_count"`
		RecentMessages []string `json:"recent_messages"`
		InviteLink     string   `json:"invite_link"`
		TokenSymbol    string   `json:"token_symbol"`
		Verified       bool     `json:"verified"`
		Restricted     bool     `json:"restricted"`
		CreatedAt      string   `json:"created_at"`
	} `json:"communities"`
}

func NewDirectoryClient(baseURL string) *DirectoryClient {
	return &DirectoryClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *DirectoryClient) FetchCommunities(ctx context.Context, limit int) ([]models.Community, error) {
	url := fmt.Sprintf("%s/communities?limit=%d", c.baseURL, limit)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directory returned status %d", resp.StatusCode)
	}

	var apiResp directoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, err
	}

	communities := make([]models.Community, 0, len(apiResp.Communities))
	for _, entry := range apiResp.Communities {
		var createdAt *time.Time
		if t, err := time.Parse(time.RFC3339, entry.CreatedAt); err == nil {
			createdAt = &t
		}

		communities = append(communities, models.Community{
			Title:          entry.Title,
			Username:       entry.Username,
			Description:    entry.Description,
			RecentMessages: entry.RecentMessages,
			InviteLink:     entry.InviteLink,
			TokenSymbol:    entry.TokenSymbol,
			Source:         "directory",
			Metrics: models.Metrics{
				MemberCount:  entry.MemberCount,
				AdminCount:   entry.AdminCount,
				Verified:     entry.Verified,
				Restricted:   entry.Restricted,
				CreationDate: createdAt,
			},
		})
	}

	return communities, nil
}

func (c *DirectoryClient) Name() string {
	return "directory"
}
