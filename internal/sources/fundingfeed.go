package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/scoutlabs/web3scout/internal/models"
)

// FundingFeedClient pulls funding-round announcements from the CryptoPanic
// API and maps them into community entities for scoring.
type FundingFeedClient struct {
	apiKey string
	client *http.Client
}

type fundingFeedResponse struct {
	Results []struct {
		ID        int    `json:"id"`
		Title     string `json:"title"`
		URL       string `json:"url"`
		Published string `json:"published_at"`
		Source    struct {
			Title string `json:"title"`
		} `json:"source"`
		Currencies []struct {
			Code string `json:"code"`
		} `json:"currencies"`
	} `json:"results"`
}

func NewFundingFeedClient(apiKey string) *FundingFeedClient {
	return &FundingFeedClient{
		apiKey: apiKey,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *FundingFeedClient) FetchCommunities(ctx context.Context, limit int) ([]models.Community, error) {
	url := fmt.Sprintf("https://cryptopanic.com/api/v1/posts/?auth_token=%s&public=true&kind=news&page_size=%d", c.apiKey, limit)

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
		return nil, fmt.Errorf("funding feed returned status %d", resp.StatusCode)
	}

	var apiResp fundingFeedResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, err
	}

	communities := make([]models.Community, 0, len(apiResp.Results))
	for _, result := range apiResp.Results {
		if !looksLikeFunding(result.Title) {
			continue
		}

		var createdAt *time.Time
		if t, err := time.Parse(time.RFC3339, result.Published); err == nil {
			createdAt = &t
		}

		symbol := ""
		if len(result.Currencies) > 0 {
			symbol = result.Currencies[0].Code
		}

		communities = append(communities, models.Community{
			Title:       result.Title,
			Username:    fmt.Sprintf("funding_%d", result.ID),
			Description: result.Title,
			InviteLink:  result.URL,
			TokenSymbol: symbol,
			Source:      "fundingfeed",
			Metrics: models.Metrics{
				CreationDate: createdAt,
			},
		})
	}

	return communities, nil
}

func (c *FundingFeedClient) Name() string {
	return "fundingfeed"
}

var fundingTerms = []string{
	"raise", "raises", "raised", "funding", "seed", "series a", "series b",
	"pre-seed", "ico", "ido", "investment round", "backed by",
}

func looksLikeFunding(title string) bool {
	lower := strings.ToLower(title)
	for _, term := range fundingTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
