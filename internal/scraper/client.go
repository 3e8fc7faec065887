package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"shopping-advisor-go/internal/config"
	"shopping-advisor-go/internal/logger"
	"shopping-advisor-go/internal/types"
	"shopping-advisor-go/internal/upstream"
)

// ErrNoProductDetails means the scrape service answered without the
// product_details block, which every downstream step needs.
var ErrNoProductDetails = errors.New("scraper: response has no product_details")

var allRatings = []int{1, 2, 3, 4, 5}

type Client struct {
	BaseURL             string
	MaxReviewsPerRating int
	Mock                bool

	up  *upstream.Client
	log *logger.Logger
}

func New(cfg config.Config, log *logger.Logger) *Client {
	log = log.Component("scraper")
	return &Client{
		BaseURL:             cfg.ScraperURL,
		MaxReviewsPerRating: cfg.MaxReviewsPerRating,
		Mock:                cfg.MockScraper,
		up:                  upstream.New(cfg.ScrapeTimeout, cfg.MaxRetry, log),
		log:                 log,
	}
}

// Upstream exposes the transport so tests can shorten the retry policy.
func (c *Client) Upstream() *upstream.Client { return c.up }

// ScrapeWithDetails asks the scrape service for product details and reviews
// across all five star ratings.
func (c *Client) ScrapeWithDetails(ctx context.Context, productURL string) (types.ScrapeResponse, error) {
	log := c.log.WithField("product_url", productURL)
	if c.Mock {
		log.Info("mock scraper mode ON - returning deterministic listing")
		return mockResponse(productURL), nil
	}

	req := types.ScrapeRequest{
		URL:                 productURL,
		TargetRatings:       allRatings,
		MaxReviewsPerRating: c.MaxReviewsPerRating,
		Headless:            false,
	}
	var resp types.ScrapeResponse
	if err := c.up.Do(ctx, http.MethodPost, c.BaseURL+"/scrape-with-details", req, upstream.DecodeInto(&resp)); err != nil {
		return types.ScrapeResponse{}, fmt.Errorf("scrape %s: %w", productURL, err)
	}
	if resp.ProductDetails == nil {
		return types.ScrapeResponse{}, ErrNoProductDetails
	}
	if missing := resp.ProductDetails.MissingEssentials(); len(missing) > 0 {
		log.WithField("missing_fields", missing).Warn("scraped product is missing essential fields")
	}
	log.WithField("reviews", len(resp.Reviews)).Info("scrape completed")
	return resp, nil
}

// Ping checks the scrape service root endpoint.
func (c *Client) Ping(ctx context.Context) error {
	if c.Mock {
		return nil
	}
	return c.up.Do(ctx, http.MethodGet, c.BaseURL+"/", nil, nil)
}

func mockResponse(productURL string) types.ScrapeResponse {
	ratings := []types.Rating{5, 5, 4, 3, 2, 1}
	texts := []string{
		"Great tablet, fast delivery and well packed.",
		"Original product, screen is sharp.",
		"Good value, battery could be better.",
		"Okay overall, box arrived dented.",
		"Charger stopped working after a week.",
		"Wrong colour sent and seller did not reply.",
	}
	reviews := make([]types.Review, len(ratings))
	for i, r := range ratings {
		reviews[i] = types.Review{
			Rating:       r,
			ReviewerName: fmt.Sprintf("buyer-%d", i+1),
			ReviewText:   texts[i],
			RatingFilter: int(r),
		}
	}
	return types.ScrapeResponse{
		ProductDetails: &types.ProductDetails{
			ProductName: "Huawei MatePad 11.5 8/128GB",
			StoreName:   "Huawei Official Store",
			ProductURL:  productURL,
			ReviewURL:   productURL + "/review",
			Price:       "Rp3.999.000",
			Rating:      "4.8",
			RatingCount: "1200",
			SoldCount:   "2rb+ terjual",
			Description: "11.5 inch display, 8GB RAM, 128GB storage.",
		},
		Reviews: reviews,
		Summary: &types.ScrapeSummary{
			TotalReviewsScraped: len(reviews),
			TargetRatings:       allRatings,
			MaxReviewsPerRating: 15,
		},
	}
}
