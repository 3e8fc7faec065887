package types

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
)

// Rating is a review score. It decodes from JSON numbers and numeric
// strings; anything unparsable becomes NaN, which the classifier counts
// as negative.
type Rating float64

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

func (r *Rating) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*r = Rating(math.NaN())
			return nil
		}
		b = bytes.TrimSpace([]byte(s))
	}
	m := leadingNumber.Find(b)
	if m == nil {
		*r = Rating(math.NaN())
		return nil
	}
	f, err := strconv.ParseFloat(string(m), 64)
	if err != nil {
		*r = Rating(math.NaN())
		return nil
	}
	*r = Rating(f)
	return nil
}

func (r Rating) MarshalJSON() ([]byte, error) {
	f := float64(r)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(f, 'f', -1, 64)), nil
}

// Valid reports whether the rating holds a usable number.
func (r Rating) Valid() bool {
	f := float64(r)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Text accepts either a JSON string or a JSON number and keeps it as text.
// The scraper is inconsistent about fields like price and sold count.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	*t = Text(b)
	return nil
}

type Review struct {
	Rating                 Rating `json:"rating"`
	ReviewerName           string `json:"reviewer_name,omitempty"`
	ReviewerNameNormalized string `json:"reviewer_name_normalized,omitempty"`
	ReviewText             string `json:"review_text,omitempty"`
	ReviewTextNormalized   string `json:"review_text_normalized,omitempty"`
	ReviewDate             string `json:"review_date,omitempty"`
	ReviewDateNormalized   string `json:"review_date_normalized,omitempty"`
	Variant                string `json:"variant,omitempty"`
	VariantNormalized      string `json:"variant_normalized,omitempty"`
	RatingFilter           int    `json:"rating_filter,omitempty"`
	ScrapedAt              string `json:"scraped_at,omitempty"`
}

type ProductDetails struct {
	ProductName string `json:"product_name"`
	StoreName   string `json:"store_name"`
	ProductURL  string `json:"product_url"`
	ReviewURL   string `json:"review_url,omitempty"`
	Price       Text   `json:"price,omitempty"`
	Rating      Text   `json:"rating,omitempty"`
	RatingCount Text   `json:"rating_count,omitempty"`
	SoldCount   Text   `json:"sold_count,omitempty"`
	Description string `json:"description,omitempty"`
	ScrapedAt   string `json:"scraped_at,omitempty"`
}

// MissingEssentials lists essential fields the scraper left empty.
func (p ProductDetails) MissingEssentials() []string {
	var missing []string
	if p.ProductName == "" {
		missing = append(missing, "product_name")
	}
	if p.Price == "" {
		missing = append(missing, "price")
	}
	if p.Rating == "" {
		missing = append(missing, "rating")
	}
	return missing
}

type ScrapeSummary struct {
	TotalReviewsScraped int    `json:"total_reviews_scraped"`
	TargetRatings       []int  `json:"target_ratings,omitempty"`
	MaxReviewsPerRating int    `json:"max_reviews_per_rating,omitempty"`
	ScrapedAt           string `json:"scraped_at,omitempty"`
}

type ScrapeRequest struct {
	URL                 string `json:"url"`
	TargetRatings       []int  `json:"target_ratings"`
	MaxReviewsPerRating int    `json:"max_reviews_per_rating"`
	Headless            bool   `json:"headless"`
}

type ScrapeResponse struct {
	ProductDetails *ProductDetails `json:"product_details"`
	Reviews        []Review        `json:"reviews"`
	Summary        *ScrapeSummary  `json:"summary,omitempty"`
}
