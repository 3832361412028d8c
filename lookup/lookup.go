// Package lookup implements the external price and exchange-rate
// oracle. Prices come from a natural-language lookup: a Gemini model
// with Google Search grounding is asked for the latest quote of a
// ticker and instructed to answer with a single JSON object. The
// exchange rate comes from a public JSON endpoint.
//
// Any failure, network, parse or schema mismatch, surfaces as an error
// so the caller keeps its prior values.
package lookup

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/hcpang/folio"
)

const model = "gemini-2.5-pro"

const systemInstruction = `
You are a market data terminal. You answer price questions with a single
JSON object and nothing else: no prose, no markdown fences.
The object has exactly these fields:
  "price": the latest traded price, as a number, in the security's quote currency
  "name": the security's full display name
  "currency": the ISO 4217 code of the quote currency
  "sourceUrls": a list of the URLs you grounded the price on
Use Google Search to ground the price in a recent, reliable source.
`

// Client asks a Gemini model for quotes. It implements folio.Oracle.
type Client struct {
	client *genai.Client
}

// NewClient initializes the Gemini client from the ambient environment
// (GEMINI_API_KEY).
func NewClient(ctx context.Context) (*Client, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot initialize lookup client: %w", err)
	}
	return &Client{client: client}, nil
}

// FetchPrice asks the model for the latest quote of symbol.
func (c *Client) FetchPrice(ctx context.Context, symbol string) (*folio.Quote, error) {
	config := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
	}

	prompt := fmt.Sprintf("What is the latest market price of the security with ticker %q?", symbol)
	resp, err := c.client.Models.GenerateContent(ctx, model, genai.Text(prompt), config)
	if err != nil {
		return nil, fmt.Errorf("lookup failed for %q: %w", symbol, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("lookup for %q returned no content", symbol)
	}

	quote, err := parseQuote(resp.Candidates[0].Content.Parts[0].Text)
	if err != nil {
		return nil, fmt.Errorf("lookup for %q returned an unreadable answer: %w", symbol, err)
	}

	// the grounding chunks are better provenance than whatever the
	// model put in sourceUrls
	if urls := groundingURLs(resp.Candidates[0]); len(urls) > 0 {
		quote.SourceURLs = urls
	}
	return quote, nil
}

// FetchAnchorRate returns the current anchor to TWD rate from a public
// JSON endpoint (see rate.go).
func (c *Client) FetchAnchorRate(ctx context.Context) (float64, error) {
	return fetchAnchorRate(ctx)
}

// groundingURLs collects the web URLs the model grounded its answer on.
func groundingURLs(cand *genai.Candidate) []string {
	if cand.GroundingMetadata == nil {
		return nil
	}
	var urls []string
	for _, chunk := range cand.GroundingMetadata.GroundingChunks {
		if chunk.Web != nil && chunk.Web.URI != "" {
			urls = append(urls, chunk.Web.URI)
		}
	}
	return urls
}

// parseQuote extracts a quote from the model's reply. Models
// occasionally wrap the object in markdown fences or prose despite the
// instruction, so it reads from the first '{' to the last '}'.
func parseQuote(text string) (*folio.Quote, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in reply %q", text)
	}

	obj, err := decodeObject(text[start : end+1])
	if err != nil {
		return nil, err
	}

	price, err := jsonFloat(obj, "$.price")
	if err != nil {
		return nil, err
	}
	if price <= 0 {
		return nil, fmt.Errorf("reply has no usable price: %v", price)
	}

	quote := &folio.Quote{Price: price}
	quote.Name, _ = jsonString(obj, "$.name")
	quote.Currency, _ = jsonString(obj, "$.currency")
	quote.Currency = strings.ToUpper(strings.TrimSpace(quote.Currency))
	quote.SourceURLs, _ = jsonStrings(obj, "$.sourceUrls")
	return quote, nil
}
