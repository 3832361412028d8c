package folio

import "context"

// Quote is the answer of the price lookup oracle for one symbol.
type Quote struct {
	Price      float64
	Name       string
	Currency   string
	SourceURLs []string
}

// Oracle is the external price and exchange-rate lookup service. The
// tracker treats it as an opaque asynchronous collaborator: a failed
// lookup means "no update, keep prior values", never a crash.
type Oracle interface {
	// FetchPrice returns the latest quote for a ticker, or an error on
	// any failure (network, parse, schema mismatch).
	FetchPrice(ctx context.Context, symbol string) (*Quote, error)

	// FetchAnchorRate returns the current anchor to base exchange
	// rate. On failure the caller falls back to FallbackAnchorRate.
	FetchAnchorRate(ctx context.Context) (float64, error)
}
