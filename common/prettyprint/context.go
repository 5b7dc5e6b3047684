package prettyprint

import "context"

// ContextKeyTokenSymbol is the key to retrieve the SNS token's ticker symbol
// from a context.
var ContextKeyTokenSymbol = contextKey("sns/token-symbol")

type contextKey string

// TokenSymbol returns the token symbol stored in the context, or the
// provided fallback.
func TokenSymbol(ctx context.Context, fallback string) string {
	if symbol, ok := ctx.Value(ContextKeyTokenSymbol).(string); ok && symbol != "" {
		return symbol
	}
	return fallback
}
