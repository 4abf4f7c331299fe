package models

// CoinInfo describes a quoted trading pair for display.
type CoinInfo struct {
	Name   string
	Symbol string
}

// Coins holds the display info of every pair the dashboard quotes.
var Coins = map[string]CoinInfo{
	"BTCUSDT":  {"Bitcoin", "BTC"},
	"ETHUSDT":  {"Ethereum", "ETH"},
	"XRPUSDT":  {"XRP", "XRP"},
	"DOGEUSDT": {"Dogecoin", "DOGE"},
	"ADAUSDT":  {"Cardano", "ADA"},
	"SOLUSDT":  {"Solana", "SOL"},
	"DOTUSDT":  {"Polkadot", "DOT"},
	"LINKUSDT": {"Chainlink", "LINK"},
}

// DefaultSymbols is the canonical order of quoted pairs.
var DefaultSymbols = []string{
	"BTCUSDT",
	"ETHUSDT",
	"XRPUSDT",
	"DOGEUSDT",
	"ADAUSDT",
	"SOLUSDT",
	"DOTUSDT",
	"LINKUSDT",
}
