// Package sector maps equity symbols to sector labels.
package sector

import (
	"crypto/sha256"
	"encoding/hex"
	"maps"
	"slices"
)

// Registry is a read-only symbol to sector mapping.
type Registry struct {
	sectors map[string]string
}

// New builds a Registry from a copy of m.
func New(m map[string]string) *Registry {
	return &Registry{sectors: maps.Clone(m)}
}

// Lookup returns the sector for symbol. Unknown symbols report false.
func (r *Registry) Lookup(symbol string) (string, bool) {
	if r == nil {
		return "", false
	}
	s, ok := r.sectors[symbol]
	return s, ok
}

// With returns a new Registry with overrides applied on top of r.
func (r *Registry) With(overrides map[string]string) *Registry {
	merged := make(map[string]string, r.Len()+len(overrides))
	if r != nil {
		maps.Copy(merged, r.sectors)
	}
	maps.Copy(merged, overrides)
	return &Registry{sectors: merged}
}

// Len returns the number of mapped symbols.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.sectors)
}

// Symbols returns the mapped symbols in ascending order.
func (r *Registry) Symbols() []string {
	if r == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(r.sectors))
}

// Fingerprint is a stable digest of the whole mapping. Two registries share
// a fingerprint exactly when they map the same symbols to the same sectors.
func (r *Registry) Fingerprint() string {
	h := sha256.New()
	for _, sym := range r.Symbols() {
		h.Write([]byte(sym))
		h.Write([]byte{0})
		h.Write([]byte(r.sectors[sym]))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Nifty50 returns the default universe: the Nifty 50 constituents.
func Nifty50() *Registry {
	return New(map[string]string{
		"ADANIENT":   "MISCELLANEOUS",
		"ADANIPORTS": "MISCELLANEOUS",
		"APOLLOHOSP": "MISCELLANEOUS",
		"ASIANPAINT": "PAINTS",
		"AXISBANK":   "BANKING",
		"BAJAJ-AUTO": "AUTOMOBILES",
		"BAJAJFINSV": "FINANCE",
		"BAJFINANCE": "FINANCE",
		"BEL":        "DEFENCE",
		"BHARTIARTL": "TELECOM",
		"BPCL":       "ENERGY",
		"BRITANNIA":  "FOOD & TOBACCO",
		"CIPLA":      "PHARMACEUTICALS",
		"COALINDIA":  "MINING",
		"DRREDDY":    "PHARMACEUTICALS",
		"EICHERMOT":  "AUTOMOBILES",
		"GRASIM":     "TEXTILES",
		"HCLTECH":    "SOFTWARE",
		"HDFCBANK":   "BANKING",
		"HDFCLIFE":   "INSURANCE",
		"HEROMOTOCO": "AUTOMOBILES",
		"HINDALCO":   "ALUMINIUM",
		"HINDUNILVR": "FMCG",
		"ICICIBANK":  "BANKING",
		"INDUSINDBK": "BANKING",
		"INFY":       "SOFTWARE",
		"ITC":        "FOOD & TOBACCO",
		"JSWSTEEL":   "STEEL",
		"KOTAKBANK":  "BANKING",
		"LT":         "ENGINEERING",
		"M&M":        "AUTOMOBILES",
		"MARUTI":     "AUTOMOBILES",
		"NESTLEIND":  "FOOD & TOBACCO",
		"NTPC":       "POWER",
		"ONGC":       "ENERGY",
		"POWERGRID":  "POWER",
		"RELIANCE":   "ENERGY",
		"SBILIFE":    "INSURANCE",
		"SBIN":       "BANKING",
		"SHRIRAMFIN": "FINANCE",
		"SUNPHARMA":  "PHARMACEUTICALS",
		"TATACONSUM": "FMCG",
		"TATAMOTORS": "AUTOMOBILES",
		"TATASTEEL":  "STEEL",
		"TCS":        "SOFTWARE",
		"TECHM":      "SOFTWARE",
		"TITAN":      "RETAILING",
		"TRENT":      "RETAILING",
		"ULTRACEMCO": "CEMENT",
		"WIPRO":      "SOFTWARE",
	})
}
