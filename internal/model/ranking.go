package model

// RankType tags a monthly ranking row.
type RankType string

const (
	RankGainer RankType = "Gainer"
	RankLoser  RankType = "Loser"
)

// MonthlyRankingEntry is one row of the monthly gainers/losers table.
type MonthlyRankingEntry struct {
	Symbol           string
	MonthYear        string // "2006-01"
	MonthlyReturnPct float64
	Type             RankType
}

// CorrelationCell is one cell of the correlation matrix.
type CorrelationCell struct {
	SymbolA     string
	SymbolB     string
	Coefficient float64
}

// CorrelationMatrix is a symmetric matrix of closing-price correlations.
// Values[i][j] correlates Symbols[i] with Symbols[j].
type CorrelationMatrix struct {
	Symbols []string
	Values  [][]float64
}

// At returns the coefficient for a pair of symbols.
func (m *CorrelationMatrix) At(a, b string) (float64, bool) {
	i, j := m.index(a), m.index(b)
	if i < 0 || j < 0 {
		return 0, false
	}
	return m.Values[i][j], true
}

// Cells flattens the matrix row by row.
func (m *CorrelationMatrix) Cells() []CorrelationCell {
	cells := make([]CorrelationCell, 0, len(m.Symbols)*len(m.Symbols))
	for i, a := range m.Symbols {
		for j, b := range m.Symbols {
			cells = append(cells, CorrelationCell{SymbolA: a, SymbolB: b, Coefficient: m.Values[i][j]})
		}
	}
	return cells
}

func (m *CorrelationMatrix) index(symbol string) int {
	for i, s := range m.Symbols {
		if s == symbol {
			return i
		}
	}
	return -1
}
