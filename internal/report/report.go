// Package report renders pipeline results for people: a console report
// and a short HTML digest for chat delivery.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"MarketLens/internal/model"
)

// Summary is the market summary as display strings.
type Summary struct {
	TotalStocks    string
	GreenStocks    string
	RedStocks      string
	AvgClosePrice  string // 1,234.56
	AvgDailyVolume string // 1,234,567
	GreenPercent   string // 66.7%
}

const missing = "n/a"

// FormatSummary formats the market summary with thousands separators.
func FormatSummary(s model.MarketSummary) Summary {
	return Summary{
		TotalStocks:    humanize.Comma(int64(s.TotalStocks)),
		GreenStocks:    humanize.Comma(int64(s.GreenStocks)),
		RedStocks:      humanize.Comma(int64(s.RedStocks)),
		AvgClosePrice:  money(s.AvgClosePrice),
		AvgDailyVolume: count(s.AvgDailyVolume),
		GreenPercent:   percent(s.GreenPercent),
	}
}

func money(v float64) string {
	if math.IsNaN(v) {
		return missing
	}
	return humanize.FormatFloat("#,###.##", v)
}

func count(v float64) string {
	if math.IsNaN(v) {
		return missing
	}
	return humanize.Comma(int64(math.Round(v)))
}

func percent(v float64) string {
	if math.IsNaN(v) {
		return missing
	}
	return fmt.Sprintf("%.1f%%", v)
}

func pct2(v float64) string {
	if math.IsNaN(v) {
		return missing
	}
	return fmt.Sprintf("%+.2f%%", v)
}

// Write renders the console report.
func Write(w io.Writer, res *model.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	s := FormatSummary(res.Summary)

	fmt.Fprintln(tw, "== Market summary ==")
	fmt.Fprintf(tw, "Total stocks\t%s\n", s.TotalStocks)
	fmt.Fprintf(tw, "Green / Red\t%s / %s (%s green)\n", s.GreenStocks, s.RedStocks, s.GreenPercent)
	fmt.Fprintf(tw, "Avg close price\t%s\n", s.AvgClosePrice)
	fmt.Fprintf(tw, "Avg daily volume\t%s\n", s.AvgDailyVolume)

	writePerformance(tw, "Top gainers", res.Yearly.TopGainers)
	writePerformance(tw, "Top losers", res.Yearly.TopLosers)
	writePerformance(tw, "Most volatile", res.Yearly.TopVolatile)

	fmt.Fprintln(tw, "\n== Sector performance ==")
	fmt.Fprintln(tw, "SECTOR\tAVG RETURN")
	for _, e := range res.Sectors {
		fmt.Fprintf(tw, "%s\t%s\n", e.Sector, pct2(e.AvgYearlyReturnPct))
	}

	if month, rows := latestMonth(res.MonthlyRanking); len(rows) > 0 {
		fmt.Fprintf(tw, "\n== Monthly ranking %s ==\n", month)
		fmt.Fprintln(tw, "TYPE\tSYMBOL\tRETURN")
		for _, e := range rows {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Type, e.Symbol, pct2(e.MonthlyReturnPct))
		}
	}

	return tw.Flush()
}

func writePerformance(w io.Writer, title string, rows []model.YearlyPerformanceEntry) {
	fmt.Fprintf(w, "\n== %s ==\n", title)
	fmt.Fprintln(w, "SYMBOL\tRETURN\tVOLATILITY")
	for _, e := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.Symbol, pct2(e.YearlyReturnPct), pct2(e.AnnualizedVolatilityPct))
	}
}

// latestMonth returns the rows of the last month in the ranking.
func latestMonth(ranking []model.MonthlyRankingEntry) (string, []model.MonthlyRankingEntry) {
	if len(ranking) == 0 {
		return "", nil
	}
	month := ranking[len(ranking)-1].MonthYear
	start := len(ranking)
	for start > 0 && ranking[start-1].MonthYear == month {
		start--
	}
	return month, ranking[start:]
}

// Digest formats a short HTML message for Telegram.
func Digest(res *model.Result, cacheHit bool) string {
	var b strings.Builder
	s := FormatSummary(res.Summary)

	b.WriteString("📊 <b>MarketLens run</b>")
	if cacheHit {
		b.WriteString(" (cached)")
	}
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Stocks: %s | 🟢 %s | 🔴 %s (%s green)\n", s.TotalStocks, s.GreenStocks, s.RedStocks, s.GreenPercent))
	b.WriteString(fmt.Sprintf("Avg close: %s | Avg volume: %s\n", s.AvgClosePrice, s.AvgDailyVolume))

	if len(res.Yearly.TopGainers) > 0 {
		e := res.Yearly.TopGainers[0]
		b.WriteString(fmt.Sprintf("\n📈 Best: <b>%s</b> %s\n", e.Symbol, pct2(e.YearlyReturnPct)))
	}
	if len(res.Yearly.TopLosers) > 0 {
		e := res.Yearly.TopLosers[0]
		b.WriteString(fmt.Sprintf("📉 Worst: <b>%s</b> %s\n", e.Symbol, pct2(e.YearlyReturnPct)))
	}
	if len(res.Sectors) > 0 {
		best := res.Sectors[0]
		for _, e := range res.Sectors[1:] {
			if e.AvgYearlyReturnPct > best.AvgYearlyReturnPct {
				best = e
			}
		}
		b.WriteString(fmt.Sprintf("🏭 Top sector: %s %s\n", best.Sector, pct2(best.AvgYearlyReturnPct)))
	}
	return b.String()
}
