package collector

import (
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketLens/internal/model"
	"MarketLens/internal/sector"
)

var testRegistry = sector.New(map[string]string{"AAA": "TECH", "BBB": "BANKING", "CCC": "ENERGY"})

func newCollector(payloads map[string]string) *Collector {
	return NewCollector(&MemorySource{Payloads: payloads}, testRegistry, zerolog.Nop())
}

func date(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }

func TestCollect_ScenarioA(t *testing.T) {
	c := newCollector(map[string]string{
		"AAA_2024.csv": "date,open,high,low,close,volume\n" +
			"2024-01-01,100,101,99,100,1000\n" +
			"2024-01-02,100,111,99,110,2000\n" +
			"2024-01-03,110,122,109,121,3000\n",
		"BBB_2024.csv": "date,open,high,low,close,volume\n" +
			"2024-01-01,50,51,49,50,10\n" +
			"2024-01-02,50,51,44,45,10\n" +
			"2024-01-03,45,46,39,40,10\n",
	})

	ds, err := c.Collect()
	require.NoError(t, err)
	rows := ds.Rows()
	require.Len(t, rows, 6)

	assert.Equal(t, "AAA", rows[0].Symbol)
	assert.Equal(t, "TECH", rows[0].Sector)
	assert.Equal(t, date(1), rows[0].Date)
	assert.Equal(t, 0.0, rows[0].DailyReturn)
	assert.InDelta(t, 0.10, rows[1].DailyReturn, 1e-12)
	assert.InDelta(t, 0.10, rows[2].DailyReturn, 1e-12)

	assert.Equal(t, "BBB", rows[3].Symbol)
	assert.Equal(t, 0.0, rows[3].DailyReturn, "returns restart per symbol")
	assert.InDelta(t, -0.10, rows[4].DailyReturn, 1e-12)
	assert.Equal(t, 1000.0, rows[0].Volume)
}

func TestCollect_DailyReturnMatchesRatio(t *testing.T) {
	c := newCollector(map[string]string{
		"CCC.csv": "date,open,high,low,close,volume\n" +
			"2024-01-05,1,1,1,13.7,1\n" +
			"2024-01-02,1,1,1,12.1,1\n" +
			"2024-01-03,1,1,1,12.9,1\n" +
			"2024-01-04,1,1,1,11.3,1\n",
	})
	ds, err := c.Collect()
	require.NoError(t, err)

	rows := ds.Rows()
	assert.Equal(t, 0.0, rows[0].DailyReturn)
	for i := 1; i < len(rows); i++ {
		assert.True(t, rows[i].Date.After(rows[i-1].Date))
		want := (rows[i].Close - rows[i-1].Close) / rows[i-1].Close
		assert.InDelta(t, want, rows[i].DailyReturn, 1e-12)
	}
}

func TestCollect_SymbolResolution(t *testing.T) {
	c := newCollector(map[string]string{
		"whatever.csv": "Ticker,date,open,high,low,close,volume\n" +
			"BBB,2024-01-02,1,1,1,2,1\n" +
			"AAA,2024-01-02,1,1,1,3,1\n",
		"other_file.csv": "SYMBOL,Date,Open,High,Low,Close,Volume\n" +
			"CCC,2024-01-02,1,1,1,4,1\n",
		"DDD_prices_2024.csv": "date,open,high,low,close,volume\n" +
			"2024-01-02,1,1,1,5,1\n",
	})
	ds, err := c.Collect()
	require.NoError(t, err)

	assert.Equal(t, []string{"AAA", "BBB", "CCC", "DDD"}, ds.Symbols())
	rows := ds.Rows()
	assert.Equal(t, "", rows[3].Sector, "unmapped symbols get an empty sector")
}

func TestCollect_ScenarioB_SchemaErrorSkipsFile(t *testing.T) {
	c := newCollector(map[string]string{
		"AAA.csv": "date,open,high,low,close,volume\n2024-01-01,1,1,1,10,5\n",
		"BBB.csv": "date,open,high,low,close\n2024-01-01,1,1,1,10\n",
	})
	ds, err := c.Collect()
	require.NoError(t, err)
	assert.Equal(t, []string{"AAA"}, ds.Symbols())
}

func TestParseFile_SchemaErrorNamesColumnsAndFile(t *testing.T) {
	_, err := parseFile("BBB.csv", strings.NewReader("date,open,close\n"))
	require.Error(t, err)

	var se *model.SchemaError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "BBB.csv", se.File)
	assert.Equal(t, []string{"high", "low", "volume"}, se.Missing)
	assert.True(t, errors.Is(err, model.ErrSchema))
}

func TestCollect_CoercionAndDrops(t *testing.T) {
	c := newCollector(map[string]string{
		"AAA.csv": "date,open,high,low,close,volume\n" +
			"2024-01-01,abc,1,1,10,\n" + // bad open and empty volume kept as NaN
			"not-a-date,1,1,1,11,1\n" + // dropped: date
			"2024-01-03,1,1,1,,1\n" + // dropped: close
			"2024-01-04,1,1,1,n/a,1\n" + // dropped: close
			"2024-01-05,1,1,1,\"1,234.5\",1\n",
	})
	ds, err := c.Collect()
	require.NoError(t, err)

	rows := ds.Rows()
	require.Len(t, rows, 2)
	assert.True(t, math.IsNaN(rows[0].Open))
	assert.True(t, math.IsNaN(rows[0].Volume))
	assert.Equal(t, 1234.5, rows[1].Close)
	assert.Equal(t, date(5), rows[1].Date)
}

func TestCollect_DataAvailabilityError(t *testing.T) {
	c := newCollector(map[string]string{
		"AAA.csv": "date,open,high,low,close,volume\nbad,1,1,1,1,1\n",
		"BBB.csv": "date,close\n2024-01-01,1\n",
	})
	_, err := c.Collect()
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrDataAvailability))
}

func TestCollect_ScenarioC_MissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "does-not-exist")
	c := NewCollector(NewDirSource(dir), testRegistry, zerolog.Nop())

	_, err := c.Collect()
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrConfiguration))
	assert.Contains(t, err.Error(), dir)
}

func TestDirSource_ReadsOnlyCSV(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	write("BBB.csv", "date,open,high,low,close,volume\n2024-01-02,1,1,1,2,1\n2024-01-01,1,1,1,1,1\n")
	write("AAA.CSV", "date,open,high,low,close,volume\n2024-01-01,1,1,1,3,1\n")
	write("notes.txt", "ignore me")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.csv"), 0o755))

	files, err := NewDirSource(dir).Files()
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "AAA.CSV", files[0].Name)

	ds, err := NewCollector(NewDirSource(dir), testRegistry, zerolog.Nop()).Collect()
	require.NoError(t, err)
	rows := ds.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, date(1), rows[1].Date)
	assert.Equal(t, date(2), rows[2].Date)
}

func TestParseDate(t *testing.T) {
	for _, s := range []string{"2024-03-05", "2024-03-05 09:15:00", "2024-03-05T09:15:00", "2024/03/05", "03-05-2024", "03/05/2024"} {
		got, ok := parseDate(s)
		require.True(t, ok, s)
		assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), got, s)
	}
	got, ok := parseDate("05-01-2024")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), got, "dash dates are month first, like slash dates")

	_, ok = parseDate("31-01-2024")
	assert.False(t, ok)
	_, ok = parseDate("yesterday")
	assert.False(t, ok)
}

func TestBuffer(t *testing.T) {
	opens := 0
	versions := []string{"first", "second"}
	files := Buffer([]SourceFile{
		{Name: "a.csv", Open: func() (io.ReadCloser, error) {
			body := versions[min(opens, 1)]
			opens++
			return io.NopCloser(strings.NewReader(body)), nil
		}},
		{Name: "b.csv", Open: func() (io.ReadCloser, error) { return nil, os.ErrNotExist }},
	})
	require.Len(t, files, 2)
	assert.Equal(t, 1, opens)

	for range 2 {
		rc, err := files[0].Open()
		require.NoError(t, err)
		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "first", string(body))
	}
	assert.Equal(t, 1, opens)

	_, err := files[1].Open()
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "b.csv")
	_, err = files[1].Open()
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestSymbolFromFileName(t *testing.T) {
	assert.Equal(t, "TCS", symbolFromFileName("TCS.csv"))
	assert.Equal(t, "BAJAJ-AUTO", symbolFromFileName("BAJAJ-AUTO_2024.csv"))
	assert.Equal(t, "M&M", symbolFromFileName("M&M_daily_prices.csv"))
}
