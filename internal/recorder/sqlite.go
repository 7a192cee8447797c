package recorder

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"MarketLens/internal/model"
)

// Table names in the relational store.
const (
	TableMaster  = "master_stock_data"
	TableYearly  = "YearlyPerformance"
	TableSector  = "SectorPerformance"
	TableMonthly = "MonthlyRanking"
	TableSummary = "MarketSummary"
)

// SQLiteRecorder persists analysis tables to a SQLite database.
type SQLiteRecorder struct {
	db   *sql.DB
	mu   sync.Mutex
	path string
	log  zerolog.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database.
func NewSQLiteRecorder(dbPath string, log zerolog.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets dashboards read while a run rewrites the tables.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, path: dbPath, log: log.With().Str("component", "sqlite").Logger()}
	r.log.Info().Str("path", dbPath).Msg("SQLite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) Name() string { return "sqlite:" + r.path }

// table is one replaced-wholesale table: its DDL, insert statement and rows.
type table struct {
	name   string
	ddl    string
	insert string
	rows   [][]any
}

// Record drops, recreates and fills all five tables in one transaction.
func (r *SQLiteRecorder) Record(ctx context.Context, res *model.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tables := buildTables(res)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, t := range tables {
		if err := writeTable(ctx, tx, t); err != nil {
			return fmt.Errorf("table %s: %w", t.name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	r.log.Info().Int("tables", len(tables)).Int("master_rows", len(tables[0].rows)).Msg("Saved analysis tables")
	return nil
}

func writeTable(ctx context.Context, tx *sql.Tx, t table) error {
	if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS "`+t.name+`"`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, t.ddl); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, t.insert)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, row := range t.rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return err
		}
	}
	return nil
}

func buildTables(res *model.Result) []table {
	master := table{
		name: TableMaster,
		ddl: `CREATE TABLE "master_stock_data" (
			"Symbol"       TEXT,
			"Date"         TEXT,
			"open"         REAL,
			"high"         REAL,
			"low"          REAL,
			"close"        REAL,
			"volume"       REAL,
			"Sector"       TEXT,
			"Daily_Return" REAL
		)`,
		insert: `INSERT INTO "master_stock_data" VALUES (?,?,?,?,?,?,?,?,?)`,
	}
	for _, d := range res.Dataset.Rows() {
		master.rows = append(master.rows, []any{
			d.Symbol, d.Date.Format(time.DateOnly),
			nullable(d.Open), nullable(d.High), nullable(d.Low), nullable(d.Close), nullable(d.Volume),
			d.Sector, nullable(d.DailyReturn),
		})
	}

	yearly := table{
		name: TableYearly,
		ddl: `CREATE TABLE "YearlyPerformance" (
			"Symbol"                    TEXT PRIMARY KEY,
			"Yearly Return (%)"         REAL,
			"Annualized Volatility (%)" REAL
		)`,
		insert: `INSERT INTO "YearlyPerformance" VALUES (?,?,?)`,
	}
	for _, e := range res.Yearly.Table {
		yearly.rows = append(yearly.rows, []any{e.Symbol, nullable(e.YearlyReturnPct), nullable(e.AnnualizedVolatilityPct)})
	}

	sectors := table{
		name: TableSector,
		ddl: `CREATE TABLE "SectorPerformance" (
			"Sector"                TEXT PRIMARY KEY,
			"Avg Yearly Return (%)" REAL
		)`,
		insert: `INSERT INTO "SectorPerformance" VALUES (?,?)`,
	}
	for _, e := range res.Sectors {
		sectors.rows = append(sectors.rows, []any{e.Sector, nullable(e.AvgYearlyReturnPct)})
	}

	monthly := table{
		name: TableMonthly,
		ddl: `CREATE TABLE "MonthlyRanking" (
			"Symbol"         TEXT,
			"Month_Year"     TEXT,
			"Monthly_Return" REAL,
			"Type"           TEXT
		)`,
		insert: `INSERT INTO "MonthlyRanking" VALUES (?,?,?,?)`,
	}
	for _, e := range res.MonthlyRanking {
		monthly.rows = append(monthly.rows, []any{e.Symbol, e.MonthYear, nullable(e.MonthlyReturnPct), string(e.Type)})
	}

	s := res.Summary
	summary := table{
		name: TableSummary,
		ddl: `CREATE TABLE "MarketSummary" (
			"Total Stocks"     INTEGER,
			"Green Stocks"     INTEGER,
			"Red Stocks"       INTEGER,
			"Avg Close Price"  REAL,
			"Avg Daily Volume" REAL,
			"Green Percent"    REAL
		)`,
		insert: `INSERT INTO "MarketSummary" VALUES (?,?,?,?,?,?)`,
		rows: [][]any{{
			s.TotalStocks, s.GreenStocks, s.RedStocks,
			nullable(s.AvgClosePrice), nullable(s.AvgDailyVolume), nullable(s.GreenPercent),
		}},
	}

	return []table{master, yearly, sectors, monthly, summary}
}

// Close closes the database connection.
func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}
