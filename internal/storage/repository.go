package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"finance/internal/core"
	applog "finance/internal/log"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// SQLRepository implements ports.TransactionStore over database/sql.
type SQLRepository struct {
	db      *sql.DB
	queries *Queries
	logger  *applog.Logger
}

// SQLiteDSN builds the connection string for a sqlite file.
func SQLiteDSN(dbPath string) string {
	return dbPath + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
}

// NewSQLiteRepository opens (creating if needed) a sqlite database file and
// migrates it.
func NewSQLiteRepository(dbPath string, logger *applog.Logger) (*SQLRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}
	return Open(DialectSQLite, SQLiteDSN(dbPath), logger)
}

// NewPostgresRepository connects to postgres and migrates it.
func NewPostgresRepository(databaseURL string, logger *applog.Logger) (*SQLRepository, error) {
	return Open(DialectPostgres, databaseURL, logger)
}

// Open connects with the given dialect, runs migrations and returns a
// ready repository.
func Open(dialect Dialect, dsn string, logger *applog.Logger) (*SQLRepository, error) {
	if logger == nil {
		logger = applog.NewDefault()
	}

	db, err := sql.Open(dialect.driverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", dialect, err)
	}
	if dialect == DialectSQLite {
		// One writer at a time avoids SQLITE_BUSY under concurrent requests.
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dialect, dsn); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLRepository{
		db:      db,
		queries: New(db, dialect),
		logger:  logger.WithComponent("storage"),
	}, nil
}

func (r *SQLRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping implements ports.HealthChecker.
func (r *SQLRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLRepository) ListByUser(ctx context.Context, userID string) ([]core.Transaction, error) {
	rows, err := r.queries.ListTransactionsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	txs := make([]core.Transaction, len(rows))
	for i, row := range rows {
		txs[i] = row.toCore()
	}
	return txs, nil
}

func (r *SQLRepository) Create(ctx context.Context, nt core.NewTransaction) (core.Transaction, error) {
	row, err := r.queries.CreateTransaction(ctx, CreateTransactionParams{
		UserID:      nt.UserID,
		Title:       nt.Title,
		AmountCents: nt.Amount.Cents,
		Category:    nt.Category,
	})
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	r.logger.DebugContext(ctx, "Transaction saved",
		applog.FieldTransactionID, row.ID,
		applog.FieldUserID, row.UserID,
		applog.FieldAmount, row.AmountCents)

	return row.toCore(), nil
}

func (r *SQLRepository) DeleteByID(ctx context.Context, id int64) (core.Transaction, error) {
	row, err := r.queries.DeleteTransaction(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, core.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("delete transaction: %w", err)
	}

	r.logger.DebugContext(ctx, "Transaction deleted", applog.FieldTransactionID, id)
	return row.toCore(), nil
}

func (r *SQLRepository) SumsByUser(ctx context.Context, userID string) (core.Summary, error) {
	balance, err := r.queries.GetBalance(ctx, userID)
	if err != nil {
		return core.Summary{}, fmt.Errorf("get balance: %w", err)
	}
	income, err := r.queries.GetIncome(ctx, userID)
	if err != nil {
		return core.Summary{}, fmt.Errorf("get income: %w", err)
	}
	expense, err := r.queries.GetExpense(ctx, userID)
	if err != nil {
		return core.Summary{}, fmt.Errorf("get expense: %w", err)
	}

	return core.Summary{
		Balance: core.Money{Cents: balance},
		Income:  core.Money{Cents: income},
		Expense: core.Money{Cents: expense},
	}, nil
}
