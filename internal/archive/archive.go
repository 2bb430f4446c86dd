package archive

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"inventory/internal/registry"
	"inventory/pkg/models"
)

// Archive persists snapshots of the in-memory store to Postgres and
// restores them at boot. The in-memory store stays authoritative; the
// archive is the eventual backing store, written behind the live writes.
type Archive struct {
	db        *goqu.Database
	guard     *registry.Guard
	assets    *registry.Collection[*models.Asset]
	locations *registry.Collection[*models.StorageLocation]
	parts     *registry.Collection[*models.Part]
	stocks    *registry.Collection[*models.Stock]
	logger    *zap.Logger
}

func New(
	db *sql.DB,
	guard *registry.Guard,
	assets *registry.Collection[*models.Asset],
	locations *registry.Collection[*models.StorageLocation],
	parts *registry.Collection[*models.Part],
	stocks *registry.Collection[*models.Stock],
	logger *zap.Logger,
) *Archive {
	return &Archive{
		db:        goqu.New("postgres", db),
		guard:     guard,
		assets:    assets,
		locations: locations,
		parts:     parts,
		stocks:    stocks,
		logger:    logger,
	}
}

// Open connects to the archive database. The archive has exactly one
// background writer, so the pool is kept small on purpose.
func Open(dbURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("open archive database: %w", err)
	}
	db.SetMaxOpenConns(2)
	db.SetConnMaxIdleTime(time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping archive database: %w", err)
	}

	return db, nil
}

// Snapshot writes the current store contents to the archive tables in one
// transaction, replacing the previous snapshot.
func (a *Archive) Snapshot() error {
	a.guard.RLock()
	assets := a.assets.GetMatching(nil)
	locations := a.locations.GetMatching(nil)
	parts := a.parts.GetMatching(nil)
	stocks := a.stocks.GetMatching(nil)
	a.guard.RUnlock()

	err := withTransaction(a.db, func(tx *goqu.TxDatabase) error {
		for _, table := range []string{"stocks", "storage_locations", "parts", "assets"} {
			if _, err := tx.Delete(table).Executor().Exec(); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		if err := insertAll(tx, "assets", assets); err != nil {
			return err
		}
		if err := insertAll(tx, "storage_locations", locations); err != nil {
			return err
		}
		if err := insertAll(tx, "parts", parts); err != nil {
			return err
		}
		if err := insertAll(tx, "stocks", stocks); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	a.logger.Info("archive snapshot written",
		zap.Int("assets", len(assets)),
		zap.Int("storage_locations", len(locations)),
		zap.Int("parts", len(parts)),
		zap.Int("stocks", len(stocks)),
	)
	return nil
}

// Restore loads the archived snapshot into the in-memory collections.
// Listeners do not fire: the snapshot is already consistent.
func (a *Archive) Restore() error {
	var assets []models.Asset
	if err := a.db.From("assets").Order(goqu.I("id").Asc()).Executor().ScanStructs(&assets); err != nil {
		return fmt.Errorf("unable to select assets from archive: %w", err)
	}
	var locations []models.StorageLocation
	if err := a.db.From("storage_locations").Order(goqu.I("id").Asc()).Executor().ScanStructs(&locations); err != nil {
		return fmt.Errorf("unable to select storage locations from archive: %w", err)
	}
	var parts []models.Part
	if err := a.db.From("parts").Order(goqu.I("id").Asc()).Executor().ScanStructs(&parts); err != nil {
		return fmt.Errorf("unable to select parts from archive: %w", err)
	}
	var stocks []models.Stock
	if err := a.db.From("stocks").Order(goqu.I("id").Asc()).Executor().ScanStructs(&stocks); err != nil {
		return fmt.Errorf("unable to select stocks from archive: %w", err)
	}

	a.guard.Lock()
	defer a.guard.Unlock()
	a.assets.Restore(toPointers(assets))
	a.locations.Restore(toPointers(locations))
	a.parts.Restore(toPointers(parts))
	a.stocks.Restore(toPointers(stocks))

	a.logger.Info("archive snapshot restored",
		zap.Int("assets", len(assets)),
		zap.Int("storage_locations", len(locations)),
		zap.Int("parts", len(parts)),
		zap.Int("stocks", len(stocks)),
	)
	return nil
}

// Run snapshots on an interval until the context is cancelled, then takes
// one final snapshot on the way out.
func (a *Archive) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if err := a.Snapshot(); err != nil {
				a.logger.Error("final archive snapshot failed", zap.Error(err))
			}
			return
		case <-ticker.C:
			if err := a.Snapshot(); err != nil {
				a.logger.Error("archive snapshot failed", zap.Error(err))
			}
		}
	}
}

func insertAll[T any](tx *goqu.TxDatabase, table string, records []T) error {
	if len(records) == 0 {
		return nil
	}
	rows := make([]interface{}, len(records))
	for i, record := range records {
		rows[i] = record
	}
	if _, err := tx.Insert(table).Rows(rows...).Executor().Exec(); err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}
	return nil
}

func withTransaction(db *goqu.Database, fn func(tx *goqu.TxDatabase) error) (err error) {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	err = fn(tx)
	return
}

func toPointers[T any](records []T) []*T {
	out := make([]*T, len(records))
	for i := range records {
		out[i] = &records[i]
	}
	return out
}
