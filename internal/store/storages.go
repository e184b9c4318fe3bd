package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/config"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/logger"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/utils"
)

// Backend names reported by [Storages.Backend].
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendMongo    = "mongodb"
)

// Storages bundles the repositories of the selected backend.
type Storages struct {
	FoodRepository  FoodRepository
	OrderRepository OrderRepository
	Transactor      Transactor

	backend    string
	classifier ErrorClassificator
	close      func(ctx context.Context) error
}

// NewStorages connects to the backend selected by the scheme of cfg.DSN.
// SQL backends are migrated before use.
func NewStorages(ctx context.Context, cfg config.DB, log *logger.Logger) (*Storages, error) {
	generateID := utils.NewUUIDGenerator().Generate

	switch backend, target := parseDSN(cfg.DSN); backend {
	case BackendPostgres:
		db, err := NewConnectPostgres(ctx, target, log)
		if err != nil {
			return nil, err
		}
		return newSQLStorages(db, backend, generateID, log)

	case BackendSQLite:
		db, err := NewConnectSQLite(ctx, target, log)
		if err != nil {
			return nil, err
		}
		return newSQLStorages(db, backend, generateID, log)

	case BackendMongo:
		db, err := NewConnectMongo(ctx, target, cfg.MongoDatabase, cfg.MongoTransactions, log)
		if err != nil {
			return nil, err
		}
		return &Storages{
			FoodRepository:  NewMongoFoodRepository(db.Foods(), generateID),
			OrderRepository: NewMongoOrderRepository(db.Orders(), generateID),
			Transactor:      db,
			backend:         backend,
			classifier:      NewMongoErrorClassifier(),
			close:           db.Close,
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDatabase, cfg.DSN)
	}
}

func newSQLStorages(db *DB, backend string, generateID func() string, log *logger.Logger) (*Storages, error) {
	if err := db.Migrate(); err != nil {
		log.Err(err).Str("func", "newSQLStorages").Str("backend", backend).Msg("failed to migrate database")
		_ = db.Close()
		return nil, err
	}

	return &Storages{
		FoodRepository:  NewFoodRepository(db, generateID),
		OrderRepository: NewOrderRepository(db, generateID),
		Transactor:      db,
		backend:         backend,
		classifier:      db.errorClassificator,
		close:           func(context.Context) error { return db.Close() },
	}, nil
}

// parseDSN returns the backend selected by the URI scheme and the target
// handed to its driver. Unknown schemes return an empty backend.
func parseDSN(dsn string) (backend, target string) {
	lower := strings.ToLower(dsn)

	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return BackendPostgres, dsn
	case strings.HasPrefix(lower, "sqlite://"):
		return BackendSQLite, dsn[len("sqlite://"):]
	case strings.HasPrefix(lower, "mongodb://"), strings.HasPrefix(lower, "mongodb+srv://"):
		return BackendMongo, dsn
	}

	return "", dsn
}

// Backend returns the name of the connected backend.
func (s *Storages) Backend() string {
	return s.backend
}

// IsRetryable reports whether err is a transient failure of the backend.
func (s *Storages) IsRetryable(err error) bool {
	if s.classifier == nil {
		return false
	}
	return s.classifier.Classify(err) == Retryable
}

// Close releases the backend connection.
func (s *Storages) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}
