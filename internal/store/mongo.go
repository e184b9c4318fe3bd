package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names of existing deployments. Their documents may carry
// ObjectId ids, which [idFilter] matches alongside string ids.
const (
	foodsCollection  = "my-foods"
	ordersCollection = "my-orders"
)

// idFilter matches a document by id. Ids written by this server are
// strings; a 24-hex id also matches the ObjectId of the same value.
func idFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": bson.M{"$in": bson.A{id, oid}}}
	}
	return bson.M{"_id": id}
}

// isObjectIDHex reports whether id may name an ObjectId document.
func isObjectIDHex(id string) bool {
	return primitive.IsValidObjectID(id)
}

// MongoDB is a MongoDB connection shared by the document-store repositories.
// It implements [Transactor].
type MongoDB struct {
	client       *mongo.Client
	database     *mongo.Database
	transactions bool
	logger       *logger.Logger
}

// NewConnectMongo connects to uri, pings the deployment and prepares the
// indexes used by the listing queries. transactions enables multi-document
// transactions, which require a replica set.
func NewConnectMongo(ctx context.Context, uri, database string, transactions bool, log *logger.Logger) (*MongoDB, error) {
	clientOpts := options.Client().ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(10)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		log.Err(err).Str("func", "NewConnectMongo").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	if err = client.Ping(ctx, nil); err != nil {
		log.Err(err).Str("func", "NewConnectMongo").Msg("error connecting database (ping)")
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	log.Info().
		Str("func", "NewConnectMongo").
		Str("database", database).
		Bool("transactions", transactions).
		Msg("connected to database successfully")

	db := &MongoDB{
		client:       client,
		database:     client.Database(database),
		transactions: transactions,
		logger:       log,
	}

	if err = db.EnsureIndexes(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectMongo").Msg("failed to create indexes")
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return db, nil
}

// EnsureIndexes creates the indexes backing the ranking, listing and order queries.
func (m *MongoDB) EnsureIndexes(ctx context.Context) error {
	_, err := m.database.Collection(foodsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "purchaseCount", Value: -1}, {Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}},
		{Keys: bson.D{{Key: "buyer.email", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	_, err = m.database.Collection(ordersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}, {Key: "date", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// Foods returns the listings collection.
func (m *MongoDB) Foods() *mongo.Collection {
	return m.database.Collection(foodsCollection)
}

// Orders returns the orders collection.
func (m *MongoDB) Orders() *mongo.Collection {
	return m.database.Collection(ordersCollection)
}

// WithinTransaction implements [Transactor]. Without transaction support fn
// runs directly and its writes are applied one by one.
func (m *MongoDB) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !m.transactions || mongo.SessionFromContext(ctx) != nil {
		return fn(ctx)
	}

	session, err := m.client.StartSession()
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "MongoDB.WithinTransaction").Msg("failed to start session")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer session.EndSession(context.WithoutCancel(ctx))

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})

	return err
}

// Atomic implements [Transactor].
func (m *MongoDB) Atomic() bool {
	return m.transactions
}

// Close disconnects the client.
func (m *MongoDB) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// MongoErrorClassifier implements [ErrorClassificator] for the mongo driver.
type MongoErrorClassifier struct{}

func NewMongoErrorClassifier() *MongoErrorClassifier {
	return &MongoErrorClassifier{}
}

// Classify treats network errors, timeouts and transient transaction
// errors as retryable.
func (c *MongoErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return NonRetryable
	}

	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return Retryable
	}

	var labeled mongo.LabeledError
	if errors.As(err, &labeled) && labeled.HasErrorLabel("TransientTransactionError") {
		return Retryable
	}

	return NonRetryable
}

// IsUniqueViolation implements [ErrorClassificator].
func (c *MongoErrorClassifier) IsUniqueViolation(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
