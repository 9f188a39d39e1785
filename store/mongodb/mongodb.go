package mongodb

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"inkwell-server/store"
)

const defaultOpTimeout = 10 * time.Second

// Store implements store.Store over a MongoDB database.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens a client, pings the deployment and creates the unique
// indexes the system depends on.
func Connect(ctx context.Context, uri, dbName string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "error connecting to mongodb")
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultOpTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, errors.Wrap(err, "error pinging mongodb")
	}

	s := &Store{client: client, db: client.Database(dbName)}
	if err := s.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	for _, idx := range store.UniqueIndexes() {
		keys := bson.D{}
		for _, field := range idx.Fields {
			keys = append(keys, bson.E{Key: field, Value: 1})
		}
		_, err := s.db.Collection(idx.Collection).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    keys,
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return errors.Wrapf(err, "error creating unique index on %s", idx.Collection)
		}
	}
	return nil
}

func (s *Store) Get(ctx context.Context, collection, id string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultOpTimeout)
	defer cancel()

	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(out)
	if err == mongo.ErrNoDocuments {
		return store.ErrNotFound
	}
	if err != nil {
		return errors.Wrap(err, "error fetching document")
	}
	return nil
}

func (s *Store) Find(ctx context.Context, collection string, filter store.Filter, opts store.FindOptions, out any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultOpTimeout)
	defer cancel()

	findOpts := options.Find()
	if opts.SortField != "" {
		order := 1
		if opts.SortDesc {
			order = -1
		}
		findOpts.SetSort(bson.D{{Key: opts.SortField, Value: order}})
	}
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}

	cursor, err := s.db.Collection(collection).Find(ctx, toBson(filter), findOpts)
	if err != nil {
		return errors.Wrap(err, "error querying documents")
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, out); err != nil {
		return errors.Wrap(err, "error decoding documents")
	}
	return nil
}

func (s *Store) Create(ctx context.Context, collection string, doc any) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultOpTimeout)
	defer cancel()

	raw, err := bson.Marshal(doc)
	if err != nil {
		return "", errors.Wrap(err, "error encoding document")
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return "", errors.Wrap(err, "error decoding document")
	}

	id, _ := m["_id"].(string)
	if id == "" {
		id = primitive.NewObjectID().Hex()
		m["_id"] = id
	}

	_, err = s.db.Collection(collection).InsertOne(ctx, m)
	if mongo.IsDuplicateKeyError(err) {
		return "", store.ErrDuplicate
	}
	if err != nil {
		return "", errors.Wrap(err, "error inserting document")
	}
	return id, nil
}

func (s *Store) UpdateById(ctx context.Context, collection, id string, patch store.Patch) error {
	ctx, cancel := context.WithTimeout(ctx, defaultOpTimeout)
	defer cancel()

	res, err := s.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M(patch)})
	if err != nil {
		return errors.Wrap(err, "error updating document")
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteById(ctx context.Context, collection, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultOpTimeout)
	defer cancel()

	_, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "error deleting document")
	}
	return nil
}

func (s *Store) DeleteMany(ctx context.Context, collection string, filter store.Filter) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultOpTimeout)
	defer cancel()

	res, err := s.db.Collection(collection).DeleteMany(ctx, toBson(filter))
	if err != nil {
		return 0, errors.Wrap(err, "error deleting documents")
	}
	return res.DeletedCount, nil
}

func (s *Store) Count(ctx context.Context, collection string, filter store.Filter) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultOpTimeout)
	defer cancel()

	n, err := s.db.Collection(collection).CountDocuments(ctx, toBson(filter))
	if err != nil {
		return 0, errors.Wrap(err, "error counting documents")
	}
	return n, nil
}

func (s *Store) AggregateGroupBy(ctx context.Context, collection string, filter store.Filter, groupField string) (map[string]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultOpTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: toBson(filter)}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$" + groupField,
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := s.db.Collection(collection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errors.Wrap(err, "error aggregating documents")
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Id    string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, errors.Wrap(err, "error decoding aggregation")
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Id] = row.Count
	}
	return counts, nil
}

func toBson(filter store.Filter) bson.M {
	m := bson.M{}
	for field, v := range filter {
		if in, ok := v.(store.In); ok {
			m[field] = bson.M{"$in": []string(in)}
			continue
		}
		m[field] = v
	}
	return m
}
