package scene

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/spatialnav/pkg/errors"
	"github.com/matzehuels/spatialnav/pkg/observability"
)

// DefaultMongoCollection is the collection used when none is given.
const DefaultMongoCollection = "scenes"

// MongoStore keeps scene specs in a MongoDB collection, one document per
// scene keyed by name.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

var _ Store = (*MongoStore)(nil)

type sceneDocument struct {
	Name      string    `bson:"name"`
	Spec      *Spec     `bson:"spec"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// NewMongoStore wraps an existing collection. The caller owns the client.
func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

// ConnectMongo dials uri and returns a store over database/collection. The
// store owns the client and disconnects it on Close.
func ConnectMongo(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	if collection == "" {
		collection = DefaultMongoCollection
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "ping mongodb")
	}
	s := &MongoStore{client: client, coll: client.Database(database).Collection(collection)}
	if err := s.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

// EnsureIndexes creates the unique name index.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "create scene index")
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, name string) (spec *Spec, err error) {
	start := time.Now()
	defer func() {
		n := 0
		if spec != nil {
			n = len(spec.Elements)
		}
		observability.Scene().OnSceneLoad(ctx, "mongo", name, n, time.Since(start), err)
	}()

	var doc sceneDocument
	err = s.coll.FindOne(ctx, bson.M{"name": name}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeSceneNotFound, "scene %q not found", name)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "find scene %s", name)
	}
	if doc.Spec == nil {
		return nil, errors.New(errors.ErrCodeInvalidScene, "scene %q has no spec", name)
	}
	return doc.Spec, nil
}

func (s *MongoStore) Put(ctx context.Context, spec *Spec) (err error) {
	start := time.Now()
	defer func() {
		observability.Scene().OnSceneSave(ctx, "mongo", spec.Name, time.Since(start), err)
	}()

	if err := errors.ValidateSceneName(spec.Name); err != nil {
		return err
	}
	if err := spec.Validate(); err != nil {
		return err
	}

	doc := sceneDocument{Name: spec.Name, Spec: spec, UpdatedAt: time.Now().UTC()}
	_, err = s.coll.ReplaceOne(ctx, bson.M{"name": spec.Name}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "store scene %s", spec.Name)
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"name": 1}).
		SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list scenes")
	}
	var docs []sceneDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list scenes")
	}
	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = d.Name
	}
	return names, nil
}

func (s *MongoStore) Delete(ctx context.Context, name string) (bool, error) {
	res, err := s.coll.DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeStorage, err, "delete scene %s", name)
	}
	return res.DeletedCount > 0, nil
}

// Close disconnects the client when the store owns it.
func (s *MongoStore) Close() error {
	if s.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
