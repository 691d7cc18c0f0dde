package api

import (
	"context"
	"math/big"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/posetrank/posetrank/pkg/errors"
	"github.com/posetrank/posetrank/pkg/order/rank"
	"github.com/posetrank/posetrank/pkg/pipeline"
)

// MongoStore persists analyses in a MongoDB collection, keyed by analysis ID.
// Use it when several server instances share results or results must survive
// restarts.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoStore connects to MongoDB and pings it to fail fast on bad URIs.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "ping mongodb")
	}
	return &MongoStore{
		client:     client,
		collection: client.Database(database).Collection("analyses"),
	}, nil
}

// analysisDoc is the BSON form of an Analysis. The driver has no codec for
// math/big.Int (it would flatten the extension count to an empty document),
// so the stats carry the count as a decimal string. Runtime-only option
// fields stay out of the document.
type analysisDoc struct {
	ID           string          `bson:"_id"`
	CreatedAt    time.Time       `bson:"created_at"`
	Options      optionsDoc      `bson:"options"`
	RelationHash string          `bson:"relation_hash"`
	Labels       []string        `bson:"labels"`
	Intervals    []rank.Interval `bson:"intervals"`
	Stats        *statsDoc       `bson:"stats,omitempty"`
	Intractable  bool            `bson:"intractable,omitempty"`
	Detail       string          `bson:"detail,omitempty"`
}

type optionsDoc struct {
	Relation    string   `bson:"relation,omitempty"`
	Graph       string   `bson:"graph,omitempty"`
	Derivation  string   `bson:"derivation,omitempty"`
	MaxElements int      `bson:"max_elements,omitempty"`
	MaxSteps    int64    `bson:"max_steps,omitempty"`
	Refresh     bool     `bson:"refresh,omitempty"`
	Formats     []string `bson:"formats,omitempty"`
	Detailed    bool     `bson:"detailed,omitempty"`
}

type statsDoc struct {
	Labels       []string    `bson:"labels"`
	Extensions   string      `bson:"extensions"`
	RankProb     [][]float64 `bson:"rank_prob"`
	RelativeRank [][]float64 `bson:"relative_rank"`
	ExpectedRank []float64   `bson:"expected_rank"`
	RankSpread   []float64   `bson:"rank_spread"`
}

func newAnalysisDoc(a *Analysis) *analysisDoc {
	doc := &analysisDoc{
		ID:        a.ID,
		CreatedAt: a.CreatedAt,
		Options: optionsDoc{
			Relation:    a.Options.Relation,
			Graph:       a.Options.Graph,
			Derivation:  a.Options.Derivation,
			MaxElements: a.Options.MaxElements,
			MaxSteps:    a.Options.MaxSteps,
			Refresh:     a.Options.Refresh,
			Formats:     a.Options.Formats,
			Detailed:    a.Options.Detailed,
		},
		RelationHash: a.RelationHash,
		Labels:       a.Labels,
		Intervals:    a.Intervals,
		Intractable:  a.Intractable,
		Detail:       a.Detail,
	}
	if a.Stats != nil {
		doc.Stats = &statsDoc{
			Labels:       a.Stats.Labels,
			Extensions:   a.Stats.Extensions.String(),
			RankProb:     a.Stats.RankProb,
			RelativeRank: a.Stats.RelativeRank,
			ExpectedRank: a.Stats.ExpectedRank,
			RankSpread:   a.Stats.RankSpread,
		}
	}
	return doc
}

func (d *analysisDoc) analysis() (*Analysis, error) {
	a := &Analysis{
		ID:        d.ID,
		CreatedAt: d.CreatedAt,
		Options: pipeline.Options{
			Relation:    d.Options.Relation,
			Graph:       d.Options.Graph,
			Derivation:  d.Options.Derivation,
			MaxElements: d.Options.MaxElements,
			MaxSteps:    d.Options.MaxSteps,
			Refresh:     d.Options.Refresh,
			Formats:     d.Options.Formats,
			Detailed:    d.Options.Detailed,
		},
		RelationHash: d.RelationHash,
		Labels:       d.Labels,
		Intervals:    d.Intervals,
		Intractable:  d.Intractable,
		Detail:       d.Detail,
	}
	if d.Stats != nil {
		count, ok := new(big.Int).SetString(d.Stats.Extensions, 10)
		if !ok {
			return nil, errors.New(errors.ErrCodeInternal,
				"malformed extension count %q in analysis %s", d.Stats.Extensions, d.ID)
		}
		a.Stats = &rank.Result{
			Labels:       d.Stats.Labels,
			Extensions:   count,
			RankProb:     d.Stats.RankProb,
			RelativeRank: d.Stats.RelativeRank,
			ExpectedRank: d.Stats.ExpectedRank,
			RankSpread:   d.Stats.RankSpread,
		}
	}
	return a, nil
}

// Put stores an analysis, replacing any previous document with the same ID.
func (s *MongoStore) Put(ctx context.Context, a *Analysis) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := s.collection.ReplaceOne(ctx, bson.M{"_id": a.ID}, newAnalysisDoc(a), opts); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "store analysis %s", a.ID)
	}
	return nil
}

// Get retrieves an analysis by ID.
func (s *MongoStore) Get(ctx context.Context, id string) (*Analysis, error) {
	var doc analysisDoc
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeAnalysisNotFound, "analysis %s not found", id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load analysis %s", id)
	}
	return doc.analysis()
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
