// Package archive stores benchmark run summaries in MongoDB so results of
// different runs, seeds and machines can be compared later.
//
// Each run is one document keyed by its run ID:
//
//	{
//	  _id: "1b4e28ba-...", started: ISODate, finished: ISODate,
//	  trials: 5000, seed: 42, solved: 9,
//	  results: [{filename, colors, time_seconds, test, optimal, solved, ...}],
//	  failures: [{filename, code, error}]
//	}
package archive

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/chromabench/pkg/coloring"
	errs "github.com/matzehuels/chromabench/pkg/errors"
	"github.com/matzehuels/chromabench/pkg/report"
)

// Defaults for the target namespace.
const (
	DefaultDatabase   = "chromabench"
	DefaultCollection = "runs"
)

// MongoArchive writes run summaries to a MongoDB collection.
type MongoArchive struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// Connect opens a MongoDB connection. Empty database or collection names use
// the defaults.
func Connect(ctx context.Context, uri, database, collection string) (*MongoArchive, error) {
	if database == "" {
		database = DefaultDatabase
	}
	if collection == "" {
		collection = DefaultCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeNetwork, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errs.Wrap(errs.ErrCodeNetwork, err, "ping mongodb")
	}
	return &MongoArchive{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}, nil
}

// Save inserts the summary. Saving the same run twice fails with a
// duplicate key error.
func (a *MongoArchive) Save(ctx context.Context, s *report.Summary) error {
	if _, err := a.coll.InsertOne(ctx, fromSummary(s)); err != nil {
		return errs.Wrap(errs.ErrCodeNetwork, err, "archive run %s", s.RunID)
	}
	return nil
}

// Get returns the run with the given ID.
func (a *MongoArchive) Get(ctx context.Context, runID string) (*report.Summary, error) {
	var doc runDocument
	err := a.coll.FindOne(ctx, bson.M{"_id": runID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.New(errs.ErrCodeFileNotFound, "run %s not archived", runID)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeNetwork, err, "load run %s", runID)
	}
	return doc.toSummary(), nil
}

// Recent returns up to limit runs, newest first.
func (a *MongoArchive) Recent(ctx context.Context, limit int64) ([]*report.Summary, error) {
	opts := options.Find().SetSort(bson.D{{Key: "started", Value: -1}}).SetLimit(limit)
	cur, err := a.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeNetwork, err, "list runs")
	}
	defer cur.Close(ctx)

	var docs []runDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errs.Wrap(errs.ErrCodeNetwork, err, "decode runs")
	}
	out := make([]*report.Summary, len(docs))
	for i := range docs {
		out[i] = docs[i].toSummary()
	}
	return out, nil
}

// Close disconnects from the server.
func (a *MongoArchive) Close(ctx context.Context) error {
	return a.client.Disconnect(ctx)
}

type runDocument struct {
	ID       string        `bson:"_id"`
	Started  time.Time     `bson:"started"`
	Finished time.Time     `bson:"finished"`
	Trials   int           `bson:"trials"`
	Seed     int64         `bson:"seed"`
	Solved   int           `bson:"solved"`
	Results  []rowDocument `bson:"results"`
	Failures []failureDoc  `bson:"failures,omitempty"`
}

type rowDocument struct {
	Filename    string  `bson:"filename"`
	Colors      int     `bson:"colors"`
	TimeSeconds float64 `bson:"time_seconds"`
	Groups      []int   `bson:"groups"`
	Test        string  `bson:"test"`
	Optimal     *int    `bson:"optimal,omitempty"`
	Solved      bool    `bson:"solved"`
	Vertices    int     `bson:"vertices"`
	Edges       int     `bson:"edges"`
	BestTrial   int     `bson:"best_trial"`
}

type failureDoc struct {
	Filename string `bson:"filename"`
	Code     string `bson:"code,omitempty"`
	Error    string `bson:"error"`
}

// fromSummary converts a summary to its document form. BSON has no unsigned
// 64-bit integer, so the seed is stored with its bits reinterpreted.
func fromSummary(s *report.Summary) runDocument {
	doc := runDocument{
		ID:       s.RunID,
		Started:  s.Started,
		Finished: s.Finished,
		Trials:   s.Trials,
		Seed:     int64(s.Seed),
		Solved:   s.SolvedCount(),
		Results:  make([]rowDocument, len(s.Rows)),
	}
	for i, r := range s.Rows {
		rd := rowDocument{
			Filename:    r.Filename,
			Colors:      r.Colors,
			TimeSeconds: r.Time.Seconds(),
			Groups:      r.Groups,
			Test:        r.Test.String(),
			Solved:      r.Solved,
			Vertices:    r.Vertices,
			Edges:       r.Edges,
			BestTrial:   r.BestAt,
		}
		if r.OptimalKnown {
			k := r.Optimal
			rd.Optimal = &k
		}
		doc.Results[i] = rd
	}
	for _, f := range s.Failures {
		doc.Failures = append(doc.Failures, failureDoc(f))
	}
	return doc
}

func (d *runDocument) toSummary() *report.Summary {
	s := &report.Summary{
		RunID:    d.ID,
		Started:  d.Started,
		Finished: d.Finished,
		Trials:   d.Trials,
		Seed:     uint64(d.Seed),
		Rows:     make([]report.Row, len(d.Results)),
	}
	for i, rd := range d.Results {
		r := report.Row{
			Filename: rd.Filename,
			Colors:   rd.Colors,
			Time:     time.Duration(rd.TimeSeconds * float64(time.Second)),
			Groups:   rd.Groups,
			Test:     coloring.Outcome(rd.Test == coloring.Pass.String()),
			Solved:   rd.Solved,
			Vertices: rd.Vertices,
			Edges:    rd.Edges,
			BestAt:   rd.BestTrial,
		}
		if rd.Optimal != nil {
			r.Optimal, r.OptimalKnown = *rd.Optimal, true
		}
		s.Rows[i] = r
	}
	for _, f := range d.Failures {
		s.Failures = append(s.Failures, report.Failure(f))
	}
	return s
}
