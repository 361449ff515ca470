package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/JalilAbdallah/hrm-backend/config"
)

// Collection names used across the API.
const (
	ColCases         = "cases"
	ColArchivedCases = "archived_cases"
	ColStatusHistory = "case_status_history"
	ColReports       = "incident_reports"
	ColIndividuals   = "individuals"
	ColUsers         = "users"
)

// Mongo wraps a connected client plus the application database. It is
// constructed once by the process entry point and injected into every
// repository; there is no package-level handle.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// Open connects, pings, and ensures indexes. The caller owns the returned
// handle and must Close it on shutdown.
func Open(ctx context.Context, cfg config.MongoConfig) (*Mongo, error) {
	start := time.Now()
	log.Printf("mongo: connecting mode=%s uri=%s db=%s", cfg.Mode, redactURI(cfg.URI), cfg.DBName)

	dctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	c, err := mongo.Connect(dctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err = c.Ping(dctx, nil); err != nil {
		_ = c.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	m := &Mongo{client: c, db: c.Database(cfg.DBName)}

	if err := m.createIndexes(); err != nil {
		log.Printf("mongo: index creation warnings: %v", err)
	}

	log.Printf("mongo: connected ok in %s", time.Since(start).Round(time.Millisecond))
	return m, nil
}

// Close disconnects the underlying client.
func (m *Mongo) Close(ctx context.Context) error {
	if m == nil || m.client == nil {
		return nil
	}
	return m.client.Disconnect(ctx)
}

// Col returns a handle for the named collection.
func (m *Mongo) Col(name string) *mongo.Collection {
	if m == nil || m.db == nil {
		panic("database not connected: call database.Open first")
	}
	return m.db.Collection(name)
}

func (m *Mongo) createIndexes() error {
	ctxIdx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var errs []string
	add := func(col, label string, model mongo.IndexModel) {
		if _, err := m.Col(col).Indexes().CreateOne(ctxIdx, model); err != nil {
			errs = append(errs, label+": "+err.Error())
		}
	}

	for _, col := range []string{ColCases, ColArchivedCases} {
		add(col, col+".created_at", mongo.IndexModel{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		})
		add(col, col+".status", mongo.IndexModel{
			Keys: bson.D{{Key: "status", Value: 1}},
		})
		add(col, col+".case_id", mongo.IndexModel{
			Keys:    bson.D{{Key: "case_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		})
	}

	add(ColStatusHistory, "case_status_history.case_id", mongo.IndexModel{
		Keys:    bson.D{{Key: "case_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	add(ColReports, "incident_reports.report_id", mongo.IndexModel{
		Keys: bson.D{{Key: "report_id", Value: 1}},
	})
	add(ColReports, "incident_reports.date_occurred", mongo.IndexModel{
		Keys: bson.D{{Key: "incident_details.date_occurred", Value: -1}},
	})

	add(ColIndividuals, "individuals.cases_involved", mongo.IndexModel{
		Keys: bson.D{{Key: "cases_involved", Value: 1}},
	})

	add(ColUsers, "users.email", mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// redactURI hides credentials in log lines.
func redactURI(raw string) string {
	if raw == "" || !strings.Contains(raw, "://") {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	u.User = url.UserPassword("****", "****")
	return u.String()
}
