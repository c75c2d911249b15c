// Package persistence provides database implementations
package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // Postgres driver
)

// PostgresDB implements the Database interface for PostgreSQL
type PostgresDB struct {
	db              *sql.DB
	videos          VideoRepository
	commentAnalyses CommentAnalysisRepository
	snapshots       SnapshotRepository
	users           UserRepository
	channels        ChannelRepository
	usage           UsageRepository
}

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(connectionString string) (*PostgresDB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	pgDB := &PostgresDB{db: db}
	pgDB.videos = &postgresVideoRepo{db: db}
	pgDB.commentAnalyses = &postgresCommentAnalysisRepo{db: db}
	pgDB.snapshots = &postgresSnapshotRepo{db: db}
	pgDB.users = &postgresUserRepo{db: db}
	pgDB.channels = &postgresChannelRepo{db: db}
	pgDB.usage = &postgresUsageRepo{db: db}

	return pgDB, nil
}

func (p *PostgresDB) Videos() VideoRepository                    { return p.videos }
func (p *PostgresDB) CommentAnalyses() CommentAnalysisRepository { return p.commentAnalyses }
func (p *PostgresDB) Snapshots() SnapshotRepository              { return p.snapshots }
func (p *PostgresDB) Users() UserRepository                      { return p.users }
func (p *PostgresDB) Channels() ChannelRepository                { return p.channels }
func (p *PostgresDB) Usage() UsageRepository                     { return p.usage }

func (p *PostgresDB) Close() error {
	return p.db.Close()
}

func (p *PostgresDB) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}
