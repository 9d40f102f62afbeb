package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	_ "github.com/lib/pq"

	"VideoClassifier/internal/domain"
	"VideoClassifier/internal/ports"
)

// PostgresRepository remembers classified video ids so reruns skip paid
// inference calls. A nil *sql.DB disables dedup entirely.
type PostgresRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.ProcessedRepository = (*PostgresRepository)(nil)

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// AlreadyClassified returns a map with the ids that already exist in storage.
func (r *PostgresRepository) AlreadyClassified(ctx context.Context, ids []string) (map[string]bool, error) {
	result := make(map[string]bool)
	if r.db == nil || len(ids) == 0 {
		return result, nil
	}

	query, args, err := r.builder.
		Select("video_id").
		From("classified_videos").
		Where(sq.Eq{"video_id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query classified: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		result[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return result, nil
}

// SaveClassified upserts a snapshot of the final labeled records.
func (r *PostgresRepository) SaveClassified(ctx context.Context, records []domain.ClassifiedVideo) error {
	if r.db == nil || len(records) == 0 {
		return nil
	}

	insert := r.builder.
		Insert("classified_videos").
		Columns("video_id", "channel_id", "title", "published_at", "topic").
		Suffix(`ON CONFLICT (video_id) DO UPDATE
                SET topic = EXCLUDED.topic,
                    updated_at = NOW()`)

	for _, rec := range records {
		insert = insert.Values(
			rec.Video.VideoID,
			rec.Video.ChannelID,
			rec.Video.Title,
			rec.Video.PublishedAt,
			rec.Classification.Topic,
		)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert classified: %w", err)
	}
	return nil
}
