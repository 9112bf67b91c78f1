package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rpggio/coursegrid/internal/domain/catalog"
	"github.com/rpggio/coursegrid/internal/domain/lecture"
	"github.com/rpggio/coursegrid/internal/repository"
)

// LectureRepository implements repository.LectureRepository for SQLite.
// It doubles as a catalog.Source serving an imported copy of the catalog.
type LectureRepository struct {
	db *DB
}

// NewLectureRepository creates a new LectureRepository
func NewLectureRepository(db *DB) *LectureRepository {
	return &LectureRepository{db: db}
}

var _ repository.LectureRepository = (*LectureRepository)(nil)

// FetchPartition returns the partition's lectures in imported order. A
// partition that was never imported is reported as not found; one imported
// empty yields an empty slice.
func (r *LectureRepository) FetchPartition(ctx context.Context, p catalog.Partition) ([]lecture.Lecture, error) {
	query := `
		SELECT id, title, grade, credits, major, schedule
		FROM lectures
		WHERE partition = ?
		ORDER BY position ASC
	`

	rows, err := r.db.QueryContext(ctx, query, p.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lectures: %w", err)
	}
	defer rows.Close()

	var lectures []lecture.Lecture
	for rows.Next() {
		var lec lecture.Lecture
		if err := rows.Scan(&lec.ID, &lec.Title, &lec.Grade, &lec.Credits, &lec.Major, &lec.Schedule); err != nil {
			return nil, fmt.Errorf("failed to scan lecture: %w", err)
		}
		lectures = append(lectures, lec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate lectures: %w", err)
	}
	if len(lectures) == 0 {
		var id string
		err := r.db.QueryRowContext(ctx, `SELECT id FROM partitions WHERE id = ?`, p.ID).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("partition %s: %w", p.ID, repository.ErrNotFound)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to look up partition: %w", err)
		}
		return []lecture.Lecture{}, nil
	}

	return lectures, nil
}

// ReplacePartition swaps the stored partition for lectures in one
// transaction and returns the number stored.
func (r *LectureRepository) ReplacePartition(ctx context.Context, partition string, lectures []lecture.Lecture) (int, error) {
	if partition == "" {
		return 0, fmt.Errorf("partition is required: %w", repository.ErrInvalidInput)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM lectures WHERE partition = ?`, partition); err != nil {
		return 0, fmt.Errorf("failed to clear partition: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO lectures (partition, position, id, title, grade, credits, major, schedule)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, lec := range lectures {
		if lec.ID == "" {
			return 0, fmt.Errorf("lecture at position %d has no id: %w", i, repository.ErrInvalidInput)
		}
		_, err := stmt.ExecContext(ctx, partition, i, lec.ID, lec.Title, lec.Grade, lec.Credits, lec.Major, lec.Schedule)
		if err != nil {
			return 0, fmt.Errorf("failed to insert lecture %s: %w", lec.ID, err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO partitions (id, lecture_count) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET lecture_count = excluded.lecture_count, imported_at = CURRENT_TIMESTAMP
	`, partition, len(lectures))
	if err != nil {
		return 0, fmt.Errorf("failed to record partition: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit partition: %w", err)
	}

	return len(lectures), nil
}

// CountPartitions returns the number of stored lectures per imported
// partition, empty partitions included.
func (r *LectureRepository) CountPartitions(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, lecture_count FROM partitions`)
	if err != nil {
		return nil, fmt.Errorf("failed to count lectures: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var partition string
		var n int
		if err := rows.Scan(&partition, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[partition] = n
	}
	return counts, rows.Err()
}
