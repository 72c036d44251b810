// Copyright (c) 2026 Cliplet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package segment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/cliplet/internal/platform/apperr"
	"github.com/taibuivan/cliplet/internal/platform/database/schema"
	"github.com/taibuivan/cliplet/internal/platform/dberr"
	"github.com/taibuivan/cliplet/internal/users/account"
)

// # Segment Repository

// PostgresRepository implements the [Repository] interface using pgx.
//
// Scenes are stored as a JSONB document and tags as a native text[] so a
// segment reads and writes as a single row. Full-text search runs against
// a generated tsvector column with a GIN index.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the segment [Repository].
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
Create persists a new segment row into core.segment.

Parameters:
  - context: context.Context
  - segment: *Segment (Entity to persist)

Returns:
  - error: Database constraint violations or connectivity errors
*/
func (repository *PostgresRepository) Create(context context.Context, segment *Segment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (
			%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		schema.Segment.Table,
		schema.Segment.ID, schema.Segment.OwnerID, schema.Segment.Title,
		schema.Segment.Description, schema.Segment.VideoURL, schema.Segment.StartTime,
		schema.Segment.EndTime, schema.Segment.Scenes, schema.Segment.Tags,
		schema.Segment.IsPublic, schema.Segment.Views, schema.Segment.Likes,
		schema.Segment.CreatedAt, schema.Segment.UpdatedAt,
	)

	scenesJSON, err := json.Marshal(segment.Scenes)
	if err != nil {
		return fmt.Errorf("postgres_segment_repo_scenes_marshal_failed: %w", err)
	}

	now := time.Now()
	if segment.CreatedAt.IsZero() {
		segment.CreatedAt = now
	}
	segment.UpdatedAt = now

	_, err = repository.pool.Exec(context, query,
		segment.ID,
		segment.OwnerID,
		segment.Title,
		segment.Description,
		segment.VideoURL,
		segment.StartTime,
		segment.EndTime,
		scenesJSON,
		segment.Tags,
		segment.IsPublic,
		segment.Views,
		segment.Likes,
		segment.CreatedAt,
		segment.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "segment_create")
	}

	return nil
}

/*
FindByID retrieves a segment by its primary key with the owner attached.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Segment: Hydrated entity including Owner
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Segment, error) {
	query := fmt.Sprintf(`
		SELECT
			s.%s, s.%s, s.%s, s.%s, s.%s, s.%s, s.%s,
			s.%s, s.%s, s.%s, s.%s, s.%s, s.%s, s.%s,
			u.%s
		FROM %s s
		JOIN %s u ON u.%s = s.%s
		WHERE s.%s = $1`,
		schema.Segment.ID, schema.Segment.OwnerID, schema.Segment.Title,
		schema.Segment.Description, schema.Segment.VideoURL, schema.Segment.StartTime,
		schema.Segment.EndTime, schema.Segment.Scenes, schema.Segment.Tags,
		schema.Segment.IsPublic, schema.Segment.Views, schema.Segment.Likes,
		schema.Segment.CreatedAt, schema.Segment.UpdatedAt,
		schema.UserAccount.Name,
		schema.Segment.Table,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.Segment.OwnerID,
		schema.Segment.ID,
	)

	segment, _, err := scanSegment(repository.pool.QueryRow(context, query, id), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Segment")
		}
		return nil, fmt.Errorf("postgres_segment_repo_find_by_id_failed: %w", err)
	}

	return segment, nil
}

/*
List returns a filtered, sorted page of segments.

Description: Builds the WHERE clause dynamically from the filter, uses a
window function (COUNT(*) OVER()) to retrieve the total row count in the
same round trip, and ranks by text relevance when a search query is set.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit: int
  - offset: int

Returns:
  - []*Segment: Hydrated page including owners
  - int: Total matching rows
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Segment, int, error) {

	// Query build initialization
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	// Using Window Function to get total count alongside the page
	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT
			s.%s, s.%s, s.%s, s.%s, s.%s, s.%s, s.%s,
			s.%s, s.%s, s.%s, s.%s, s.%s, s.%s, s.%s,
			u.%s,
			COUNT(*) OVER() AS total_count
		FROM %s s
		JOIN %s u ON u.%s = s.%s
		WHERE 1=1
	`,
		schema.Segment.ID, schema.Segment.OwnerID, schema.Segment.Title,
		schema.Segment.Description, schema.Segment.VideoURL, schema.Segment.StartTime,
		schema.Segment.EndTime, schema.Segment.Scenes, schema.Segment.Tags,
		schema.Segment.IsPublic, schema.Segment.Views, schema.Segment.Likes,
		schema.Segment.CreatedAt, schema.Segment.UpdatedAt,
		schema.UserAccount.Name,
		schema.Segment.Table,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.Segment.OwnerID,
	))

	// Visibility scoping. Private rows are only reachable through the
	// owner-scoped listing.
	if filter.OwnerID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND s.%s = $%d", schema.Segment.OwnerID, argID))
		args = append(args, filter.OwnerID)
		argID++
	} else {
		queryBuilder.WriteString(fmt.Sprintf(" AND s.%s = true", schema.Segment.IsPublic))
	}

	// Tag Filtering (ANY-of overlap on the text[] column)
	if len(filter.Tags) > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" AND s.%s && $%d::text[]", schema.Segment.Tags, argID))
		args = append(args, filter.Tags)
		argID++
	}

	// Search Query Filtering against the generated tsvector
	if filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND s.%s @@ websearch_to_tsquery('simple', $%d)", schema.Segment.Search, argID))
		args = append(args, filter.Query)
		argID++
	}

	// Apply Sorting Logic
	sortDir := "DESC"
	if strings.EqualFold(filter.Order, "asc") {
		sortDir = "ASC"
	}

	if filter.Query != "" {
		// Relevance first when searching; recency breaks ties.
		queryBuilder.WriteString(fmt.Sprintf(
			" ORDER BY ts_rank(s.%s, websearch_to_tsquery('simple', $%d)) DESC, s.%s DESC",
			schema.Segment.Search, argID, schema.Segment.CreatedAt,
		))
		args = append(args, filter.Query)
		argID++
	} else {
		sortExprs, ok := SortFields[filter.SortBy]
		if !ok {
			sortExprs = []string{"s." + schema.Segment.CreatedAt}
		}

		orderParts := make([]string, 0, len(sortExprs)+1)
		for _, expr := range sortExprs {
			orderParts = append(orderParts, expr+" "+sortDir)
		}
		// Time-sortable IDs make this a stable recency tiebreak.
		orderParts = append(orderParts, fmt.Sprintf("s.%s DESC", schema.Segment.ID))

		queryBuilder.WriteString(" ORDER BY " + strings.Join(orderParts, ", "))
	}

	// Pagination injection
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	// Query Execution
	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_segment_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var segments []*Segment
	var totalCount int

	for rows.Next() {
		segment, total, err := scanSegment(rows, true)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_segment_repo_scan_failed: %w", err)
		}
		totalCount = total
		segments = append(segments, segment)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_segment_repo_rows_failed: %w", err)
	}

	return segments, totalCount, nil
}

/*
Update persists changes to all mutable segment fields.

Parameters:
  - context: context.Context
  - segment: *Segment

Returns:
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresRepository) Update(context context.Context, segment *Segment) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6,
			%s = $7, %s = $8, %s = $9, %s = $10
		WHERE %s = $1`,
		schema.Segment.Table,
		schema.Segment.Title, schema.Segment.Description, schema.Segment.VideoURL,
		schema.Segment.StartTime, schema.Segment.EndTime,
		schema.Segment.Scenes, schema.Segment.Tags, schema.Segment.IsPublic,
		schema.Segment.UpdatedAt,
		schema.Segment.ID,
	)

	scenesJSON, err := json.Marshal(segment.Scenes)
	if err != nil {
		return fmt.Errorf("postgres_segment_repo_scenes_marshal_failed: %w", err)
	}

	segment.UpdatedAt = time.Now()

	tag, err := repository.pool.Exec(context, query,
		segment.ID,
		segment.Title,
		segment.Description,
		segment.VideoURL,
		segment.StartTime,
		segment.EndTime,
		scenesJSON,
		segment.Tags,
		segment.IsPublic,
		segment.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "segment_update")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Segment")
	}

	return nil
}

/*
Delete permanently removes the segment row.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Segment.Table, schema.Segment.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_segment_repo_delete_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Segment")
	}

	return nil
}

// # Atomic Counters

/*
IncrementViews bumps the view counter atomically in the database.

Description: A single UPDATE avoids the read-modify-write race that an
entity-level counter would have under concurrent reads.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Database errors
*/
func (repository *PostgresRepository) IncrementViews(context context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = %s + 1 WHERE %s = $1`,
		schema.Segment.Table, schema.Segment.Views, schema.Segment.Views, schema.Segment.ID)

	if _, err := repository.pool.Exec(context, query, id); err != nil {
		return fmt.Errorf("postgres_segment_repo_increment_views_failed: %w", err)
	}

	return nil
}

/*
IncrementLikes bumps the like counter atomically.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - int: The new like count
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresRepository) IncrementLikes(context context.Context, id string) (int, error) {
	query := fmt.Sprintf(`UPDATE %s SET %s = %s + 1 WHERE %s = $1 RETURNING %s`,
		schema.Segment.Table, schema.Segment.Likes, schema.Segment.Likes,
		schema.Segment.ID, schema.Segment.Likes)

	var likes int
	err := repository.pool.QueryRow(context, query, id).Scan(&likes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperr.NotFound("Segment")
		}
		return 0, fmt.Errorf("postgres_segment_repo_increment_likes_failed: %w", err)
	}

	return likes, nil
}

/*
DecrementLikes lowers the like counter atomically, flooring at zero.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - int: The new like count
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresRepository) DecrementLikes(context context.Context, id string) (int, error) {
	query := fmt.Sprintf(`UPDATE %s SET %s = GREATEST(%s - 1, 0) WHERE %s = $1 RETURNING %s`,
		schema.Segment.Table, schema.Segment.Likes, schema.Segment.Likes,
		schema.Segment.ID, schema.Segment.Likes)

	var likes int
	err := repository.pool.QueryRow(context, query, id).Scan(&likes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperr.NotFound("Segment")
		}
		return 0, fmt.Errorf("postgres_segment_repo_decrement_likes_failed: %w", err)
	}

	return likes, nil
}

// # Profile Statistics

/*
StatsByOwner aggregates segment counts, views, likes, and duration for a
single owner.

Description: Satisfies the account.StatsProvider contract so the profile
page can show real numbers without the account domain touching segment SQL.

Parameters:
  - context: context.Context
  - ownerID: string

Returns:
  - *account.Stats: Aggregates with a zero-valued MemberSince
  - error: Query failures
*/
func (repository *PostgresRepository) StatsByOwner(context context.Context, ownerID string) (*account.Stats, error) {
	query := fmt.Sprintf(`
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE %s),
			COALESCE(SUM(%s), 0),
			COALESCE(SUM(%s), 0),
			COALESCE(SUM(%s - %s), 0)
		FROM %s
		WHERE %s = $1`,
		schema.Segment.IsPublic,
		schema.Segment.Views,
		schema.Segment.Likes,
		schema.Segment.EndTime, schema.Segment.StartTime,
		schema.Segment.Table,
		schema.Segment.OwnerID,
	)

	stats := &account.Stats{}
	err := repository.pool.QueryRow(context, query, ownerID).Scan(
		&stats.TotalSegments,
		&stats.PublicSegments,
		&stats.TotalViews,
		&stats.TotalLikes,
		&stats.TotalDuration,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres_segment_repo_stats_failed: %w", err)
	}

	stats.PrivateSegments = stats.TotalSegments - stats.PublicSegments
	return stats, nil
}

// # Row Hydration

// scanSegment hydrates one segment (plus owner name) from a pgx row.
// When withTotal is set, the trailing total_count window column is read too.
func scanSegment(row pgx.Row, withTotal bool) (*Segment, int, error) {
	segment := &Segment{}
	owner := &Owner{}
	var scenesJSON []byte
	var totalCount int

	targets := []any{
		&segment.ID,
		&segment.OwnerID,
		&segment.Title,
		&segment.Description,
		&segment.VideoURL,
		&segment.StartTime,
		&segment.EndTime,
		&scenesJSON,
		&segment.Tags,
		&segment.IsPublic,
		&segment.Views,
		&segment.Likes,
		&segment.CreatedAt,
		&segment.UpdatedAt,
		&owner.Name,
	}
	if withTotal {
		targets = append(targets, &totalCount)
	}

	if err := row.Scan(targets...); err != nil {
		return nil, 0, err
	}

	if err := json.Unmarshal(scenesJSON, &segment.Scenes); err != nil {
		return nil, 0, fmt.Errorf("postgres_segment_repo_scenes_unmarshal_failed: %w", err)
	}

	owner.ID = segment.OwnerID
	segment.Owner = owner
	if segment.Tags == nil {
		segment.Tags = []string{}
	}
	segment.RecomputeDuration()

	return segment, totalCount, nil
}
