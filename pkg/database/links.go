package database

import (
	"context"
	"fmt"
)

// ReplaceLinks rewrites the rows of a many-to-many junction table for one owner:
// every existing (ownerCol = ownerID) row is removed and one row per relID is inserted.
// Duplicate relIDs collapse into a single row. Callers map IsForeignKeyViolation
// to their own "unknown related entity" error.
func ReplaceLinks(ctx context.Context, q Querier, table, ownerCol, relCol string, ownerID int64, relIDs []int64) error {
	if _, err := q.Exec(ctx, `DELETE FROM `+table+` WHERE `+ownerCol+` = $1`, ownerID); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}

	if len(relIDs) == 0 {
		return nil
	}

	_, err := q.Exec(ctx,
		`INSERT INTO `+table+` (`+ownerCol+`, `+relCol+`)
		SELECT $1, unnest($2::bigint[])
		ON CONFLICT DO NOTHING`,
		ownerID, relIDs,
	)
	if err != nil {
		return fmt.Errorf("link %s: %w", table, err)
	}
	return nil
}
