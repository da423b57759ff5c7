package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sorenhq/namevault/internal/registry/domain"
)

// Issue describes one integrity problem found by Verify.
type Issue struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Verify scans the whole mappings table and reports entries whose stored
// values fail to decode, plus distinct names sharing the same identifier.
// Unlike List, a corrupt value is reported, not returned as an error, so
// one bad row never hides the rest of the scan.
func (r *MappingRepository) Verify(ctx context.Context) ([]Issue, error) {
	var issues []Issue
	err := r.dispatch(ctx, func() error {
		tx, err := r.db.conn.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("beginning transaction: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		rows, err := tx.Query(`SELECT name, uid FROM mappings ORDER BY name`)
		if err != nil {
			return fmt.Errorf("scanning mappings: %w", err)
		}
		defer func() { _ = rows.Close() }()

		seen := map[uuid.UUID]string{}
		for rows.Next() {
			var (
				name string
				raw  []byte
			)
			if err := rows.Scan(&name, &raw); err != nil {
				return fmt.Errorf("scanning mapping row: %w", err)
			}

			uid, err := domain.DecodeUID(name, raw)
			if err != nil {
				issues = append(issues, Issue{
					Name:   name,
					Reason: fmt.Sprintf("stored value is %d bytes, want %d", len(raw), domain.UIDSize),
				})
				continue
			}

			if prev, dup := seen[uid]; dup {
				issues = append(issues, Issue{
					Name:   name,
					Reason: fmt.Sprintf("identifier %s already mapped to %q", uid, prev),
				})
				continue
			}
			seen[uid] = name
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return issues, nil
}
