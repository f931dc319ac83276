package store

import (
	"context"
	"fmt"

	"github.com/studyztp/nugget/internal/passes"
)

// ListLabelRuns returns every recorded run in insertion order.
func (s *Store) ListLabelRuns(ctx context.Context) ([]LabelRun, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, module_name, params, function_count, block_count
		FROM label_runs
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list label runs: %w", err)
	}
	defer rows.Close()

	var runs []LabelRun
	for rows.Next() {
		var run LabelRun
		if err := rows.Scan(&run.ID, &run.ModuleName, &run.Params, &run.FunctionCount, &run.BlockCount); err != nil {
			return nil, fmt.Errorf("scan label run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list label runs: %w", err)
	}
	return runs, nil
}

// BlockRecords returns the descriptive records of a run in label order.
func (s *Store) BlockRecords(ctx context.Context, runID string) ([]passes.BlockRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT function_name, function_id, block_name, inst_count, block_id
		FROM block_records
		WHERE run_id = ?
		ORDER BY block_id ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("read block records: %w", err)
	}
	defer rows.Close()

	var records []passes.BlockRecord
	for rows.Next() {
		var r passes.BlockRecord
		if err := rows.Scan(&r.FunctionName, &r.FunctionID, &r.BlockName, &r.InstCount, &r.BlockID); err != nil {
			return nil, fmt.Errorf("scan block record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read block records: %w", err)
	}
	return records, nil
}
