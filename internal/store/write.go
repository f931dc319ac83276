package store

import (
	"context"
	"fmt"

	"github.com/studyztp/nugget/internal/passes"
)

// LabelRun identifies one labeling run.
type LabelRun struct {
	// ID is the run identifier, generated by a RunIDGenerator.
	ID string `json:"id"`

	// ModuleName is the name of the labeled module.
	ModuleName string `json:"module"`

	// Params is the raw parameter string the pass was configured with. May
	// be empty when defaults applied.
	Params string `json:"params,omitempty"`

	// FunctionCount and BlockCount are the labeling totals.
	FunctionCount int `json:"functions"`
	BlockCount    int `json:"blocks"`
}

// WriteLabelRun records a labeling run and all of its descriptive records
// in one transaction. Either everything lands or nothing does; a run row
// without its records would be as misleading as a truncated table.
func (s *Store) WriteLabelRun(ctx context.Context, run LabelRun, records []passes.BlockRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write label run: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO label_runs (id, module_name, params, function_count, block_count)
		VALUES (?, ?, ?, ?, ?)
	`,
		run.ID,
		run.ModuleName,
		run.Params,
		run.FunctionCount,
		run.BlockCount,
	)
	if err != nil {
		return fmt.Errorf("write label run: %w", err)
	}

	for _, r := range records {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO block_records
			(run_id, function_name, function_id, block_name, inst_count, block_id)
			VALUES (?, ?, ?, ?, ?, ?)
		`,
			run.ID,
			r.FunctionName,
			r.FunctionID,
			r.BlockName,
			r.InstCount,
			r.BlockID,
		)
		if err != nil {
			return fmt.Errorf("write block record %d: %w", r.BlockID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write label run: %w", err)
	}
	return nil
}
