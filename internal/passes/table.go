package passes

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
)

// tableHeader is the exact, fixed header row of the descriptive table.
var tableHeader = []string{
	"FunctionName",
	"FunctionID",
	"BasicBlockName",
	"BasicBlockInstCount",
	"BasicBlockID",
}

// BlockRecord describes one labeled block. Records are appended in label
// order and serialized oldest first.
type BlockRecord struct {
	FunctionName string
	FunctionID   uint64
	BlockName    string // empty for entry blocks
	InstCount    uint64
	BlockID      uint64
}

// WriteTable serializes records as CSV: the fixed header row followed by
// one row per labeled block in label order.
func WriteTable(w io.Writer, records []BlockRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(tableHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.FunctionName,
			strconv.FormatUint(r.FunctionID, 10),
			r.BlockName,
			strconv.FormatUint(r.InstCount, 10),
			strconv.FormatUint(r.BlockID, 10),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTableFile writes the descriptive table to path, replacing any
// existing file. The sink is acquired, written, and released entirely
// within this call.
func WriteTableFile(path string, records []BlockRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return &PassError{Code: ErrCodeSink, Message: "open table sink " + path + ": " + err.Error()}
	}
	if err := WriteTable(f, records); err != nil {
		f.Close()
		return &PassError{Code: ErrCodeSink, Message: "write table sink " + path + ": " + err.Error()}
	}
	if err := f.Close(); err != nil {
		return &PassError{Code: ErrCodeSink, Message: "close table sink " + path + ": " + err.Error()}
	}
	return nil
}

// parseBlockID decodes string-encoded identity metadata.
func parseBlockID(raw string) (uint64, error) {
	return strconv.ParseUint(raw, 10, 64)
}
