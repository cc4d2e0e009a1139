// Package export writes the play table to a delimited file and reads it
// back. Writes go to a temporary sibling and rename into place, so a
// failed run never leaves a partial export behind.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gcheema/passrush/internal/domain/model"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrWrite = errors.New("csv export failed")
	ErrRead  = errors.New("csv import failed")
)

// Header lists the exported columns, one per play field, in order.
var Header = []string{
	"play_id",
	"down",
	"distance",
	"field_position",
	"quarter",
	"score_diff",
	"pressure_applied",
	"time_to_pressure",
	"rushers",
	"def_alignment",
	"time_to_throw",
	"completion",
	"sack",
	"interception",
	"yards_gained",
}

// WriteCSV exports the table: header row, one row per play, numeric fields
// at fixed precision, booleans as 0/1, time_to_pressure empty when no
// pressure was applied.
func WriteCSV(path string, t model.Table) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w := csv.NewWriter(tmp)
	if writeErr := w.Write(Header); writeErr != nil {
		err = fmt.Errorf("%w: header: %w", ErrWrite, writeErr)
		return err
	}
	for _, p := range t {
		if writeErr := w.Write(record(p)); writeErr != nil {
			err = fmt.Errorf("%w: play %d: %w", ErrWrite, p.ID, writeErr)
			return err
		}
	}
	w.Flush()
	if flushErr := w.Error(); flushErr != nil {
		err = fmt.Errorf("%w: %w", ErrWrite, flushErr)
		return err
	}

	if closeErr := tmp.Close(); closeErr != nil {
		err = fmt.Errorf("%w: %w", ErrWrite, closeErr)
		return err
	}
	if renameErr := os.Rename(tmp.Name(), path); renameErr != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %w", ErrWrite, renameErr)
	}
	return nil
}

func record(p model.Play) []string {
	timeToPressure := ""
	if p.PressureApplied {
		timeToPressure = strconv.FormatFloat(p.TimeToPressure, 'f', 2, 64)
	}
	return []string{
		strconv.Itoa(p.ID),
		strconv.Itoa(p.Down),
		strconv.Itoa(p.Distance),
		strconv.FormatFloat(p.FieldPosition, 'f', 1, 64),
		strconv.Itoa(p.Quarter),
		strconv.Itoa(p.ScoreDiff),
		boolField(p.PressureApplied),
		timeToPressure,
		strconv.Itoa(p.Rushers),
		string(p.Alignment),
		strconv.FormatFloat(p.TimeToThrow, 'f', 2, 64),
		boolField(p.Completion),
		boolField(p.Sack),
		boolField(p.Interception),
		strconv.FormatFloat(p.YardsGained, 'f', 1, 64),
	}
}

func boolField(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// ReadCSV imports a previously exported table.
func ReadCSV(path string) (model.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: missing header", ErrRead)
	}
	if len(rows[0]) != len(Header) {
		return nil, fmt.Errorf("%w: want %d columns, got %d", ErrRead, len(Header), len(rows[0]))
	}

	table := make(model.Table, 0, len(rows)-1)
	for i, row := range rows[1:] {
		p, parseErr := parseRecord(row)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrRead, i+2, parseErr)
		}
		table = append(table, p)
	}
	return table, nil
}

func parseRecord(row []string) (model.Play, error) {
	var p model.Play
	var err error

	if p.ID, err = strconv.Atoi(row[0]); err != nil {
		return p, err
	}
	if p.Down, err = strconv.Atoi(row[1]); err != nil {
		return p, err
	}
	if p.Distance, err = strconv.Atoi(row[2]); err != nil {
		return p, err
	}
	if p.FieldPosition, err = strconv.ParseFloat(row[3], 64); err != nil {
		return p, err
	}
	if p.Quarter, err = strconv.Atoi(row[4]); err != nil {
		return p, err
	}
	if p.ScoreDiff, err = strconv.Atoi(row[5]); err != nil {
		return p, err
	}
	if p.PressureApplied, err = parseBool(row[6]); err != nil {
		return p, err
	}
	if row[7] != "" {
		if p.TimeToPressure, err = strconv.ParseFloat(row[7], 64); err != nil {
			return p, err
		}
	}
	if p.Rushers, err = strconv.Atoi(row[8]); err != nil {
		return p, err
	}
	p.Alignment = model.Alignment(row[9])
	if p.TimeToThrow, err = strconv.ParseFloat(row[10], 64); err != nil {
		return p, err
	}
	if p.Completion, err = parseBool(row[11]); err != nil {
		return p, err
	}
	if p.Sack, err = parseBool(row[12]); err != nil {
		return p, err
	}
	if p.Interception, err = parseBool(row[13]); err != nil {
		return p, err
	}
	if p.YardsGained, err = strconv.ParseFloat(row[14], 64); err != nil {
		return p, err
	}
	return p, nil
}

func parseBool(s string) (bool, error) {
	switch s {
	case "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, fmt.Errorf("invalid boolean field %q", s)
	}
}
