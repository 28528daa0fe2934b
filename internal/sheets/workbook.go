package sheets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/matchday/internal/tournament"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Stats"

var header = []interface{}{"Player", "Goals", "Assists"}

// Workbook is a Sink backed by a single xlsx file with a Player/Goals/Assists sheet.
type Workbook struct {
	path string
	mu   sync.Mutex
}

var _ Sink = (*Workbook)(nil)

// NewWorkbook returns a Workbook at path. The file is created on first Sync.
func NewWorkbook(path string) *Workbook {
	return &Workbook{path: path}
}

type row struct {
	line    int // 1-based sheet row
	player  string
	goals   int
	assists int
}

// Sync adds the given tallies to the totals already in the workbook.
// Known players have their cells incremented; new players are appended.
func (w *Workbook) Sync(ctx context.Context, goals, assists *tournament.Tally) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	f, sheet, err := w.open(true)
	if err != nil {
		return err
	}
	defer f.Close()

	rows, lastLine, err := readRows(f, sheet)
	if err != nil {
		return err
	}
	index := make(map[string]int, len(rows))
	for i, r := range rows {
		index[r.player] = i
	}

	touch := func(player string) int {
		if i, ok := index[player]; ok {
			return i
		}
		lastLine++
		rows = append(rows, row{line: lastLine, player: player})
		index[player] = len(rows) - 1
		return len(rows) - 1
	}
	for _, e := range goals.Entries() {
		rows[touch(e.Player)].goals += e.Count
	}
	for _, e := range assists.Entries() {
		rows[touch(e.Player)].assists += e.Count
	}

	for _, r := range rows {
		axis, err := excelize.CoordinatesToCellName(1, r.line)
		if err != nil {
			return err
		}
		cells := []interface{}{r.player, r.goals, r.assists}
		if err := f.SetSheetRow(sheet, axis, &cells); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", r.player, err)
		}
	}

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", w.path, err)
	}
	log.Info("Synced workbook", "path", w.path, "players", len(rows))
	return nil
}

// Totals reads all-time totals in sheet order. A missing file yields empty tallies.
func (w *Workbook) Totals(ctx context.Context) (*tournament.Tally, *tournament.Tally, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	goals, assists := tournament.NewTally(), tournament.NewTally()
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	f, sheet, err := w.open(false)
	if errors.Is(err, os.ErrNotExist) {
		return goals, assists, nil
	}
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	rows, _, err := readRows(f, sheet)
	if err != nil {
		return nil, nil, err
	}
	for _, r := range rows {
		if r.goals > 0 {
			goals.Add(r.player, r.goals)
		}
		if r.assists > 0 {
			assists.Add(r.player, r.assists)
		}
	}
	return goals, assists, nil
}

func (w *Workbook) open(create bool) (*excelize.File, string, error) {
	f, err := excelize.OpenFile(w.path)
	if err == nil {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			f.Close()
			return nil, "", fmt.Errorf("workbook %s has no sheets", w.path)
		}
		return f, sheets[0], nil
	}
	if !errors.Is(err, os.ErrNotExist) || !create {
		return nil, "", fmt.Errorf("failed to open workbook %s: %w", w.path, err)
	}

	f = excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		f.Close()
		return nil, "", err
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		f.Close()
		return nil, "", err
	}
	return f, sheetName, nil
}

// readRows returns the data rows below the header together with the last used
// sheet row. Blank player cells are skipped and non-numeric counts read as zero.
func readRows(f *excelize.File, sheet string) ([]row, int, error) {
	raw, err := f.GetRows(sheet)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	lastLine := max(len(raw), 1)
	var rows []row
	for i, cells := range raw {
		if i == 0 {
			continue
		}
		if len(cells) == 0 || strings.TrimSpace(cells[0]) == "" {
			continue
		}
		rows = append(rows, row{
			line:    i + 1,
			player:  strings.TrimSpace(cells[0]),
			goals:   cellInt(cells, 1),
			assists: cellInt(cells, 2),
		})
	}
	return rows, lastLine, nil
}

func cellInt(cells []string, col int) int {
	if col >= len(cells) {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(cells[col]))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
