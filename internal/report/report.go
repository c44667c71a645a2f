package report

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/omarshaarawi/statsheet/internal/models"
	"github.com/omarshaarawi/statsheet/internal/sheets"
	"github.com/omarshaarawi/statsheet/internal/stats"
)

// Sink buffers cell writes and flushes them in bulk. Satisfied by
// sheets.Manager.
type Sink interface {
	Stage(sheet, cell string, value any, op string)
	Flush() error
}

// Generator writes report sections onto sheets. Data flows one way:
// engine rollups in, addressed cell values out; nothing written is read
// back within a run. Each section is flushed separately, so an aborted
// run leaves earlier sections intact and the failed section's sheet
// partially written.
type Generator struct {
	engine *stats.Engine
	sink   Sink
}

func NewGenerator(engine *stats.Engine, sink Sink) *Generator {
	return &Generator{engine: engine, sink: sink}
}

// WeekSheet writes a full single-week report onto the named sheet.
func (g *Generator) WeekSheet(sheet string, week int) error {
	if err := g.writeTeamNames(sheet); err != nil {
		return err
	}

	if err := g.averageSection(sheet, week, rowAverageStarted, BenchSlots, "started"); err != nil {
		return err
	}
	if err := g.averageSection(sheet, week, rowAverageOverall, nil, "overall"); err != nil {
		return err
	}

	snapshots, err := g.engine.TeamSnapshots(week)
	if err != nil {
		return err
	}
	if err := g.engine.PowerRankings(snapshots, week); err != nil {
		return err
	}
	if err := g.scalarSection(sheet, snapshots, powerRankingOf, rowPowerRanking, "Power Ranking", opPowerRanking); err != nil {
		return err
	}

	stats.ProjectionDelta(snapshots)
	if err := g.scalarSection(sheet, snapshots, projectionDeltaOf, rowProjectionDelta, "Over/Under Projection", opProjectionDelta); err != nil {
		return err
	}

	if err := g.percentSection(sheet, week, rowPercentStarted, BenchSlots, "Started"); err != nil {
		return err
	}
	return g.percentSection(sheet, week, rowPercentOverall, nil, "Overall")
}

// Summary writes the multi-week report onto the named sheet, averaging
// every metric across the given weeks.
func (g *Generator) Summary(sheet string, weeks []int) error {
	if err := g.writeTeamNames(sheet); err != nil {
		return err
	}

	sections := []func() error{
		func() error {
			snapshots, err := g.engine.AveragePointsPerPositionRange(weeks, Positions, BenchSlots)
			if err != nil {
				return err
			}
			return g.positionSection(sheet, snapshots, averagesOf, rowAverageStarted, "Pts/%s started", opAveragePoints)
		},
		func() error {
			snapshots, err := g.engine.AveragePointsPerPositionRange(weeks, Positions, nil)
			if err != nil {
				return err
			}
			return g.positionSection(sheet, snapshots, averagesOf, rowAverageOverall, "Pts/%s overall", opAveragePoints)
		},
		func() error {
			snapshots, err := g.engine.PowerRankingRange(weeks)
			if err != nil {
				return err
			}
			return g.scalarSection(sheet, snapshots, powerRankingOf, rowPowerRanking, "Power Ranking", opPowerRanking)
		},
		func() error {
			snapshots, err := g.engine.ProjectionDeltaRange(weeks)
			if err != nil {
				return err
			}
			return g.scalarSection(sheet, snapshots, projectionDeltaOf, rowProjectionDelta, "Over/Under Projection", opProjectionDelta)
		},
		func() error {
			snapshots, err := g.engine.PercentageOfPointsByPositionRange(weeks, Positions, BenchSlots)
			if err != nil {
				return err
			}
			return g.positionSection(sheet, snapshots, percentagesOf, rowPercentStarted, "%% points/%s Started", opPercentPoints)
		},
		func() error {
			snapshots, err := g.engine.PercentageOfPointsByPositionRange(weeks, Positions, nil)
			if err != nil {
				return err
			}
			return g.positionSection(sheet, snapshots, percentagesOf, rowPercentOverall, "%% points/%s Overall", opPercentPoints)
		},
	}

	for _, section := range sections {
		if err := section(); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) writeTeamNames(sheet string) error {
	teams, err := g.engine.CanonicalTeams()
	if err != nil {
		return err
	}

	for i, team := range teams {
		g.sink.Stage(sheet, sheets.CellRef(i+1, rowTeamNames), team.Name, opTeamNames)
	}
	g.sink.Stage(sheet, sheets.CellRef(len(teams)+1, rowTeamNames), "League average", opTeamNames)

	return g.flushSection(sheet, opTeamNames, rowTeamNames, rowTeamNames)
}

func (g *Generator) averageSection(sheet string, week, startRow int, excludeSlots []string, suffix string) error {
	snapshots, err := g.engine.TeamSnapshots(week)
	if err != nil {
		return err
	}
	stats.AveragePointsPerPosition(snapshots, week, Positions, excludeSlots)
	return g.positionSection(sheet, snapshots, averagesOf, startRow, "Pts/%s "+suffix, opAveragePoints)
}

func (g *Generator) percentSection(sheet string, week, startRow int, excludeSlots []string, suffix string) error {
	snapshots, err := g.engine.TeamSnapshots(week)
	if err != nil {
		return err
	}
	stats.PercentageOfPointsByPosition(snapshots, week, Positions, excludeSlots)
	return g.positionSection(sheet, snapshots, percentagesOf, startRow, "%% points/%s "+suffix, opPercentPoints)
}

// positionSection writes one row per position: label, one value per
// team at its column index, then the league average over exactly the
// values written. Teams without an entry for a position get no cell,
// and do not count toward the average.
func (g *Generator) positionSection(
	sheet string,
	snapshots []models.TeamSnapshot,
	table func(models.TeamSnapshot) []models.PositionValue,
	startRow int,
	labelFormat string,
	op string,
) error {
	averageColumn, err := g.leagueAverageColumn()
	if err != nil {
		return err
	}

	for offset, position := range Positions {
		row := startRow + offset
		g.sink.Stage(sheet, sheets.CellRef(0, row), fmt.Sprintf(labelFormat, position), op)

		var written []float64
		for _, snapshot := range snapshots {
			value, ok := lookup(table(snapshot), position)
			if !ok {
				continue
			}
			g.sink.Stage(sheet, sheets.CellRef(snapshot.ColumnIndex, row), value, op)
			written = append(written, value)
		}

		if len(written) > 0 {
			g.sink.Stage(sheet, sheets.CellRef(averageColumn, row), mean(written), op)
		}
	}

	return g.flushSection(sheet, op, startRow, startRow+len(Positions)-1)
}

func (g *Generator) scalarSection(
	sheet string,
	snapshots []models.TeamSnapshot,
	value func(models.TeamSnapshot) *float64,
	row int,
	label, op string,
) error {
	averageColumn, err := g.leagueAverageColumn()
	if err != nil {
		return err
	}

	g.sink.Stage(sheet, sheets.CellRef(0, row), label, op)

	var written []float64
	for _, snapshot := range snapshots {
		v := value(snapshot)
		if v == nil {
			continue
		}
		g.sink.Stage(sheet, sheets.CellRef(snapshot.ColumnIndex, row), *v, op)
		written = append(written, *v)
	}

	if len(written) > 0 {
		g.sink.Stage(sheet, sheets.CellRef(averageColumn, row), mean(written), op)
	}

	return g.flushSection(sheet, op, row, row)
}

// leagueAverageColumn is the trailing column after every team's column.
func (g *Generator) leagueAverageColumn() (int, error) {
	teams, err := g.engine.CanonicalTeams()
	if err != nil {
		return 0, err
	}
	return len(teams) + 1, nil
}

func (g *Generator) flushSection(sheet, op string, firstRow, lastRow int) error {
	if err := g.sink.Flush(); err != nil {
		slog.Error("flushing report section",
			"sheet", sheet,
			"operation", op,
			"rows", fmt.Sprintf("%d-%d", firstRow, lastRow),
			"error", err,
		)
		return fmt.Errorf("writing %s rows %d-%d on sheet %q: %w", op, firstRow, lastRow, sheet, err)
	}
	return nil
}

func averagesOf(s models.TeamSnapshot) []models.PositionValue    { return s.Averages }
func percentagesOf(s models.TeamSnapshot) []models.PositionValue { return s.Percentages }
func powerRankingOf(s models.TeamSnapshot) *float64              { return s.PowerRanking }
func projectionDeltaOf(s models.TeamSnapshot) *float64           { return s.ProjectionDelta }

func lookup(table []models.PositionValue, position string) (float64, bool) {
	for _, entry := range table {
		if entry.Position == position {
			return entry.Value, true
		}
	}
	return 0, false
}

// mean is computed over the finalized per-team values being written,
// so rounding happens once, consistently with the cells themselves.
func mean(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return math.Round(total/float64(len(values))*100) / 100
}
