package table

import (
	"strconv"

	"github.com/packleader/derbytally/pkg/ranking"
	"github.com/packleader/derbytally/pkg/records"
	"github.com/packleader/derbytally/pkg/sanity"
)

// formatTime renders a finish time in seconds with millisecond precision.
// Zero renders as a dash so never-finished racers are visibly distinct.
func formatTime(t float64) string {
	if t == 0 {
		return "-"
	}
	return strconv.FormatFloat(t, 'f', 3, 64)
}

// formatPlace renders a place label; excluded winners and non-finishers get
// a dash instead of a number.
func formatPlace(row ranking.Row) string {
	if row.Excluded {
		return "-"
	}
	if row.Place == 0 {
		return "-"
	}
	return strconv.Itoa(row.Place)
}

// StandingToTableData converts one class standing to table format. Wide adds
// the full statistics columns.
func StandingToTableData(cs ranking.ClassStanding, wide bool) Data {
	headers := []string{"Place", "Racer", "Car", "Heats", "Score"}
	if wide {
		headers = append(headers, "Avg", "Avg -Slowest", "Best", "Worst", "Median", "Std Dev")
	}
	align := make([]Align, len(headers))
	for i := range align {
		align[i] = AlignRight
	}
	align[1] = AlignLeft // racer name
	align[2] = AlignLeft // car name

	rows := make([][]string, 0, len(cs.Rows))
	for _, row := range cs.Rows {
		out := []string{
			formatPlace(row),
			row.Stats.Racer.String(),
			row.Stats.CarName,
			strconv.Itoa(row.Stats.RaceCount),
			formatTime(row.Score),
		}
		if wide {
			out = append(out,
				formatTime(row.Stats.AvgTime),
				formatTime(row.Stats.AvgExceptSlowest),
				formatTime(row.Stats.BestTime),
				formatTime(row.Stats.WorstTime),
				formatTime(row.Stats.Median),
				strconv.FormatFloat(row.Stats.StdDev, 'f', 3, 64),
			)
		}
		rows = append(rows, out)
	}

	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// FinalsFieldToTableData lists the selected finals field: finalists first in
// class order, then wildcards by speed.
func FinalsFieldToTableData(standings *ranking.Standings) Data {
	headers := []string{"Slot", "Racer", "Selection"}
	rows := make([][]string, 0, len(standings.Finalists)+len(standings.Wildcards))

	slot := 0
	add := func(key records.RacerKey, kind string) {
		slot++
		rows = append(rows, []string{strconv.Itoa(slot), key.String(), kind})
	}
	for _, key := range standings.Finalists {
		add(key, "finalist")
	}
	for _, key := range standings.Wildcards {
		add(key, "wildcard")
	}

	return Data{
		Headers:         headers,
		Rows:            rows,
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignLeft},
	}
}

// FindingsToTableData converts sanity findings to table format.
func FindingsToTableData(report sanity.Report) Data {
	headers := []string{"Severity", "Racer", "Message"}
	rows := make([][]string, 0, len(report.Findings))
	for _, f := range report.Findings {
		rows = append(rows, []string{
			f.Severity.String(),
			f.Racer.String(),
			f.Message,
		})
	}
	return Data{Headers: headers, Rows: rows}
}

// ExportToTableData converts the canonical record table to its audit view.
func ExportToTableData(t records.Table) Data {
	return Data{Headers: records.ExportHeader, Rows: t.Export()}
}
