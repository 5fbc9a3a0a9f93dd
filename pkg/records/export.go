package records

import "strconv"

// ExportHeader is the stable column order of the audit export view.
var ExportHeader = []string{
	"Year",
	"First Name",
	"Last Name",
	"Car Number",
	"Car Name",
	"Class",
	"Original Class",
	"Round",
	"Heat",
	"Lane",
	"Completed",
	"Finish Time",
	"Finish Place",
	"Full Name",
	"Racer Class",
}

// Export renders the canonical table as a flat tabular structure for audit
// and debugging, one row per heat attempt, columns in ExportHeader order.
// Unfinished heats are included; their finish time renders empty.
func (t Table) Export() [][]string {
	rows := make([][]string, 0, len(t))
	for _, c := range t {
		finishTime := ""
		if c.Finished() {
			finishTime = strconv.FormatFloat(c.FinishTime, 'f', 3, 64)
		}
		rows = append(rows, []string{
			strconv.Itoa(c.Year),
			c.FirstName,
			c.LastName,
			strconv.Itoa(c.CarNumber),
			c.CarName,
			c.StandardClass.String(),
			c.OriginalLabel,
			strconv.Itoa(c.RoundID),
			strconv.Itoa(c.Heat),
			strconv.Itoa(c.Lane),
			strconv.FormatBool(c.Completed),
			finishTime,
			strconv.Itoa(c.FinishPlace),
			c.Racer.FullName(),
			c.RacerClassID(),
		})
	}
	return rows
}
