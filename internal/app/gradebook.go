package app

import (
	"fmt"

	"edulite-assessment-service/internal/domain"
)

// BuildGradebook renders tasks and grouped participation into tabular rows.
// The concrete file format is the transport's concern; this returns rows of
// cells.
//
// Header: Name, Email, one column per task labeled "<adminLabel> (<weight>%)",
// then "Total (<sum of weights>%)". Each student row carries the 2-dp weighted
// score per task in task order, then the overall percentage
// (sum weighted / sum weights * 100, 2-dp). When the weight sum is zero the
// total cell is left blank: no grading weight exists, so printing 0% would
// misstate the grade.
func BuildGradebook(tasks []domain.AssessmentTask, participation []domain.StudentParticipation) [][]string {
	weightSum := 0
	for _, task := range tasks {
		weightSum += task.Weight
	}

	header := make([]string, 0, len(tasks)+3)
	header = append(header, "Name", "Email")
	for _, task := range tasks {
		header = append(header, fmt.Sprintf("%s (%d%%)", task.AdminLabel, task.Weight))
	}
	header = append(header, fmt.Sprintf("Total (%d%%)", weightSum))

	rows := make([][]string, 0, len(participation)+1)
	rows = append(rows, header)

	for _, student := range participation {
		byTask := make(map[string]domain.ParticipationRecord, len(student.Results))
		for _, record := range student.Results {
			byTask[record.TaskID] = record
		}

		row := make([]string, 0, len(header))
		row = append(row, student.StudentName, student.StudentEmail)
		total := 0.0
		for _, task := range tasks {
			weighted := 0.0
			if record, ok := byTask[task.ID]; ok {
				weighted = record.WeightedScore
			}
			total += weighted
			row = append(row, fmt.Sprintf("%.2f", weighted))
		}
		if weightSum == 0 {
			row = append(row, "")
		} else {
			row = append(row, fmt.Sprintf("%.2f", round2(total/float64(weightSum)*100)))
		}
		rows = append(rows, row)
	}
	return rows
}
