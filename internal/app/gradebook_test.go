package app_test

import (
	"testing"

	"edulite-assessment-service/internal/app"
	"edulite-assessment-service/internal/domain"
)

func gradebookTasks() []domain.AssessmentTask {
	return []domain.AssessmentTask{
		{ID: "t1", CommunityID: "c1", Type: domain.TaskVotes, AdminLabel: "Votes", Total: 10, Weight: 30},
		{ID: "t2", CommunityID: "c1", Type: domain.TaskPostings, AdminLabel: "Posts", Total: 5, Weight: 20},
	}
}

func TestBuildGradebookHeader(t *testing.T) {
	rows := app.BuildGradebook(gradebookTasks(), nil)
	if len(rows) != 1 {
		t.Fatalf("expected header only, got %d rows", len(rows))
	}
	header := rows[0]
	want := []string{"Name", "Email", "Votes (30%)", "Posts (20%)", "Total (50%)"}
	if len(header) != len(want) {
		t.Fatalf("header %v, want %v", header, want)
	}
	for i := range want {
		if header[i] != want[i] {
			t.Fatalf("header[%d]=%q, want %q", i, header[i], want[i])
		}
	}
}

func TestBuildGradebookTotals(t *testing.T) {
	participation := []domain.StudentParticipation{
		{
			StudentID: "s1", StudentName: "Alice", StudentEmail: "alice@example.com",
			Results: []domain.ParticipationRecord{
				{TaskID: "t1", WeightedScore: 15},
				{TaskID: "t2", WeightedScore: 20},
			},
		},
	}

	rows := app.BuildGradebook(gradebookTasks(), participation)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	row := rows[1]
	// 15.00 + 20.00 over weight sum 50 -> 70.00%
	want := []string{"Alice", "alice@example.com", "15.00", "20.00", "70.00"}
	for i := range want {
		if row[i] != want[i] {
			t.Fatalf("row[%d]=%q, want %q", i, row[i], want[i])
		}
	}
}

func TestBuildGradebookMissingRecordIsZero(t *testing.T) {
	participation := []domain.StudentParticipation{
		{
			StudentID: "s1", StudentName: "Alice", StudentEmail: "alice@example.com",
			Results: []domain.ParticipationRecord{
				{TaskID: "t2", WeightedScore: 10},
			},
		},
	}

	rows := app.BuildGradebook(gradebookTasks(), participation)
	row := rows[1]
	if row[2] != "0.00" {
		t.Fatalf("missing record cell=%q, want 0.00", row[2])
	}
	if row[4] != "20.00" {
		t.Fatalf("total=%q, want 20.00 (10/50*100)", row[4])
	}
}

func TestBuildGradebookBlankTotalOnZeroWeights(t *testing.T) {
	tasks := []domain.AssessmentTask{
		{ID: "t1", CommunityID: "c1", Type: domain.TaskVotes, AdminLabel: "Votes", Total: 10, Weight: 0},
		{ID: "t2", CommunityID: "c1", Type: domain.TaskPostings, AdminLabel: "Posts", Total: 5, Weight: 0},
	}
	participation := []domain.StudentParticipation{
		{
			StudentID: "s1", StudentName: "Alice",
			Results: []domain.ParticipationRecord{
				{TaskID: "t1", WeightedScore: 0},
				{TaskID: "t2", WeightedScore: 0},
			},
		},
	}

	rows := app.BuildGradebook(tasks, participation)
	if rows[0][len(rows[0])-1] != "Total (0%)" {
		t.Fatalf("header total=%q", rows[0][len(rows[0])-1])
	}
	total := rows[1][len(rows[1])-1]
	if total != "" {
		t.Fatalf("zero weight sum must leave the total blank, got %q", total)
	}
}
