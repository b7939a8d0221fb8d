package services

import (
	"testing"
	"time"

	"casefile/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completedProject() *models.Project {
	completed := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	return &models.Project{
		ID:            "proj-1",
		ProjectNumber: "PRJ-001",
		Name:          "Factory Extension",
		Status:        models.ProjectStatusCompleted,
		CompletedDate: &completed,
		Fields:        []models.ProjectField{{Name: "Site", Value: "12 Mill Road"}},
		Notes:         "closing summary",
	}
}

func TestApplyProjectUpdateRejectsCompletedToCompleted(t *testing.T) {
	project := completedProject()

	err := applyProjectUpdate(project, ProjectRequest{
		Name:   "Renamed",
		Status: models.ProjectStatusCompleted,
	}, time.Now())

	assert.ErrorIs(t, err, ErrProjectCompleted)
	assert.Equal(t, "Factory Extension", project.Name, "a rejected update leaves the project untouched")
}

func TestApplyProjectUpdateRevertOnlyChangesStatus(t *testing.T) {
	project := completedProject()

	err := applyProjectUpdate(project, ProjectRequest{
		Name:          "Renamed While Frozen",
		ProjectNumber: "PRJ-999",
		Status:        models.ProjectStatusLive,
		Fields:        []models.ProjectField{{Name: "Budget", Value: "Unconfirmed"}},
		Notes:         "sneaky edit",
	}, time.Now())
	require.NoError(t, err)

	assert.Equal(t, models.ProjectStatusLive, project.Status)
	assert.Nil(t, project.CompletedDate, "reopening clears the completion date")

	// frozen content rides through the reversion unchanged
	assert.Equal(t, "Factory Extension", project.Name)
	assert.Equal(t, "PRJ-001", project.ProjectNumber)
	assert.Equal(t, []models.ProjectField{{Name: "Site", Value: "12 Mill Road"}}, project.Fields)
	assert.Equal(t, "closing summary", project.Notes)
}

func TestApplyProjectUpdateCompletingStampsDate(t *testing.T) {
	project := &models.Project{ID: "proj-2", Name: "Boundary Dispute", Status: models.ProjectStatusLive}
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	err := applyProjectUpdate(project, ProjectRequest{
		Name:   "Boundary Dispute",
		Status: models.ProjectStatusCompleted,
	}, now)
	require.NoError(t, err)

	assert.Equal(t, models.ProjectStatusCompleted, project.Status)
	require.NotNil(t, project.CompletedDate)
	assert.Equal(t, now, *project.CompletedDate)
}

func TestApplyProjectUpdateEditsOpenProject(t *testing.T) {
	project := &models.Project{ID: "proj-2", Name: "Old Name", Status: models.ProjectStatusPending}

	err := applyProjectUpdate(project, ProjectRequest{
		Name:          "New Name",
		ProjectNumber: "PRJ-002",
		Status:        models.ProjectStatusLive,
		Notes:         "updated",
	}, time.Now())
	require.NoError(t, err)

	assert.Equal(t, "New Name", project.Name)
	assert.Equal(t, "PRJ-002", project.ProjectNumber)
	assert.Equal(t, models.ProjectStatusLive, project.Status)
	assert.Equal(t, "updated", project.Notes)
	assert.Nil(t, project.CompletedDate)
	assert.NotNil(t, project.Fields, "absent fields normalise to an empty slice")
	assert.NotNil(t, project.NoteEntries)
}
