package store

import (
	"path/filepath"
	"testing"

	"jobharvest/internal/scraper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeJob(link, title string) scraper.Job {
	return scraper.Job{
		ID:     scraper.ComputeID(link),
		Link:   link,
		Title:  title,
		Source: "Test Site",
	}
}

func TestMerge_IntoEmpty(t *testing.T) {
	batch := BatchFromJobs([]scraper.Job{
		makeJob("https://x.com/job/1", "Engineer"),
		makeJob("https://x.com/job/2", "Analyst"),
	})

	merged, added, updated := Merge(NewTable(), batch)

	assert.Equal(t, 2, merged.Len())
	assert.Equal(t, 2, added)
	assert.Equal(t, 0, updated)
}

func TestMerge_Counts(t *testing.T) {
	existing, _, _ := Merge(NewTable(), BatchFromJobs([]scraper.Job{
		makeJob("https://x.com/job/A", "Job A"),
		makeJob("https://x.com/job/B", "Job B"),
	}))

	//B' shares B's link (same id) but carries a new title
	incoming := BatchFromJobs([]scraper.Job{
		makeJob("https://x.com/job/B", "Job B Updated"),
		makeJob("https://x.com/job/C", "Job C"),
	})

	merged, added, updated := Merge(existing, incoming)

	assert.Equal(t, 3, merged.Len())
	assert.Equal(t, 1, added)
	assert.Equal(t, 1, updated)

	idB := scraper.ComputeID("https://x.com/job/B")
	assert.Equal(t, "Job B Updated", merged.Rows[idB]["Title"])
}

func TestMerge_Idempotent(t *testing.T) {
	batch := BatchFromJobs([]scraper.Job{
		makeJob("https://x.com/job/1", "Engineer"),
		makeJob("https://x.com/job/2", "Analyst"),
		makeJob("https://x.com/job/3", "Scientist"),
	})

	first, added, updated := Merge(NewTable(), batch)
	require.Equal(t, 3, added)
	require.Equal(t, 0, updated)

	second, added, updated := Merge(first, batch)

	assert.Equal(t, 0, added)
	assert.Equal(t, 3, updated)
	assert.Equal(t, first.Columns, second.Columns)
	assert.Equal(t, first.Order, second.Order)
	assert.Equal(t, first.Rows, second.Rows)
}

func TestMerge_WholesaleOverwrite(t *testing.T) {
	old := makeJob("https://x.com/job/1", "Engineer")
	old.Location = "Bangalore"
	old.YearsOfExperience = "3"

	updatedJob := makeJob("https://x.com/job/1", "Engineer II")
	//no location on the fresh scrape: field-level union must NOT keep
	//the old value

	merged, _, _ := Merge(
		BatchFromJobs([]scraper.Job{old}),
		BatchFromJobs([]scraper.Job{updatedJob}),
	)

	row := merged.Rows[old.ID]
	assert.Equal(t, "Engineer II", row["Title"])
	assert.Equal(t, "", row["Location"])
	assert.Equal(t, "", row["Years of Experience"])
}

func TestMerge_PreservesExtraColumns(t *testing.T) {
	existing := NewTable()
	existing.Columns = append(existing.Columns, "Notes")
	id := scraper.ComputeID("https://x.com/job/1")
	row := makeJob("https://x.com/job/1", "Engineer").ToRow()
	row["Notes"] = "shortlisted"
	existing.Put(id, row)

	merged, _, _ := Merge(existing, BatchFromJobs([]scraper.Job{
		makeJob("https://x.com/job/2", "Analyst"),
	}))

	//extra column trails the fixed schema
	assert.Equal(t, "Notes", merged.Columns[len(merged.Columns)-1])
	assert.Equal(t, scraper.Columns, merged.Columns[:len(scraper.Columns)])
	assert.Equal(t, "shortlisted", merged.Rows[id]["Notes"])
	//rows without the extra column are back-filled empty
	id2 := scraper.ComputeID("https://x.com/job/2")
	assert.Equal(t, "", merged.Rows[id2]["Notes"])
}

func TestBatchFromJobs_LastWriteWins(t *testing.T) {
	batch := BatchFromJobs([]scraper.Job{
		makeJob("https://x.com/job/1", "First Title"),
		makeJob("https://x.com/job/1", "Second Title"),
	})

	assert.Equal(t, 1, batch.Len())
	id := scraper.ComputeID("https://x.com/job/1")
	assert.Equal(t, "Second Title", batch.Rows[id]["Title"])
}

func TestReadWriteTable_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.xlsx")

	table, added, _ := Merge(NewTable(), BatchFromJobs([]scraper.Job{
		makeJob("https://x.com/job/1", "Engineer"),
		makeJob("https://x.com/job/2", "Analyst"),
	}))
	require.Equal(t, 2, added)
	require.NoError(t, WriteTable(path, table))

	loaded, err := ReadTable(path)
	require.NoError(t, err)

	assert.Equal(t, table.Columns, loaded.Columns)
	assert.Equal(t, table.Order, loaded.Order)
	for id, row := range table.Rows {
		assert.Equal(t, row, loaded.Rows[id])
	}
}

func TestReadTable_MissingFile(t *testing.T) {
	table, err := ReadTable(filepath.Join(t.TempDir(), "absent.xlsx"))
	require.NoError(t, err)
	assert.True(t, table.Empty())
}
