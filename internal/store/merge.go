// Merge engine: reconciles a freshly scraped batch against the
// persisted job table. The newer scrape wins wholesale on overlapping
// ids; there is no field-level union.

package store

import "jobharvest/internal/scraper"

// Table is the logical persisted job table: rows keyed by job id, with
// explicit column and row ordering so repeated writes stay stable.
// Unknown columns from older files ride along after the fixed schema.
type Table struct {
	Columns []string
	Rows    map[string]map[string]string
	Order   []string
}

func NewTable() Table {
	cols := make([]string, len(scraper.Columns))
	copy(cols, scraper.Columns)
	return Table{Columns: cols, Rows: make(map[string]map[string]string)}
}

func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// Put inserts or overwrites a row, preserving first-seen order.
func (t *Table) Put(id string, row map[string]string) {
	if _, exists := t.Rows[id]; !exists {
		t.Order = append(t.Order, id)
	}
	t.Rows[id] = row
}

// BatchFromJobs keys a scraped batch by id. A duplicate id later in
// the batch overwrites the earlier record.
func BatchFromJobs(jobs []scraper.Job) Table {
	batch := NewTable()
	for _, job := range jobs {
		batch.Put(job.ID, job.ToRow())
	}
	return batch
}

// Merge reconciles incoming against existing: overlapping ids are
// overwritten with the incoming row, new ids are appended in batch
// order. Re-merging a batch against its own output is a no-op apart
// from updated counting every incoming row.
func Merge(existing, incoming Table) (merged Table, added, updated int) {
	if existing.Empty() {
		merged = normalize(incoming)
		return merged, incoming.Len(), 0
	}

	merged = Table{
		Columns: unionColumns(existing.Columns, incoming.Columns),
		Rows:    make(map[string]map[string]string, existing.Len()+incoming.Len()),
	}
	for _, id := range existing.Order {
		merged.Put(id, copyRow(existing.Rows[id]))
	}

	for _, id := range incoming.Order {
		if _, overlap := merged.Rows[id]; overlap {
			updated++
		} else {
			added++
		}
		merged.Put(id, copyRow(incoming.Rows[id]))
	}

	merged = normalize(merged)
	return merged, added, updated
}

// normalize orders columns (fixed schema first, extras after in their
// original order) and back-fills absent cells with empty strings.
func normalize(t Table) Table {
	out := Table{
		Columns: unionColumns(scraper.Columns, t.Columns),
		Rows:    make(map[string]map[string]string, t.Len()),
	}
	for _, id := range t.Order {
		row := make(map[string]string, len(out.Columns))
		for _, col := range out.Columns {
			row[col] = t.Rows[id][col]
		}
		out.Put(id, row)
	}
	return out
}

func unionColumns(base, extra []string) []string {
	seen := make(map[string]bool, len(base))
	cols := make([]string, 0, len(base))
	for _, c := range base {
		if !seen[c] {
			seen[c] = true
			cols = append(cols, c)
		}
	}
	for _, c := range extra {
		if !seen[c] {
			seen[c] = true
			cols = append(cols, c)
		}
	}
	return cols
}

func copyRow(row map[string]string) map[string]string {
	out := make(map[string]string, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}
