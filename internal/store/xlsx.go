package store

import (
	"fmt"
	"os"

	"jobharvest/internal/scraper"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Sheet1"

// ReadTable loads the persisted job table from an xlsx file. A missing
// file yields an empty table and no error; the caller treats read
// failures as "no prior state" per the error design.
func ReadTable(path string) (Table, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return NewTable(), nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return NewTable(), fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return NewTable(), fmt.Errorf("read rows from %s: %w", path, err)
	}
	if len(rows) == 0 {
		return NewTable(), nil
	}

	header := rows[0]
	table := Table{
		Columns: unionColumns(scraper.Columns, header),
		Rows:    make(map[string]map[string]string, len(rows)-1),
	}

	for _, cells := range rows[1:] {
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(cells) {
				row[col] = cells[i]
			} else {
				row[col] = ""
			}
		}
		//back-fill the id from the link for older files
		id := row["Job ID"]
		if id == "" && row["Job Link"] != "" {
			id = scraper.ComputeID(row["Job Link"])
			row["Job ID"] = id
		}
		if id == "" {
			continue
		}
		table.Put(id, row)
	}

	return table, nil
}

// WriteTable persists the table as xlsx with the schema column order.
func WriteTable(path string, table Table) error {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, len(table.Columns))
	for i, col := range table.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, id := range table.Order {
		row := table.Rows[id]
		cells := make([]interface{}, len(table.Columns))
		for j, col := range table.Columns {
			cells[j] = row[col]
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row coordinates: %w", err)
		}
		if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
