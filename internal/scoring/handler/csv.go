package handler

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"leadscore_backend/internal/scoring/domain"
)

// ParseLeadsCSV decodes CSV text into an ordered lead batch. The first row
// is the header; every column is carried through as-is (the lead schema is
// open). Ragged rows are tolerated the way spreadsheet exports produce
// them: short rows leave trailing columns empty.
func ParseLeadsCSV(r io.Reader) (domain.LeadBatch, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return domain.LeadBatch{}, fmt.Errorf("csv is empty")
	}
	if err != nil {
		return domain.LeadBatch{}, fmt.Errorf("read csv header: %w", err)
	}

	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = strings.TrimSpace(name)
	}

	var leads []domain.Lead
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return domain.LeadBatch{}, fmt.Errorf("read csv row %d: %w", len(leads)+2, err)
		}

		lead := make(domain.Lead, len(columns))
		for i, column := range columns {
			if column == "" {
				continue
			}
			if i < len(record) {
				lead[column] = strings.TrimSpace(record[i])
			} else {
				lead[column] = ""
			}
		}
		leads = append(leads, lead)
	}

	return domain.LeadBatch{Columns: columns, Leads: leads}, nil
}

// resultsCSVHeader is the column order of the export file.
var resultsCSVHeader = []string{"name", "role", "company", "intent", "score", "reasoning"}

// WriteResultsCSV streams the scored leads as CSV.
func WriteResultsCSV(w io.Writer, results []domain.ScoredLead) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(resultsCSVHeader); err != nil {
		return err
	}
	for _, lead := range results {
		row := []string{
			lead.Name,
			lead.Role,
			lead.Company,
			string(lead.Intent),
			fmt.Sprintf("%d", lead.Score),
			lead.Reasoning,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
