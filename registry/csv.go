package registry

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadRoleCSV parses a role import CSV. The header row must include an
// "email" column; "name" and "role" columns are optional. Header matching is
// case-insensitive and unknown columns are ignored.
func ReadRoleCSV(r io.Reader) ([]RoleRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyImport
	}
	if err != nil {
		return nil, fmt.Errorf("registry: read CSV header: %w", err)
	}

	emailCol, nameCol, roleCol := -1, -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "email":
			emailCol = i
		case "name":
			nameCol = i
		case "role":
			roleCol = i
		}
	}
	if emailCol < 0 {
		return nil, fmt.Errorf("%w: CSV header must include an \"email\" column", ErrMissingEmailField)
	}

	var rows []RoleRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("registry: read CSV row: %w", err)
		}

		row := RoleRow{Email: field(record, emailCol)}
		row.Name = field(record, nameCol)
		row.Role = field(record, roleCol)
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, ErrEmptyImport
	}
	return rows, nil
}

// ReadRoleCSVFile opens path and parses it with ReadRoleCSV.
func ReadRoleCSVFile(path string) ([]RoleRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("registry: open CSV file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ReadRoleCSV(f)
}

// field returns record[i] trimmed, or "" when the column is absent.
func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
