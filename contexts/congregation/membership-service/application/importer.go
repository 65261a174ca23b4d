package application

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"shepherd/contexts/congregation/membership-service/domain/entities"
	domainerrors "shepherd/contexts/congregation/membership-service/domain/errors"
	"shepherd/contexts/congregation/membership-service/ports"
)

var csvHeader = []string{"first_name", "last_name", "gender", "dob", "address", "phone_number"}

// ImportResult reports a bulk import row by row. Valid rows commit even
// when others fail; Errors carries one entry per rejected row.
type ImportResult struct {
	Imported []entities.Member
	Errors   []string
}

// ImportCSV ingests the exact header
// first_name,last_name,gender,dob,address,phone_number. Empty rows are
// skipped, over-long rows are truncated to the header width, and short
// rows are rejected individually.
func (s Service) ImportCSV(ctx context.Context, r io.Reader) (ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return ImportResult{}, domainerrors.ErrInvalidCSVHeader
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}
	if len(header) != len(csvHeader) {
		return ImportResult{}, domainerrors.ErrInvalidCSVHeader
	}
	for i, column := range csvHeader {
		if header[i] != column {
			return ImportResult{}, domainerrors.ErrInvalidCSVHeader
		}
	}

	result := ImportResult{}
	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			row++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", row, err))
			continue
		}
		row++

		if isEmptyRow(record) {
			continue
		}
		if len(record) > len(csvHeader) {
			record = record[:len(csvHeader)]
		}
		if len(record) < len(csvHeader) {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Row %d: column mismatch (expected %d values, got %d)", row, len(csvHeader), len(record)))
			continue
		}

		member, err := s.CreateMember(ctx, ports.MemberInput{
			FirstName:   record[0],
			LastName:    record[1],
			Gender:      record[2],
			DateOfBirth: record[3],
			Address:     record[4],
			PhoneNumber: record[5],
		})
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", row, err))
			continue
		}
		result.Imported = append(result.Imported, member)
	}

	s.logger().Info("csv import finished",
		"event", "membership_import_finished",
		"module", "congregation/membership-service",
		"layer", "application",
		"imported", len(result.Imported),
		"rejected", len(result.Errors),
	)
	return result, nil
}

func isEmptyRow(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
