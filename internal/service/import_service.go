package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mediantar/mediantar/internal/pricing"
)

// ImportService CSV customer intake
type ImportService struct {
	customerService *CustomerService
	calculator      *pricing.Calculator
}

// NewImportService creates an import service
func NewImportService(customerService *CustomerService, calculator *pricing.Calculator) *ImportService {
	return &ImportService{
		customerService: customerService,
		calculator:      calculator,
	}
}

// ImportRowError a rejected CSV row with its reason
type ImportRowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportResult per-file outcome; valid rows import even when others fail
type ImportResult struct {
	Imported int              `json:"imported"`
	Failed   int              `json:"failed"`
	Errors   []ImportRowError `json:"errors"`
}

var importHeader = []string{"name", "address", "phone", "fee"}

// ImportCustomers reads a CSV stream with header name,address,phone,fee.
// Fees accept localized number formats; the distance is back-derived from
// the fee through the tariff. Each row goes through the normal customer
// creation contract.
func (s *ImportService) ImportCustomers(r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, NewValidationError("csv header")
	}
	columns, err := mapImportHeader(header)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Errors: []ImportRowError{}}
	row := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row++
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, ImportRowError{Row: row, Reason: "malformed csv row"})
			continue
		}
		if err := s.importRow(record, columns); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, ImportRowError{Row: row, Reason: err.Error()})
			continue
		}
		result.Imported++
	}
	return result, nil
}

func (s *ImportService) importRow(record []string, columns map[string]int) error {
	field := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	input := CustomerInput{
		Name:    field("name"),
		Address: field("address"),
		Phone:   field("phone"),
	}

	if rawFee := field("fee"); rawFee != "" {
		feeValue, err := ParseLocalizedDecimal(rawFee)
		if err != nil {
			return fmt.Errorf("fee %q is not a number", rawFee)
		}
		fee := feeValue.Round(0).IntPart()
		if fee < 0 {
			return fmt.Errorf("fee %q is negative", rawFee)
		}
		input.DeliveryFee = &fee

		km, err := s.calculator.DistanceForFee(fee)
		if err != nil {
			return err
		}
		kmText := km.String()
		input.DistanceKm = &kmText
	}

	_, err := s.customerService.Create(input)
	return err
}

func mapImportHeader(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range importHeader {
		if _, ok := columns[required]; !ok {
			return nil, NewValidationError("csv column " + required)
		}
	}
	return columns, nil
}
