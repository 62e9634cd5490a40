// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package catalog

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/poiesic/mailtriage/core"
)

// Product sheet columns.
const (
	colProductID   = "product_id"
	colName        = "name"
	colCategory    = "category"
	colStock       = "stock"
	colDescription = "description"
	colSeason      = "season"
)

// Email sheet columns.
const (
	colEmailID = "email_id"
	colSubject = "subject"
	colMessage = "message"
)

// Loader reads product and email sheets from local CSV files or HTTP(S)
// export URLs.
type Loader struct {
	client *resty.Client
}

// NewLoader creates a sheet loader.
func NewLoader() *Loader {
	return &Loader{client: resty.New()}
}

// LoadProducts reads the product sheet from a local path or URL.
func (l *Loader) LoadProducts(ctx context.Context, location string) ([]*core.Product, error) {
	rows, header, err := l.readSheet(ctx, location)
	if err != nil {
		return nil, err
	}

	cols, err := columnIndex(header, colProductID, colName, colCategory, colStock, colDescription, colSeason)
	if err != nil {
		return nil, err
	}

	products := make([]*core.Product, 0, len(rows))
	for i, row := range rows {
		rawStock := field(row, cols[colStock])
		stock, err := strconv.Atoi(strings.TrimSpace(rawStock))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: stock %q", ErrInvalidRow, i+2, rawStock)
		}
		p := &core.Product{
			Id:          strings.TrimSpace(field(row, cols[colProductID])),
			Name:        strings.TrimSpace(field(row, cols[colName])),
			Category:    strings.TrimSpace(field(row, cols[colCategory])),
			Stock:       stock,
			Description: strings.TrimSpace(field(row, cols[colDescription])),
			Season:      strings.TrimSpace(field(row, cols[colSeason])),
		}
		if err := core.ValidateProduct(p); err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrInvalidRow, i+2, err)
		}
		products = append(products, p)
	}
	return products, nil
}

// LoadEmails reads the email sheet from a local path or URL.
func (l *Loader) LoadEmails(ctx context.Context, location string) ([]*core.Email, error) {
	rows, header, err := l.readSheet(ctx, location)
	if err != nil {
		return nil, err
	}

	cols, err := columnIndex(header, colEmailID, colSubject, colMessage)
	if err != nil {
		return nil, err
	}

	emails := make([]*core.Email, 0, len(rows))
	for i, row := range rows {
		e := &core.Email{
			Id:      strings.TrimSpace(field(row, cols[colEmailID])),
			Subject: strings.TrimSpace(field(row, cols[colSubject])),
			Body:    field(row, cols[colMessage]),
		}
		if err := core.ValidateEmail(e); err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrInvalidRow, i+2, err)
		}
		emails = append(emails, e)
	}
	return emails, nil
}

// readSheet fetches or opens the location and parses it as CSV, returning
// data rows and the header row.
func (l *Loader) readSheet(ctx context.Context, location string) ([][]string, []string, error) {
	var reader io.Reader

	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		resp, err := l.client.R().SetContext(ctx).Get(location)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
		}
		if resp.IsError() {
			return nil, nil, fmt.Errorf("%w: %s returned %s", ErrFetchFailed, location, resp.Status())
		}
		reader = bytes.NewReader(resp.Body())
	} else {
		f, err := os.Open(location)
		if err != nil {
			return nil, nil, err
		}
		defer f.Close()
		reader = f
	}

	cr := csv.NewReader(reader)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidRow, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%w: empty sheet %s", ErrMissingColumn, location)
	}
	return records[1:], records[0], nil
}

// field returns the row value at idx, or empty for short rows.
func field(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

// columnIndex maps required column names to their positions in the header.
// Column matching is case-insensitive; order does not matter.
func columnIndex(header []string, required ...string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	cols := make(map[string]int, len(required))
	for _, name := range required {
		i, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
		cols[name] = i
	}
	return cols, nil
}
