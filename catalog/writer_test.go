package catalog

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/mailtriage/core"
	"github.com/poiesic/mailtriage/pipeline"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestNewWriterRequiresDir(t *testing.T) {
	_, err := NewWriter("")
	assert.ErrorIs(t, err, ErrOutputDirRequired)
}

func TestWriteResults(t *testing.T) {
	dir := t.TempDir()
	writer, err := NewWriter(filepath.Join(dir, "out"))
	require.NoError(t, err)

	results := &pipeline.Results{
		Classifications: []core.Classification{
			{EmailId: "E001", Category: core.CategoryOrderRequest},
			{EmailId: "E002", Category: core.CategoryProductInquiry},
		},
		OrderStatuses: []core.OrderLineStatus{
			{EmailId: "E001", ProductId: "HAT0001", Quantity: 2, Status: core.LineCreated},
			{EmailId: "E001", ProductName: "Red Scarf", Quantity: 1, Status: core.LineNotFound},
		},
		OrderResponses: []core.EmailResponse{
			{EmailId: "E001", Kind: core.ResponseOrder, Content: "Thanks for your order."},
		},
		InquiryResponses: []core.EmailResponse{
			{EmailId: "E002", Kind: core.ResponseInquiry, Content: "Here is what we found."},
		},
	}
	require.NoError(t, writer.WriteResults(results))

	classifications := readCSV(t, filepath.Join(dir, "out", ClassificationFile))
	require.Len(t, classifications, 3)
	assert.Equal(t, []string{"email id", "category"}, classifications[0])
	assert.Equal(t, []string{"E001", "order_request"}, classifications[1])

	statuses := readCSV(t, filepath.Join(dir, "out", OrderStatusFile))
	require.Len(t, statuses, 3)
	assert.Equal(t, []string{"E001", "HAT0001", "2", "created"}, statuses[1])
	assert.Equal(t, []string{"E001", "", "1", "not_found"}, statuses[2])

	orderResponses := readCSV(t, filepath.Join(dir, "out", OrderResponseFile))
	require.Len(t, orderResponses, 2)
	assert.Equal(t, []string{"E001", "Thanks for your order."}, orderResponses[1])

	inquiryResponses := readCSV(t, filepath.Join(dir, "out", InquiryResponseFile))
	require.Len(t, inquiryResponses, 2)
	assert.Equal(t, []string{"E002", "Here is what we found."}, inquiryResponses[1])
}

func TestWriteResultsEmptyTables(t *testing.T) {
	dir := t.TempDir()
	writer, err := NewWriter(dir)
	require.NoError(t, err)

	require.NoError(t, writer.WriteResults(&pipeline.Results{}))

	// Every table exists with just its header.
	for _, name := range []string{ClassificationFile, OrderStatusFile, OrderResponseFile, InquiryResponseFile} {
		rows := readCSV(t, filepath.Join(dir, name))
		assert.Len(t, rows, 1, name)
	}
}
