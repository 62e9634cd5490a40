package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/poiesic/mailtriage/core"
	"github.com/poiesic/mailtriage/pipeline"
)

// Output file names, one per result table.
const (
	ClassificationFile  = "email-classification.csv"
	OrderStatusFile     = "order-status.csv"
	OrderResponseFile   = "order-response.csv"
	InquiryResponseFile = "inquiry-response.csv"
)

// Writer emits the four result tables as CSV files in an output directory.
type Writer struct {
	dir string
}

// NewWriter creates a writer targeting the given directory, creating it if
// needed.
func NewWriter(dir string) (*Writer, error) {
	if dir == "" {
		return nil, ErrOutputDirRequired
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Writer{dir: dir}, nil
}

// WriteResults writes every result table. Existing files are overwritten.
func (w *Writer) WriteResults(results *pipeline.Results) error {
	if err := w.writeClassifications(results.Classifications); err != nil {
		return err
	}
	if err := w.writeOrderStatuses(results.OrderStatuses); err != nil {
		return err
	}
	if err := w.writeResponses(OrderResponseFile, results.OrderResponses); err != nil {
		return err
	}
	return w.writeResponses(InquiryResponseFile, results.InquiryResponses)
}

func (w *Writer) writeClassifications(classifications []core.Classification) error {
	rows := make([][]string, 0, len(classifications)+1)
	rows = append(rows, []string{"email id", "category"})
	for _, c := range classifications {
		rows = append(rows, []string{c.EmailId, string(c.Category)})
	}
	return w.writeFile(ClassificationFile, rows)
}

func (w *Writer) writeOrderStatuses(statuses []core.OrderLineStatus) error {
	rows := make([][]string, 0, len(statuses)+1)
	rows = append(rows, []string{"email id", "product id", "quantity", "status"})
	for _, s := range statuses {
		rows = append(rows, []string{s.EmailId, s.ProductId, strconv.Itoa(s.Quantity), string(s.Status)})
	}
	return w.writeFile(OrderStatusFile, rows)
}

func (w *Writer) writeResponses(name string, responses []core.EmailResponse) error {
	rows := make([][]string, 0, len(responses)+1)
	rows = append(rows, []string{"email id", "response"})
	for _, r := range responses {
		rows = append(rows, []string{r.EmailId, r.Content})
	}
	return w.writeFile(name, rows)
}

func (w *Writer) writeFile(name string, rows [][]string) error {
	path := filepath.Join(w.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return cw.Error()
}
