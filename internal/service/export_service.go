package service

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/matiashmartinez/taller/internal/domain"
)

// ExportService renders client and service mappings to CSV report files.
// Rows arrive as ToMap-shaped mappings so the exporter stays decoupled
// from the domain structs.
type ExportService interface {
	ExportClients(rows []map[string]any) (string, error)
	ExportServices(rows []map[string]any) (string, error)
	ExportSummary(summary *Summary) (string, error)
}

type exportService struct {
	outputDir string
	log       *slog.Logger
	now       func() time.Time
}

// NewExportService creates an exporter writing into outputDir
func NewExportService(outputDir string, logger *slog.Logger) ExportService {
	return &exportService{outputDir: outputDir, log: logger, now: time.Now}
}

// ExportClients writes a timestamped clients_*.csv and returns its path
func (s *exportService) ExportClients(rows []map[string]any) (string, error) {
	if len(rows) == 0 {
		s.log.Warn("client export requested with no rows")
		return "", fmt.Errorf("no clients to export")
	}

	header := []string{"ID", "First Name", "Last Name", "National ID", "Phone", "State"}
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{
			cell(row["id"]),
			cell(row["first_name"]),
			cell(row["last_name"]),
			cell(row["national_id"]),
			cell(row["phone"]),
			stateLabel(row["inactive"]),
		})
	}

	return s.writeCSV("clients", header, records)
}

// ExportServices writes a timestamped services_*.csv and returns its path
func (s *exportService) ExportServices(rows []map[string]any) (string, error) {
	if len(rows) == 0 {
		s.log.Warn("service export requested with no rows")
		return "", fmt.Errorf("no services to export")
	}

	header := []string{"ID", "Description", "Status", "Entry Date", "Estimated Date", "Cost", "Client ID", "State"}
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{
			cell(row["id"]),
			cell(row["description"]),
			cell(row["status"]),
			cell(row["entry_date"]),
			cell(row["estimated_date"]),
			cell(row["cost"]),
			cell(row["client_id"]),
			stateLabel(row["inactive"]),
		})
	}

	return s.writeCSV("services", header, records)
}

// ExportSummary writes a services_summary_*.csv with per-status counts
// and cost totals
func (s *exportService) ExportSummary(summary *Summary) (string, error) {
	header := []string{"Metric", "Value"}
	records := [][]string{
		{"Active clients", fmt.Sprintf("%d", summary.ActiveClients)},
		{"Active services", fmt.Sprintf("%d", summary.ActiveServices)},
	}
	for _, status := range domain.Statuses {
		records = append(records, []string{
			fmt.Sprintf("Services %s", status),
			fmt.Sprintf("%d", summary.ByStatus[status]),
		})
	}
	records = append(records,
		[]string{"Open cost", fmt.Sprintf("%.2f", summary.OpenCost)},
		[]string{"Total cost", fmt.Sprintf("%.2f", summary.TotalCost)},
	)

	return s.writeCSV("services_summary", header, records)
}

func (s *exportService) writeCSV(prefix string, header []string, records [][]string) (string, error) {
	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	name := fmt.Sprintf("%s_%s.csv", prefix, s.now().Format("20060102_150405"))
	path := filepath.Join(s.outputDir, name)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return "", fmt.Errorf("failed to write report header: %w", err)
	}
	if err := writer.WriteAll(records); err != nil {
		return "", fmt.Errorf("failed to write report rows: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to flush report: %w", err)
	}

	s.log.Info("report written", "path", path, "rows", len(records))
	return path, nil
}

// cell renders a mapping value for CSV output; nil becomes an empty cell
// and costs keep two decimals.
func cell(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.2f", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// stateLabel maps the inactive flag to the human-readable report label
func stateLabel(v any) string {
	if inactive, ok := v.(bool); ok && inactive {
		return "Inactive"
	}
	return "Active"
}
