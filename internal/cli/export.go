package cli

import (
	"context"
	"fmt"

	"github.com/matiashmartinez/taller/internal/domain"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export CSV reports",
	Long:  `Write clients, services, or summary reports as CSV files into the export directory.`,
}

var exportClientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Export clients to CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		includeInactive, _ := cmd.Flags().GetBool("inactive")

		clients, err := appInstance.ClientRepo.List(ctx, includeInactive)
		if err != nil {
			return fmt.Errorf("failed to list clients: %w", err)
		}

		rows := make([]map[string]any, 0, len(clients))
		for _, client := range clients {
			rows = append(rows, client.ToMap())
		}

		path, err := appInstance.ExportService.ExportClients(rows)
		if err != nil {
			return err
		}

		fmt.Printf("✓ Report written: %s\n", path)
		return nil
	},
}

var exportServicesCmd = &cobra.Command{
	Use:   "services",
	Short: "Export service orders to CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		includeInactive, _ := cmd.Flags().GetBool("inactive")

		services, err := appInstance.ServiceRepo.List(ctx, includeInactive)
		if err != nil {
			return fmt.Errorf("failed to list services: %w", err)
		}

		rows := make([]map[string]any, 0, len(services))
		for _, svc := range services {
			rows = append(rows, svc.ToMap())
		}

		path, err := appInstance.ExportService.ExportServices(rows)
		if err != nil {
			return err
		}

		fmt.Printf("✓ Report written: %s\n", path)
		return nil
	},
}

var exportSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Export a services summary to CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		summary, err := appInstance.SummaryService.Build(ctx)
		if err != nil {
			return fmt.Errorf("failed to build summary: %w", err)
		}

		path, err := appInstance.ExportService.ExportSummary(summary)
		if err != nil {
			return err
		}

		fmt.Printf("✓ Report written: %s\n", path)
		for _, status := range domain.Statuses {
			fmt.Printf("  %s: %d\n", status, summary.ByStatus[status])
		}
		return nil
	},
}

func init() {
	exportCmd.AddCommand(exportClientsCmd)
	exportCmd.AddCommand(exportServicesCmd)
	exportCmd.AddCommand(exportSummaryCmd)

	exportClientsCmd.Flags().Bool("inactive", false, "Include deactivated clients")
	exportServicesCmd.Flags().Bool("inactive", false, "Include deactivated services")
}
