package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/matiashmartinez/taller/internal/domain"
	"github.com/matiashmartinez/taller/internal/repository"
	"github.com/spf13/cobra"
)

var servicesCmd = &cobra.Command{
	Use:   "services",
	Short: "Manage service orders",
	Long:  `List, add, edit, and track the services performed for clients.`,
}

var servicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List service orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		includeInactive, _ := cmd.Flags().GetBool("inactive")
		clientID, _ := cmd.Flags().GetInt64("client")
		statusFlag, _ := cmd.Flags().GetString("status")

		var services []*domain.Service
		var err error
		switch {
		case statusFlag != "":
			status, perr := domain.ParseStatus(statusFlag)
			if perr != nil {
				return perr
			}
			services, err = appInstance.ServiceRepo.ListByStatus(ctx, status)
		case clientID > 0:
			services, err = appInstance.ServiceRepo.ListForClient(ctx, clientID, includeInactive)
		default:
			services, err = appInstance.ServiceRepo.List(ctx, includeInactive)
		}
		if err != nil {
			return fmt.Errorf("failed to list services: %w", err)
		}

		printServices(services)
		return nil
	},
}

var servicesAddCmd = &cobra.Command{
	Use:   "add [description]",
	Short: "Add a new service order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		clientID, _ := cmd.Flags().GetInt64("client")
		cost, _ := cmd.Flags().GetFloat64("cost")
		estimated, _ := cmd.Flags().GetString("estimated")

		svc := domain.NewService(args[0], clientID)
		svc.Cost = cost
		if estimated != "" {
			date, err := time.Parse(domain.DateLayout, estimated)
			if err != nil {
				return fmt.Errorf("invalid estimated date %q (want YYYY-MM-DD)", estimated)
			}
			svc.EstimatedDate = &date
		}

		if err := appInstance.ServiceRepo.Create(ctx, svc); err != nil {
			return fmt.Errorf("failed to create service: %w", err)
		}

		fmt.Printf("✓ Service created (ID: %d) for client %d\n", svc.ID, svc.ClientID)
		return nil
	},
}

var servicesEditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit an existing service order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid service ID: %w", err)
		}

		svc, err := appInstance.ServiceRepo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get service: %w", err)
		}

		// Update fields if flags provided
		if cmd.Flags().Changed("description") {
			svc.Description, _ = cmd.Flags().GetString("description")
		}
		if cmd.Flags().Changed("cost") {
			svc.Cost, _ = cmd.Flags().GetFloat64("cost")
		}
		if cmd.Flags().Changed("client") {
			svc.ClientID, _ = cmd.Flags().GetInt64("client")
		}
		if cmd.Flags().Changed("estimated") {
			estimated, _ := cmd.Flags().GetString("estimated")
			if estimated == "" {
				svc.EstimatedDate = nil
			} else {
				date, err := time.Parse(domain.DateLayout, estimated)
				if err != nil {
					return fmt.Errorf("invalid estimated date %q (want YYYY-MM-DD)", estimated)
				}
				svc.EstimatedDate = &date
			}
		}

		if err := appInstance.ServiceRepo.Update(ctx, svc); err != nil {
			return fmt.Errorf("failed to update service: %w", err)
		}

		fmt.Printf("✓ Service updated (ID: %d)\n", svc.ID)
		return nil
	},
}

var servicesSetStatusCmd = &cobra.Command{
	Use:   "set-status [id] [status]",
	Short: "Move a service to a new status (PENDING, IN_PROGRESS, COMPLETED, CANCELLED)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid service ID: %w", err)
		}

		status, err := domain.ParseStatus(args[1])
		if err != nil {
			return err
		}

		if err := appInstance.ServiceRepo.SetStatus(ctx, id, status); err != nil {
			return fmt.Errorf("failed to set status: %w", err)
		}

		fmt.Printf("✓ Service %d moved to %s\n", id, status)
		return nil
	},
}

var servicesDeactivateCmd = &cobra.Command{
	Use:   "deactivate [id]",
	Short: "Deactivate a service order (logical delete)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid service ID: %w", err)
		}

		if err := appInstance.ServiceRepo.Deactivate(ctx, id); err != nil {
			return fmt.Errorf("failed to deactivate service: %w", err)
		}

		fmt.Printf("✓ Service deactivated (ID: %d)\n", id)
		return nil
	},
}

var servicesRestoreCmd = &cobra.Command{
	Use:   "restore [id]",
	Short: "Restore a deactivated service order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid service ID: %w", err)
		}

		if err := appInstance.ServiceRepo.Reactivate(ctx, id); err != nil {
			return fmt.Errorf("failed to restore service: %w", err)
		}

		fmt.Printf("✓ Service restored (ID: %d)\n", id)
		return nil
	},
}

var servicesDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Permanently delete a service order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid service ID: %w", err)
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirmPrompt(fmt.Sprintf("Permanently delete service %d? This cannot be undone", id)) {
			fmt.Println("Cancelled")
			return nil
		}

		if err := appInstance.ServiceRepo.Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("service %d does not exist", id)
			}
			return fmt.Errorf("failed to delete service: %w", err)
		}

		fmt.Printf("✓ Service deleted (ID: %d)\n", id)
		return nil
	},
}

func printServices(services []*domain.Service) {
	if len(services) == 0 {
		fmt.Println("No services found")
		return
	}

	fmt.Printf("%-5s %-32s %-12s %-12s %-12s %10s %-7s %-10s\n",
		"ID", "Description", "Status", "Entry", "Estimated", "Cost", "Client", "State")
	fmt.Println(strings.Repeat("-", 106))

	for _, svc := range services {
		estimated := ""
		if svc.EstimatedDate != nil {
			estimated = svc.EstimatedDate.Format(domain.DateLayout)
		}
		state := "Active"
		if svc.Inactive {
			state = "Inactive"
		}
		fmt.Printf("%-5d %-32s %-12s %-12s %-12s %10.2f %-7d %-10s\n",
			svc.ID,
			truncate(svc.Description, 32),
			svc.Status,
			svc.EntryDate.Format(domain.DateLayout),
			estimated,
			svc.Cost,
			svc.ClientID,
			state,
		)
	}

	fmt.Printf("\nTotal: %d service(s)\n", len(services))
}

func init() {
	servicesCmd.AddCommand(servicesListCmd)
	servicesCmd.AddCommand(servicesAddCmd)
	servicesCmd.AddCommand(servicesEditCmd)
	servicesCmd.AddCommand(servicesSetStatusCmd)
	servicesCmd.AddCommand(servicesDeactivateCmd)
	servicesCmd.AddCommand(servicesRestoreCmd)
	servicesCmd.AddCommand(servicesDeleteCmd)

	// List flags
	servicesListCmd.Flags().Bool("inactive", false, "Include deactivated services")
	servicesListCmd.Flags().Int64("client", 0, "Only services for this client ID")
	servicesListCmd.Flags().String("status", "", "Only active services in this status")

	// Add flags
	servicesAddCmd.Flags().Int64("client", 0, "Owning client ID (required)")
	servicesAddCmd.MarkFlagRequired("client")
	servicesAddCmd.Flags().Float64("cost", 0, "Estimated cost")
	servicesAddCmd.Flags().String("estimated", "", "Estimated completion date (YYYY-MM-DD)")

	// Edit flags
	servicesEditCmd.Flags().String("description", "", "New description")
	servicesEditCmd.Flags().Float64("cost", 0, "New cost")
	servicesEditCmd.Flags().Int64("client", 0, "New owning client ID")
	servicesEditCmd.Flags().String("estimated", "", "New estimated date (YYYY-MM-DD), empty to clear")

	// Delete flags
	servicesDeleteCmd.Flags().Bool("yes", false, "Skip confirmation")
}
