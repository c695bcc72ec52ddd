package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/matiashmartinez/taller/internal/domain"
	"github.com/matiashmartinez/taller/internal/repository"
	"github.com/spf13/cobra"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Manage clients",
	Long:  `List, add, edit, search, and deactivate clients.`,
}

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		includeInactive, _ := cmd.Flags().GetBool("inactive")

		clients, err := appInstance.ClientRepo.List(ctx, includeInactive)
		if err != nil {
			return fmt.Errorf("failed to list clients: %w", err)
		}

		printClients(clients)
		return nil
	},
}

var clientsAddCmd = &cobra.Command{
	Use:   "add [first name] [last name] [national id]",
	Short: "Add a new client",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		client := domain.NewClient(args[0], args[1], args[2])
		client.Phone, _ = cmd.Flags().GetString("phone")

		if err := appInstance.ClientRepo.Create(ctx, client); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return fmt.Errorf("a client with national id %s already exists", client.NationalID)
			}
			return fmt.Errorf("failed to create client: %w", err)
		}

		fmt.Printf("✓ Client created: %s (ID: %d)\n", client.FullName(), client.ID)
		return nil
	},
}

var clientsEditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit an existing client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid client ID: %w", err)
		}

		client, err := appInstance.ClientRepo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get client: %w", err)
		}

		// Update fields if flags provided
		if cmd.Flags().Changed("first-name") {
			client.FirstName, _ = cmd.Flags().GetString("first-name")
		}
		if cmd.Flags().Changed("last-name") {
			client.LastName, _ = cmd.Flags().GetString("last-name")
		}
		if cmd.Flags().Changed("national-id") {
			client.NationalID, _ = cmd.Flags().GetString("national-id")
		}
		if cmd.Flags().Changed("phone") {
			client.Phone, _ = cmd.Flags().GetString("phone")
		}

		if err := appInstance.ClientRepo.Update(ctx, client); err != nil {
			return fmt.Errorf("failed to update client: %w", err)
		}

		fmt.Printf("✓ Client updated: %s\n", client.FullName())
		return nil
	},
}

var clientsSearchCmd = &cobra.Command{
	Use:   "search [field] [value]",
	Short: "Search active clients by first_name, last_name, or national_id",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		field, err := repository.ParseSearchField(args[0])
		if err != nil {
			return err
		}

		clients, err := appInstance.ClientRepo.Search(ctx, field, args[1])
		if err != nil {
			return fmt.Errorf("failed to search clients: %w", err)
		}

		printClients(clients)
		return nil
	},
}

var clientsDeactivateCmd = &cobra.Command{
	Use:   "deactivate [id]",
	Short: "Deactivate a client (logical delete)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid client ID: %w", err)
		}

		if err := appInstance.ClientRepo.Deactivate(ctx, id); err != nil {
			return fmt.Errorf("failed to deactivate client: %w", err)
		}

		fmt.Printf("✓ Client deactivated (ID: %d)\n", id)
		return nil
	},
}

var clientsRestoreCmd = &cobra.Command{
	Use:   "restore [id]",
	Short: "Restore a deactivated client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid client ID: %w", err)
		}

		if err := appInstance.ClientRepo.Reactivate(ctx, id); err != nil {
			return fmt.Errorf("failed to restore client: %w", err)
		}

		fmt.Printf("✓ Client restored (ID: %d)\n", id)
		return nil
	},
}

var clientsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Permanently delete a client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid client ID: %w", err)
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirmPrompt(fmt.Sprintf("Permanently delete client %d? This cannot be undone", id)) {
			fmt.Println("Cancelled")
			return nil
		}

		if err := appInstance.ClientRepo.Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return fmt.Errorf("client %d still has services; deactivate it instead", id)
			}
			return fmt.Errorf("failed to delete client: %w", err)
		}

		fmt.Printf("✓ Client deleted (ID: %d)\n", id)
		return nil
	},
}

var clientsLastCmd = &cobra.Command{
	Use:   "last",
	Short: "Show the most recently registered client",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		client, err := appInstance.ClientRepo.MostRecent(ctx)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				fmt.Println("No clients registered")
				return nil
			}
			return fmt.Errorf("failed to get most recent client: %w", err)
		}

		printClients([]*domain.Client{client})
		return nil
	},
}

func printClients(clients []*domain.Client) {
	if len(clients) == 0 {
		fmt.Println("No clients found")
		return
	}

	fmt.Printf("%-5s %-30s %-12s %-15s %-10s\n", "ID", "Name", "National ID", "Phone", "State")
	fmt.Println("---------------------------------------------------------------------------")

	for _, client := range clients {
		state := "Active"
		if client.Inactive {
			state = "Inactive"
		}
		fmt.Printf("%-5d %-30s %-12s %-15s %-10s\n",
			client.ID,
			truncate(client.FullName(), 30),
			client.NationalID,
			client.Phone,
			state,
		)
	}

	fmt.Printf("\nTotal: %d client(s)\n", len(clients))
}

func init() {
	clientsCmd.AddCommand(clientsListCmd)
	clientsCmd.AddCommand(clientsAddCmd)
	clientsCmd.AddCommand(clientsEditCmd)
	clientsCmd.AddCommand(clientsSearchCmd)
	clientsCmd.AddCommand(clientsDeactivateCmd)
	clientsCmd.AddCommand(clientsRestoreCmd)
	clientsCmd.AddCommand(clientsDeleteCmd)
	clientsCmd.AddCommand(clientsLastCmd)

	// List flags
	clientsListCmd.Flags().Bool("inactive", false, "Include deactivated clients")

	// Add flags
	clientsAddCmd.Flags().String("phone", "", "Client phone number")

	// Edit flags
	clientsEditCmd.Flags().String("first-name", "", "New first name")
	clientsEditCmd.Flags().String("last-name", "", "New last name")
	clientsEditCmd.Flags().String("national-id", "", "New national id")
	clientsEditCmd.Flags().String("phone", "", "New phone number")

	// Delete flags
	clientsDeleteCmd.Flags().Bool("yes", false, "Skip confirmation")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
