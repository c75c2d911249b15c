package handlers

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"creatorlens/internal/core"
)

// NewUserCmd creates the user command for account provisioning
func NewUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}

	cmd.AddCommand(newUserCreateCmd())

	return cmd
}

func newUserCreateCmd() *cobra.Command {
	var (
		plan         string
		channelID    string
		channelTitle string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user account with an API token",
		Long: `Create a user account and print its API token.

Optionally links a YouTube channel at the same time; the analysis endpoint
only accepts channel ids linked to the requesting account.

Examples:
  creatorlens user create --plan free
  creatorlens user create --plan pro --channel UCxxxx --channel-title "My Channel"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUserCreate(cmd.Context(), plan, channelID, channelTitle)
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "free", "subscription plan (free or pro)")
	cmd.Flags().StringVar(&channelID, "channel", "", "YouTube channel id to link")
	cmd.Flags().StringVar(&channelTitle, "channel-title", "", "display title for the linked channel")

	return cmd
}

func runUserCreate(ctx context.Context, plan, channelID, channelTitle string) error {
	if plan != "free" && plan != "pro" {
		return fmt.Errorf("unknown plan %q (expected free or pro)", plan)
	}

	db, err := connectDB()
	if err != nil {
		return err
	}
	defer db.Close()

	user := &core.User{
		ID:       uuid.New().String(),
		APIToken: uuid.New().String(),
		Plan:     plan,
	}
	if err := db.Users().Create(ctx, user); err != nil {
		return err
	}

	fmt.Printf("Created user %s (plan: %s)\n", user.ID, user.Plan)
	fmt.Printf("API token: %s\n", user.APIToken)

	if channelID != "" {
		channel := &core.Channel{
			ID:               uuid.New().String(),
			UserID:           user.ID,
			YouTubeChannelID: channelID,
			Title:            channelTitle,
		}
		if err := db.Channels().Create(ctx, channel); err != nil {
			return err
		}
		fmt.Printf("Linked channel %s (%s)\n", channel.YouTubeChannelID, channel.Title)
	}

	return nil
}
