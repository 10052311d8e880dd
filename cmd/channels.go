package main

import (
	"context"
	"fmt"

	"dmbot/internal/config"
	"dmbot/internal/registry"
	"dmbot/pkg/domain"
	"dmbot/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// channelsCommand constructs the 'channels' subcommand for operators to inspect
// the channels a Telegram user has registered.
func channelsCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "channels",
		Short: "Lists the Dailymotion channels registered by a Telegram user",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			userID, _ := cmd.Flags().GetInt64("user")

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			reg := registry.New(strg)

			channels, err := reg.List(ctx, domain.UserID(userID))
			if err != nil {
				logger.Fatal(ctx, "could not list channels", zap.Error(err))
			}

			fmt.Printf("%d channel(s) registered by user %d\n", len(channels), userID) //nolint: forbidigo
			for _, channel := range channels {
				hasToken := "no"
				if channel.AccessToken != "" {
					hasToken = "yes"
				}
				//nolint: forbidigo
				fmt.Printf("%d\t%s\t%s\ttoken: %s\tregistered: %s\n",
					channel.ID, channel.Name, channel.Username, hasToken,
					channel.CreatedAt.Format("2006-01-02 15:04:05"))
			}
		},
	}

	cmd.Flags().Int64("user", 0, "Telegram user ID")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
