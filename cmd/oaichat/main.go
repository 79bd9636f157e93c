package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "oaichat",
		Short: "chat relay for the editor sidebar",
	}
	rootCmd.AddCommand(newRunCmd(), newAskCmd())

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}
