package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/xxxsen/oaichat/internal/model"
)

func newAskCmd() *cobra.Command {
	var configPath string
	var filePath string
	var raw bool
	cmd := &cobra.Command{
		Use:   "ask [query...]",
		Short: "run one chat exchange and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			chat, err := newChatService(cfg)
			if err != nil {
				return err
			}
			q := model.Query{Text: strings.Join(args, " ")}
			if filePath != "" {
				data, err := os.ReadFile(filePath)
				if err != nil {
					return fmt.Errorf("read attached file: %w", err)
				}
				q.FileContent = string(data)
			}
			reply := chat.Exchange(context.Background(), q)
			return printReply(cmd.OutOrStdout(), reply.Message, raw)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	cmd.Flags().StringVar(&filePath, "file", "", "text file to attach to the query")
	cmd.Flags().BoolVar(&raw, "raw", false, "print the reply without markdown rendering")
	return cmd
}

func printReply(w io.Writer, msg model.ChatMessage, raw bool) error {
	if raw || !msg.Markdown {
		_, err := fmt.Fprintln(w, msg.Text)
		return err
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		_, err = fmt.Fprintln(w, msg.Text)
		return err
	}
	out, err := renderer.Render(msg.Text)
	if err != nil {
		_, err = fmt.Fprintln(w, msg.Text)
		return err
	}
	_, err = fmt.Fprint(w, out)
	return err
}
