package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-assistant/internal/llm"
	"github.com/pdiddy/research-assistant/pkg/types"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat about saved papers",
	Long: `Chat starts an interactive conversation grounded in up to 5 saved
papers. The paper context is rebuilt on every turn, so papers fetched or
deleted mid-conversation take effect immediately. End with Ctrl-D.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, _ := cmd.Flags().GetStringSlice("papers")

		cfg := buildConfig()
		papers, cleanup, err := contextPapers(cfg, ids, llm.MaxChatPapers)
		if err != nil {
			return err
		}
		defer cleanup()

		gateway, err := newGateway(cfg)
		if err != nil {
			return err
		}

		fmt.Printf("Chatting over %d papers. Ctrl-D to quit.\n", len(papers))

		// Only user and assistant turns are kept; the system prompt is
		// rebuilt inside the gateway on every request.
		var history []types.ChatMessage
		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				break
			}
			turn := strings.TrimSpace(scanner.Text())
			if turn == "" {
				continue
			}

			reply, err := gateway.Chat(context.Background(), history, papers, turn)
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: %v\n", translateErr(err))
				continue
			}

			fmt.Printf("\n%s\n\n", reply)
			history = append(history,
				types.ChatMessage{Role: types.RoleUser, Content: turn},
				types.ChatMessage{Role: types.RoleAssistant, Content: reply},
			)
		}
		return scanner.Err()
	},
}

func init() {
	chatCmd.Flags().StringSlice("papers", nil, "paper IDs to use as context (default: first saved papers)")

	rootCmd.AddCommand(chatCmd)
}
