package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lumen/internal/console"
	"github.com/abhisek/lumen/internal/content"
	"github.com/abhisek/lumen/internal/tutor"
)

var chatCmd = &cobra.Command{
	Use:   "chat <topic>",
	Short: "Ask follow-up questions about a topic",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, true)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		topic := strings.Join(args, " ")
		c := console.New(cmd.InOrStdin(), cmd.OutOrStdout())
		c.Title("Chat: " + topic)
		c.Dim("Ask anything. An empty line or :q ends the chat.")

		var history []content.ChatMessage
		for {
			input, err := c.Prompt("\nYou: ")
			if err != nil {
				return ignoreClosed(err)
			}
			if input == "" || input == ":q" {
				return nil
			}
			reply, err := e.tutor.Chat(ctx, topic, history, input)
			if err != nil {
				e.log.Error("chat failed", "topic", topic, "error", err)
				c.Error(tutor.UserMessage(err))
				continue
			}
			c.Println()
			c.Println(reply)
			history = append(history,
				content.ChatMessage{Role: content.ChatUser, Text: input},
				content.ChatMessage{Role: content.ChatModel, Text: reply},
			)
		}
	},
}
