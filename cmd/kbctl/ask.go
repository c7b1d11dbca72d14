package main

import (
	"errors"
	"fmt"
	"strings"

	"catalog-assistant/internal/models"

	"github.com/spf13/cobra"
)

var askAction string

var askCmd = &cobra.Command{
	Use:   "ask [message]",
	Short: "Ask the assistant a question",
	Example: `  kbctl ask "show me something under 50"
  kbctl ask --action shipping_info`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if askAction != "" {
			resp, err := app.chat.AnswerQuickAction(cmd.Context(), askAction)
			if err != nil {
				failure("%v", err)
				return err
			}
			printReply(resp)
			return nil
		}

		message := strings.Join(args, " ")
		if strings.TrimSpace(message) == "" {
			err := errors.New("a message or --action is required")
			failure("%v", err)
			return err
		}
		printReply(app.chat.Answer(cmd.Context(), message, nil))
		return nil
	},
}

var quickActionsCmd = &cobra.Command{
	Use:   "quick-actions",
	Short: "List the canned quick actions",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		section("Quick actions")
		for _, action := range app.chat.QuickActions() {
			fmt.Printf("  %-14s %s\n", action.Name, action.Message)
		}
	},
}

func init() {
	askCmd.Flags().StringVarP(&askAction, "action", "a", "", "run a quick action instead of a message")
	rootCmd.AddCommand(askCmd, quickActionsCmd)
}

func printReply(resp models.ChatResponse) {
	if resp.Type == models.ResponseTypeError {
		warn("[%s] %s", resp.Type, resp.Message)
		return
	}
	section(fmt.Sprintf("[%s]", resp.Type))
	fmt.Println(resp.Message)
	for _, p := range resp.Products {
		infoColor.Printf("  %s", p.ID)
		fmt.Printf("  %s (%s)\n", p.Title, p.Category)
	}
}
