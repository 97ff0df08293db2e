// Registers the bot's global slash commands. Run once after deploying
// or whenever the command surface changes.
package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/skyhigh636/Skybot/internal/discordapi"
	"github.com/skyhigh636/Skybot/internal/rps"
)

func main() {
	appID := strings.TrimSpace(os.Getenv("APP_ID"))
	token := strings.TrimSpace(os.Getenv("DISCORD_TOKEN"))
	if appID == "" || token == "" {
		log.Fatal("APP_ID and DISCORD_TOKEN are required")
	}

	choices := rps.DefaultChoiceSet().Choices()
	commandChoices := make([]discordapi.OptionChoice, 0, len(choices))
	for _, c := range choices {
		commandChoices = append(commandChoices, discordapi.OptionChoice{
			Name:  capitalize(string(c)),
			Value: strings.ToLower(string(c)),
		})
	}

	commands := []discordapi.Command{
		{
			Name:        "challenge",
			Description: "Challenge to a match of rock paper scissors",
			Type:        discordapi.CommandTypeChatInput,
			Options: []discordapi.CommandOption{
				{Type: discordapi.OptionUser, Name: "user", Description: "User to challenge", Required: true},
				{Type: discordapi.OptionString, Name: "object", Description: "Pick your object", Required: true, Choices: commandChoices},
			},
			IntegrationTypes: []int{0, 1},
			Contexts:         []int{0, 2},
		},
		{
			Name:        "roll",
			Description: "Roll a dice",
			Type:        discordapi.CommandTypeChatInput,
			Options: []discordapi.CommandOption{
				{Type: discordapi.OptionInteger, Name: "sides", Description: "Number of sides on the dice"},
				{Type: discordapi.OptionString, Name: "wager", Description: "Put something at stake"},
				{Type: discordapi.OptionInteger, Name: "desired", Description: "Desired outcome of the roll"},
			},
			IntegrationTypes: []int{0, 1},
			Contexts:         []int{0, 2},
		},
		{
			Name:        "test",
			Description: "Basic command",
			Type:        discordapi.CommandTypeChatInput,
			Contexts:    []int{0, 2},
		},
	}

	client := discordapi.NewClient(appID, token)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := client.RegisterCommands(ctx, commands); err != nil {
		log.Fatalf("register commands: %v", err)
	}
	log.Println("commands successfully registered")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
