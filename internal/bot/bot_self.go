package bot

import (
	"fmt"
	"io"
	"kicker/internal/util"

	"github.com/bwmarrin/discordgo"
)

func (bot *Bot) cmdRegister(m *discordgo.Message, args []string, out io.Writer) error {
	name := argsAsName(args)
	if name == "" {
		name = m.Author.Username
	}

	if _, err := bot.back.RegisterDiscordPlayer(m.Author.ID, name); err != nil {
		return err
	}

	fmt.Fprintf(out, "You have been registered as `%s`, see you at the table.", name)
	return nil
}

func (bot *Bot) cmdRename(m *discordgo.Message, args []string, out io.Writer) error {
	name := argsAsName(args)
	if name == "" {
		return util.ErrPublic("you forgot to tell me your desired name")
	}

	player, err := bot.back.GetPlayerByDiscordID(m.Author.ID)
	if err != nil {
		return util.ErrPublic("you are not registered, send `!register` first")
	}

	if err := bot.back.UpdatePlayerProfile(player.ID, name, player.Tagline, player.MainKickerID); err != nil {
		return err
	}

	fmt.Fprintf(out, "You'll be henceforth known as `%s` on the rankings.", name)
	return nil
}
