package bot

import (
	"fmt"
	"io"
	"kicker/internal/back"
	"kicker/internal/util"
	"strings"

	"github.com/bwmarrin/discordgo"
)

func (bot *Bot) cmdDashboard(m *discordgo.Message, args []string, w io.Writer) error {
	if len(args) > 0 {
		return util.ErrPublic("this command takes no argument")
	}

	player, err := bot.back.GetPlayerByDiscordID(m.Author.ID)
	if err != nil {
		return util.ErrPublic("you are not registered, send `!register` first")
	}

	dashboard, err := bot.back.GetDashboard(player.ID)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Stats for `%s`:\n", dashboard.Name)
	fmt.Fprintf(
		w, "All-time: %d won, %d lost (%d %%)\n",
		dashboard.Wins, dashboard.Losses, dashboard.Ratio,
	)
	fmt.Fprintf(
		w, "This week: %d won, %d lost (%d %%)\n",
		dashboard.WeeklyWins, dashboard.WeeklyLosses, dashboard.WeeklyRatio,
	)

	writeSummaryList(w, "Usual teammates", dashboard.Teammates)
	writeSummaryList(w, "Usual opponents", dashboard.Opponents)

	return nil
}

func writeSummaryList(w io.Writer, title string, players []back.PlayerSummary) {
	if len(players) == 0 {
		return
	}

	names := make([]string, 0, len(players))
	for k := range players {
		names = append(names, players[k].Name)
	}

	fmt.Fprintf(w, "%s: %s\n", title, strings.Join(names, ", "))
}

func (bot *Bot) cmdRankings(_ *discordgo.Message, args []string, w io.Writer) error {
	period := back.PeriodMonth
	if len(args) > 0 {
		var err error
		period, err = back.NewRankingPeriod(args[0])
		if err != nil {
			return err
		}
	}

	rankings, err := bot.back.GetRankings(period)
	if err != nil {
		return err
	}

	if len(rankings.Players) == 0 {
		fmt.Fprint(w, "Nobody played over that period, rankings are empty.")
		return nil
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "%s:\n```\n", rankings.Label)
	for k, v := range rankings.Players {
		fmt.Fprintf(&buf, "%2d. %-32s %3d won %3d lost\n", k+1, v.Name, v.Won, v.Lost)
	}
	buf.WriteString("```")

	fmt.Fprint(w, buf.String())
	return nil
}

func (bot *Bot) cmdKickers(_ *discordgo.Message, args []string, w io.Writer) error {
	if len(args) > 0 {
		return util.ErrPublic("this command takes no argument")
	}

	kickers, err := bot.back.GetKickers()
	if err != nil {
		return err
	}

	if len(kickers) == 0 {
		fmt.Fprint(w, "There is no registered kicker yet.")
		return nil
	}

	fmt.Fprint(w, "Available kickers:\n\n")
	for k, v := range kickers {
		if v.Location.Valid {
			fmt.Fprintf(w, "%d. %s (%s)\n", k+1, v.Name, v.Location.String)
		} else {
			fmt.Fprintf(w, "%d. %s\n", k+1, v.Name)
		}
	}

	return nil
}
