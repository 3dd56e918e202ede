package bot

import (
	"errors"
	"fmt"
	"io"
	"kicker/internal/back"
	"kicker/internal/util"
	"log"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
)

type commandHandler func(m *discordgo.Message, args []string, w io.Writer) error

type Bot struct {
	back *back.Back

	startedAt   time.Time
	token       string
	dg          *discordgo.Session
	adminUserID string

	handlers map[string]commandHandler
}

func New(back *back.Back, token string, adminUserID string) (*Bot, error) {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}

	bot := &Bot{
		back:        back,
		adminUserID: adminUserID,
		token:       token,
		dg:          dg,
		startedAt:   time.Now(),
	}

	dg.AddHandler(bot.handleMessage)

	bot.handlers = map[string]commandHandler{
		"!help":     bot.cmdHelp,
		"!register": bot.cmdRegister,
		"!rename":   bot.cmdRename,

		"!dashboard": bot.cmdDashboard,
		"!kickers":   bot.cmdKickers,
		"!rankings":  bot.cmdRankings,
	}

	return bot, nil
}

func (bot *Bot) Serve(wg *sync.WaitGroup, done <-chan struct{}) {
	log.Println("info: starting Discord bot")
	wg.Add(1)
	defer wg.Done()
	if err := bot.dg.Open(); err != nil {
		log.Panic(err)
	}

	<-done

	if err := bot.dg.Close(); err != nil {
		log.Printf("error: could not close Discord bot: %s", err)
	}
}

func (bot *Bot) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	// Ignore webooks, self, bots, non-commands.
	if m.Author == nil || m.Author.ID == s.State.User.ID ||
		m.Author.Bot || !strings.HasPrefix(m.Content, "!") {
		return
	}

	log.Printf(
		"info: <%s(%s)@%s#%s> %s",
		m.Author.String(), m.Author.ID,
		m.GuildID, m.ChannelID,
		m.Content,
	)

	out, err := newUserChannelWriter(s, m.Author.ID)
	if err != nil {
		log.Printf("error: could not create channel writer: %s", err)
	}
	defer func() {
		if err := out.Flush(); err != nil {
			log.Printf("error: could not send message: %s", err)
		}
	}()

	defer func() {
		r := recover()
		if r != nil {
			out.Reset()
			fmt.Fprintf(out, "Something went very wrong, please tell <@%s>.", bot.adminUserID)
			log.Print("panic: ", r)
			log.Print(debug.Stack())
		}
	}()

	if err := bot.dispatch(m.Message, out); err != nil {
		out.Reset()
		fmt.Fprintln(out, "There was an error processing your command.")

		if errors.Is(err, util.ErrPublic("")) {
			fmt.Fprintf(out, "```%s\n```\nIf you need help, send `!help`.", err)
		} else {
			fmt.Fprintf(out, "<@%s> will check the logs when they have time.", bot.adminUserID)
		}

		log.Printf("error: failed to process command: %s", err)
	}
}

func parseCommand(cmd string) (string, []string) {
	parts := strings.Split(cmd, " ")

	switch len(parts) {
	case 0:
		return "", nil
	case 1:
		return parts[0], nil
	default:
		return parts[0], parts[1:]
	}
}

func (bot *Bot) dispatch(m *discordgo.Message, w io.Writer) error {
	command, args := parseCommand(m.Content)
	handler, ok := bot.handlers[command]
	if !ok {
		return util.ErrPublic(fmt.Sprintf("invalid command: %v", m.Content))
	}

	return handler(m, args, w)
}

func (bot *Bot) cmdHelp(_ *discordgo.Message, _ []string, w io.Writer) error {
	fmt.Fprint(w, strings.ReplaceAll(`Available commands:
'''
!dashboard         # your win/loss stats, usual teammates and opponents
!help              # display this help message
!kickers           # list the registered kicker tables
!rankings [PERIOD] # leaderboard over a week, month (default), or year
!register [NAME]   # create your account and link it to your Discord account
!rename NAME       # set your display name to NAME
'''`, "'''", "```"))

	return nil
}

func argsAsName(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
