// handlers.go — commands: !coinflip, !dice, !slots, !roulette, !rps,
// !guess, !rr, !gstats.
package gambling

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"github.com/pilot2254/contrast-bot-sub000/internal/common"
)

// Handler handles gambling commands.
type Handler struct {
	service *Service
	session *discordgo.Session
}

// NewHandler creates the gambling command handler.
func NewHandler(service *Service, session *discordgo.Session) *Handler {
	return &Handler{service: service, session: session}
}

// HandleCoinflip handles !coinflip <bet> <heads|tails>.
func (h *Handler) HandleCoinflip(ctx context.Context, m *discordgo.MessageCreate, args []string) {
	if len(args) < 2 {
		h.sendMessage(m.ChannelID, "❌ Usage: !coinflip <bet> <heads|tails>")
		return
	}
	bet, ok := h.parseBet(m.ChannelID, args[0])
	if !ok {
		return
	}
	call := strings.ToLower(args[1])

	out, err := h.service.PlayCoinflip(ctx, m.Author.ID, bet, call)
	if err != nil {
		h.replyBetError(m.ChannelID, err)
		return
	}

	if out.Win > 0 {
		h.sendMessage(m.ChannelID, fmt.Sprintf("🪙 %s! You won %s", out.Result, common.FormatAmount(out.Win)))
	} else {
		h.sendMessage(m.ChannelID, fmt.Sprintf("🪙 %s. You lost %s", out.Result, common.FormatAmount(bet)))
	}
}

// HandleDice handles !dice <bet> <count> <sum N|low|high|odd|even>.
func (h *Handler) HandleDice(ctx context.Context, m *discordgo.MessageCreate, args []string) {
	if len(args) < 3 {
		h.sendMessage(m.ChannelID, "❌ Usage: !dice <bet> <1-3> <sum N|low|high|odd|even>")
		return
	}
	bet, ok := h.parseBet(m.ChannelID, args[0])
	if !ok {
		return
	}
	count, err := strconv.Atoi(args[1])
	if err != nil {
		h.sendMessage(m.ChannelID, "❌ Dice count must be 1-3")
		return
	}

	betKind := strings.ToLower(args[2])
	target := 0
	if betKind == DiceBetSum {
		if len(args) < 4 {
			h.sendMessage(m.ChannelID, "❌ Usage: !dice <bet> <1-3> sum <target>")
			return
		}
		target, err = strconv.Atoi(args[3])
		if err != nil {
			h.sendMessage(m.ChannelID, "❌ Target sum must be a number")
			return
		}
	}

	out, err := h.service.PlayDice(ctx, m.Author.ID, bet, count, betKind, target)
	if err != nil {
		h.replyBetError(m.ChannelID, err)
		return
	}

	rolls := make([]string, len(out.Dice))
	for i, d := range out.Dice {
		rolls[i] = strconv.Itoa(d)
	}
	text := fmt.Sprintf("🎲 Rolled %s (sum %d). ", strings.Join(rolls, " "), out.Sum)
	if out.Win > 0 {
		text += "You won " + common.FormatAmount(out.Win)
	} else {
		text += "You lost " + common.FormatAmount(bet)
	}
	h.sendMessage(m.ChannelID, text)
}

// HandleSlots handles !slots <bet>.
func (h *Handler) HandleSlots(ctx context.Context, m *discordgo.MessageCreate, args []string) {
	if len(args) < 1 {
		h.sendMessage(m.ChannelID, "❌ Usage: !slots <bet>")
		return
	}
	bet, ok := h.parseBet(m.ChannelID, args[0])
	if !ok {
		return
	}

	res, err := h.service.PlaySlots(ctx, m.Author.ID, bet)
	if err != nil {
		h.replyBetError(m.ChannelID, err)
		return
	}

	grid := strings.Join(res.Emojis[:], " | ")
	switch {
	case res.Jackpot:
		h.sendMessage(m.ChannelID, fmt.Sprintf("🎰 %s\n💥 JACKPOT! You won %s", grid, common.FormatAmount(res.Win)))
	case res.Win > 0:
		h.sendMessage(m.ChannelID, fmt.Sprintf("🎰 %s\nYou won %s", grid, common.FormatAmount(res.Win)))
	default:
		h.sendMessage(m.ChannelID, fmt.Sprintf("🎰 %s\nYou lost %s", grid, common.FormatAmount(bet)))
	}
}

// HandleRoulette handles !roulette <bet> <kind> [number] [spins].
func (h *Handler) HandleRoulette(ctx context.Context, m *discordgo.MessageCreate, args []string) {
	if len(args) < 2 {
		h.sendMessage(m.ChannelID, "❌ Usage: !roulette <bet> <red|black|odd|even|high|low|number N> [spins]")
		return
	}
	bet, ok := h.parseBet(m.ChannelID, args[0])
	if !ok {
		return
	}

	betKind := strings.ToLower(args[1])
	number := 0
	rest := args[2:]
	if betKind == RouletteBetNumber {
		if len(rest) < 1 {
			h.sendMessage(m.ChannelID, "❌ Usage: !roulette <bet> number <0-36> [spins]")
			return
		}
		var err error
		number, err = strconv.Atoi(rest[0])
		if err != nil {
			h.sendMessage(m.ChannelID, "❌ Number must be 0-36")
			return
		}
		rest = rest[1:]
	}

	spins := 1
	if len(rest) > 0 {
		var err error
		spins, err = strconv.Atoi(rest[0])
		if err != nil {
			h.sendMessage(m.ChannelID, "❌ Spins must be 1-10")
			return
		}
	}

	out, err := h.service.PlayRoulette(ctx, m.Author.ID, bet, betKind, number, spins)
	if err != nil {
		h.replyBetError(m.ChannelID, err)
		return
	}

	pockets := make([]string, len(out.Pockets))
	for i, p := range out.Pockets {
		pockets[i] = strconv.Itoa(p)
	}
	net := out.TotalWin - out.TotalBet
	text := fmt.Sprintf("🎡 Pockets: %s\nStaked %s, won %s (net %s)",
		strings.Join(pockets, " "),
		common.GroupDigits(out.TotalBet), common.GroupDigits(out.TotalWin), common.GroupDigits(net))
	h.sendMessage(m.ChannelID, text)
}

// HandleRPS handles !rps <bet> <rock|paper|scissors>.
func (h *Handler) HandleRPS(ctx context.Context, m *discordgo.MessageCreate, args []string) {
	if len(args) < 2 {
		h.sendMessage(m.ChannelID, "❌ Usage: !rps <bet> <rock|paper|scissors>")
		return
	}
	bet, ok := h.parseBet(m.ChannelID, args[0])
	if !ok {
		return
	}

	out, err := h.service.PlayRPS(ctx, m.Author.ID, bet, strings.ToLower(args[1]))
	if err != nil {
		h.replyBetError(m.ChannelID, err)
		return
	}

	switch {
	case out.Tie:
		h.sendMessage(m.ChannelID, fmt.Sprintf("✊ Bot chose %s — tie, bet returned", out.BotChoice))
	case out.Win > 0:
		h.sendMessage(m.ChannelID, fmt.Sprintf("✊ Bot chose %s — you won %s", out.BotChoice, common.FormatAmount(out.Win)))
	default:
		h.sendMessage(m.ChannelID, fmt.Sprintf("✊ Bot chose %s — you lost %s", out.BotChoice, common.FormatAmount(bet)))
	}
}

// HandleGuess handles !guess <bet> <range> <number>.
func (h *Handler) HandleGuess(ctx context.Context, m *discordgo.MessageCreate, args []string) {
	if len(args) < 3 {
		h.sendMessage(m.ChannelID, "❌ Usage: !guess <bet> <range 2-100> <your number>")
		return
	}
	bet, ok := h.parseBet(m.ChannelID, args[0])
	if !ok {
		return
	}
	rangeSize, err1 := strconv.Atoi(args[1])
	guess, err2 := strconv.Atoi(args[2])
	if err1 != nil || err2 != nil {
		h.sendMessage(m.ChannelID, "❌ Range and guess must be numbers")
		return
	}

	out, err := h.service.PlayNumberGuess(ctx, m.Author.ID, bet, rangeSize, guess)
	if err != nil {
		h.replyBetError(m.ChannelID, err)
		return
	}

	if out.Win > 0 {
		h.sendMessage(m.ChannelID, fmt.Sprintf("🔢 Drawn %d — hit! ×%d pays %s",
			out.Drawn, out.Multiplier, common.FormatAmount(out.Win)))
	} else {
		h.sendMessage(m.ChannelID, fmt.Sprintf("🔢 Drawn %d — you guessed %d. Lost %s",
			out.Drawn, guess, common.FormatAmount(bet)))
	}
}

// HandleRussianRoulette handles !rr <bullets>. Stakes the whole balance.
func (h *Handler) HandleRussianRoulette(ctx context.Context, m *discordgo.MessageCreate, args []string) {
	if len(args) < 1 {
		h.sendMessage(m.ChannelID, "❌ Usage: !rr <bullets 1-5> — stakes your ENTIRE balance")
		return
	}
	bullets, err := strconv.Atoi(args[0])
	if err != nil {
		h.sendMessage(m.ChannelID, "❌ Bullets must be 1-5")
		return
	}

	out, err := h.service.PlayRussianRoulette(ctx, m.Author.ID, bullets)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrGameOnCooldown):
			h.sendMessage(m.ChannelID, "⏳ "+err.Error())
		case errors.Is(err, common.ErrNothingToStake):
			h.sendMessage(m.ChannelID, "❌ Your balance is empty — nothing to stake")
		default:
			h.replyBetError(m.ChannelID, err)
		}
		return
	}

	if out.Survived {
		h.sendMessage(m.ChannelID, fmt.Sprintf("🔫 *click* — survived! Staked %s at ×%d, won %s",
			common.GroupDigits(out.Stake), out.Multiplier, common.FormatAmount(out.Win)))
	} else {
		h.sendMessage(m.ChannelID, fmt.Sprintf("💀 BANG. %s gone.", common.FormatAmount(out.Stake)))
	}
}

// HandleStats handles !gstats.
func (h *Handler) HandleStats(ctx context.Context, m *discordgo.MessageCreate) {
	stats, err := h.service.GetStats(ctx, m.Author.ID)
	if err != nil {
		log.WithError(err).Error("gambling stats lookup failed")
		h.sendMessage(m.ChannelID, "❌ Could not fetch gambling stats")
		return
	}

	h.sendMessage(m.ChannelID, fmt.Sprintf(
		"📊 Gambling stats:\nGames: %d\nTotal bet: %s\nTotal won: %s\nTotal lost: %s\nBiggest win: %s",
		stats.GamesPlayed,
		common.GroupDigits(stats.TotalBet), common.GroupDigits(stats.TotalWon),
		common.GroupDigits(stats.TotalLost), common.GroupDigits(stats.BiggestWin)))
}

func (h *Handler) parseBet(channelID, arg string) (int64, bool) {
	bet, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || bet <= 0 {
		h.sendMessage(channelID, "❌ Bet must be a positive number")
		return 0, false
	}
	return bet, true
}

func (h *Handler) replyBetError(channelID string, err error) {
	switch {
	case errors.Is(err, common.ErrInsufficientFunds):
		h.sendMessage(channelID, "❌ Not enough coins for that bet")
	case errors.Is(err, common.ErrBetTooLarge):
		h.sendMessage(channelID, fmt.Sprintf("❌ Max bet is %s", common.FormatAmount(PerBetCeiling)))
	case errors.Is(err, common.ErrInvalidAmount):
		h.sendMessage(channelID, "❌ Bet must be positive")
	default:
		log.WithError(err).Error("game failed")
		h.sendMessage(channelID, "❌ "+err.Error())
	}
}

func (h *Handler) sendMessage(channelID, text string) {
	if _, err := h.session.ChannelMessageSend(channelID, text); err != nil {
		log.WithError(err).Error("failed to send message")
	}
}
