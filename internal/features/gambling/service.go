// service.go — the wager engine. Validates bets, runs the game policies
// and hands the money side to the store. The engine never decides
// win/loss by itself; the per-game Play* methods do the caller-side math
// and only use PlaceBet/Settle for bookkeeping.
package gambling

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/pilot2254/contrast-bot-sub000/internal/common"
)

// Store is the persistence contract for the engine.
type Store interface {
	PlaceBet(ctx context.Context, userID string, amount int64, gameType string) error
	Settle(ctx context.Context, userID string, betAmount, winAmount int64, gameType string) error
	GetStats(ctx context.Context, userID string) (*Stats, error)
	GetBalance(ctx context.Context, userID string) (int64, error)
}

// Service is the wager engine.
type Service struct {
	store Store

	randMu sync.Mutex
	rng    *rand.Rand

	// Russian-roulette per-user cooldowns. Process-local session state:
	// cleared on restart, independent of the command rate limiter.
	cooldownMu        sync.Mutex
	rouletteCooldowns map[string]time.Time

	slotDraw SlotDraw // injectable draw, nil = DefaultSlotDraw
	now      func() time.Time
}

// NewService creates the wager engine.
func NewService(store Store) *Service {
	return &Service{
		store:             store,
		rng:               rand.New(rand.NewSource(time.Now().UnixNano())),
		rouletteCooldowns: make(map[string]time.Time),
		now:               time.Now,
	}
}

// PlaceBet validates and places a stake: 0 < amount ≤ PerBetCeiling plus
// sufficient balance, debited together with the stats update.
func (s *Service) PlaceBet(ctx context.Context, userID string, amount int64, gameType string) error {
	if amount <= 0 {
		return common.ErrInvalidAmount
	}
	if amount > PerBetCeiling {
		return common.ErrBetTooLarge
	}
	return s.store.PlaceBet(ctx, userID, amount, gameType)
}

// Settle records a game outcome. The caller decides the win amount;
// the engine credits it (when positive) and updates the aggregates.
func (s *Service) Settle(ctx context.Context, userID string, betAmount, winAmount int64, gameType string) error {
	return s.store.Settle(ctx, userID, betAmount, winAmount, gameType)
}

// GetStats returns the user's gambling aggregates.
func (s *Service) GetStats(ctx context.Context, userID string) (*Stats, error) {
	return s.store.GetStats(ctx, userID)
}

// --- game flows -----------------------------------------------------------

// CoinflipOutcome is the settled result of a coinflip bet.
type CoinflipOutcome struct {
	Result string
	Win    int64
}

// PlayCoinflip places the bet, flips and settles. call must be heads or
// tails — a flip without a call is informational and never reaches the
// engine.
func (s *Service) PlayCoinflip(ctx context.Context, userID string, bet int64, call string) (*CoinflipOutcome, error) {
	if call != CoinHeads && call != CoinTails {
		return nil, fmt.Errorf("call must be %s or %s", CoinHeads, CoinTails)
	}
	if err := s.PlaceBet(ctx, userID, bet, GameCoinflip); err != nil {
		return nil, err
	}

	result, win := Coinflip(s.roll(), bet, call)
	if err := s.Settle(ctx, userID, bet, win, GameCoinflip); err != nil {
		return nil, err
	}
	return &CoinflipOutcome{Result: result, Win: win}, nil
}

// DiceOutcome is the settled result of a dice bet.
type DiceOutcome struct {
	Dice []int
	Sum  int
	Win  int64
}

// PlayDice rolls 1–3 dice against a sum or flat bet.
func (s *Service) PlayDice(ctx context.Context, userID string, bet int64, diceCount int, betKind string, target int) (*DiceOutcome, error) {
	if diceCount < 1 || diceCount > 3 {
		return nil, fmt.Errorf("dice count must be 1-3")
	}
	switch betKind {
	case DiceBetSum:
		if DiceSumMultiplier(diceCount, target) == 0 {
			return nil, fmt.Errorf("sum %d is not reachable with %d dice", target, diceCount)
		}
	case DiceBetLow, DiceBetHigh, DiceBetOdd, DiceBetEven:
	default:
		return nil, fmt.Errorf("unknown dice bet %q", betKind)
	}

	if err := s.PlaceBet(ctx, userID, bet, GameDice); err != nil {
		return nil, err
	}

	dice := RollDice(s.roll(), diceCount)
	win := DicePayout(dice, bet, betKind, target)
	if err := s.Settle(ctx, userID, bet, win, GameDice); err != nil {
		return nil, err
	}

	sum := 0
	for _, d := range dice {
		sum += d
	}
	return &DiceOutcome{Dice: dice, Sum: sum, Win: win}, nil
}

// PlaySlots spins the machine once.
func (s *Service) PlaySlots(ctx context.Context, userID string, bet int64) (*SlotResult, error) {
	if err := s.PlaceBet(ctx, userID, bet, GameSlots); err != nil {
		return nil, err
	}

	res := SpinSlots(s.roll(), bet, s.slotDraw)
	if err := s.Settle(ctx, userID, bet, res.Win, GameSlots); err != nil {
		return nil, err
	}

	if res.Jackpot {
		log.WithFields(log.Fields{"user_id": userID, "win": res.Win}).Info("slots jackpot")
	}
	return &res, nil
}

// GuessOutcome is the settled result of a number guess.
type GuessOutcome struct {
	Drawn      int
	Multiplier int64
	Win        int64
}

// PlayNumberGuess draws from 1..rangeSize; a hit pays the sub-fair
// floor(range × 0.95) multiplier.
func (s *Service) PlayNumberGuess(ctx context.Context, userID string, bet int64, rangeSize, guess int) (*GuessOutcome, error) {
	if rangeSize < 2 || rangeSize > 100 {
		return nil, fmt.Errorf("range must be 2-100")
	}
	if guess < 1 || guess > rangeSize {
		return nil, fmt.Errorf("guess must be within 1-%d", rangeSize)
	}

	if err := s.PlaceBet(ctx, userID, bet, GameNumberGuess); err != nil {
		return nil, err
	}

	drawn, win := NumberGuess(s.roll(), bet, rangeSize, guess)
	if err := s.Settle(ctx, userID, bet, win, GameNumberGuess); err != nil {
		return nil, err
	}
	return &GuessOutcome{Drawn: drawn, Multiplier: NumberGuessMultiplier(rangeSize), Win: win}, nil
}

// RouletteOutcome is the settled result of a roulette batch.
type RouletteOutcome struct {
	Pockets  []int
	TotalBet int64
	TotalWin int64
}

// PlayRoulette runs spins repeated spins as one settlement batch: the
// stakes are placed as a single bet, winnings are summed across spins
// and settled once.
func (s *Service) PlayRoulette(ctx context.Context, userID string, betPerSpin int64, betKind string, number, spins int) (*RouletteOutcome, error) {
	if spins < 1 || spins > 10 {
		return nil, fmt.Errorf("spins must be 1-10")
	}
	switch betKind {
	case RouletteBetRed, RouletteBetBlack, RouletteBetOdd, RouletteBetEven, RouletteBetHigh, RouletteBetLow:
	case RouletteBetNumber:
		if number < 0 || number > 36 {
			return nil, fmt.Errorf("number must be 0-36")
		}
	default:
		return nil, fmt.Errorf("unknown roulette bet %q", betKind)
	}

	totalBet := betPerSpin * int64(spins)
	if err := s.PlaceBet(ctx, userID, totalBet, GameRoulette); err != nil {
		return nil, err
	}

	out := &RouletteOutcome{TotalBet: totalBet}
	rng := s.roll()
	for i := 0; i < spins; i++ {
		pocket := RouletteSpin(rng)
		out.Pockets = append(out.Pockets, pocket)
		out.TotalWin += RoulettePayout(pocket, betPerSpin, betKind, number)
	}

	if err := s.Settle(ctx, userID, totalBet, out.TotalWin, GameRoulette); err != nil {
		return nil, err
	}
	return out, nil
}

// RPSOutcome is the settled result of a rock-paper-scissors round.
type RPSOutcome struct {
	BotChoice string
	Win       int64
	Tie       bool
}

// PlayRPS plays one round against the bot.
func (s *Service) PlayRPS(ctx context.Context, userID string, bet int64, choice string) (*RPSOutcome, error) {
	if choice != RPSRock && choice != RPSPaper && choice != RPSScissors {
		return nil, fmt.Errorf("choice must be rock, paper or scissors")
	}

	if err := s.PlaceBet(ctx, userID, bet, GameRPS); err != nil {
		return nil, err
	}

	botChoice, win := RPS(s.roll(), bet, choice)
	if err := s.Settle(ctx, userID, bet, win, GameRPS); err != nil {
		return nil, err
	}
	return &RPSOutcome{BotChoice: botChoice, Win: win, Tie: botChoice == choice}, nil
}

// RussianRouletteOutcome is the settled result of an all-in play.
type RussianRouletteOutcome struct {
	Survived   bool
	Stake      int64
	Multiplier int64
	Win        int64
}

// PlayRussianRoulette stakes the entire current balance. The per-bet
// ceiling does not apply — the stake is the balance itself. A per-user
// cooldown gates repeat plays independently of the rate limiter.
func (s *Service) PlayRussianRoulette(ctx context.Context, userID string, bullets int) (*RussianRouletteOutcome, error) {
	mult := RussianRouletteMultiplier(bullets)
	if mult == 0 {
		return nil, fmt.Errorf("bullets must be 1-5")
	}

	if remaining, ok := s.rouletteCooldownRemaining(userID); ok {
		return nil, fmt.Errorf("%w: try again in %s", common.ErrGameOnCooldown, remaining.Round(time.Second))
	}

	stake, err := s.store.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}
	if stake <= 0 {
		return nil, common.ErrNothingToStake
	}

	if err := s.store.PlaceBet(ctx, userID, stake, GameRussianRoulette); err != nil {
		return nil, err
	}

	out := &RussianRouletteOutcome{Stake: stake, Multiplier: mult}
	if RussianRouletteSurvives(s.roll(), bullets) {
		out.Survived = true
		out.Win = stake * mult
	}
	// The stake is already debited; on death it is simply not returned.
	if err := s.Settle(ctx, userID, stake, out.Win, GameRussianRoulette); err != nil {
		return nil, err
	}

	s.setRouletteCooldown(userID)
	return out, nil
}

// roll hands out a per-game RNG seeded from the shared source.
// rand.Rand is not goroutine safe, so concurrent games each get their
// own instead of sharing one.
func (s *Service) roll() *rand.Rand {
	s.randMu.Lock()
	seed := s.rng.Int63()
	s.randMu.Unlock()
	return rand.New(rand.NewSource(seed))
}

func (s *Service) rouletteCooldownRemaining(userID string) (time.Duration, bool) {
	s.cooldownMu.Lock()
	defer s.cooldownMu.Unlock()
	last, ok := s.rouletteCooldowns[userID]
	if !ok {
		return 0, false
	}
	elapsed := s.now().Sub(last)
	if elapsed >= RussianRouletteCooldown {
		delete(s.rouletteCooldowns, userID)
		return 0, false
	}
	return RussianRouletteCooldown - elapsed, true
}

func (s *Service) setRouletteCooldown(userID string) {
	s.cooldownMu.Lock()
	defer s.cooldownMu.Unlock()
	s.rouletteCooldowns[userID] = s.now()
}
