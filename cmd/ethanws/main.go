// Command ethanws runs the multi-application WebSocket server: the
// connection dispatcher, the periodic tick driver, and the card-game,
// arena, and history-quiz tenants registered against it. Wiring
// follows the teacher's main.go shape (construct dependencies, wire
// handlers, run under supervision) generalized off net/http+GORM onto
// this runtime's own registry/server/driver triad.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/EtomicBomb/ethan-ws/internal/applog"
	"github.com/EtomicBomb/ethan-ws/internal/arena"
	"github.com/EtomicBomb/ethan-ws/internal/config"
	"github.com/EtomicBomb/ethan-ws/internal/driver"
	"github.com/EtomicBomb/ethan-ws/internal/httpapi"
	"github.com/EtomicBomb/ethan-ws/internal/pusoy"
	"github.com/EtomicBomb/ethan-ws/internal/quiz"
	"github.com/EtomicBomb/ethan-ws/internal/registry"
	"github.com/EtomicBomb/ethan-ws/internal/server"
	"github.com/EtomicBomb/ethan-ws/internal/statslog"
)

func main() {
	cmd := &cobra.Command{
		Use:   "ethanws",
		Short: "Single-process multi-application WebSocket server",
		RunE:  run,
	}
	config.Bind(cmd.Flags())

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	v := viper.New()
	v.SetEnvPrefix("ETHANWS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("ethanws: bind flags: %w", err)
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("ethanws: read config.yaml: %w", err)
		}
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	log := applog.New(zerolog.InfoLevel)

	reg := registry.New()

	if err := registerPusoy(reg, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("ethanws: failed to register card-game tenant")
	}
	if err := registerArena(reg, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("ethanws: failed to register arena tenant")
	}
	if err := registerQuiz(reg, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("ethanws: failed to register history-quiz tenant")
	}
	reg.Close()

	statsPaths := httpapi.StatsLogPaths{
		"pusoy": cfg.PusoyStatsLogPath,
		"arena": cfg.ArenaStatsLogPath,
	}
	router := httpapi.NewRouter(cfg.StaticRoot, statsPaths, log)
	srv := server.New(reg, registry.NewPeerIDGenerator(), router, cfg.MaxRequestBytes, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.ListenAndServe(gctx, fmt.Sprintf(":%d", cfg.Port))
	})
	g.Go(func() error {
		driver.Run(gctx, reg, cfg.TickPeriod)
		return nil
	})

	return g.Wait()
}

func registerPusoy(reg *registry.Registry, cfg config.Config, log zerolog.Logger) error {
	words, err := loadWordList(cfg.PusoyWordListPath)
	if err != nil {
		return fmt.Errorf("pusoy word list: %w", err)
	}

	stats, err := statslog.Open(cfg.PusoyStatsLogPath)
	if err != nil {
		return fmt.Errorf("pusoy stats log: %w", err)
	}

	reg.Register("/pusoy", pusoy.NewTenant(words, nil, log.With().Str("tenant", "pusoy").Logger(), stats))
	return nil
}

func registerArena(reg *registry.Registry, cfg config.Config, log zerolog.Logger) error {
	terms, err := loadArenaBank(cfg.ArenaTermBankPath)
	if err != nil {
		return fmt.Errorf("arena term bank: %w", err)
	}

	stats, err := statslog.Open(cfg.ArenaStatsLogPath)
	if err != nil {
		return fmt.Errorf("arena stats log: %w", err)
	}

	reg.Register("/arena", arena.NewTenant(terms, stats))
	return nil
}

func registerQuiz(reg *registry.Registry, cfg config.Config, log zerolog.Logger) error {
	bank, err := loadQuizBank(cfg.QuizTermBankPath)
	if err != nil {
		return fmt.Errorf("quiz term bank: %w", err)
	}

	reg.Register("/quiz", quiz.NewTenant(bank, log.With().Str("tenant", "quiz").Logger()))
	return nil
}

// loadWordList reads one lowercase hyphenated word per line, sorts it
// (the word list's lookup invariant), and wraps it as a pusoy.WordList.
func loadWordList(path string) (*pusoy.WordList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" {
			continue
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	sort.Strings(words)
	return pusoy.NewWordList(words), nil
}

// loadArenaBank reads tab-separated "name\tdefinition" rows.
func loadArenaBank(path string) (*arena.TermBank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var terms []arena.Term
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, "\t", 2)
		if len(fields) != 2 {
			return nil, fmt.Errorf("arena term bank: malformed line %q", line)
		}
		terms = append(terms, arena.Term{Name: fields[0], Definition: fields[1]})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return arena.NewTermBank(terms), nil
}

// loadQuizBank reads tab-separated "chapter\tsection\tterm\tdefinition"
// rows, assigning each a sequential TermID in file order.
func loadQuizBank(path string) (*quiz.Bank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	terms := make(map[quiz.TermID]quiz.Term)
	var next int
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, "\t", 4)
		if len(fields) != 4 {
			return nil, fmt.Errorf("quiz term bank: malformed line %q", line)
		}
		chapter, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("quiz term bank: bad chapter in %q: %w", line, err)
		}
		section, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("quiz term bank: bad section in %q: %w", line, err)
		}
		terms[quiz.TermID(next)] = quiz.Term{
			Chapter:    chapter,
			Section:    section,
			Term:       fields[2],
			Definition: fields[3],
		}
		next++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return quiz.NewBank(terms), nil
}
