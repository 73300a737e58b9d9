// Package config loads the runtime's fixed set of startup parameters
// (listener port, request-size cap, tick period, static root, and one
// resource path per tenant) from flags, environment variables, and an
// optional config file, layered the way viper layers them. This
// replaces the teacher's direct os.Getenv reads in db.go with a
// generalized, defaultable configuration surface.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds every recognized startup parameter.
type Config struct {
	Port            uint16
	MaxRequestBytes int
	TickPeriod      time.Duration
	StaticRoot      string

	PusoyWordListPath string
	PusoyStatsLogPath string

	ArenaTermBankPath string
	ArenaStatsLogPath string

	QuizTermBankPath string
}

// Bind registers every recognized flag on fs with its default value,
// mirroring the §6 configuration contract's fixed parameter set.
func Bind(fs *pflag.FlagSet) {
	fs.Uint16("port", 8080, "TCP port to listen on")
	fs.Int("max-request-bytes", 2048, "maximum bytes read per HTTP request")
	fs.Duration("tick-period", 100*time.Millisecond, "periodic driver tick interval")
	fs.String("static-root", "./static", "root directory for the static-file responder")

	fs.String("pusoy-word-list", "./data/pusoy-words.txt", "path to the card game's GameID word list")
	fs.String("pusoy-stats-log", "./data/pusoy-stats.log", "append-only stats log for the card game tenant")

	fs.String("arena-term-bank", "./data/arena-terms.tsv", "path to the arena tenant's trivia term bank")
	fs.String("arena-stats-log", "./data/arena-stats.log", "append-only stats log for the arena tenant")

	fs.String("quiz-term-bank", "./data/quiz-terms.tsv", "path to the history-quiz tenant's vocabulary bank")
}

// Load reads every bound flag out of v (which the caller has already
// wired to flags, environment variables, and an optional config file)
// into a Config.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Port:              uint16(v.GetUint32("port")),
		MaxRequestBytes:   v.GetInt("max-request-bytes"),
		TickPeriod:        v.GetDuration("tick-period"),
		StaticRoot:        v.GetString("static-root"),
		PusoyWordListPath: v.GetString("pusoy-word-list"),
		PusoyStatsLogPath: v.GetString("pusoy-stats-log"),
		ArenaTermBankPath: v.GetString("arena-term-bank"),
		ArenaStatsLogPath: v.GetString("arena-stats-log"),
		QuizTermBankPath:  v.GetString("quiz-term-bank"),
	}

	if cfg.Port == 0 {
		return Config{}, fmt.Errorf("config: port must be nonzero")
	}
	if cfg.MaxRequestBytes <= 0 {
		return Config{}, fmt.Errorf("config: max-request-bytes must be positive")
	}
	if cfg.TickPeriod <= 0 {
		return Config{}, fmt.Errorf("config: tick-period must be positive")
	}
	return cfg, nil
}
