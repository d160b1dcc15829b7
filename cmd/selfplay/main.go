// cmd/selfplay/main.go
// 批量对局：统计胜负和平均步数，可选写一份 JSON 汇总
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"pentago_go/internal/game"
)

type summary struct {
	White     string        `json:"white"`
	Black     string        `json:"black"`
	Games     int           `json:"games"`
	Finished  int           `json:"finished"`
	WhiteWins int           `json:"white_wins"`
	BlackWins int           `json:"black_wins"`
	Draws     int           `json:"draws"`
	AvgPlies  float64       `json:"avg_plies"`
	Budget    string        `json:"budget"`
	Elapsed   string        `json:"elapsed"`
	Results   []*game.Stats `json:"results"`
}

func main() {
	numGames := flag.Int("n", 10, "要下的对局数")
	workers := flag.Int("workers", 0, "同时进行的对局数（默认=CPU/2，至少1）")
	whiteName := flag.String("white", "hand-crafted", "白方")
	blackName := flag.String("black", "random", "黑方")
	budget := flag.Duration("budget", game.DefaultTimeBudget, "每步搜索时间")
	depth := flag.Int("depth", game.DefaultMaxDepth, "迭代加深上限")
	hashName := flag.String("hash", "zobrist", "置换表哈希: zobrist|legacy")
	stopDecided := flag.Bool("stop-decided", true, "搜出必胜/必败后不再加深")
	strict := flag.Bool("strict", true, "任一局出错就整体失败")
	outPath := flag.String("out", "", "JSON 汇总输出路径（为空则不写）")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if *workers <= 0 {
		*workers = runtime.NumCPU() / 2
		if *workers < 1 {
			*workers = 1
		}
	}
	kind, err := game.ParseHashKind(*hashName)
	if err != nil {
		log.Fatal().Err(err).Msg("bad -hash")
	}
	cfg := game.Config{TimeBudget: *budget, MaxDepth: *depth, Hash: kind, StopWhenDecided: *stopDecided}
	// 提前校验名字，避免跑到一半才失败
	for _, name := range []string{*whiteName, *blackName} {
		if _, err := game.NewPlayer(name, cfg); err != nil {
			log.Fatal().Err(err).Msg("bad player")
		}
	}

	log.Info().Int("games", *numGames).Int("workers", *workers).
		Str("white", *whiteName).Str("black", *blackName).Dur("budget", *budget).Msg("selfplay")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results := make([]*game.Stats, *numGames)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(*workers)
	for i := 0; i < *numGames; i++ {
		i := i
		g.Go(func() error {
			stats, err := playGame(gctx, *whiteName, *blackName, cfg, *strict)
			if err != nil {
				return errors.Wrapf(err, "game #%d", i+1)
			}
			results[i] = stats
			if stats != nil {
				log.Info().Int("game", i+1).Str("result", stats.String()).Msg("finished")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("selfplay failed")
	}

	s := summarize(results)
	s.White, s.Black = *whiteName, *blackName
	s.Budget = budget.String()
	s.Elapsed = time.Since(start).Round(time.Millisecond).String()

	p := message.NewPrinter(language.English)
	p.Printf("Played %d games (%d finished):\n", s.Games, s.Finished)
	p.Printf(" White Won: %d\n", s.WhiteWins)
	p.Printf(" Black Won: %d\n", s.BlackWins)
	p.Printf(" Draws: %d\n", s.Draws)
	p.Printf(" Average Plies: %.2f\n", s.AvgPlies)

	if *outPath != "" {
		b, _ := json.MarshalIndent(s, "", "  ")
		if err := os.WriteFile(*outPath, b, 0644); err != nil {
			log.Fatal().Err(err).Str("path", *outPath).Msg("write summary")
		}
	}
}

// playGame 下一局；每局都用新的引擎，置换表只活一局
func playGame(ctx context.Context, whiteName, blackName string, cfg game.Config, strict bool) (*game.Stats, error) {
	white, err := game.NewPlayer(whiteName, cfg)
	if err != nil {
		return nil, err
	}
	black, err := game.NewPlayer(blackName, cfg)
	if err != nil {
		return nil, err
	}
	return game.NewGame(white, black).Play(ctx, strict)
}

func summarize(results []*game.Stats) summary {
	done := lo.Compact(results)
	s := summary{
		Games:     len(results),
		Finished:  len(done),
		WhiteWins: lo.CountBy(done, func(st *game.Stats) bool { return st.Winner == game.White }),
		BlackWins: lo.CountBy(done, func(st *game.Stats) bool { return st.Winner == game.Black }),
		Draws:     lo.CountBy(done, func(st *game.Stats) bool { return st.Draw }),
		Results:   done,
	}
	if len(done) > 0 {
		plies := lo.SumBy(done, func(st *game.Stats) int { return st.Plies })
		s.AvgPlies = float64(plies) / float64(len(done))
	}
	return s
}
