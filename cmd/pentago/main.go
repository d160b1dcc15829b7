package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"pentago_go/internal/game"
)

// 打一局：默认 hand-crafted 引擎执白对随机执黑，每步打印棋盘
func main() {
	names := strings.Join(game.PlayerNames(), "|")
	whiteFlag := flag.String("white", "hand-crafted", "白方: "+names)
	blackFlag := flag.String("black", "random", "黑方: "+names)
	budgetFlag := flag.Duration("budget", game.DefaultTimeBudget, "每步搜索时间")
	depthFlag := flag.Int("depth", game.DefaultMaxDepth, "迭代加深上限")
	hashFlag := flag.String("hash", "zobrist", "置换表哈希: zobrist|legacy")
	strictFlag := flag.Bool("strict", true, "非法走法时直接报错退出（false 则只记日志）")
	stopFlag := flag.Bool("stop-decided", true, "搜出必胜/必败后不再加深")
	quietFlag := flag.Bool("quiet", false, "不打印中间局面")
	verboseFlag := flag.Bool("v", false, "输出每层搜索日志")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verboseFlag {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	kind, err := game.ParseHashKind(*hashFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("bad -hash")
	}
	cfg := game.Config{TimeBudget: *budgetFlag, MaxDepth: *depthFlag, Hash: kind, StopWhenDecided: *stopFlag}

	white, err := game.NewPlayer(*whiteFlag, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("bad -white")
	}
	black, err := game.NewPlayer(*blackFlag, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("bad -black")
	}
	if !*quietFlag {
		white = printing{white}
		black = printing{black}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g := game.NewGame(white, black)
	start := time.Now()
	stats, err := g.Play(ctx, *strictFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("game failed")
	}
	fmt.Println(g.Board())
	if stats == nil {
		log.Warn().Msg("game aborted, no result")
		os.Exit(1)
	}
	log.Info().Str("result", stats.String()).Dur("elapsed", time.Since(start)).Msg("done")
}

// printing 在每次走子前把当前局面打到 stdout
type printing struct {
	game.Player
}

func (p printing) NextMove(ctx context.Context, b game.Board) (game.Move, error) {
	fmt.Printf("%v\n\n", b)
	mv, err := p.Player.NextMove(ctx, b)
	if err == nil {
		fmt.Printf("%s plays %v\n", b.Side(), mv)
	}
	return mv, err
}

// OnGameEnd 转发给被包装的走子方
func (p printing) OnGameEnd(rec *game.GameRecord, isWhite bool, stats game.Stats) {
	if l, ok := p.Player.(game.GameEndListener); ok {
		l.OnGameEnd(rec, isWhite, stats)
	}
}
