// cmd/bench_perf/main.go
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/pkg/profile"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"pentago_go/internal/game"
)

// 固定局面，方便前后版本对比
var positions = []struct {
	name        string
	board       string
	whiteToMove bool
}{
	{"opening", `
		. . . | . . .
		. . . | . . .
		. . . | . . .
		------+------
		. . . | . . .
		. . . | . . .
		. . . | . . .`, true},
	{"middle", `
		W . . | . B .
		. B . | W . .
		. . W | . . .
		------+------
		. . B | . . W
		. W . | B . .
		. . . | . . B`, true},
	{"late", `
		W B W | . B W
		. B . | W W .
		B . W | . B .
		------+------
		. W B | B . W
		B W . | B W .
		. . W | . . B`, false},
}

func main() {
	budget := flag.Duration("budget", 5*time.Second, "每个局面的搜索时间")
	depth := flag.Int("depth", game.DefaultMaxDepth, "迭代加深上限")
	hashName := flag.String("hash", "zobrist", "置换表哈希: zobrist|legacy")
	profDir := flag.String("profile", "", "写 CPU profile 的目录（为空则不采样）")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if *profDir != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*profDir), profile.Quiet).Stop()
	}

	kind, err := game.ParseHashKind(*hashName)
	if err != nil {
		log.Fatal().Err(err).Msg("bad -hash")
	}

	p := message.NewPrinter(language.English)
	p.Printf("%-8s %8s %5s %14s %12s %10s %7s %s\n", "position", "static", "depth", "nodes", "nps", "tt hits", "rate", "move")
	for _, pos := range positions {
		b := game.MustParseBoard(pos.board, pos.whiteToMove)
		eng := game.NewEngine(game.Config{TimeBudget: *budget, MaxDepth: *depth, Hash: kind})

		res, err := eng.Search(context.Background(), b)
		if err != nil {
			log.Error().Err(err).Str("position", pos.name).Msg("search failed")
			continue
		}
		_, _, rate := eng.Table().Stats()
		nps := float64(res.Nodes) / res.Elapsed.Seconds()
		p.Printf("%-8s %8d %5d %14d %12.0f %10d %6.1f%% %v\n",
			pos.name, game.Evaluate(b, game.HandCrafted), res.Depth, res.Nodes, nps, res.TTHits, rate, res.Move)
		log.Debug().Int("tt_size", eng.Table().Len()).Uint64("collisions", eng.Table().Collisions()).
			Int("score", res.Score).Str("position", pos.name).Msg("table")
	}
}
