package game

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"lukechampine.com/frand"
)

// Player 是走子方：给定局面返回一步棋。可以阻塞，ctx 取消时应尽快返回。
type Player interface {
	NextMove(ctx context.Context, b Board) (Move, error)
}

// GameEndListener 是可选的终局通知
type GameEndListener interface {
	OnGameEnd(rec *GameRecord, isWhite bool, stats Stats)
}

// PlayerFunc 让普通函数也能当 Player 用
type PlayerFunc func(ctx context.Context, b Board) (Move, error)

func (f PlayerFunc) NextMove(ctx context.Context, b Board) (Move, error) { return f(ctx, b) }

// RandomPlayer 在合法走法里均匀随机挑一步（基线/测试用）
type RandomPlayer struct{}

func NewRandomPlayer() *RandomPlayer { return &RandomPlayer{} }

func (RandomPlayer) NextMove(_ context.Context, b Board) (Move, error) {
	moves := GenerateMoves(b)
	if len(moves) == 0 {
		return NullMove(), ErrNoLegalMoves
	}
	return moves[frand.Intn(len(moves))], nil
}

// 名字 -> 走子方构造器，cmd 里按命令行参数挑选
var playerFactories = map[string]func(cfg Config) Player{
	"hand-crafted": func(cfg Config) Player {
		cfg.Evaluator = HandCrafted
		return NewEngine(cfg)
	},
	"leading": func(cfg Config) Player {
		cfg.Evaluator = HandCraftedLeading
		return NewEngine(cfg)
	},
	"random": func(Config) Player { return NewRandomPlayer() },
}

// PlayerNames 返回所有可用的走子方名字（已排序）
func PlayerNames() []string {
	names := lo.Keys(playerFactories)
	sort.Strings(names)
	return names
}

// NewPlayer 按名字创建走子方；引擎类使用 cfg
func NewPlayer(name string, cfg Config) (Player, error) {
	f, ok := playerFactories[name]
	if !ok {
		return nil, errors.Errorf("unknown player %q (want one of %v)", name, PlayerNames())
	}
	return f(cfg), nil
}

// ParseHashKind 解析 "zobrist" / "legacy"
func ParseHashKind(s string) (HashKind, error) {
	switch s {
	case "zobrist", "":
		return HashZobrist, nil
	case "legacy":
		return HashLegacy, nil
	}
	return HashZobrist, errors.Errorf("unknown hash kind %q", s)
}
