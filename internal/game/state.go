package game

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Stats 是一局的结果。Winner 为 Empty 表示和棋（满盘无人成五）。
type Stats struct {
	Winner Piece `json:"winner"`
	Plies  int   `json:"plies"`
	Draw   bool  `json:"draw"`
}

// GameRecord 记录一局：双方、走过的所有局面（第 0 个是空盘）和结果
type GameRecord struct {
	White   Player
	Black   Player
	History []Board
	Moves   []Move
	Result  *Stats
}

// Game 驱动一局对弈：轮流向双方要走法，直到终局。严格串行。
type Game struct {
	rec    GameRecord
	logger zerolog.Logger
}

func NewGame(white, black Player) *Game {
	return NewGameFrom(white, black, NewBoard())
}

// NewGameFrom 从给定局面开始（残局复盘/测试用），行棋方取自 start
func NewGameFrom(white, black Player, start Board) *Game {
	return &Game{
		rec: GameRecord{
			White:   white,
			Black:   black,
			History: []Board{start},
		},
		logger: log.Logger.With().Str("component", "game").Logger(),
	}
}

// WithLogger 替换日志输出（cmd/测试用）
func (g *Game) WithLogger(l zerolog.Logger) *Game {
	g.logger = l.With().Str("component", "game").Logger()
	return g
}

// Board 返回当前局面
func (g *Game) Board() Board {
	return g.rec.History[len(g.rec.History)-1]
}

func (g *Game) Record() *GameRecord { return &g.rec }

// Play 下完整局。
// 任何一方返回错误或非法走法都判为本局故障：strict 时原样返回错误，
// 否则记一条 warn 日志并返回 (nil, nil)。正常结束时通知实现了 GameEndListener 的一方。
func (g *Game) Play(ctx context.Context, strict bool) (*Stats, error) {
	stats, err := g.play(ctx)
	if err != nil {
		if strict {
			return nil, err
		}
		g.logger.Warn().Err(err).Int("plies", len(g.rec.Moves)).Msg("game-aborted")
		return nil, nil
	}

	g.rec.Result = stats
	if l, ok := g.rec.White.(GameEndListener); ok {
		l.OnGameEnd(&g.rec, true, *stats)
	}
	if l, ok := g.rec.Black.(GameEndListener); ok {
		l.OnGameEnd(&g.rec, false, *stats)
	}
	return stats, nil
}

func (g *Game) play(ctx context.Context) (*Stats, error) {
	for {
		b := g.Board()
		if w := Winner(b); w != Empty {
			return &Stats{Winner: w, Plies: len(g.rec.Moves)}, nil
		}
		if b.Occupied() == BoardN {
			return &Stats{Winner: Empty, Plies: len(g.rec.Moves), Draw: true}, nil
		}

		player, side := g.rec.White, "white"
		if !b.WhiteToMove {
			player, side = g.rec.Black, "black"
		}

		mv, err := player.NextMove(ctx, b)
		if err != nil {
			return nil, &playerFault{side: side, err: err}
		}
		if err := ValidateMove(b, mv); err != nil {
			return nil, errors.Wrapf(err, "%s player returned %v", side, mv)
		}

		next := ApplyMove(b, mv)
		g.rec.History = append(g.rec.History, next)
		g.rec.Moves = append(g.rec.Moves, mv)
		g.logger.Debug().Int("ply", len(g.rec.Moves)).Str("side", side).Stringer("move", mv).Msg("move")
	}
}

// playerFault 是走子方自己报的错：errors.Is 对原始错误和 ErrInvalidMove 都成立
type playerFault struct {
	side string
	err  error
}

func (f *playerFault) Error() string {
	return fmt.Sprintf("%s player: %v: %v", f.side, ErrInvalidMove, f.err)
}

func (f *playerFault) Unwrap() error { return f.err }

func (f *playerFault) Cause() error { return f.err }

func (f *playerFault) Is(target error) bool { return target == ErrInvalidMove }

func (s Stats) String() string {
	if s.Draw {
		return fmt.Sprintf("draw after %d plies", s.Plies)
	}
	return fmt.Sprintf("%s won after %d plies", s.Winner, s.Plies)
}
