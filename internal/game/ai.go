// game/ai.go
package game

import (
	"context"
	"math"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

const (
	DefaultTimeBudget = 2 * time.Second
	DefaultMaxDepth   = 30

	infinity = math.MaxInt32
)

var (
	// ErrNoMoveInTime：一层都没搜完就超时，属于配置/性能问题，不重试
	ErrNoMoveInTime = errors.New("no move found in time")
	// ErrGameOver：根局面已经有人成五
	ErrGameOver = errors.New("game is already decided")
	// ErrNoLegalMoves：根局面没有空格可落
	ErrNoLegalMoves = errors.New("no legal moves")

	// 内部哨兵：本轮因截止时间被放弃，沿栈一路返回，不写置换表
	errSearchAborted = errors.New("search aborted")
)

// Config 是搜索参数。零值字段由 NewEngine 填默认值。
type Config struct {
	TimeBudget time.Duration // 每次 Search 的墙钟预算
	MaxDepth   int           // 迭代加深上限
	Evaluator  Evaluator     // 叶子评估函数
	Hash       HashKind      // 置换表 key 的算法
	Replace    ReplacePolicy // 置换表覆盖策略
	// StopWhenDecided 为 true 时，某一轮已经搜出必胜/必败就不再加深；
	// 默认 false，一直加深到 MaxDepth 或时间用完
	StopWhenDecided bool
	Logger          *zerolog.Logger
}

func DefaultConfig() Config {
	return Config{
		TimeBudget: DefaultTimeBudget,
		MaxDepth:   DefaultMaxDepth,
		Evaluator:  HandCrafted,
		Hash:       HashZobrist,
		Replace:    AlwaysReplace,
	}
}

// SearchResult 是一次 Search 的结果；Nodes/TTHits 是本次调用的增量
type SearchResult struct {
	Move    Move
	Score   int
	Depth   int // 最后完整搜完的深度
	Nodes   uint64
	TTHits  uint64
	Elapsed time.Duration
}

// Engine：迭代加深 negamax + alpha-beta + 置换表。
// 单线程；置换表和计数器跨多次 Search 复用，不重置。
type Engine struct {
	cfg    Config
	tt     *TranspositionTable
	logger zerolog.Logger

	nodes  uint64
	ttHits uint64

	// 当前这一轮根节点的候选
	rootMove Move
}

func NewEngine(cfg Config) *Engine {
	def := DefaultConfig()
	if cfg.TimeBudget <= 0 {
		cfg.TimeBudget = def.TimeBudget
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = def.MaxDepth
	}
	if cfg.Evaluator == nil {
		cfg.Evaluator = def.Evaluator
	}
	if cfg.Replace == nil {
		cfg.Replace = def.Replace
	}
	logger := log.Logger
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	return &Engine{
		cfg:    cfg,
		tt:     NewTranspositionTable(cfg.Hash, cfg.Replace),
		logger: logger.With().Str("component", "engine").Logger(),
	}
}

// Table 暴露置换表（统计/测试用）
func (e *Engine) Table() *TranspositionTable { return e.tt }

// Stats 返回引擎生命周期内的累计节点数和置换表截断次数
func (e *Engine) Stats() (nodes, ttHits uint64) {
	return e.nodes, e.ttHits
}

// NextMove 实现 Player
func (e *Engine) NextMove(ctx context.Context, b Board) (Move, error) {
	res, err := e.Search(ctx, b)
	if err != nil {
		return NullMove(), err
	}
	return res.Move, nil
}

// OnGameEnd 实现 GameEndListener：只记日志，置换表保留到引擎被丢弃
func (e *Engine) OnGameEnd(rec *GameRecord, isWhite bool, stats Stats) {
	probes, hits, rate := e.tt.Stats()
	e.logger.Info().
		Bool("white", isWhite).
		Str("winner", stats.Winner.String()).
		Int("plies", stats.Plies).
		Uint64("nodes", e.nodes).
		Uint64("ttProbes", probes).
		Uint64("ttFound", hits).
		Float64("ttRate", rate).
		Int("ttSize", e.tt.Len()).
		Msg("game-over")
}

// Search 在 b 上做迭代加深：depth=1,2,...，每轮全窗口。
// 只有完整搜完的一轮才会更新答案；超时的那轮整体丢弃。
// 截止时间 = min(ctx 的截止时间, 现在+TimeBudget)，在每个节点入口和每个子节点前检查。
func (e *Engine) Search(ctx context.Context, b Board) (SearchResult, error) {
	if w := Winner(b); w != Empty {
		return SearchResult{Move: NullMove()}, errors.Wrapf(ErrGameOver, "%s has five in a row", w)
	}
	if b.Occupied() == BoardN {
		return SearchResult{Move: NullMove()}, ErrNoLegalMoves
	}

	ctx, cancel := context.WithTimeout(ctx, e.cfg.TimeBudget)
	defer cancel()

	start := time.Now()
	nodes0, hits0 := e.nodes, e.ttHits
	res := SearchResult{Move: NullMove()}

	for depth := 1; depth <= e.cfg.MaxDepth; depth++ {
		e.rootMove = NullMove()
		score, err := e.negamax(ctx, b, depth, 0, -infinity, infinity)
		if errors.Is(err, errSearchAborted) {
			break
		}
		if err != nil {
			return res, err
		}
		res.Move, res.Score, res.Depth = e.rootMove, score, depth

		e.logger.Debug().
			Str("side", b.Side().String()).
			Int("depth", depth).
			Int("score", score).
			Uint64("nodes", e.nodes-nodes0).
			Uint64("ttNodes", e.ttHits-hits0).
			Int("ttSize", e.tt.Len()).
			Stringer("move", e.rootMove).
			Msg("depth-complete")

		if e.cfg.StopWhenDecided && (score >= WinScore || score <= -WinScore) {
			break
		}
	}

	res.Nodes = e.nodes - nodes0
	res.TTHits = e.ttHits - hits0
	res.Elapsed = time.Since(start)
	if res.Move.IsNull() {
		return res, errors.Wrapf(ErrNoMoveInTime, "budget %v", e.cfg.TimeBudget)
	}
	return res, nil
}

// negamax 返回相对 b 的行棋方的分数。fail-hard：发生截断时返回 beta。
func (e *Engine) negamax(ctx context.Context, b Board, depth, ply int, alpha, beta int) (int, error) {
	if ctx.Err() != nil {
		return 0, errSearchAborted
	}
	e.nodes++

	if w := Winner(b); w != Empty {
		return terminalScore(b, w), nil
	}

	key := e.tt.Key(b)
	entry, found := e.tt.Probe(key, b)
	// 根节点永远完整搜索
	if found && ply > 0 && entry.Depth >= depth {
		e.ttHits++
		return entry.Score, nil
	}

	if depth == 0 {
		return e.cfg.Evaluator(b), nil
	}

	moves := GenerateMoves(b)
	if len(moves) == 0 {
		return 0, nil
	}
	if found {
		promoteMove(moves, entry.Move)
	}

	bestScore := -infinity
	bestMove := moves[0]
	for _, mv := range moves {
		if ctx.Err() != nil {
			return 0, errSearchAborted
		}
		score, err := e.negamax(ctx, ApplyMove(b, mv), depth-1, ply+1, -beta, -alpha)
		if err != nil {
			return 0, err
		}
		score = -score

		if score > bestScore {
			bestScore = score
			bestMove = mv
			if ply == 0 {
				e.rootMove = mv
			}
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			return beta, nil
		}
	}

	e.tt.Store(key, b, depth, bestScore, bestMove)
	return bestScore, nil
}

// promoteMove 把 best 挪到最前，其余走法保持原来的相对顺序；best 不在列表里时不动
func promoteMove(moves []Move, best Move) {
	if i := lo.IndexOf(moves, best); i > 0 {
		copy(moves[1:i+1], moves[:i])
		moves[0] = best
	}
}
