package game

import (
	"math/rand"
)

// 固定种子：同一局面在不同进程里得到相同的 key，搜索结果可复现
const zobristSeed = 0x5eed_9e37_79b9

var (
	zobristCell [QuadN * QuadCells][3]uint64 // [q*9+s][piece]
	zobristSide [2]uint64                    // 0=白走 1=黑走
)

func zobKey(q, s int, p Piece) uint64 { return zobristCell[q*QuadCells+s][p] }

func sideIdx(whiteToMove bool) int {
	if whiteToMove {
		return 0
	}
	return 1
}

// init 在程序启动时执行一次：坐标表、窗口表、随机键
func init() {
	initBoardTables()
	initLineTables()
	initZobrist()
}

func initZobrist() {
	r := rand.New(rand.NewSource(zobristSeed))
	for i := range zobristCell {
		zobristCell[i] = [3]uint64{
			r.Uint64(), // Empty
			r.Uint64(), // White
			r.Uint64(), // Black
		}
	}
	zobristSide[0] = r.Uint64()
	zobristSide[1] = r.Uint64()
}

// HashKind 选择置换表的 key 计算方式
type HashKind int

const (
	// HashZobrist：64 位 Zobrist，命中时再比对整盘，碰撞不会被误用
	HashZobrist HashKind = iota
	// HashLegacy：旧版 32 位滚动哈希，不校验，碰撞静默接受
	HashLegacy
)

func (k HashKind) String() string {
	if k == HashLegacy {
		return "legacy"
	}
	return "zobrist"
}

// LegacyHash 是旧版的有符号 32 位滚动哈希（溢出回绕）：
// 按象限优先遍历 36 格，每格贡献 (piece<<6)+cellIndex，最后混入行棋方（白 1 黑 2）。
func LegacyHash(b Board) int32 {
	var h int32
	for q := 0; q < QuadN; q++ {
		for s := 0; s < QuadCells; s++ {
			v := int32(b.Quads[q][s])<<6 + int32(q*QuadCells+s)
			h = h<<5 - h + v
		}
	}
	side := int32(2)
	if b.WhiteToMove {
		side = 1
	}
	return h<<5 - h + side
}

// Entry 是置换表里的一条记录：某局面搜到的深度、分数和最佳走法
type Entry struct {
	Key   uint64
	Depth int
	Score int
	Move  Move
	board Board
}

// ReplacePolicy 决定新记录是否覆盖同 key 的旧记录
type ReplacePolicy func(old, incoming Entry) bool

// AlwaysReplace 新记录总是覆盖旧记录（默认）
func AlwaysReplace(_, _ Entry) bool { return true }

// DepthPreferred 只在新记录深度不小于旧记录时覆盖
func DepthPreferred(old, incoming Entry) bool { return incoming.Depth >= old.Depth }

// TranspositionTable 归单个 Engine 所有，生命周期等于引擎（通常是一整局）。
// 不限容量、不淘汰，只有显式 Clear 才会清空。非并发安全。
type TranspositionTable struct {
	kind    HashKind
	replace ReplacePolicy
	entries map[uint64]Entry

	probes     uint64
	hits       uint64
	collisions uint64
}

func NewTranspositionTable(kind HashKind, replace ReplacePolicy) *TranspositionTable {
	if replace == nil {
		replace = AlwaysReplace
	}
	return &TranspositionTable{
		kind:    kind,
		replace: replace,
		entries: make(map[uint64]Entry, 1<<16),
	}
}

// Key 计算 b 的置换表 key
func (t *TranspositionTable) Key(b Board) uint64 {
	if t.kind == HashLegacy {
		return uint64(uint32(LegacyHash(b)))
	}
	return b.Hash()
}

// Probe 查表。Zobrist 模式下会比对存下的棋盘，不一致算碰撞、当作未命中。
func (t *TranspositionTable) Probe(key uint64, b Board) (Entry, bool) {
	t.probes++
	e, ok := t.entries[key]
	if !ok {
		return Entry{}, false
	}
	if t.kind == HashZobrist && e.board != b {
		t.collisions++
		return Entry{}, false
	}
	t.hits++
	return e, true
}

// Store 写一条记录，是否覆盖由 ReplacePolicy 决定
func (t *TranspositionTable) Store(key uint64, b Board, depth, score int, best Move) {
	incoming := Entry{Key: key, Depth: depth, Score: score, Move: best, board: b}
	if old, ok := t.entries[key]; ok && !t.replace(old, incoming) {
		return
	}
	t.entries[key] = incoming
}

func (t *TranspositionTable) Len() int { return len(t.entries) }

// Clear 清空所有记录和统计
func (t *TranspositionTable) Clear() {
	t.entries = make(map[uint64]Entry, 1<<16)
	t.probes, t.hits, t.collisions = 0, 0, 0
}

// Stats 返回探测次数、命中次数和命中率（百分比）
func (t *TranspositionTable) Stats() (probes, hits uint64, rate float64) {
	probes, hits = t.probes, t.hits
	if probes > 0 {
		rate = float64(hits) / float64(probes) * 100
	}
	return
}

// Collisions 返回 Zobrist 模式下被校验拦下的碰撞次数
func (t *TranspositionTable) Collisions() uint64 { return t.collisions }
