// File game/board.go
package game

import (
	"strings"

	"github.com/pkg/errors"
)

// Piece 表示一个格子的状态：空、白子或黑子。
// 数值本身参与 legacy 哈希，不要改顺序。
type Piece int8

const (
	Empty Piece = iota
	White
	Black
)

func (p Piece) String() string {
	switch p {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return "none"
}

// MarshalText 让 JSON 里输出 "white"/"black"/"none"
func (p Piece) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p Piece) glyph() byte {
	switch p {
	case White:
		return 'W'
	case Black:
		return 'B'
	}
	return '.'
}

const (
	QuadN        = 4  // 象限数
	QuadCells    = 9  // 每个象限 3x3
	BoardSide    = 6  // 展开后 6x6
	BoardN       = 36 // 总格数
	centerSquare = 4  // 象限中心，旋转不动点
)

// Quadrant 是一个 3x3 子棋盘，按行优先存放。
type Quadrant [QuadCells]Piece

// Board 是值类型：四个象限 + 行棋方。
// 所有状态转移函数都返回新的 Board，不修改入参，所以搜索里不需要 undo。
// hash 是增量维护的 Zobrist 值（含行棋方），内容相同的两个 Board 的 hash 必然相同，
// 因此直接用 == 比较 Board 是安全的。
type Board struct {
	Quads       [QuadN]Quadrant
	WhiteToMove bool
	hash        uint64
}

var (
	// 顺时针：第 i 格移到 rotateCW[i]
	rotateCW = [QuadCells]int{2, 5, 8, 1, 4, 7, 0, 3, 6}
	// 逆时针就是把表倒过来
	rotateCCW = [QuadCells]int{6, 3, 0, 7, 4, 1, 8, 5, 2}

	// FlatOf[q][s] -> 6x6 网格下标；QuadOf/SquareOf 是反向映射
	FlatOf   [QuadN][QuadCells]int
	QuadOf   [BoardN]int
	SquareOf [BoardN]int
)

func initBoardTables() {
	for f := 0; f < BoardN; f++ {
		row, col := f/BoardSide, f%BoardSide
		q := (row/3)*2 + col/3
		s := (row%3)*3 + col%3
		FlatOf[q][s] = f
		QuadOf[f] = q
		SquareOf[f] = s
	}
}

// NewBoard 返回空棋盘，白方先走
func NewBoard() Board {
	b := Board{WhiteToMove: true}
	b.rehash()
	return b
}

// Side 返回当前行棋方的颜色
func (b Board) Side() Piece {
	if b.WhiteToMove {
		return White
	}
	return Black
}

// Hash 返回增量维护的 Zobrist 哈希（供置换表读取）
func (b Board) Hash() uint64 {
	return b.hash
}

func (b *Board) rehash() {
	var h uint64
	for q := 0; q < QuadN; q++ {
		for s := 0; s < QuadCells; s++ {
			h ^= zobKey(q, s, b.Quads[q][s])
		}
	}
	b.hash = h ^ zobristSide[sideIdx(b.WhiteToMove)]
}

func (b *Board) set(q, s int, p Piece) {
	prev := b.Quads[q][s]
	if prev == p {
		return
	}
	b.hash ^= zobKey(q, s, prev)
	b.Quads[q][s] = p
	b.hash ^= zobKey(q, s, p)
}

func (b *Board) flipSide() {
	b.hash ^= zobristSide[0] ^ zobristSide[1]
	b.WhiteToMove = !b.WhiteToMove
}

// PlacePiece 把行棋方的棋子放到 (quad, square)。
// 不检查目标格是否为空，合法性由走法生成器/调用方保证。不换手。
func PlacePiece(b Board, quad, square int) Board {
	return PlacePieceColor(b, quad, square, b.Side())
}

// PlacePieceColor 同 PlacePiece，但颜色由调用方指定（编辑器/测试用）
func PlacePieceColor(b Board, quad, square int, color Piece) Board {
	b.set(quad, square, color)
	return b
}

// RemovePiece 清空 (quad, square)
func RemovePiece(b Board, quad, square int) Board {
	b.set(quad, square, Empty)
	return b
}

// RotateQuadrant 把一个象限转 90 度，并且换手。
// 一整步棋只在旋转时换一次手。
func RotateQuadrant(b Board, quad int, clockwise bool) Board {
	table := &rotateCW
	if !clockwise {
		table = &rotateCCW
	}
	old := b.Quads[quad]
	for i, p := range old {
		b.set(quad, table[i], p)
	}
	b.flipSide()
	return b
}

// ApplyMove = 落子 + 旋转
func ApplyMove(b Board, m Move) Board {
	return RotateQuadrant(PlacePiece(b, m.PlaceQuadrant, m.Square), m.RotateQuadrant, m.Clockwise)
}

// UndoMove 是 ApplyMove 的逆：反向旋转（顺带换回行棋方），再拿掉落下的子。
// 搜索本身不用它，留给需要“原地编辑”的调用方。
func UndoMove(b Board, m Move) Board {
	return RemovePiece(RotateQuadrant(b, m.RotateQuadrant, !m.Clockwise), m.PlaceQuadrant, m.Square)
}

// Flatten 按固定映射把四个象限展开成 6x6 行优先网格
func Flatten(b Board) [BoardN]Piece {
	var flat [BoardN]Piece
	for f := 0; f < BoardN; f++ {
		flat[f] = b.Quads[QuadOf[f]][SquareOf[f]]
	}
	return flat
}

// Cell 读取 6x6 网格上 (row, col) 的棋子
func (b Board) Cell(row, col int) Piece {
	f := row*BoardSide + col
	return b.Quads[QuadOf[f]][SquareOf[f]]
}

// CountPieces 统计 p 的棋子数
func (b Board) CountPieces(p Piece) int {
	n := 0
	for q := range b.Quads {
		for _, c := range b.Quads[q] {
			if c == p {
				n++
			}
		}
	}
	return n
}

// Occupied 返回非空格子数，整局只增不减，最多 36
func (b Board) Occupied() int {
	return BoardN - b.CountPieces(Empty)
}

// String 输出文本棋盘，象限之间用空格和横线隔开
func (b Board) String() string {
	var sb strings.Builder
	for row := 0; row < BoardSide; row++ {
		if row == 3 {
			sb.WriteString("------+------\n")
		}
		for col := 0; col < BoardSide; col++ {
			if col == 3 {
				sb.WriteString("| ")
			}
			sb.WriteByte(b.Cell(row, col).glyph())
			if col != BoardSide-1 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(b.Side().String())
	sb.WriteString(" to move")
	return sb.String()
}

// ParseBoard 读 6 行文本棋盘：'.' 空，'W' 白，'B' 黑；空白和 '|' / '-' / '+' 都忽略。
func ParseBoard(s string, whiteToMove bool) (Board, error) {
	b := Board{WhiteToMove: whiteToMove}
	f := 0
	for i := 0; i < len(s); i++ {
		var p Piece
		switch s[i] {
		case ' ', '\t', '\n', '\r', '|', '-', '+':
			continue
		case '.':
			p = Empty
		case 'W', 'w':
			p = White
		case 'B', 'b':
			p = Black
		default:
			return Board{}, errors.Errorf("parse board: unexpected %q at offset %d", s[i], i)
		}
		if f >= BoardN {
			return Board{}, errors.New("parse board: more than 36 cells")
		}
		b.Quads[QuadOf[f]][SquareOf[f]] = p
		f++
	}
	if f != BoardN {
		return Board{}, errors.Errorf("parse board: got %d cells, want %d", f, BoardN)
	}
	b.rehash()
	return b, nil
}

// MustParseBoard 同 ParseBoard，出错直接 panic（测试/基准里的固定局面用）
func MustParseBoard(s string, whiteToMove bool) Board {
	b, err := ParseBoard(s, whiteToMove)
	if err != nil {
		panic(err)
	}
	return b
}
