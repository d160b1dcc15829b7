package game

import (
	"fmt"

	"github.com/pkg/errors"
)

// Move 表示一整步：先在 PlaceQuadrant 的 Square 落子，再把 RotateQuadrant 转 90 度。
// RotateQuadrant 可以和 PlaceQuadrant 相同。
type Move struct {
	PlaceQuadrant  int
	Square         int
	RotateQuadrant int
	Clockwise      bool
}

// ErrInvalidMove 表示走法越界、落点非空或是空着
var ErrInvalidMove = errors.New("invalid move")

// NullMove 是“没有走法”的占位值
func NullMove() Move {
	return Move{PlaceQuadrant: -1, Square: -1, RotateQuadrant: -1}
}

func (m Move) IsNull() bool {
	return m.Square < 0 || m.PlaceQuadrant < 0 || m.RotateQuadrant < 0
}

func (m Move) String() string {
	if m.IsNull() {
		return "null"
	}
	dir := "ccw"
	if m.Clockwise {
		dir = "cw"
	}
	return fmt.Sprintf("q%d:%d r%d %s", m.PlaceQuadrant, m.Square, m.RotateQuadrant, dir)
}

// symmetricMask 返回“旋转不改变棋盘”的象限集合（bit q）：除中心外全空
func symmetricMask(b *Board) uint8 {
	var mask uint8
	for q := 0; q < QuadN; q++ {
		sym := true
		for s, p := range b.Quads[q] {
			if s != centerSquare && p != Empty {
				sym = false
				break
			}
		}
		if sym {
			mask |= 1 << q
		}
	}
	return mask
}

// highestQuad 返回 mask 里编号最大的象限，mask 为 0 时返回 -1
func highestQuad(mask uint8) int {
	for q := QuadN - 1; q >= 0; q-- {
		if mask&(1<<q) != 0 {
			return q
		}
	}
	return -1
}

// GenerateMoves 枚举所有合法的（落子, 旋转）组合。
//
// 对称象限（中心以外全空）旋转等于没转，所以同一落点下只保留编号最大的那个对称象限，
// 而且只给它一个方向；其余对称象限整体跳过。落子所在象限不参与这个判断，
// 因为落子可能刚好打破它的对称。
func GenerateMoves(b Board) []Move {
	moves := make([]Move, 0, 108)
	symmetric := symmetricMask(&b)

	for i := 0; i < QuadN; i++ {
		still := symmetric &^ (1 << i)
		rep := highestQuad(still)

		for j := 0; j < QuadCells; j++ {
			if b.Quads[i][j] != Empty {
				continue
			}
			for k := 0; k < QuadN; k++ {
				if still&(1<<k) != 0 && k != rep {
					continue
				}
				moves = append(moves, Move{PlaceQuadrant: i, Square: j, RotateQuadrant: k, Clockwise: true})
				if k != rep {
					moves = append(moves, Move{PlaceQuadrant: i, Square: j, RotateQuadrant: k, Clockwise: false})
				}
			}
		}
	}
	return moves
}

// ValidateMove 检查外部提供的走法：非空着、下标在范围内、落点为空。
// Board 本身的状态转移函数不做这些校验。
func ValidateMove(b Board, m Move) error {
	if m.IsNull() {
		return errors.Wrap(ErrInvalidMove, "null move")
	}
	if m.PlaceQuadrant >= QuadN || m.RotateQuadrant >= QuadN || m.Square >= QuadCells {
		return errors.Wrapf(ErrInvalidMove, "out of range: %v", m)
	}
	if b.Quads[m.PlaceQuadrant][m.Square] != Empty {
		return errors.Wrapf(ErrInvalidMove, "square occupied: %v", m)
	}
	return nil
}
