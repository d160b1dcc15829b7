package game

// WinLength 连成一线需要的子数
const WinLength = 5

// window 是 6x6 网格上一条 5 格线，存网格下标，按扫描顺序排列
type window [WinLength]int

// 四种模板：横、竖、主对角、副对角。
// 副对角从锚点右侧第 4 格开始往左下走（锚点 (x,y) -> 首格 (x+4,y)）。
var lineTemplates = [4]struct {
	startX, dx, dy int
}{
	{0, 1, 0},
	{0, 0, 1},
	{0, 1, 1},
	{4, -1, 1},
}

// winLines 预先算好所有不越界的窗口：按格子行优先、再按模板顺序。
// 终局判断和启发式评估共用这张表，顺序决定“先找到的那条线”。
var winLines []window

func initLineTables() {
	winLines = winLines[:0]
	for y := 0; y < BoardSide; y++ {
		for x := 0; x < BoardSide; x++ {
			for _, t := range lineTemplates {
				sx := x + t.startX
				ex := sx + t.dx*(WinLength-1)
				ey := y + t.dy*(WinLength-1)
				if sx >= BoardSide || ex < 0 || ex >= BoardSide || ey >= BoardSide {
					continue
				}
				var w window
				for k := 0; k < WinLength; k++ {
					w[k] = (y+t.dy*k)*BoardSide + sx + t.dx*k
				}
				winLines = append(winLines, w)
			}
		}
	}
}

// Winner 判断终局：返回第一条（按扫描顺序）同色五连的颜色，没有则返回 Empty。
// 双方同时成五时结果取决于扫描顺序。
func Winner(b Board) Piece {
	flat := Flatten(b)
	return winnerFlat(&flat)
}

func winnerFlat(flat *[BoardN]Piece) Piece {
	for _, w := range winLines {
		first := flat[w[0]]
		if first == Empty {
			continue
		}
		won := true
		for k := 1; k < WinLength; k++ {
			if flat[w[k]] != first {
				won = false
				break
			}
		}
		if won {
			return first
		}
	}
	return Empty
}

// IsTerminal 有人成五，或者棋盘已满
func IsTerminal(b Board) bool {
	return Winner(b) != Empty || b.Occupied() == BoardN
}
