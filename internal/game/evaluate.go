// file: internal/game/evaluate.go
package game

// WinScore 是终局分，远大于任何启发式分值
const WinScore = 1000000

// Evaluator 给非终局局面打分，分数相对于行棋方（正数对行棋方有利）。
// 引擎通过 Config 注入，换策略不需要新类型。
type Evaluator func(b Board) int

// Evaluate 先判终局，再调用 eval。终局返回 ±WinScore（相对行棋方）。
// 给包外调用方用的静态评估入口；negamax 自己在节点入口判过终局，叶子直接调 eval。
func Evaluate(b Board, eval Evaluator) int {
	if w := Winner(b); w != Empty {
		return terminalScore(b, w)
	}
	return eval(b)
}

func terminalScore(b Board, winner Piece) int {
	if winner == b.Side() {
		return WinScore
	}
	return -WinScore
}

// HandCrafted 对每个 5 格窗口：跳过空格，遇到的第一个子确定颜色并计 1，
// 之后同色 +1，出现异色则整个窗口作废。有效窗口贡献 run²。
func HandCrafted(b Board) int {
	flat := Flatten(b)
	return scoreWindows(&flat, b.WhiteToMove, false)
}

// HandCraftedLeading 是旧版评估：只有窗口首格有子才计分，其余规则同 HandCrafted
func HandCraftedLeading(b Board) int {
	flat := Flatten(b)
	return scoreWindows(&flat, b.WhiteToMove, true)
}

func scoreWindows(flat *[BoardN]Piece, whiteToMove, leadingOnly bool) int {
	white, black := 0, 0
	for _, w := range winLines {
		if leadingOnly && flat[w[0]] == Empty {
			continue
		}
		color := Empty
		run := 0
		for _, f := range w {
			p := flat[f]
			if p == Empty {
				continue
			}
			if color == Empty {
				color = p
				run = 1
				continue
			}
			if p != color {
				run = 0
				break
			}
			run++
		}
		if run == 0 {
			continue
		}
		if color == White {
			white += run * run
		} else {
			black += run * run
		}
	}
	score := white - black
	if !whiteToMove {
		score = -score
	}
	return score
}
