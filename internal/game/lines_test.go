package game

import "testing"

func TestWinLineCount(t *testing.T) {
	// 横 12 + 竖 12 + 两个对角方向各 4
	if len(winLines) != 32 {
		t.Fatalf("got %d windows, want 32", len(winLines))
	}
	for _, w := range winLines {
		for _, f := range w {
			if f < 0 || f >= BoardN {
				t.Fatalf("window out of range: %v", w)
			}
		}
	}
}

func TestWinner(t *testing.T) {
	cases := []struct {
		name  string
		board string
		want  Piece
	}{
		{"row of five", `
			W W W W W .
			. . . . . .
			. . . . . .
			. . . . . .
			. . . . . .
			. . . . . .`, White},
		{"row of four", `
			W W W W . .
			. . . . . .
			. . . . . .
			. . . . . .
			. . . . . .
			. . . . . .`, Empty},
		{"column", `
			. . . . . .
			. . . B . .
			. . . B . .
			. . . B . .
			. . . B . .
			. . . B . .`, Black},
		{"diagonal", `
			. . . . . .
			. W . . . .
			. . W . . .
			. . . W . .
			. . . . W .
			. . . . . W`, White},
		{"anti-diagonal", `
			. . . . B .
			. . . B . .
			. . B . . .
			. B . . . .
			B . . . . .
			. . . . . .`, Black},
		{"no wrap across rows", `
			. . . . W W
			W W W . . .
			. . . . . .
			. . . . . .
			. . . . . .
			. . . . . .`, Empty},
		{"broken by opponent", `
			W W B W W W
			. . . . . .
			. . . . . .
			. . . . . .
			. . . . . .
			. . . . . .`, Empty},
		{"six in a row", `
			. . . . . .
			. . . . . .
			B B B B B B
			. . . . . .
			. . . . . .
			. . . . . .`, Black},
	}
	for _, c := range cases {
		b := MustParseBoard(c.board, true)
		if got := Winner(b); got != c.want {
			t.Fatalf("%s: got %v, want %v", c.name, got, c.want)
		}
	}
}

func TestWinnerScanOrder(t *testing.T) {
	// 双方同时成五：按扫描顺序，先遇到的那条线决定
	b := MustParseBoard(`
		. . . . . .
		B B B B B .
		. . . . . .
		W W W W W .
		. . . . . .
		. . . . . .`, true)
	if got := Winner(b); got != Black {
		t.Fatalf("got %v, want black (row 1 scanned first)", got)
	}
}

func TestIsTerminalFullBoard(t *testing.T) {
	// 满盘无五连
	b := MustParseBoard(`
		W W B B W W
		B B W W B B
		W W B B W W
		B B W W B B
		W W B B W W
		B B W W B B`, true)
	if Winner(b) != Empty {
		t.Fatalf("board should have no winner")
	}
	if !IsTerminal(b) {
		t.Fatalf("full board should be terminal")
	}
}
