package game

import "testing"

func TestHandCraftedScores(t *testing.T) {
	cases := []struct {
		name           string
		board          string
		white          bool
		want, wantLead int
	}{
		{"blank", `
			. . . . . .
			. . . . . .
			. . . . . .
			. . . . . .
			. . . . . .
			. . . . . .`, true, 0, 0},
		// 角上一子：横、竖、主对角各一个窗口
		{"corner", `
			W . . . . .
			. . . . . .
			. . . . . .
			. . . . . .
			. . . . . .
			. . . . . .`, true, 3, 3},
		{"corner black to move", `
			W . . . . .
			. . . . . .
			. . . . . .
			. . . . . .
			. . . . . .
			. . . . . .`, false, -3, -3},
		// (0,1) 也落在从 (0,0) 开始的横窗口里，但那个窗口首格是空的
		{"first cell empty", `
			. W . . . .
			. . . . . .
			. . . . . .
			. . . . . .
			. . . . . .
			. . . . . .`, true, 4, 3},
		// 横窗口 9 + 4，三个竖窗口各 1，两个对角各 1
		{"run of three", `
			W W W . . .
			. . . . . .
			. . . . . .
			. . . . . .
			. . . . . .
			. . . . . .`, true, 18, 18},
		// 混色窗口作废：白 2，黑 3
		{"mixed window", `
			W B . . . .
			. . . . . .
			. . . . . .
			. . . . . .
			. . . . . .
			. . . . . .`, true, -1, -1},
	}
	for _, c := range cases {
		b := MustParseBoard(c.board, c.white)
		if got := HandCrafted(b); got != c.want {
			t.Fatalf("%s: HandCrafted=%d, want %d", c.name, got, c.want)
		}
		if got := HandCraftedLeading(b); got != c.wantLead {
			t.Fatalf("%s: HandCraftedLeading=%d, want %d", c.name, got, c.wantLead)
		}
	}
}

func TestHandCraftedIsZeroSum(t *testing.T) {
	for _, b := range randomBoards(100, 5) {
		other := b
		other.flipSide()
		if HandCrafted(b) != -HandCrafted(other) {
			t.Fatalf("score should flip sign with side to move\n%v", b)
		}
	}
}

func TestEvaluateTerminal(t *testing.T) {
	b := MustParseBoard(`
		. . . . . .
		. . . . . .
		. . . . . .
		B B B B B .
		. . . . . .
		. . . . . .`, true)
	if got := Evaluate(b, HandCrafted); got != -WinScore {
		t.Fatalf("white to move, black has five: got %d", got)
	}
	b.flipSide()
	if got := Evaluate(b, HandCrafted); got != WinScore {
		t.Fatalf("black to move, black has five: got %d", got)
	}

	calls := 0
	counting := func(Board) int { calls++; return 7 }
	if got := Evaluate(b, counting); got != WinScore || calls != 0 {
		t.Fatalf("terminal positions must not reach the heuristic")
	}
	if got := Evaluate(NewBoard(), counting); got != 7 || calls != 1 {
		t.Fatalf("non-terminal should use the injected evaluator")
	}
}
