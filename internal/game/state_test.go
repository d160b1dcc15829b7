package game

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// scripted 按顺序回放固定走法，走完后返回空着
func scripted(moves ...Move) Player {
	i := 0
	return PlayerFunc(func(context.Context, Board) (Move, error) {
		if i >= len(moves) {
			return NullMove(), nil
		}
		mv := moves[i]
		i++
		return mv, nil
	})
}

type recordingPlayer struct {
	Player
	calls   int
	isWhite bool
	stats   Stats
}

func (p *recordingPlayer) OnGameEnd(_ *GameRecord, isWhite bool, stats Stats) {
	p.calls++
	p.isWhite = isWhite
	p.stats = stats
}

func quietGame(white, black Player) *Game {
	return NewGame(white, black).WithLogger(zerolog.Nop())
}

func TestPlayScriptedWin(t *testing.T) {
	// 白方在第 0 行连五，每步都转空的象限 3；黑方下在象限 2
	rot := func(q, s int) Move { return Move{PlaceQuadrant: q, Square: s, RotateQuadrant: 3, Clockwise: true} }
	white := &recordingPlayer{Player: scripted(rot(0, 0), rot(0, 1), rot(0, 2), rot(1, 0), rot(1, 1))}
	black := &recordingPlayer{Player: scripted(rot(2, 0), rot(2, 1), rot(2, 2), rot(2, 3))}

	g := quietGame(white, black)
	stats, err := g.Play(context.Background(), true)
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if stats.Winner != White || stats.Plies != 9 || stats.Draw {
		t.Fatalf("got %+v, want white in 9 plies", stats)
	}
	if len(g.Record().History) != 10 {
		t.Fatalf("history should hold the blank board plus 9 positions, got %d", len(g.Record().History))
	}
	if g.Record().History[0] != NewBoard() {
		t.Fatalf("history must start from the blank board")
	}
	if white.calls != 1 || !white.isWhite || black.calls != 1 || black.isWhite {
		t.Fatalf("listeners: white=%+v black=%+v", white, black)
	}
	if white.stats != *stats || black.stats != *stats {
		t.Fatalf("listeners saw different stats")
	}
}

func TestPlayNullMove(t *testing.T) {
	white := &recordingPlayer{Player: scripted()}
	g := quietGame(white, NewRandomPlayer())
	stats, err := g.Play(context.Background(), false)
	if stats != nil || err != nil {
		t.Fatalf("lenient: got %v, %v; want nil, nil", stats, err)
	}
	if white.calls != 0 {
		t.Fatalf("aborted games must not notify listeners")
	}

	_, err = quietGame(scripted(), NewRandomPlayer()).Play(context.Background(), true)
	if !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("strict: got %v, want ErrInvalidMove", err)
	}
}

func TestPlayOccupiedSquare(t *testing.T) {
	mv := Move{PlaceQuadrant: 0, Square: 0, RotateQuadrant: 3, Clockwise: true}
	_, err := quietGame(scripted(mv), scripted(mv)).Play(context.Background(), true)
	if !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("got %v, want ErrInvalidMove", err)
	}
}

func TestPlayProviderError(t *testing.T) {
	boom := errors.New("boom")
	failing := PlayerFunc(func(context.Context, Board) (Move, error) { return NullMove(), boom })
	_, err := quietGame(NewRandomPlayer(), failing).Play(context.Background(), true)
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want boom", err)
	}
	if !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("got %v, want ErrInvalidMove as well", err)
	}

	// 引擎超时也按走子方故障处理
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = quietGame(quietEngine(Config{TimeBudget: time.Minute}), NewRandomPlayer()).Play(ctx, true)
	if !errors.Is(err, ErrNoMoveInTime) || !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("got %v, want ErrNoMoveInTime wrapped as ErrInvalidMove", err)
	}
	if got, _ := quietGame(quietEngine(Config{TimeBudget: time.Minute}), NewRandomPlayer()).Play(ctx, false); got != nil {
		t.Fatalf("lenient mode should drop the result, got %+v", got)
	}
}

func TestPlayRandomGames(t *testing.T) {
	for i := 0; i < 20; i++ {
		g := quietGame(NewRandomPlayer(), NewRandomPlayer())
		stats, err := g.Play(context.Background(), true)
		if err != nil {
			t.Fatalf("play: %v", err)
		}
		hist := g.Record().History
		final := hist[len(hist)-1]
		if stats.Plies != len(hist)-1 || stats.Plies > BoardN {
			t.Fatalf("plies=%d history=%d", stats.Plies, len(hist))
		}
		if stats.Draw {
			if final.Occupied() != BoardN || stats.Winner != Empty {
				t.Fatalf("draw before the board filled up: %+v\n%v", stats, final)
			}
			continue
		}
		if Winner(final) != stats.Winner {
			t.Fatalf("stats winner %v, board says %v", stats.Winner, Winner(final))
		}
		for j := 1; j < len(hist); j++ {
			if hist[j].Occupied() != j {
				t.Fatalf("ply %d has %d stones", j, hist[j].Occupied())
			}
		}
	}
}

func TestPlayEngineVsRandom(t *testing.T) {
	e := quietEngine(Config{TimeBudget: 10 * time.Second, MaxDepth: 1})
	stats, err := quietGame(e, NewRandomPlayer()).Play(context.Background(), true)
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if stats.Plies == 0 {
		t.Fatalf("no moves were played")
	}
	if nodes, _ := e.Stats(); nodes == 0 {
		t.Fatalf("engine never searched")
	}
}

func TestPlayFullBoardIsDraw(t *testing.T) {
	full := MustParseBoard(`
		W W B B W W
		B B W W B B
		W W B B W W
		B B W W B B
		W W B B W W
		B B W W B B`, true)
	never := PlayerFunc(func(context.Context, Board) (Move, error) {
		t.Fatalf("no move should be requested on a full board")
		return NullMove(), nil
	})
	white := &recordingPlayer{Player: never}
	stats, err := NewGameFrom(white, never, full).WithLogger(zerolog.Nop()).Play(context.Background(), true)
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if stats == nil || !stats.Draw || stats.Winner != Empty || stats.Plies != 0 {
		t.Fatalf("want draw after 0 plies, got %+v", stats)
	}
	if white.calls != 1 || !white.stats.Draw {
		t.Fatalf("listener not notified of the draw: %+v", white)
	}
}
