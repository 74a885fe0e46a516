package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mnoyd/cotulenh"
	"github.com/mnoyd/cotulenh/internal/board"
)

// REPL is a bufio-scanner command loop over a single Game: fen, moves,
// move, deploy, undo, d, perft, quit.
type REPL struct {
	game *cotulenh.Game
	log  zerolog.Logger
}

// NewREPL builds a driver loop around an already-loaded game.
func NewREPL(game *cotulenh.Game, log zerolog.Logger) *REPL {
	return &REPL{game: game, log: log}
}

// Run reads commands from stdin until EOF or "quit".
func (r *REPL) Run() {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Fields(line)
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "fen":
			fmt.Println(r.game.FEN())
		case "d":
			r.printBoard()
		case "moves":
			r.handleMoves(args)
		case "move":
			r.handleMove(args)
		case "deploy":
			r.handleDeploy(args)
		case "undo":
			r.handleUndo()
		case "perft":
			r.handlePerft(args)
		case "quit", "exit":
			return
		default:
			fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		}
	}
}

func (r *REPL) printBoard() {
	fmt.Println(r.game.FEN())
}

func (r *REPL) handleMoves(args []string) {
	var opts cotulenh.MovesOptions
	if len(args) > 0 {
		sq, err := board.ParseSquare(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid square: %s\n", args[0])
			return
		}
		opts.Square = &sq
	}
	moves, err := r.game.Moves(opts)
	if err != nil {
		r.log.Error().Err(err).Msg("moves failed")
		return
	}
	for _, m := range moves {
		fmt.Println(m.SAN)
	}
}

func (r *REPL) handleMove(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: move <san>")
		return
	}
	mv, err := r.game.Move(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "illegal move: %v\n", err)
		return
	}
	fmt.Println(mv.SAN)
}

// handleDeploy parses "deploy <origin> <kind><to>[,<kind><to>...] [commit]",
// e.g. "deploy f6 Tf7,Ih6 commit".
func (r *REPL) handleDeploy(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: deploy <origin> <kind><to>[,...] [commit]")
		return
	}
	origin, err := board.ParseSquare(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid origin square: %s\n", args[0])
		return
	}

	req := cotulenh.DeployRequest{Origin: origin, Commit: len(args) > 2 && args[2] == "commit"}
	for _, tok := range strings.Split(args[1], ",") {
		if len(tok) < 3 {
			fmt.Fprintf(os.Stderr, "invalid deploy action: %s\n", tok)
			return
		}
		kind, ok := board.KindFromChar(tok[0])
		if !ok {
			fmt.Fprintf(os.Stderr, "unknown piece letter in: %s\n", tok)
			return
		}
		to, err := board.ParseSquare(tok[1:])
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid destination in: %s\n", tok)
			return
		}
		req.Actions = append(req.Actions, cotulenh.DeployAction{Kind: kind, To: to})
	}

	moves, err := r.game.Deploy(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "deploy failed: %v\n", err)
		return
	}
	for _, m := range moves {
		fmt.Println(m.SAN)
	}
}

func (r *REPL) handleUndo() {
	mv, err := r.game.Undo()
	if err != nil {
		fmt.Fprintf(os.Stderr, "undo failed: %v\n", err)
		return
	}
	if mv == nil {
		fmt.Fprintln(os.Stderr, "nothing to undo")
		return
	}
	fmt.Printf("undone: %s\n", mv.SAN)
}

func (r *REPL) handlePerft(args []string) {
	depth := 3
	if len(args) > 0 {
		d, err := strconv.Atoi(args[0])
		if err == nil {
			depth = d
		}
	}
	nodes := perft(r.game, depth)
	fmt.Printf("Nodes: %d\n", nodes)
}

// perft counts leaf positions depth plies deep via the public API alone
// (clone-and-replay per branch), built on Game.Clone rather than a
// make/unmake pair since the root package exposes no lower-level hook.
func perft(g *cotulenh.Game, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves, err := g.Moves(cotulenh.MovesOptions{})
	if err != nil {
		return 0
	}
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		clone := g.Clone()
		if _, err := clone.Move(m.SAN); err != nil {
			continue
		}
		nodes += perft(clone, depth-1)
	}
	return nodes
}
