package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lk16/draughts/internal/draughts"
)

func main() {
	boardString := flag.String("board", "", "the board to show, 64 cell codes with optional / between rows")
	start := flag.Bool("start", false, "show the starting position")
	flag.Parse()

	if *start {
		draughts.NewBoardStart().Print()
		return
	}

	board, err := draughts.NewBoardFromString(*boardString)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	board.Print()

	for _, player := range []draughts.Player{draughts.White, draughts.Black} {
		fmt.Printf("%s: %d pieces, can move: %t, must capture with: %v\n",
			player, board.CountPieces(player), board.HasValidMoves(player), board.CapturingPieces(player))
	}
}
