package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lk16/draughts/internal/client"
	"github.com/lk16/draughts/internal/config"
	"github.com/lk16/draughts/internal/draughts"
	"github.com/lk16/draughts/internal/models"
)

const requestTimeout = 5 * time.Second

func printState(state models.SessionResponse) {
	board, err := draughts.NewBoardFromState(state.Board)
	if err != nil {
		slog.Error("Server sent an invalid board", "error", err)
		return
	}

	board.Print()
	fmt.Printf("white captured %d, black captured %d\n", state.PlayerOneCaptured, state.PlayerTwoCaptured)

	player, _ := draughts.PlayerFromCode(state.CurrentPlayer)

	switch {
	case state.GameOver:
		winner, _ := draughts.PlayerFromCode(state.Winner)
		fmt.Printf("game over, %s wins\n", winner)
	case state.ChainActive && state.ChainAt != nil:
		fmt.Printf("%s must continue capturing with %s\n", player, *state.ChainAt)
	default:
		fmt.Printf("%s to move\n", player)
	}
}

func main() {
	logger := config.SetLogLevel()
	cfg := config.LoadClientConfig()

	apiClient := client.NewAPIClient(cfg, logger)

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	state, err := apiClient.CreateSession(ctx)
	cancel()
	if err != nil {
		slog.Error("Failed to create session", "error", err)
		os.Exit(1)
	}

	fmt.Printf("session %s\n", state.ID)
	fmt.Println(`enter moves as "row,col row,col", or "quit"`)
	printState(state)

	scanner := bufio.NewScanner(os.Stdin)
	for !state.GameOver && scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if line == "quit" {
			break
		}

		move, err := client.ParseMove(line)
		if err != nil {
			fmt.Println(err)
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		next, err := apiClient.Play(ctx, state.ID, move)
		cancel()
		if err != nil {
			fmt.Println(err)
			continue
		}

		state = next
		printState(state)
	}

	ctx, cancel = context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	if err = apiClient.DestroySession(ctx, state.ID); err != nil {
		slog.Warn("Failed to destroy session", "session_id", state.ID, "error", err)
	}
}
