package main

import (
	"bufio"
	"os"

	"golang.org/x/term"

	"github.com/tomz197/invasion/internal/config"
	"github.com/tomz197/invasion/internal/loop"
)

func main() {
	logger := config.NewLogger("game")

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		logger.Fatal("failed to enable raw mode", "err", err)
	}

	reader := bufio.NewReader(os.Stdin)
	runErr := loop.Run(reader, os.Stdout, loop.Options{})
	_ = term.Restore(fd, oldState)

	if runErr != nil {
		logger.Fatal("game error", "err", runErr)
	}
}
