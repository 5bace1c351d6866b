// Package main demonstrates completion with a vocabulary that is loaded in
// the background from word files while the prompt is already usable.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/nao1215/linereader"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		Prefix: "autocomplete",
		Level:  charmlog.DebugLevel,
	})

	lr, err := linereader.New(
		linereader.WithDelimiters(";"),
		linereader.WithLogger(logger),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer lr.Close()

	// Usable right away; word files extend this as they are read.
	lr.AddWords([]string{"help", "list", "create", "delete", "update", "status", "exit"})

	go func() {
		if err := lr.LoadWordFiles(ctx, os.Args[1:]...); err != nil {
			logger.Error("failed to load vocabulary", "err", err)
		}
	}()

	fmt.Println("Autocomplete Example")
	fmt.Println("Usage: autocomplete [word files...]")
	fmt.Println("Press Tab to complete. Lowercase input matches case-insensitively.")
	fmt.Println("Type ':words <prefix>' to list completions, 'exit' to quit.")
	fmt.Println()

	for {
		result, err := lr.ReadLine("> ", ". ")
		if err != nil {
			if errors.Is(err, linereader.ErrEOF) {
				fmt.Println("\nGoodbye!")
				return
			}
			continue
		}

		switch {
		case result == "exit":
			fmt.Println("Goodbye!")
			return
		case strings.HasPrefix(result, ":words"):
			prefix := strings.TrimSpace(strings.TrimPrefix(result, ":words"))
			for _, word := range lr.GetCompletions(prefix, len(prefix)) {
				fmt.Println(word)
			}
		default:
			fmt.Printf("You typed: %s\n", result)
		}
	}
}
