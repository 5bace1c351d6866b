// Package main demonstrates multiline mode: a command is only complete once
// a line ends with ";".
package main

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/nao1215/linereader"
)

func main() {
	fmt.Println("Multiline Input Example")
	fmt.Println("Enter text:")
	fmt.Println("  - Lines are collected until one ends with ';'")
	fmt.Println("  - Pasted blocks are kept together")
	fmt.Println("Type 'exit;' to quit")
	fmt.Println()

	lr, err := linereader.New(
		linereader.WithMultiline(true),
		linereader.WithDelimiters(";"),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer lr.Close()

	for {
		result, err := lr.ReadLine("multi> ", "   ... ")
		if err != nil {
			if errors.Is(err, linereader.ErrEOF) {
				fmt.Println("\nGoodbye!")
				break
			}
			log.Printf("Error: %v\n", err)
			continue
		}

		if strings.TrimSpace(result) == "exit;" {
			fmt.Println("Goodbye!")
			return
		}

		// Display the input with line numbers
		fmt.Println("--- Your input ---")
		lines := strings.Split(result, "\n")
		for i, line := range lines {
			fmt.Printf("%3d: %s\n", i+1, line)
		}
		fmt.Printf("\nTotal lines: %d\n", len(lines))
		fmt.Printf("Total characters: %d\n", len(result))
		fmt.Println("--- End of input ---")
	}
}
