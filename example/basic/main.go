// Package main demonstrates basic usage of the linereader library with an
// SQL-style prompt: "\" continues a command, ";" ends it.
package main

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/nao1215/linereader"
)

func main() {
	lr, err := linereader.New(
		linereader.WithExtenders(`\`),
		linereader.WithDelimiters(";", `\G`),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer lr.Close()

	lr.AddWords([]string{"SELECT", "FROM", "WHERE", "GROUP", "ORDER", "BY", "LIMIT", "INSERT", "INTO", "VALUES"})

	fmt.Println("Basic Example")
	fmt.Println(`End a line with \ to continue it. Type 'exit' or press Ctrl+D to quit.`)
	fmt.Println()

	for {
		query, err := lr.ReadLine(":) ", ":-] ")
		if err != nil {
			if errors.Is(err, linereader.ErrEOF) {
				fmt.Println("\nGoodbye!")
				break
			}
			log.Printf("Error: %v\n", err)
			continue
		}

		if strings.TrimSpace(query) == "exit" {
			fmt.Println("Goodbye!")
			break
		}

		fmt.Printf("Query (%d lines): %q\n", strings.Count(query, "\n")+1, query)
	}
}
