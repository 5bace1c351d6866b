// Package main demonstrates file-backed history. Run it in two terminals at
// once: both sessions append to the same file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/nao1215/linereader"
)

func main() {
	configFile := flag.String("config", "", "TOML configuration file")
	flag.Parse()

	config := linereader.DefaultConfig()
	if *configFile != "" {
		var err error
		config, err = linereader.LoadConfigFile(*configFile)
		if err != nil {
			log.Fatal(err)
		}
	}
	if config.HistoryConfig.File == "" {
		config.HistoryConfig.File = linereader.GetDefaultHistoryFile()
	}

	fmt.Println("History Example with File Persistence")
	fmt.Println("Use Up/Down arrow keys to navigate history")
	fmt.Printf("History is appended to %s\n", config.HistoryConfig.File)
	fmt.Println()

	lr, err := linereader.NewFromConfig(config, linereader.WithDelimiters(";"))
	if err != nil {
		log.Fatal(err)
	}
	defer lr.Close()

	for {
		result, err := lr.ReadLine("history> ", "      -> ")
		if err != nil {
			if errors.Is(err, linereader.ErrEOF) {
				fmt.Println("\nGoodbye!")
				return
			}
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}

		switch result {
		case "exit", "quit":
			fmt.Println("Goodbye!")
			return
		default:
			fmt.Printf("Executed: %s\n", result)
		}
	}
}
