// Package main provides a shell-like file explorer example. Every directory
// visited adds its entries to the completion vocabulary.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/nao1215/linereader"
)

func main() {
	fmt.Println("Shell-like File Explorer Example")
	fmt.Println("================================")
	fmt.Println("Commands:")
	fmt.Println("  ls [path]    - List directory contents")
	fmt.Println("  cd [path]    - Change directory")
	fmt.Println("  cat [file]   - Show file contents")
	fmt.Println("  pwd          - Show current directory")
	fmt.Println("  exit/quit    - Exit")
	fmt.Println()
	fmt.Println("Use Tab to complete commands and names of files seen so far.")
	fmt.Println("End a line with | to continue it.")
	fmt.Println()

	lr, err := linereader.New(
		linereader.WithExtenders("|"),
		linereader.WithWordBreakCharacters(" \t"),
		linereader.WithHistoryFile("~/.linereader_shell_history"),
	)
	if err != nil {
		log.Fatalf("failed to create line reader: %v", err)
	}
	defer lr.Close()

	lr.AddWords([]string{"ls", "cd", "cat", "pwd", "exit", "quit"})
	addDirectoryWords(lr, ".")

	for {
		cwd, err := os.Getwd()
		if err != nil {
			cwd = "unknown"
		}

		result, err := lr.ReadLine(fmt.Sprintf("shell:%s> ", filepath.Base(cwd)), "> ")
		if err != nil {
			if !errors.Is(err, linereader.ErrEOF) {
				fmt.Printf("Error: %v\n", err)
			}
			break
		}

		// Continued lines form one command line.
		result = strings.Join(strings.Fields(result), " ")

		if result == "exit" || result == "quit" {
			fmt.Println("Goodbye!")
			break
		}
		if result == "" {
			continue
		}

		executeCommand(lr, result)
		fmt.Println()
	}
}

// addDirectoryWords makes the entries of dir available for completion.
func addDirectoryWords(lr *linereader.LineReader, dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	words := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			name += "/"
		}
		words = append(words, name)
	}
	lr.AddWords(words)
}

func executeCommand(lr *linereader.LineReader, input string) {
	words := strings.Fields(input)
	if len(words) == 0 {
		return
	}

	cmd := words[0]
	args := words[1:]

	switch cmd {
	case "pwd":
		cwd, err := os.Getwd()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
		} else {
			fmt.Println(cwd)
		}

	case "ls":
		path := "."
		if len(args) > 0 {
			path = args[0]
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		addDirectoryWords(lr, path)

		fmt.Printf("Contents of %s:\n", path)
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() {
				fmt.Printf("  %s/\n", name)
			} else {
				fmt.Printf("  %s\n", name)
			}
		}

	case "cd":
		if len(args) == 0 {
			fmt.Println("Error: cd requires a directory argument")
			return
		}

		err := os.Chdir(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
		} else {
			cwd, err := os.Getwd()
			if err != nil {
				cwd = "unknown"
			}
			fmt.Printf("Changed to: %s\n", cwd)
			addDirectoryWords(lr, ".")
		}

	case "cat":
		if len(args) == 0 {
			fmt.Println("Error: cat requires a file argument")
			return
		}

		content, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		// Limit output for large files
		if len(content) > 1000 {
			fmt.Printf("File content (first 1000 bytes):\n%s\n... (truncated)\n", content[:1000])
		} else {
			fmt.Printf("File content:\n%s\n", content)
		}

	default:
		// Try to execute as external command
		// #nosec G204 - This is an example program that intentionally executes user input
		execCmd := exec.CommandContext(context.Background(), cmd, args...)
		output, err := execCmd.CombinedOutput()
		if err != nil {
			fmt.Printf("Error executing '%s': %v\n", cmd, err)
		} else {
			fmt.Print(string(output))
		}
	}
}
