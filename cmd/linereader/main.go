// Command linereader reads multi-line commands from a terminal or a pipe and
// writes each assembled command to stdout, one per line. It is a front end
// for programs that take one command at a time:
//
//	linereader --delimiter ';' --words sql_keywords.txt | sqlite3 app.db
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
