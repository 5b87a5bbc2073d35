package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/lexbrit/traduko/internal/cli"
)

func runHistory(args []string) int {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", 30*time.Second, "Command timeout")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	rt, err := newRuntime(envLoader, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		return 1
	}
	defer rt.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	records, err := rt.translator.History(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "History read failed: %v\n", err)
		return 1
	}

	if len(records) == 0 {
		fmt.Println("History is empty.")
		return 0
	}
	for _, record := range records {
		fmt.Printf("%s  %-30q -> %q\n", record.CreatedAt.Format(time.RFC3339), record.Original, record.Translated)
	}
	return 0
}

func runClear(args []string) int {
	fs := flag.NewFlagSet("clear", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", 30*time.Second, "Command timeout")
	yes := fs.Bool("yes", false, "Confirm deleting the entire translation history")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if !*yes {
		fmt.Fprintln(os.Stderr, "clear deletes the entire translation history; pass --yes to confirm")
		return 2
	}

	rt, err := newRuntime(envLoader, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		return 1
	}
	defer rt.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	records, err := rt.translator.Clear(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Clear failed: %v\n", err)
		fmt.Fprintf(os.Stderr, "%d record(s) still visible in the store.\n", len(records))
		return 1
	}

	fmt.Println("History cleared.")
	return 0
}
