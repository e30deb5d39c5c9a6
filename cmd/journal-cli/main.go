// Package main is a line-oriented terminal client for the journal API.
// Usage: journal-cli [--url URL] [--token TOKEN | --user U --password P]
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"journal-api/internal/client/api"
	"journal-api/internal/client/ui"
	"journal-api/internal/observability/logging"
)

const usage = `commands:
  list                    reload journals
  add                     open an empty journal dialog
  edit <id>               edit a listed journal
  set <field> <value>     change a dialog field
  save                    create or update from the dialog
  cancel                  close the dialog
  rm <id>                 delete a journal
  dismiss [n]             dismiss notification n (default 0)
  help                    show this text
  quit                    exit`

func main() {
	var (
		baseURL  string
		token    string
		user     string
		password string
		delay    time.Duration
	)

	flag.StringVar(&baseURL, "url", envOr("JOURNAL_API_URL", "http://localhost:8080"), "API base URL")
	flag.StringVar(&token, "token", os.Getenv("JOURNAL_TOKEN"), "Bearer token (skips login)")
	flag.StringVar(&user, "user", os.Getenv("JOURNAL_USER"), "Username for POST /auth/token")
	flag.StringVar(&password, "password", os.Getenv("JOURNAL_PASSWORD"), "Password for POST /auth/token")
	flag.DurationVar(&delay, "delay", ui.DefaultInitialDelay, "Delay before the first load")
	flag.Parse()

	logger := logging.New(logging.Options{Level: os.Getenv("LOG_LEVEL"), Format: "text", Output: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := api.New(api.Config{BaseURL: baseURL, Token: token})
	if token == "" {
		if user == "" || password == "" {
			fmt.Fprintln(os.Stderr, "Error: --token or both --user and --password are required")
			os.Exit(1)
		}
		if _, err := client.Token(ctx, user, password); err != nil {
			logger.Error("login failed", slog.Any("error", err))
			fmt.Fprintf(os.Stderr, "Error: Login failed: %v\n", err)
			os.Exit(1)
		}
	}

	p := ui.NewProgram(client,
		ui.WithInitialDelay(delay),
		ui.WithRenderer(func(m ui.Model) {
			fmt.Fprint(os.Stdout, "\n"+ui.View(m))
		}),
	)

	go readCommands(os.Stdin, os.Stderr, p)
	p.Run(ctx)
}

// readCommands feeds parsed stdin lines to p until EOF or quit.
func readCommands(in io.Reader, errOut io.Writer, p *ui.Program) {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line == "help" {
			fmt.Fprintln(errOut, usage)
			continue
		}
		msg, err := parseCommand(line)
		if err != nil {
			fmt.Fprintf(errOut, "Error: %v\n", err)
			continue
		}
		p.Send(msg)
		if _, ok := msg.(ui.Quit); ok {
			return
		}
	}
	p.Send(ui.Quit{})
}

var errUsage = errors.New("unknown command (try help)")

func parseCommand(line string) (ui.Msg, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, errUsage
	}
	args := fields[1:]

	switch fields[0] {
	case "list":
		return ui.LoadRequested{}, nil
	case "add":
		return ui.AddClicked{}, nil
	case "edit":
		id, err := oneID(args)
		if err != nil {
			return nil, err
		}
		return ui.EditClicked{ID: id}, nil
	case "rm":
		id, err := oneID(args)
		if err != nil {
			return nil, err
		}
		return ui.DeleteClicked{ID: id}, nil
	case "set":
		if len(args) < 1 {
			return nil, errors.New("usage: set <field> <value>")
		}
		// the value is the rest of the line, spaces included
		rest := strings.TrimSpace(strings.TrimPrefix(line, fields[0]))
		value := strings.TrimSpace(strings.TrimPrefix(rest, args[0]))
		return ui.FieldChanged{Field: args[0], Value: value}, nil
	case "save":
		return ui.SubmitClicked{}, nil
	case "cancel":
		return ui.CancelClicked{}, nil
	case "dismiss":
		n := 0
		if len(args) > 0 {
			v, err := strconv.Atoi(args[0])
			if err != nil {
				return nil, fmt.Errorf("dismiss: %q is not a number", args[0])
			}
			n = v
		}
		return ui.Dismissed{Index: n}, nil
	case "quit", "exit":
		return ui.Quit{}, nil
	}
	return nil, errUsage
}

func oneID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errors.New("expected one journal id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a journal id", args[0])
	}
	return id, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
