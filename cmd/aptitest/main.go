// Command aptitest takes one timed aptitude test in the terminal against an
// aptilab server. Without a reachable server it falls back to the built-in
// question bank and shows the locally computed score.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"aptilab/internal/client"
	"aptilab/internal/config"
	"aptilab/internal/dto"
	"aptilab/internal/logger"
	"aptilab/internal/session"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

type options struct {
	server   string
	email    string
	password string
	name     string
	topic    string
	count    int
	duration time.Duration
	report   bool
}

func main() {
	var opts options
	pflag.StringVarP(&opts.server, "server", "s", "http://localhost:3307", "API base URL")
	pflag.StringVarP(&opts.email, "email", "e", "", "user email; results are only stored when set")
	pflag.StringVarP(&opts.password, "password", "p", "", "password; logs in before the test when set")
	pflag.StringVar(&opts.name, "name", "", "display name stored with the result")
	pflag.StringVarP(&opts.topic, "topic", "t", "Maths", "question topic")
	pflag.IntVarP(&opts.count, "count", "n", 10, "number of questions")
	pflag.DurationVarP(&opts.duration, "duration", "d", session.DefaultDuration, "time allowed")
	pflag.BoolVar(&opts.report, "report", false, "mail the result report after submitting")
	pflag.Parse()

	if err := logger.Initialize(config.LoggerConfig{Level: "warn"}); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(context.Background(), opts, os.Stdin, os.Stdout); err != nil {
		logger.Get().Error("Test aborted", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, in io.Reader, out io.Writer) error {
	api := client.New(opts.server)

	if opts.email != "" && opts.password != "" {
		resp, err := api.Login(ctx, dto.LoginRequest{Email: opts.email, Password: opts.password})
		if err != nil {
			fmt.Fprintf(out, "Login failed (%v), continuing without an account.\n", err)
		} else {
			if opts.name == "" {
				opts.name = resp.User.Name
			}
			fmt.Fprintf(out, "Welcome back, %s.\n", resp.User.Name)
		}
	}

	set := api.FetchQuestions(ctx, opts.topic, opts.count, opts.email)
	if set.Offline {
		fmt.Fprintf(out, "Server unavailable (%v). Using offline questions.\n", set.Err)
	}
	if len(set.Questions) == 0 {
		return fmt.Errorf("no questions available for %s", opts.topic)
	}

	tracker := session.NewTracker(set.Topic, set.Questions, session.WithDuration(opts.duration))
	if err := tracker.Start(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%s: %d questions, %s.\n", set.Topic, len(set.Questions), opts.duration)

	lines := readLines(in)
	for i, q := range tracker.Questions() {
		if tracker.Expired() {
			break
		}
		fmt.Fprintf(out, "\nQ%d. %s\n", i+1, q.Text)
		for j, opt := range q.Options {
			fmt.Fprintf(out, "  %c) %s\n", 'A'+j, opt)
		}

		for {
			fmt.Fprintf(out, "Answer [A-D, enter to skip] (%s left): ", tracker.Remaining().Round(time.Second))
			line, ok := nextLine(lines, tracker.Remaining())
			if !ok {
				break
			}
			line = strings.TrimSpace(line)
			if line == "" {
				break
			}
			if err := tracker.Answer(q.ID, line); err != nil {
				if errors.Is(err, session.ErrExpired) {
					break
				}
				fmt.Fprintln(out, err)
				continue
			}
			break
		}
	}

	summary, err := tracker.Finish()
	if err != nil {
		return err
	}
	if summary.TimedOut {
		fmt.Fprintln(out, "\nTime is up.")
	}
	printSummary(out, summary)

	if opts.email == "" || set.Offline {
		return nil
	}
	score := summary.Score
	resp, err := api.SubmitTest(ctx, dto.SubmitTestRequest{
		UserEmail:      opts.email,
		UserName:       opts.name,
		Score:          &score,
		TotalQuestions: summary.Total,
		Topic:          summary.Topic,
		TimeSpent:      int(summary.TimeSpent.Seconds()),
	})
	if err != nil {
		fmt.Fprintf(out, "Could not save the result (%v). The score above was computed locally.\n", err)
		return nil
	}
	fmt.Fprintf(out, "%s (result #%d).\n", resp.Message, resp.ResultID)

	if opts.report {
		if _, err := api.SendReport(ctx, opts.email); err != nil {
			fmt.Fprintf(out, "Report mail not sent: %v\n", err)
		} else {
			fmt.Fprintf(out, "Report sent to %s.\n", opts.email)
		}
	}
	return nil
}

func printSummary(out io.Writer, s *session.Summary) {
	fmt.Fprintf(out, "\nScore: %d/%d (%d%%) in %s\n", s.Score, s.Total, s.Percentage, s.TimeSpent.Round(time.Second))
	for i, ok := range s.Correct {
		mark := "wrong"
		if ok {
			mark = "correct"
		}
		fmt.Fprintf(out, "  Q%d %s\n", i+1, mark)
	}
}

func readLines(in io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			ch <- sc.Text()
		}
	}()
	return ch
}

// nextLine waits for input until the attempt runs out of time.
func nextLine(lines <-chan string, left time.Duration) (string, bool) {
	if left <= 0 {
		return "", false
	}
	timer := time.NewTimer(left)
	defer timer.Stop()
	select {
	case line, ok := <-lines:
		return line, ok
	case <-timer.C:
		return "", false
	}
}
