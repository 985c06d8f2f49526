package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"healthdash/internal/client"
	"healthdash/internal/constants"
	"healthdash/internal/domain"
	"healthdash/internal/preferences"

	"github.com/rs/zerolog"
)

const usage = `usage: dashctl [-addr URL] <command> [args]

commands:
  summary                         home dashboard summary
  user                            current user
  messages                        list messages
  read <id>                       mark a message as read
  plan                            treatment plan
  task <id> <true|false>          set a task's done flag
  events                          neighborhood events
  join <id>                       join an event
  rewards                         list rewards
  redeem <id>                     redeem a reward
  symptoms -severity N s1,s2      submit a symptom report
  triage s1,s2                    triage a symptom selection
  calendar                        preventive calendar
  add-event -name N -date D [-status S]
  prefs                           current preferences
  theme <light|dark|toggle>
  contrast <normal|high|higher>
  font <normal|large|xlarge>
`

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	addr := flag.String("addr", "http://localhost:8080", "dashboard server base URL")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.RequestTimeout)
	defer cancel()

	c := client.NewDashboardClient(*addr)
	out, err := run(ctx, c, flag.Arg(0), flag.Args()[1:])
	if err != nil {
		var rpcErr *client.RPCError
		if errors.As(err, &rpcErr) {
			logger.Error().Str("code", rpcErr.Code).Msg(rpcErr.Message)
		} else {
			logger.Error().Err(err).Str("command", flag.Arg(0)).Msg("command failed")
		}
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logger.Error().Err(err).Msg("failed to print result")
		os.Exit(1)
	}
}

func run(ctx context.Context, c *client.DashboardClient, cmd string, args []string) (any, error) {
	switch cmd {
	case "summary":
		return c.Summary(ctx)
	case "user":
		return c.User(ctx)
	case "messages":
		return c.Messages(ctx)
	case "read":
		id, err := arg(args, 0, "message id")
		if err != nil {
			return nil, err
		}
		if err := c.MarkMessageAsRead(ctx, id); err != nil {
			return nil, err
		}
		return c.Message(ctx, id)
	case "plan":
		return c.TreatmentPlan(ctx)
	case "task":
		id, err := arg(args, 0, "task id")
		if err != nil {
			return nil, err
		}
		raw, err := arg(args, 1, "done flag")
		if err != nil {
			return nil, err
		}
		done, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid done flag %q: %w", raw, err)
		}
		if err := c.UpdateTaskStatus(ctx, id, done); err != nil {
			return nil, err
		}
		return c.TreatmentPlan(ctx)
	case "events":
		return c.NeighborhoodEvents(ctx)
	case "join":
		id, err := arg(args, 0, "event id")
		if err != nil {
			return nil, err
		}
		if err := c.JoinEvent(ctx, id); err != nil {
			return nil, err
		}
		return c.NeighborhoodEvents(ctx)
	case "rewards":
		return c.Rewards(ctx)
	case "redeem":
		id, err := arg(args, 0, "reward id")
		if err != nil {
			return nil, err
		}
		return c.RedeemReward(ctx, id)
	case "symptoms":
		fs := flag.NewFlagSet("symptoms", flag.ContinueOnError)
		severity := fs.Int("severity", 0, "self-reported severity 0-10")
		duration := fs.String("duration", "", "how long the symptoms have lasted")
		notes := fs.String("notes", "", "additional notes")
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		list, err := arg(fs.Args(), 0, "symptom list")
		if err != nil {
			return nil, err
		}
		return c.SubmitSymptomReport(ctx, domain.SymptomReport{
			Symptoms:        splitSymptoms(list),
			Severity:        *severity,
			Duration:        *duration,
			AdditionalNotes: *notes,
		})
	case "triage":
		list, err := arg(args, 0, "symptom list")
		if err != nil {
			return nil, err
		}
		return c.TriageSymptoms(ctx, splitSymptoms(list))
	case "calendar":
		return c.PreventiveCalendar(ctx)
	case "add-event":
		fs := flag.NewFlagSet("add-event", flag.ContinueOnError)
		name := fs.String("name", "", "event name")
		date := fs.String("date", "", "event date, YYYY-MM-DD")
		status := fs.String("status", "", "done, upcoming or overdue")
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		return c.AddPreventiveEvent(ctx, domain.NewPreventiveEvent{
			Name:   *name,
			Date:   *date,
			Status: domain.PreventiveStatus(*status),
		})
	case "prefs":
		return c.Preferences(ctx)
	case "theme":
		v, err := arg(args, 0, "theme")
		if err != nil {
			return nil, err
		}
		if v == "toggle" {
			return c.ToggleTheme(ctx)
		}
		return c.SetTheme(ctx, preferences.Theme(v))
	case "contrast":
		v, err := arg(args, 0, "contrast mode")
		if err != nil {
			return nil, err
		}
		return c.SetContrastMode(ctx, preferences.ContrastMode(v))
	case "font":
		v, err := arg(args, 0, "font size")
		if err != nil {
			return nil, err
		}
		return c.SetFontSize(ctx, preferences.FontSize(v))
	}
	return nil, fmt.Errorf("unknown command %q", cmd)
}

func arg(args []string, i int, what string) (string, error) {
	if i >= len(args) {
		return "", fmt.Errorf("missing %s", what)
	}
	return args[i], nil
}

func splitSymptoms(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
