package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/parla-app/parla/internal/llm"
	"github.com/parla-app/parla/internal/scenario"
	"github.com/parla-app/parla/internal/tts"
)

var (
	tutorColor   = color.New(color.FgCyan)
	hintColor    = color.New(color.Faint)
	noticeColor  = color.New(color.FgYellow)
	errColor     = color.New(color.FgRed)
	successColor = color.New(color.FgGreen)
)

// runChat is the interactive loop: each line goes to the tutor, the reply
// is printed and spoken. Slash commands adjust voice settings in place.
func runChat(cmd *cobra.Command) error {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}

	logger := newLogger()
	ctl, err := buildSpeech(logger)
	if err != nil {
		return err
	}
	ai := llm.NewOpenAIClient(llm.OpenAIConfig{
		APIKey: apiKey,
		Model:  os.Getenv("OPENAI_MODEL"),
	})

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Talk to your tutor. Type /help for commands, /quit to leave.")

	var (
		history    []llm.Message
		opts       llm.RespondOptions
		muted      bool
		inFallback bool
	)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if quit := runSlashCommand(cmd.Context(), out, ctl, &opts, &muted, line); quit {
				break
			}
			continue
		}

		history = append(history, llm.Message{Role: "user", Content: line})
		reply, err := ai.Respond(cmd.Context(), history, opts)
		if err != nil {
			errColor.Fprintf(out, "tutor unavailable: %v\n", err)
			history = history[:len(history)-1]
			continue
		}
		history = append(history, llm.Message{Role: "assistant", Content: reply.Text})

		tutorColor.Fprintln(out, reply.Text)
		if len(reply.Suggestions) > 0 {
			hintColor.Fprintf(out, "try: %s\n", strings.Join(reply.Suggestions, " | "))
		}

		if !muted {
			if err := ctl.Speak(cmd.Context(), reply.Text); err != nil {
				errColor.Fprintf(out, "speech failed: %v\n", err)
			}
		}

		st := ctl.Status()
		if st.Fallback.Active && !inFallback {
			noticeColor.Fprintf(out, "premium voice unavailable (%s); using system voice for this session. /retry to re-attempt.\n", st.Fallback.Reason)
		}
		inFallback = st.Fallback.Active
	}
	return scanner.Err()
}

func runSlashCommand(ctx context.Context, out io.Writer, ctl *tts.Controller, opts *llm.RespondOptions, muted *bool, line string) (quit bool) {
	fields := strings.Fields(line)
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch fields[0] {
	case "/quit", "/exit":
		ctl.Stop()
		return true

	case "/help":
		fmt.Fprintln(out, "/mode auto|elevenlabs|browser  switch voice mode")
		fmt.Fprintln(out, "/rate <0.5-2.0>                set speech rate")
		fmt.Fprintln(out, "/credits                       show ElevenLabs quota")
		fmt.Fprintln(out, "/retry                         re-attempt premium voice")
		fmt.Fprintln(out, "/correct                       toggle grammar-correction mode")
		fmt.Fprintln(out, "/scenario <id>                 start a guided scenario (/scenario off to stop)")
		fmt.Fprintln(out, "/scenarios                     list available scenarios")
		fmt.Fprintln(out, "/mute                          toggle speech output")
		fmt.Fprintln(out, "/stop                          stop the current utterance")
		fmt.Fprintln(out, "/quit                          leave")

	case "/mode":
		if arg == "" {
			fmt.Fprintln(out, ctl.Status().Mode)
			break
		}
		mode := tts.ParseMode(arg)
		if string(mode) != arg {
			errColor.Fprintf(out, "unknown mode %q\n", arg)
			break
		}
		ctl.SetMode(mode)
		successColor.Fprintf(out, "voice mode: %s\n", mode)

	case "/rate":
		if arg == "" {
			fmt.Fprintf(out, "%.2f\n", ctl.Status().Rate)
			break
		}
		rate, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			errColor.Fprintf(out, "invalid rate %q\n", arg)
			break
		}
		ctl.SetRate(rate)
		successColor.Fprintf(out, "speech rate: %.2f\n", ctl.Status().Rate)

	case "/credits":
		info, err := ctl.RefreshCredits(ctx)
		if err != nil {
			errColor.Fprintf(out, "credits check failed: %v\n", err)
			break
		}
		printCredits(out, info)

	case "/retry":
		ctl.ResetFallback()
		successColor.Fprintln(out, "premium voice will be attempted on the next reply")

	case "/correct":
		opts.CorrectionMode = !opts.CorrectionMode
		if opts.CorrectionMode {
			successColor.Fprintln(out, "correction mode on")
		} else {
			fmt.Fprintln(out, "correction mode off")
		}

	case "/scenarios":
		for _, s := range scenario.All() {
			fmt.Fprintf(out, "%-28s %s (%s, ~%d min)\n", s.ID, s.Title, s.Difficulty, s.EstimatedMinutes)
		}

	case "/scenario":
		if arg == "" || arg == "off" {
			opts.ScenarioContext = ""
			fmt.Fprintln(out, "scenario cleared")
			break
		}
		sc := scenario.ByID(arg)
		if sc == nil {
			errColor.Fprintf(out, "unknown scenario %q (see /scenarios)\n", arg)
			break
		}
		opts.ScenarioContext = sc.StepContext(0)
		successColor.Fprintf(out, "scenario: %s\n", sc.Title)
		fmt.Fprintln(out, sc.Steps[0].Instruction)

	case "/mute":
		*muted = !*muted
		if *muted {
			ctl.Stop()
			fmt.Fprintln(out, "speech off")
		} else {
			fmt.Fprintln(out, "speech on")
		}

	case "/stop":
		ctl.Stop()

	default:
		errColor.Fprintf(out, "unknown command %s (try /help)\n", fields[0])
	}
	return false
}

func printCredits(out io.Writer, info *tts.CreditsInfo) {
	if !info.Configured {
		noticeColor.Fprintln(out, "ElevenLabs API key not configured; using system voice only")
		return
	}
	if info.Remaining < 0 {
		fmt.Fprintln(out, "quota unknown (free-tier key); premium voice assumed available")
		return
	}

	line := fmt.Sprintf("%d of %d characters left (%d%% used, %s tier)",
		info.Remaining, info.Limit, info.PercentUsed, info.Tier)
	switch {
	case !info.Available:
		errColor.Fprintln(out, line)
	case info.LowCredits:
		noticeColor.Fprintln(out, line)
	default:
		successColor.Fprintln(out, line)
	}
	if info.ResetDate != nil {
		hintColor.Fprintf(out, "quota resets %s\n", info.ResetDate.Format("2006-01-02"))
	}
}
