// Command parla is a terminal client for the language tutor: an
// interactive chat loop that speaks every tutor reply, plus maintenance
// subcommands for voice preferences and ElevenLabs quota.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/parla-app/parla/internal/tts"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "parla",
		Short:         "Practice a language with a speaking AI tutor",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd)
		},
	}

	root.AddCommand(newSayCmd(), newCreditsCmd(), newVoicesCmd(), newModeCmd(), newRateCmd())
	return root
}

func newLogger() *log.Logger {
	return log.New(os.Stderr, "", 0)
}

func prefsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "parla", "settings.yaml"), nil
}

func loadPrefs() (*tts.FilePreferences, error) {
	path, err := prefsPath()
	if err != nil {
		return nil, err
	}
	return tts.NewFilePreferences(path)
}

// buildSpeech wires the full synthesis stack: ElevenLabs premium backend,
// platform fallback backend, quota gateway and the session controller.
func buildSpeech(logger *log.Logger) (*tts.Controller, error) {
	prefs, err := loadPrefs()
	if err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}

	client := tts.NewElevenLabsClient(tts.ElevenLabsConfig{
		APIKey:  os.Getenv("ELEVENLABS_API_KEY"),
		VoiceID: os.Getenv("ELEVENLABS_VOICE_ID"),
	})
	credits := tts.NewCreditsGateway(client, logger)
	policy := tts.NewFallbackPolicy()

	premium := tts.NewElevenLabsBackend(client, credits, logger)
	free := tts.NewPlatformBackend(os.Getenv("SPEECH_LANG"), logger)

	orch := tts.NewOrchestrator(premium, free, credits, policy, logger)
	return tts.NewController(orch, credits, policy, prefs, logger), nil
}

func newSayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "say <text>",
		Short: "Speak a phrase through the configured voice",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl, err := buildSpeech(newLogger())
			if err != nil {
				return err
			}

			text := ""
			for i, a := range args {
				if i > 0 {
					text += " "
				}
				text += a
			}
			return ctl.Speak(cmd.Context(), text)
		},
	}
}

func newModeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mode [auto|elevenlabs|browser]",
		Short: "Show or set the voice mode",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := loadPrefs()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), prefs.Mode())
				return nil
			}

			mode := tts.ParseMode(args[0])
			if string(mode) != args[0] {
				return fmt.Errorf("unknown mode %q (want auto, elevenlabs or browser)", args[0])
			}
			if err := prefs.SetMode(string(mode)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "voice mode set to %s\n", mode)
			return nil
		},
	}
}

func newRateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rate [value]",
		Short: "Show or set the speech rate (0.5 to 2.0)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := loadPrefs()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%.2f\n", prefs.Rate())
				return nil
			}

			rate, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid rate %q", args[0])
			}
			rate = tts.ClampRate(rate)
			if err := prefs.SetRate(rate); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "speech rate set to %.2f\n", rate)
			return nil
		},
	}
}

func newVoicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "voices",
		Short: "List ElevenLabs voices available to the account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := tts.NewElevenLabsClient(tts.ElevenLabsConfig{
				APIKey: os.Getenv("ELEVENLABS_API_KEY"),
			})
			if !client.Configured() {
				return fmt.Errorf("ELEVENLABS_API_KEY is required")
			}

			voices, err := client.Voices(cmd.Context())
			if err != nil {
				return err
			}
			for _, v := range voices {
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s %-12s %s\n", v.ID, v.Category, v.Name)
			}
			return nil
		},
	}
}

func newCreditsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "credits",
		Short: "Show remaining ElevenLabs character quota",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			client := tts.NewElevenLabsClient(tts.ElevenLabsConfig{
				APIKey: os.Getenv("ELEVENLABS_API_KEY"),
			})
			credits := tts.NewCreditsGateway(client, logger)

			info, err := credits.Fetch(cmd.Context())
			if err != nil {
				return err
			}
			printCredits(cmd.OutOrStdout(), info)
			return nil
		},
	}
}
