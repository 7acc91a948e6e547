package speak

import (
	"strings"

	"github.com/je4/kidoctor/cmd/kidoctor/internal"
	"github.com/spf13/cobra"
)

func NewSpeakCommand(opts *internal.GlobalOptions) *cobra.Command {
	var (
		out      string
		provider string
		noPlay   bool
	)

	cmd := &cobra.Command{
		Use:     "speak <text>...",
		Aliases: []string{"s"},
		Short:   "Convert text to speech and play it",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.Setup()
			if err != nil {
				return err
			}
			if provider != "" {
				cfg.Speech.Provider = provider
			}
			if out == "" {
				out = cfg.Speech.Output
			}
			voice, err := internal.NewVoice(cfg, cfg.Audio.Play && !noPlay)
			if err != nil {
				return err
			}
			return voice.Speak(cmd.Context(), strings.Join(args, " "), out)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Audio output file")
	cmd.Flags().StringVarP(&provider, "provider", "p", "", "Speech provider (gtts, elevenlabs)")
	cmd.Flags().BoolVar(&noPlay, "no-play", false, "Write the audio file without playing it")

	return cmd
}
