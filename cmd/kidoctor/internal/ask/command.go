package ask

import (
	"fmt"

	"github.com/je4/kidoctor/cmd/kidoctor/internal"
	"github.com/je4/kidoctor/pkg/doctor"
	"github.com/spf13/cobra"
)

func NewAskCommand(opts *internal.GlobalOptions) *cobra.Command {
	var (
		query  string
		speak  bool
		out    string
		noPlay bool
	)

	cmd := &cobra.Command{
		Use:     "ask <image>",
		Aliases: []string{"a"},
		Short:   "Ask the vision model about an image",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.Setup()
			if err != nil {
				return err
			}
			if query == "" {
				query = cfg.Vision.Query
			}
			driver, err := doctor.NewDriver(cfg)
			if err != nil {
				return err
			}
			brain := doctor.NewBrain(driver)
			defer brain.Close()
			answer, err := brain.Analyze(cmd.Context(), args[0], query)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), answer)

			if !speak {
				return nil
			}
			if out == "" {
				out = cfg.Speech.Output
			}
			voice, err := internal.NewVoice(cfg, cfg.Audio.Play && !noPlay)
			if err != nil {
				return err
			}
			return voice.Speak(cmd.Context(), answer, out)
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Question sent with the image")
	cmd.Flags().BoolVarP(&speak, "speak", "s", false, "Speak the answer")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Audio output file")
	cmd.Flags().BoolVar(&noPlay, "no-play", false, "Write the audio file without playing it")

	return cmd
}
