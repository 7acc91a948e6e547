package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/je4/kidoctor/cmd/kidoctor/internal"
	"github.com/je4/kidoctor/cmd/kidoctor/internal/ask"
	"github.com/je4/kidoctor/cmd/kidoctor/internal/speak"
	"github.com/je4/kidoctor/cmd/kidoctor/internal/version"
	"github.com/spf13/cobra"
)

func NewKidoctorCommand() *cobra.Command {
	opts := &internal.GlobalOptions{}

	cmd := &cobra.Command{
		Use:          "kidoctor",
		Short:        "Look at a picture, answer like a doctor, say it out loud",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "kidoctor.json", "Path to the json config file")
	cmd.PersistentFlags().BoolVarP(&opts.Debug, "debug", "d", false, "Enable debug logging")

	cmd.AddCommand(
		ask.NewAskCommand(opts),
		speak.NewSpeakCommand(opts),
		version.NewVersionCommand(),
	)

	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewKidoctorCommand().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
