package main

import (
	"fmt"

	"github.com/nguyentantai21042004/dialogue-flow/internal/processor"
	"github.com/nguyentantai21042004/dialogue-flow/pkg/executor"
	"github.com/spf13/cobra"
)

var runFlags struct {
	request string
	url     string
	voice1  string
	voice2  string
	image1  string
	image2  string
	output  string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Produce one dialogue video",
	Example: `  dialogue-flow run --url https://youtube.com/shorts/D-F32ieZ4WA \
    --voice1 cartesia-commercial-man --voice2 cartesia-sweet-lady \
    --image1 data/boy.jpeg --image2 data/girl.jpeg
  dialogue-flow run --request data/input/episode.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := runRequest()
		if err != nil {
			return err
		}

		proc, err := processor.New(cfg, executor.New(), log)
		if err != nil {
			return err
		}

		out, err := proc.Process(cmd.Context(), req)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), out.VideoPath)
		return nil
	},
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&runFlags.request, "request", "", "YAML request file (overrides the other flags)")
	f.StringVar(&runFlags.url, "url", "", "source video URL")
	f.StringVar(&runFlags.voice1, "voice1", "", "voice for the first speaker")
	f.StringVar(&runFlags.voice2, "voice2", "", "voice for the second speaker")
	f.StringVar(&runFlags.image1, "image1", "", "avatar image for the first speaker")
	f.StringVar(&runFlags.image2, "image2", "", "avatar image for the second speaker")
	f.StringVar(&runFlags.output, "output", "", "output video path (default: <paths.output>/dialogue_<run>.mp4)")
}

func runRequest() (processor.Request, error) {
	if runFlags.request != "" {
		return processor.LoadRequest(runFlags.request)
	}
	if runFlags.url == "" {
		return processor.Request{}, fmt.Errorf("--url or --request is required")
	}
	return processor.Request{
		SourceURL: runFlags.url,
		Voices:    []string{runFlags.voice1, runFlags.voice2},
		Images:    []string{runFlags.image1, runFlags.image2},
		Output:    runFlags.output,
	}, nil
}
