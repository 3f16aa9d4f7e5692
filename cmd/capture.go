package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/buildbidz/buildbidz-go/internal/queue"
)

func transcribeCmd() *cobra.Command {
	var deferUpload bool

	command := &cobra.Command{
		Use:   "transcribe <audio-file>",
		Short: "Transcribe a voice recording, queueing it when the backend is unreachable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			audioPath, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}

			if !deferUpload {
				f, err := os.Open(audioPath)
				if err != nil {
					return err
				}
				result, upErr := app.client.Transcribe(cmd.Context(), filepath.Base(audioPath), f)
				f.Close()
				if upErr == nil {
					return printJSON(result)
				}
				if !offlineQueueable(upErr) {
					return upErr
				}
				app.logger.Warn().Err(upErr).Msg("backend unreachable, queueing recording")
			}

			payload, err := json.Marshal(queue.TranscribePayload{AudioURI: audioPath})
			if err != nil {
				return err
			}
			action, err := app.store.Enqueue(queue.ActionTranscribe, payload)
			if err != nil {
				return err
			}
			fmt.Printf("Queued transcription %s; run `buildbidz sync` when back online.\n", action.ID)
			return nil
		},
	}

	command.Flags().BoolVar(&deferUpload, "defer", false, "Queue the recording without attempting an upload")

	return command
}

func extractCmd() *cobra.Command {
	var deferUpload bool

	command := &cobra.Command{
		Use:   "extract <ocr-text-file>",
		Short: "Extract structured invoice fields from OCR text, queueing when unreachable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			var text []byte
			if args[0] == "-" {
				text, err = io.ReadAll(os.Stdin)
			} else {
				text, err = os.ReadFile(args[0])
			}
			if err != nil {
				return err
			}

			if !deferUpload {
				result, exErr := app.client.Extract(cmd.Context(), string(text))
				if exErr == nil {
					return printJSON(result)
				}
				if !offlineQueueable(exErr) {
					return exErr
				}
				app.logger.Warn().Err(exErr).Msg("backend unreachable, queueing extraction")
			}

			payload, err := json.Marshal(queue.ExtractPayload{OCRText: string(text)})
			if err != nil {
				return err
			}
			action, err := app.store.Enqueue(queue.ActionExtract, payload)
			if err != nil {
				return err
			}
			fmt.Printf("Queued extraction %s; run `buildbidz sync` when back online.\n", action.ID)
			return nil
		},
	}

	command.Flags().BoolVar(&deferUpload, "defer", false, "Queue the text without attempting a request")

	return command
}
