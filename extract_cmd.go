package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/muhammadolammi/interviewmate/internal/extract"
	"github.com/muhammadolammi/interviewmate/internal/interview"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Recover a structured record from raw model output",
	Long:  "Read raw model output from a file or stdin, extract the JSON object it contains, fill missing keys with defaults and print the record.",
	RunE:  runExtractCmd,
}

var (
	extractSpecName string
	extractPosition string
	extractInFile   string
	extractRepair   bool
)

func init() {
	extractCmd.Flags().StringVarP(&extractSpecName, "spec", "s", "evaluation", "Record kind: resume, questions or evaluation")
	extractCmd.Flags().StringVarP(&extractPosition, "position", "p", "Software Engineer", "Position used in default questions")
	extractCmd.Flags().StringVarP(&extractInFile, "in", "i", "", "Path to the raw output (default stdin)")
	extractCmd.Flags().BoolVar(&extractRepair, "repair", false, "Repair malformed JSON before giving up")

	rootCmd.AddCommand(extractCmd)
}

func specByName(name, position string) (extract.Spec, error) {
	switch name {
	case "resume":
		return interview.ResumeAnalysisSpec(), nil
	case "questions":
		return interview.TechnicalQuestionsSpec(position), nil
	case "evaluation":
		return interview.EvaluationSpec(), nil
	default:
		return extract.Spec{}, errors.Errorf("unknown spec %q (want resume, questions or evaluation)", name)
	}
}

func runExtractCmd(cmd *cobra.Command, _ []string) error {
	in := cmd.InOrStdin()
	if extractInFile != "" {
		f, err := os.Open(extractInFile)
		if err != nil {
			return errors.Wrap(err, "failed to open input")
		}
		defer f.Close()
		in = f
	}
	return runExtract(in, cmd.OutOrStdout(), extractSpecName, extractPosition, extractRepair || conf.Extract.Repair)
}

func runExtract(in io.Reader, out io.Writer, specName, position string, repair bool) error {
	spec, err := specByName(specName, position)
	if err != nil {
		return err
	}
	raw, err := io.ReadAll(in)
	if err != nil {
		return errors.Wrap(err, "failed to read input")
	}

	rec, outcome := newExtractor(repair).ExtractWithOutcome(string(raw), spec)
	log.
		WithField("stage", outcome.Stage.String()).
		WithField("defaulted", outcome.Defaulted).
		Info("extraction finished")

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}
