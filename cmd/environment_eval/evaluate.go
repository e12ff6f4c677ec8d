package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/environment-evaluator/internal/evaluation"
	"github.com/jonathan/environment-evaluator/internal/prompts"
	"github.com/jonathan/environment-evaluator/internal/types"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate one model response and store it",
	Long: "Extracts the score and sections from a saved model response (--response) and stores " +
		"the record. With --prompt the survey answers in --input are sent to the configured " +
		"model first. --dry-run prints the record instead of storing it.",
	RunE: runEvaluate,
}

var (
	evalResponseFile string
	evalInputFile    string
	evalPrompt       bool
	evalDryRun       bool
)

func init() {
	evaluateCmd.Flags().StringVarP(&evalResponseFile, "response", "r", "", "Path to a saved model response")
	evaluateCmd.Flags().StringVarP(&evalInputFile, "input", "i", "", "Path to the survey answers JSON object")
	evaluateCmd.Flags().BoolVar(&evalPrompt, "prompt", false, "Ask the configured model instead of reading --response")
	evaluateCmd.Flags().BoolVar(&evalDryRun, "dry-run", false, "Print the record without storing it")
	evaluateCmd.MarkFlagsMutuallyExclusive("response", "prompt")
	evaluateCmd.MarkFlagsOneRequired("response", "prompt")

	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	raw, answers, err := readAnswers(evalInputFile)
	if err != nil {
		return err
	}
	if raw != nil {
		if err := prompts.ValidateAnswers(raw); err != nil {
			return err
		}
	}
	input := types.NewEvaluationInput(answers)

	var modelText string
	if evalPrompt {
		if raw == nil {
			return errors.New("--input is required with --prompt")
		}
		prompt, err := prompts.BuildEvaluationPrompt(input.SurveyAnswers())
		if err != nil {
			return err
		}
		client, err := newLLMClient(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()

		if modelText, err = client.GenerateContent(ctx, prompt); err != nil {
			return err
		}
	} else {
		data, err := os.ReadFile(evalResponseFile)
		if err != nil {
			return fmt.Errorf("failed to read response file: %w", err)
		}
		modelText = string(data)
	}

	if evalDryRun {
		return printRecord(cmd.OutOrStdout(), evaluation.BuildRecord(modelText, input))
	}

	database, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	id, err := evaluation.NewPipeline(database, logger).Evaluate(ctx, modelText, input)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), types.EvaluateResponse{ID: id})
}

// readAnswers loads a survey answers object. An empty path yields no answers.
// Numbers are kept as json.Number so sub-scores are read exactly.
func readAnswers(path string) ([]byte, map[string]any, error) {
	if path == "" {
		return nil, nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read input file: %w", err)
	}

	var answers map[string]any
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	if err := decoder.Decode(&answers); err != nil {
		return nil, nil, fmt.Errorf("failed to parse input file %s: %w", path, err)
	}
	return raw, answers, nil
}
