package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-extractor/internal/schemas"
)

func newValidateCmd(_ *app) *cobra.Command {
	var in, schemaPath string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a saved record against the record schema",
		Long: "Validate a saved record against the embedded record schema, or against the " +
			"JSON Schema file given with --schema.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := validateFile(in, schemaPath)
			if err == nil {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Validation passed")
				return nil
			}
			var vErr *schemas.ValidationError
			if errors.As(err, &vErr) {
				_, _ = fmt.Fprint(cmd.ErrOrStderr(), vErr.Error())
				return fmt.Errorf("validation failed with %d error(s)", len(vErr.Errors))
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&in, "in", "i", "", "Path to the record JSON file")
	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "Path to a JSON Schema file (defaults to the embedded record schema)")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func validateFile(in, schemaPath string) error {
	if schemaPath == "" {
		return schemas.ValidateRecordFile(in)
	}
	schema, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}
	doc, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("failed to read record file: %w", err)
	}
	return schemas.ValidateJSONString(string(schema), string(doc))
}

func newSchemaCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the record JSON Schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), schemas.RecordSchema())
			return err
		},
	}
}
