package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/ordeal/internal/fixture"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Files  []string          `json:"files"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// ValidationError describes one invalid suite file.
type ValidationError struct {
	Path    string `json:"path"`
	Phase   string `json:"phase,omitempty"`
	Line    int    `json:"line,omitempty"`
	Message string `json:"message"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [path]",
		Short: "Validate suite files without running them",
		Long: `Discover suite files under path (default ./) and check that each one
parses and matches the suite file schema. Nothing is registered or run.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "./"
			if len(args) == 1 {
				root = args[0]
			}
			return runValidate(rootOpts, root, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, root string, cmd *cobra.Command) error {
	if err := opts.resolve(cmd); err != nil {
		return err
	}
	formatter := opts.formatter(cmd)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := checkRoot(root); err != nil {
		_ = formatter.Error(ErrCodePath, err.Error(), nil)
		return err
	}

	paths, err := fixture.Discover(ctx, root, opts.Config.Patterns, opts.Config.Ignore)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to discover suite files", err)
	}
	formatter.VerboseLog("Found %d suite file(s) in %s", len(paths), root)

	result := ValidationResult{Valid: true, Files: paths}
	for _, path := range paths {
		formatter.VerboseLog("Validating %s", path)
		if _, err := fixture.Load(path); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, toValidationError(path, err))
		}
	}
	if result.Files == nil {
		result.Files = []string{}
	}

	if !result.Valid {
		return outputValidationErrors(formatter, result)
	}
	return outputValidateSuccess(formatter, result)
}

func toValidationError(path string, err error) ValidationError {
	ve := ValidationError{Path: path, Message: err.Error()}
	var loadErr *fixture.LoadError
	if errors.As(err, &loadErr) {
		ve.Phase = loadErr.Phase
		if loadErr.Err != nil {
			ve.Message = loadErr.Err.Error()
		}
		if loadErr.Pos.IsValid() {
			ve.Line = loadErr.Pos.Line()
		}
	}
	return ve
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, result ValidationResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✔ %d suite file(s) valid\n", len(result.Files))
	return nil
}

// outputValidationErrors outputs every invalid file.
func outputValidationErrors(formatter *OutputFormatter, result ValidationResult) error {
	if formatter.Format == "json" {
		resp := CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    ErrCodeLoad,
				Message: result.Errors[0].Message,
			},
		}
		if err := formatter.encode(resp); err != nil {
			return err
		}
		// Validation failures = exit code 1 (test/validation failure)
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(result.Errors)))
	}

	fmt.Fprintln(formatter.Writer, "🗴 Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, ve := range result.Errors {
		if ve.Line > 0 {
			fmt.Fprintf(formatter.Writer, "%s:%d\n", ve.Path, ve.Line)
		} else {
			fmt.Fprintln(formatter.Writer, ve.Path)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", ve.Phase, ve.Message)
	}

	// Validation failures = exit code 1 (test/validation failure)
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(result.Errors)))
}
