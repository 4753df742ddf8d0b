package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/plotease-cli/internal/utils"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// markdowner is implemented by every report type.
type markdowner interface {
	Markdown() string
}

// resolveFormat returns flag, or the configured output format, normalized.
func resolveFormat(flag string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(flag))
	if f == "" {
		f = settings().OutputFormat
	}
	switch f {
	case "", "markdown", "md":
		return "markdown", nil
	case "json":
		return "json", nil
	case "yaml", "yml":
		return "yaml", nil
	default:
		return "", fmt.Errorf("unsupported --format: %s (use markdown|json|yaml)", flag)
	}
}

// encode renders v in the given format.
func encode(v markdowner, format string) ([]byte, error) {
	switch format {
	case "json":
		b, err := utils.PrettyJSON(v)
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	case "yaml":
		b, err := yaml.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshal yaml: %w", err)
		}
		return b, nil
	default:
		return []byte(v.Markdown()), nil
	}
}

// emit writes v to outPath, or to the command's stdout when outPath is empty.
func emit(cmd *cobra.Command, v markdowner, formatFlag, outPath, what string) error {
	format, err := resolveFormat(formatFlag)
	if err != nil {
		return err
	}
	b, err := encode(v, format)
	if err != nil {
		return err
	}
	if outPath == "" {
		_, err := cmd.OutOrStdout().Write(b)
		return err
	}
	if err := utils.SafeWriteFile(outPath, b); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s to %s\n", what, outPath)
	return nil
}
