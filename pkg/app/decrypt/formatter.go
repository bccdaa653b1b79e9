package decrypt

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// FormatOutput writes batch results in the requested output format
func FormatOutput(w io.Writer, response *Response, format string) error {
	switch format {
	case "json":
		return formatJSON(w, response)
	case "yaml":
		return formatYAML(w, response)
	case "table":
		return formatTable(w, response)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// formatTable formats results as a table
func formatTable(w io.Writer, response *Response) error {
	if len(response.Files) == 0 {
		_, err := fmt.Fprintf(w, "No encrypted files found in %s\n", response.LibraryPath)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	// Header
	fmt.Fprintf(tw, "NAME\tSOURCE\tOUTPUT\tSIZE\tFORMAT\tSTATUS\n")
	fmt.Fprintf(tw, "----\t------\t------\t----\t------\t------\n")

	// Results are already in discovery order
	for _, file := range response.Files {
		status := file.Status()
		if file.Error != "" {
			status += ": " + file.Error
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			file.Name(), file.SourcePath, file.OutputPath, file.FormatSize(), file.Format, status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	// Summary
	_, err := fmt.Fprintf(w, "\n%s\nOutput directory: %s\n", FormatSummary(response), response.OutputPath)
	return err
}

// formatJSON formats results as JSON
func formatJSON(w io.Writer, response *Response) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(response)
}

// formatYAML formats results as YAML
func formatYAML(w io.Writer, response *Response) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(response); err != nil {
		return err
	}
	return encoder.Close()
}

// FormatSummary provides a one-line summary of a batch
func FormatSummary(response *Response) string {
	total := len(response.Files)
	if total == 0 {
		return "No files decrypted"
	}

	summary := fmt.Sprintf("Decrypted %d of %d file", response.Succeeded, total)
	if total != 1 {
		summary += "s"
	}

	var totalSize int64
	for _, file := range response.Files {
		totalSize += file.DecryptedSize
	}
	summary += fmt.Sprintf(" totaling %s", formatBytes(totalSize))

	if response.Failed > 0 {
		summary += fmt.Sprintf(", %d failed", response.Failed)
	}
	if response.Skipped > 0 {
		summary += fmt.Sprintf(", %d skipped", response.Skipped)
	}

	return summary + fmt.Sprintf(" in %v", response.Duration)
}
