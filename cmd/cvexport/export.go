package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Slavigrad/cv-export/internal/cvdata"
	"github.com/Slavigrad/cv-export/internal/processor"
	"github.com/Slavigrad/cv-export/internal/rendering"
	"github.com/Slavigrad/cv-export/internal/types"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the CV to a file",
	Long:  "Processes the CV for the chosen template and audience and writes the result as PDF, HTML or a processed JSON bundle. PDF output requires a Chrome or Chromium binary (see CHROME_PATH).",
	RunE:  runExport,
}

var (
	exportCVPath   string
	exportTemplate string
	exportAudience string
	exportDensity  string
	exportFormat   string
	exportOutput   string
	exportMaxPages int
)

func init() {
	exportCmd.Flags().StringVar(&exportCVPath, "cv", "", "Path to a CV JSON file (default: embedded CV)")
	exportCmd.Flags().StringVar(&exportTemplate, "template", types.DefaultTemplateID, "Template ID")
	exportCmd.Flags().StringVar(&exportAudience, "audience", "recruiter", "Target audience: recruiter, technical or executive")
	exportCmd.Flags().StringVar(&exportDensity, "density", "normal", "Content density: compact, normal or spacious")
	exportCmd.Flags().StringVar(&exportFormat, "format", "pdf", "Output format: pdf, html or json")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: cv.<format>)")
	exportCmd.Flags().IntVar(&exportMaxPages, "max-pages", 0, "Page limit (default: template limit)")

	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	switch exportFormat {
	case "pdf", "html", "json":
	default:
		return fmt.Errorf("unknown format %q, want pdf, html or json", exportFormat)
	}

	cv, err := loadCV(exportCVPath)
	if err != nil {
		return err
	}

	opts := types.ProcessingOptions{
		TargetAudience: types.TargetAudience(exportAudience),
		ContentDensity: types.ContentDensity(exportDensity),
		MaxPages:       exportMaxPages,
		TemplateID:     exportTemplate,
	}
	opts.Normalize()
	tmpl := types.TemplateByID(exportTemplate)

	bundle, err := processor.New().ProcessForTemplate(cv, tmpl, opts)
	if err != nil {
		return fmt.Errorf("failed to process CV: %w", err)
	}

	output := exportOutput
	if output == "" {
		output = "cv." + exportFormat
	}

	var data []byte
	switch exportFormat {
	case "json":
		data, err = json.MarshalIndent(bundle, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode bundle: %w", err)
		}
	case "html", "pdf":
		renderer, rerr := rendering.NewHTMLRenderer()
		if rerr != nil {
			return fmt.Errorf("failed to initialize renderer: %w", rerr)
		}
		html, rerr := renderer.Render(bundle, tmpl, opts.ContentDensity)
		if rerr != nil {
			return fmt.Errorf("failed to render HTML: %w", rerr)
		}

		if exportFormat == "html" {
			data = []byte(html)
			break
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		data, err = rendering.NewPDFRenderer().RenderPDF(ctx, html, tmpl)
		if err != nil {
			return fmt.Errorf("failed to render PDF: %w", err)
		}
	}

	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	fmt.Printf("Wrote %s (%d bytes, fit ratio %.2f)\n", output, len(data), bundle.Fit.FitRatio)
	return nil
}

func loadCV(path string) (*types.CVData, error) {
	if path == "" {
		return cvdata.Default(), nil
	}
	cv, err := cvdata.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load CV from %s: %w", path, err)
	}
	return cv, nil
}
