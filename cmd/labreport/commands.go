package main

import (
	"context"
	"fmt"
	"io"
	"labreport-service/internal/app/application"
	"labreport-service/internal/app/config"
	"labreport-service/internal/app/drivers/logger"
	"labreport-service/internal/app/models"
	"labreport-service/internal/pkg/constvars"
	"labreport-service/internal/pkg/dto/requests"
	"labreport-service/internal/pkg/utils"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func catalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the lab tests known to the report composer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printCatalog(cmd.OutOrStdout(), models.DefaultLabCatalog())
		},
	}
}

func formCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "form",
		Short: "Load an appointment and print its entry form as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			appointmentID, _ := cmd.Flags().GetString("appointment")
			if appointmentID == "" {
				return fmt.Errorf("--appointment is required")
			}

			return withApplication(cmd, func(ctx context.Context, app *application.Application) error {
				form, err := app.LabReportUsecase.GetForm(ctx, appointmentID)
				if err != nil {
					return err
				}
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(form)
			})
		},
	}
	cmd.Flags().String("appointment", "", "Appointment identifier")
	return cmd
}

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the PDF lab report of an appointment",
		RunE: func(cmd *cobra.Command, args []string) error {
			appointmentID, _ := cmd.Flags().GetString("appointment")
			if appointmentID == "" {
				return fmt.Errorf("--appointment is required")
			}
			resultsFile, _ := cmd.Flags().GetString("results")
			collected, _ := cmd.Flags().GetString("collected")
			reported, _ := cmd.Flags().GetString("reported")
			outDir, _ := cmd.Flags().GetString("out")
			skipUpload, _ := cmd.Flags().GetBool("skip-upload")

			results, err := readResultsFile(resultsFile)
			if err != nil {
				return err
			}

			return withApplication(cmd, func(ctx context.Context, app *application.Application) error {
				collectedAt, err := parseTimestampFlag("collected", collected)
				if err != nil {
					return err
				}
				reportedAt, err := parseTimestampFlag("reported", reported)
				if err != nil {
					return err
				}

				if _, err := app.LabSessionUsecase.LoadAppointment(ctx, appointmentID); err != nil {
					return err
				}
				if len(results) > 0 {
					if err := app.LabSessionUsecase.SetResults(ctx, appointmentID, results); err != nil {
						return err
					}
				}
				if collectedAt != nil || reportedAt != nil {
					if _, err := app.LabSessionUsecase.SetTimestamps(ctx, appointmentID, collectedAt, reportedAt); err != nil {
						return err
					}
				}

				generated, err := app.LabReportUsecase.GenerateReport(ctx, &requests.GenerateLabReport{
					AppointmentID: appointmentID,
					SkipUpload:    skipUpload,
				})
				if err != nil {
					return err
				}

				path := filepath.Join(outDir, generated.Artifact.FileName)
				if err := os.WriteFile(path, generated.Artifact.Content, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Wrote %s (%d bytes)\n", path, generated.Artifact.Size())
				if generated.Message != "" {
					fmt.Fprintln(out, generated.Message)
				}
				return nil
			})
		},
	}
	cmd.Flags().String("appointment", "", "Appointment identifier")
	cmd.Flags().String("results", "", "JSON file mapping result keys to values")
	cmd.Flags().String("collected", "", "Sample collection time, e.g. 2026-10-19T09:30")
	cmd.Flags().String("reported", "", "Report time, e.g. 2026-10-19T14:00")
	cmd.Flags().String("out", ".", "Directory the PDF is written to")
	cmd.Flags().Bool("skip-upload", false, "Only write the PDF locally")
	return cmd
}

func viewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view MRN",
		Short: "Print where the stored report of a patient can be opened",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApplication(cmd, func(ctx context.Context, app *application.Application) error {
				url, err := app.LabReportUsecase.OpenStoredReport(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), url)
				return nil
			})
		},
	}
}

// withApplication wires the application from the environment and runs fn with a
// request-scoped context.
func withApplication(cmd *cobra.Command, fn func(ctx context.Context, app *application.Application) error) error {
	level, _ := cmd.Flags().GetString("log-level")
	log := logger.NewCLILogger(level)

	internalConfig := config.NewInternalConfig()
	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		return fmt.Errorf("load timezone %s: %w", internalConfig.App.Timezone, err)
	}
	time.Local = location

	bootstrap := &config.Bootstrap{
		Logger:         log,
		DriverConfig:   config.NewDriverConfig(),
		InternalConfig: internalConfig,
	}

	ctx := context.WithValue(cmd.Context(), constvars.CONTEXT_REQUEST_ID_KEY, utils.GenerateRequestID())
	if timeout := internalConfig.App.RequestTimeoutInSeconds; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
		defer cancel()
	}

	app, err := application.NewApplication(ctx, bootstrap)
	if err != nil {
		return err
	}
	defer func() {
		if err := bootstrap.Shutdown(context.Background()); err != nil {
			log.Warn("Failed to release resources", zap.Error(err))
		}
	}()

	return fn(ctx, app)
}

func readResultsFile(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}
	var results map[string]string
	if err := json.Unmarshal(content, &results); err != nil {
		return nil, fmt.Errorf("parse results file %s: %w", path, err)
	}
	return results, nil
}

func parseTimestampFlag(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := utils.ParseReportTimestamp(value)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	return &parsed, nil
}

func printCatalog(w io.Writer, catalog *models.LabCatalog) error {
	names := append(catalog.InHouseTests(), catalog.OutsourcedTests()...)
	for _, name := range names {
		test := catalog.Lookup(name)
		if _, err := fmt.Fprintf(w, "%-40s %s\n", test.Name, test.Category); err != nil {
			return err
		}
	}
	return nil
}
