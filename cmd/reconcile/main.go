// Command reconcile runs attendance reconciliation over a punch-log
// export without starting the API server. The input file holds either a
// JSON array of spreadsheet rows (array-of-arrays) or a full reconcile
// request object.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/medroster/roster-backend-go/internal/config"
	"github.com/medroster/roster-backend-go/internal/domain/attendance"
	attendanceService "github.com/medroster/roster-backend-go/internal/service/attendance"
	"github.com/spf13/cobra"
)

func main() {
	var inputPath, outputPath string

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Reconcile a fingerprint-device attendance export",
		RunE: func(cmd *cobra.Command, args []string) error {
			if inputPath == "" {
				return fmt.Errorf("--input is required")
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			req, err := readRequest(inputPath)
			if err != nil {
				return err
			}

			svc := attendanceService.NewAttendanceService(cfg.Policy())
			result, err := svc.Reconcile(cmd.Context(), req)
			if err != nil {
				return err
			}

			return writeReport(outputPath, result)
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "Path to the export JSON (rows array or request object)")
	cmd.Flags().StringVar(&outputPath, "output", "", "Write the report here instead of stdout")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func readRequest(path string) (attendance.ReconcileRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return attendance.ReconcileRequest{}, fmt.Errorf("read input: %w", err)
	}

	// A bare rows array is the common case; try it first.
	var rows [][]string
	if err := json.Unmarshal(data, &rows); err == nil {
		return attendance.ReconcileRequest{Rows: rows}, nil
	}

	var req attendance.ReconcileRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return attendance.ReconcileRequest{}, fmt.Errorf("parse input: %w", err)
	}
	return req, nil
}

func writeReport(path string, result attendance.ReconcileResponse) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
