// Command alsdiff extracts clinical-trial visit-form matrices from ALS
// workbooks and diffs them against SSD specifications, either from files or
// as an HTTP service.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/datarocket/alsmatrix/alsmatrix"
	"github.com/datarocket/alsmatrix/internal/config"
	"github.com/datarocket/alsmatrix/internal/server"
	"github.com/datarocket/alsmatrix/ssdmap"
)

var (
	matrixOID  string
	ssdPath    string
	filterExpr string
	outputPath string
	pretty     bool
	configPath string
)

func main() {
	root := &cobra.Command{
		Use:   "alsdiff",
		Short: "Extract and diff ALS visit-form matrices",
	}

	matricesCmd := &cobra.Command{
		Use:   "matrices [als.xlsx]",
		Short: "List the matrices available in an ALS workbook",
		Args:  cobra.ExactArgs(1),
		RunE:  runMatrices,
	}

	extractCmd := &cobra.Command{
		Use:   "extract [als.xlsx]",
		Short: "Extract a matrix into a normalized folder→forms structure",
		Args:  cobra.ExactArgs(1),
		RunE:  runExtract,
	}
	extractCmd.Flags().StringVar(&matrixOID, "matrix", "", "Matrix OID to extract (default prefers MASTERDASHBOARD)")
	extractCmd.Flags().StringVar(&ssdPath, "ssd", "", "SSD specification file (JSON/CSV/XLSX) to diff against")
	extractCmd.Flags().StringVar(&filterExpr, "filter", "", "Folder filter expression, e.g. 'formCount > 0'")
	extractCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	extractCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP extraction service",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&configPath, "config", "", "YAML config file path")

	root.AddCommand(matricesCmd, extractCmd, serveCmd)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runMatrices(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read workbook: %w", err)
	}
	matrices, err := alsmatrix.Discover(data)
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}
	if matrices == nil {
		matrices = []alsmatrix.MatrixDescriptor{}
	}
	return writeJSON(map[string]any{
		"availableMatrices": matrices,
		"preferredDefault":  alsmatrix.PreferredMatrixOID,
	}, true)
}

func runExtract(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read workbook: %w", err)
	}

	var opts []alsmatrix.Option
	if matrixOID != "" {
		opts = append(opts, alsmatrix.WithMatrixOID(matrixOID))
	}
	if filterExpr != "" {
		opts = append(opts, alsmatrix.WithFolderFilter(filterExpr))
	}
	if ssdPath != "" {
		ssdData, err := os.ReadFile(ssdPath)
		if err != nil {
			return fmt.Errorf("read ssd file: %w", err)
		}
		reference, err := ssdmap.Parse(ssdData, ssdPath)
		if err != nil {
			return fmt.Errorf("parse ssd file: %w", err)
		}
		opts = append(opts, alsmatrix.WithReferenceMapping(reference))
	}

	result, err := alsmatrix.Extract(data, opts...)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	return writeJSON(result, pretty)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()
	return server.New(cfg, log).Listen()
}

func writeJSON(v any, indent bool) error {
	var (
		data []byte
		err  error
	)
	if indent {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	data = append(data, '\n')

	if outputPath == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
