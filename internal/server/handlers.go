package server

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/datarocket/alsmatrix/alsmatrix"
	"github.com/datarocket/alsmatrix/ssdmap"
)

func (s *Server) ping(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "message": "pong"})
}

// listMatrices runs discovery only: which matrices does the uploaded workbook
// carry, without extracting any of them.
func (s *Server) listMatrices(c fiber.Ctx) error {
	data, filename, err := readUpload(c, "als_file")
	if err != nil {
		return badRequest(c, "%v", err)
	}
	matrices, err := alsmatrix.Discover(data)
	if err != nil {
		s.log.Warn("matrix discovery failed", zap.String("file", filename), zap.Error(err))
		return badRequest(c, "ALS matrix discovery error: %v", err)
	}
	if matrices == nil {
		matrices = []alsmatrix.MatrixDescriptor{}
	}
	s.log.Info("discovered matrices", zap.String("file", filename), zap.Int("count", len(matrices)))
	return c.JSON(fiber.Map{
		"status":            "ok",
		"file_name":         filename,
		"count":             len(matrices),
		"availableMatrices": matrices,
		"preferredDefault":  alsmatrix.PreferredMatrixOID,
	})
}

// parseMatrix extracts the selected matrix into the normalized structure.
func (s *Server) parseMatrix(c fiber.Ctx) error {
	data, filename, err := readUpload(c, "als_file")
	if err != nil {
		return badRequest(c, "%v", err)
	}
	result, err := alsmatrix.Extract(data, s.extractOptions(c)...)
	if err != nil {
		s.log.Warn("matrix parse failed", zap.String("file", filename), zap.Error(err))
		return badRequest(c, "ALS parse error: %v", err)
	}
	folders, forms := countForms(result.Folders)
	s.log.Info("parsed matrix",
		zap.String("matrixOID", result.Meta.MatrixOID),
		zap.Int("folders", folders),
		zap.Int("forms", forms))
	return c.JSON(fiber.Map{
		"status":  "ok",
		"meta":    metaWithCounts(result, folders, forms),
		"folders": result.Folders,
	})
}

// compareSSD uploads both an ALS workbook and an SSD specification, extracts
// the matrix with the SSD as reference mapping, and returns the two-sided
// difference. The diff keys are echoed in camelCase aliases too.
func (s *Server) compareSSD(c fiber.Ctx) error {
	alsData, alsName, err := readUpload(c, "als_file")
	if err != nil {
		return badRequest(c, "%v", err)
	}
	ssdData, ssdName, err := readUpload(c, "ssd_file")
	if err != nil {
		return badRequest(c, "%v", err)
	}

	reference, err := ssdmap.Parse(ssdData, ssdName)
	if err != nil {
		s.log.Warn("ssd parse failed", zap.String("file", ssdName), zap.Error(err))
		return badRequest(c, "%v", err)
	}

	opts := append(s.extractOptions(c), alsmatrix.WithReferenceMapping(reference))
	result, err := alsmatrix.Extract(alsData, opts...)
	if err != nil {
		s.log.Warn("ssd compare failed", zap.String("file", alsName), zap.Error(err))
		return badRequest(c, "SSD compare error: %v", err)
	}

	folders, forms := countForms(result.Folders)
	s.log.Info("compared against ssd",
		zap.String("matrixOID", result.Meta.MatrixOID),
		zap.Int("missing", len(result.Diff.MissingInDB)),
		zap.Int("extra", len(result.Diff.ExtraInDB)))
	return c.JSON(fiber.Map{
		"status":      "ok",
		"meta":        metaWithCounts(result, folders, forms),
		"counts":      fiber.Map{"folders": folders, "forms": forms},
		"diff":        result.Diff,
		"missingInDB": result.Diff.MissingInDB,
		"extraInDB":   result.Diff.ExtraInDB,
	})
}

// extractOptions maps request parameters and service config onto engine
// options.
func (s *Server) extractOptions(c fiber.Ctx) []alsmatrix.Option {
	var opts []alsmatrix.Option
	if oid := c.Query("matrix_oid"); oid != "" {
		opts = append(opts, alsmatrix.WithMatrixOID(oid))
	}
	if filter := c.Query("filter"); filter != "" {
		opts = append(opts, alsmatrix.WithFolderFilter(filter))
	}
	if s.cfg.ProbeLimit > 0 {
		opts = append(opts, alsmatrix.WithProbeLimit(s.cfg.ProbeLimit))
	}
	return opts
}

func readUpload(c fiber.Ctx, field string) ([]byte, string, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, "", fmt.Errorf("missing %s upload", field)
	}
	f, err := header.Open()
	if err != nil {
		return nil, "", fmt.Errorf("open %s upload: %w", field, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", fmt.Errorf("read %s upload: %w", field, err)
	}
	return data, header.Filename, nil
}

func badRequest(c fiber.Ctx, format string, args ...any) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"status": "error",
		"detail": fmt.Sprintf(format, args...),
	})
}

func metaWithCounts(result *alsmatrix.Result, folders, forms int) fiber.Map {
	return fiber.Map{
		"matrixOID":         result.Meta.MatrixOID,
		"sheet":             result.Meta.Sheet,
		"availableMatrices": result.Meta.AvailableMatrices,
		"folderCount":       folders,
		"formCount":         forms,
	}
}

func countForms(folders []alsmatrix.FolderGroup) (int, int) {
	forms := 0
	for _, f := range folders {
		forms += len(f.Forms)
	}
	return len(folders), forms
}
