package service

import (
	"archive/zip"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/invoicetools/invoice-renamer/dto"
	"github.com/invoicetools/invoice-renamer/utils"
)

// RenameService composes target filenames from extraction results,
// resolves collisions, and drives per-file batch processing. The
// rename-with-amount flag is threaded through each call rather than
// read from shared state, so concurrent batches cannot interfere.
type RenameService struct {
	pdfService  *PDFService
	ofdService  *OFDService
	downloadDir string
}

func NewRenameService(pdfService *PDFService, ofdService *OFDService, downloadDir string) *RenameService {
	return &RenameService{
		pdfService:  pdfService,
		ofdService:  ofdService,
		downloadDir: downloadDir,
	}
}

// PlanRename computes the target path for one processed file. Target is
// "[¥{amount}]{number}{ext}" when the flag is set and an amount exists,
// else "{number}{ext}". An existing target gets an incrementing numeric
// suffix; a target equal to the original gets a time-of-day suffix
// instead of looping.
func (s *RenameService) PlanRename(originalPath, invoiceNumber, amount string, withAmount bool) dto.RenamePlan {
	ext := filepath.Ext(originalPath)
	dir := filepath.Dir(originalPath)

	name := invoiceNumber + ext
	if withAmount && amount != "" {
		name = "[¥" + amount + "]" + invoiceNumber + ext
	}
	stem := strings.TrimSuffix(name, ext)

	plan := dto.RenamePlan{
		OriginalPath: originalPath,
		TargetPath:   filepath.Join(dir, name),
	}

	if plan.TargetPath == originalPath {
		// Invoice number already equals the stem; a counter loop would
		// collide with the file itself forever
		plan.TargetPath = filepath.Join(dir, fmt.Sprintf("%s_%s%s", stem, time.Now().Format("150405"), ext))
		plan.CollisionResolved = true
		return plan
	}

	for counter := 1; pathExists(plan.TargetPath); counter++ {
		plan.TargetPath = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, counter, ext))
		plan.CollisionResolved = true
	}
	return plan
}

// ProcessFile extracts, plans and renames a single file. Extraction
// never fails the file; only an unsupported extension or the rename
// syscall itself produces a failed result.
func (s *RenameService) ProcessFile(path string, withAmount bool) dto.FileResult {
	filename := filepath.Base(path)
	result := dto.FileResult{Filename: filename}

	extraction, err := s.extract(path)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.InvoiceNumber = extraction.InvoiceNumber
	result.Amount = extraction.Amount

	plan := s.PlanRename(path, extraction.InvoiceNumber, extraction.Amount, withAmount)
	if err := os.Rename(plan.OriginalPath, plan.TargetPath); err != nil {
		result.Error = fmt.Sprintf("rename failed: %v", err)
		return result
	}

	result.Success = true
	result.NewName = filepath.Base(plan.TargetPath)
	log.Printf("Renamed %s -> %s", filename, result.NewName)
	return result
}

// extract dispatches to the pipeline for the file's container format.
// A panic inside an extractor is contained here and converted into an
// empty result for this file only.
func (s *RenameService) extract(path string) (result dto.ExtractionResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			// Contained at the per-file boundary: the batch keeps going
			// and this file still gets a usable synthetic identifier
			log.Printf("Extraction panicked for %s: %v", path, r)
			result = dto.ExtractionResult{
				InvoiceNumber: utils.SyntheticInvoiceNumber(dto.SyntheticPrefixINV),
			}
			err = nil
		}
	}()

	data, readErr := os.ReadFile(path)
	if readErr != nil {
		return dto.ExtractionResult{}, fmt.Errorf("failed to read file: %w", readErr)
	}

	filename := filepath.Base(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return s.pdfService.Extract(data, filename), nil
	case ".ofd":
		return s.ofdService.Extract(data, filename), nil
	default:
		return dto.ExtractionResult{}, dto.ErrUnsupportedFormat
	}
}

// ProcessBatch processes every uploaded file to completion, one at a
// time, then bundles the successfully renamed files into a ZIP archive
// in the download directory. Per-file failures never abort the batch.
// The returned string is the ZIP filename, empty when nothing succeeded.
func (s *RenameService) ProcessBatch(paths []string, withAmount bool) ([]dto.FileResult, string) {
	results := make([]dto.FileResult, 0, len(paths))
	var renamed []string

	for _, path := range paths {
		result := s.ProcessFile(path, withAmount)
		results = append(results, result)
		if result.Success {
			renamed = append(renamed, filepath.Join(filepath.Dir(path), result.NewName))
		}
	}

	if len(renamed) == 0 {
		return results, ""
	}

	zipName, err := s.createZip(renamed)
	if err != nil {
		log.Printf("Failed to create batch archive: %v", err)
		return results, ""
	}
	return results, zipName
}

// createZip bundles the renamed files under their new names.
func (s *RenameService) createZip(paths []string) (string, error) {
	zipName := fmt.Sprintf("processed_invoices_%s.zip", time.Now().Format("20060102_150405"))
	zipPath := filepath.Join(s.downloadDir, zipName)

	out, err := os.Create(zipPath)
	if err != nil {
		return "", fmt.Errorf("failed to create archive: %w", err)
	}
	defer out.Close()

	w := zip.NewWriter(out)
	defer w.Close()

	for _, path := range paths {
		if err := addFileToZip(w, path); err != nil {
			return "", fmt.Errorf("failed to add %s to archive: %w", filepath.Base(path), err)
		}
	}
	return zipName, nil
}

func addFileToZip(w *zip.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	entry, err := w.Create(filepath.Base(path))
	if err != nil {
		return err
	}
	_, err = io.Copy(entry, f)
	return err
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
