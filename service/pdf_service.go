package service

import (
	"log"
	"strings"

	"github.com/invoicetools/invoice-renamer/client"
	"github.com/invoicetools/invoice-renamer/dto"
	"github.com/invoicetools/invoice-renamer/utils"
)

// PDFService extracts the invoice number and amount from PDF invoices.
// Sources are tried in a fixed priority order: document text, embedded
// QR codes, the original filename, and finally a synthetic identifier.
type PDFService struct {
	pdfProcessor PDFProcessor
	qrDecoder    *client.QRDecoder
}

func NewPDFService(pdfProcessor PDFProcessor, qrDecoder *client.QRDecoder) *PDFService {
	return &PDFService{
		pdfProcessor: pdfProcessor,
		qrDecoder:    qrDecoder,
	}
}

// Extract runs the PDF extraction pipeline. It never fails outright:
// absence of both fields is a valid, reported result, and any decoding
// failure counts as "no evidence" for that source.
func (s *PDFService) Extract(fileData []byte, filename string) dto.ExtractionResult {
	var result dto.ExtractionResult

	// Filename amount hint is stashed up front for disambiguation
	hint, hasHint := utils.AmountHintFromFilename(filename)

	pages, err := s.pdfProcessor.ExtractPageTexts(fileData)
	if err != nil {
		log.Printf("PDF text extraction failed for %s: %v", filename, err)
	}
	text := strings.Join(pages, "\n")

	result.InvoiceNumber = utils.ResolveInvoiceNumber(text)

	// Scanned invoices often carry no text layer but always print the
	// tax-authority QR code, so fall back to decoding embedded images.
	if result.InvoiceNumber == "" {
		result = result.Merge(s.extractFromEmbeddedQR(fileData, filename))
	}

	if result.InvoiceNumber == "" {
		result.InvoiceNumber = utils.ResolveInvoiceNumber(filename)
	}
	if result.InvoiceNumber == "" {
		result.InvoiceNumber = utils.SyntheticInvoiceNumber(dto.SyntheticPrefixPDF)
		log.Printf("No invoice number recovered for %s, using synthetic identifier %s", filename, result.InvoiceNumber)
	}

	if result.Amount == "" {
		candidates := utils.ScanAmounts(text, utils.AmountRules())
		hintArg := &hint
		if !hasHint {
			hintArg = nil
		}
		if selected, ok := utils.SelectAmount(candidates, hintArg); ok {
			result.Amount = utils.FormatAmount(selected)
		}
	}

	// Last resort: a bare decimal in the filename itself
	if result.Amount == "" {
		if d, ok := utils.BareAmountFromFilename(filename); ok {
			result.Amount = utils.FormatAmount(d)
		}
	}

	return result
}

// extractFromEmbeddedQR decodes every embedded page image through the
// QR strategy chain and parses the first decodable payload.
func (s *PDFService) extractFromEmbeddedQR(fileData []byte, filename string) dto.ExtractionResult {
	images, err := s.pdfProcessor.ExtractImages(fileData)
	if err != nil || len(images) == 0 {
		log.Printf("No embedded images extracted from %s: %v", filename, err)
		return dto.ExtractionResult{}
	}

	for _, img := range images {
		payload, ok := s.qrDecoder.DecodeImage(img)
		if !ok {
			continue
		}
		if result := utils.ExtractFromQRPayload(payload); result.InvoiceNumber != "" {
			return result
		}
	}
	return dto.ExtractionResult{}
}
