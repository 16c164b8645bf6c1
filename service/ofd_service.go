package service

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"log"
	"regexp"
	"strings"

	"github.com/invoicetools/invoice-renamer/client"
	"github.com/invoicetools/invoice-renamer/dto"
	"github.com/invoicetools/invoice-renamer/utils"
	"github.com/shopspring/decimal"
)

// Tag-name vocabulary for the container XML walk. Issuer schemas vary,
// so matching is contains-based on the namespace-stripped local name.
var (
	numberTagVocab = []string{
		"invoiceno", "invoicenumber", "invoicecode", "invoice",
		"number", "code", "id",
		"号码", "代码", "编号",
	}
	amountTagVocab = []string{
		"amount", "price", "money", "sum", "tax", "total",
		"金额", "价税", "合计", "税额",
	}
	// Native terms for the tax-inclusive grand total take precedence
	// over every other amount-bearing element
	priorityAmountTagVocab = []string{
		"taxinclusivetotalamount", "totalamount",
		"价税合计", "合计金额",
	}

	digitRunPattern = regexp.MustCompile(`^\d{8,20}$`)
	twoDpPattern    = regexp.MustCompile(`\d+\.\d{2}`)

	imageEntryExts = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp"}
)

// OFDService extracts the invoice number and amount from OFD invoices:
// zip containers holding structured XML plus embedded image resources.
type OFDService struct {
	qrDecoder *client.QRDecoder
}

func NewOFDService(qrDecoder *client.QRDecoder) *OFDService {
	return &OFDService{qrDecoder: qrDecoder}
}

// Extract walks every XML entry of the container, falls back to QR
// codes in embedded images, then to the filename, and finally to a
// synthetic identifier. Malformed entries are skipped, never fatal.
func (s *OFDService) Extract(fileData []byte, filename string) dto.ExtractionResult {
	var result dto.ExtractionResult

	reader, err := zip.NewReader(bytes.NewReader(fileData), int64(len(fileData)))
	if err != nil {
		log.Printf("Failed to open OFD container %s: %v", filename, err)
		reader = nil
	}

	if reader != nil {
		for _, entry := range reader.File {
			if !strings.HasSuffix(strings.ToLower(entry.Name), ".xml") {
				continue
			}
			data, err := readZipEntry(entry)
			if err != nil {
				log.Printf("Failed to read container entry %s: %v", entry.Name, err)
				continue
			}
			result = result.Merge(extractFromXML(data))
			if result.Complete() {
				break
			}
		}

		// Issuers that render the whole invoice as an image still embed
		// the QR code; try it before giving up on the container.
		if result.InvoiceNumber == "" {
			result = result.Merge(s.extractFromImageEntries(reader))
		}
	}

	if result.InvoiceNumber == "" {
		result.InvoiceNumber = utils.ResolveInvoiceNumber(filename)
	}
	if result.InvoiceNumber == "" {
		result.InvoiceNumber = utils.SyntheticInvoiceNumber(dto.SyntheticPrefixOFD)
		log.Printf("No invoice number recovered for %s, using synthetic identifier %s", filename, result.InvoiceNumber)
	}

	if result.Amount == "" {
		if d, ok := utils.BareAmountFromFilename(filename); ok {
			result.Amount = utils.FormatAmount(d)
		}
	}

	return result
}

func readZipEntry(entry *zip.File) ([]byte, error) {
	rc, err := entry.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// xmlElement is one element of a flattened document tree: the
// namespace-stripped local tag name plus its direct text content.
type xmlElement struct {
	name string
	text string
}

// flattenXML walks an XML byte stream into a flat element list. A parse
// error mid-document returns whatever was collected before it.
func flattenXML(data []byte) []xmlElement {
	decoder := xml.NewDecoder(bytes.NewReader(data))

	var elements []xmlElement
	var stack []int // indexes into elements

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := token.(type) {
		case xml.StartElement:
			elements = append(elements, xmlElement{name: strings.ToLower(t.Name.Local)})
			stack = append(stack, len(elements)-1)
		case xml.CharData:
			if len(stack) > 0 {
				elements[stack[len(stack)-1]].text += string(t)
			}
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	return elements
}

// extractFromXML searches a flattened element tree for invoice-number
// and amount bearing elements by tag vocabulary.
func extractFromXML(data []byte) dto.ExtractionResult {
	elements := flattenXML(data)
	if len(elements) == 0 {
		return dto.ExtractionResult{}
	}

	var result dto.ExtractionResult

	for _, el := range elements {
		if !tagMatchesVocab(el.name, numberTagVocab) {
			continue
		}
		text := strings.TrimSpace(el.text)
		if digitRunPattern.MatchString(text) {
			result.InvoiceNumber = text
			break
		}
	}

	result.Amount = selectXMLAmount(elements)
	return result
}

// selectXMLAmount collects every vocabulary-matched amount element and
// applies the shared disambiguation policy: priority-tagged elements
// first, then outlier-max, then the plain maximum. When no tagged
// element normalizes, every element's text is scanned for a bare
// two-decimals pattern as a last resort.
func selectXMLAmount(elements []xmlElement) string {
	var candidates []dto.AmountCandidate

	for _, el := range elements {
		if !tagMatchesVocab(el.name, amountTagVocab) {
			continue
		}
		value, ok := utils.NormalizeAmount(strings.TrimSpace(el.text))
		if !ok {
			continue
		}
		tag := utils.TagLabeledAmount
		if tagMatchesVocab(el.name, priorityAmountTagVocab) {
			tag = utils.TagTaxInclusiveTotal
		}
		candidates = append(candidates, dto.AmountCandidate{
			Value:   value,
			RuleTag: tag,
			Context: el.name,
		})
	}

	if selected, ok := utils.SelectAmount(candidates, nil); ok {
		return utils.FormatAmount(selected)
	}

	// Last resort: any d+.dd in any element's text content
	var best decimal.Decimal
	found := false
	for _, el := range elements {
		for _, m := range twoDpPattern.FindAllString(el.text, -1) {
			d, ok := utils.NormalizeAmount(m)
			if !ok {
				continue
			}
			if !found || d.GreaterThan(best) {
				best = d
				found = true
			}
		}
	}
	if !found {
		return ""
	}
	return utils.FormatAmount(best)
}

// extractFromImageEntries feeds embedded image resources to the QR
// decoder chain.
func (s *OFDService) extractFromImageEntries(reader *zip.Reader) dto.ExtractionResult {
	for _, entry := range reader.File {
		if !isImageEntry(entry.Name) {
			continue
		}
		data, err := readZipEntry(entry)
		if err != nil {
			continue
		}
		payload, ok := s.qrDecoder.DecodeImageBytes(data)
		if !ok {
			continue
		}
		if result := utils.ExtractFromQRPayload(payload); result.InvoiceNumber != "" {
			return result
		}
	}
	return dto.ExtractionResult{}
}

func tagMatchesVocab(name string, vocab []string) bool {
	for _, term := range vocab {
		if strings.Contains(name, term) {
			return true
		}
	}
	return false
}

func isImageEntry(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range imageEntryExts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
