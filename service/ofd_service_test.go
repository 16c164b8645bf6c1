package service

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/invoicetools/invoice-renamer/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const invoiceXML = `<?xml version="1.0" encoding="UTF-8"?>
<eInvoice xmlns="http://www.example.org/einvoice">
  <InvoiceNo>24312000000012345678</InvoiceNo>
  <IssueDate>2024-01-01</IssueDate>
  <ItemAmount>100.00</ItemAmount>
  <TaxAmount>3.00</TaxAmount>
  <TaxInclusiveTotalAmount>358.00</TaxInclusiveTotalAmount>
</eInvoice>`

// buildOFD assembles an in-memory zip container from XML entries.
func buildOFD(t *testing.T, xmlEntries ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for i, entry := range xmlEntries {
		name := "Doc_0/invoice.xml"
		if i > 0 {
			name = "Doc_0/extra_" + strings.Repeat("x", i) + ".xml"
		}
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(entry))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func newTestOFDService() *OFDService {
	return NewOFDService(client.NewQRDecoder())
}

func TestOFDExtract(t *testing.T) {
	service := newTestOFDService()

	result := service.Extract(buildOFD(t, invoiceXML), "invoice.ofd")

	assert.Equal(t, "24312000000012345678", result.InvoiceNumber)
	// The priority-tagged tax-inclusive total wins over item and tax amounts
	assert.Equal(t, "358.00", result.Amount)
}

func TestOFDExtractSkipsMalformedEntry(t *testing.T) {
	service := newTestOFDService()

	malformed := `<?xml version="1.0"?><broken><unclosed>`
	result := service.Extract(buildOFD(t, malformed, invoiceXML), "invoice.ofd")

	assert.Equal(t, "24312000000012345678", result.InvoiceNumber)
	assert.Equal(t, "358.00", result.Amount)
}

func TestOFDExtractOutlierAmongTaggedAmounts(t *testing.T) {
	service := newTestOFDService()

	// No priority tag present: the dominant value is taken as the total
	xmlDoc := `<Invoice>
  <Code>1234567890</Code>
  <Number>87654321</Number>
  <ItemAmount>10.00</ItemAmount>
  <ItemAmount>10.50</ItemAmount>
  <Amount>500.00</Amount>
</Invoice>`

	result := service.Extract(buildOFD(t, xmlDoc), "invoice.ofd")
	assert.Equal(t, "1234567890", result.InvoiceNumber)
	assert.Equal(t, "500.00", result.Amount)
}

func TestOFDExtractLastResortTextScan(t *testing.T) {
	service := newTestOFDService()

	// No amount-vocabulary tags at all; the bare two-decimals scan of
	// element text is the final amount source
	xmlDoc := `<Doc>
  <InvoiceNumber>87654321</InvoiceNumber>
  <Remark>应付 128.50 整</Remark>
</Doc>`

	result := service.Extract(buildOFD(t, xmlDoc), "invoice.ofd")
	assert.Equal(t, "87654321", result.InvoiceNumber)
	assert.Equal(t, "128.50", result.Amount)
}

func TestOFDExtractFilenameFallback(t *testing.T) {
	service := newTestOFDService()

	// Not a zip at all: the container is "no evidence" and the
	// filename supplies both fields
	result := service.Extract([]byte("not a zip"), "[¥99.99]87654321.ofd")

	assert.Equal(t, "87654321", result.InvoiceNumber)
	assert.Equal(t, "99.99", result.Amount)
}

func TestOFDExtractSyntheticFallback(t *testing.T) {
	service := newTestOFDService()

	result := service.Extract([]byte("not a zip"), "发票.ofd")

	assert.True(t, strings.HasPrefix(result.InvoiceNumber, "OFD"))
	assert.Empty(t, result.Amount)
}
