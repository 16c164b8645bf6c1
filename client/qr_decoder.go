package client

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// decodeStrategy is one decoder capability in the ordered chain. Every
// strategy exposes the same contract: a bitmap in, decoded text or an
// error out.
type decodeStrategy struct {
	name   string
	decode func(bmp *gozxing.BinaryBitmap) (*gozxing.Result, error)
}

// QRDecoder tries an ordered list of decoder strategies against an
// image and stops at the first success. A full miss means "no evidence",
// never an error: callers proceed to their next fallback source.
type QRDecoder struct {
	strategies []decodeStrategy
}

// NewQRDecoder builds the default strategy chain: a plain QR reader, a
// QR reader with the try-harder hint, then a multi-format reader for
// payloads encoded in other barcode symbologies.
func NewQRDecoder() *QRDecoder {
	qrReader := qrcode.NewQRCodeReader()
	tryHarder := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}

	return &QRDecoder{
		strategies: []decodeStrategy{
			{
				name: "qr",
				decode: func(bmp *gozxing.BinaryBitmap) (*gozxing.Result, error) {
					return qrReader.Decode(bmp, nil)
				},
			},
			{
				name: "qr-try-harder",
				decode: func(bmp *gozxing.BinaryBitmap) (*gozxing.Result, error) {
					return qrReader.Decode(bmp, tryHarder)
				},
			},
			{
				name: "multi-format",
				decode: func(bmp *gozxing.BinaryBitmap) (*gozxing.Result, error) {
					// gozxing has no root-package MultiFormatReader; the
					// multi-format UPC/EAN reader is the broadest
					// multi-symbology reader the library provides
					return oned.NewMultiFormatUPCEANReader(tryHarder).Decode(bmp, tryHarder)
				},
			},
		},
	}
}

// DecodeImage runs the strategy chain over a decoded image and returns
// the first decoded payload text.
func (d *QRDecoder) DecodeImage(img image.Image) (string, bool) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		log.Printf("Failed to build binary bitmap for QR decoding: %v", err)
		return "", false
	}

	for _, strategy := range d.strategies {
		result, err := strategy.decode(bmp)
		if err != nil || result == nil {
			continue
		}
		text := result.GetText()
		if text != "" {
			log.Printf("QR decoded via %s strategy, %d bytes", strategy.name, len(text))
			return text, true
		}
	}
	return "", false
}

// DecodeImageBytes decodes raw image bytes (PNG/JPEG/GIF) and runs the
// strategy chain. Undecodable bytes count as "no QR found".
func (d *QRDecoder) DecodeImageBytes(data []byte) (string, bool) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", false
	}
	return d.DecodeImage(img)
}
