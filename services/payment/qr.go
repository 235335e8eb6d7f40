package paysvc

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"

	"github.com/vku/studentrecords/core"
	"github.com/vku/studentrecords/core/campus"
)

const payloadPrefix = "VKU-FEE"

var ErrNothingDue = errors.New("fee already paid")

// QRService renders payment QR codes for outstanding fees.
type QRService struct {
	size     int
	currency string
}

func NewQRService(conf *core.Config) *QRService {
	size := conf.PaymentQRSize
	if size <= 0 {
		size = 256
	}
	return &QRService{size: size, currency: conf.Currency}
}

// Payload is the text encoded in the QR code of fee: prefix|student id|amount|currency.
func (svc *QRService) Payload(fee campus.Fee) string {
	return fmt.Sprintf("%s|%s|%s|%s", payloadPrefix, fee.StudentID, strconv.FormatFloat(fee.Amount, 'f', 0, 64), svc.currency)
}

func (svc *QRService) qr(fee campus.Fee) (*qrcode.QRCode, error) {
	if fee.Paid {
		return nil, ErrNothingDue
	}
	qr, err := qrcode.New(svc.Payload(fee), qrcode.Medium)
	if err != nil {
		return nil, errors.Wrap(err, "encoding payment qr")
	}
	return qr, nil
}

// PNG returns the QR code of an unpaid fee as a PNG image.
func (svc *QRService) PNG(fee campus.Fee) ([]byte, error) {
	qr, err := svc.qr(fee)
	if err != nil {
		return nil, err
	}
	return qr.PNG(svc.size)
}

// WriteFile writes the QR code of an unpaid fee to a PNG file.
func (svc *QRService) WriteFile(fee campus.Fee, filename string) error {
	qr, err := svc.qr(fee)
	if err != nil {
		return err
	}
	return qr.WriteFile(svc.size, filename)
}

// Terminal renders the QR code of an unpaid fee with block characters.
func (svc *QRService) Terminal(fee campus.Fee) (string, error) {
	qr, err := svc.qr(fee)
	if err != nil {
		return "", err
	}
	return qr.ToSmallString(false), nil
}
