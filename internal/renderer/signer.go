package renderer

import (
	"bytes"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	digitorus_pdf "github.com/digitorus/pdf"
	"github.com/digitorus/pdfsign/sign"
	"github.com/sunthewhat/certificate-automation/type/shared"
)

type Signer struct {
	certificate *x509.Certificate
	privateKey  *rsa.PrivateKey
	issuer      string
	enabled     bool
}

// NewSigner loads the signing certificate and RSA key named in cfg.
// A nil or disabled cfg yields a signer that passes documents through.
func NewSigner(cfg *shared.SigningConfig, issuer string) (*Signer, error) {
	if cfg == nil || !cfg.Enabled {
		slog.Info("PDF signing disabled in configuration")
		return &Signer{enabled: false}, nil
	}

	if cfg.CertPath == "" || cfg.KeyPath == "" {
		return nil, errors.New("signing enabled but certificate or key path not configured")
	}

	certPEM, err := os.ReadFile(cfg.CertPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read certificate file %s: %w", cfg.CertPath, err)
	}

	certBlock, _ := pem.Decode(certPEM)
	if certBlock == nil {
		return nil, fmt.Errorf("failed to decode certificate PEM from %s", cfg.CertPath)
	}

	certificate, err := x509.ParseCertificate(certBlock.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse certificate: %w", err)
	}

	keyPEM, err := os.ReadFile(cfg.KeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key file %s: %w", cfg.KeyPath, err)
	}

	keyBlock, _ := pem.Decode(keyPEM)
	if keyBlock == nil {
		return nil, fmt.Errorf("failed to decode private key PEM from %s", cfg.KeyPath)
	}

	privateKey, err := parseRSAKey(keyBlock.Bytes)
	if err != nil {
		return nil, err
	}

	slog.Info("Certificate signer initialized",
		"cert_subject", certificate.Subject.String(),
		"cert_expiry", certificate.NotAfter)

	return &Signer{
		certificate: certificate,
		privateKey:  privateKey,
		issuer:      issuer,
		enabled:     true,
	}, nil
}

func parseRSAKey(der []byte) (*rsa.PrivateKey, error) {
	if key, err := x509.ParsePKCS1PrivateKey(der); err == nil {
		return key, nil
	}

	key, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.New("private key is not RSA format")
	}
	return rsaKey, nil
}

func (s *Signer) IsEnabled() bool {
	return s != nil && s.enabled
}

// SignPDF returns a signed copy of pdfBytes. Signing problems are logged and
// the unsigned document is returned; only empty input is an error.
func (s *Signer) SignPDF(pdfBytes []byte, certificateID string) ([]byte, error) {
	if len(pdfBytes) == 0 {
		return nil, errors.New("empty PDF bytes")
	}
	if !s.IsEnabled() {
		return pdfBytes, nil
	}

	signData := sign.SignData{
		Signature: sign.SignDataSignature{
			Info: sign.SignDataSignatureInfo{
				Name:     s.issuer,
				Location: "Certificate Automation",
				Reason:   fmt.Sprintf("Certificate %s issued", certificateID),
				Date:     time.Now(),
			},
			CertType:   sign.CertificationSignature,
			DocMDPPerm: sign.AllowFillingExistingFormFieldsAndSignaturesPerms,
		},
		Signer:      s.privateKey,
		Certificate: s.certificate,
	}

	var output bytes.Buffer
	var signingErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				signingErr = fmt.Errorf("panic during signing: %v", r)
			}
		}()

		input := bytes.NewReader(pdfBytes)
		pdfReader, err := digitorus_pdf.NewReader(input, int64(len(pdfBytes)))
		if err != nil {
			signingErr = err
			return
		}
		if _, err := input.Seek(0, io.SeekStart); err != nil {
			signingErr = err
			return
		}
		signingErr = sign.Sign(input, &output, pdfReader, int64(len(pdfBytes)), signData)
	}()

	if signingErr != nil || output.Len() == 0 {
		slog.Warn("PDF signing failed, returning unsigned PDF", "error", signingErr, "cert_id", certificateID)
		return pdfBytes, nil
	}

	slog.Info("PDF signed", "cert_id", certificateID, "original_size", len(pdfBytes), "signed_size", output.Len())
	return output.Bytes(), nil
}
