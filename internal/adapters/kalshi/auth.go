package kalshi

// auth.go — firma de requests del API de Kalshi.
//
// Cada request autenticado lleva tres headers:
//   KALSHI-ACCESS-KEY:       el API key id
//   KALSHI-ACCESS-TIMESTAMP: epoch millis
//   KALSHI-ACCESS-SIGNATURE: RSA-PSS SHA256 sobre timestamp + método + path
//                            (sin query params), en base64

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"
)

// Signer firma requests con la clave privada RSA del API key.
type Signer struct {
	apiKeyID string
	key      *rsa.PrivateKey
	now      func() time.Time // inyectable en tests
}

// NewSigner carga la clave privada PEM desde el archivo dado.
func NewSigner(apiKeyID, privateKeyPath string) (*Signer, error) {
	if apiKeyID == "" {
		return nil, fmt.Errorf("kalshi.NewSigner: empty API key id")
	}
	data, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("kalshi.NewSigner: read key %q: %w", privateKeyPath, err)
	}
	key, err := parsePrivateKey(data)
	if err != nil {
		return nil, fmt.Errorf("kalshi.NewSigner: parse key %q: %w", privateKeyPath, err)
	}
	return &Signer{apiKeyID: apiKeyID, key: key, now: time.Now}, nil
}

// NewSignerWithKey crea un Signer con una clave ya cargada (tests).
func NewSignerWithKey(apiKeyID string, key *rsa.PrivateKey) *Signer {
	return &Signer{apiKeyID: apiKeyID, key: key, now: time.Now}
}

// Sign añade los headers de autenticación al request.
func (s *Signer) Sign(req *http.Request) error {
	ts := strconv.FormatInt(s.now().UnixMilli(), 10)

	// El path se firma sin query params
	path := req.URL.Path
	message := ts + req.Method + path

	hashed := crypto.SHA256.New()
	hashed.Write([]byte(message))

	sig, err := rsa.SignPSS(rand.Reader, s.key, crypto.SHA256, hashed.Sum(nil), &rsa.PSSOptions{
		SaltLength: rsa.PSSSaltLengthEqualsHash,
		Hash:       crypto.SHA256,
	})
	if err != nil {
		return fmt.Errorf("sign PSS: %w", err)
	}

	req.Header.Set("KALSHI-ACCESS-KEY", s.apiKeyID)
	req.Header.Set("KALSHI-ACCESS-TIMESTAMP", ts)
	req.Header.Set("KALSHI-ACCESS-SIGNATURE", base64.StdEncoding.EncodeToString(sig))
	return nil
}

func parsePrivateKey(pemData []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(pemData)
	if block == nil {
		return nil, fmt.Errorf("no PEM block found")
	}

	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}
	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, err
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("unsupported key type %T (want RSA)", parsed)
	}
	return key, nil
}
