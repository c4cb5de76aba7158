package utils

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"

	pe "github.com/voidshard/pipewright/pkg/errors"
)

// TLSFiles are the PEM files of a TLS client connection
type TLSFiles struct {
	CACert string
	Cert   string
	Key    string
}

// Empty reports if no file is given, ie. TLS isn't wanted
func (f TLSFiles) Empty() bool {
	return f.CACert == "" && f.Cert == "" && f.Key == ""
}

// forward secret AEAD suites only; TLS 1.3 suites aren't configurable
var cipherSuites = []uint16{
	tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
	tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
	tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
	tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
	tls.TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305_SHA256,
	tls.TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305_SHA256,
}

// ClientTLSConfig builds the TLS config for connecting to the queue's redis.
// Returns nil if no files are given.
func ClientTLSConfig(files TLSFiles) (*tls.Config, error) {
	if files.Empty() {
		return nil, nil
	}
	if (files.Cert == "") != (files.Key == "") {
		return nil, fmt.Errorf("%w client certificate & key must be given together", pe.ErrInvalidArg)
	}

	cfg := &tls.Config{
		MinVersion:   tls.VersionTLS12,
		CipherSuites: cipherSuites,
	}

	if files.Cert != "" {
		pair, err := tls.LoadX509KeyPair(files.Cert, files.Key)
		if err != nil {
			return nil, fmt.Errorf("%w loading client certificate: %v", pe.ErrInvalidArg, err)
		}
		cfg.Certificates = []tls.Certificate{pair}
	}

	if files.CACert != "" {
		data, err := os.ReadFile(files.CACert)
		if err != nil {
			return nil, err
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(data) {
			return nil, fmt.Errorf("%w no certificates found in %s", pe.ErrInvalidArg, files.CACert)
		}
		cfg.RootCAs = pool
	}

	return cfg, nil
}
