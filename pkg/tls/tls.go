package tls

import (
	"context"
	"crypto/tls"
	"fmt"

	"github.com/meli-backend-challenge/product-catalog/pkg/config"
	"github.com/spiffe/go-spiffe/v2/spiffetls/tlsconfig"
	"github.com/spiffe/go-spiffe/v2/workloadapi"
	"go.uber.org/zap"
)

// LoadClientConfig builds an mTLS client configuration from SPIRE-issued
// workload identities, used by the Kafka producer transport. Returns a nil
// config when TLS is disabled. The returned closer releases the X509 source.
func LoadClientConfig(ctx context.Context, cfg *config.TLSConfig, logger *zap.Logger) (*tls.Config, func(), error) {
	if !cfg.Enabled {
		logger.Info("TLS is disabled")
		return nil, func() {}, nil
	}

	source, err := workloadapi.NewX509Source(
		ctx,
		workloadapi.WithClientOptions(
			workloadapi.WithAddr(cfg.SocketPath),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to create X509Source: %w", err)
	}

	tlsConfig := tlsconfig.MTLSClientConfig(source, source, tlsconfig.AuthorizeAny())
	tlsConfig.MinVersion = tls.VersionTLS12

	logger.Info("SPIRE TLS configuration loaded",
		zap.String("socket_path", cfg.SocketPath),
		zap.Bool("mtls_enabled", true))

	closer := func() {
		_ = source.Close()
	}
	return tlsConfig, closer, nil
}
