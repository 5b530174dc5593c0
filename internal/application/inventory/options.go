package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/Muestras-api/internal/domain"
	"github.com/jhoicas/Muestras-api/internal/domain/codegen"
	"github.com/jhoicas/Muestras-api/pkg/logger"
)

// Option configura LedgerUseCase y TransferUseCase.
type Option func(*settings)

type settings struct {
	log            *logger.Logger
	metrics        Metrics
	now            func() time.Time
	codeRetries    int
	transferPrefix string
	pdf            KardexPDFGenerator
}

func defaultSettings() settings {
	return settings{
		log:            logger.Nop(),
		metrics:        nopMetrics{},
		now:            time.Now,
		codeRetries:    3,
		transferPrefix: codegen.DefaultTransferPrefix,
	}
}

func buildSettings(opts []Option) settings {
	s := defaultSettings()
	for _, o := range opts {
		o(&s)
	}
	return s
}

// WithLogger inyecta el logger estructurado.
func WithLogger(l *logger.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMetrics inyecta el colector de métricas.
func WithMetrics(m Metrics) Option {
	return func(s *settings) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithClock reemplaza time.Now (fechas de movimientos y códigos).
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

// WithCodeRetries intentos totales ante colisión de código generado (mínimo 1).
func WithCodeRetries(n int) Option {
	return func(s *settings) {
		if n < 1 {
			n = 1
		}
		s.codeRetries = n
	}
}

// WithTransferPrefix prefijo fijo de los códigos de traslado.
func WithTransferPrefix(p string) Option {
	return func(s *settings) {
		if p != "" {
			s.transferPrefix = p
		}
	}
}

// WithPDFGenerator inyecta el generador del kardex en PDF.
func WithPDFGenerator(g KardexPDFGenerator) Option {
	return func(s *settings) { s.pdf = g }
}

// runWithCodeRetry repite la transacción completa si el código generado colisionó.
// fn debe poder reejecutarse desde cero.
func runWithCodeRetry(ctx context.Context, tx TxRunner, s settings, kind string, fn func(r TxRepos) error) error {
	var err error
	for attempt := 1; attempt <= s.codeRetries; attempt++ {
		err = tx.Run(ctx, fn)
		if !errors.Is(err, domain.ErrCodeConflict) {
			return err
		}
		s.metrics.CodeConflict(kind)
		s.log.Warn().Str("tipo", kind).Int("intento", attempt).Msg("colisión de código generado, reintentando")
	}
	return err
}
