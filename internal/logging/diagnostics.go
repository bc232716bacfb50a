package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/smartpick/picklist/internal/picking"
)

// Diagnostics writes picking degradation events to a zap logger.
type Diagnostics struct {
	log *zap.Logger
}

// NewDiagnostics wraps log. A nil logger discards everything.
func NewDiagnostics(log *zap.Logger) *Diagnostics {
	if log == nil {
		log = zap.NewNop()
	}
	return &Diagnostics{log: log.Named("picking")}
}

// Report implements picking.Diagnostics.
func (d *Diagnostics) Report(e picking.Event) {
	if ce := d.log.Check(eventLevel(e.Kind), eventMessage(e.Kind)); ce != nil {
		ce.Write(eventFields(e)...)
	}
}

func eventLevel(kind picking.EventKind) zapcore.Level {
	switch kind {
	case picking.EventZeroQuantity, picking.EventMigrationChainTruncated:
		return zapcore.DebugLevel
	default:
		return zapcore.WarnLevel
	}
}

func eventMessage(kind picking.EventKind) string {
	switch kind {
	case picking.EventHeaderFallback:
		return "master header label not found, using fallback column"
	case picking.EventHeaderAmbiguous:
		return "master header label occurs more than once"
	case picking.EventNoMasterMatch:
		return "order line has no master row"
	case picking.EventMigrationMiss:
		return "migration source has no target row"
	case picking.EventMigrationChainTruncated:
		return "migration target names a further source, not followed"
	case picking.EventZeroQuantity:
		return "order quantity is zero or unparseable, line skipped"
	default:
		return string(kind)
	}
}

func eventFields(e picking.Event) []zap.Field {
	fields := []zap.Field{zap.String("event", string(e.Kind))}
	switch e.Kind {
	case picking.EventHeaderFallback, picking.EventHeaderAmbiguous:
		fields = append(fields,
			zap.String("field", string(e.Field)),
			zap.String("label", e.Label),
			zap.Int("column", e.Column),
		)
	default:
		fields = append(fields,
			zap.String("sku", e.SKU),
			zap.String("order_id", e.OrderID),
			zap.Int("row", e.SourceRow),
		)
		if e.Value != "" {
			fields = append(fields, zap.String("value", e.Value))
		}
	}
	return fields
}
