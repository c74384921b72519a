// Package loader reads exported SSA reports into typed records.
package loader

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"ssareport/internal/cache"
	"ssareport/pkg/config"
	"ssareport/pkg/models"
)

// Timestamp layouts the export has been seen using, tried in order. The
// system emits day-first dates.
var issuedAtLayouts = []string{
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Loader reads one export file into a []ServiceOrder.
type Loader struct {
	cfg *config.Config
	log zerolog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the diagnostics logger.
func WithLogger(log zerolog.Logger) Option {
	return func(l *Loader) {
		l.log = log
	}
}

// New creates a loader for the given configuration.
func New(cfg *config.Config, opts ...Option) *Loader {
	l := &Loader{cfg: cfg, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads an export file, dispatching on extension. Supported: .xlsx,
// .xlsm, .csv.
func (l *Loader) Load(path string) ([]models.ServiceOrder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return l.LoadExcel(path)
	case ".csv":
		return l.LoadCSV(path)
	default:
		return nil, fmt.Errorf("unsupported export format %q (want .xlsx or .csv)", filepath.Ext(path))
	}
}

// LoadCached reads an export through the record cache. Cache failures
// degrade to a plain load.
func (l *Loader) LoadCached(path string, c *cache.Cache) ([]models.ServiceOrder, error) {
	hash, err := cache.HashFile(path)
	if err != nil {
		return nil, fmt.Errorf("hash export: %w", err)
	}

	if orders, ok := c.Lookup(hash); ok {
		l.log.Debug().Str("file", path).Int("orders", len(orders)).Msg("loaded from cache")
		return orders, nil
	}

	orders, err := l.Load(path)
	if err != nil {
		return nil, err
	}
	if err := c.Store(hash, orders); err != nil {
		l.log.Warn().Err(err).Str("file", path).Msg("failed to cache parsed export")
	}
	return orders, nil
}

// orderFromRow maps one positional row to a ServiceOrder. Rows shorter than
// the column layout are padded; every string cell is trimmed. rowNum is the
// 1-based row in the source file, used only for diagnostics.
func (l *Loader) orderFromRow(row []string, rowNum int) models.ServiceOrder {
	cells := make([]string, columnCount)
	for i := 0; i < columnCount && i < len(row); i++ {
		cells[i] = strings.TrimSpace(row[i])
	}

	order := models.ServiceOrder{
		Number:                cells[ColNumber],
		Situation:             cells[ColSituation],
		DerivedFrom:           cells[ColDerivedFrom],
		Location:              cells[ColLocation],
		LocationDesc:          cells[ColLocationDesc],
		Equipment:             cells[ColEquipment],
		RegistrationWeek:      cells[ColRegistrationWeek],
		Description:           cells[ColDescription],
		IssuerSector:          cells[ColIssuerSector],
		ExecutorSector:        cells[ColExecutorSector],
		Requester:             cells[ColRequester],
		OriginService:         cells[ColOriginService],
		IssuePriority:         cells[ColIssuePriority],
		PlanningPriority:      cells[ColPlanningPriority],
		SimpleExecution:       cells[ColSimpleExecution],
		SchedulingResponsible: cells[ColSchedulingResponsible],
		PlannedWeek:           cells[ColPlannedWeek],
		ExecutionResponsible:  cells[ColExecutionResponsible],
		ExecutionDesc:         cells[ColExecutionDesc],
		OriginSystem:          cells[ColOriginSystem],
		Anomaly:               cells[ColAnomaly],
	}

	if raw := cells[ColIssuedAt]; raw != "" {
		issuedAt, err := parseIssuedAt(raw)
		if err != nil {
			// A bad timestamp does not drop the row; week analyses only
			// need the week-code fields.
			l.log.Warn().Int("row", rowNum).Str("value", raw).Msg("unparsable issue timestamp")
		} else {
			order.IssuedAt = issuedAt
		}
	}
	return order
}

func parseIssuedAt(raw string) (time.Time, error) {
	for _, layout := range issuedAtLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}
