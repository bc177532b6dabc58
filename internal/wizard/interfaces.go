package wizard

import (
	"context"

	"github.com/hollisb/linesmith/internal/model"
)

// CatalogPayload is everything the catalog source returns for a parent
// record: the product table schema, the parent's kind, the raw products
// and the active price book's entries.
type CatalogPayload struct {
	Columns      []model.TableColumn
	ParentKind   model.ParentKind
	Products     []model.CatalogRow
	PriceEntries []model.PriceEntry
}

// CatalogSource supplies the raw catalog, price and field-metadata rows.
type CatalogSource interface {
	FetchCatalog(ctx context.Context, pricebookID, recordID string) (*CatalogPayload, error)
	FetchConfigColumns(ctx context.Context, recordID string) ([]model.ConfigColumn, error)
	FetchFilterFields(ctx context.Context) ([]model.FilterField, error)
	FetchFilterCandidates(ctx context.Context, pricebookID string) ([]model.CatalogRow, error)
}

// RecordAPI defines the persistence contract for child records. Failures
// are *model.RecordError values carrying row-level, field-level and
// generic messages.
type RecordAPI interface {
	CreateChildRecord(ctx context.Context, childType string, fields map[string]string) (string, error)
	DeleteRecord(ctx context.Context, id string) error
}

// Severity classifies a user notification.
type Severity string

// Notification severities.
const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Notifier defines the contract for fire-and-forget user notifications.
// Sticky notices stay on screen until dismissed.
type Notifier interface {
	Notify(title, message string, severity Severity, sticky bool)
}

// Navigator defines the contract for leaving the wizard.
type Navigator interface {
	OpenRecord(kind model.ParentKind, recordID string)
	OpenWizard(recordID, pricebookID string)
}
