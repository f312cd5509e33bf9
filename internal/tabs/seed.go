package tabs

import "github.com/vitalhq/medboard/backend/internal/models"

// SeedTab describes one system-default tab in the bootstrap catalog.
type SeedTab struct {
	Key          string
	Label        string
	Icon         string
	ContentType  string
	Settings     string
	DisplayOrder int
	IsMandatory  bool
}

// DefaultCatalog is the fixed set of system tabs every deployment starts
// with. Overview is mandatory: it can never be hidden at any scope.
func DefaultCatalog() []SeedTab {
	return []SeedTab{
		{Key: "overview", Label: "Overview", Icon: "layout-dashboard", ContentType: "summary", DisplayOrder: 10, IsMandatory: true},
		{Key: "visits", Label: "Visits", Icon: "stethoscope", ContentType: "list", DisplayOrder: 20},
		{Key: "labs", Label: "Labs", Icon: "flask", ContentType: "list", DisplayOrder: 30},
		{Key: "vaccinations", Label: "Vaccinations", Icon: "syringe", ContentType: "list", DisplayOrder: 40},
		{Key: "documents", Label: "Documents", Icon: "file-text", ContentType: "list", DisplayOrder: 50},
		{Key: "billing", Label: "Billing", Icon: "receipt", ContentType: "list", DisplayOrder: 60},
	}
}

// Seed inserts any catalog entries missing at system scope. Existing
// records are never updated, so the operation is safe to run on every
// start.
func (s *Service) Seed(catalog []SeedTab) error {
	for _, tab := range catalog {
		existing, err := s.store.FindAt(tab.Key, ScopeSystem, nil)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}

		rec := &models.TabConfig{
			Key:             tab.Key,
			Scope:           string(ScopeSystem),
			Label:           tab.Label,
			Icon:            tab.Icon,
			ContentType:     tab.ContentType,
			Settings:        tab.Settings,
			DisplayOrder:    tab.DisplayOrder,
			IsVisible:       true,
			IsMandatory:     tab.IsMandatory,
			IsSystemDefault: true,
		}
		if err := s.store.Insert(rec); err != nil {
			return err
		}
	}
	return nil
}
