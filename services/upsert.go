package services

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"foreclosure-scraper/models"
	"foreclosure-scraper/storage"
	"foreclosure-scraper/utils"
)

// ErrMissingSheriffNumber is returned when a parsed record lacks its business
// key. The caller counts the listing as failed and moves on.
var ErrMissingSheriffNumber = errors.New("record is missing the sheriff number field")

// Action reports whether an upsert created a new row or updated an existing one.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
)

// columnFields maps hosted-table columns to the detail-page headings whose
// values they carry verbatim.
var columnFields = []struct{ col, field string }{
	{models.ColCaseNumber, models.FieldCaseNumber},
	{models.ColAddress, models.FieldAddress},
	{models.ColSalesDate, models.FieldSalesDate},
	{models.ColPlaintiff, models.FieldPlaintiff},
	{models.ColDefendant, models.FieldDefendant},
	{models.ColDescription, models.FieldDescription},
	{models.ColAttorney, models.FieldAttorney},
	{models.ColAttorneyPhone, models.FieldAttorneyPhone},
}

// UpsertManager reconciles parsed listings against the hosted sales table,
// keyed by sheriff number. The full remote row set is fetched once per run
// and reused for every decision; rows created mid-run by this process are
// not visible until the next run.
type UpsertManager struct {
	store  storage.RecordStore
	money  *utils.MoneyParser
	logger *utils.Logger

	existing []storage.Record
	loaded   bool
}

// NewUpsertManager creates an UpsertManager over the given record store.
func NewUpsertManager(store storage.RecordStore, logger *utils.Logger) (*UpsertManager, error) {
	if store == nil {
		return nil, errors.New("upsert: record store is required")
	}
	return &UpsertManager{
		store:  store,
		money:  utils.NewMoneyParser(logger),
		logger: logger,
	}, nil
}

// existingRecords lazily loads the remote snapshot on first use.
func (m *UpsertManager) existingRecords() ([]storage.Record, error) {
	if !m.loaded {
		records, err := m.store.ListRecords()
		if err != nil {
			return nil, fmt.Errorf("upsert: load existing records: %w", err)
		}
		m.existing = records
		m.loaded = true
		m.logger.Info("[upsert] Loaded %d existing records", len(records))
	}
	return m.existing, nil
}

// CreateOrUpdate maps one parsed listing onto the hosted table. A new sheriff
// number creates a row; a known one updates the first row carrying it.
// Remote failures propagate to the caller unretried.
func (m *UpsertManager) CreateOrUpdate(details map[string]string, history []models.StatusEntry) (Action, error) {
	sheriff := details[models.FieldSheriffNumber]
	if sheriff == "" {
		return "", ErrMissingSheriffNumber
	}

	existing, err := m.existingRecords()
	if err != nil {
		return "", err
	}

	fields, err := m.buildFields(details, history)
	if err != nil {
		return "", err
	}

	for _, rec := range existing {
		if recordKey(rec) != sheriff {
			continue
		}
		if _, err := m.store.UpdateRecord(rec.ID, fields); err != nil {
			return "", fmt.Errorf("upsert: update %s: %w", sheriff, err)
		}
		m.logger.Info("[upsert] Updated record for sheriff number: %s", sheriff)
		return ActionUpdated, nil
	}

	if _, err := m.store.CreateRecord(fields); err != nil {
		return "", fmt.Errorf("upsert: create %s: %w", sheriff, err)
	}
	m.logger.Info("[upsert] Created record for sheriff number: %s", sheriff)
	return ActionCreated, nil
}

// buildFields assembles the row payload: verbatim strings where present,
// monetary fields defaulting to zero, and the status history serialized as
// a YAML list.
func (m *UpsertManager) buildFields(details map[string]string, history []models.StatusEntry) (map[string]any, error) {
	fields := map[string]any{
		models.ColSheriffNumber: details[models.FieldSheriffNumber],
	}

	for _, cf := range columnFields {
		if v, ok := details[cf.field]; ok {
			fields[cf.col] = v
		}
	}

	judgment, _ := m.money.Parse(details[models.FieldJudgmentAmount])
	upset, _ := m.money.Parse(details[models.FieldGoodFaithUpset])
	fields[models.ColJudgmentAmount] = judgment
	fields[models.ColGoodFaithUpset] = upset

	if history == nil {
		history = []models.StatusEntry{}
	}
	text, err := yaml.Marshal(history)
	if err != nil {
		return nil, fmt.Errorf("upsert: encode status history: %w", err)
	}
	fields[models.ColStatusHistory] = string(text)

	return fields, nil
}

func recordKey(rec storage.Record) string {
	v, _ := rec.Fields[models.ColSheriffNumber].(string)
	return v
}
