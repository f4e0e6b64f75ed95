package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultAirtableBaseURL = "https://api.airtable.com/v0"

// AirtableClient talks to the hosted sales table over the Airtable REST API.
// It implements RecordStore.
type AirtableClient struct {
	apiKey  string
	baseID  string
	tableID string
	baseURL string
	client  *http.Client
}

// NewAirtableClient validates the credential and returns a ready client.
func NewAirtableClient(apiKey, baseID, tableID string) (*AirtableClient, error) {
	if apiKey == "" {
		return nil, errors.New("airtable: API key is required")
	}
	return &AirtableClient{
		apiKey:  apiKey,
		baseID:  baseID,
		tableID: tableID,
		baseURL: defaultAirtableBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// SetBaseURL overrides the API endpoint. Used by tests to point the client
// at a local server.
func (a *AirtableClient) SetBaseURL(u string) {
	a.baseURL = u
}

func (a *AirtableClient) tableURL() string {
	return fmt.Sprintf("%s/%s/%s", a.baseURL, a.baseID, a.tableID)
}

type airtableRecord struct {
	ID     string         `json:"id,omitempty"`
	Fields map[string]any `json:"fields"`
}

type airtableRecordList struct {
	Records []airtableRecord `json:"records"`
	Offset  string           `json:"offset,omitempty"`
}

// ListRecords fetches every row of the table, following pagination offsets.
func (a *AirtableClient) ListRecords() ([]Record, error) {
	var all []Record
	offset := ""

	for {
		u := a.tableURL()
		if offset != "" {
			u += "?offset=" + url.QueryEscape(offset)
		}

		body, err := a.do(http.MethodGet, u, nil)
		if err != nil {
			return nil, fmt.Errorf("airtable: list records: %w", err)
		}

		var page airtableRecordList
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("airtable: decode record list: %w", err)
		}

		for _, r := range page.Records {
			all = append(all, Record{ID: r.ID, Fields: r.Fields})
		}

		if page.Offset == "" {
			return all, nil
		}
		offset = page.Offset
	}
}

// CreateRecord inserts a new row with the given fields.
func (a *AirtableClient) CreateRecord(fields map[string]any) (Record, error) {
	payload := airtableRecordList{
		Records: []airtableRecord{{Fields: fields}},
	}
	buf, err := json.Marshal(payload)
	if err != nil {
		return Record{}, fmt.Errorf("airtable: encode create payload: %w", err)
	}

	body, err := a.do(http.MethodPost, a.tableURL(), buf)
	if err != nil {
		return Record{}, fmt.Errorf("airtable: create record: %w", err)
	}

	var created airtableRecordList
	if err := json.Unmarshal(body, &created); err != nil {
		return Record{}, fmt.Errorf("airtable: decode create response: %w", err)
	}
	if len(created.Records) == 0 {
		return Record{}, errors.New("airtable: create returned no records")
	}
	r := created.Records[0]
	return Record{ID: r.ID, Fields: r.Fields}, nil
}

// UpdateRecord patches the fields of an existing row by its opaque id.
func (a *AirtableClient) UpdateRecord(id string, fields map[string]any) (Record, error) {
	payload := airtableRecord{Fields: fields}
	buf, err := json.Marshal(payload)
	if err != nil {
		return Record{}, fmt.Errorf("airtable: encode update payload: %w", err)
	}

	body, err := a.do(http.MethodPatch, a.tableURL()+"/"+id, buf)
	if err != nil {
		return Record{}, fmt.Errorf("airtable: update record %s: %w", id, err)
	}

	var updated airtableRecord
	if err := json.Unmarshal(body, &updated); err != nil {
		return Record{}, fmt.Errorf("airtable: decode update response: %w", err)
	}
	return Record{ID: updated.ID, Fields: updated.Fields}, nil
}

func (a *AirtableClient) do(method, u string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequest(method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, truncateBody(data))
	}
	return data, nil
}

func truncateBody(b []byte) string {
	const max = 200
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
