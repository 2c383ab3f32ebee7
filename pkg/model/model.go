// Package model defines typed views of the JSON documents the Senzing engine
// returns: resolved entities, records, with-info reports, registries and
// product information. The client packages return these documents verbatim;
// callers that want structured access decode them with the Parse helpers.
package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/senzing"
)

// RecordKey identifies a record by data source and record id.
type RecordKey = senzing.RecordKey

// Entity is the document returned by the GetEntityBy* and
// GetVirtualEntityByRecordID calls.
type Entity struct {
	ResolvedEntity  ResolvedEntity  `json:"RESOLVED_ENTITY"`
	RelatedEntities []RelatedEntity `json:"RELATED_ENTITIES,omitempty"`
}

// ResolvedEntity is an entity and the records resolved into it.
type ResolvedEntity struct {
	EntityID      int64                     `json:"ENTITY_ID"`
	EntityName    string                    `json:"ENTITY_NAME,omitempty"`
	Features      map[string][]FeatureValue `json:"FEATURES,omitempty"`
	RecordSummary []RecordSummary           `json:"RECORD_SUMMARY,omitempty"`
	Records       []Record                  `json:"RECORDS,omitempty"`
}

// FeatureValue is one representative value of an entity feature.
type FeatureValue struct {
	FeatDesc  string `json:"FEAT_DESC"`
	LibFeatID int64  `json:"LIB_FEAT_ID"`
	UsageType string `json:"USAGE_TYPE,omitempty"`
}

// RecordSummary counts the records an entity holds per data source.
type RecordSummary struct {
	DataSource  string `json:"DATA_SOURCE"`
	RecordCount int64  `json:"RECORD_COUNT"`
}

// Record is a record as returned by GetRecord or inside an entity.
type Record struct {
	DataSource     string          `json:"DATA_SOURCE"`
	RecordID       string          `json:"RECORD_ID"`
	MatchKey       string          `json:"MATCH_KEY,omitempty"`
	MatchLevelCode string          `json:"MATCH_LEVEL_CODE,omitempty"`
	ErruleCode     string          `json:"ERRULE_CODE,omitempty"`
	JSONData       json.RawMessage `json:"JSON_DATA,omitempty"`
}

// Key returns the record's data source and id.
func (r Record) Key() RecordKey {
	return RecordKey{DataSourceCode: r.DataSource, RecordID: r.RecordID}
}

// RelatedEntity is an entity related to a resolved entity.
type RelatedEntity struct {
	EntityID       int64           `json:"ENTITY_ID"`
	EntityName     string          `json:"ENTITY_NAME,omitempty"`
	MatchLevelCode string          `json:"MATCH_LEVEL_CODE,omitempty"`
	MatchKey       string          `json:"MATCH_KEY,omitempty"`
	ErruleCode     string          `json:"ERRULE_CODE,omitempty"`
	IsDisclosed    int             `json:"IS_DISCLOSED"`
	IsAmbiguous    int             `json:"IS_AMBIGUOUS"`
	RecordSummary  []RecordSummary `json:"RECORD_SUMMARY,omitempty"`
}

// WithInfo is returned by mutating calls made with senzing.SzWithInfo.
type WithInfo struct {
	DataSource          string          `json:"DATA_SOURCE"`
	RecordID            string          `json:"RECORD_ID"`
	AffectedEntities    []EntityRef     `json:"AFFECTED_ENTITIES"`
	InterestingEntities json.RawMessage `json:"INTERESTING_ENTITIES,omitempty"`
}

// AffectedEntityIDs lists the ids of the affected entities in order.
func (w *WithInfo) AffectedEntityIDs() []int64 {
	ids := make([]int64, len(w.AffectedEntities))
	for i, e := range w.AffectedEntities {
		ids[i] = e.EntityID
	}
	return ids
}

type EntityRef struct {
	EntityID int64 `json:"ENTITY_ID"`
}

// SearchResult is returned by SearchByAttributes.
type SearchResult struct {
	ResolvedEntities []SearchEntity `json:"RESOLVED_ENTITIES"`
}

type SearchEntity struct {
	MatchInfo MatchInfo `json:"MATCH_INFO"`
	Entity    Entity    `json:"ENTITY"`
}

type MatchInfo struct {
	MatchLevelCode string `json:"MATCH_LEVEL_CODE"`
	MatchKey       string `json:"MATCH_KEY"`
	ErruleCode     string `json:"ERRULE_CODE"`
}

// ConfigRegistry is returned by SzConfigManager.GetConfigRegistry.
type ConfigRegistry struct {
	Configs []ConfigEntry `json:"CONFIGS"`
}

type ConfigEntry struct {
	ConfigID      int64  `json:"CONFIG_ID"`
	ConfigComment string `json:"CONFIG_COMMENT"`
	SysCreateDT   string `json:"SYS_CREATE_DT"`
}

// DataSourceRegistry is returned by SzConfig.GetDataSourceRegistry.
type DataSourceRegistry struct {
	DataSources []DataSource `json:"DATA_SOURCES"`
}

type DataSource struct {
	DsrcID   int64  `json:"DSRC_ID"`
	DsrcCode string `json:"DSRC_CODE"`
}

// Codes lists the registered data source codes.
func (r *DataSourceRegistry) Codes() []string {
	codes := make([]string, len(r.DataSources))
	for i, ds := range r.DataSources {
		codes[i] = ds.DsrcCode
	}
	return codes
}

// Has reports whether code is registered, ignoring case.
func (r *DataSourceRegistry) Has(code string) bool {
	for _, ds := range r.DataSources {
		if strings.EqualFold(ds.DsrcCode, code) {
			return true
		}
	}
	return false
}

// Version is returned by SzProduct.GetVersion.
type Version struct {
	ProductName          string `json:"PRODUCT_NAME"`
	Version              string `json:"VERSION"`
	BuildVersion         string `json:"BUILD_VERSION"`
	BuildDate            string `json:"BUILD_DATE"`
	BuildNumber          string `json:"BUILD_NUMBER"`
	CompatibilityVersion struct {
		ConfigVersion string `json:"CONFIG_VERSION"`
	} `json:"COMPATIBILITY_VERSION"`
	SchemaVersion struct {
		EngineSchemaVersion          string `json:"ENGINE_SCHEMA_VERSION"`
		MinimumRequiredSchemaVersion string `json:"MINIMUM_REQUIRED_SCHEMA_VERSION"`
		MaximumRequiredSchemaVersion string `json:"MAXIMUM_REQUIRED_SCHEMA_VERSION"`
	} `json:"SCHEMA_VERSION"`
}

// License is returned by SzProduct.GetLicense.
type License struct {
	Customer     string `json:"customer"`
	Contract     string `json:"contract"`
	IssueDate    string `json:"issueDate"`
	LicenseType  string `json:"licenseType"`
	LicenseLevel string `json:"licenseLevel"`
	Billing      string `json:"billing"`
	ExpireDate   string `json:"expireDate"`
	RecordLimit  int64  `json:"recordLimit"`
}

// RepositoryInfo is returned by SzDiagnostic.GetRepositoryInfo.
type RepositoryInfo struct {
	DataStores []DataStore `json:"dataStores"`
}

type DataStore struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Location string `json:"location"`
}

// RedoRecord is a unit of deferred work returned by GetRedoRecord.
type RedoRecord struct {
	Reason          string `json:"REASON"`
	DataSource      string `json:"DATA_SOURCE,omitempty"`
	RecordID        string `json:"RECORD_ID,omitempty"`
	EntityID        int64  `json:"ENTITY_ID,omitempty"`
	ReevalIteration int    `json:"REEVAL_ITERATION,omitempty"`
	DsrcAction      string `json:"DSRC_ACTION,omitempty"`
}

// Parse decodes an engine document into T.
func Parse[T any](doc string) (*T, error) {
	if strings.TrimSpace(doc) == "" {
		return nil, fmt.Errorf("parse %T: empty document", *new(T))
	}
	v := new(T)
	if err := json.Unmarshal([]byte(doc), v); err != nil {
		return nil, fmt.Errorf("parse %T: %w", *v, err)
	}
	return v, nil
}

func ParseEntity(doc string) (*Entity, error) {
	return Parse[Entity](doc)
}

func ParseRecord(doc string) (*Record, error) {
	return Parse[Record](doc)
}

func ParseWithInfo(doc string) (*WithInfo, error) {
	return Parse[WithInfo](doc)
}

func ParseSearchResult(doc string) (*SearchResult, error) {
	return Parse[SearchResult](doc)
}

func ParseConfigRegistry(doc string) (*ConfigRegistry, error) {
	return Parse[ConfigRegistry](doc)
}

func ParseDataSourceRegistry(doc string) (*DataSourceRegistry, error) {
	return Parse[DataSourceRegistry](doc)
}

func ParseVersion(doc string) (*Version, error) {
	return Parse[Version](doc)
}

func ParseLicense(doc string) (*License, error) {
	return Parse[License](doc)
}

func ParseRepositoryInfo(doc string) (*RepositoryInfo, error) {
	return Parse[RepositoryInfo](doc)
}

func ParseRedoRecord(doc string) (*RedoRecord, error) {
	return Parse[RedoRecord](doc)
}
