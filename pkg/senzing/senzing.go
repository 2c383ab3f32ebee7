// Package senzing declares the Senzing SDK interfaces implemented by the gRPC
// client packages (szengine, szconfig, szconfigmanager, szdiagnostic,
// szproduct) together with the engine flag constants.
//
// Every method takes a context that bounds the remote call. JSON documents
// (record definitions, search attributes, engine responses) travel as strings
// and are returned exactly as the engine produced them; package model offers
// typed views for callers that want them.
package senzing

import (
	"context"
	"iter"
)

// RecordKey identifies a record by data source code and record id.
type RecordKey struct {
	DataSourceCode string `json:"DATA_SOURCE"`
	RecordID       string `json:"RECORD_ID"`
}

// SzEngine adds, deletes and queries records and resolved entities.
type SzEngine interface {
	// AddRecord loads a record definition. With SzWithInfo set the affected
	// entities are returned, otherwise the result is empty.
	AddRecord(ctx context.Context, dataSourceCode, recordID, recordDefinition string, flags int64) (string, error)
	CloseExportReport(ctx context.Context, exportHandle int64) error
	CountRedoRecords(ctx context.Context) (int64, error)
	DeleteRecord(ctx context.Context, dataSourceCode, recordID string, flags int64) (string, error)
	// ExportCsvEntityReport opens an export and returns the handle to pass to
	// FetchNext and CloseExportReport.
	ExportCsvEntityReport(ctx context.Context, csvColumnList string, flags int64) (int64, error)
	// ExportCsvEntityReportIterator streams a CSV export; the first line is
	// the header.
	ExportCsvEntityReportIterator(ctx context.Context, csvColumnList string, flags int64) iter.Seq2[string, error]
	ExportJSONEntityReport(ctx context.Context, flags int64) (int64, error)
	// ExportJSONEntityReportIterator streams a JSON export, one entity per line.
	ExportJSONEntityReportIterator(ctx context.Context, flags int64) iter.Seq2[string, error]
	// FetchNext returns the next chunk of an export, or "" once exhausted.
	FetchNext(ctx context.Context, exportHandle int64) (string, error)
	FindInterestingEntitiesByEntityID(ctx context.Context, entityID int64, flags int64) (string, error)
	FindInterestingEntitiesByRecordID(ctx context.Context, dataSourceCode, recordID string, flags int64) (string, error)
	FindNetworkByEntityID(ctx context.Context, entityIDs []int64, maxDegrees, buildOutDegrees, buildOutMaxEntities int64, flags int64) (string, error)
	FindNetworkByRecordID(ctx context.Context, recordKeys []RecordKey, maxDegrees, buildOutDegrees, buildOutMaxEntities int64, flags int64) (string, error)
	FindPathByEntityID(ctx context.Context, startEntityID, endEntityID, maxDegrees int64, avoidEntityIDs []int64, requiredDataSources []string, flags int64) (string, error)
	FindPathByRecordID(ctx context.Context, startDataSourceCode, startRecordID, endDataSourceCode, endRecordID string, maxDegrees int64, avoidRecordKeys []RecordKey, requiredDataSources []string, flags int64) (string, error)
	GetActiveConfigID(ctx context.Context) (int64, error)
	GetEntityByEntityID(ctx context.Context, entityID int64, flags int64) (string, error)
	GetEntityByRecordID(ctx context.Context, dataSourceCode, recordID string, flags int64) (string, error)
	GetRecord(ctx context.Context, dataSourceCode, recordID string, flags int64) (string, error)
	GetRecordPreview(ctx context.Context, recordDefinition string, flags int64) (string, error)
	// GetRedoRecord returns the next pending redo record, or "" when there is
	// no redo work.
	GetRedoRecord(ctx context.Context) (string, error)
	GetStats(ctx context.Context) (string, error)
	GetVirtualEntityByRecordID(ctx context.Context, recordKeys []RecordKey, flags int64) (string, error)
	HowEntityByEntityID(ctx context.Context, entityID int64, flags int64) (string, error)
	PrimeEngine(ctx context.Context) error
	ProcessRedoRecord(ctx context.Context, redoRecord string, flags int64) (string, error)
	ReevaluateEntity(ctx context.Context, entityID int64, flags int64) (string, error)
	ReevaluateRecord(ctx context.Context, dataSourceCode, recordID string, flags int64) (string, error)
	Reinitialize(ctx context.Context, configID int64) error
	SearchByAttributes(ctx context.Context, attributes, searchProfile string, flags int64) (string, error)
	// StreamExportCsvEntityReport calls fn for each exported line and stops at
	// the first error fn returns.
	StreamExportCsvEntityReport(ctx context.Context, csvColumnList string, flags int64, fn func(line string) error) error
	StreamExportJSONEntityReport(ctx context.Context, flags int64, fn func(line string) error) error
	WhyEntities(ctx context.Context, entityID1, entityID2 int64, flags int64) (string, error)
	WhyRecordInEntity(ctx context.Context, dataSourceCode, recordID string, flags int64) (string, error)
	WhyRecords(ctx context.Context, dataSourceCode1, recordID1, dataSourceCode2, recordID2 string, flags int64) (string, error)
	WhySearch(ctx context.Context, attributes string, entityID int64, searchProfile string, flags int64) (string, error)
	// Destroy releases the client side. The remote engine is shared and keeps
	// running.
	Destroy(ctx context.Context) error
}

// SzConfig edits one in-memory configuration document. The server is
// stateless; the client holds the document and sends it with every call.
type SzConfig interface {
	// Export returns the configuration document currently held.
	Export(ctx context.Context) (string, error)
	GetDataSourceRegistry(ctx context.Context) (string, error)
	// Import replaces the held document.
	Import(ctx context.Context, configDefinition string) error
	RegisterDataSource(ctx context.Context, dataSourceCode string) (string, error)
	UnregisterDataSource(ctx context.Context, dataSourceCode string) (string, error)
	VerifyConfig(ctx context.Context, configDefinition string) (bool, error)
}

// SzConfigManager stores configurations in the repository and selects the
// default one.
type SzConfigManager interface {
	CreateConfigFromConfigID(ctx context.Context, configID int64) (SzConfig, error)
	CreateConfigFromString(ctx context.Context, configDefinition string) (SzConfig, error)
	CreateConfigFromTemplate(ctx context.Context) (SzConfig, error)
	GetConfigRegistry(ctx context.Context) (string, error)
	GetDefaultConfigID(ctx context.Context) (int64, error)
	RegisterConfig(ctx context.Context, configDefinition, configComment string) (int64, error)
	// ReplaceDefaultConfigID fails with SzReplaceConflictError when the
	// default is no longer currentDefaultConfigID.
	ReplaceDefaultConfigID(ctx context.Context, currentDefaultConfigID, newDefaultConfigID int64) error
	SetDefaultConfig(ctx context.Context, configDefinition, configComment string) (int64, error)
	SetDefaultConfigID(ctx context.Context, configID int64) error
}

type SzDiagnostic interface {
	CheckRepositoryPerformance(ctx context.Context, secondsToRun int) (string, error)
	GetFeature(ctx context.Context, featureID int64) (string, error)
	GetRepositoryInfo(ctx context.Context) (string, error)
	// PurgeRepository deletes every record and entity.
	PurgeRepository(ctx context.Context) error
	Reinitialize(ctx context.Context, configID int64) error
}

type SzProduct interface {
	GetLicense(ctx context.Context) (string, error)
	GetVersion(ctx context.Context) (string, error)
}

// SzAbstractFactory creates the service clients over one shared connection.
type SzAbstractFactory interface {
	CreateConfigManager(ctx context.Context) (SzConfigManager, error)
	CreateDiagnostic(ctx context.Context) (SzDiagnostic, error)
	CreateEngine(ctx context.Context) (SzEngine, error)
	CreateProduct(ctx context.Context) (SzProduct, error)
	// Reinitialize switches diagnostic and engine to configID.
	Reinitialize(ctx context.Context, configID int64) error
	// Destroy closes the connection; later Create calls fail with
	// SzNotInitializedError.
	Destroy(ctx context.Context) error
}
