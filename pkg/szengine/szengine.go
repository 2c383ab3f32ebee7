// Package szengine adds, deletes and queries records and entities through the
// SzEngine gRPC service.
//
// Every method maps one-to-one onto an RPC. Parameters are marshalled into
// the request, the "result" field of the response is returned verbatim and
// failures come back as szerror values. Entity id lists, record key lists and
// data source lists are rendered into the JSON documents the engine expects.
package szengine

import (
	"context"
	"errors"
	"iter"

	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/grpc"
	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/senzing"
	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/szrpc"
	"go.uber.org/zap"
)

const service = "SzEngine"

// Szengine implements senzing.SzEngine over gRPC.
type Szengine struct {
	caller *szrpc.Caller
}

var _ senzing.SzEngine = (*Szengine)(nil)

// New returns an engine client using client.
func New(client *grpc.Client, opts ...szrpc.Option) *Szengine {
	return &Szengine{caller: szrpc.New(client, service, opts...)}
}

func (e *Szengine) callString(ctx context.Context, method string, params map[string]any) (string, error) {
	resp, err := e.caller.Call(ctx, method, params)
	if err != nil {
		return "", err
	}
	return szrpc.String(resp), nil
}

func (e *Szengine) callInt64(ctx context.Context, method string, params map[string]any) (int64, error) {
	resp, err := e.caller.Call(ctx, method, params)
	if err != nil {
		return 0, err
	}
	return szrpc.Int64(resp)
}

func (e *Szengine) callEmpty(ctx context.Context, method string, params map[string]any) error {
	_, err := e.caller.Call(ctx, method, params)
	return err
}

func (e *Szengine) recordCall(ctx context.Context, method, dataSourceCode, recordID string, flags int64) (string, error) {
	if err := szrpc.RequireKey(dataSourceCode, recordID); err != nil {
		return "", err
	}
	return e.callString(ctx, method, map[string]any{
		"data_source_code": dataSourceCode,
		"record_id":        recordID,
		"flags":            flags,
	})
}

func (e *Szengine) entityCall(ctx context.Context, method string, entityID, flags int64) (string, error) {
	return e.callString(ctx, method, map[string]any{
		"entity_id": entityID,
		"flags":     flags,
	})
}

// AddRecord adds or replaces a record and returns the with-info document when flags request it.
func (e *Szengine) AddRecord(ctx context.Context, dataSourceCode, recordID, recordDefinition string, flags int64) (string, error) {
	if err := szrpc.RequireKey(dataSourceCode, recordID); err != nil {
		return "", err
	}
	return e.callString(ctx, "AddRecord", map[string]any{
		"data_source_code":  dataSourceCode,
		"record_id":         recordID,
		"record_definition": recordDefinition,
		"flags":             flags,
	})
}

// CloseExportReport releases an export handle returned by ExportCsvEntityReport or ExportJSONEntityReport.
func (e *Szengine) CloseExportReport(ctx context.Context, exportHandle int64) error {
	return e.callEmpty(ctx, "CloseExportReport", map[string]any{"export_handle": exportHandle})
}

// CountRedoRecords returns the number of records waiting in the redo queue.
func (e *Szengine) CountRedoRecords(ctx context.Context) (int64, error) {
	return e.callInt64(ctx, "CountRedoRecords", map[string]any{})
}

// DeleteRecord removes a record and returns the with-info document when flags request it.
func (e *Szengine) DeleteRecord(ctx context.Context, dataSourceCode, recordID string, flags int64) (string, error) {
	return e.recordCall(ctx, "DeleteRecord", dataSourceCode, recordID, flags)
}

// ExportCsvEntityReport opens a server-side CSV export and returns its handle for FetchNext.
func (e *Szengine) ExportCsvEntityReport(ctx context.Context, csvColumnList string, flags int64) (int64, error) {
	return e.callInt64(ctx, "ExportCsvEntityReport", map[string]any{
		"csv_column_list": csvColumnList,
		"flags":           flags,
	})
}

// ExportJSONEntityReport opens a server-side JSON-lines export and returns its handle for FetchNext.
func (e *Szengine) ExportJSONEntityReport(ctx context.Context, flags int64) (int64, error) {
	return e.callInt64(ctx, "ExportJsonEntityReport", map[string]any{"flags": flags})
}

// FetchNext returns the next chunk of an export, or an empty string once it is exhausted.
func (e *Szengine) FetchNext(ctx context.Context, exportHandle int64) (string, error) {
	return e.callString(ctx, "FetchNext", map[string]any{"export_handle": exportHandle})
}

// FindInterestingEntitiesByEntityID returns entities of interest related to entityID.
func (e *Szengine) FindInterestingEntitiesByEntityID(ctx context.Context, entityID int64, flags int64) (string, error) {
	return e.entityCall(ctx, "FindInterestingEntitiesByEntityId", entityID, flags)
}

// FindInterestingEntitiesByRecordID returns entities of interest related to the entity holding the record.
func (e *Szengine) FindInterestingEntitiesByRecordID(ctx context.Context, dataSourceCode, recordID string, flags int64) (string, error) {
	return e.recordCall(ctx, "FindInterestingEntitiesByRecordId", dataSourceCode, recordID, flags)
}

// FindNetworkByEntityID returns the network of entities connecting entityIDs within maxDegrees.
func (e *Szengine) FindNetworkByEntityID(ctx context.Context, entityIDs []int64, maxDegrees, buildOutDegrees, buildOutMaxEntities int64, flags int64) (string, error) {
	ids, err := entityIDsJSON(entityIDs)
	if err != nil {
		return "", err
	}
	return e.callString(ctx, "FindNetworkByEntityId", map[string]any{
		"entity_ids":             ids,
		"max_degrees":            maxDegrees,
		"build_out_degrees":      buildOutDegrees,
		"build_out_max_entities": buildOutMaxEntities,
		"flags":                  flags,
	})
}

// FindNetworkByRecordID returns the network of entities connecting the entities holding recordKeys.
func (e *Szengine) FindNetworkByRecordID(ctx context.Context, recordKeys []senzing.RecordKey, maxDegrees, buildOutDegrees, buildOutMaxEntities int64, flags int64) (string, error) {
	keys, err := recordKeysJSON(recordKeys)
	if err != nil {
		return "", err
	}
	return e.callString(ctx, "FindNetworkByRecordId", map[string]any{
		"record_keys":            keys,
		"max_degrees":            maxDegrees,
		"build_out_degrees":      buildOutDegrees,
		"build_out_max_entities": buildOutMaxEntities,
		"flags":                  flags,
	})
}

// FindPathByEntityID returns the shortest relationship path between two entities, skipping avoidEntityIDs.
func (e *Szengine) FindPathByEntityID(ctx context.Context, startEntityID, endEntityID, maxDegrees int64, avoidEntityIDs []int64, requiredDataSources []string, flags int64) (string, error) {
	avoid, err := entityIDsJSON(avoidEntityIDs)
	if err != nil {
		return "", err
	}
	required, err := dataSourcesJSON(requiredDataSources)
	if err != nil {
		return "", err
	}
	return e.callString(ctx, "FindPathByEntityId", map[string]any{
		"start_entity_id":       startEntityID,
		"end_entity_id":         endEntityID,
		"max_degrees":           maxDegrees,
		"avoid_entity_ids":      avoid,
		"required_data_sources": required,
		"flags":                 flags,
	})
}

// FindPathByRecordID returns the shortest relationship path between the entities holding two records.
func (e *Szengine) FindPathByRecordID(ctx context.Context, startDataSourceCode, startRecordID, endDataSourceCode, endRecordID string, maxDegrees int64, avoidRecordKeys []senzing.RecordKey, requiredDataSources []string, flags int64) (string, error) {
	if err := szrpc.RequireKey(startDataSourceCode, startRecordID); err != nil {
		return "", err
	}
	if err := szrpc.RequireKey(endDataSourceCode, endRecordID); err != nil {
		return "", err
	}
	avoid, err := recordKeysJSON(avoidRecordKeys)
	if err != nil {
		return "", err
	}
	required, err := dataSourcesJSON(requiredDataSources)
	if err != nil {
		return "", err
	}
	return e.callString(ctx, "FindPathByRecordId", map[string]any{
		"start_data_source_code": startDataSourceCode,
		"start_record_id":        startRecordID,
		"end_data_source_code":   endDataSourceCode,
		"end_record_id":          endRecordID,
		"max_degrees":            maxDegrees,
		"avoid_record_keys":      avoid,
		"required_data_sources":  required,
		"flags":                  flags,
	})
}

// GetActiveConfigID returns the id of the configuration the engine is running.
func (e *Szengine) GetActiveConfigID(ctx context.Context) (int64, error) {
	return e.callInt64(ctx, "GetActiveConfigId", map[string]any{})
}

// GetEntityByEntityID returns the entity document for entityID.
func (e *Szengine) GetEntityByEntityID(ctx context.Context, entityID int64, flags int64) (string, error) {
	return e.entityCall(ctx, "GetEntityByEntityId", entityID, flags)
}

// GetEntityByRecordID returns the entity document of the entity holding the record.
func (e *Szengine) GetEntityByRecordID(ctx context.Context, dataSourceCode, recordID string, flags int64) (string, error) {
	return e.recordCall(ctx, "GetEntityByRecordId", dataSourceCode, recordID, flags)
}

// GetRecord returns the stored record document.
func (e *Szengine) GetRecord(ctx context.Context, dataSourceCode, recordID string, flags int64) (string, error) {
	return e.recordCall(ctx, "GetRecord", dataSourceCode, recordID, flags)
}

// GetRecordPreview returns the features a record definition would produce without loading it.
func (e *Szengine) GetRecordPreview(ctx context.Context, recordDefinition string, flags int64) (string, error) {
	return e.callString(ctx, "GetRecordPreview", map[string]any{
		"record_definition": recordDefinition,
		"flags":             flags,
	})
}

// GetRedoRecord pops one record from the redo queue, or returns an empty string when it is empty.
func (e *Szengine) GetRedoRecord(ctx context.Context) (string, error) {
	return e.callString(ctx, "GetRedoRecord", map[string]any{})
}

// GetStats returns the engine workload statistics.
func (e *Szengine) GetStats(ctx context.Context) (string, error) {
	return e.callString(ctx, "GetStats", map[string]any{})
}

// GetVirtualEntityByRecordID returns the entity that recordKeys would resolve to together.
func (e *Szengine) GetVirtualEntityByRecordID(ctx context.Context, recordKeys []senzing.RecordKey, flags int64) (string, error) {
	keys, err := recordKeysJSON(recordKeys)
	if err != nil {
		return "", err
	}
	return e.callString(ctx, "GetVirtualEntityByRecordId", map[string]any{
		"record_keys": keys,
		"flags":       flags,
	})
}

// HowEntityByEntityID returns the resolution steps that built entityID.
func (e *Szengine) HowEntityByEntityID(ctx context.Context, entityID int64, flags int64) (string, error) {
	return e.entityCall(ctx, "HowEntityByEntityId", entityID, flags)
}

// PrimeEngine warms the engine caches ahead of the first load.
func (e *Szengine) PrimeEngine(ctx context.Context) error {
	return e.callEmpty(ctx, "PrimeEngine", map[string]any{})
}

// ProcessRedoRecord applies a record taken from GetRedoRecord.
func (e *Szengine) ProcessRedoRecord(ctx context.Context, redoRecord string, flags int64) (string, error) {
	return e.callString(ctx, "ProcessRedoRecord", map[string]any{
		"redo_record": redoRecord,
		"flags":       flags,
	})
}

// ReevaluateEntity re-resolves entityID against the current configuration.
func (e *Szengine) ReevaluateEntity(ctx context.Context, entityID int64, flags int64) (string, error) {
	return e.entityCall(ctx, "ReevaluateEntity", entityID, flags)
}

// ReevaluateRecord re-resolves the entity holding the record.
func (e *Szengine) ReevaluateRecord(ctx context.Context, dataSourceCode, recordID string, flags int64) (string, error) {
	return e.recordCall(ctx, "ReevaluateRecord", dataSourceCode, recordID, flags)
}

// Reinitialize switches the engine to configID.
func (e *Szengine) Reinitialize(ctx context.Context, configID int64) error {
	err := e.callEmpty(ctx, "Reinitialize", map[string]any{"config_id": configID})
	if err == nil {
		e.caller.Logger().Info("engine reinitialized", zap.Int64("config_id", configID))
	}
	return err
}

// SearchByAttributes returns the entities matching attributes under searchProfile.
func (e *Szengine) SearchByAttributes(ctx context.Context, attributes, searchProfile string, flags int64) (string, error) {
	return e.callString(ctx, "SearchByAttributes", map[string]any{
		"attributes":     attributes,
		"search_profile": searchProfile,
		"flags":          flags,
	})
}

// StreamExportCsvEntityReport streams a CSV export to fn line by line. An error from fn stops the stream and is returned.
func (e *Szengine) StreamExportCsvEntityReport(ctx context.Context, csvColumnList string, flags int64, fn func(line string) error) error {
	return e.stream(ctx, "StreamExportCsvEntityReport", map[string]any{
		"csv_column_list": csvColumnList,
		"flags":           flags,
	}, fn)
}

// StreamExportJSONEntityReport streams a JSON-lines export to fn line by line. An error from fn stops the stream and is returned.
func (e *Szengine) StreamExportJSONEntityReport(ctx context.Context, flags int64, fn func(line string) error) error {
	return e.stream(ctx, "StreamExportJsonEntityReport", map[string]any{"flags": flags}, fn)
}

// ExportCsvEntityReportIterator ranges over a streamed CSV export.
func (e *Szengine) ExportCsvEntityReportIterator(ctx context.Context, csvColumnList string, flags int64) iter.Seq2[string, error] {
	return e.iterate(func(fn func(string) error) error {
		return e.StreamExportCsvEntityReport(ctx, csvColumnList, flags, fn)
	})
}

// ExportJSONEntityReportIterator ranges over a streamed JSON-lines export.
func (e *Szengine) ExportJSONEntityReportIterator(ctx context.Context, flags int64) iter.Seq2[string, error] {
	return e.iterate(func(fn func(string) error) error {
		return e.StreamExportJSONEntityReport(ctx, flags, fn)
	})
}

// WhyEntities explains why two entities did or did not resolve.
func (e *Szengine) WhyEntities(ctx context.Context, entityID1, entityID2 int64, flags int64) (string, error) {
	return e.callString(ctx, "WhyEntities", map[string]any{
		"entity_id_1": entityID1,
		"entity_id_2": entityID2,
		"flags":       flags,
	})
}

// WhyRecordInEntity explains why a record belongs to its entity.
func (e *Szengine) WhyRecordInEntity(ctx context.Context, dataSourceCode, recordID string, flags int64) (string, error) {
	return e.recordCall(ctx, "WhyRecordInEntity", dataSourceCode, recordID, flags)
}

// WhyRecords explains why two records did or did not resolve together.
func (e *Szengine) WhyRecords(ctx context.Context, dataSourceCode1, recordID1, dataSourceCode2, recordID2 string, flags int64) (string, error) {
	if err := szrpc.RequireKey(dataSourceCode1, recordID1); err != nil {
		return "", err
	}
	if err := szrpc.RequireKey(dataSourceCode2, recordID2); err != nil {
		return "", err
	}
	return e.callString(ctx, "WhyRecords", map[string]any{
		"data_source_code_1": dataSourceCode1,
		"record_id_1":        recordID1,
		"data_source_code_2": dataSourceCode2,
		"record_id_2":        recordID2,
		"flags":              flags,
	})
}

// WhySearch explains why entityID did or did not match a search on attributes.
func (e *Szengine) WhySearch(ctx context.Context, attributes string, entityID int64, searchProfile string, flags int64) (string, error) {
	return e.callString(ctx, "WhySearch", map[string]any{
		"attributes":     attributes,
		"entity_id":      entityID,
		"search_profile": searchProfile,
		"flags":          flags,
	})
}

// Destroy releases the client. The remote engine is shared with other
// clients and keeps running.
func (e *Szengine) Destroy(_ context.Context) error {
	return e.caller.Close()
}

func (e *Szengine) stream(ctx context.Context, method string, params map[string]any, fn func(string) error) error {
	return e.caller.Stream(ctx, method, params, func(m map[string]any) error {
		return fn(szrpc.String(m))
	})
}

var errStopIteration = errors.New("iteration stopped")

// iterate adapts a callback stream to a range-over-func iterator. Breaking
// out of the loop cancels the stream; a stream failure is yielded last.
func (e *Szengine) iterate(run func(fn func(string) error) error) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		err := run(func(line string) error {
			if !yield(line, nil) {
				return errStopIteration
			}
			return nil
		})
		if err != nil && !errors.Is(err, errStopIteration) {
			yield("", err)
		}
	}
}
