package szengine

import (
	"encoding/json"

	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/senzing"
	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/szerror"
)

type entityRef struct {
	EntityID int64 `json:"ENTITY_ID"`
}

// entityIDsJSON renders ids as {"ENTITIES":[{"ENTITY_ID":1},...]}. An empty
// list becomes "", which the engine reads as "none".
func entityIDsJSON(ids []int64) (string, error) {
	if len(ids) == 0 {
		return "", nil
	}
	refs := make([]entityRef, len(ids))
	for i, id := range ids {
		refs[i] = entityRef{EntityID: id}
	}
	return marshal(struct {
		Entities []entityRef `json:"ENTITIES"`
	}{refs})
}

// recordKeysJSON renders keys as {"RECORDS":[{"DATA_SOURCE":..,"RECORD_ID":..}]}.
func recordKeysJSON(keys []senzing.RecordKey) (string, error) {
	if len(keys) == 0 {
		return "", nil
	}
	for _, k := range keys {
		if k.DataSourceCode == "" || k.RecordID == "" {
			return "", szerror.Newf(szerror.KindBadInput, "record key %+v is incomplete", k)
		}
	}
	return marshal(struct {
		Records []senzing.RecordKey `json:"RECORDS"`
	}{keys})
}

// dataSourcesJSON renders codes as {"DATA_SOURCES":["A","B"]}.
func dataSourcesJSON(codes []string) (string, error) {
	if len(codes) == 0 {
		return "", nil
	}
	return marshal(struct {
		DataSources []string `json:"DATA_SOURCES"`
	}{codes})
}

func marshal(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", szerror.Newf(szerror.KindSdk, "encode parameter: %v", err)
	}
	return string(raw), nil
}
