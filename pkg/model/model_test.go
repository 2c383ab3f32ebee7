package model

import (
	"slices"
	"strings"
	"testing"
)

const entityDoc = `{
  "RESOLVED_ENTITY": {
    "ENTITY_ID": 100001,
    "ENTITY_NAME": "Robert Smith",
    "FEATURES": {"NAME": [{"FEAT_DESC": "Robert Smith", "LIB_FEAT_ID": 1, "USAGE_TYPE": "PRIMARY"}]},
    "RECORD_SUMMARY": [{"DATA_SOURCE": "CUSTOMERS", "RECORD_COUNT": 2}],
    "RECORDS": [
      {"DATA_SOURCE": "CUSTOMERS", "RECORD_ID": "1001", "MATCH_KEY": "", "MATCH_LEVEL_CODE": ""},
      {"DATA_SOURCE": "CUSTOMERS", "RECORD_ID": "1002", "MATCH_KEY": "+NAME+DOB", "MATCH_LEVEL_CODE": "RESOLVED",
       "JSON_DATA": {"NAME_FULL": "Bob Smith"}}
    ]
  },
  "RELATED_ENTITIES": [
    {"ENTITY_ID": 100004, "MATCH_LEVEL_CODE": "POSSIBLY_RELATED", "MATCH_KEY": "+ADDRESS", "IS_DISCLOSED": 0, "IS_AMBIGUOUS": 0}
  ]
}`

func TestParseEntity(t *testing.T) {
	e, err := ParseEntity(entityDoc)
	if err != nil {
		t.Fatalf("ParseEntity: %v", err)
	}
	if e.ResolvedEntity.EntityID != 100001 {
		t.Fatalf("EntityID = %d, want 100001", e.ResolvedEntity.EntityID)
	}
	if len(e.ResolvedEntity.Records) != 2 {
		t.Fatalf("len(Records) = %d, want 2", len(e.ResolvedEntity.Records))
	}
	second := e.ResolvedEntity.Records[1]
	if got := second.Key(); got.DataSourceCode != "CUSTOMERS" || got.RecordID != "1002" {
		t.Fatalf("Key() = %+v", got)
	}
	if !strings.Contains(string(second.JSONData), "Bob Smith") {
		t.Fatalf("JSONData = %s", second.JSONData)
	}
	if got := e.ResolvedEntity.Features["NAME"][0].LibFeatID; got != 1 {
		t.Fatalf("LibFeatID = %d, want 1", got)
	}
	if len(e.RelatedEntities) != 1 || e.RelatedEntities[0].MatchLevelCode != "POSSIBLY_RELATED" {
		t.Fatalf("RelatedEntities = %+v", e.RelatedEntities)
	}
}

func TestParseWithInfo(t *testing.T) {
	info, err := ParseWithInfo(`{"DATA_SOURCE":"CUSTOMERS","RECORD_ID":"1001","AFFECTED_ENTITIES":[{"ENTITY_ID":1},{"ENTITY_ID":7}],"INTERESTING_ENTITIES":{"ENTITIES":[]}}`)
	if err != nil {
		t.Fatalf("ParseWithInfo: %v", err)
	}
	if got := info.AffectedEntityIDs(); !slices.Equal(got, []int64{1, 7}) {
		t.Fatalf("AffectedEntityIDs() = %v", got)
	}
}

func TestParseSearchResult(t *testing.T) {
	doc := `{"RESOLVED_ENTITIES":[{"MATCH_INFO":{"MATCH_LEVEL_CODE":"RESOLVED","MATCH_KEY":"+NAME+DOB"},"ENTITY":{"RESOLVED_ENTITY":{"ENTITY_ID":5}}}]}`
	r, err := ParseSearchResult(doc)
	if err != nil {
		t.Fatalf("ParseSearchResult: %v", err)
	}
	if len(r.ResolvedEntities) != 1 || r.ResolvedEntities[0].Entity.ResolvedEntity.EntityID != 5 {
		t.Fatalf("ResolvedEntities = %+v", r.ResolvedEntities)
	}
}

func TestDataSourceRegistry(t *testing.T) {
	r, err := ParseDataSourceRegistry(`{"DATA_SOURCES":[{"DSRC_ID":1,"DSRC_CODE":"TEST"},{"DSRC_ID":2,"DSRC_CODE":"SEARCH"}]}`)
	if err != nil {
		t.Fatalf("ParseDataSourceRegistry: %v", err)
	}
	if got := r.Codes(); !slices.Equal(got, []string{"TEST", "SEARCH"}) {
		t.Fatalf("Codes() = %v", got)
	}
	if !r.Has("test") || r.Has("CUSTOMERS") {
		t.Fatalf("Has() mismatch for %v", r.Codes())
	}
}

func TestParseRegistryAndProductDocs(t *testing.T) {
	reg, err := ParseConfigRegistry(`{"CONFIGS":[{"CONFIG_ID":4015335849,"CONFIG_COMMENT":"initial","SYS_CREATE_DT":"2025-01-01 00:00:00.000"}]}`)
	if err != nil || reg.Configs[0].ConfigID != 4015335849 {
		t.Fatalf("ParseConfigRegistry = %+v, %v", reg, err)
	}

	v, err := ParseVersion(`{"PRODUCT_NAME":"Senzing SDK","VERSION":"4.0.0","COMPATIBILITY_VERSION":{"CONFIG_VERSION":"11"}}`)
	if err != nil || v.Version != "4.0.0" || v.CompatibilityVersion.ConfigVersion != "11" {
		t.Fatalf("ParseVersion = %+v, %v", v, err)
	}

	l, err := ParseLicense(`{"customer":"Senzing Public Test License","licenseType":"EVAL (Solely for non-productive use)","recordLimit":50000}`)
	if err != nil || l.RecordLimit != 50000 {
		t.Fatalf("ParseLicense = %+v, %v", l, err)
	}

	info, err := ParseRepositoryInfo(`{"dataStores":[{"id":"CORE","type":"sqlite3","location":"/tmp/G2C.db"}]}`)
	if err != nil || info.DataStores[0].Type != "sqlite3" {
		t.Fatalf("ParseRepositoryInfo = %+v, %v", info, err)
	}

	redo, err := ParseRedoRecord(`{"REASON":"LIB_FEAT_ID[1] went generic","DATA_SOURCE":"CUSTOMERS","RECORD_ID":"1001","REEVAL_ITERATION":1,"DSRC_ACTION":"X"}`)
	if err != nil || redo.RecordID != "1001" || redo.ReevalIteration != 1 {
		t.Fatalf("ParseRedoRecord = %+v, %v", redo, err)
	}

	rec, err := ParseRecord(`{"DATA_SOURCE":"CUSTOMERS","RECORD_ID":"1001","JSON_DATA":{"NAME_FULL":"Robert Smith"}}`)
	if err != nil || rec.Key().RecordID != "1001" {
		t.Fatalf("ParseRecord = %+v, %v", rec, err)
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := ParseEntity(""); err == nil {
		t.Fatal("expected error for empty document")
	}
	if _, err := ParseEntity("{not json"); err == nil || !strings.Contains(err.Error(), "model.Entity") {
		t.Fatalf("error = %v, want mention of model.Entity", err)
	}
}
