package senzing

import (
	"fmt"
	"slices"
	"strings"
)

// Flags select what the engine includes in its JSON responses. They are OR-ed
// together and passed as int64.
const (
	SzNoFlags int64 = 0

	SzExportIncludeMultiRecordEntities  int64 = 1 << 0
	SzExportIncludePossiblySame         int64 = 1 << 1
	SzExportIncludePossiblyRelated      int64 = 1 << 2
	SzExportIncludeNameOnly             int64 = 1 << 3
	SzExportIncludeDisclosed            int64 = 1 << 4
	SzExportIncludeSingleRecordEntities int64 = 1 << 5

	SzEntityIncludePossiblySameRelations    int64 = 1 << 6
	SzEntityIncludePossiblyRelatedRelations int64 = 1 << 7
	SzEntityIncludeNameOnlyRelations        int64 = 1 << 8
	SzEntityIncludeDisclosedRelations       int64 = 1 << 9
	SzEntityIncludeAllFeatures              int64 = 1 << 10
	SzEntityIncludeRepresentativeFeatures   int64 = 1 << 11
	SzEntityIncludeEntityName               int64 = 1 << 12
	SzEntityIncludeRecordSummary            int64 = 1 << 13
	SzEntityIncludeRecordData               int64 = 1 << 14
	SzEntityIncludeRecordMatchingInfo       int64 = 1 << 15
	SzEntityIncludeRecordJSONData           int64 = 1 << 16
	SzEntityIncludeRecordFeatures           int64 = 1 << 18
	SzEntityIncludeRelatedEntityName        int64 = 1 << 19
	SzEntityIncludeRelatedMatchingInfo      int64 = 1 << 20
	SzEntityIncludeRelatedRecordSummary     int64 = 1 << 21
	SzEntityIncludeRelatedRecordData        int64 = 1 << 22
	SzEntityIncludeInternalFeatures         int64 = 1 << 23
	SzEntityIncludeFeatureStats             int64 = 1 << 24
	SzFindPathStrictAvoid                   int64 = 1 << 25
	SzIncludeFeatureScores                  int64 = 1 << 26
	SzSearchIncludeStats                    int64 = 1 << 27
	SzEntityIncludeRecordTypes              int64 = 1 << 28
	SzFindPathIncludeMatchingInfo           int64 = 1 << 30
	SzEntityIncludeRecordUnmappedData       int64 = 1 << 31
	SzSearchIncludeAllCandidates            int64 = 1 << 32
	SzFindNetworkIncludeMatchingInfo        int64 = 1 << 33
	SzIncludeMatchKeyDetails                int64 = 1 << 34
	SzEntityIncludeRecordFeatureDetails     int64 = 1 << 35
	SzEntityIncludeRecordFeatureStats       int64 = 1 << 36
	SzSearchIncludeRequest                  int64 = 1 << 37
	SzSearchIncludeRequestDetails           int64 = 1 << 38

	// SzWithInfo makes mutating calls return the entities they affected.
	SzWithInfo int64 = 1 << 62
)

// Search result selection reuses the low export bits.
const (
	SzSearchIncludeResolved        = SzExportIncludeMultiRecordEntities
	SzSearchIncludePossiblySame    = SzExportIncludePossiblySame
	SzSearchIncludePossiblyRelated = SzExportIncludePossiblyRelated
	SzSearchIncludeNameOnly        = SzExportIncludeNameOnly
)

// Composite flag sets used as method defaults.
const (
	SzExportIncludeAllEntities = SzExportIncludeMultiRecordEntities | SzExportIncludeSingleRecordEntities

	SzExportIncludeAllHavingRelationships = SzExportIncludePossiblySame |
		SzExportIncludePossiblyRelated |
		SzExportIncludeNameOnly |
		SzExportIncludeDisclosed

	SzEntityIncludeAllRelations = SzEntityIncludePossiblySameRelations |
		SzEntityIncludePossiblyRelatedRelations |
		SzEntityIncludeNameOnlyRelations |
		SzEntityIncludeDisclosedRelations

	SzSearchIncludeAllEntities = SzSearchIncludeResolved |
		SzSearchIncludePossiblySame |
		SzSearchIncludePossiblyRelated |
		SzSearchIncludeNameOnly

	SzEntityCoreFlags = SzEntityIncludeRepresentativeFeatures |
		SzEntityIncludeEntityName |
		SzEntityIncludeRecordSummary |
		SzEntityIncludeRecordData |
		SzEntityIncludeRecordMatchingInfo

	SzEntityDefaultFlags = SzEntityCoreFlags |
		SzEntityIncludeAllRelations |
		SzEntityIncludeRelatedEntityName |
		SzEntityIncludeRelatedRecordSummary |
		SzEntityIncludeRelatedMatchingInfo

	SzEntityBriefDefaultFlags = SzEntityIncludeRecordMatchingInfo |
		SzEntityIncludeAllRelations |
		SzEntityIncludeRelatedMatchingInfo

	SzExportDefaultFlags = SzExportIncludeAllEntities | SzEntityDefaultFlags

	SzFindPathDefaultFlags = SzFindPathIncludeMatchingInfo |
		SzEntityIncludeEntityName |
		SzEntityIncludeRecordSummary

	SzFindNetworkDefaultFlags = SzFindNetworkIncludeMatchingInfo |
		SzEntityIncludeEntityName |
		SzEntityIncludeRecordSummary

	SzFindInterestingEntitiesDefaultFlags = SzNoFlags

	SzWhyEntitiesDefaultFlags       = SzIncludeFeatureScores
	SzWhyRecordsDefaultFlags        = SzIncludeFeatureScores
	SzWhyRecordInEntityDefaultFlags = SzIncludeFeatureScores
	SzWhySearchDefaultFlags         = SzIncludeFeatureScores | SzSearchIncludeRequestDetails | SzSearchIncludeStats
	SzHowEntityDefaultFlags         = SzIncludeFeatureScores
	SzVirtualEntityDefaultFlags     = SzEntityCoreFlags

	SzSearchByAttributesAll = SzSearchIncludeAllEntities |
		SzEntityIncludeRepresentativeFeatures |
		SzEntityIncludeEntityName |
		SzEntityIncludeRecordSummary |
		SzIncludeFeatureScores

	SzSearchByAttributesStrong = SzSearchIncludeResolved |
		SzSearchIncludePossiblySame |
		SzEntityIncludeRepresentativeFeatures |
		SzEntityIncludeEntityName |
		SzEntityIncludeRecordSummary |
		SzIncludeFeatureScores

	SzSearchByAttributesMinimalAll    = SzSearchIncludeAllEntities
	SzSearchByAttributesMinimalStrong = SzSearchIncludeResolved | SzSearchIncludePossiblySame
	SzSearchByAttributesDefaultFlags  = SzSearchByAttributesAll

	SzRecordDefaultFlags        = SzEntityIncludeRecordJSONData
	SzRecordPreviewDefaultFlags = SzEntityIncludeRecordFeatureDetails

	SzAddRecordDefaultFlags         = SzNoFlags
	SzDeleteRecordDefaultFlags      = SzNoFlags
	SzReevaluateEntityDefaultFlags  = SzNoFlags
	SzReevaluateRecordDefaultFlags  = SzNoFlags
	SzProcessRedoRecordDefaultFlags = SzNoFlags
)

// flagsByName holds the single-bit flags under their engine names. Search
// aliases are accepted by Flags but never reported by FlagNames.
var flagsByName = map[string]int64{
	"SZ_EXPORT_INCLUDE_MULTI_RECORD_ENTITIES":      SzExportIncludeMultiRecordEntities,
	"SZ_EXPORT_INCLUDE_POSSIBLY_SAME":              SzExportIncludePossiblySame,
	"SZ_EXPORT_INCLUDE_POSSIBLY_RELATED":           SzExportIncludePossiblyRelated,
	"SZ_EXPORT_INCLUDE_NAME_ONLY":                  SzExportIncludeNameOnly,
	"SZ_EXPORT_INCLUDE_DISCLOSED":                  SzExportIncludeDisclosed,
	"SZ_EXPORT_INCLUDE_SINGLE_RECORD_ENTITIES":     SzExportIncludeSingleRecordEntities,
	"SZ_ENTITY_INCLUDE_POSSIBLY_SAME_RELATIONS":    SzEntityIncludePossiblySameRelations,
	"SZ_ENTITY_INCLUDE_POSSIBLY_RELATED_RELATIONS": SzEntityIncludePossiblyRelatedRelations,
	"SZ_ENTITY_INCLUDE_NAME_ONLY_RELATIONS":        SzEntityIncludeNameOnlyRelations,
	"SZ_ENTITY_INCLUDE_DISCLOSED_RELATIONS":        SzEntityIncludeDisclosedRelations,
	"SZ_ENTITY_INCLUDE_ALL_FEATURES":               SzEntityIncludeAllFeatures,
	"SZ_ENTITY_INCLUDE_REPRESENTATIVE_FEATURES":    SzEntityIncludeRepresentativeFeatures,
	"SZ_ENTITY_INCLUDE_ENTITY_NAME":                SzEntityIncludeEntityName,
	"SZ_ENTITY_INCLUDE_RECORD_SUMMARY":             SzEntityIncludeRecordSummary,
	"SZ_ENTITY_INCLUDE_RECORD_DATA":                SzEntityIncludeRecordData,
	"SZ_ENTITY_INCLUDE_RECORD_MATCHING_INFO":       SzEntityIncludeRecordMatchingInfo,
	"SZ_ENTITY_INCLUDE_RECORD_JSON_DATA":           SzEntityIncludeRecordJSONData,
	"SZ_ENTITY_INCLUDE_RECORD_FEATURES":            SzEntityIncludeRecordFeatures,
	"SZ_ENTITY_INCLUDE_RELATED_ENTITY_NAME":        SzEntityIncludeRelatedEntityName,
	"SZ_ENTITY_INCLUDE_RELATED_MATCHING_INFO":      SzEntityIncludeRelatedMatchingInfo,
	"SZ_ENTITY_INCLUDE_RELATED_RECORD_SUMMARY":     SzEntityIncludeRelatedRecordSummary,
	"SZ_ENTITY_INCLUDE_RELATED_RECORD_DATA":        SzEntityIncludeRelatedRecordData,
	"SZ_ENTITY_INCLUDE_INTERNAL_FEATURES":          SzEntityIncludeInternalFeatures,
	"SZ_ENTITY_INCLUDE_FEATURE_STATS":              SzEntityIncludeFeatureStats,
	"SZ_FIND_PATH_STRICT_AVOID":                    SzFindPathStrictAvoid,
	"SZ_INCLUDE_FEATURE_SCORES":                    SzIncludeFeatureScores,
	"SZ_SEARCH_INCLUDE_STATS":                      SzSearchIncludeStats,
	"SZ_ENTITY_INCLUDE_RECORD_TYPES":               SzEntityIncludeRecordTypes,
	"SZ_FIND_PATH_INCLUDE_MATCHING_INFO":           SzFindPathIncludeMatchingInfo,
	"SZ_ENTITY_INCLUDE_RECORD_UNMAPPED_DATA":       SzEntityIncludeRecordUnmappedData,
	"SZ_SEARCH_INCLUDE_ALL_CANDIDATES":             SzSearchIncludeAllCandidates,
	"SZ_FIND_NETWORK_INCLUDE_MATCHING_INFO":        SzFindNetworkIncludeMatchingInfo,
	"SZ_INCLUDE_MATCH_KEY_DETAILS":                 SzIncludeMatchKeyDetails,
	"SZ_ENTITY_INCLUDE_RECORD_FEATURE_DETAILS":     SzEntityIncludeRecordFeatureDetails,
	"SZ_ENTITY_INCLUDE_RECORD_FEATURE_STATS":       SzEntityIncludeRecordFeatureStats,
	"SZ_SEARCH_INCLUDE_REQUEST":                    SzSearchIncludeRequest,
	"SZ_SEARCH_INCLUDE_REQUEST_DETAILS":            SzSearchIncludeRequestDetails,
	"SZ_WITH_INFO":                                 SzWithInfo,
}

var flagAliases = map[string]int64{
	"SZ_SEARCH_INCLUDE_RESOLVED":            SzSearchIncludeResolved,
	"SZ_SEARCH_INCLUDE_POSSIBLY_SAME":       SzSearchIncludePossiblySame,
	"SZ_SEARCH_INCLUDE_POSSIBLY_RELATED":    SzSearchIncludePossiblyRelated,
	"SZ_SEARCH_INCLUDE_NAME_ONLY":           SzSearchIncludeNameOnly,
	"SZ_NO_FLAGS":                           SzNoFlags,
	"SZ_ENTITY_DEFAULT_FLAGS":               SzEntityDefaultFlags,
	"SZ_ENTITY_BRIEF_DEFAULT_FLAGS":         SzEntityBriefDefaultFlags,
	"SZ_ENTITY_CORE_FLAGS":                  SzEntityCoreFlags,
	"SZ_ENTITY_INCLUDE_ALL_RELATIONS":       SzEntityIncludeAllRelations,
	"SZ_EXPORT_DEFAULT_FLAGS":               SzExportDefaultFlags,
	"SZ_EXPORT_INCLUDE_ALL_ENTITIES":        SzExportIncludeAllEntities,
	"SZ_FIND_PATH_DEFAULT_FLAGS":            SzFindPathDefaultFlags,
	"SZ_FIND_NETWORK_DEFAULT_FLAGS":         SzFindNetworkDefaultFlags,
	"SZ_SEARCH_BY_ATTRIBUTES_ALL":           SzSearchByAttributesAll,
	"SZ_SEARCH_BY_ATTRIBUTES_STRONG":        SzSearchByAttributesStrong,
	"SZ_SEARCH_BY_ATTRIBUTES_DEFAULT_FLAGS": SzSearchByAttributesDefaultFlags,
	"SZ_RECORD_DEFAULT_FLAGS":               SzRecordDefaultFlags,
}

// Flags ORs the named flags. Names are the engine's (e.g.
// "SZ_ENTITY_INCLUDE_ENTITY_NAME"), matched case-insensitively; composite
// and search alias names are accepted too.
func Flags(names ...string) (int64, error) {
	var flags int64
	for _, name := range names {
		key := strings.ToUpper(strings.TrimSpace(name))
		if v, ok := flagsByName[key]; ok {
			flags |= v
			continue
		}
		if v, ok := flagAliases[key]; ok {
			flags |= v
			continue
		}
		return 0, fmt.Errorf("unknown flag %q", name)
	}
	return flags, nil
}

// FlagNames lists the single-bit flags set in flags, sorted by name.
func FlagNames(flags int64) []string {
	var names []string
	for name, v := range flagsByName {
		if flags&v != 0 {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}
