package szerror

// codeKinds maps Senzing engine error codes (the number in "SENZnnnn") to the
// kind of error they signal. Codes missing from the table are KindSz.
var codeKinds = map[int]Kind{
	// malformed or conflicting input
	2: KindBadInput, 7: KindBadInput, 13: KindBadInput, 22: KindBadInput, 23: KindBadInput,
	24: KindBadInput, 25: KindBadInput, 26: KindBadInput, 32: KindBadInput, 38: KindBadInput,
	39: KindBadInput, 40: KindBadInput, 41: KindBadInput, 42: KindBadInput, 43: KindBadInput,
	44: KindBadInput, 45: KindBadInput, 46: KindBadInput, 57: KindBadInput, 58: KindBadInput,
	59: KindBadInput, 60: KindBadInput, 65: KindBadInput, 66: KindBadInput, 67: KindBadInput,
	68: KindBadInput, 69: KindBadInput, 73: KindBadInput, 74: KindBadInput, 75: KindBadInput,
	76: KindBadInput, 77: KindBadInput, 78: KindBadInput, 79: KindBadInput, 80: KindBadInput,
	81: KindBadInput, 82: KindBadInput, 83: KindBadInput, 84: KindBadInput, 85: KindBadInput,
	86: KindBadInput, 88: KindBadInput, 2134: KindBadInput, 2135: KindBadInput, 2136: KindBadInput,
	7426: KindBadInput, 7427: KindBadInput, 7428: KindBadInput, 7429: KindBadInput,
	7430: KindBadInput, 8000: KindBadInput, 8001: KindBadInput, 8002: KindBadInput,
	8003: KindBadInput, 8004: KindBadInput, 8005: KindBadInput, 8006: KindBadInput,
	8007: KindBadInput, 8008: KindBadInput, 8009: KindBadInput, 30101: KindBadInput,
	30102: KindBadInput, 30103: KindBadInput, 30104: KindBadInput, 30105: KindBadInput,
	30106: KindBadInput, 30107: KindBadInput, 30108: KindBadInput, 30109: KindBadInput,
	30111: KindBadInput, 30112: KindBadInput, 30121: KindBadInput, 30122: KindBadInput,
	30123: KindBadInput, 30131: KindBadInput, 30132: KindBadInput, 30133: KindBadInput,
	30134: KindBadInput, 30135: KindBadInput, 30136: KindBadInput, 30137: KindBadInput,
	30138: KindBadInput,

	// unknown record, entity, feature or configuration
	27: KindNotFound, 33: KindNotFound, 37: KindNotFound, 52: KindNotFound, 56: KindNotFound,
	7218: KindNotFound, 7219: KindNotFound, 7222: KindNotFound, 30110: KindNotFound,

	// data source not registered in the active configuration
	2207: KindUnknownDataSource, 2209: KindUnknownDataSource, 2212: KindUnknownDataSource,

	// invalid or inconsistent engine configuration
	14: KindConfiguration, 19: KindConfiguration, 20: KindConfiguration, 21: KindConfiguration,
	28: KindConfiguration, 29: KindConfiguration, 30: KindConfiguration, 31: KindConfiguration,
	34: KindConfiguration, 36: KindConfiguration, 61: KindConfiguration, 62: KindConfiguration,
	64: KindConfiguration, 70: KindConfiguration, 71: KindConfiguration, 72: KindConfiguration,
	90: KindConfiguration, 92: KindConfiguration, 93: KindConfiguration, 94: KindConfiguration,
	95: KindConfiguration, 96: KindConfiguration, 97: KindConfiguration, 98: KindConfiguration,
	99: KindConfiguration, 100: KindConfiguration, 101: KindConfiguration, 102: KindConfiguration,
	103: KindConfiguration, 104: KindConfiguration, 105: KindConfiguration, 106: KindConfiguration,
	107: KindConfiguration, 108: KindConfiguration, 109: KindConfiguration, 110: KindConfiguration,
	111: KindConfiguration, 112: KindConfiguration, 113: KindConfiguration, 114: KindConfiguration,
	115: KindConfiguration, 2200: KindConfiguration, 2201: KindConfiguration, 2202: KindConfiguration,
	2203: KindConfiguration, 2204: KindConfiguration, 2205: KindConfiguration,
	2206: KindConfiguration, 2208: KindConfiguration, 2210: KindConfiguration,
	2211: KindConfiguration, 2213: KindConfiguration, 2214: KindConfiguration,
	2215: KindConfiguration, 2216: KindConfiguration, 2217: KindConfiguration,
	2218: KindConfiguration, 2219: KindConfiguration, 2220: KindConfiguration,
	2221: KindConfiguration, 2222: KindConfiguration, 2223: KindConfiguration,
	2224: KindConfiguration, 2225: KindConfiguration, 2226: KindConfiguration,
	2227: KindConfiguration, 2228: KindConfiguration, 2229: KindConfiguration,
	2230: KindConfiguration, 2231: KindConfiguration, 2232: KindConfiguration,
	2233: KindConfiguration, 2234: KindConfiguration, 2235: KindConfiguration,
	2236: KindConfiguration, 2237: KindConfiguration, 2238: KindConfiguration,
	2239: KindConfiguration, 2240: KindConfiguration, 2241: KindConfiguration,
	2242: KindConfiguration, 2243: KindConfiguration, 2244: KindConfiguration,
	2245: KindConfiguration, 2246: KindConfiguration, 2247: KindConfiguration,
	2248: KindConfiguration, 2249: KindConfiguration, 2250: KindConfiguration,
	7209: KindConfiguration, 7211: KindConfiguration, 7212: KindConfiguration,
	7213: KindConfiguration, 7214: KindConfiguration, 7215: KindConfiguration,
	7216: KindConfiguration, 7217: KindConfiguration, 7220: KindConfiguration,
	7221: KindConfiguration, 7223: KindConfiguration, 7224: KindConfiguration,
	7225: KindConfiguration, 7226: KindConfiguration, 7227: KindConfiguration,
	7228: KindConfiguration, 7229: KindConfiguration, 7230: KindConfiguration,
	7231: KindConfiguration, 7232: KindConfiguration, 7233: KindConfiguration,
	7234: KindConfiguration, 7235: KindConfiguration, 7236: KindConfiguration,
	7237: KindConfiguration, 7238: KindConfiguration, 7239: KindConfiguration,
	7240: KindConfiguration, 9107: KindConfiguration, 9108: KindConfiguration,
	9109: KindConfiguration, 9110: KindConfiguration, 9111: KindConfiguration,
	9112: KindConfiguration, 9113: KindConfiguration, 9114: KindConfiguration,
	9115: KindConfiguration, 9116: KindConfiguration, 9117: KindConfiguration,
	9118: KindConfiguration, 9119: KindConfiguration, 9120: KindConfiguration,
	9210: KindConfiguration, 9211: KindConfiguration, 9212: KindConfiguration,
	9213: KindConfiguration, 9214: KindConfiguration, 9215: KindConfiguration,
	9216: KindConfiguration, 9217: KindConfiguration, 9218: KindConfiguration,
	9219: KindConfiguration, 9220: KindConfiguration, 9221: KindConfiguration,
	9222: KindConfiguration, 9223: KindConfiguration, 9224: KindConfiguration,
	9225: KindConfiguration, 9226: KindConfiguration, 9227: KindConfiguration,
	9228: KindConfiguration, 9229: KindConfiguration, 9230: KindConfiguration,
	9231: KindConfiguration, 9232: KindConfiguration, 9233: KindConfiguration,
	9234: KindConfiguration, 9235: KindConfiguration, 9236: KindConfiguration,
	9237: KindConfiguration, 9238: KindConfiguration, 9239: KindConfiguration,
	9240: KindConfiguration,

	// general engine failure
	47: KindGeneral, 55: KindGeneral, 89: KindGeneral, 2089: KindGeneral, 2090: KindGeneral,
	2091: KindGeneral, 2092: KindGeneral,

	// default configuration changed concurrently
	7245: KindReplaceConflict, 7246: KindReplaceConflict,

	// entity lock retry budget exhausted
	10: KindRetryTimeoutExceeded, 11: KindRetryTimeoutExceeded, 12: KindRetryTimeoutExceeded,

	// database connection dropped
	1006: KindDatabaseConnectionLost, 1007: KindDatabaseConnectionLost,

	// transient database condition such as a deadlock
	1008: KindDatabaseTransient, 1009: KindDatabaseTransient, 1016: KindDatabaseTransient,
	1017: KindDatabaseTransient,

	// database failure
	54: KindDatabase, 1000: KindDatabase, 1001: KindDatabase, 1002: KindDatabase, 1003: KindDatabase,
	1004: KindDatabase, 1005: KindDatabase, 1010: KindDatabase, 1011: KindDatabase,
	1012: KindDatabase, 1013: KindDatabase, 1014: KindDatabase, 1015: KindDatabase,
	1018: KindDatabase, 1019: KindDatabase, 1020: KindDatabase, 1021: KindDatabase,
	1022: KindDatabase, 1023: KindDatabase, 1024: KindDatabase, 1025: KindDatabase,
	1026: KindDatabase, 1027: KindDatabase, 1028: KindDatabase, 1029: KindDatabase,
	1030: KindDatabase, 1100: KindDatabase, 1101: KindDatabase, 1102: KindDatabase,
	1103: KindDatabase, 1104: KindDatabase, 1105: KindDatabase, 1106: KindDatabase,
	1107: KindDatabase, 1108: KindDatabase, 1109: KindDatabase, 1110: KindDatabase,

	// license missing, expired or exceeded
	999: KindLicense, 9000: KindLicense, 9001: KindLicense, 9002: KindLicense, 9003: KindLicense,
	9004: KindLicense, 9005: KindLicense,

	// engine not initialized
	48: KindNotInitialized, 49: KindNotInitialized, 50: KindNotInitialized, 53: KindNotInitialized,

	// unexpected engine exception
	51: KindUnhandled, 87: KindUnhandled,

	// engine can not continue
	63: KindUnrecoverable, 1031: KindUnrecoverable, 1032: KindUnrecoverable,
}
