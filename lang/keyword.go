package lang

import "iter"

// Keyword kinds, one per exact, case-sensitive spelling.
const (
	KwCall Kind = iota + keywordStart
	KwCallBang
	KwBuild
	KwBuildCap
	KwBuildBang
	KwCheck
	KwImport
	KwImportBang
	KwStore
	KwStoreCap
	KwManifest
	KwShow
	KwShowCap
	KwPanel
	KwPanelBang
	KwSimCore
	KwTag
	KwSignature
	KwAsk
	KwAskBang
	KwAccess
	KwAccessBang
	KwSniff
	KwSniffLower
	KwSniffBang
	KwDetect
	KwDetectBang
	KwFetch
	KwFetchLower
	KwStart
	KwArgu
	KwArgur
	KwPair
	KwDevice
	KwDeviceBang
	KwNcom
	KwNcomBang
	KwCore
	KwCoreBang
	KwUWB
	KwUWBBang
	KwSend
	KwSendBang
	KwGet
	KwGetCap
	KwSense
	KwFeed
	KwSource
	KwControls
	KwPermissions
	KwLog
	KwInject
	KwOverride
	KwPersist
	KwScope
	KwForce
	KwForced
	KwSim
	KwSpoof
	KwPanels
	KwGrid
	KwRows
	KwColumns
	KwTotal
	KwResize
	KwDrag
	KwLock
	KwID
	KwText
	KwTextLower
	KwColor
	KwScan
	KwUser
	KwUserLower
	KwAccount
	KwAccountBang
	KwAuth
	KwAuthBang
	KwLink
	KwApp
	KwOS
	KwDev
	KwDevOnly
	KwDevBang
	KwSensor
	KwSensors
	KwSensorsBang
	KwChannels
	KwTargets
	KwLive
	KwAlways
	KwDynamic
	KwAll
	KwData
	KwValue
	KwStream
	KwTarget
	KwSession
	KwFirmware

	keywordEnd
)

// keyword describes one entry of the keyword table.
type keyword struct {
	name     string
	spelling string
	command  bool
}

// keywordTable is indexed by Kind-keywordStart. Command keywords may start a
// statement; word keywords are only usable as literal parameter values.
var keywordTable = [keywordEnd - keywordStart]keyword{
	KwCall - keywordStart:        {"CALL", "call~", true},
	KwCallBang - keywordStart:    {"CALL_BANG", "call~!!", true},
	KwBuild - keywordStart:       {"BUILD", "build~", true},
	KwBuildCap - keywordStart:    {"BUILD_CAP", "Build~", true},
	KwBuildBang - keywordStart:   {"BUILD_BANG", "Build~!!", true},
	KwCheck - keywordStart:       {"CHECK", "check~", true},
	KwImport - keywordStart:      {"IMPORT", "import~", true},
	KwImportBang - keywordStart:  {"IMPORT_BANG", "import~!!", true},
	KwStore - keywordStart:       {"STORE", "store~", true},
	KwStoreCap - keywordStart:    {"STORE_CAP", "Store~", true},
	KwManifest - keywordStart:    {"MANIFEST", ".mf~", true},
	KwShow - keywordStart:        {"SHOW", "show~", true},
	KwShowCap - keywordStart:     {"SHOW_CAP", "Show~", true},
	KwPanel - keywordStart:       {"PANEL", "Panel~", true},
	KwPanelBang - keywordStart:   {"PANEL_BANG", "Panel~!!", true},
	KwSimCore - keywordStart:     {"SIMCORE", "SimCore~!!", true},
	KwTag - keywordStart:         {"TAG", "TAG~", true},
	KwSignature - keywordStart:   {"SIGNATURE", "Signiture~!!", true},
	KwAsk - keywordStart:         {"ASK", "ASK~", true},
	KwAskBang - keywordStart:     {"ASK_BANG", "ASK~!!", true},
	KwAccess - keywordStart:      {"ACCESS", "ACCESS~", true},
	KwAccessBang - keywordStart:  {"ACCESS_BANG", "ACCESS~!!", true},
	KwSniff - keywordStart:       {"SNIFF", "Sniff~", true},
	KwSniffLower - keywordStart:  {"SNIFF_LOWER", "sniff~", true},
	KwSniffBang - keywordStart:   {"SNIFF_BANG", "sniff!~!!", true},
	KwDetect - keywordStart:      {"DETECT", "detect~", true},
	KwDetectBang - keywordStart:  {"DETECT_BANG", "detect~!!", true},
	KwFetch - keywordStart:       {"FETCH", "Fetch~!!", true},
	KwFetchLower - keywordStart:  {"FETCH_LOWER", "Fetch~", true},
	KwStart - keywordStart:       {"START", "Start~", true},
	KwArgu - keywordStart:        {"ARGU", "Argu~!!", true},
	KwArgur - keywordStart:       {"ARGUR", "Argur~!!", true},
	KwPair - keywordStart:        {"PAIR", "Pair~", true},
	KwDevice - keywordStart:      {"DEVICE", "Device~", true},
	KwDeviceBang - keywordStart:  {"DEVICE_BANG", "Device~!!", true},
	KwNcom - keywordStart:        {"NCOM", "NCOM~", true},
	KwNcomBang - keywordStart:    {"NCOM_BANG", "NCOM~!!", true},
	KwCore - keywordStart:        {"CORE", "core~", true},
	KwCoreBang - keywordStart:    {"CORE_BANG", "CORE~!!", true},
	KwUWB - keywordStart:         {"UWB", "UWB~", true},
	KwUWBBang - keywordStart:     {"UWB_BANG", "UWB~!!", true},
	KwSend - keywordStart:        {"SEND", "SEND~", true},
	KwSendBang - keywordStart:    {"SEND_BANG", "SEND~!!", true},
	KwGet - keywordStart:         {"GET", "get~", true},
	KwGetCap - keywordStart:      {"GET_CAP", "Get~", true},
	KwSense - keywordStart:       {"SENSE", "Sense~!!", true},
	KwFeed - keywordStart:        {"FEED", "Feed~", true},
	KwSource - keywordStart:      {"SOURCE", "Source~", true},
	KwControls - keywordStart:    {"CONTROLS", "Controls~", true},
	KwPermissions - keywordStart: {"PERMISSIONS", "Permissions~", true},
	KwLog - keywordStart:         {"LOG", "Log~", true},
	KwInject - keywordStart:      {"INJECT", "Inject~", true},
	KwOverride - keywordStart:    {"OVERRIDE", "Override~", true},
	KwPersist - keywordStart:     {"PERSIST", "Persist~", true},
	KwScope - keywordStart:       {"SCOPE", "Scope~", true},
	KwForce - keywordStart:       {"FORCE", "Force~", true},
	KwForced - keywordStart:      {"FORCED", "FORCED!!", false},
	KwSim - keywordStart:         {"SIM", "Sim~", true},
	KwSpoof - keywordStart:       {"SPOOF", "Spoof~", true},
	KwPanels - keywordStart:      {"PANELS", "Panels~", true},
	KwGrid - keywordStart:        {"GRID", "Grid~", true},
	KwRows - keywordStart:        {"ROWS", "Rows~", true},
	KwColumns - keywordStart:     {"COLUMNS", "Columns~", true},
	KwTotal - keywordStart:       {"TOTAL", "Total~", true},
	KwResize - keywordStart:      {"RESIZE", "Resize~", true},
	KwDrag - keywordStart:        {"DRAG", "Drag~", true},
	KwLock - keywordStart:        {"LOCK", "Lock~", true},
	KwID - keywordStart:          {"ID", "ID~", true},
	KwText - keywordStart:        {"TEXT", "text~", true},
	KwTextLower - keywordStart:   {"TEXT_LOWER", "text", false},
	KwColor - keywordStart:       {"COLOR", "Color", false},
	KwScan - keywordStart:        {"SCAN", "Scan", false},
	KwUser - keywordStart:        {"USER", "USER", false},
	KwUserLower - keywordStart:   {"USER_LOWER", "user", false},
	KwAccount - keywordStart:     {"ACCOUNT", "account~", false},
	KwAccountBang - keywordStart: {"ACCOUNT_BANG", "account~!!", false},
	KwAuth - keywordStart:        {"AUTH", "Auth~", false},
	KwAuthBang - keywordStart:    {"AUTH_BANG", "Auth~!!", false},
	KwLink - keywordStart:        {"LINK", "Link_$", false},
	KwApp - keywordStart:         {"APP", "APP", false},
	KwOS - keywordStart:          {"OS", "OS", false},
	KwDev - keywordStart:         {"DEV", "DEV", false},
	KwDevOnly - keywordStart:     {"DEV_ONLY", "DEV_ONLY~!!", false},
	KwDevBang - keywordStart:     {"DEV_BANG", "DEV~!!", false},
	KwSensor - keywordStart:      {"SENSOR", "sensor", false},
	KwSensors - keywordStart:     {"SENSORS", "sensors", false},
	KwSensorsBang - keywordStart: {"SENSORS_BANG", "sensors~!!", false},
	KwChannels - keywordStart:    {"CHANNELS", "channels~", false},
	KwTargets - keywordStart:     {"TARGETS", "targets", false},
	KwLive - keywordStart:        {"LIVE", "LIVE", false},
	KwAlways - keywordStart:      {"ALWAYS", "ALWAYS", false},
	KwDynamic - keywordStart:     {"DYNAMIC", "Dynamic", false},
	KwAll - keywordStart:         {"ALL", "ALL", false},
	KwData - keywordStart:        {"DATA", "data", false},
	KwValue - keywordStart:       {"VALUE", "value", false},
	KwStream - keywordStart:      {"STREAM", "stream", false},
	KwTarget - keywordStart:      {"TARGET", "target", false},
	KwSession - keywordStart:     {"SESSION", "session", false},
	KwFirmware - keywordStart:    {"FIRMWARE", "firmware", false},
}

var keywordKind = func() map[string]Kind {
	m := make(map[string]Kind, len(keywordTable))
	for i, kw := range keywordTable {
		m[kw.spelling] = keywordStart + Kind(i)
	}

	return m
}()

func keywordOf(k Kind) (keyword, bool) {
	if k < keywordStart || k >= keywordEnd {
		return keyword{}, false
	}

	return keywordTable[k-keywordStart], true
}

// LookupKeyword returns the keyword kind spelled exactly s.
func LookupKeyword(s string) (Kind, bool) {
	k, ok := keywordKind[s]

	return k, ok
}

// Keywords returns an iterator over every keyword kind in table order.
func Keywords() iter.Seq[Kind] {
	return func(yield func(Kind) bool) {
		for k := keywordStart; k < keywordEnd; k++ {
			if !yield(k) {
				return
			}
		}
	}
}

// Commands returns an iterator over the spellings of the command keywords.
func Commands() iter.Seq[string] {
	return func(yield func(string) bool) {
		for k := range Keywords() {
			if k.IsCommand() && !yield(k.Spelling()) {
				return
			}
		}
	}
}
