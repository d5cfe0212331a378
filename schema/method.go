package schema

// Capability names exposed across the bridge.
const (
	MethodInitialize       = "initialize"
	MethodGetToken         = "getToken"
	MethodReadClipboard    = "readClipboard"
	MethodTimeout          = "timeout"
	MethodStorageSet       = "storageSet"
	MethodStorageGet       = "storageGet"
	MethodStorageRemove    = "storageRemove"
	MethodExportPackage    = "exportPackage"
	MethodSynthesizeSpeech = "synthesizeSpeech"

	MethodCapabilitiesList = "capabilities/list"
)
