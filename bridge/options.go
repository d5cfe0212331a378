package bridge

// Options are command line flags; a flag that is set wins over its environment variable.
type Options struct {
	Transport        string   `short:"t" long:"transport" description:"transport type" choice:"stdio" choice:"http"`
	Addr             string   `short:"a" long:"addr" description:"http listen address"`
	StorageURL       string   `short:"s" long:"storage" description:"afs base URL for durable state, e.g. file:///var/lib/app"`
	OAuth2ConfigURL  string   `short:"c" long:"config" description:"oauth2 config file"`
	EncryptionKey    string   `short:"k" long:"key" description:"encryption key"`
	ClientID         string   `long:"client-id" description:"oauth2 client id"`
	ClientSecret     string   `long:"client-secret" description:"oauth2 client secret"`
	APIKey           string   `long:"api-key" description:"general-purpose API key"`
	ExportURL        string   `short:"o" long:"export" description:"afs URL receiving exported packages"`
	MediaURLs        []string `long:"media" description:"afs base URL exported media may be read from"`
	AllowOrigins     []string `long:"allow-origin" description:"origin allowed to call the http endpoint"`
	LogLevel         string   `short:"l" long:"log-level" description:"host log level" choice:"debug" choice:"info" choice:"warn" choice:"error"`
	LogCallErrors    bool     `long:"log-call-errors" description:"log failed capability calls"`
	LogInteropErrors bool     `long:"log-interop-errors" description:"log unknown capabilities and malformed requests"`
}
