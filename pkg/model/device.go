package model

// Fetch methods accepted in Device.Method.
const (
	MethodSSH      = "ssh"
	MethodREST     = "rest"
	MethodConfigDB = "configdb"
)

// Device is one entry in a device inventory: connection coordinates plus
// the preferred config-retrieval method.
type Device struct {
	Host       string `json:"host"`
	Username   string `json:"username"`
	Password   string `json:"password,omitempty"`
	Port       int    `json:"port,omitempty"`
	PrivateKey string `json:"private_key,omitempty"`
	// Model selects the per-vendor show command / REST endpoint.
	Model string `json:"device_model,omitempty"`
	// Method is ssh (default), rest, or configdb.
	Method string `json:"method,omitempty"`
	// RestURL overrides the model-derived REST endpoint when set.
	RestURL string `json:"rest_url,omitempty"`
}

// ConfigResult is the per-device outcome of a config fetch. A failed device
// carries Error and never aborts the batch it was part of.
type ConfigResult struct {
	Host          string `json:"host"`
	RunningConfig string `json:"running_config,omitempty"`
	VersionInfo   string `json:"version_info,omitempty"`
	Interfaces    string `json:"interfaces,omitempty"`
	Source        string `json:"source"`
	Error         string `json:"error,omitempty"`
}

// SaveResult is the per-device outcome of a fetch-and-save operation.
type SaveResult struct {
	Host     string `json:"host"`
	Source   string `json:"source"`
	Message  string `json:"message"`
	FilePath string `json:"file_path,omitempty"`
	Error    string `json:"error,omitempty"`
}

// ConnectivityResult is the per-device outcome of a connectivity probe.
type ConnectivityResult struct {
	Host      string `json:"host"`
	Method    string `json:"method"`
	Connected bool   `json:"connected"`
	Error     string `json:"error,omitempty"`
}
