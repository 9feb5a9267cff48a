package configuration

type CanConfig struct {
	Enabled bool `json:"enabled"`
	// SocketCAN interface name, f.ex. "can0" or "vcan0"
	Interface string `json:"interface"`
}

// BridgeConfig configures the websocket bridge used by simulators
type BridgeConfig struct {
	Enabled bool   `json:"enabled"`
	Host    string `json:"host"`
	Port    int    `json:"port"`
	Path    string `json:"path"`
}
